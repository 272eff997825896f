// Package cseportal provides embedded assets for production builds.
package cseportal

import "embed"

// In dev mode assets are loaded from disk so template and CSS edits show up
// without a rebuild. Otherwise they are served from these embedded filesystems.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
