//go:build tools
// +build tools

// Package tools pins development tool dependencies in go.mod.
//
// mockgen regenerates internal/mocks:
//
//	go generate ./internal/mocks
//
// Air (live reload) is installed globally and not tracked here:
//
//	go install github.com/air-verse/air@v1.63.0
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
