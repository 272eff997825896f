package auth

import (
	"net/url"
	"strings"
)

// RedirectIntent is the destination a visitor tried to reach before being sent to sign in.
// The zero value means "no intent"; Destination then falls back to the home path.
type RedirectIntent struct {
	path string
}

// NewRedirectIntent validates raw as a same-origin path. Anything else yields the zero intent.
func NewRedirectIntent(raw string) RedirectIntent {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "\\\r\n") {
		return RedirectIntent{}
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" || u.User != nil || !strings.HasPrefix(u.Path, "/") {
		return RedirectIntent{}
	}
	if strings.HasPrefix(raw, "//") {
		return RedirectIntent{}
	}
	return RedirectIntent{path: raw}
}

// Path returns the validated path, or "" for the zero intent.
func (ri RedirectIntent) Path() string { return ri.path }

// IsZero reports whether no intent is carried.
func (ri RedirectIntent) IsZero() bool { return ri.path == "" }

// Destination returns where a successful sign-in should land.
func (ri RedirectIntent) Destination() string {
	if ri.path == "" {
		return "/"
	}
	return ri.path
}

// Without drops the intent when its path satisfies reject (e.g. entry screens that would loop).
func (ri RedirectIntent) Without(reject func(path string) bool) RedirectIntent {
	if ri.path == "" || reject == nil {
		return ri
	}
	p := ri.path
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if reject(p) {
		return RedirectIntent{}
	}
	return ri
}
