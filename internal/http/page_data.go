package httpx

import (
	"net/http"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/domain/route"
)

// PageData is what every layout and screen template receives.
type PageData struct {
	Title       string
	Page        string
	Path        string
	Nav         []route.Descriptor
	User        *domainauth.Identity
	CSRFToken   string
	ShowIntro   bool
	RedirectURI string
	Error       string
	Flash       string
	Data        map[string]any
}

// SignedIn reports whether the page is rendered for a signed-in visitor.
func (p *PageData) SignedIn() bool { return p.User != nil }

// NewPageData starts the data for the screen described by d.
func NewPageData(r *http.Request, d route.Descriptor, nav []route.Descriptor) *PageData {
	pd := &PageData{
		Title:     d.Title,
		Page:      d.Page,
		Path:      r.URL.Path,
		Nav:       nav,
		CSRFToken: GetCSRFToken(r),
		Data:      map[string]any{},
	}
	if id, ok := CurrentIdentity(r.Context()); ok {
		pd.User = &id
	}
	return pd
}

// With adds a screen-specific value.
func (p *PageData) With(key string, value any) *PageData {
	p.Data[key] = value
	return p
}

// WithError sets the inline error message.
func (p *PageData) WithError(msg string) *PageData {
	p.Error = msg
	return p
}
