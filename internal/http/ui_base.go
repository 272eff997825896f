package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jnu-cse/cse-portal/internal/domain/route"
	"github.com/jnu-cse/cse-portal/internal/ports"
)

// UIHandlers serves the portal screens.
type UIHandlers struct {
	T            *TemplateRenderer
	Routes       route.Table
	API          ports.PortalAPI
	CookieDomain string
	Logger       *slog.Logger
	Now          func() time.Time
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// page starts the data for page, falling back to a bare descriptor when the table lacks it.
func (h *UIHandlers) page(r *http.Request, page string) (route.Descriptor, *PageData) {
	d, ok := h.Routes.Lookup(page)
	if !ok {
		d = route.Descriptor{Page: page, Chrome: true}
	}
	return d, NewPageData(r, d, h.Routes.Nav())
}

// render writes the screen inside the layout its descriptor asks for. Chrome pages
// show the intro overlay once per browser session.
func (h *UIHandlers) render(w http.ResponseWriter, r *http.Request, d route.Descriptor, status int, pd *PageData) {
	layout := layoutBare
	if d.Chrome {
		layout = layoutChrome
		pd.ShowIntro = markIntroSeen(w, r, h.CookieDomain)
	}
	if h.T == nil {
		http.Error(w, pd.Title, status)
		return
	}
	if err := h.T.Render(w, layout, status, pd); err != nil {
		h.logger().ErrorContext(r.Context(), "render page", "page", d.Page, "error", err)
		fallback := &PageData{Title: "Something went wrong", Path: r.URL.Path, Data: map[string]any{}}
		if err := h.T.Render(w, layoutError, http.StatusInternalServerError, fallback); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// Screen renders a route whose content needs no data beyond the page chrome.
func (h *UIHandlers) Screen(d route.Descriptor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, d, http.StatusOK, NewPageData(r, d, h.Routes.Nav()))
	}
}

// Resolving is the neutral placeholder shown while a visitor's identity is unknown.
func (h *UIHandlers) Resolving(w http.ResponseWriter, r *http.Request) {
	d := route.Descriptor{Page: "resolving", Title: "Loading"}
	pd := NewPageData(r, d, nil)
	h.render(w, r, d, http.StatusServiceUnavailable, pd)
}
