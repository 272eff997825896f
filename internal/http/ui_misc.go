package httpx

import (
	"errors"
	"net/http"

	"github.com/jnu-cse/cse-portal/internal/domain/route"
)

const pageNotFound = "not-found"

// NotFound renders unknown paths inside the chrome for browsers and as JSON for API callers.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: "not_found",
			Err:     errors.New("not found"),
		})
		return
	}
	d := route.Descriptor{Page: pageNotFound, Title: "Page Not Found", Chrome: true}
	h.render(w, r, d, http.StatusNotFound, NewPageData(r, d, h.Routes.Nav()))
}
