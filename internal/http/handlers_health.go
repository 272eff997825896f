package httpx

import (
	"net/http"

	"github.com/jnu-cse/cse-portal/internal/service"
)

type healthStatus struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

// healthHandler reports readiness. Once the session registry is closed the portal
// is draining and answers 503 so load balancers stop routing to it.
func healthHandler(registry *service.SessionRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := healthStatus{Status: "ok"}, http.StatusOK
		if registry.Closed() {
			status.Status, code = "draining", http.StatusServiceUnavailable
			w.Header().Set("Retry-After", "1")
		} else {
			status.Sessions = registry.Len()
		}
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			return
		}
		WriteJSON(w, code, status)
	}
}
