package httpx

import "net/http"

// markIntroSeen reports whether the intro animation should play for this request
// and, if so, records that it has been seen for the rest of the browser session.
func markIntroSeen(w http.ResponseWriter, r *http.Request, domain string) bool {
	if cookieValue(r, IntroCookieName) == "true" {
		return false
	}
	setCookie(w, r, domain, cookieSpec{Name: IntroCookieName, Value: "true"})
	return true
}
