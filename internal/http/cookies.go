package httpx

import (
	"net/http"
	"strings"
	"time"
)

// cookieSpec describes a cookie written by the portal. MaxAge 0 means a browser-session cookie.
type cookieSpec struct {
	Name     string
	Value    string
	MaxAge   time.Duration
	HTTPOnly bool
	SameSite http.SameSite
}

// isSecureRequest reports whether the request arrived over HTTPS, directly or through a proxy.
func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}

func setCookie(w http.ResponseWriter, r *http.Request, domain string, c cookieSpec) {
	sameSite := c.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}
	ck := &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     "/",
		Domain:   domain,
		HttpOnly: c.HTTPOnly,
		Secure:   isSecureRequest(r),
		SameSite: sameSite,
	}
	if c.MaxAge > 0 {
		ck.MaxAge = int(c.MaxAge.Seconds())
	}
	http.SetCookie(w, ck)
}

// clearCookie expires a cookie, mirroring the attributes it was set with.
func clearCookie(w http.ResponseWriter, r *http.Request, domain, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
