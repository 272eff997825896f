package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/jnu-cse/cse-portal/internal/domain/auth"
	"github.com/jnu-cse/cse-portal/internal/domain/route"
	"github.com/jnu-cse/cse-portal/internal/service"
)

// intent validates a raw redirect target, dropping anything that is not a local
// path or that points back at an entry screen.
func (h *UIHandlers) intent(raw string) domainauth.RedirectIntent {
	return domainauth.NewRedirectIntent(raw).Without(h.Routes.IsEntryScreen)
}

// LoginPage renders the student login form.
// GET /student-login?redirect_uri=<path>.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageStudentLogin)
	pd.RedirectURI = h.intent(r.URL.Query().Get(redirectParam)).Path()
	if r.URL.Query().Get("error") == "federated" {
		pd.WithError(msgFederatedFailed)
	}
	h.render(w, r, d, http.StatusOK, pd)
}

// Login signs the visitor in with email and password.
// POST /student-login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))
	intent := h.intent(r.PostFormValue(redirectParam))

	err := withFreshSession(w, r, func(sc *service.SessionContext) error {
		_, err := sc.SignIn(r.Context(), email, r.PostFormValue("password"))
		return err
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !domainauth.IsIdentityError(err) {
			h.logger().ErrorContext(r.Context(), "sign in failed", "error", err)
			status = http.StatusInternalServerError
		}
		d, pd := h.page(r, route.PageStudentLogin)
		pd.RedirectURI = intent.Path()
		pd.With("Email", email).WithError(loginMessage(err))
		h.render(w, r, d, status, pd)
		return
	}

	navigate(w, r, intent.Destination())
}

// RegisterPage renders the registration form.
// GET /register.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageRegister)
	h.render(w, r, d, http.StatusOK, pd)
}

// Register creates an account, applies the optional profile fields and lands on home.
// POST /register.
func (h *UIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("name"))
	email := strings.TrimSpace(r.PostFormValue("email"))
	photoURL := strings.TrimSpace(r.PostFormValue("photo_url"))

	err := withFreshSession(w, r, func(sc *service.SessionContext) error {
		if _, err := sc.CreateAccount(r.Context(), email, r.PostFormValue("password")); err != nil {
			return err
		}
		if name != "" || photoURL != "" {
			upd := domainauth.ProfileUpdate{DisplayName: name, PhotoURL: photoURL}
			if err := sc.UpdateProfile(r.Context(), upd); err != nil {
				h.logger().WarnContext(r.Context(), "update profile after registration", "error", err)
			}
		}
		return nil
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !domainauth.IsIdentityError(err) {
			h.logger().ErrorContext(r.Context(), "create account failed", "error", err)
			status = http.StatusInternalServerError
		}
		d, pd := h.page(r, route.PageRegister)
		pd.With("Name", name).With("Email", email).With("PhotoURL", photoURL).WithError(registerMessage(err))
		h.render(w, r, d, status, pd)
		return
	}
	navigate(w, r, route.HomePath)
}

// AdminPage renders the admin login placeholder.
// GET /admin.
func (h *UIHandlers) AdminPage(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageAdmin)
	h.render(w, r, d, http.StatusOK, pd)
}

// AdminLogin always reports that admin authentication is unavailable.
// POST /admin.
func (h *UIHandlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	d, pd := h.page(r, route.PageAdmin)
	pd.With("Email", strings.TrimSpace(r.PostFormValue("email"))).WithError(msgAdminLogin)
	h.render(w, r, d, http.StatusNotImplemented, pd)
}

// navigate sends the browser to target after a successful form post.
func navigate(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
