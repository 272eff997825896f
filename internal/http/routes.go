package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	cseportal "github.com/jnu-cse/cse-portal"
	"github.com/jnu-cse/cse-portal/internal/domain/portal"
	"github.com/jnu-cse/cse-portal/internal/domain/route"
	"github.com/jnu-cse/cse-portal/internal/ports"
	"github.com/jnu-cse/cse-portal/internal/service"
)

const staticPathFromRoot = "frontend/static"

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Registry *service.SessionRegistry
	API      ports.PortalAPI
	// Routes defaults to route.Portal().
	Routes route.Table

	// TemplateFS and StaticFS override where templates and static assets come from.
	// When nil they are read from disk in dev mode and from the embedded copy otherwise.
	TemplateFS fs.FS
	StaticFS   fs.FS

	CookieDomain string
	// CallbackURL is the absolute URL of GET /auth/callback.
	CallbackURL    string
	ResolveTimeout time.Duration
	// SessionTTL sets the session cookie lifetime; 0 keeps it for the browser session.
	SessionTTL time.Duration

	CompressionEnabled bool
	CompressionLevel   int

	IsDev  bool
	Logger *slog.Logger
	Now    func() time.Time
}

// NewRouter builds the portal's HTTP handler: every screen in the route table,
// the sign-in endpoints and static assets, behind the shared middleware chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Registry == nil {
		return nil, errors.New("session registry is required")
	}
	if services.API == nil {
		return nil, errors.New("portal API is required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	routes := services.Routes
	if len(routes.Routes()) == 0 {
		routes = route.Portal()
	}

	templateFS, err := templateSource(services)
	if err != nil {
		return nil, err
	}
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	ui := &UIHandlers{
		T:            renderer,
		Routes:       routes,
		API:          services.API,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
		Now:          services.Now,
	}
	auth := &AuthHandlers{
		Routes:         routes,
		CallbackURL:    services.CallbackURL,
		CookieDomain:   services.CookieDomain,
		ResolveTimeout: services.ResolveTimeout,
		Logger:         logger,
	}
	guard := RequireIdentity(GuardConfig{
		ResolveTimeout: services.ResolveTimeout,
		Placeholder:    http.HandlerFunc(ui.Resolving),
		Logger:         logger,
	})

	app := http.NewServeMux()
	registerScreenRoutes(app, ui, guard)
	registerFormRoutes(app, ui, guard)
	registerAuthRoutes(app, auth, guard)
	app.HandleFunc("/", ui.NotFound)

	var session http.Handler = app
	session = WithSession(SessionConfig{
		Registry:     services.Registry,
		CookieDomain: services.CookieDomain,
		CookieTTL:    services.SessionTTL,
		Logger:       logger,
	})(session)
	session = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(session)

	root := http.NewServeMux()
	root.Handle("GET /healthz", healthHandler(services.Registry))
	root.Handle("HEAD /healthz", healthHandler(services.Registry))
	static, err := staticHandler(services)
	if err != nil {
		return nil, err
	}
	root.Handle("GET /static/", static)
	root.Handle("/", session)

	var handler http.Handler = root
	if services.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: services.CompressionLevel, Logger: logger})(handler)
	}
	handler = BrowserDetection()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// registerScreenRoutes compiles the route table into GET handlers. Private screens
// sit behind the guard and every alias answers with a permanent redirect.
func registerScreenRoutes(mux *http.ServeMux, ui *UIHandlers, guard func(http.Handler) http.Handler) {
	screens := map[string]http.HandlerFunc{
		route.PageHome:          ui.Home,
		route.PageNotices:       ui.Notices,
		route.PageNotice:        ui.Notice,
		route.PageManageNotices: ui.ManageNotices,
		route.PageClassroom:     ui.Bookings(route.PageClassroom, portal.BookingClassroom),
		route.PageLab:           ui.Bookings(route.PageLab, portal.BookingLab),
		route.PageBooking:       ui.BookingForm,
		route.PageDashboard:     ui.Dashboard,
		route.PageEvents:        ui.Events,
		route.PageGallery:       ui.Gallery,
		route.PageStudentLogin:  ui.LoginPage,
		route.PageRegister:      ui.RegisterPage,
		route.PageAdmin:         ui.AdminPage,
	}

	for _, d := range ui.Routes.Routes() {
		var h http.Handler = ui.Screen(d)
		if fn, ok := screens[d.Page]; ok {
			h = fn
		}
		if d.Private() {
			h = guard(h)
		}
		mux.Handle(d.MuxPattern(), h)
		for _, alias := range d.Aliases {
			mux.Handle("GET "+alias, permanentRedirect(d.Path))
		}
	}
}

func registerFormRoutes(mux *http.ServeMux, ui *UIHandlers, guard func(http.Handler) http.Handler) {
	mux.HandleFunc("POST "+route.LoginPath, ui.Login)
	mux.HandleFunc("POST "+route.RegisterPath, ui.Register)
	mux.HandleFunc("POST "+route.AdminPath, ui.AdminLogin)

	mux.Handle("POST /manage-notices", guard(http.HandlerFunc(ui.CreateNotice)))
	mux.Handle("POST /manage-notices/{id}", guard(http.HandlerFunc(ui.UpdateNotice)))
	mux.Handle("POST /manage-notices/{id}/delete", guard(http.HandlerFunc(ui.DeleteNotice)))
	mux.Handle("POST /booking", guard(http.HandlerFunc(ui.Book)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, guard func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /auth/federated", h.FederatedBegin)
	mux.HandleFunc("GET /auth/callback", h.FederatedCallback)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.Handle("POST /profile", guard(http.HandlerFunc(h.Profile)))
}

// permanentRedirect sends legacy paths to their canonical route, keeping the query.
func permanentRedirect(target string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dest := target
		if r.URL.RawQuery != "" {
			dest += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, dest, http.StatusMovedPermanently)
	})
}

func templateSource(services RouterServices) (fs.FS, error) {
	switch {
	case services.TemplateFS != nil:
		return services.TemplateFS, nil
	case services.IsDev:
		return os.DirFS(TemplatePathFromRoot), nil
	}
	sub, err := fs.Sub(cseportal.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// staticHandler serves /static/*. Dev mode reads from disk and disables caching.
func staticHandler(services RouterServices) (http.Handler, error) {
	fsys := services.StaticFS
	if fsys == nil {
		if services.IsDev {
			fsys = os.DirFS(staticPathFromRoot)
		} else {
			sub, err := fs.Sub(cseportal.StaticFS, staticPathFromRoot)
			if err != nil {
				return nil, fmt.Errorf("embedded static assets: %w", err)
			}
			fsys = sub
		}
	}
	files := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if services.IsDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	}), nil
}
