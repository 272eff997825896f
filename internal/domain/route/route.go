// Package route holds the static navigation table of the portal.
package route

import "strings"

// Access tells whether a route needs a signed-in identity.
type Access int

const (
	Public Access = iota
	Private
)

func (a Access) String() string {
	if a == Private {
		return "private"
	}
	return "public"
}

// Well-known paths.
const (
	HomePath     = "/"
	LoginPath    = "/student-login"
	RegisterPath = "/register"
	AdminPath    = "/admin"
)

// Page identifiers used by handlers and templates.
const (
	PageHome          = "home"
	PageAbout         = "about"
	PageClassroom     = "classroom"
	PageLab           = "lab"
	PageFaculty       = "faculty"
	PageEvents        = "events"
	PageGallery       = "gallery"
	PageContact       = "contact"
	PageNotices       = "notices"
	PageNotice        = "notice"
	PageManageNotices = "manage-notices"
	PageBooking       = "booking"
	PageDashboard     = "dashboard"
	PageStudentLogin  = "student-login"
	PageRegister      = "register"
	PageAdmin         = "admin"
)

// Descriptor maps one path pattern to a screen.
// Path uses net/http ServeMux wildcard syntax ("/notice/{id}").
type Descriptor struct {
	Path    string
	Page    string
	Title   string
	Access  Access
	Chrome  bool
	Aliases []string
}

// Private reports whether the route is guarded.
func (d Descriptor) Private() bool { return d.Access == Private }

// MuxPattern returns the GET pattern to register with http.ServeMux.
func (d Descriptor) MuxPattern() string {
	if d.Path == HomePath {
		return "GET /{$}"
	}
	return "GET " + d.Path
}

// Matches reports whether a concrete request path is served by this descriptor.
func (d Descriptor) Matches(path string) bool {
	return matchPattern(d.Path, path)
}

// Table is the ordered, immutable list of portal routes.
type Table struct {
	routes []Descriptor
	byPage map[string]int
}

// NewTable compiles descriptors into a table. Later duplicates of a page are ignored.
func NewTable(descriptors ...Descriptor) Table {
	t := Table{
		routes: make([]Descriptor, 0, len(descriptors)),
		byPage: make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if _, dup := t.byPage[d.Page]; dup {
			continue
		}
		d.Aliases = append([]string(nil), d.Aliases...)
		t.byPage[d.Page] = len(t.routes)
		t.routes = append(t.routes, d)
	}
	return t
}

// Portal returns the department portal's route table.
func Portal() Table {
	return NewTable(
		Descriptor{Path: HomePath, Page: PageHome, Title: "Home", Access: Public, Chrome: true},
		Descriptor{Path: "/about", Page: PageAbout, Title: "About", Access: Private, Chrome: true},
		Descriptor{Path: "/classroom", Page: PageClassroom, Title: "Classroom", Access: Private, Chrome: true},
		Descriptor{Path: "/lab", Page: PageLab, Title: "Lab", Access: Private, Chrome: true},
		Descriptor{Path: "/faculty", Page: PageFaculty, Title: "Faculty", Access: Private, Chrome: true},
		Descriptor{Path: "/events", Page: PageEvents, Title: "Events", Access: Private, Chrome: true},
		Descriptor{Path: "/gallery", Page: PageGallery, Title: "Gallery", Access: Private, Chrome: true},
		Descriptor{Path: "/contact", Page: PageContact, Title: "Contact", Access: Private, Chrome: true},
		Descriptor{Path: "/notices", Page: PageNotices, Title: "Notices", Access: Private, Chrome: true},
		Descriptor{Path: "/notice/{id}", Page: PageNotice, Title: "Notice", Access: Private, Chrome: true},
		Descriptor{
			Path: "/manage-notices", Page: PageManageNotices, Title: "Manage Notices",
			Access: Private, Chrome: true,
		},
		Descriptor{Path: "/booking", Page: PageBooking, Title: "Booking", Access: Private, Chrome: true},
		Descriptor{Path: "/dashboard", Page: PageDashboard, Title: "Dashboard", Access: Private, Chrome: true},
		Descriptor{
			Path: LoginPath, Page: PageStudentLogin, Title: "Student Login",
			Access: Public, Aliases: []string{"/StudentLogin"},
		},
		Descriptor{
			Path: RegisterPath, Page: PageRegister, Title: "Register",
			Access: Public, Aliases: []string{"/Register"},
		},
		Descriptor{Path: AdminPath, Page: PageAdmin, Title: "Admin Login", Access: Public},
	)
}

// Routes returns a copy of the descriptors in table order.
func (t Table) Routes() []Descriptor {
	out := make([]Descriptor, len(t.routes))
	copy(out, t.routes)
	return out
}

// Lookup finds the descriptor for a page identifier.
func (t Table) Lookup(page string) (Descriptor, bool) {
	i, ok := t.byPage[page]
	if !ok {
		return Descriptor{}, false
	}
	return t.routes[i], true
}

// Match finds the first descriptor serving path.
func (t Table) Match(path string) (Descriptor, bool) {
	for _, d := range t.routes {
		if d.Matches(path) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// IsEntryScreen reports whether path is a no-chrome entry screen (login, registration, admin login).
// Redirect intents never point at these.
func (t Table) IsEntryScreen(path string) bool {
	for _, d := range t.routes {
		if d.Chrome {
			continue
		}
		if d.Matches(path) {
			return true
		}
		for _, alias := range d.Aliases {
			if alias == path {
				return true
			}
		}
	}
	return false
}

// Nav returns the chrome routes in table order, for building the header navigation.
func (t Table) Nav() []Descriptor {
	out := make([]Descriptor, 0, len(t.routes))
	for _, d := range t.routes {
		if d.Chrome && !strings.Contains(d.Path, "{") {
			out = append(out, d)
		}
	}
	return out
}

func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i, seg := range ps {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if seg != xs[i] {
			return false
		}
	}
	return true
}
