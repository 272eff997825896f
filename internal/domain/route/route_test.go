package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortal_AccessLevels(t *testing.T) {
	table := Portal()

	private := []string{
		"/about", "/classroom", "/lab", "/faculty", "/events", "/gallery", "/contact",
		"/notices", "/notice/{id}", "/manage-notices", "/booking", "/dashboard",
	}
	for _, p := range private {
		d, ok := table.Match(p)
		require.True(t, ok, p)
		assert.True(t, d.Private(), p)
		assert.True(t, d.Chrome, p)
	}

	home, ok := table.Match("/")
	require.True(t, ok)
	assert.False(t, home.Private())
	assert.True(t, home.Chrome)

	for _, p := range []string{"/student-login", "/register", "/admin"} {
		d, ok := table.Match(p)
		require.True(t, ok, p)
		assert.False(t, d.Private(), p)
		assert.False(t, d.Chrome, p)
	}
}

func TestPortal_Order(t *testing.T) {
	routes := Portal().Routes()
	require.Len(t, routes, 16)
	assert.Equal(t, "/", routes[0].Path)
	assert.Equal(t, "/admin", routes[len(routes)-1].Path)
}

func TestTable_RoutesReturnsCopy(t *testing.T) {
	table := Portal()
	routes := table.Routes()
	routes[0].Path = "/mutated"

	d, ok := table.Lookup(PageHome)
	require.True(t, ok)
	assert.Equal(t, "/", d.Path)
}

func TestTable_Match(t *testing.T) {
	table := Portal()

	d, ok := table.Match("/notice/65f1c0ffee")
	require.True(t, ok)
	assert.Equal(t, PageNotice, d.Page)

	_, ok = table.Match("/notice/")
	assert.False(t, ok)

	_, ok = table.Match("/does-not-exist")
	assert.False(t, ok)
}

func TestTable_IsEntryScreen(t *testing.T) {
	table := Portal()
	assert.True(t, table.IsEntryScreen("/student-login"))
	assert.True(t, table.IsEntryScreen("/StudentLogin"))
	assert.True(t, table.IsEntryScreen("/register"))
	assert.True(t, table.IsEntryScreen("/admin"))
	assert.False(t, table.IsEntryScreen("/booking"))
	assert.False(t, table.IsEntryScreen("/"))
}

func TestTable_NavSkipsParameterisedAndBareRoutes(t *testing.T) {
	for _, d := range Portal().Nav() {
		assert.True(t, d.Chrome, d.Path)
		assert.NotEqual(t, "/notice/{id}", d.Path)
	}
}

func TestDescriptor_MuxPattern(t *testing.T) {
	assert.Equal(t, "GET /{$}", Descriptor{Path: "/"}.MuxPattern())
	assert.Equal(t, "GET /notice/{id}", Descriptor{Path: "/notice/{id}"}.MuxPattern())
}

func TestNewTable_IgnoresDuplicatePages(t *testing.T) {
	table := NewTable(
		Descriptor{Path: "/a", Page: "a"},
		Descriptor{Path: "/b", Page: "a"},
	)
	require.Len(t, table.Routes(), 1)
	d, _ := table.Lookup("a")
	assert.Equal(t, "/a", d.Path)
}
