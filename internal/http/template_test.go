package httpx

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnu-cse/cse-portal/internal/domain/route"
)

func TestTemplateRenderer_LoadTemplates(t *testing.T) {
	tr := RequireTemplateRenderer(t)
	require.NotNil(t, tr.t)

	names := map[string]bool{}
	for _, tmpl := range tr.t.Templates() {
		names[tmpl.Name()] = true
	}
	for _, expected := range []string{layoutChrome, layoutBare, layoutError, "not-found-content", "resolving-content"} {
		assert.True(t, names[expected], "template %s should be loaded", expected)
	}
}

func TestTemplateRenderer_EveryRouteHasContent(t *testing.T) {
	tr := RequireTemplateRenderer(t)

	for _, d := range route.Portal().Routes() {
		assert.NotNil(t, tr.t.Lookup(ContentTemplateFor(d.Page)), "missing content for %s", d.Page)
	}
}

func TestTemplateRenderer_FromRoot(t *testing.T) {
	if _, err := os.Stat(TemplatePathFromRoot); err != nil {
		t.Skip("not running from the repository root")
	}
	_, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: os.DirFS(TemplatePathFromRoot)})
	require.NoError(t, err)
}

func TestTemplateRenderer_RequiresFS(t *testing.T) {
	_, err := NewTemplateRenderer(TemplateRendererConfig{})
	assert.Error(t, err)
}

func TestTemplateRenderer_FailedExecutionWritesNothing(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.tmpl":        {Data: []byte(`{{define "layout"}}<p>{{renderSection .Page .}}</p>{{end}}`)},
		"pages/broken.tmpl":  {Data: []byte(`{{define "broken-content"}}{{.Missing.Field}}{{end}}`)},
		"partials/none.tmpl": {Data: []byte(`{{define "none"}}{{end}}`)},
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, Logger: quietLogger()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = tr.Render(rec, "layout", http.StatusOK, struct{ Page string }{Page: "broken"})

	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestTemplateRenderer_DevModeReparses(t *testing.T) {
	fsys := fstest.MapFS{
		"layout.tmpl":        {Data: []byte(`{{define "layout"}}v1{{end}}`)},
		"pages/a.tmpl":       {Data: []byte(`{{define "a-content"}}{{end}}`)},
		"partials/none.tmpl": {Data: []byte(`{{define "none"}}{{end}}`)},
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, DevMode: true, Logger: quietLogger()})
	require.NoError(t, err)

	fsys["layout.tmpl"] = &fstest.MapFile{Data: []byte(`{{define "layout"}}v2{{end}}`)}
	rec := httptest.NewRecorder()
	require.NoError(t, tr.Render(rec, "layout", http.StatusOK, nil))

	assert.Equal(t, "v2", rec.Body.String())
}

func TestTemplateFuncs_Initial(t *testing.T) {
	initial := templateFuncs(nil)["initial"].(func(string) string)

	assert.Equal(t, "A", initial("ada"))
	assert.Equal(t, "Ü", initial(" ünal"))
	assert.Equal(t, "?", initial("  "))
}

func TestContentTemplateFor(t *testing.T) {
	assert.Equal(t, "booking-content", ContentTemplateFor(route.PageBooking))
	assert.Equal(t, "not-found-content", ContentTemplateFor(""))
}
