package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	webembed "github.com/gaayatricouture/couture/web"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEmbeddedContentParses(t *testing.T) {
	site, err := LoadFS(webembed.ContentFS(), webembed.SiteContentFile)
	require.NoError(t, err)

	assert.Equal(t, "Gaayatri's Couture", site.Name)
	assert.NotEmpty(t, site.Nav)
	assert.Len(t, site.Testimonials, 3)
	assert.Len(t, site.Featured, 4)
	assert.Equal(t, "All", site.CatalogCategories[0])
	assert.True(t, site.HasContactService("bridal"))
	assert.False(t, site.HasContactService("unknown"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "name: x\nnav: [{name: Home, path: /}]\ncolour: red\n", "colour"},
		{"missing name", "nav: [{name: Home, path: /}]\n", "name is required"},
		{"missing nav", "name: x\n", "nav link"},
		{"option without value", "name: x\nnav: [{name: Home, path: /}]\ncontact_services: [{label: Other}]\n", "no value"},
		{"not yaml", ":\n\t- [", "parsing site content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestHolder(t *testing.T) {
	a := &Site{Name: "a"}
	h := NewHolder(a)
	assert.Same(t, a, h.Get())

	b := &Site{Name: "b"}
	h.Set(b)
	assert.Same(t, b, h.Get())
}

func writeSite(t *testing.T, path, name string) {
	t.Helper()
	data := []byte("name: " + name + "\nnav: [{name: Home, path: /}]\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestWatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	writeSite(t, path, "before")

	site, err := LoadFile(path)
	require.NoError(t, err)
	h := NewHolder(site)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, h, zerolog.Nop()) }()

	// Rewrite until the watcher is registered; the tick outlasts reloadDelay.
	require.Eventually(t, func() bool {
		writeSite(t, path, "after")
		return h.Get().Name == "after"
	}, 10*time.Second, 4*reloadDelay)

	// Broken content is ignored.
	require.NoError(t, os.WriteFile(path, []byte("nav: []\n"), 0o644))
	time.Sleep(2 * reloadDelay)
	assert.Equal(t, "after", h.Get().Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "site.yaml"), NewHolder(nil), zerolog.Nop())
	assert.Error(t, err)
}
