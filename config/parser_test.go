package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o600))
	return p
}

func TestParseConfig(t *testing.T) {
	p := writeConfig(t, `
api_url: https://admin.example.com/api
language: ar
page_size: 25
search_debounce: 150ms
guard_stale_responses: false
resources:
  - name: users
    search_param: PageSearch
    permission: users.read
  - name: sites
    path: /v2/sites
`)

	cfg, err := ParseConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "https://admin.example.com/api", cfg.ApiUrl)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.StaleGuard())
	require.Len(t, cfg.Resources, 2)

	users, ok := cfg.Resource(ResourceUsers)
	require.True(t, ok)
	assert.Equal(t, "PageSearch", users.SearchParam)
	assert.Equal(t, "/users", users.Path)
	assert.Equal(t, 25, users.PageSize)

	sites, ok := cfg.Resource(ResourceSites)
	require.True(t, ok)
	assert.Equal(t, "search", sites.SearchParam)
	assert.Equal(t, "/v2/sites", sites.Path)

	_, ok = cfg.Resource(ResourceVendors)
	assert.False(t, ok)
}

func TestParseConfig_DefaultsAllResources(t *testing.T) {
	p := writeConfig(t, "api_url: http://localhost:9000\n")

	cfg, err := ParseConfig(p)
	require.NoError(t, err)

	assert.True(t, cfg.StaleGuard())
	assert.Equal(t, 10, cfg.PageSize)
	assert.Len(t, cfg.Resources, len(AllResources))
}

func TestParseConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
	}{
		{name: "empty api url", contents: "api_url: \"\"\n"},
		{name: "api url not a url", contents: "api_url: localhost\n"},
		{name: "unknown resource", contents: "api_url: http://x.example\nresources:\n  - name: planets\n"},
		{name: "duplicate resource", contents: "api_url: http://x.example\nresources:\n  - name: users\n  - name: users\n"},
		{name: "page size too large", contents: "api_url: http://x.example\npage_size: 1000\n"},
		{name: "not yaml", contents: "api_url: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig(writeConfig(t, tc.contents))
			assert.Error(t, err)
			assert.IsType(t, parsingError{}, err)
		})
	}
}

func TestParseConfig_CreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ADMIN_DASH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := ParseConfig("")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, DashDir, ConfigYamlFileName))
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.ApiUrl)
	assert.Len(t, cfg.Resources, len(AllResources))
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce)
}
