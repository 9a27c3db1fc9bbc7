package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", c.BaseURL)
	assert.Equal(t, "generate_sql", c.Variant)
	assert.Equal(t, "bar", c.ChartType)
	assert.Equal(t, 120*time.Second, c.Timeout())
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveTo(p, Config{
		BaseURL:        "https://askdb.example.com",
		Variant:        "gather_information",
		ChartType:      "pie",
		TimeoutSeconds: 30,
		LogLevel:       "debug",
	}))
	t.Setenv("ASKDB_CHART_TYPE", "doughnut")

	c, err := LoadFrom(p)
	require.NoError(t, err)

	assert.Equal(t, "https://askdb.example.com", c.BaseURL)
	assert.Equal(t, "gather_information", c.Variant)
	assert.Equal(t, "doughnut", c.ChartType)
	assert.Equal(t, 30*time.Second, c.Timeout())
}

func TestSaveToUsesPrivatePermissions(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, SaveTo(p, Config{BaseURL: "http://x"}))

	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "http", cfg: Config{BaseURL: "http://localhost:8000"}},
		{name: "https", cfg: Config{BaseURL: "https://askdb.example.com"}},
		{name: "empty", cfg: Config{}, wantErr: true},
		{name: "no scheme", cfg: Config{BaseURL: "localhost:8000"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeoutZeroDisables(t *testing.T) {
	assert.Equal(t, time.Duration(0), Config{TimeoutSeconds: 0}.Timeout())
}

func TestSetGet(t *testing.T) {
	var c Config
	for _, tc := range []struct{ key, in, want string }{
		{"base_url", "https://askdb.example.com/", "https://askdb.example.com"},
		{"variant", "gather_information", "gather_information"},
		{"chart_type", "radar", "radar"},
		{"timeout_seconds", " 45 ", "45"},
		{"log_level", "debug", "debug"},
		{"user_email", "ana@example.com", "ana@example.com"},
	} {
		require.NoError(t, c.Set(tc.key, tc.in), tc.key)
		got, ok := c.Get(tc.key)
		assert.True(t, ok, tc.key)
		assert.Equal(t, tc.want, got, tc.key)
	}

	assert.Error(t, c.Set("timeout_seconds", "-1"))
	assert.Error(t, c.Set("timeout_seconds", "soon"))
	assert.Error(t, c.Set("password", "x"))
	_, ok := c.Get("password")
	assert.False(t, ok)
	assert.Len(t, Keys(), 6)
}
