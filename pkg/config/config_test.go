package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "stdimg", cfg.Backend)
	assert.Equal(t, filter.SepiaTone, cfg.Filter)
	assert.Equal(t, 0.5, cfg.Intensity)
	assert.Equal(t, 0.1, cfg.Step)
	assert.True(t, cfg.Preview)
	assert.Equal(t, ExportConfig{Dir: ".", Format: "png", Quality: 92}, cfg.Export)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("INSTAFILTER_FILTER", "Gaussian Blur")
	t.Setenv("INSTAFILTER_INTENSITY", "0.25")
	t.Setenv("INSTAFILTER_LOG_LEVEL", "debug")
	t.Setenv("INSTAFILTER_EXPORT_FORMAT", "jpeg")
	t.Setenv("INSTAFILTER_PREVIEW", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filter.GaussianBlur, cfg.Filter)
	assert.Equal(t, 0.25, cfg.Intensity)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "jpeg", cfg.Export.Format)
	assert.False(t, cfg.Preview)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	toml := `
filter = "pixellate"
step = 0.05

[export]
dir = "exports"
quality = 75
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "instafilter.toml"), []byte(toml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filter.Pixellate, cfg.Filter)
	assert.Equal(t, 0.05, cfg.Step)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, 75, cfg.Export.Quality)
	assert.Equal(t, "png", cfg.Export.Format)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INSTAFILTER_STEP=0.2\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("INSTAFILTER_STEP") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Step)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"INSTAFILTER_LOG_LEVEL": "loud",
		"INSTAFILTER_BACKEND":   "opencv",
		"INSTAFILTER_FILTER":    "posterize",
		"INSTAFILTER_INTENSITY": "1.5",
		"INSTAFILTER_STEP":      "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
