package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycast/internal/eventbus"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService(path)

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "api.openweathermap.org")
	assert.NotContains(t, string(data), "api_key")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.APIKey = "file-key"
	cfg.Provider.RequestsPerSecond = 0.5
	cfg.UISettings.ShowIconURL = true
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromPathFillsMissingSectionsWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n[ui]\nshow_icon_url = true\n"), 0600))

	cfg, err := NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.Provider.BaseURL)
	assert.Equal(t, DefaultBurst, cfg.Provider.Burst)
	assert.True(t, cfg.UISettings.ShowIconURL)
}

func TestLoadFromPathRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("version = [\n"), 0600))
	_, err := NewConfigService(bad).LoadFromPath(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	zeroRate := filepath.Join(dir, "rate.toml")
	require.NoError(t, os.WriteFile(zeroRate, []byte("[provider]\nrequests_per_second = 0.0\n"), 0600))
	_, err = NewConfigService(zeroRate).LoadFromPath(zeroRate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requests_per_second")

	_, err = NewConfigService(zeroRate).LoadFromPath(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestResolveAPIKeyPrefersEnvironment(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "from-file"

	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvFallbackAPIKey, "")
	assert.Equal(t, "from-file", cfg.ResolveAPIKey())

	t.Setenv(EnvFallbackAPIKey, "fallback")
	assert.Equal(t, "fallback", cfg.ResolveAPIKey())

	t.Setenv(EnvAPIKey, "primary")
	assert.Equal(t, "primary", cfg.ResolveAPIKey())
}

func TestApplyEnvOverridesBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv(EnvBaseURL, "http://127.0.0.1:9999")
	cfg.ApplyEnv()
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Provider.BaseURL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SKYCAST_TEST_DOTENV=loaded\n"), 0600))
	t.Setenv("SKYCAST_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("SKYCAST_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "loaded", os.Getenv("SKYCAST_TEST_DOTENV"))
}

func TestLoadPublishesEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	events := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) { events <- e })
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) { events <- e })

	path := filepath.Join(t.TempDir(), "config.toml")
	_, err := NewConfigServiceWithBus(path, bus).Load()
	require.NoError(t, err)

	seen := map[eventbus.EventType]bool{}
	for len(seen) < 2 {
		select {
		case e := <-events:
			seen[e.Type()] = true
		case <-time.After(time.Second):
			t.Fatalf("missing events, saw %v", seen)
		}
	}
}
