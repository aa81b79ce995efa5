package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"skycast/internal/domain"
	"skycast/internal/eventbus"
)

const (
	// CurrentVersion is written to new config files
	CurrentVersion = 1

	DefaultBaseURL           = "https://api.openweathermap.org"
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 3

	EnvAPIKey         = "SKYCAST_API_KEY"
	EnvFallbackAPIKey = "OPENWEATHER_API_KEY"
	EnvBaseURL        = "SKYCAST_BASE_URL"
)

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	APIKey     string           `toml:"api_key,omitempty"`
	Provider   ProviderSettings `toml:"provider"`
	UISettings UISettings       `toml:"ui"`
}

// ProviderSettings configures the weather provider client
type ProviderSettings struct {
	BaseURL           string  `toml:"base_url"`
	IconHost          string  `toml:"icon_host"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	StartFocused bool `toml:"start_focused"`
	ShowIconURL  bool `toml:"show_icon_url"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for the default location when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns <user config dir>/skycast/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "skycast", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, writing defaults when it does not exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cs.Save(cfg); err != nil {
			return nil, err
		}
		cs.publish(domain.ConfigLoadedEvent{Path: cs.filePath})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publish(domain.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(domain.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// may hold the API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publish(event domain.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(event)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Provider: ProviderSettings{
			BaseURL:           DefaultBaseURL,
			IconHost:          domain.DefaultIconHost,
			RequestsPerSecond: DefaultRequestsPerSecond,
			Burst:             DefaultBurst,
		},
		UISettings: UISettings{
			StartFocused: true,
			ShowIconURL:  false,
		},
	}
}

// Validate reports settings the client cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider.BaseURL) == "" {
		return errors.New("provider.base_url must not be empty")
	}
	if c.Provider.RequestsPerSecond <= 0 {
		return fmt.Errorf("provider.requests_per_second must be positive, got %v", c.Provider.RequestsPerSecond)
	}
	if c.Provider.Burst < 1 {
		return fmt.Errorf("provider.burst must be at least 1, got %d", c.Provider.Burst)
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment settings that are not secrets
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.Provider.BaseURL = v
	}
}

// ResolveAPIKey returns the provider credential: environment first, then the config file
func (c *Config) ResolveAPIKey() string {
	for _, name := range []string{EnvAPIKey, EnvFallbackAPIKey} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.APIKey)
}
