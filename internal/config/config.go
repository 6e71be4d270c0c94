package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL    = "https://fakestoreapi.com"
	defaultTimeout    = 10 * time.Second
	defaultLoginDelay = time.Second
	defaultPriceMax   = 1000
)

// Duration lets yaml carry values like "250ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Query   QueryConfig   `yaml:"query"`
}

type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
}

type StorageConfig struct {
	// Path of the sqlite file backing local storage. Empty means the
	// platform default under the user config dir.
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// LoginDelay is the simulated network latency for login/signup.
	LoginDelay Duration `yaml:"login_delay"`
}

type QueryConfig struct {
	PriceMin int64 `yaml:"price_min"`
	PriceMax int64 `yaml:"price_max"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: defaultBaseURL,
			Timeout: Duration(defaultTimeout),
		},
		Auth: AuthConfig{
			LoginDelay: Duration(defaultLoginDelay),
		},
		Query: QueryConfig{
			PriceMin: 0,
			PriceMax: defaultPriceMax,
		},
	}
}

// Load layers defaults, then the yaml file at path (optional when path is
// empty), then STOREFRONT_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STOREFRONT_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("STOREFRONT_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("STOREFRONT_LOGIN_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Auth.LoginDelay = Duration(d)
		}
	}
	if v := os.Getenv("STOREFRONT_PRICE_MIN"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Query.PriceMin = n
		}
	}
	if v := os.Getenv("STOREFRONT_PRICE_MAX"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Query.PriceMax = n
		}
	}
}

// StoragePath resolves the configured sqlite path, defaulting to
// storefront.db under the user config dir.
func (c Config) StoragePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(dir, "nexus-cart")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "storefront.db"), nil
}
