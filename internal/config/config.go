// Package config loads the formwizard configuration.
//
// Precedence, highest first:
//  1. FORMWIZARD_* environment variables (FORMWIZARD_SERVER_PORT -> server.port)
//  2. The YAML file passed to Load
//  3. Defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-formwizard/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMWIZARD_"

const maxConfigFileSize = 1024 * 1024

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Backend    BackendConfig    `koanf:"backend"`
	Definition DefinitionConfig `koanf:"definition"`
	Theme      ThemeConfig      `koanf:"theme"`
	Log        logging.Config   `koanf:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	// SessionTTL drops wizard sessions idle for longer.
	SessionTTL time.Duration `koanf:"session_ttl"`
	// AssetsURL is the path the stylesheet and runtime script are served from.
	AssetsURL string `koanf:"assets_url"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BackendConfig points at the solicitudes API. An empty BaseURL keeps
// accepted submissions local.
type BackendConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

// DefinitionConfig selects the wizard definition. An empty Path uses the
// bundled definition.
type DefinitionConfig struct {
	Path string `koanf:"path"`
}

// ThemeConfig names the theme applied to the HTML renderer. Tokens become
// CSS variables; Variants override tokens per variant name.
type ThemeConfig struct {
	Name     string                       `koanf:"name"`
	Variant  string                       `koanf:"variant"`
	Tokens   map[string]string            `koanf:"tokens"`
	Variants map[string]map[string]string `koanf:"variants"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:       "localhost",
			Port:       8080,
			SessionTTL: 30 * time.Minute,
			AssetsURL:  "/assets",
		},
		Backend: BackendConfig{
			Timeout: 10 * time.Second,
		},
		Log: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the optional YAML file at path, then applies environment
// overrides and defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		if content != nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
		}
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("config: backend.timeout must not be negative")
	}
	if c.Theme.Variant != "" {
		if _, ok := c.Theme.Variants[c.Theme.Variant]; !ok {
			return fmt.Errorf("config: theme.variant %q is not defined under theme.variants", c.Theme.Variant)
		}
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config: %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config: %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return content, nil
}

// envKey maps FORMWIZARD_BACKEND_BASE_URL to backend.base_url: the first
// segment is the section, the rest the field name.
func envKey(name string) string {
	lower := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.Host == "" {
		cfg.Server.Host = def.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.SessionTTL == 0 {
		cfg.Server.SessionTTL = def.Server.SessionTTL
	}
	if cfg.Server.AssetsURL == "" {
		cfg.Server.AssetsURL = def.Server.AssetsURL
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = def.Backend.Timeout
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
