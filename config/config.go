// Package config loads service configuration from defaults, an optional
// YAML file, and ECOLENS_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

// envPrefix is the environment variable prefix for all settings
const envPrefix = "ECOLENS_"

// Config holds the full service configuration
type Config struct {
	// Server configures the scoring API HTTP server
	Server Server `koanf:"server" json:"server"`
	// Scoring configures the companion's scoring service client
	Scoring Scoring `koanf:"scoring" json:"scoring"`
	// Cache configures the shared analysis result cache
	Cache Cache `koanf:"cache" json:"cache"`
	// Watcher configures navigation change detection
	Watcher Watcher `koanf:"watcher" json:"watcher"`
}

// Server holds HTTP server settings
type Server struct {
	// Listen is the address the scoring API binds to
	Listen string `koanf:"listen" json:"listen" default:":8080"`
	// ReadTimeout bounds request read time
	ReadTimeout time.Duration `koanf:"readtimeout" json:"readtimeout" default:"30s"`
	// WriteTimeout bounds response write time
	WriteTimeout time.Duration `koanf:"writetimeout" json:"writetimeout" default:"30s"`
	// ShutdownGracePeriod bounds graceful shutdown on termination
	ShutdownGracePeriod time.Duration `koanf:"shutdowngraceperiod" json:"shutdowngraceperiod" default:"10s"`
	// Debug enables debug logging
	Debug bool `koanf:"debug" json:"debug" default:"false"`
	// Pretty enables human readable console logging
	Pretty bool `koanf:"pretty" json:"pretty" default:"false"`
}

// Scoring holds scoring service client settings
type Scoring struct {
	// BaseURL is the scoring service root the companion calls
	BaseURL string `koanf:"baseurl" json:"baseurl" default:"http://localhost:8080"`
	// RequestTimeout bounds a single analyze call
	RequestTimeout time.Duration `koanf:"requesttimeout" json:"requesttimeout" default:"30s"`
}

// Cache holds analysis cache settings
type Cache struct {
	// Kind selects the cache backend, memory or sqlite
	Kind string `koanf:"kind" json:"kind" default:"sqlite"`
	// Dir is the directory holding the sqlite cache file
	Dir string `koanf:"dir" json:"dir" default:"data/cache"`
}

// Watcher holds navigation watcher settings
type Watcher struct {
	// QuietPeriod is how long the URL must stay unchanged before a
	// navigation is considered settled
	QuietPeriod time.Duration `koanf:"quietperiod" json:"quietperiod" default:"1s"`
}

// Load reads configuration from the given file path, environment
// variables, and struct defaults. A nil, empty, or missing file path
// falls back to defaults plus environment overrides.
func Load(path *string) (*Config, error) {
	cfg := &Config{}
	defaults.SetDefaults(cfg)

	k := koanf.New(".")

	if path != nil && *path != "" {
		if _, err := os.Stat(*path); err == nil {
			if err := k.Load(file.Provider(*path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return cfg, nil
}

// envToKey maps ECOLENS_SERVER_LISTEN to server.listen
func envToKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
}
