// Package config loads specsheet settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Environment overrides, applied after the file.
const (
	EnvLogLevel    = "SPECSHEET_LOG_LEVEL"
	EnvListen      = "SPECSHEET_LISTEN"
	EnvPushURL     = "SPECSHEET_PUSH_URL"
	EnvPushTimeout = "SPECSHEET_PUSH_TIMEOUT"
)

type Config struct {
	LogLevel string `toml:"log_level"`
	Server   Server `toml:"server"`
	Push     Push   `toml:"push"`
}

type Server struct {
	Listen       string        `toml:"listen"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

type Push struct {
	URL        string        `toml:"url"`
	Hostname   string        `toml:"hostname"` // defaults to os.Hostname
	Timeout    time.Duration `toml:"timeout"`  // per attempt
	MaxElapsed time.Duration `toml:"max_elapsed"`
}

// Default returns the settings used when no file or environment is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: Server{
			Listen:       ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 40 * time.Second,
		},
		Push: Push{
			Timeout:    10 * time.Second,
			MaxElapsed: 2 * time.Minute,
		},
	}
}

// Load decodes path over the defaults and then applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvListen); ok {
		c.Server.Listen = v
	}
	if v, ok := os.LookupEnv(EnvPushURL); ok {
		c.Push.URL = strings.TrimSuffix(v, "/")
	}
	if v, ok := os.LookupEnv(EnvPushTimeout); ok {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPushTimeout, v, err)
		}
		c.Push.Timeout = d
	}
	return nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	var errs []error

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server timeouts must be positive"))
	}
	if c.Push.Timeout <= 0 {
		errs = append(errs, errors.New("push timeout must be positive"))
	}
	if c.Push.MaxElapsed < 0 {
		errs = append(errs, errors.New("push max_elapsed must not be negative"))
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level, or info if it is invalid.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
