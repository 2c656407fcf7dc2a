package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/deckshell/internal/foundation/errors"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "deckshell.yaml"

// Config describes where the shell's inputs live and how it is produced.
type Config struct {
	// ClientRoot holds the base index.html template and the client entry module.
	ClientRoot string `yaml:"client_root"`
	// UserRoot is the deck project directory. Its index.html is subject to the doctype check.
	UserRoot string `yaml:"user_root"`
	// Roots lists override roots (themes, addons, user) in precedence order.
	// The user root is appended when it is not listed.
	Roots []string `yaml:"roots"`
	// Deck is the slides markdown file carrying the headmatter.
	Deck string `yaml:"deck"`
	// Entry is the client entry module injected for __ENTRY__.
	Entry string `yaml:"entry"`
	// Base is the public base path, e.g. "/" or "/talks/".
	Base   string       `yaml:"base"`
	Mode   Mode         `yaml:"mode"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
}

// OutputConfig controls where build mode writes the shell.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// ServerConfig controls the dev server.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	MetricsPath string        `yaml:"metrics_path"`
	Debounce    time.Duration `yaml:"debounce"`
}

// Load reads the YAML configuration at path, expanding ${VAR} references from the
// environment (after loading .env files), then applies defaults and validates.
// Relative paths are resolved against the directory of the configuration file.
func Load(path string) (*Config, error) {
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", path).
				WithCause(err).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration").
			WithContext("path", path).
			Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "decode configuration").
			Fatal().
			WithContext("path", path).
			Build()
	}

	if err := cfg.Finalize(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize applies defaults relative to dir and validates the result. It is used by
// Load and by callers that assemble a Config from flags.
func (c *Config) Finalize(dir string) error {
	c.applyDefaults(dir)
	return c.Validate()
}
