// Package config loads pdfc settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/mstoykov/envconfig"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/pdfc/pdf/edition"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".pdfc.yaml"

type Config struct {
	Edition      string        `yaml:"edition"`
	LogVerbosity int           `yaml:"log_verbosity"`
	LogFile      string        `yaml:"log_file"`
	Extensions   []string      `yaml:"extensions"`
	Watch        bool          `yaml:"watch"`
	Debounce     time.Duration `yaml:"debounce"`
}

// envConfig mirrors the settings that can come from the environment. Nil
// fields were not set.
type envConfig struct {
	Edition      *string `envconfig:"PDFC_EDITION"`
	LogVerbosity *int    `envconfig:"PDFC_LOG_VERBOSITY"`
	LogFile      *string `envconfig:"PDFC_LOG_FILE"`
	Watch        *bool   `envconfig:"PDFC_WATCH"`
}

func Default() Config {
	return Config{
		Edition:    edition.Latest.String(),
		Extensions: []string{".pdf", ".fdf"},
		Debounce:   100 * time.Millisecond,
	}
}

// Load builds the configuration. A missing file is not an error, unless
// it was named explicitly; lookup stands in for os.LookupEnv.
func Load(fsys afero.Fs, path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.applyFile(fsys, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}

	var env envConfig
	if err := envconfig.Process("", &env, lookup); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	cfg.applyEnv(env)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyFile(fsys afero.Fs, path string) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(env envConfig) {
	if env.Edition != nil {
		c.Edition = *env.Edition
	}
	if env.LogVerbosity != nil {
		c.LogVerbosity = *env.LogVerbosity
	}
	if env.LogFile != nil {
		c.LogFile = *env.LogFile
	}
	if env.Watch != nil {
		c.Watch = *env.Watch
	}
}

func (c Config) Validate() error {
	if _, err := edition.Parse(c.Edition); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.LogVerbosity < 0 {
		return fmt.Errorf("invalid config: negative log verbosity %d", c.LogVerbosity)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("invalid config: negative debounce %s", c.Debounce)
	}
	return nil
}

// ParsedEdition returns the configured edition. Load has already
// validated it.
func (c Config) ParsedEdition() edition.Edition {
	ed, err := edition.Parse(c.Edition)
	if err != nil {
		return edition.Latest
	}
	return ed
}
