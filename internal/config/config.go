// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/csnip/internal/highlight"
	"github.com/xonecas/csnip/internal/project"
)

// Config is the root configuration structure.
type Config struct {
	Snippets SnippetsConfig `toml:"snippets"`
	Project  ProjectConfig  `toml:"project"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
}

// SnippetsConfig controls generated declarations.
type SnippetsConfig struct {
	// PreferFileScopedNamespace selects `namespace X;` when the project
	// supports it. Defaults to false.
	PreferFileScopedNamespace bool `toml:"prefer_file_scoped_namespace"`
}

// ProjectConfig controls descriptor discovery.
type ProjectConfig struct {
	DescriptorExt     string `toml:"descriptor_ext"`
	InheritBuildProps bool   `toml:"inherit_build_props"`
}

// DescriptorExtOrDefault returns the configured extension or ".csproj".
func (p ProjectConfig) DescriptorExtOrDefault() string {
	if p.DescriptorExt == "" {
		return project.DefaultDescriptorExt
	}
	return p.DescriptorExt
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault returns the configured level or info.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// UIConfig holds CLI presentation settings.
type UIConfig struct {
	// SyntaxTheme is the Chroma theme for `csnip generate` output.
	SyntaxTheme string `toml:"syntax_theme"`
}

// SyntaxThemeOrDefault returns the configured syntax theme or the default.
func (u UIConfig) SyntaxThemeOrDefault() string {
	if u.SyntaxTheme == "" {
		return highlight.DefaultTheme
	}
	return u.SyntaxTheme
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{DescriptorExt: project.DefaultDescriptorExt},
		Log:     LogConfig{Level: "info"},
	}
}

// Override adjusts a loaded configuration before it is validated, e.g.
// from command-line flags.
type Override func(*Config)

// Load reads configuration from a TOML file, applies environment variable
// overrides and then overrides, and validates the result. An empty path
// means DefaultPath; a missing default file yields Default, a missing
// explicit file is an error.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnvOverrides(cfg)
	for _, o := range overrides {
		o(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if ext := c.Project.DescriptorExt; ext != "" {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("project.descriptor_ext=%q must start with a dot", ext))
		}
		if strings.ContainsAny(ext, `/\`) {
			errs = append(errs, fmt.Errorf("project.descriptor_ext=%q must not contain path separators", ext))
		}
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"CSNIP_PREFER_FILE_SCOPED", func(v string) {
			if b, err := strconv.ParseBool(v); err == nil {
				cfg.Snippets.PreferFileScopedNamespace = b
			}
		}},
		{"CSNIP_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"CSNIP_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the csnip config directory (~/.config/csnip).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "csnip"), nil
}

// DefaultPath returns ~/.config/csnip/config.toml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
