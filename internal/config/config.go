package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/viewctrls/internal/manifest"
)

// Config holds application configuration.
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Manifest ManifestConfig `mapstructure:"manifest"`
}

// EngineConfig holds option defaults for manifests that leave them unset.
type EngineConfig struct {
	CapitalizeLabels bool   `mapstructure:"capitalize_labels"`
	ControlClass     string `mapstructure:"control_class"`
	WrapperClass     string `mapstructure:"wrapper_class"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ManifestConfig holds the manifest used when none is given.
type ManifestConfig struct {
	Path string `mapstructure:"path"`
}

// Defaults returns the engine defaults in manifest form.
func (c Config) Defaults() manifest.Defaults {
	return manifest.Defaults{
		CapitalizeLabels: c.Engine.CapitalizeLabels,
		ControlClass:     c.Engine.ControlClass,
		WrapperClass:     c.Engine.WrapperClass,
	}
}

// Path returns the config file location: explicit, then VIEWCTRLS_CONFIG,
// then ~/.config/viewctrls/config.toml.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv("VIEWCTRLS_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "viewctrls", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// VIEWCTRLS_. A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("engine.capitalize_labels", false)
	v.SetDefault("engine.control_class", "")
	v.SetDefault("engine.wrapper_class", "")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "viewctrls", "viewctrls.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("manifest.path", "")

	v.SetConfigType("toml")
	v.SetConfigFile(Path(path))

	v.SetEnvPrefix("VIEWCTRLS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to path (see Path), creating the directory if needed.
func Save(path string, cfg Config) error {
	path = Path(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("engine.capitalize_labels", cfg.Engine.CapitalizeLabels)
	v.Set("engine.control_class", cfg.Engine.ControlClass)
	v.Set("engine.wrapper_class", cfg.Engine.WrapperClass)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("manifest.path", cfg.Manifest.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
