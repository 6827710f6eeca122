// Package config loads importviz settings from defaults, an optional YAML file and
// IMPORTVIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultFormat        = "text"
	DefaultDotOut        = ""
	DefaultIncludeStdlib = false
	DefaultWorkers       = 0
	DefaultGraphName     = ""
	DefaultNoColor       = false

	// FileName is the config file looked up in the working and home directories.
	FileName = ".importviz"

	envPrefix = "IMPORTVIZ"
)

// Config holds the settings shared by the graph and watch commands.
type Config struct {
	Format        string   `mapstructure:"format" validate:"required,oneof=text dot json mermaid"`
	DotOut        string   `mapstructure:"dot_out"`
	IncludeStdlib bool     `mapstructure:"include_stdlib"`
	ExcludeDirs   []string `mapstructure:"exclude_dirs" validate:"dive,required,excludesall=/"`
	Workers       int      `mapstructure:"workers" validate:"min=0,max=256"`
	GraphName     string   `mapstructure:"graph_name"`
	NoColor       bool     `mapstructure:"no_color"`
}

var validate = validator.New()

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Format:        DefaultFormat,
		DotOut:        DefaultDotOut,
		IncludeStdlib: DefaultIncludeStdlib,
		Workers:       DefaultWorkers,
		GraphName:     DefaultGraphName,
		NoColor:       DefaultNoColor,
	}
}

// LoadConfig loads configuration from configPath, or from .importviz.yaml in the
// working or home directory when configPath is empty. A missing implicit file is
// not an error; a missing explicit file is.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("dot_out", DefaultDotOut)
	v.SetDefault("include_stdlib", DefaultIncludeStdlib)
	v.SetDefault("exclude_dirs", []string{})
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("graph_name", DefaultGraphName)
	v.SetDefault("no_color", DefaultNoColor)
}

// Validate checks the struct tags and reports the first failing field.
func (c *Config) Validate() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))

	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return fmt.Errorf("%s: failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}
