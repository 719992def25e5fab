// Package config loads clidrive settings from defaults, an optional YAML
// file, CLIDRIVE_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/timvw/clidrive/harness"
)

// EnvPrefix is the prefix of environment variables read as settings
const EnvPrefix = "clidrive"

// Config represents the root structure of the YAML configuration file.
type Config struct {
	// Interpreter runs inline and file scripts.
	Interpreter string `mapstructure:"interpreter" validate:"required"`
	// Extension is appended to temporary script names.
	Extension string        `mapstructure:"extension" validate:"required"`
	Delay     time.Duration `mapstructure:"delay"     validate:"gte=0"`
	// TempDir holds temporary scripts; empty means the OS temp dir.
	TempDir string `mapstructure:"temp_dir"`
	// Shell runs command lines, see harness.ShellByName. Empty picks the
	// platform default.
	Shell string `mapstructure:"shell" validate:"omitempty,oneof=sh bash zsh dash ksh pwsh powershell cmd"`
	Debug bool   `mapstructure:"debug"`
	TTY   bool   `mapstructure:"tty"`
	Log   Log    `mapstructure:"log"`
}

// Log configuration settings.
type Log struct {
	// Format is "text" or "json".
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("interpreter", harness.DefaultInterpreter)
	v.SetDefault("extension", harness.DefaultScriptExt)
	v.SetDefault("delay", harness.DefaultDelay)
	v.SetDefault("temp_dir", "")
	v.SetDefault("shell", "")
	v.SetDefault("debug", false)
	v.SetDefault("tty", false)
	v.SetDefault("log.format", "text")
}

// Load resolves the configuration. The file at path is read from fs when
// path is not empty; a missing file is an error.
func Load(v *viper.Viper, fs afero.Fs, path string) (Config, error) {
	SetDefaults(v)

	v.SetFs(fs)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// HarnessOptions translates the configuration into harness options
func (c Config) HarnessOptions() ([]harness.Option, error) {
	shell, err := harness.ShellByName(c.Shell)
	if err != nil {
		return nil, err
	}

	opts := []harness.Option{harness.WithShell(shell)}
	if c.TempDir != "" {
		opts = append(opts, harness.WithTempDir(c.TempDir))
	}
	return opts, nil
}
