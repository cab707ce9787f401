// Package config resolves runtime settings from an optional .env file, an
// optional instafilter.toml and INSTAFILTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

// Config holds the resolved settings.
type Config struct {
	LogLevel  zerolog.Level
	Backend   string
	Filter    filter.Variant
	Intensity float64
	Step      float64
	Preview   bool
	Export    ExportConfig
}

// ExportConfig controls where and how rendered images are written.
type ExportConfig struct {
	Dir     string
	Format  string
	Quality int
}

const envPrefix = "INSTAFILTER"

// Load reads .env (if present) into the process environment and resolves
// settings. configDirs are searched for instafilter.toml; a missing file is
// not an error.
func Load(configDirs ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("instafilter")
	v.SetConfigType("toml")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}
	if len(configDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("could not read config file: %w", err)
			}
		}
	}
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("backend", "stdimg")
	v.SetDefault("filter", filter.SepiaTone.String())
	v.SetDefault("intensity", 0.5)
	v.SetDefault("step", 0.1)
	v.SetDefault("preview", true)
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.format", "png")
	v.SetDefault("export.quality", 92)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := parseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("backend")))
	if backend != "stdimg" && backend != "magick" {
		return nil, fmt.Errorf("invalid backend %q: want stdimg or magick", backend)
	}

	variant, err := filter.ParseVariant(v.GetString("filter"))
	if err != nil {
		return nil, fmt.Errorf("invalid default filter: %w", err)
	}

	intensity := v.GetFloat64("intensity")
	if intensity < 0 || intensity > 1 {
		return nil, fmt.Errorf("intensity must be in [0,1], got %v", intensity)
	}

	step := v.GetFloat64("step")
	if step <= 0 || step > 1 {
		return nil, fmt.Errorf("step must be in (0,1], got %v", step)
	}

	return &Config{
		LogLevel:  level,
		Backend:   backend,
		Filter:    variant,
		Intensity: intensity,
		Step:      step,
		Preview:   v.GetBool("preview"),
		Export: ExportConfig{
			Dir:     v.GetString("export.dir"),
			Format:  v.GetString("export.format"),
			Quality: v.GetInt("export.quality"),
		},
	}, nil
}

func parseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("invalid log level %q", s)
}
