// Package config loads run settings from defaults, an optional YAML file, GROUPS_
// environment variables and explicit overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix   = "GROUPS_"
	PathEnvVar  = "GROUPS_CONFIG"
	DefaultFile = "groups.yaml"
)

type Config struct {
	GroupSize     int   `koanf:"group_size" validate:"gt=0"`
	DesiredWanted int   `koanf:"desired_wanted" validate:"gte=0"`
	Iterations    int   `koanf:"iterations" validate:"gt=0"`
	Seed          int64 `koanf:"seed"`

	// Groups is the number of groups to create when the roster has none; 0 derives it
	// from the population.
	Groups int  `koanf:"groups" validate:"gte=0"`
	Strict bool `koanf:"strict"`

	Input    string   `koanf:"input"`
	Database Database `koanf:"database"`
	Log      Log      `koanf:"log"`
	Output   string   `koanf:"output" validate:"oneof=text json"`
}

type Database struct {
	DSN   string `koanf:"dsn"`
	Round string `koanf:"round" validate:"required_with=DSN"`
}

type Log struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func Default() *Config {
	return &Config{
		GroupSize:     4,
		DesiredWanted: 1,
		Iterations:    10,
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Output: "text",
	}
}

// Load reads the layered configuration. path names the YAML file; when empty,
// GROUPS_CONFIG and then ./groups.yaml are tried. overrides are koanf keys set last,
// typically from flags the user changed.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configPath, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	for key, val := range overrides {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("set %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile(path string) (string, error) {
	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile, nil
	}
	return "", nil
}

// envTransform maps GROUPS_DATABASE__DSN to database.dsn.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	return v
}

// Validate reports every failing field as "path: rule".
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, rule))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
