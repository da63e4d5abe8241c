// Package config loads the service configuration from yaml files with
// environment variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

// Config is the root configuration of the bot.
type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port" validate:"min=0,max=65535"`
	} `json:"http" yaml:"http"`

	Postgres *PostgresConfig `json:"postgres" yaml:"postgres" validate:"required"`

	// Alerting configures the feed polling and matching pipeline.
	Alerting *AlertingConfig `json:"alerting" yaml:"alerting" validate:"required"`

	// Chat configures the outbound chat transport.
	Chat *ChatConfig `json:"chat" yaml:"chat"`
}

// Log configures the slog handler.
type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PostgresConfig holds the connection settings for the persistence store.
type PostgresConfig struct {
	Host     string `json:"host" yaml:"host" validate:"required"`
	Port     int    `json:"port" yaml:"port" validate:"required"`
	Username string `json:"username" yaml:"username" validate:"required"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database" validate:"required"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`
}

// AlertingConfig configures the ingestion pipeline: which feeds to poll, how
// often, and how registered points are matched against alert areas.
type AlertingConfig struct {
	// Feeds is the list of alert feed URLs polled every cycle.
	Feeds []string `json:"feeds" yaml:"feeds" validate:"required,min=1,dive,url"`

	// CheckInterval is the pause between poll cycles.
	CheckInterval time.Duration `json:"checkInterval" yaml:"checkInterval" validate:"required"`

	// FetchTimeout bounds a single feed request.
	FetchTimeout time.Duration `json:"fetchTimeout" yaml:"fetchTimeout"`

	// CoordinateDigits is the decimal precision registered points are
	// rounded to. It also derives the tolerance-matching distance.
	CoordinateDigits int `json:"coordinateDigits" yaml:"coordinateDigits" validate:"min=0,max=8"`

	// Matching selects the spatial matching mode: "contains" for strict
	// containment, "tolerance" to also match points within the rounding
	// tolerance of an area boundary.
	Matching string `json:"matching" yaml:"matching" validate:"oneof=contains tolerance"`

	// WelcomeMessage is appended to the reply for a subscriber's first
	// registration. The {owner} placeholder expands to OwnerContact.
	WelcomeMessage string `json:"welcomeMessage" yaml:"welcomeMessage"`

	// OwnerContact is the operator address shown in the help text.
	OwnerContact string `json:"ownerContact" yaml:"ownerContact"`
}

// ChatConfig selects the outbound transport provider.
type ChatConfig struct {
	// Provider is "webhook" to POST messages to an endpoint, or "console"
	// to log them (development).
	Provider string `json:"provider" yaml:"provider" validate:"omitempty,oneof=webhook console"`

	// WebhookEndpoint receives {recipient, text} posts for the webhook
	// provider.
	WebhookEndpoint string `json:"webhookEndpoint" yaml:"webhookEndpoint"`
}

// LoadWithEnv loads <name>.yaml through koanf, applies environment variable
// overrides (ALERTING_COORDINATEDIGITS=4 overrides alerting.coordinateDigits)
// and unmarshals into T.
func LoadWithEnv[T any](name string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for the config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)

				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", name)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", name)
	}

	// Environment variables override file values: SECTION_KEY -> section.key
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return strings.ReplaceAll(strings.ToLower(k), "_", "."), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", name)
	}

	return cfg, nil
}

// New loads and validates the bot configuration. Validation failures are
// fatal at startup.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if err := cfg.applyDefaults().validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() *Config {
	if cfg.Alerting != nil {
		if cfg.Alerting.FetchTimeout <= 0 {
			cfg.Alerting.FetchTimeout = 30 * time.Second
		}
		if cfg.Alerting.Matching == "" {
			cfg.Alerting.Matching = "tolerance"
		}
	}
	if cfg.Chat != nil && cfg.Chat.Provider == "" {
		cfg.Chat.Provider = "console"
	}

	return cfg
}

func (cfg *Config) validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	if cfg.Chat != nil && cfg.Chat.Provider == "webhook" && cfg.Chat.WebhookEndpoint == "" {
		return errors.New("invalid configuration: chat.webhookEndpoint is required for the webhook provider")
	}

	return nil
}
