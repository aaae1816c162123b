package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the relay service configuration.
type Config struct {
	EnvVars EnvVars `json:"env"`
}

// EnvVars holds environment variables required by the relay service.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port           string   `env:"PORT" envDefault:"5000"`
	EdamamAppID    string   `env:"EDAMAM_APP_ID"`
	EdamamAppKey   string   `env:"EDAMAM_APP_KEY"`
	EdamamUserID   string   `env:"EDAMAM_USER_ID"`
	EdamamEndpoint string   `env:"EDAMAM_ENDPOINT" envDefault:"https://api.edamam.com/search"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
}

// Credentials are the three Edamam secrets injected into every upstream call.
type Credentials struct {
	AppID  string
	AppKey string
	UserID string
}

// Validate reports the first missing credential.
func (c Credentials) Validate() error {
	switch {
	case c.AppID == "":
		return fmt.Errorf("edamam app id is missing")
	case c.AppKey == "":
		return fmt.Errorf("edamam app key is missing")
	case c.UserID == "":
		return fmt.Errorf("edamam user id is missing")
	}
	return nil
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// Credentials returns the upstream credentials held by the config.
func (c *Config) Credentials() Credentials {
	return Credentials{
		AppID:  c.EnvVars.EdamamAppID,
		AppKey: c.EnvVars.EdamamAppKey,
		UserID: c.EnvVars.EdamamUserID,
	}
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

// ClientConfig holds the search client configuration shared by the web and
// terminal frontends.
type ClientConfig struct {
	EnvVars ClientEnvVars `json:"env"`
}

// ClientEnvVars holds environment variables read by the search client.
type ClientEnvVars struct {
	Port       string        `env:"PORT" envDefault:"3000"`
	RelayURL   string        `env:"RELAY_URL" envDefault:"http://localhost:5000"`
	ImageHosts []string      `env:"IMAGE_HOSTS" envSeparator:"," optional:"true"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

// LoadClientConfig parses environment variables into the ClientConfig struct.
func LoadClientConfig() (*ClientConfig, error) {
	var config ClientConfig
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required ClientEnvVars fields are set.
func (c *ClientConfig) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			name := fieldType.Tag.Get("env")
			if name == "" {
				name = fieldType.Name
			}
			return fmt.Errorf("$%s must be set", name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
