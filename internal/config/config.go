package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingSecret is returned when no JWT signing secret was supplied.
// The secret must come from the config file or the TAREFAHUB_AUTH_SECRET
// environment variable; there is no baked-in default.
var ErrMissingSecret = errors.New("auth.secret is not configured")

type Config struct {
	APIPort  int `mapstructure:"apiPort"`
	Database struct {
		Type     string `mapstructure:"type"`
		Path     string `mapstructure:"path"`
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Name     string `mapstructure:"name"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		SSLMode  string `mapstructure:"sslMode"`
		MaxConns int    `mapstructure:"maxConns"`
	} `mapstructure:"database"`
	Auth struct {
		Secret   string        `mapstructure:"secret"`
		Issuer   string        `mapstructure:"issuer"`
		TokenTTL time.Duration `mapstructure:"tokenTTL"`
	} `mapstructure:"auth"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TAREFAHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: could not read config file %s: %v. Using defaults and environment variables.", path, err)
		}
	}

	// Viper only surfaces environment-only keys to Unmarshal when they are
	// bound explicitly.
	for _, key := range []string{
		"apiPort",
		"database.type", "database.path", "database.host", "database.port",
		"database.name", "database.user", "database.password", "database.sslMode",
		"auth.secret", "auth.issuer", "auth.tokenTTL",
	} {
		envName := "TAREFAHUB_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envName); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = 8080
		log.Println("apiPort not specified, using default 8080")
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
		log.Println("Database type not specified, using sqlite")
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "data/tarefahub.db"
		log.Println("Database path not specified, using default data/tarefahub.db")
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}

	// The signing secret is deliberately never defaulted.
	if cfg.Auth.Secret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "tarefahub"
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
		log.Println("Token TTL not specified, using default 24h")
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	return &cfg, nil
}
