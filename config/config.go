package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_sslmode"`
	DBPath     string `mapstructure:"db_path"`

	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
}

var defaults = map[string]interface{}{
	"db_driver":            "postgres",
	"db_host":              "localhost",
	"db_port":              "5432",
	"db_user":              "",
	"db_password":          "",
	"db_name":              "kpa_forms",
	"db_sslmode":           "disable",
	"db_path":              "kpa_forms.db",
	"port":                 "8080",
	"gin_mode":             "release",
	"log_level":            "info",
	"log_format":           "json",
	"cors_allowed_origins": "http://localhost:3000",
	"auto_migrate":         true,
}

// LoadConfig reads configuration from the environment, an optional .env file and an
// optional config.yaml in ./configs or the working directory. Environment wins.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	return cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
