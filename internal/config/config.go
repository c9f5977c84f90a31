package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	Assistant ServiceConfig
	Report    ServiceConfig
	Map       ServiceConfig
	Session   SessionConfig
	Location  LocationConfig
	Log       LogConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// ServiceConfig holds the connection settings for one remote collaborator
// (assistant, report generator or map data service).
type ServiceConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SessionConfig holds the session persistence configuration
type SessionConfig struct {
	DBPath    string `mapstructure:"db_path"`
	SessionID string `mapstructure:"session_id"`
}

// LocationConfig holds the district extraction configuration. An empty
// Districts list means the built-in Tamil Nadu district set is used.
type LocationConfig struct {
	Fallback  string   `mapstructure:"fallback"`
	Districts []string `mapstructure:"districts"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from config.yaml, or from the file named by
// the CONFIG_PATH environment variable when set. Missing keys fall back to
// defaults suitable for local development; a missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("assistant.base_url", "http://localhost:8000/api")
	v.SetDefault("assistant.timeout_seconds", 60)
	v.SetDefault("report.base_url", "http://localhost:8000/api")
	v.SetDefault("report.timeout_seconds", 120)
	v.SetDefault("map.base_url", "http://localhost:8000/api")
	v.SetDefault("map.timeout_seconds", 15)
	v.SetDefault("session.db_path", "jalrakshak.db")
	v.SetDefault("location.fallback", "Tamil Nadu District")
	v.SetDefault("log.level", "info")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Session.DBPath = filepath.Clean(config.Session.DBPath)

	return &config, nil
}
