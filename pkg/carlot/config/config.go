// Package config resolves settings from flags, environment, an optional
// config file and .env, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Keys shared by flags, env vars and config files.
const (
	KeyConfigFile       = "config"
	KeyAPIURL           = "api-url"
	KeyServerAddress    = "server-address"
	KeyLogLevel         = "log-level"
	KeyCatalogAddress   = "catalog-address"
	KeyCatalogPublicURL = "catalog-public-url"

	envPrefix = "CARLOT"
)

// ErrNoAPIURL is returned when a command needs the catalog API but none is set.
var ErrNoAPIURL = errors.New("api url is not configured: set --api-url or CARLOT_API_URL")

// Config holds resolved settings.
type Config struct {
	APIURL           string
	ServerAddress    string
	LogLevel         string
	CatalogAddress   string
	CatalogPublicURL string
}

// Setup registers defaults and environment bindings on v.
func Setup(v *viper.Viper) {
	v.SetDefault(KeyServerAddress, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCatalogAddress, ":3000")
	v.SetDefault(KeyCatalogPublicURL, "http://localhost:3000")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// SERVER_ADDRESS predates the prefixed variables.
	_ = v.BindEnv(KeyServerAddress, "CARLOT_SERVER_ADDRESS", "SERVER_ADDRESS")
}

// Load reads the optional config file and resolves every key.
func Load(v *viper.Viper) (Config, error) {
	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := Config{
		APIURL:           strings.TrimRight(v.GetString(KeyAPIURL), "/"),
		ServerAddress:    v.GetString(KeyServerAddress),
		LogLevel:         v.GetString(KeyLogLevel),
		CatalogAddress:   v.GetString(KeyCatalogAddress),
		CatalogPublicURL: strings.TrimRight(v.GetString(KeyCatalogPublicURL), "/"),
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: %w", KeyLogLevel, cfg.LogLevel, err)
	}
	return cfg, nil
}

// RequireAPI returns ErrNoAPIURL when no catalog API is configured.
func (c Config) RequireAPI() error {
	if c.APIURL == "" {
		return ErrNoAPIURL
	}
	return nil
}

// NewLogger builds the process logger at the configured level.
func (c Config) NewLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}
