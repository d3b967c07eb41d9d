// Package config loads server settings from defaults, an optional config file and the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
)

// ServerConfig is the full application configuration. Environment variables take precedence over the file.
type ServerConfig struct {
	App struct {
		Name  string `env:"APP_NAME" json:"name" yaml:"name"`
		Addr  string `env:"APP_ADDR" json:"addr" yaml:"addr"`
		Debug bool   `env:"APP_DEBUG" json:"debug" yaml:"debug"`
	} `json:"app" yaml:"app"`
	Database struct {
		Driver string `env:"DB_DRIVER" json:"driver" yaml:"driver"`
		DSN    string `env:"DB_DSN" json:"dsn" yaml:"dsn"`
	} `json:"database" yaml:"database"`
	Catalog struct {
		Source    string `env:"CATALOG_SOURCE" json:"source" yaml:"source"` // local or remote
		RemoteURL string `env:"CATALOG_REMOTE_URL" json:"remoteUrl" yaml:"remoteUrl"`
		SeedFile  string `env:"CATALOG_SEED_FILE" json:"seedFile" yaml:"seedFile"`
	} `json:"catalog" yaml:"catalog"`
	Session struct {
		Backend     string `env:"SESSION_BACKEND" json:"backend" yaml:"backend"` // memory, pebble or badger
		Dir         string `env:"SESSION_DIR" json:"dir" yaml:"dir"`
		// AutoRefresh fetches suggestions for failing categories after every change.
		AutoRefresh bool   `env:"SESSION_AUTO_REFRESH" json:"autoRefresh" yaml:"autoRefresh"`
	} `json:"session" yaml:"session"`
	Suggest struct {
		Limit         int     `env:"SUGGEST_LIMIT" json:"limit" yaml:"limit"`
		BroadMinPrice float64 `env:"SUGGEST_BROAD_MIN_PRICE" json:"broadMinPrice" yaml:"broadMinPrice"`
		BroadMaxPrice float64 `env:"SUGGEST_BROAD_MAX_PRICE" json:"broadMaxPrice" yaml:"broadMaxPrice"`
	} `json:"suggest" yaml:"suggest"`
	Scraper struct {
		Region string `env:"SCRAPER_REGION" json:"region" yaml:"region"`
	} `json:"scraper" yaml:"scraper"`
}

// NewServerConfig loads the configuration, feeding from the given feeders in order.
func NewServerConfig(feeders []config.Feeder) (*ServerConfig, error) {
	cfg := ServerConfig{}
	setServerConfigDefaults(&cfg)
	c := config.New()
	for _, f := range feeders {
		c.AddFeeder(f)
	}
	c.AddStruct(&cfg)
	if err := c.Feed(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Feeders returns the feeders for an optional config file followed by the environment.
func Feeders(path string) ([]config.Feeder, error) {
	var feeders []config.Feeder
	if path != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			feeders = append(feeders, feeder.Json{Path: path})
		case ".yaml", ".yml":
			feeders = append(feeders, feeder.Yaml{Path: path})
		case ".env":
			feeders = append(feeders, feeder.DotEnv{Path: path})
		default:
			return nil, fmt.Errorf("unsupported config file type: %s", path)
		}
	}
	return append(feeders, feeder.Env{}), nil
}

func setServerConfigDefaults(cfg *ServerConfig) {
	cfg.App.Name = "BuildIT PC"
	cfg.App.Addr = ":3000"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "file:buildit.db?_pragma=busy_timeout(5000)"
	cfg.Catalog.Source = "local"
	cfg.Session.Backend = "memory"
	cfg.Session.Dir = "sessions"
	cfg.Suggest.Limit = 5
	cfg.Suggest.BroadMinPrice = 0
	cfg.Suggest.BroadMaxPrice = 1000000
	cfg.Scraper.Region = "us"
}
