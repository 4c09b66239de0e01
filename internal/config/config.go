package config

import (
	"log"
	"time"

	"github.com/browsekit/navigator/pkg/loaders"
)

var cfg *Config

func init() {
	var err error
	cfg, err = newConfig()
	if err != nil {
		log.Fatalf("unable to load config: %s", err)
	}
}

type Config struct {
	server    Server
	api       API
	resolver  Resolver
	bookmarks Bookmarks
	monitor   Monitor
	drift     Drift
}

func GetInstance() *Config {
	return cfg
}

func (c *Config) Server() *Server {
	return &c.server
}

func (c *Config) API() *API {
	return &c.api
}

func (c *Config) Resolver() *Resolver {
	return &c.resolver
}

func (c *Config) Bookmarks() *Bookmarks {
	return &c.bookmarks
}

func (c *Config) Monitor() *Monitor {
	return &c.monitor
}

func (c *Config) Drift() *Drift {
	return &c.drift
}

// Server configuration
type Server struct {
	Environment string `env:"SRV_ENV" flag:"env"`
}

// API configuration
type API struct {
	Port          string        `env:"API_PORT" flag:"port"`
	AuthSecret    string        `env:"API_AUTH_SECRET" flag:"auth-secret"`
	AdminHash     string        `env:"API_ADMIN_HASH" flag:"admin-hash"` // bcrypt hash for the login endpoint
	TokenValidity time.Duration `env:"API_TOKEN_VALIDITY" flag:"token-validity"`
}

// Resolver configuration
type Resolver struct {
	FallbackTimeout time.Duration `env:"RESOLVER_FALLBACK_TIMEOUT" flag:"fallback-timeout"`
}

// Bookmarks configuration
type Bookmarks struct {
	Path string `env:"BOOKMARKS_PATH" flag:"bookmarks-path"`
}

// Monitor configuration, reachability probes for override targets
type Monitor struct {
	Enabled   bool          `env:"MONITOR_ENABLED" flag:"monitor-enabled"`
	CheckType string        `env:"MONITOR_CHECK_TYPE" flag:"monitor-check-type"`
	Interval  time.Duration `env:"MONITOR_INTERVAL" flag:"monitor-interval"`
	LuaScript string        `env:"MONITOR_LUA_SCRIPT" flag:"monitor-lua-script"`
}

// Drift configuration, zone transfers against the authoritative server
type Drift struct {
	Enabled    bool          `env:"DRIFT_ENABLED" flag:"drift-enabled"`
	Zone       string        `env:"DRIFT_ZONE" flag:"drift-zone"`
	NameServer string        `env:"DRIFT_NAMESERVER" flag:"drift-nameserver"`
	Interval   time.Duration `env:"DRIFT_INTERVAL" flag:"drift-interval"`
}

func newConfig() (*Config, error) {
	loader := loaders.NewChainLoader(
		loaders.NewEnvloader(),
		loaders.NewFileLoader(".env"),
		loaders.NewFlagLoader(),
	)

	// creating default config variables where possible
	serverCfg := Server{
		Environment: "prod",
	}
	apiCfg := API{
		Port:          ":8080",
		TokenValidity: time.Hour * 12,
	}
	resolverCfg := Resolver{
		FallbackTimeout: time.Second * 3,
	}
	bookmarksCfg := Bookmarks{
		Path: "bookmarks.json",
	}
	monitorCfg := Monitor{
		CheckType: "http",
		Interval:  time.Second * 30,
	}
	driftCfg := Drift{
		Interval: time.Minute * 5,
	}

	configs := []any{
		&serverCfg,
		&apiCfg,
		&resolverCfg,
		&bookmarksCfg,
		&monitorCfg,
		&driftCfg,
	}

	for _, section := range configs {
		if err := loader.Load(section); err != nil {
			return nil, err
		}
	}

	return &Config{
		server:    serverCfg,
		api:       apiCfg,
		resolver:  resolverCfg,
		bookmarks: bookmarksCfg,
		monitor:   monitorCfg,
		drift:     driftCfg,
	}, nil
}
