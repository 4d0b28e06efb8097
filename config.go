package boclient

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config carries all tunables for the wired client. Instances are cloned by
// [Builder.Build] and treated as immutable afterwards.
type Config struct {
	Gateway GatewayConfig
	Storage StorageConfig
	Routes  RouteConfig
}

/*
====================================
GATEWAY CONFIG
====================================
*/

// GatewayConfig configures the outbound HTTP chokepoint.
type GatewayConfig struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	BaseURL string
	// Timeout applies to the default HTTP client when none is injected.
	Timeout time.Duration
	// UserAgent is sent on every request when non-empty.
	UserAgent string
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig names the durable keys holding the bearer token and the
// serialized session snapshot. Keys are constant so persisted state survives
// process restarts.
type StorageConfig struct {
	RedisPrefix string
	TokenKey    string
	SessionKey  string
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig names the well-known navigation targets: where logins land,
// where unauthenticated transitions redirect, and the safe fallback for a
// missing permission.
type RouteConfig struct {
	LoginPath    string
	LandingPath  string
	FallbackPath string
}

const (
	loginEndpoint = "api/v1/login"
	meEndpoint    = "api/v1/bo/me"
)

// DefaultConfig returns the configuration Build starts from: 30s timeout,
// "bo"-prefixed storage keys, and the panel's login/dashboard/profile routes.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			Timeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			RedisPrefix: "bo",
			TokenKey:    "token",
			SessionKey:  "session",
		},
		Routes: RouteConfig{
			LoginPath:    "/login",
			LandingPath:  "/dashboard",
			FallbackPath: "/profile",
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a struct copy is a deep copy.
	return cfg
}

// Validate checks the configuration for values Build cannot recover from.
func (c Config) Validate() error {
	if c.Gateway.BaseURL == "" {
		return errors.New("Gateway.BaseURL is required")
	}
	u, err := url.Parse(c.Gateway.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("Gateway.BaseURL must be an absolute URL")
	}
	if c.Gateway.Timeout < 0 {
		return errors.New("Gateway.Timeout must not be negative")
	}
	if c.Storage.TokenKey == "" || c.Storage.SessionKey == "" {
		return errors.New("Storage keys must be non-empty")
	}
	if c.Storage.TokenKey == c.Storage.SessionKey {
		return errors.New("Storage token and session keys must differ")
	}
	for _, p := range []string{c.Routes.LoginPath, c.Routes.LandingPath, c.Routes.FallbackPath} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("Route paths must be absolute")
		}
	}
	return nil
}
