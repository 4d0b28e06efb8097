package boclient

import (
	"errors"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kittipatv/boclient/store"
)

// Builder assembles a wired [App]. Configure it during initialization, call
// Build once, and treat the result as immutable.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	httpClient *http.Client
	notifier   Notifier
	logger     *zap.Logger
	nav        Navigator
	routes     []Route

	built bool
}

// New returns a [Builder] seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend origin without replacing the whole config.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Gateway.BaseURL = baseURL
	return b
}

// WithRedis sets the Redis client backing the credential store.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient injects the HTTP client used by the gateway. When omitted,
// Build creates one with the configured timeout.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithNotifier sets the user-visible message sink. Defaults to [NoOpNotifier].
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.logger = l
	return b
}

// WithNavigator sets the route-transition sink driven by the session manager
// and guard. Defaults to a no-op navigator.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.nav = nav
	return b
}

// WithRoutes replaces the route table. Defaults to [DefaultRoutes].
func (b *Builder) WithRoutes(routes []Route) *Builder {
	b.routes = append([]Route(nil), routes...)
	return b
}

// App is the wired client: the gateway chokepoint, the session manager, the
// navigation guard, and the credential store they share.
type App struct {
	Gateway  *Gateway
	Sessions *Manager
	Guard    *Guard
	Store    *store.Store

	config Config
	logger *zap.Logger
}

// Config returns a copy of the configuration the app was built with.
func (a *App) Config() Config {
	return cloneConfig(a.config)
}

// Build validates the configuration and wires the components. The gateway's
// 401 hook is bound to the session manager here, so any endpoint returning
// 401 tears down the local session.
func (b *Builder) Build() (*App, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Gateway.Timeout}
	}
	notifier := b.notifier
	if notifier == nil {
		notifier = NoOpNotifier{}
	}
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	nav := b.nav
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	routes := b.routes
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}

	st := store.New(b.redis, cfg.Storage.RedisPrefix, cfg.Storage.TokenKey, cfg.Storage.SessionKey)
	gateway := newGateway(cfg.Gateway, httpClient, st, notifier, logger)
	sessions := newManager(st, gateway, nav, cfg.Routes, logger)
	gateway.onUnauthorized = sessions.Logout
	guard := newGuard(routes, sessions, cfg.Routes, nav)

	b.built = true

	return &App{
		Gateway:  gateway,
		Sessions: sessions,
		Guard:    guard,
		Store:    st,
		config:   cfg,
		logger:   logger,
	}, nil
}
