package boclient

// Decision is the outcome of resolving a route transition.
type Decision uint8

const (
	// DecisionProceed lets the transition through.
	DecisionProceed Decision = iota
	// DecisionRedirectLogin redirects an unauthenticated transition to the
	// login route.
	DecisionRedirectLogin
	// DecisionRedirectFallback redirects an authenticated transition lacking
	// the required permission to the safe fallback route.
	DecisionRedirectFallback
)

func (d Decision) String() string {
	switch d {
	case DecisionProceed:
		return "proceed"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionRedirectFallback:
		return "redirect-fallback"
	default:
		return "unknown"
	}
}

// Guard evaluates every route transition against the current session. It
// never caches decisions: permissions can change mid-session after a fresh
// identity refresh, so each call reads live state.
type Guard struct {
	routes   map[string]Route
	sessions *Manager
	cfg      RouteConfig
	nav      Navigator
}

func newGuard(routes []Route, sessions *Manager, cfg RouteConfig, nav Navigator) *Guard {
	byPath := make(map[string]Route, len(routes))
	for _, r := range routes {
		byPath[r.Path] = r
	}
	return &Guard{
		routes:   byPath,
		sessions: sessions,
		cfg:      cfg,
		nav:      nav,
	}
}

// Resolve decides a transition to path. It returns the decision and the path
// the navigation should actually land on. Paths without a route entry, and
// routes that do not require authentication, always proceed.
func (g *Guard) Resolve(path string) (Decision, string) {
	route, ok := g.routes[path]
	if !ok || !route.RequiresAuth {
		return DecisionProceed, path
	}

	if !g.sessions.Authenticated() {
		return DecisionRedirectLogin, g.cfg.LoginPath
	}

	if route.Permission != "" && !g.sessions.HasPermission(route.Permission) {
		return DecisionRedirectFallback, g.cfg.FallbackPath
	}

	return DecisionProceed, path
}

// Go resolves path and navigates to the outcome. It returns the decision so
// callers can react to redirects.
func (g *Guard) Go(path string) Decision {
	decision, target := g.Resolve(path)
	g.nav.Navigate(target)
	return decision
}

// Route returns the route descriptor registered for path.
func (g *Guard) Route(path string) (Route, bool) {
	r, ok := g.routes[path]
	return r, ok
}
