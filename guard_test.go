package boclient

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kittipatv/boclient/store"
)

// seedSession authenticates the app without touching the network by writing
// a snapshot and restoring it, the same path a process restart takes.
func seedSession(t *testing.T, app *App, perms ...string) {
	t.Helper()

	user, err := json.Marshal(testIdentity(perms...))
	if err != nil {
		t.Fatalf("marshal identity: %v", err)
	}
	ctx := context.Background()
	if err := app.Store.SaveSession(ctx, &store.Snapshot{
		Authenticated: true,
		User:          user,
	}); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
	if !app.Sessions.Restore(ctx) {
		t.Fatal("restore failed")
	}
}

func TestGuardDecisionTable(t *testing.T) {
	cases := []struct {
		name      string
		perms     []string
		anonymous bool
		path      string
		decision  Decision
		target    string
	}{
		{
			name:      "public route anonymous",
			anonymous: true,
			path:      "/login",
			decision:  DecisionProceed,
			target:    "/login",
		},
		{
			name:     "public route authenticated",
			perms:    []string{"dashboard.view"},
			path:     "/login",
			decision: DecisionProceed,
			target:   "/login",
		},
		{
			name:      "protected route anonymous",
			anonymous: true,
			path:      "/dashboard",
			decision:  DecisionRedirectLogin,
			target:    "/login",
		},
		{
			name:     "protected route no permission required",
			perms:    nil,
			path:     "/profile",
			decision: DecisionProceed,
			target:   "/profile",
		},
		{
			name:     "permission held",
			perms:    []string{"merchant.view"},
			path:     "/merchant",
			decision: DecisionProceed,
			target:   "/merchant",
		},
		{
			name:     "permission missing",
			perms:    []string{"dashboard.view"},
			path:     "/merchant",
			decision: DecisionRedirectFallback,
			target:   "/profile",
		},
		{
			name:      "unknown path anonymous",
			anonymous: true,
			path:      "/not-registered",
			decision:  DecisionProceed,
			target:    "/not-registered",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, _, nav, done := newTestApp(t, loginBackend(t))
			defer done()

			if !tc.anonymous {
				seedSession(t, app, tc.perms...)
			}

			decision, target := app.Guard.Resolve(tc.path)
			if decision != tc.decision {
				t.Fatalf("expected %v, got %v", tc.decision, decision)
			}
			if target != tc.target {
				t.Fatalf("expected target %q, got %q", tc.target, target)
			}

			if got := app.Guard.Go(tc.path); got != tc.decision {
				t.Fatalf("Go decision mismatch: %v vs %v", got, tc.decision)
			}
			if nav.last() != tc.target {
				t.Fatalf("expected navigation to %q, got %q", tc.target, nav.last())
			}
		})
	}
}

func TestGuardReflectsFreshPermissions(t *testing.T) {
	app, _, _, done := newTestApp(t, loginBackend(t))
	defer done()

	seedSession(t, app, "dashboard.view")
	if decision, _ := app.Guard.Resolve("/merchant"); decision != DecisionRedirectFallback {
		t.Fatalf("expected fallback redirect, got %v", decision)
	}

	// Permissions granted mid-session must take effect on the next
	// transition: no decision caching.
	seedSession(t, app, "dashboard.view", "merchant.view")
	if decision, _ := app.Guard.Resolve("/merchant"); decision != DecisionProceed {
		t.Fatalf("expected proceed after permission grant, got %v", decision)
	}
}

func TestGuardAfterLogout(t *testing.T) {
	app, _, _, done := newTestApp(t, loginBackend(t))
	defer done()

	seedSession(t, app, "dashboard.view")
	if decision, _ := app.Guard.Resolve("/dashboard"); decision != DecisionProceed {
		t.Fatalf("expected proceed, got %v", decision)
	}

	app.Sessions.Logout(context.Background())
	decision, target := app.Guard.Resolve("/dashboard")
	if decision != DecisionRedirectLogin || target != "/login" {
		t.Fatalf("expected login redirect after logout, got %v -> %q", decision, target)
	}
}

func TestGuardRouteLookup(t *testing.T) {
	app, _, _, done := newTestApp(t, loginBackend(t))
	defer done()

	route, ok := app.Guard.Route("/merchant")
	if !ok || route.Permission != "merchant.view" || !route.RequiresAuth {
		t.Fatalf("unexpected route: %+v (ok=%v)", route, ok)
	}
	if _, ok := app.Guard.Route("/nope"); ok {
		t.Fatal("expected unknown route")
	}
}
