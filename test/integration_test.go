//go:build integration

// Full-flow tests over a fake backend that signs and verifies real HS256
// tokens. They exercise the wired App end to end: login, identity fetch,
// typed bindings, guard decisions, and the 401 session teardown.
package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/boclient"
)

var signingKey = []byte("integration-test-signing-key")

// backend is a minimal stand-in for the backoffice API. It issues signed
// bearer tokens on login and verifies them on every protected endpoint.
type backend struct {
	mu       sync.Mutex
	tokenTTL time.Duration
}

func (b *backend) mint(username string) (string, error) {
	b.mu.Lock()
	ttl := b.tokenTTL
	b.mu.Unlock()

	claims := jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

func (b *backend) verify(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return "", false
	}
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", false
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", false
	}
	return sub, true
}

func (b *backend) expireNewTokens() {
	b.mu.Lock()
	b.tokenTTL = -time.Minute
	b.mu.Unlock()
}

func (b *backend) handler() http.Handler {
	write := func(w http.ResponseWriter, httpStatus int, ok bool, data any, msg string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatus)
		_ = json.NewEncoder(w).Encode(map[string]any{"status": ok, "data": data, "msg": msg})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		var creds boclient.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			write(w, http.StatusBadRequest, false, nil, "Bad Request")
			return
		}
		if creds.Username != "alice" || creds.Password != "s3cret" {
			write(w, http.StatusOK, false, nil, "invalid credentials")
			return
		}
		token, err := b.mint(creds.Username)
		if err != nil {
			write(w, http.StatusInternalServerError, false, nil, "Internal Server Error")
			return
		}
		write(w, http.StatusOK, true, map[string]string{"token": token}, "")
	})
	mux.HandleFunc("/api/v1/bo/me", func(w http.ResponseWriter, r *http.Request) {
		sub, ok := b.verify(r)
		if !ok {
			write(w, http.StatusUnauthorized, false, nil, "Token expired")
			return
		}
		write(w, http.StatusOK, true, map[string]any{
			"id":          1,
			"name":        "Alice",
			"username":    sub,
			"permissions": []string{"dashboard.view", "merchant.view"},
		}, "")
	})
	mux.HandleFunc("/api/v1/bo/merchant/credit/balance", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.verify(r); !ok {
			write(w, http.StatusUnauthorized, false, nil, "Token expired")
			return
		}
		write(w, http.StatusOK, true, map[string]float64{"balance": 1250.50, "commission": 37.25}, "")
	})
	mux.HandleFunc("/api/v1/bo/bank", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := b.verify(r); !ok {
			write(w, http.StatusUnauthorized, false, nil, "Token expired")
			return
		}
		write(w, http.StatusOK, true, []map[string]any{
			{"id": 1, "name": "Kasikorn", "code": "KBANK"},
			{"id": 2, "name": "Bangkok Bank", "code": "BBL"},
		}, "")
	})
	return mux
}

type navLog struct {
	mu    sync.Mutex
	paths []string
}

func (n *navLog) Navigate(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *navLog) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

func setup(t *testing.T) (*boclient.App, *backend, *boclient.ChannelNotifier, *navLog) {
	t.Helper()

	be := &backend{tokenTTL: time.Hour}
	srv := httptest.NewServer(be.handler())
	t.Cleanup(srv.Close)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	notifier := boclient.NewChannelNotifier(16)
	nav := &navLog{}

	app, err := boclient.New().
		WithBaseURL(srv.URL).
		WithRedis(rdb).
		WithNotifier(notifier).
		WithNavigator(nav).
		Build()
	require.NoError(t, err)

	return app, be, notifier, nav
}

func TestFullLoginFlow(t *testing.T) {
	app, _, notifier, nav := setup(t)
	ctx := context.Background()

	app.Sessions.Login(ctx, boclient.Credentials{Username: "alice", Password: "s3cret"})

	require.True(t, app.Sessions.Authenticated())
	require.Equal(t, "/dashboard", nav.last())
	require.Empty(t, notifier.Notifications())

	user := app.Sessions.User()
	require.NotNil(t, user)
	require.Equal(t, "alice", user.Username)
	require.True(t, user.HasPermission("merchant.view"))

	// The stored credential is a verifiable signed token, not an opaque blob.
	token, err := app.Store.Token(ctx)
	require.NoError(t, err)
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return signingKey, nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	balance, err := app.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, 1250.50, balance.Balance)

	banks, err := app.Banks(ctx)
	require.NoError(t, err)
	require.Len(t, banks, 2)
	require.Equal(t, "KBANK", banks[0].Code)
}

func TestRejectedLoginLeavesSessionAnonymous(t *testing.T) {
	app, _, notifier, nav := setup(t)
	ctx := context.Background()

	app.Sessions.Login(ctx, boclient.Credentials{Username: "alice", Password: "wrong"})

	require.False(t, app.Sessions.Authenticated())
	require.Empty(t, nav.last())

	require.Len(t, notifier.Notifications(), 1)
	n := <-notifier.Notifications()
	require.Equal(t, "invalid credentials", n.Message)
}

func TestExpiredTokenTearsDownSession(t *testing.T) {
	app, be, notifier, nav := setup(t)
	ctx := context.Background()

	be.expireNewTokens()
	app.Sessions.Login(ctx, boclient.Credentials{Username: "alice", Password: "s3cret"})

	// Login succeeded but the identity fetch hit an expired token: the 401
	// hook must have torn the session down and routed to login.
	require.False(t, app.Sessions.Authenticated())
	require.Equal(t, "/login", nav.last())

	_, err := app.Store.Token(ctx)
	require.ErrorIs(t, err, boclient.ErrTokenNotFound)

	require.Len(t, notifier.Notifications(), 1)
	n := <-notifier.Notifications()
	require.Equal(t, "Token expired", n.Message)

	decision, target := app.Guard.Resolve("/merchant")
	require.Equal(t, boclient.DecisionRedirectLogin, decision)
	require.Equal(t, "/login", target)
}

func TestSessionSurvivesRestart(t *testing.T) {
	be := &backend{tokenTTL: time.Hour}
	srv := httptest.NewServer(be.handler())
	t.Cleanup(srv.Close)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	ctx := context.Background()

	build := func() *boclient.App {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		app, err := boclient.New().WithBaseURL(srv.URL).WithRedis(rdb).Build()
		require.NoError(t, err)
		return app
	}

	first := build()
	first.Sessions.Login(ctx, boclient.Credentials{Username: "alice", Password: "s3cret"})
	require.True(t, first.Sessions.Authenticated())

	second := build()
	require.False(t, second.Sessions.Authenticated())
	require.True(t, second.Sessions.Restore(ctx))
	require.True(t, second.Sessions.Authenticated())
	require.True(t, second.Sessions.HasPermission("dashboard.view"))

	// The restored token still authorizes protected calls.
	balance, err := second.Balance(ctx)
	require.NoError(t, err)
	require.Equal(t, 37.25, balance.Commission)
}
