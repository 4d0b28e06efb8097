package boclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kittipatv/boclient/store"
)

// connectionFailedMsg is the generic connectivity message shown when no
// response was received. The backoffice UI displays it in Thai.
const connectionFailedMsg = "เกิดข้อผิดพลาดในการเชื่อมต่อ"

// Gateway is the single chokepoint for backend calls. It injects the bearer
// token from the credential store, decodes the response envelope, classifies
// failures by HTTP status, and emits exactly one notification per failing
// call. On 401 it additionally forces a full session teardown through the
// onUnauthorized hook wired by [Builder.Build].
type Gateway struct {
	cfg      GatewayConfig
	http     *http.Client
	store    *store.Store
	notifier Notifier
	logger   *zap.Logger

	// onUnauthorized is invoked once per 401 response, before the caller
	// sees the error. Wired to Manager.Logout.
	onUnauthorized func(ctx context.Context)
}

func newGateway(cfg GatewayConfig, client *http.Client, st *store.Store, notifier Notifier, logger *zap.Logger) *Gateway {
	return &Gateway{
		cfg:      cfg,
		http:     client,
		store:    st,
		notifier: notifier,
		logger:   logger,
	}
}

// Get issues a GET request through the gateway and returns the envelope's
// data payload on success.
func (g *Gateway) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body through the gateway.
func (g *Gateway) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body through the gateway.
func (g *Gateway) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request through the gateway.
func (g *Gateway) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return g.Do(ctx, http.MethodDelete, path, nil)
}

// Do issues a request through the gateway. Success requires both an HTTP 2xx
// status and a true business flag in the body; every other outcome notifies
// the user once and returns a classified error. Callers must not assume a
// payload is present on error.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if g == nil || g.http == nil {
		return nil, ErrNotReady
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.joinURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if g.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", g.cfg.UserAgent)
	}
	g.attachCredential(ctx, req)

	g.logger.Debug("gateway request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)

	res, err := g.http.Do(req)
	if err != nil {
		// No response at all: report generically, leave the session alone.
		g.notify(ctx, LevelError, connectionFailedMsg, 0)
		g.logger.Warn("gateway transport failure",
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		g.notify(ctx, LevelError, connectionFailedMsg, 0)
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	env := decodeEnvelope(raw)

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		if env.OK() {
			return env.Data, nil
		}
		// Business-rule rejection: transport fine, flag false.
		g.notify(ctx, LevelError, env.Msg, 0)
		return nil, fmt.Errorf("%w: %s", ErrRequestRejected, env.Msg)
	}

	return nil, g.classify(ctx, res, env, requestID)
}

// classify maps a non-2xx response to its sentinel, notifying once. 401 is
// the only status that mutates session state.
func (g *Gateway) classify(ctx context.Context, res *http.Response, env Envelope, requestID string) error {
	status := res.StatusCode
	msg := env.Msg

	g.logger.Warn("gateway error response",
		zap.Int("status", status),
		zap.String("request_id", requestID),
		zap.String("msg", msg),
	)

	switch status {
	case http.StatusUnauthorized:
		if msg == "" {
			msg = "Unauthorized"
		}
		// This status invalidates the local session regardless of endpoint.
		if g.onUnauthorized != nil {
			g.onUnauthorized(ctx)
		}
		g.notify(ctx, LevelError, msg, status)
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusBadRequest:
		return g.fail(ctx, ErrBadRequest, msg, "Bad Request", status)
	case http.StatusForbidden:
		return g.fail(ctx, ErrForbidden, msg, "Forbidden", status)
	case http.StatusNotFound:
		return g.fail(ctx, ErrNotFound, msg, "Resource Not Found", status)
	case http.StatusUnprocessableEntity:
		return g.fail(ctx, ErrValidation, msg, "Validation Error", status)
	case http.StatusInternalServerError:
		return g.fail(ctx, ErrServerFault, msg, "Internal Server Error", status)
	case http.StatusBadGateway:
		return g.fail(ctx, ErrBadGateway, msg, "Bad Gateway - Service temporarily unavailable", status)
	case http.StatusServiceUnavailable:
		return g.fail(ctx, ErrMaintenance, msg, "System is currently under maintenance. Please try again later.", status)
	case http.StatusGatewayTimeout:
		return g.fail(ctx, ErrGatewayTimeout, msg, "Gateway Timeout - Service temporarily unavailable", status)
	default:
		fallback := fmt.Sprintf("Error %d: %s", status, http.StatusText(status))
		return g.fail(ctx, ErrHTTPStatus, msg, fallback, status)
	}
}

func (g *Gateway) fail(ctx context.Context, sentinel error, msg, fallback string, status int) error {
	if msg == "" {
		msg = fallback
	}
	g.notify(ctx, LevelError, msg, status)
	return fmt.Errorf("%w: %s", sentinel, msg)
}

func (g *Gateway) notify(ctx context.Context, level Level, msg string, status int) {
	if g.notifier == nil {
		return
	}
	g.notifier.Notify(ctx, Notification{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    msg,
		HTTPStatus: status,
	})
}

// attachCredential adds the bearer header when a token is persisted. A store
// read failure degrades the call to unauthenticated rather than blocking it.
func (g *Gateway) attachCredential(ctx context.Context, req *http.Request) {
	if g.store == nil {
		return
	}
	token, err := g.store.Token(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrTokenNotFound) {
			g.logger.Warn("credential read failed, sending unauthenticated", zap.Error(err))
		}
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (g *Gateway) joinURL(path string) string {
	return strings.TrimRight(g.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
