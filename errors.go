package boclient

import (
	"errors"

	"github.com/kittipatv/boclient/store"
)

var (
	// ErrConnection is returned when no response was received at all
	// (network unreachable, DNS failure, timeout before headers).
	ErrConnection = errors.New("connection failed")
	// ErrRequestRejected is returned on a 2xx response whose business flag
	// is false: the transport succeeded but the backend rejected the request.
	ErrRequestRejected = errors.New("request rejected")
	// ErrUnauthorized is returned on HTTP 401. The local session has already
	// been torn down by the time the caller sees it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBadRequest is returned on HTTP 400.
	ErrBadRequest = errors.New("bad request")
	// ErrForbidden is returned on HTTP 403.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned on HTTP 404.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned on HTTP 422.
	ErrValidation = errors.New("validation error")
	// ErrServerFault is returned on HTTP 500.
	ErrServerFault = errors.New("internal server error")
	// ErrBadGateway is returned on HTTP 502.
	ErrBadGateway = errors.New("bad gateway")
	// ErrMaintenance is returned on HTTP 503.
	ErrMaintenance = errors.New("service under maintenance")
	// ErrGatewayTimeout is returned on HTTP 504.
	ErrGatewayTimeout = errors.New("gateway timeout")
	// ErrHTTPStatus is returned on any other non-2xx status.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrNotReady is returned when a component is used before Build wired it.
	ErrNotReady = errors.New("client not initialized")
)

// Store sentinels re-exported so callers only import boclient.
var (
	// ErrStoreUnavailable wraps credential store transport failures.
	ErrStoreUnavailable = store.ErrStoreUnavailable
	// ErrTokenNotFound is returned when no bearer token is persisted.
	ErrTokenNotFound = store.ErrTokenNotFound
	// ErrSessionNotFound is returned when no session snapshot is persisted.
	ErrSessionNotFound = store.ErrSessionNotFound
)
