// Package boclient is the Go client for the payment-backoffice API: a single
// gateway through which every backend call travels, a session manager that
// owns login/identity/logout, a Redis-persisted credential store, and a
// navigation guard that gates route transitions by authentication state and
// per-route permissions.
//
// The package is built around one invariant: a backend response is successful
// only when the HTTP layer reports 2xx AND the business flag embedded in the
// body is true. The [Gateway] decodes that envelope at the boundary; raw
// transport status never leaks past it. Every failing call produces exactly
// one user-visible notification through the configured [Notifier] and returns
// a sentinel-classified error to the caller.
//
// # Architecture boundaries
//
// boclient is the public surface. It exposes [App], [Builder], [Config],
// [Gateway], [Manager], [Guard], and value types. Credential and session
// persistence lives under store/ and is reached only through the wired [App].
//
// # Session ownership
//
// The [Manager] is the only writer of session state. A 401 from any endpoint
// invalidates the local session unconditionally: the gateway calls back into
// the manager, which clears the credential store and redirects the next
// navigation to the login route. All other failure classes leave the session
// untouched. There is no retry logic; every failure is terminal for that call.
package boclient
