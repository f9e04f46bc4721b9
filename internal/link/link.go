// Package link exposes network link state to the supervisor. The real
// implementation watches a network interface; the fake is scriptable.
package link

// Transport is the underlying connectivity capability the link supervisor
// drives. Reconnect must not block the caller.
type Transport interface {
	// IsConnected reports whether the link is currently usable.
	IsConnected() bool

	// Reconnect fires a reconnect attempt and returns immediately.
	// Failures are swallowed; the supervisor just checks again next tick.
	Reconnect()
}
