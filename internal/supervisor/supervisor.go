// Package supervisor maintains the prop's network link and bus session in
// the face of transient failures. Each supervisor owns one connection state
// and is driven by the main loop once per tick; time is always passed in,
// never read from the clock.
//
// Both supervisors share the same failure policy: reconnect on every tick
// until a fixed duration of continuous failure has elapsed, then give up for
// good. The timed-out state is sticky; the only recovery is a process
// restart.
package supervisor

import (
	"log/slog"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/link"
)

// ConnState is the connection state of a supervised resource.
type ConnState string

const (
	Disconnected ConnState = "disconnected"
	Connecting   ConnState = "connecting"
	Connected    ConnState = "connected"
	TimedOut     ConnState = "timed_out"
)

// Link supervises the network link via a link.Transport.
type Link struct {
	transport link.Transport
	timeout   time.Duration
	log       *slog.Logger

	state    ConnState
	deadline time.Time // end of the current outage window; zero while connected
	timedOut bool
}

// NewLink creates a link supervisor. timeout bounds how long a continuous
// outage may last before the supervisor stops retrying.
func NewLink(t link.Transport, timeout time.Duration, log *slog.Logger) *Link {
	return &Link{
		transport: t,
		timeout:   timeout,
		log:       log,
		state:     Disconnected,
	}
}

// Tick advances the supervisor and returns the resulting state.
// Transport-level failures never surface here; the link is simply retried
// until the outage window closes.
func (l *Link) Tick(now time.Time) ConnState {
	if l.transport.IsConnected() {
		if l.state != Connected {
			l.log.Info("link connected")
		}
		l.state = Connected
		l.timedOut = false
		l.deadline = time.Time{}
		return l.state
	}

	if l.timedOut {
		l.state = TimedOut
		return l.state
	}

	if l.deadline.IsZero() {
		// Outage starts now.
		l.log.Warn("link down, reconnecting")
		l.deadline = now.Add(l.timeout)
	}

	if !now.Before(l.deadline) {
		l.timedOut = true
		l.state = TimedOut
		l.log.Error("link reconnection timed out, giving up", "timeout", l.timeout)
		return l.state
	}

	l.transport.Reconnect()
	l.state = Connecting
	return l.state
}

// State returns the state from the last Tick.
func (l *Link) State() ConnState {
	return l.state
}
