package status

import (
	"sync"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/puzzle"
	"github.com/rnelson/sterilizer-prop/internal/supervisor"
)

// Config contains daemon configuration for display.
type Config struct {
	Broker        string
	InboxTopic    string
	HostTopic     string
	TickMs        int64
	LinkTimeoutMs int64
	BusTimeoutMs  int64
}

// Snapshot is a point-in-time view of daemon state. It is a value type,
// safe to use after the lock is released.
type Snapshot struct {
	Device    string
	Puzzle    puzzle.State
	LinkState supervisor.ConnState
	BusState  supervisor.ConnState
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker for the named device.
func NewTracker(device string, startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Device:    device,
			Puzzle:    puzzle.Initializing,
			LinkState: supervisor.Disconnected,
			BusState:  supervisor.Disconnected,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the puzzle and connection states. Called from the main loop
// on every tick.
func (t *Tracker) Update(p puzzle.State, linkState, busState supervisor.ConnState) {
	t.mu.Lock()
	t.snap.Puzzle = p
	t.snap.LinkState = linkState
	t.snap.BusState = busState
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
