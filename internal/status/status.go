// Package status reflects connectivity onto the indicator strip and keeps a
// thread-safe snapshot of daemon state for the HTTP status page.
package status

import (
	"log/slog"

	"github.com/rnelson/sterilizer-prop/internal/led"
	"github.com/rnelson/sterilizer-prop/internal/supervisor"
)

// ColorFor maps the connection pair to an indicator color. Link down
// dominates: a stale bus-connected report still renders as no-link.
func ColorFor(linkConnected, busConnected bool) led.Color {
	switch {
	case !linkConnected:
		return led.Purple
	case !busConnected:
		return led.Blue
	default:
		return led.Red
	}
}

// Reflector redraws the indicator when the resolved connectivity color
// changes. It is a pure function of the two connection states and knows
// nothing about the puzzle.
type Reflector struct {
	indicator led.Indicator
	log       *slog.Logger
	prev      led.Color
}

// NewReflector creates a reflector. The previous color starts at the
// both-down mapping, so a prop that boots with no connectivity keeps its
// boot display until something actually connects.
func NewReflector(indicator led.Indicator, log *slog.Logger) *Reflector {
	return &Reflector{
		indicator: indicator,
		log:       log,
		prev:      ColorFor(false, false),
	}
}

// Tick resolves the color for the given supervisor states and redraws the
// strip only if it differs from the previous tick's color.
func (r *Reflector) Tick(linkState, busState supervisor.ConnState) {
	c := ColorFor(linkState == supervisor.Connected, busState == supervisor.Connected)
	if c == r.prev {
		return
	}
	if err := r.indicator.Fill(c); err != nil {
		r.log.Warn("status redraw failed", "error", err)
	}
	r.prev = c
}
