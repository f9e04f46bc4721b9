// Package puzzle owns the authoritative puzzle state and its transitions.
// Transitions come from the trigger switch or from dispatched host commands;
// side effects run on the actuator port and the indicator strip.
package puzzle

import (
	"log/slog"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/gpio"
	"github.com/rnelson/sterilizer-prop/internal/led"
)

// State is the puzzle's lifecycle state.
type State string

const (
	Initializing State = "initializing"
	Running      State = "running"
	Solved       State = "solved"
)

// heaterHold is how long the flame effect runs alone before the pump joins.
// The main loop is intentionally blocked for this duration.
const heaterHold = 5 * time.Second

// solveSweeps is the number of blue chase passes during the solve sequence.
const solveSweeps = 6

// attractGap separates the sweeps of the attract sequence.
const attractGap = 500 * time.Millisecond

// Notifier publishes a status notification on the host topic.
// The bus supervisor satisfies this.
type Notifier interface {
	Publish(topic string, payload []byte)
}

// Machine is the puzzle state machine. Not safe for concurrent use; the
// main loop is its only caller.
type Machine struct {
	port      gpio.Port
	indicator led.Indicator
	notifier  Notifier
	hostTopic string
	name      string
	log       *slog.Logger

	state State

	// sleep is swappable so tests don't wait out the heater hold.
	sleep func(time.Duration)
}

// NewMachine creates a machine in the Initializing state. name appears in
// the outbound notification text; notifications go to hostTopic.
func NewMachine(port gpio.Port, indicator led.Indicator, notifier Notifier, name, hostTopic string, log *slog.Logger) *Machine {
	return &Machine{
		port:      port,
		indicator: indicator,
		notifier:  notifier,
		hostTopic: hostTopic,
		name:      name,
		log:       log,
		state:     Initializing,
		sleep:     time.Sleep,
	}
}

// State returns the current puzzle state.
func (m *Machine) State() State {
	return m.state
}

// Tick advances the state machine once.
func (m *Machine) Tick() {
	switch m.state {
	case Initializing:
		// Setup is done by the time the loop starts ticking.
		m.state = Running

	case Running:
		triggered, err := m.port.ReadTrigger()
		if err != nil {
			m.log.Warn("trigger read failed", "error", err)
			return
		}
		if triggered {
			m.log.Info("trigger switch hit, puzzle solved")
			m.Solve()
		}

	case Solved:
		// Re-assert the solved outputs every tick so a relay glitch
		// can't silently re-lock the door.
		m.setOutputs(false, false, true)
		m.fill(led.Green)
	}
}

// Solve runs the solve sequence and enters Solved. Calling it while already
// Solved is a no-op; the side effects never repeat.
func (m *Machine) Solve() {
	if m.state == Solved {
		m.log.Debug("solve ignored, already solved")
		return
	}

	m.log.Info("running solve sequence")

	// Flames first, alone, for drama.
	m.setHeater(true)
	m.sleep(heaterHold)
	m.setPump(true)

	for i := 0; i < solveSweeps; i++ {
		m.sweep(led.Blue)
	}

	// Drop the maglock and shut the effects down.
	m.fill(led.Green)
	m.setOutputs(false, false, true)

	m.notifier.Publish(m.hostTopic, []byte(m.name+" puzzle has been solved!"))
	m.state = Solved
}

// Reset returns the puzzle to Running, re-arming the prop. Safe to call
// from any state; outputs are idempotent.
func (m *Machine) Reset() {
	m.log.Info("running reset sequence")

	// Everything off, maglock energized again.
	m.setOutputs(false, false, false)

	m.Attract()

	m.notifier.Publish(m.hostTopic, []byte(m.name+" has been reset!"))
	m.state = Running
}

// Attract plays the idle attract sequence: one sweep per color with short
// gaps, ending on solid red. Also used once at boot.
func (m *Machine) Attract() {
	for _, c := range []led.Color{led.Green, led.Blue, led.Red} {
		m.sweep(c)
		m.sleep(attractGap)
	}
	m.fill(led.Red)
	m.sleep(attractGap)
}

// setOutputs drives all three relays. Errors are logged and swallowed;
// the next Solved-state tick re-asserts the levels anyway.
func (m *Machine) setOutputs(heater, pump, lockRelease bool) {
	m.setHeater(heater)
	m.setPump(pump)
	if err := m.port.SetLockRelease(lockRelease); err != nil {
		m.log.Warn("set lock failed", "error", err)
	}
}

func (m *Machine) setHeater(on bool) {
	if err := m.port.SetHeater(on); err != nil {
		m.log.Warn("set heater failed", "error", err)
	}
}

func (m *Machine) setPump(on bool) {
	if err := m.port.SetPump(on); err != nil {
		m.log.Warn("set pump failed", "error", err)
	}
}

func (m *Machine) fill(c led.Color) {
	if err := m.indicator.Fill(c); err != nil {
		m.log.Warn("indicator fill failed", "error", err)
	}
}

func (m *Machine) sweep(c led.Color) {
	if err := m.indicator.Sweep(c); err != nil {
		m.log.Warn("indicator sweep failed", "error", err)
	}
}

// SetSleep replaces the blocking sleep, for tests.
func (m *Machine) SetSleep(fn func(time.Duration)) {
	m.sleep = fn
}
