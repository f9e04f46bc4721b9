package main

import (
	"io"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/rnelson/sterilizer-prop/internal/bus"
	"github.com/rnelson/sterilizer-prop/internal/gpio"
	"github.com/rnelson/sterilizer-prop/internal/led"
	"github.com/rnelson/sterilizer-prop/internal/link"
	"github.com/rnelson/sterilizer-prop/internal/puzzle"
	"github.com/rnelson/sterilizer-prop/internal/status"
	"github.com/rnelson/sterilizer-prop/internal/supervisor"
)

// harness wires the full tick pipeline against fakes, mirroring run().
// Tests drive it synchronously through step.
type harness struct {
	port      *gpio.FakePort
	indicator *led.FakeIndicator
	transport *link.FakeTransport
	session   *bus.FakeSession

	linkSup   *supervisor.Link
	busSup    *supervisor.Bus
	reflector *status.Reflector
	machine   *puzzle.Machine
	tracker   *status.Tracker
}

func newHarness(t *testing.T, samples ...bool) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &harness{
		port:      gpio.NewFakePort(samples...),
		indicator: led.NewFakeIndicator(),
		transport: link.NewFakeTransport(true),
		session:   bus.NewFakeSession(),
	}

	h.linkSup = supervisor.NewLink(h.transport, 2*time.Minute, logger)

	var dispatcher *puzzle.Dispatcher
	h.busSup = supervisor.NewBus(h.session, "ToDevice/Sterilizer", 2*time.Minute, 50*time.Millisecond,
		func(topic string, payload []byte) { dispatcher.OnMessage(topic, payload) }, logger)
	h.machine = puzzle.NewMachine(h.port, h.indicator, h.busSup, "Sterilizer", "ToHost/Sterilizer", logger)
	h.machine.SetSleep(func(time.Duration) {})
	dispatcher = puzzle.NewDispatcher("ToDevice/Sterilizer", h.machine, logger)

	h.reflector = status.NewReflector(h.indicator, logger)
	h.tracker = status.NewTracker("Sterilizer", time.Now(), status.Config{})
	return h
}

func (h *harness) step(n int) {
	for i := 0; i < n; i++ {
		tickOnce(h.linkSup, h.busSup, h.reflector, h.machine, h.tracker, time.Now())
	}
}

func TestRunLoopShutsDownOnSignal(t *testing.T) {
	h := newHarness(t, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tick := make(chan time.Time)
	sig := make(chan os.Signal, 1)
	done := make(chan error, 1)
	go func() {
		done <- runLoop(h.linkSup, h.busSup, h.reflector, h.machine, h.tracker, time.Now, tick, sig, logger)
	}()

	select {
	case tick <- time.Now():
	case <-time.After(2 * time.Second):
		t.Fatal("loop never accepted a tick")
	}

	sig <- syscall.SIGTERM
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runLoop returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("runLoop did not return after signal")
	}
}

func TestTickSolvesOnTrigger(t *testing.T) {
	h := newHarness(t, false, false, true)
	h.step(5)

	snap := h.tracker.Snapshot()
	if snap.Puzzle != puzzle.Solved {
		t.Errorf("puzzle = %q, want solved", snap.Puzzle)
	}
	if got := h.session.PublishedOn("ToHost/Sterilizer"); len(got) != 1 || got[0] != "Sterilizer puzzle has been solved!" {
		t.Errorf("notifications = %q, want exactly the solved message", got)
	}
	if h.port.HeaterOn != 1 || h.port.PumpOn != 1 || !h.port.LockRelease {
		t.Errorf("outputs heaterOn=%d pumpOn=%d lock=%v, want 1/1/true",
			h.port.HeaterOn, h.port.PumpOn, h.port.LockRelease)
	}
}

func TestTickDispatchesHostCommands(t *testing.T) {
	h := newHarness(t, false)
	h.step(2) // connect + subscribe

	h.session.Inject("ToDevice/Sterilizer", []byte("solve"))
	h.step(1)
	if h.machine.State() != puzzle.Solved {
		t.Fatalf("state after solve command = %q", h.machine.State())
	}

	h.session.Inject("ToDevice/Sterilizer", []byte("reset"))
	h.step(1)
	if h.machine.State() != puzzle.Running {
		t.Errorf("state after reset command = %q", h.machine.State())
	}

	got := h.session.PublishedOn("ToHost/Sterilizer")
	want := []string{"Sterilizer puzzle has been solved!", "Sterilizer has been reset!"}
	if len(got) != len(want) {
		t.Fatalf("notifications = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTickReflectsConnectivity(t *testing.T) {
	h := newHarness(t, false)
	h.transport.Connected = false

	h.step(2)
	// Boot state is already both-down, so nothing is redrawn while the
	// link stays down.
	if n := len(h.indicator.Fills); n != 0 {
		t.Errorf("fills while still down = %d, want 0", n)
	}

	h.transport.Connected = true
	h.step(2)

	// Link plus bus come up within the same tick, going straight to red.
	if h.indicator.LastFill() != led.Red {
		t.Errorf("last fill = %q, want red", h.indicator.LastFill())
	}
	if len(h.session.Subscriptions) == 0 || h.session.Subscriptions[0] != "ToDevice/Sterilizer" {
		t.Errorf("subscriptions = %q, want inbox topic", h.session.Subscriptions)
	}
}

func TestTriggerString(t *testing.T) {
	if got := triggerString(true); got != "TRIGGERED" {
		t.Errorf("triggerString(true) = %q", got)
	}
	if got := triggerString(false); got != "CLEAR" {
		t.Errorf("triggerString(false) = %q", got)
	}
}
