package puzzle

import (
	"testing"

	"github.com/rnelson/sterilizer-prop/internal/gpio"
)

const inboxTopic = "ToDevice/Sterilizer"

func newDispatcherUnderTest(t *testing.T) (*Dispatcher, *Machine, *gpio.FakePort) {
	t.Helper()
	port := gpio.NewFakePort(false)
	m, _, _ := newMachineUnderTest(port)
	m.Tick() // initializing -> running
	return NewDispatcher(inboxTopic, m, testLogger()), m, port
}

func TestDispatchSolveCaseInsensitive(t *testing.T) {
	for _, payload := range []string{"solve", "SOLVE", "Solve", "solve ", " SOLVE\n"} {
		t.Run(payload, func(t *testing.T) {
			d, m, _ := newDispatcherUnderTest(t)
			d.OnMessage(inboxTopic, []byte(payload))
			if m.State() != Solved {
				t.Errorf("state = %s, want solved for payload %q", m.State(), payload)
			}
		})
	}
}

func TestDispatchSolveTwiceRunsOnce(t *testing.T) {
	d, m, port := newDispatcherUnderTest(t)

	d.OnMessage(inboxTopic, []byte("SOLVE"))
	d.OnMessage(inboxTopic, []byte("solve"))

	if m.State() != Solved {
		t.Fatalf("state = %s, want solved", m.State())
	}
	if port.HeaterOn != 1 || port.HeaterOff != 1 {
		t.Errorf("heater cycles = %d on / %d off, want exactly one cycle", port.HeaterOn, port.HeaterOff)
	}
}

func TestDispatchReset(t *testing.T) {
	d, m, port := newDispatcherUnderTest(t)
	m.Solve()

	d.OnMessage(inboxTopic, []byte("Reset"))

	if m.State() != Running {
		t.Errorf("state = %s, want running", m.State())
	}
	if port.LockRelease {
		t.Error("lock should be re-engaged after reset")
	}
}

func TestDispatchUnrecognizedDropped(t *testing.T) {
	d, m, port := newDispatcherUnderTest(t)

	for _, payload := range [][]byte{
		[]byte("open sesame"),
		[]byte("solveit"), // no prefix matching
		[]byte(""),
		{0xff, 0xfe, 0x00}, // malformed binary
	} {
		d.OnMessage(inboxTopic, payload)
	}

	if m.State() != Running {
		t.Errorf("state = %s, want running untouched", m.State())
	}
	if port.HeaterOn != 0 {
		t.Error("unrecognized commands must not touch outputs")
	}
}

func TestDispatchIgnoresForeignTopic(t *testing.T) {
	d, m, _ := newDispatcherUnderTest(t)

	d.OnMessage("ToDevice/OtherProp", []byte("solve"))

	if m.State() != Running {
		t.Errorf("state = %s, want running after foreign-topic solve", m.State())
	}
}
