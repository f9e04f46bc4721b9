package gpio

import (
	"errors"
	"testing"
)

func TestFakePortScriptedTrigger(t *testing.T) {
	f := NewFakePort(false, false, true)

	want := []bool{false, false, true, true, true}
	for i, w := range want {
		got, err := f.ReadTrigger()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got != w {
			t.Errorf("read %d = %v, want %v", i, got, w)
		}
	}
}

func TestFakePortNoSamples(t *testing.T) {
	f := NewFakePort()
	if _, err := f.ReadTrigger(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakePortReadError(t *testing.T) {
	f := NewFakePort(true)
	f.ReadError = errors.New("boom")
	if _, err := f.ReadTrigger(); err == nil {
		t.Error("expected scripted read error")
	}
}

func TestFakePortTransitionCounts(t *testing.T) {
	f := NewFakePort(false)

	// Re-asserting the same level must not count as a transition.
	f.SetHeater(true)
	f.SetHeater(true)
	f.SetHeater(false)
	f.SetPump(true)
	f.SetLockRelease(true)
	f.SetLockRelease(true)

	if f.HeaterOn != 1 || f.HeaterOff != 1 {
		t.Errorf("heater transitions = %d on / %d off, want 1/1", f.HeaterOn, f.HeaterOff)
	}
	if f.PumpOn != 1 || f.PumpOff != 0 {
		t.Errorf("pump transitions = %d on / %d off, want 1/0", f.PumpOn, f.PumpOff)
	}
	if f.LockUp != 1 {
		t.Errorf("lock release transitions = %d, want 1", f.LockUp)
	}
	if !f.Pump || f.Heater || !f.LockRelease {
		t.Errorf("levels = heater %v pump %v lock %v, want false true true",
			f.Heater, f.Pump, f.LockRelease)
	}
}

func TestFakePortReset(t *testing.T) {
	f := NewFakePort(true, false)
	f.ReadTrigger()
	f.SetHeater(true)
	f.Close()

	f.Reset()

	if f.Heater || f.HeaterOn != 0 || f.Closed {
		t.Error("Reset did not clear state")
	}
	got, err := f.ReadTrigger()
	if err != nil || got != true {
		t.Errorf("after Reset, first sample = %v (%v), want true", got, err)
	}
}
