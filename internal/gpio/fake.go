package gpio

import "errors"

// FakePort is a test double with scripted trigger samples and recorded
// output levels.
type FakePort struct {
	// TriggerSamples contains scripted trigger values. Each ReadTrigger
	// call consumes the next sample; the last sample repeats once the
	// script is exhausted.
	TriggerSamples []bool

	// index tracks current position in TriggerSamples
	index int

	// Current output levels.
	Heater      bool
	Pump        bool
	LockRelease bool

	// Transition counts, for asserting that side effects run exactly once.
	HeaterOn  int
	HeaterOff int
	PumpOn    int
	PumpOff   int
	LockUp    int
	LockDown  int

	// ReadError, if set, will be returned by ReadTrigger.
	ReadError error

	// WriteError, if set, will be returned by the output setters.
	WriteError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePort creates a FakePort with the given trigger script.
func NewFakePort(samples ...bool) *FakePort {
	return &FakePort{TriggerSamples: samples}
}

// ReadTrigger returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakePort) ReadTrigger() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	if len(f.TriggerSamples) == 0 {
		return false, errors.New("no trigger samples configured")
	}
	s := f.TriggerSamples[f.index]
	if f.index < len(f.TriggerSamples)-1 {
		f.index++
	}
	return s, nil
}

// SetHeater records the heater level, counting transitions.
func (f *FakePort) SetHeater(on bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if on && !f.Heater {
		f.HeaterOn++
	} else if !on && f.Heater {
		f.HeaterOff++
	}
	f.Heater = on
	return nil
}

// SetPump records the pump level, counting transitions.
func (f *FakePort) SetPump(on bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if on && !f.Pump {
		f.PumpOn++
	} else if !on && f.Pump {
		f.PumpOff++
	}
	f.Pump = on
	return nil
}

// SetLockRelease records the maglock level, counting transitions.
func (f *FakePort) SetLockRelease(on bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if on && !f.LockRelease {
		f.LockUp++
	} else if !on && f.LockRelease {
		f.LockDown++
	}
	f.LockRelease = on
	return nil
}

// Close marks the port as closed.
func (f *FakePort) Close() error {
	f.Closed = true
	return nil
}

// Reset returns the fake to its initial state, keeping the trigger script.
func (f *FakePort) Reset() {
	f.index = 0
	f.Heater, f.Pump, f.LockRelease = false, false, false
	f.HeaterOn, f.HeaterOff = 0, 0
	f.PumpOn, f.PumpOff = 0, 0
	f.LockUp, f.LockDown = 0, 0
	f.ReadError, f.WriteError = nil, nil
	f.Closed = false
}
