//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealPort drives actual hardware using the Linux GPIO character device.
type RealPort struct {
	chip    *gpiocdev.Chip
	trigger *gpiocdev.Line
	heater  *gpiocdev.Line
	pump    *gpiocdev.Line
	lock    *gpiocdev.Line
}

// NewRealPort opens the prop's input and relay lines.
// All outputs start low: heater and pump off, maglock energized (door held).
func NewRealPort(pinTrigger, pinHeater, pinPump, pinLock int) (*RealPort, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	p := &RealPort{chip: chip}

	// Trigger switch shorts to ground when in the solved position.
	p.trigger, err = chip.RequestLine(pinTrigger, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("request trigger pin %d: %w", pinTrigger, err)
	}

	outputs := []struct {
		name string
		pin  int
		dst  **gpiocdev.Line
	}{
		{"heater", pinHeater, &p.heater},
		{"pump", pinPump, &p.pump},
		{"lock", pinLock, &p.lock},
	}
	for _, out := range outputs {
		line, err := chip.RequestLine(out.pin, gpiocdev.AsOutput(0))
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", out.name, out.pin, err)
		}
		*out.dst = line
	}

	return p, nil
}

// ReadTrigger returns the logical trigger state.
// Inverts the raw value: raw 0 (switch closed to ground) = triggered.
func (p *RealPort) ReadTrigger() (bool, error) {
	raw, err := p.trigger.Value()
	if err != nil {
		return false, fmt.Errorf("read trigger pin: %w", err)
	}
	return raw == 0, nil
}

// SetHeater drives the heater relay.
func (p *RealPort) SetHeater(on bool) error {
	return setLine(p.heater, "heater", on)
}

// SetPump drives the pump relay.
func (p *RealPort) SetPump(on bool) error {
	return setLine(p.pump, "pump", on)
}

// SetLockRelease drives the maglock relay. HIGH de-energizes the magnet.
func (p *RealPort) SetLockRelease(on bool) error {
	return setLine(p.lock, "lock", on)
}

func setLine(line *gpiocdev.Line, name string, on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s pin: %w", name, err)
	}
	return nil
}

// Close drives all outputs low and releases GPIO resources. Low is the safe
// state for the relays and re-energizes the maglock.
func (p *RealPort) Close() error {
	var errs []error

	for _, line := range []*gpiocdev.Line{p.heater, p.pump, p.lock} {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear output: %w", err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output: %w", err))
		}
	}
	if p.trigger != nil {
		if err := p.trigger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close trigger: %w", err))
		}
	}
	if p.chip != nil {
		if err := p.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
