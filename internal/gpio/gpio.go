// Package gpio provides the prop's sensor and actuator port with hardware
// abstraction. The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Port reads the trigger switch and drives the relay outputs.
type Port interface {
	// ReadTrigger returns true when the rotary switch is in the solved
	// position. The raw input is active-low: raw 0 = triggered.
	ReadTrigger() (bool, error)

	// SetHeater drives the flame-effect heater relay.
	SetHeater(on bool) error

	// SetPump drives the pump relay.
	SetPump(on bool) error

	// SetLockRelease drives the maglock relay. true (HIGH) drops the
	// magnet and releases the door; false holds it locked.
	SetLockRelease(on bool) error

	// Close releases GPIO resources, driving all outputs low first.
	Close() error
}

// Pin definitions (BCM numbering), matching the deployed prop wiring.
const (
	DefaultPinTrigger = 27
	DefaultPinHeater  = 33
	DefaultPinPump    = 25
	DefaultPinLock    = 26
)
