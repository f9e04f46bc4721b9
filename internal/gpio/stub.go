//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealPort is not available on non-Linux platforms.
type RealPort struct{}

// NewRealPort returns an error on non-Linux platforms.
func NewRealPort(pinTrigger, pinHeater, pinPump, pinLock int) (*RealPort, error) {
	return nil, errUnsupported
}

// ReadTrigger is not implemented on non-Linux platforms.
func (p *RealPort) ReadTrigger() (bool, error) { return false, errUnsupported }

// SetHeater is not implemented on non-Linux platforms.
func (p *RealPort) SetHeater(on bool) error { return errUnsupported }

// SetPump is not implemented on non-Linux platforms.
func (p *RealPort) SetPump(on bool) error { return errUnsupported }

// SetLockRelease is not implemented on non-Linux platforms.
func (p *RealPort) SetLockRelease(on bool) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (p *RealPort) Close() error { return nil }
