//go:build !linux

package led

import "errors"

var errUnsupported = errors.New("led: not supported on this platform (requires Linux spidev)")

// Strip is not available on non-Linux platforms.
type Strip struct{}

// NewStrip returns an error on non-Linux platforms.
func NewStrip(device string, count, brightness int) (*Strip, error) {
	return nil, errUnsupported
}

// Fill is not implemented on non-Linux platforms.
func (s *Strip) Fill(c Color) error { return errUnsupported }

// Sweep is not implemented on non-Linux platforms.
func (s *Strip) Sweep(c Color) error { return errUnsupported }

// Close is not implemented on non-Linux platforms.
func (s *Strip) Close() error { return nil }
