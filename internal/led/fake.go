package led

// FakeIndicator records indicator calls for test assertions.
type FakeIndicator struct {
	// Fills contains the colors passed to Fill, in order.
	Fills []Color

	// Sweeps contains the colors passed to Sweep, in order.
	Sweeps []Color

	// FillError, if set, will be returned by Fill.
	FillError error

	// SweepError, if set, will be returned by Sweep.
	SweepError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeIndicator creates a FakeIndicator for testing.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Fill records the color.
func (f *FakeIndicator) Fill(c Color) error {
	if f.FillError != nil {
		return f.FillError
	}
	f.Fills = append(f.Fills, c)
	return nil
}

// Sweep records the color.
func (f *FakeIndicator) Sweep(c Color) error {
	if f.SweepError != nil {
		return f.SweepError
	}
	f.Sweeps = append(f.Sweeps, c)
	return nil
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}

// LastFill returns the most recent Fill color, or Off if none.
func (f *FakeIndicator) LastFill() Color {
	if len(f.Fills) == 0 {
		return Off
	}
	return f.Fills[len(f.Fills)-1]
}

// Reset clears recorded calls.
func (f *FakeIndicator) Reset() {
	f.Fills = nil
	f.Sweeps = nil
	f.FillError = nil
	f.SweepError = nil
	f.Closed = false
}
