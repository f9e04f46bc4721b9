package link

// FakeTransport is a scriptable link transport for tests.
type FakeTransport struct {
	// Connected controls IsConnected.
	Connected bool

	// Reconnects counts Reconnect calls.
	Reconnects int

	// ConnectAfter, when positive, flips Connected to true once that
	// many Reconnect calls have been made.
	ConnectAfter int
}

// NewFakeTransport creates a FakeTransport in the given state.
func NewFakeTransport(connected bool) *FakeTransport {
	return &FakeTransport{Connected: connected}
}

// IsConnected reports the scripted state.
func (f *FakeTransport) IsConnected() bool {
	return f.Connected
}

// Reconnect counts the attempt and applies ConnectAfter.
func (f *FakeTransport) Reconnect() {
	f.Reconnects++
	if f.ConnectAfter > 0 && f.Reconnects >= f.ConnectAfter {
		f.Connected = true
	}
}
