package bus

import "context"

// FakeSession is a scriptable Session for tests.
type FakeSession struct {
	// Connected controls IsConnected.
	Connected bool

	// ConnectError, if set, is returned by Connect (and Connected stays
	// unchanged).
	ConnectError error

	// ConnectCalls counts Connect attempts.
	ConnectCalls int

	// Subscriptions contains topics passed to Subscribe, in order.
	Subscriptions []string

	// SubscribeError, if set, is returned by Subscribe.
	SubscribeError error

	// Published contains all successfully published messages.
	Published []Message

	// PublishError, if set, is returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool

	// pending holds injected inbound messages until the next Drain.
	pending []Message
}

// NewFakeSession creates a disconnected FakeSession.
func NewFakeSession() *FakeSession {
	return &FakeSession{}
}

// Connect succeeds unless ConnectError is set.
func (f *FakeSession) Connect(ctx context.Context) error {
	f.ConnectCalls++
	if f.ConnectError != nil {
		return f.ConnectError
	}
	f.Connected = true
	return nil
}

// IsConnected reports the scripted state.
func (f *FakeSession) IsConnected() bool {
	return f.Connected
}

// Subscribe records the topic.
func (f *FakeSession) Subscribe(topic string) error {
	if f.SubscribeError != nil {
		return f.SubscribeError
	}
	f.Subscriptions = append(f.Subscriptions, topic)
	return nil
}

// Publish records the message.
func (f *FakeSession) Publish(topic string, payload []byte) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Published = append(f.Published, Message{Topic: topic, Payload: payload})
	return nil
}

// Inject queues an inbound message for the next Drain.
func (f *FakeSession) Inject(topic string, payload []byte) {
	f.pending = append(f.pending, Message{Topic: topic, Payload: payload})
}

// Drain returns and clears injected messages.
func (f *FakeSession) Drain() []Message {
	msgs := f.pending
	f.pending = nil
	return msgs
}

// Close marks the session as closed and disconnected.
func (f *FakeSession) Close() error {
	f.Closed = true
	f.Connected = false
	return nil
}

// PublishedOn returns the payloads published on topic, as strings.
func (f *FakeSession) PublishedOn(topic string) []string {
	var out []string
	for _, m := range f.Published {
		if m.Topic == topic {
			out = append(out, string(m.Payload))
		}
	}
	return out
}
