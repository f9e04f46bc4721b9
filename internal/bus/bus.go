// Package bus provides the pub/sub messaging session with abstraction for
// testing. The real implementation speaks MQTT via paho; retry policy is
// owned by the supervisor, not by this package.
package bus

import "context"

// Message is a single pub/sub message.
type Message struct {
	Topic   string
	Payload []byte
}

// Session is the messaging capability the bus supervisor drives.
type Session interface {
	// Connect performs one bounded connect attempt. The context deadline
	// limits how long the attempt may take.
	Connect(ctx context.Context) error

	// IsConnected reports the current session state.
	IsConnected() bool

	// Subscribe registers interest in topic. Only valid after a
	// successful Connect.
	Subscribe(topic string) error

	// Publish sends one message. Returns an error if the session is not
	// connected or delivery cannot be confirmed.
	Publish(topic string, payload []byte) error

	// Drain returns inbound messages received since the last call, in
	// arrival order.
	Drain() []Message

	// Close disconnects from the broker.
	Close() error
}
