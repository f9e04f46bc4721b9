package bus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// inboundCap bounds the buffered inbound queue. Commands are short and
// rare; anything beyond this means nobody is draining.
const inboundCap = 64

const (
	defaultConnectWait = 5 * time.Second
	publishWait        = 5 * time.Second
	subscribeWait      = 5 * time.Second
)

// RealSession is a Session backed by an MQTT broker.
//
// Auto-reconnect is deliberately off: the bus supervisor owns the retry and
// timeout policy, so the paho client only ever does what it is told on the
// current tick.
type RealSession struct {
	client  paho.Client
	inbound chan Message
	log     *slog.Logger
}

// NewRealSession creates a session for the given broker. clientID must be
// unique per device on the bus.
func NewRealSession(broker, clientID string, log *slog.Logger) *RealSession {
	s := &RealSession{
		inbound: make(chan Message, inboundCap),
		log:     log,
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetKeepAlive(30 * time.Second).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			s.log.Warn("mqtt connection lost", "error", err)
		})

	s.client = paho.NewClient(opts)
	return s
}

// Connect performs one connect attempt bounded by the context deadline.
func (s *RealSession) Connect(ctx context.Context) error {
	wait := defaultConnectWait
	if deadline, ok := ctx.Deadline(); ok {
		wait = time.Until(deadline)
	}
	if wait <= 0 {
		return context.DeadlineExceeded
	}

	token := s.client.Connect()
	if !token.WaitTimeout(wait) {
		return fmt.Errorf("connect timeout after %v", wait)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// IsConnected reports the paho client state.
func (s *RealSession) IsConnected() bool {
	return s.client.IsConnectionOpen()
}

// Subscribe registers the inbound handler for topic at QoS 1.
func (s *RealSession) Subscribe(topic string) error {
	token := s.client.Subscribe(topic, 1, s.onMessage)
	if !token.WaitTimeout(subscribeWait) {
		return fmt.Errorf("subscribe timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// onMessage queues an inbound message for the next Drain. Runs on a paho
// goroutine, so it must not block; if the queue is full the message is
// dropped with a log line.
func (s *RealSession) onMessage(_ paho.Client, msg paho.Message) {
	m := Message{Topic: msg.Topic(), Payload: msg.Payload()}
	select {
	case s.inbound <- m:
	default:
		s.log.Warn("inbound queue full, dropping message", "topic", m.Topic)
	}
}

// Drain returns queued inbound messages in arrival order.
func (s *RealSession) Drain() []Message {
	var msgs []Message
	for {
		select {
		case m := <-s.inbound:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

// Publish sends one message at QoS 1, waiting for confirmation.
func (s *RealSession) Publish(topic string, payload []byte) error {
	token := s.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishWait) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (s *RealSession) Close() error {
	s.client.Disconnect(1000) // 1 second quiesce
	return nil
}
