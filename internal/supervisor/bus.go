package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rnelson/sterilizer-prop/internal/bus"
)

// outboxCap bounds how many notifications are held for replay while the
// bus is down.
const outboxCap = 32

// MessageHandler receives inbound messages addressed to this device.
type MessageHandler func(topic string, payload []byte)

// Bus supervises the pub/sub session on top of an established link.
//
// It only attempts to connect while the link supervisor reports Connected;
// with the link down the bus is forced Disconnected without its retry clock
// running. A subscribe always happens immediately after a successful connect
// and before any message is delivered.
type Bus struct {
	session     bus.Session
	inboxTopic  string
	timeout     time.Duration
	connectWait time.Duration
	handler     MessageHandler
	log         *slog.Logger

	state    ConnState
	deadline time.Time // end of the current outage window; zero while connected
	timedOut bool

	outbox     *bus.Outbox
	subscribed bool
}

// NewBus creates a bus supervisor. timeout bounds the total continuous
// outage; connectWait bounds a single blocking connect attempt within one
// tick. handler receives messages arriving on inboxTopic.
func NewBus(session bus.Session, inboxTopic string, timeout, connectWait time.Duration, handler MessageHandler, log *slog.Logger) *Bus {
	return &Bus{
		session:     session,
		inboxTopic:  inboxTopic,
		timeout:     timeout,
		connectWait: connectWait,
		handler:     handler,
		log:         log,
		state:       Disconnected,
		outbox:      bus.NewOutbox(outboxCap),
	}
}

// Tick advances the supervisor and returns the resulting state. While
// connected it drains the session's inbound queue, routing each message on
// the device's inbox topic to the handler.
func (b *Bus) Tick(now time.Time, linkState ConnState) ConnState {
	if linkState != Connected {
		// Can't reach the broker without a link. The retry clock is
		// parked so link flaps don't eat into the bus timeout.
		b.deadline = time.Time{}
		b.subscribed = false
		if b.timedOut {
			b.state = TimedOut
		} else {
			b.state = Disconnected
		}
		return b.state
	}

	if b.session.IsConnected() && b.subscribed {
		if b.state != Connected {
			b.log.Info("bus session connected")
		}
		b.state = Connected
		b.timedOut = false
		b.deadline = time.Time{}
		b.pump()
		b.replay()
		return b.state
	}

	if b.timedOut {
		b.state = TimedOut
		return b.state
	}

	if b.deadline.IsZero() {
		b.deadline = now.Add(b.timeout)
	}

	if !now.Before(b.deadline) {
		b.timedOut = true
		b.state = TimedOut
		b.log.Error("bus reconnection timed out, giving up", "timeout", b.timeout)
		return b.state
	}

	b.state = Connecting
	if err := b.connect(); err != nil {
		b.log.Debug("bus connect attempt failed", "error", err)
		b.state = Disconnected
		return b.state
	}

	b.log.Info("bus session connected")
	b.state = Connected
	b.timedOut = false
	b.deadline = time.Time{}
	b.replay()
	return b.state
}

// connect performs one bounded connect attempt with small backoff between
// retries, then subscribes to the inbox topic. The session is only usable
// once the subscribe has completed.
func (b *Bus) connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), b.connectWait)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = min(b.connectWait/8, 250*time.Millisecond)
	bo.MaxInterval = 2 * time.Second
	bo.MaxElapsedTime = b.connectWait

	err := backoff.Retry(func() error {
		if b.session.IsConnected() {
			return nil
		}
		return b.session.Connect(ctx)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return err
	}

	if err := b.session.Subscribe(b.inboxTopic); err != nil {
		// Without the subscription the session is useless; drop it and
		// let the next tick start over.
		b.session.Close()
		return err
	}
	b.subscribed = true
	return nil
}

// pump drains buffered inbound messages, routing inbox-topic messages to
// the handler. Messages on other topics are ignored.
func (b *Bus) pump() {
	for _, msg := range b.session.Drain() {
		if msg.Topic != b.inboxTopic {
			b.log.Debug("ignoring message on foreign topic", "topic", msg.Topic)
			continue
		}
		b.handler(msg.Topic, msg.Payload)
	}
}

// replay publishes notifications buffered while the session was down.
func (b *Bus) replay() {
	for _, msg := range b.outbox.DrainAll() {
		if err := b.session.Publish(msg.Topic, msg.Payload); err != nil {
			b.log.Warn("replay publish failed, re-buffering", "error", err)
			b.outbox.Push(msg)
			return
		}
	}
}

// Publish sends a notification on topic, buffering it for replay if the
// session is down or the publish fails. Publish itself never fails.
func (b *Bus) Publish(topic string, payload []byte) {
	msg := bus.Message{Topic: topic, Payload: payload}

	if b.state == Connected && b.session.IsConnected() {
		err := b.session.Publish(topic, payload)
		if err == nil {
			return
		}
		b.log.Warn("publish failed, buffering", "topic", topic, "error", err)
	}

	if b.outbox.Push(msg) {
		b.log.Warn("outbox full, dropped oldest notification")
	}
}

// State returns the state from the last Tick.
func (b *Bus) State() ConnState {
	return b.state
}
