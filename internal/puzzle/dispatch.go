package puzzle

import (
	"log/slog"
	"strings"
)

// Dispatcher parses inbound bus payloads into puzzle commands.
//
// The vocabulary is exactly {"solve", "reset"}, matched case-insensitively
// after trimming surrounding whitespace. Anything else is logged and
// dropped; there is no error reply.
type Dispatcher struct {
	inboxTopic string
	machine    *Machine
	log        *slog.Logger
}

// NewDispatcher creates a dispatcher feeding the given machine.
func NewDispatcher(inboxTopic string, machine *Machine, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		inboxTopic: inboxTopic,
		machine:    machine,
		log:        log,
	}
}

// OnMessage handles one inbound message. Messages on topics other than the
// device inbox are ignored.
func (d *Dispatcher) OnMessage(topic string, payload []byte) {
	if topic != d.inboxTopic {
		return
	}

	// Best-effort fold; a malformed binary payload just won't match.
	cmd := strings.ToLower(strings.TrimSpace(string(payload)))

	switch cmd {
	case "solve":
		d.log.Info("solve command received")
		d.machine.Solve()
	case "reset":
		d.log.Info("reset command received")
		d.machine.Reset()
	default:
		d.log.Warn("unrecognized command", "payload", cmd)
	}
}
