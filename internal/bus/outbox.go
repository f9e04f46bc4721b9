package bus

// Outbox is a fixed-capacity FIFO that stores outbound messages while the
// session is disconnected, for replay after reconnection.
// Not safe for concurrent use; caller must synchronize.
type Outbox struct {
	buf      []Message
	capacity int
	head     int // next write position
	count    int
}

// NewOutbox creates an Outbox holding at most capacity messages.
func NewOutbox(capacity int) *Outbox {
	return &Outbox{
		buf:      make([]Message, capacity),
		capacity: capacity,
	}
}

// Push appends a message, overwriting the oldest when full.
// Returns true if a message was dropped to make room.
func (o *Outbox) Push(msg Message) bool {
	dropped := o.count == o.capacity
	o.buf[o.head] = msg
	o.head = (o.head + 1) % o.capacity
	if !dropped {
		o.count++
	}
	return dropped
}

// DrainAll returns all buffered messages oldest-first and empties the outbox.
func (o *Outbox) DrainAll() []Message {
	if o.count == 0 {
		return nil
	}

	result := make([]Message, o.count)
	// Oldest item is at (head - count) mod capacity
	start := (o.head - o.count + o.capacity) % o.capacity
	for i := 0; i < o.count; i++ {
		result[i] = o.buf[(start+i)%o.capacity]
	}

	o.count = 0
	o.head = 0
	return result
}

// Len returns the number of buffered messages.
func (o *Outbox) Len() int {
	return o.count
}
