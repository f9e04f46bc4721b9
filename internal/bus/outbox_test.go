package bus

import (
	"fmt"
	"testing"
)

func msg(i int) Message {
	return Message{Topic: "t", Payload: []byte(fmt.Sprintf("m%d", i))}
}

func TestOutboxEmpty(t *testing.T) {
	o := NewOutbox(10)
	if o.Len() != 0 {
		t.Errorf("Len = %d, want 0", o.Len())
	}
	if got := o.DrainAll(); got != nil {
		t.Errorf("DrainAll on empty = %v, want nil", got)
	}
}

func TestOutboxFIFOOrder(t *testing.T) {
	o := NewOutbox(10)
	for i := 0; i < 5; i++ {
		if dropped := o.Push(msg(i)); dropped {
			t.Errorf("push %d reported drop", i)
		}
	}
	if o.Len() != 5 {
		t.Errorf("Len = %d, want 5", o.Len())
	}

	out := o.DrainAll()
	if len(out) != 5 {
		t.Fatalf("drained %d, want 5", len(out))
	}
	for i, m := range out {
		if string(m.Payload) != fmt.Sprintf("m%d", i) {
			t.Errorf("position %d = %s, want m%d", i, m.Payload, i)
		}
	}
	if o.Len() != 0 {
		t.Errorf("Len after drain = %d, want 0", o.Len())
	}
}

func TestOutboxOverflowDropsOldest(t *testing.T) {
	o := NewOutbox(3)
	for i := 0; i < 3; i++ {
		o.Push(msg(i))
	}
	if dropped := o.Push(msg(3)); !dropped {
		t.Error("push beyond capacity should report a drop")
	}

	out := o.DrainAll()
	if len(out) != 3 {
		t.Fatalf("drained %d, want 3", len(out))
	}
	want := []string{"m1", "m2", "m3"}
	for i, m := range out {
		if string(m.Payload) != want[i] {
			t.Errorf("position %d = %s, want %s", i, m.Payload, want[i])
		}
	}
}

func TestOutboxReusableAfterDrain(t *testing.T) {
	o := NewOutbox(2)
	o.Push(msg(0))
	o.DrainAll()

	o.Push(msg(1))
	o.Push(msg(2))
	out := o.DrainAll()
	if len(out) != 2 || string(out[0].Payload) != "m1" || string(out[1].Payload) != "m2" {
		t.Errorf("after reuse drained %v", out)
	}
}
