package playback

import "testing"

func TestValueStream_ReplaysLatestToNewListener(t *testing.T) {
	s := NewValueStream(1)
	s.Publish(2)

	var got []int
	cancel := s.Listen(func(v int) { got = append(got, v) })
	defer cancel()

	s.Publish(3)

	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("listener got %v, want [2 3]", got)
	}
	if s.Value() != 3 {
		t.Errorf("Value() = %d, want 3", s.Value())
	}
}

func TestValueStream_NotifiesInRegistrationOrder(t *testing.T) {
	s := NewValueStream("")

	var order []string
	s.Listen(func(v string) {
		if v != "" {
			order = append(order, "first:"+v)
		}
	})
	s.Listen(func(v string) {
		if v != "" {
			order = append(order, "second:"+v)
		}
	})

	s.Publish("x")

	want := []string{"first:x", "second:x"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestValueStream_CancelStopsDelivery(t *testing.T) {
	s := NewValueStream(0)

	count := 0
	cancel := s.Listen(func(int) { count++ })
	cancel()
	cancel() // idempotent

	s.Publish(1)
	s.Publish(2)

	if count != 1 {
		t.Errorf("listener called %d times, want 1 (initial replay only)", count)
	}
}

func TestValueStream_CloseDetachesListeners(t *testing.T) {
	s := NewValueStream(0)

	count := 0
	s.Listen(func(int) { count++ })
	s.Close()
	s.Publish(5)

	if count != 1 {
		t.Errorf("listener called %d times after close, want 1", count)
	}
	if s.Value() != 0 {
		t.Errorf("Value() = %d, want 0 (publish after close ignored)", s.Value())
	}

	late := 0
	s.Listen(func(int) { late++ })
	if late != 0 {
		t.Errorf("listener on closed stream called %d times, want 0", late)
	}
}

func TestValueStream_ReentrantPublish(t *testing.T) {
	s := NewValueStream(0)

	var got []int
	s.Listen(func(v int) {
		got = append(got, v)
		if v == 1 {
			s.Publish(2)
		}
	})
	s.Publish(1)

	if s.Value() != 2 {
		t.Errorf("Value() = %d, want 2", s.Value())
	}
	if got[len(got)-1] != 2 {
		t.Errorf("last delivered = %d, want 2", got[len(got)-1])
	}
}

func TestEventStream_NoReplay(t *testing.T) {
	s := NewEventStream[string]()
	s.emit("before")

	var got []string
	cancel := s.Listen(func(v string) { got = append(got, v) })
	s.emit("after")
	cancel()
	s.emit("cancelled")

	if len(got) != 1 || got[0] != "after" {
		t.Errorf("got %v, want [after]", got)
	}
}
