package network

import (
	"testing"

	"travian-hq-server/pkg/api"
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	ch1 := hub.Register("mon-1")
	ch2 := hub.Register("mon-2")
	if hub.SubscriberCount() != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", hub.SubscriberCount())
	}

	hub.Broadcast(api.MonitorState{Type: "STATE", Step: 7})

	for _, ch := range []chan api.MonitorState{ch1, ch2} {
		select {
		case got := <-ch:
			if got.Step != 7 {
				t.Errorf("Expected step 7, got %d", got.Step)
			}
		default:
			t.Error("Expected a buffered state frame")
		}
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	ch := hub.Register("mon-1")
	hub.Unregister("mon-1")

	if hub.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers, got %d", hub.SubscriberCount())
	}
	if _, open := <-ch; open {
		t.Error("Expected channel to be closed after unregister")
	}

	// Повторное удаление безвредно.
	hub.Unregister("mon-1")
}

func TestHub_DuplicateRegisterClosesOld(t *testing.T) {
	hub := NewHub()

	old := hub.Register("mon-1")
	fresh := hub.Register("mon-1")

	if _, open := <-old; open {
		t.Error("Expected old channel to be closed on re-register")
	}
	if hub.SubscriberCount() != 1 {
		t.Errorf("Expected 1 subscriber, got %d", hub.SubscriberCount())
	}

	hub.Broadcast(api.MonitorState{Step: 1})
	select {
	case <-fresh:
	default:
		t.Error("Fresh channel must receive broadcasts")
	}
}

func TestHub_SlowSubscriberDropsFrames(t *testing.T) {
	hub := NewHub()
	ch := hub.Register("slow")

	// Переполняем буфер: лишние кадры обязаны молча отбрасываться, не
	// блокируя рассылку.
	for i := 0; i < 50; i++ {
		hub.Broadcast(api.MonitorState{Step: i})
	}

	if got := len(ch); got != cap(ch) {
		t.Errorf("Expected full buffer of %d frames, got %d", cap(ch), got)
	}

	// Первый кадр в буфере - самый старый, хвост срезан.
	first := <-ch
	if first.Step != 0 {
		t.Errorf("Expected oldest frame first, got step %d", first.Step)
	}
}
