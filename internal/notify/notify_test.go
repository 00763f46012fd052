package notify

import "testing"

func TestPublishReachesAllSubscribers(t *testing.T) {
	var n Notifier
	a := n.Subscribe()
	b := n.Subscribe()

	n.Success("Added to Favorites", `"rain" has been saved.`)

	for _, ch := range []<-chan Notification{a, b} {
		select {
		case got := <-ch:
			if got.Level != LevelSuccess || got.Title != "Added to Favorites" {
				t.Fatalf("unexpected notification %+v", got)
			}
		default:
			t.Fatalf("expected buffered notification")
		}
	}
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	var n Notifier
	ch := n.Subscribe()
	for i := 0; i < 40; i++ {
		n.Info("tick", "message")
	}
	// Channel capacity is 16; the rest must have been dropped, not blocked.
	count := 0
	for {
		select {
		case <-ch:
			count++
			continue
		default:
		}
		break
	}
	if count != 16 {
		t.Fatalf("expected 16 buffered notifications, got %d", count)
	}
}
