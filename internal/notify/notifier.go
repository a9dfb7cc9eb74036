package notify

import (
	"log"
	"sync"
	"time"

	"github.com/aaronzipp/secret-assassins-society/internal/models"
)

// sendTimeout bounds how long a dispatch waits on a slow subscriber before
// giving up on that delivery
const sendTimeout = 1 * time.Second

// Notifier fans out game events to connected subscribers. Each subscriber
// registers a channel for one recipient id; events addressed to that id are
// delivered on it. Slow subscribers drop events instead of blocking the
// game engine.
type Notifier struct {
	mu      sync.RWMutex
	clients map[chan models.Event]string
}

func New() *Notifier {
	return &Notifier{clients: make(map[chan models.Event]string)}
}

// Subscribe registers a delivery channel for a recipient id. The returned
// channel receives every event addressed to that id until Unsubscribe.
func (n *Notifier) Subscribe(recipientID string) chan models.Event {
	ch := make(chan models.Event, 16)
	n.mu.Lock()
	n.clients[ch] = recipientID
	count := len(n.clients)
	n.mu.Unlock()
	log.Printf("notify subscriber added: recipient=%s total=%d", recipientID, count)
	return ch
}

// Unsubscribe removes a delivery channel and closes it
func (n *Notifier) Unsubscribe(ch chan models.Event) {
	n.mu.Lock()
	recipient, ok := n.clients[ch]
	if ok {
		delete(n.clients, ch)
	}
	count := len(n.clients)
	n.mu.Unlock()
	if ok {
		close(ch)
		log.Printf("notify subscriber removed: recipient=%s total=%d", recipient, count)
	}
}

// Dispatch delivers each event to all channels subscribed to its recipient
func (n *Notifier) Dispatch(events []models.Event) {
	if len(events) == 0 {
		return
	}
	n.mu.RLock()
	defer n.mu.RUnlock()

	for _, event := range events {
		for ch, recipient := range n.clients {
			if recipient != event.RecipientID {
				continue
			}
			select {
			case ch <- event:
			case <-time.After(sendTimeout):
				log.Printf("notify send timed out: recipient=%s kind=%s", recipient, event.Kind)
			}
		}
	}
}
