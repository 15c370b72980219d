package server

import (
	"encoding/json"
	"sync"

	"github.com/storypath/participant-api/internal/storypath"
)

// Event is the payload published to project subscribers: a check-in or a
// device position update.
type Event struct {
	Type                string                `json:"type"`
	LocationID          int64                 `json:"locationId,omitempty"`
	LocationName        string                `json:"locationName,omitempty"`
	Points              int                   `json:"points,omitempty"`
	ParticipantUsername string                `json:"participantUsername,omitempty"`
	Position            *storypath.Coordinate `json:"position,omitempty"`
}

const (
	eventCheckIn        = "check_in"
	eventPositionUpdate = "position_update"
)

// Broker is an in-process pub/sub for SSE events, keyed by project ID.
// Subscriptions are scoped: every Subscribe is paired with a deferred
// Unsubscribe when the owning request context ends.
type Broker struct {
	mu   sync.RWMutex
	subs map[int64]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[int64]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// given project.
func (b *Broker) Subscribe(projectID int64) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[projectID] == nil {
		b.subs[projectID] = make(map[chan []byte]struct{})
	}
	b.subs[projectID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the project's subscribers.
func (b *Broker) Unsubscribe(projectID int64, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[projectID], ch)
	if len(b.subs[projectID]) == 0 {
		delete(b.subs, projectID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given project.
func (b *Broker) Publish(projectID int64, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[projectID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
