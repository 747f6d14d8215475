// Package events delivers game events to live subscribers and mirrors
// them to Redis.
package events

import (
	"encoding/json"
	"sync"

	"github.com/playperu/bingohall/internal/bingo"
)

// Broker is an in-process pub/sub for game events, keyed by game ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

var _ bingo.Notifier = (*Broker)(nil)

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events of the given game.
func (b *Broker) Subscribe(gameID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(gameID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Subscribers reports how many channels listen to gameID.
func (b *Broker) Subscribers(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[gameID])
}

// Notify publishes e to every subscriber of its game.
func (b *Broker) Notify(e bingo.Event) {
	data, _ := json.Marshal(e)
	b.Publish(e.GameID, data)
}

// Publish sends an encoded event to all subscribers of the given game.
func (b *Broker) Publish(gameID string, data []byte) {
	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
