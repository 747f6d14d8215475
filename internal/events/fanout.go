package events

import "github.com/playperu/bingohall/internal/bingo"

// Fanout forwards every event to each of its notifiers in order.
type Fanout []bingo.Notifier

func (f Fanout) Notify(e bingo.Event) {
	for _, n := range f {
		n.Notify(e)
	}
}
