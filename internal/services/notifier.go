package services

import (
	"sync"

	"tiendajson/internal/domain"
	applog "tiendajson/internal/log"
	"tiendajson/internal/realtime"
	"tiendajson/internal/repos"
)

// Notifier emits the change signal that must follow every successful
// mutation. Events are journaled first so the journal id can travel with the
// live event; a journal failure is logged and the event still goes out.
// Record and Publish run under one lock, so subscribers receive events in
// journal id order and a reconnect from the last seen id misses nothing.
type Notifier struct {
	Journal *repos.EventRepo
	Hub     *realtime.Hub

	mu sync.Mutex
}

func NewNotifier(journal *repos.EventRepo, hub *realtime.Hub) *Notifier {
	return &Notifier{Journal: journal, Hub: hub}
}

func (n *Notifier) Changed(name, collection, action, entityID string) domain.Event {
	e := domain.Event{Name: name, Collection: collection, Action: action, EntityID: entityID}
	if n == nil {
		return e
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Journal != nil {
		rec, err := n.Journal.Record(e)
		if err != nil {
			applog.Error(nil, "journal.record.fail", err, map[string]any{"event": name, "action": action, "entity": entityID})
		} else {
			e = rec
		}
	}
	if n.Hub != nil {
		n.Hub.Publish(e)
	}
	return e
}
