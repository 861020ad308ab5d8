package domain

import "time"

const (
	EventProducts = "updateProducts"
	EventCarts    = "updateCarts"
)

// Event is a "something changed" signal sent to realtime subscribers after a
// mutation has been persisted.
type Event struct {
	ID         int64     `json:"id"`
	Name       string    `json:"event"`
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entityId"`
	At         time.Time `json:"at"`
}
