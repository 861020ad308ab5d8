// Package ids assigns identifiers to new records. Neither function touches
// storage; both only look at the collection they are given.
package ids

import (
	"errors"
	"math"

	"github.com/google/uuid"

	"tiendajson/internal/domain"
)

// ErrExhausted is returned when the largest product id is already the
// largest representable int.
var ErrExhausted = errors.New("product ids exhausted")

// newToken is swapped in tests to force collisions.
var newToken = uuid.NewString

// NextProductID returns one more than the largest existing id, or 1 for an
// empty collection.
func NextProductID(existing []domain.Product) (int, error) {
	top := 0
	for _, p := range existing {
		if p.ID > top {
			top = p.ID
		}
	}
	if top == math.MaxInt {
		return 0, ErrExhausted
	}
	return top + 1, nil
}

// NextCartID returns a random UUID not used by any cart in existing.
func NextCartID(existing []domain.Cart) string {
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[c.ID] = struct{}{}
	}
	for {
		id := newToken()
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}
