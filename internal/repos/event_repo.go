package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"tiendajson/internal/domain"
)

type EventRepo struct{ db *sqlx.DB }

func NewEventRepo(db *sqlx.DB) *EventRepo { return &EventRepo{db: db} }

type eventRow struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	Collection string `db:"collection"`
	Action     string `db:"action"`
	EntityID   string `db:"entity_id"`
	CreatedAt  string `db:"created_at"`
}

func (r eventRow) event() domain.Event {
	at, _ := time.Parse(time.RFC3339Nano, r.CreatedAt)
	return domain.Event{ID: r.ID, Name: r.Name, Collection: r.Collection, Action: r.Action, EntityID: r.EntityID, At: at}
}

// Record stores e and returns it with its journal id set.
func (r *EventRepo) Record(e domain.Event) (domain.Event, error) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	res, err := r.db.Exec(`
		INSERT INTO events(name, collection, action, entity_id, created_at)
		VALUES(?,?,?,?,?)
	`, e.Name, e.Collection, e.Action, e.EntityID, e.At.Format(time.RFC3339Nano))
	if err != nil {
		return e, err
	}
	e.ID, err = res.LastInsertId()
	return e, err
}

// Latest returns up to limit events, newest first.
func (r *EventRepo) Latest(limit int) ([]domain.Event, error) {
	var rows []eventRow
	if err := r.db.Select(&rows, `
		SELECT id, name, collection, action, entity_id, created_at
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

// Since returns up to limit events recorded after id, oldest first.
func (r *EventRepo) Since(id int64, limit int) ([]domain.Event, error) {
	var rows []eventRow
	if err := r.db.Select(&rows, `
		SELECT id, name, collection, action, entity_id, created_at
		FROM events
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?
	`, id, limit); err != nil {
		return nil, err
	}
	return toEvents(rows), nil
}

func toEvents(rows []eventRow) []domain.Event {
	out := make([]domain.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.event())
	}
	return out
}
