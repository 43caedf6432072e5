package trace

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed event recorder for offline inspection of actor
// runs. Use ":memory:" as the path for an ephemeral store.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed creates) a trace database at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open trace database")
	}
	// One connection: serializes writers, and keeps ":memory:" stores from
	// getting a fresh empty database per pooled connection.
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate trace database")
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		actor_id  TEXT NOT NULL,
		actor     TEXT NOT NULL,
		kind      TEXT NOT NULL,
		detail    TEXT NOT NULL DEFAULT '',
		seq       INTEGER NOT NULL,
		timestamp TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_actor_id ON events(actor_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Record(e Event) error {
	_, err := s.db.Exec(
		`INSERT INTO events (actor_id, actor, kind, detail, seq, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ActorID, e.Actor, e.Kind, e.Detail, e.Seq, e.Timestamp.Format(sqliteTimeFormat),
	)
	return errors.Wrap(err, "insert event")
}

// Events returns all events recorded for one actor instance in dispatch
// order.
func (s *Store) Events(actorID string) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT actor_id, actor, kind, detail, seq, timestamp FROM events WHERE actor_id = ? ORDER BY seq`,
		actorID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ts string
		if err := rows.Scan(&e.ActorID, &e.Actor, &e.Kind, &e.Detail, &e.Seq, &ts); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		t, err := time.Parse(sqliteTimeFormat, ts)
		if err != nil {
			return nil, errors.Wrapf(err, "bad timestamp %q", ts)
		}
		e.Timestamp = t
		events = append(events, e)
	}
	return events, rows.Err()
}

// ActorIDs returns the distinct actor instances present in the store.
func (s *Store) ActorIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT actor_id FROM events ORDER BY actor_id`)
	if err != nil {
		return nil, errors.Wrap(err, "query actor ids")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan actor id")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
