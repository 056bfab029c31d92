// Package store keeps timeline events in SQLite.
//
// Times are stored as (day, seconds) integer pairs, so SQL ordering on
// (start_day, start_sec) is ordering on the linear axis regardless of which
// calendar an event was entered in. Every write stamps the event with a
// Lamport revision drawn from the highest revision in the database; imports
// use the revision to decide whether an incoming copy is newer.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tlcal/tlcal/pkg/clock"
	"github.com/tlcal/tlcal/pkg/model"
	"github.com/tlcal/tlcal/pkg/timeline"
)

// ErrNotFound is returned when no event matches an ID or UID.
var ErrNotFound = errors.New("event not found")

// Store manages all SQLite operations with WAL mode for concurrent access.
type Store struct {
	db     *sql.DB
	src    clock.Source
	commit func(*sql.Tx) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the wall clock used for creation timestamps.
func WithClock(src clock.Source) Option {
	return func(s *Store) { s.src = src }
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string, opts ...Option) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db, src: clock.System{}, commit: (*sql.Tx).Commit}
	for _, o := range opts {
		o(s)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		uid        TEXT NOT NULL UNIQUE,
		calendar   TEXT NOT NULL,
		start_day  INTEGER NOT NULL,
		start_sec  INTEGER NOT NULL,
		end_day    INTEGER NOT NULL,
		end_sec    INTEGER NOT NULL,
		text       TEXT NOT NULL,
		category   TEXT NOT NULL DEFAULT '',
		revision   INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_day, start_sec);
	CREATE INDEX IF NOT EXISTS idx_events_end ON events(end_day, end_sec);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// withTx runs fn in a write transaction, retrying the whole transaction on
// transient SQLite errors. fn may run several times, so it must not change
// caller-owned values; callers publish results once withTx returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return retryOp(ctx, defaultRetryConfig, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := fn(tx); err != nil {
			tx.Rollback()
			return err
		}
		if err := s.commit(tx); err != nil {
			tx.Rollback()
			return err
		}
		return nil
	})
}

// revisionClock seeds a Lamport clock with the highest stored revision.
func revisionClock(ctx context.Context, tx *sql.Tx) (*clock.Revision, error) {
	var max int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(revision), 0) FROM events`).Scan(&max); err != nil {
		return nil, fmt.Errorf("read revision: %w", err)
	}
	var rev clock.Revision
	rev.Set(max)
	return &rev, nil
}

const eventColumns = `id, uid, calendar, start_day, start_sec, end_day, end_sec, text, category, revision, created_at`

// InsertEvent stores a new event, assigning its UID (if empty), revision
// and creation time. Returns the row ID, which is also written to e.ID.
func (s *Store) InsertEvent(ctx context.Context, e *model.Event) (int64, error) {
	if e.UID == "" {
		e.UID = model.NewUID()
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}
	var saved model.Event
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ev := *e
		rev, err := revisionClock(ctx, tx)
		if err != nil {
			return err
		}
		ev.Revision = rev.Tick()
		if err := s.insert(ctx, tx, &ev); err != nil {
			return err
		}
		saved = ev
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert event %q: %w", e.Text, err)
	}
	*e = saved
	return e.ID, nil
}

func (s *Store) insert(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	e.CreatedAt = s.src.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (uid, calendar, start_day, start_sec, end_day, end_sec, text, category, revision, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UID, e.Calendar, e.Start.Day(), e.Start.Seconds(), e.End.Day(), e.End.Seconds(),
		e.Text, e.Category, e.Revision, e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	e.ID, err = res.LastInsertId()
	return err
}

// GetEvent retrieves an event by row ID.
func (s *Store) GetEvent(ctx context.Context, id int64) (*model.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return e, err
}

// GetEventByUID retrieves an event by UID.
func (s *Store) GetEventByUID(ctx context.Context, uid string) (*model.Event, error) {
	return getByUID(ctx, s.db, uid)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getByUID(ctx context.Context, q queryRower, uid string) (*model.Event, error) {
	row := q.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE uid = ?`, uid)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: uid %s", ErrNotFound, uid)
	}
	return e, err
}

// Filter selects events for ListEvents. The zero Filter matches everything.
type Filter struct {
	// Period keeps events overlapping it (see timeline.Period.Overlaps).
	Period *timeline.Period
	// Category keeps events with exactly this category when non-empty.
	Category string
	// Limit caps the number of results; <= 0 means 100.
	Limit int
}

// ListEvents returns matching events ordered on the linear axis by start,
// end and UID (model.Less).
func (s *Store) ListEvents(ctx context.Context, f Filter) ([]model.Event, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	var (
		where []string
		args  []any
	)
	if f.Period != nil {
		// Coarse bounds; Overlaps below applies the exact half-open rule.
		where = append(where, `(start_day, start_sec) <= (?, ?)`, `(end_day, end_sec) >= (?, ?)`)
		args = append(args, f.Period.End.Day(), f.Period.End.Seconds(), f.Period.Start.Day(), f.Period.Start.Seconds())
	}
	if f.Category != "" {
		where = append(where, `category = ?`)
		args = append(args, f.Category)
	}
	q := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += ` ORDER BY start_day, start_sec, end_day, end_sec, uid`
	if f.Period == nil {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() && len(events) < limit {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		if f.Period != nil && !e.Period().Overlaps(*f.Period) {
			continue
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// DeleteEvent removes an event by row ID.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil
	})
}

// CountEvents returns the number of stored events.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// MaxRevision returns the highest revision stored, or 0 if empty.
func (s *Store) MaxRevision(ctx context.Context) (int64, error) {
	var rev int64
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(revision), 0) FROM events`).Scan(&rev)
	return rev, err
}

// UpsertResult reports what UpsertByUID did.
type UpsertResult int

const (
	// Inserted means the UID was new.
	Inserted UpsertResult = iota
	// Updated means the incoming copy replaced the stored one.
	Updated
	// Unchanged means the stored copy already had the same content.
	Unchanged
	// Stale means the stored copy has a newer revision and was kept.
	Stale
)

func (r UpsertResult) String() string {
	switch r {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Unchanged:
		return "unchanged"
	case Stale:
		return "stale"
	}
	return fmt.Sprintf("UpsertResult(%d)", int(r))
}

// UpsertByUID merges an event received from elsewhere (an import). An
// incoming revision of 0 means "unversioned" and always wins over different
// content; otherwise the copy with the newer revision wins. Written events
// get a revision after both copies, per the Lamport receive rule.
func (s *Store) UpsertByUID(ctx context.Context, e *model.Event) (UpsertResult, error) {
	if e.UID == "" {
		e.UID = model.NewUID()
	}
	if err := e.Validate(); err != nil {
		return 0, err
	}
	var (
		result UpsertResult
		saved  model.Event
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ev := *e
		rev, err := revisionClock(ctx, tx)
		if err != nil {
			return err
		}
		existing, err := getByUID(ctx, tx, ev.UID)
		if errors.Is(err, ErrNotFound) {
			ev.Revision = rev.Receive(ev.Revision)
			if err := s.insert(ctx, tx, &ev); err != nil {
				return err
			}
			result, saved = Inserted, ev
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case model.SameContent(*existing, ev):
			result, saved = Unchanged, *existing
		case ev.Revision != 0 && !clock.Newer(ev.Revision, ev.UID, existing.Revision, existing.UID):
			result, saved = Stale, *existing
		default:
			ev.Revision = rev.Receive(ev.Revision)
			_, err := tx.ExecContext(ctx,
				`UPDATE events SET calendar = ?, start_day = ?, start_sec = ?, end_day = ?, end_sec = ?,
				        text = ?, category = ?, revision = ?
				 WHERE id = ?`,
				ev.Calendar, ev.Start.Day(), ev.Start.Seconds(), ev.End.Day(), ev.End.Seconds(),
				ev.Text, ev.Category, ev.Revision, existing.ID,
			)
			if err != nil {
				return err
			}
			ev.ID, ev.CreatedAt = existing.ID, existing.CreatedAt
			result, saved = Updated, ev
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("upsert event %s: %w", e.UID, err)
	}
	*e = saved
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var (
		e                                  model.Event
		startDay, startSec, endDay, endSec int64
		createdStr                         string
	)
	if err := row.Scan(&e.ID, &e.UID, &e.Calendar, &startDay, &startSec, &endDay, &endSec,
		&e.Text, &e.Category, &e.Revision, &createdStr); err != nil {
		return nil, err
	}
	var err error
	if e.Start, err = timeline.New(startDay, startSec); err != nil {
		return nil, fmt.Errorf("event %d start: %w", e.ID, err)
	}
	if e.End, err = timeline.New(endDay, endSec); err != nil {
		return nil, fmt.Errorf("event %d end: %w", e.ID, err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdStr); err != nil {
		return nil, fmt.Errorf("parse created_at for event %d: %w", e.ID, err)
	}
	return &e, nil
}
