package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tlcal/tlcal/pkg/clock"
	"github.com/tlcal/tlcal/pkg/model"
	"github.com/tlcal/tlcal/pkg/timeline"
)

var testNow = time.Date(2013, 7, 7, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath, WithClock(clock.Fixed(testNow)))
	if err != nil {
		t.Fatalf("New(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// event builds an event spanning whole days [startDay, endDay).
func event(text string, startDay, endDay int64) *model.Event {
	return &model.Event{
		Calendar: "gregorian",
		Start:    timeline.MustNew(startDay, 0),
		End:      timeline.MustNew(endDay, 0),
		Text:     text,
	}
}

func mustInsert(t *testing.T, s *Store, e *model.Event) int64 {
	t.Helper()
	id, err := s.InsertEvent(context.Background(), e)
	if err != nil {
		t.Fatalf("InsertEvent(%q): %v", e.Text, err)
	}
	return id
}

func texts(events []model.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Text
	}
	return out
}

// --- Insert / get ---

func TestInsertAndGetEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := event("Battle of Hastings", 2110356, 2110357)
	e.Start = timeline.MustNew(2110356, 9*3600)
	e.Category = "war"
	id := mustInsert(t, s, e)
	if id <= 0 || e.ID != id {
		t.Fatalf("InsertEvent returned id %d (e.ID %d), want > 0 and equal", id, e.ID)
	}
	if e.UID == "" {
		t.Fatal("InsertEvent should assign a UID")
	}
	if e.Revision != 1 {
		t.Fatalf("first revision = %d, want 1", e.Revision)
	}

	got, err := s.GetEvent(ctx, id)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if !model.SameContent(*got, *e) {
		t.Fatalf("GetEvent = %+v, want %+v", got, e)
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, testNow)
	}

	byUID, err := s.GetEventByUID(ctx, e.UID)
	if err != nil {
		t.Fatalf("GetEventByUID: %v", err)
	}
	if byUID.ID != id {
		t.Fatalf("GetEventByUID id = %d, want %d", byUID.ID, id)
	}
}

func TestInsertEvent_KeepsGivenUID(t *testing.T) {
	s := newTestStore(t)
	e := event("x", 10, 11)
	e.UID = model.NewUID()
	uid := e.UID
	mustInsert(t, s, e)
	if e.UID != uid {
		t.Fatalf("UID changed from %q to %q", uid, e.UID)
	}
}

func TestInsertEvent_Invalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertEvent(ctx, event("", 1, 2)); !errors.Is(err, model.ErrEmptyText) {
		t.Fatalf("empty text: got %v, want ErrEmptyText", err)
	}
	if _, err := s.InsertEvent(ctx, event("reversed", 5, 2)); !errors.Is(err, timeline.ErrInvalidPeriod) {
		t.Fatalf("reversed: got %v, want ErrInvalidPeriod", err)
	}
	if n, _ := s.CountEvents(ctx); n != 0 {
		t.Fatalf("invalid events were stored: count %d", n)
	}
}

func TestInsertEvent_DuplicateUID(t *testing.T) {
	s := newTestStore(t)
	a := event("a", 1, 2)
	mustInsert(t, s, a)
	b := event("b", 3, 4)
	b.UID = a.UID
	if _, err := s.InsertEvent(context.Background(), b); err == nil {
		t.Fatal("expected error inserting a duplicate UID")
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.GetEvent(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetEvent: got %v, want ErrNotFound", err)
	}
	if _, err := s.GetEventByUID(ctx, model.NewUID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetEventByUID: got %v, want ErrNotFound", err)
	}
}

func TestRevisionsIncrease(t *testing.T) {
	s := newTestStore(t)
	var prev int64
	for i := 0; i < 5; i++ {
		e := event(fmt.Sprintf("e%d", i), int64(i), int64(i+1))
		mustInsert(t, s, e)
		if e.Revision <= prev {
			t.Fatalf("revision %d not after %d", e.Revision, prev)
		}
		prev = e.Revision
	}
	max, err := s.MaxRevision(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if max != prev {
		t.Fatalf("MaxRevision = %d, want %d", max, prev)
	}
}

// --- Listing ---

func TestListEvents_AxisOrder(t *testing.T) {
	s := newTestStore(t)
	// Inserted out of order, and from different calendars: ordering only
	// depends on the shared axis.
	c := event("c", 300, 301)
	c.Calendar = "coptic"
	mustInsert(t, s, c)
	mustInsert(t, s, event("b-long", 100, 200))
	mustInsert(t, s, event("b-short", 100, 101))
	a := event("a", -5, -5)
	a.Calendar = "numeric"
	mustInsert(t, s, a)

	events, err := s.ListEvents(context.Background(), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b-short", "b-long", "c"}
	got := texts(events)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("ListEvents order = %v, want %v", got, want)
	}
}

func TestListEvents_Period(t *testing.T) {
	s := newTestStore(t)
	mustInsert(t, s, event("before", 0, 10))
	mustInsert(t, s, event("touching-start", 5, 10))
	mustInsert(t, s, event("straddles", 5, 15))
	mustInsert(t, s, event("inside", 11, 12))
	mustInsert(t, s, event("point-inside", 12, 12))
	mustInsert(t, s, event("point-at-end", 20, 20))
	mustInsert(t, s, event("after", 20, 30))
	mustInsert(t, s, event("covers", 0, 100))

	p := timeline.Period{Start: timeline.MustNew(10, 0), End: timeline.MustNew(20, 0)}
	events, err := s.ListEvents(context.Background(), Filter{Period: &p})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"covers", "straddles", "inside", "point-inside"}
	if got := texts(events); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("ListEvents in [10,20) = %v, want %v", got, want)
	}
}

func TestListEvents_Category(t *testing.T) {
	s := newTestStore(t)
	for i, cat := range []string{"war", "", "war", "science"} {
		e := event(fmt.Sprintf("e%d", i), int64(i), int64(i+1))
		e.Category = cat
		mustInsert(t, s, e)
	}
	events, err := s.ListEvents(context.Background(), Filter{Category: "war"})
	if err != nil {
		t.Fatal(err)
	}
	if got := texts(events); fmt.Sprint(got) != "[e0 e2]" {
		t.Fatalf("war events = %v", got)
	}
}

func TestListEvents_Limit(t *testing.T) {
	s := newTestStore(t)
	for i := int64(0); i < 10; i++ {
		mustInsert(t, s, event(fmt.Sprintf("e%d", i), i, i+1))
	}
	ctx := context.Background()

	events, err := s.ListEvents(ctx, Filter{Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events with limit=3, want 3", len(events))
	}

	p := timeline.Period{Start: timeline.MustNew(0, 0), End: timeline.MustNew(100, 0)}
	events, err = s.ListEvents(ctx, Filter{Period: &p, Limit: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 4 {
		t.Fatalf("got %d events with period and limit=4, want 4", len(events))
	}
}

func TestListEvents_DefaultLimit(t *testing.T) {
	s := newTestStore(t)
	for i := int64(0); i < 5; i++ {
		mustInsert(t, s, event("e", i, i+1))
	}
	events, err := s.ListEvents(context.Background(), Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 5 {
		t.Fatalf("got %d events with default limit, want 5", len(events))
	}
}

// --- Delete / count ---

func TestDeleteEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := mustInsert(t, s, event("doomed", 1, 2))
	mustInsert(t, s, event("kept", 1, 2))

	if err := s.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := s.GetEvent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted event still present: %v", err)
	}
	if err := s.DeleteEvent(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second DeleteEvent: got %v, want ErrNotFound", err)
	}
	if n, _ := s.CountEvents(ctx); n != 1 {
		t.Fatalf("CountEvents = %d, want 1", n)
	}
}

func TestCountEvents_Empty(t *testing.T) {
	s := newTestStore(t)
	n, err := s.CountEvents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("CountEvents on empty db = %d, want 0", n)
	}
	if rev, _ := s.MaxRevision(context.Background()); rev != 0 {
		t.Fatalf("MaxRevision on empty db = %d, want 0", rev)
	}
}

// --- Upsert ---

func TestUpsertByUID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stored := event("Coronation", 100, 101)
	mustInsert(t, s, stored) // revision 1
	for i := 0; i < 3; i++ {
		mustInsert(t, s, event("filler", 1, 2)) // revisions 2..4
	}

	copyOf := func(text string, rev int64) *model.Event {
		e := *stored
		e.ID = 0
		e.Text = text
		e.Revision = rev
		return &e
	}

	tests := []struct {
		name     string
		in       *model.Event
		want     UpsertResult
		wantText string
	}{
		{"same content", copyOf("Coronation", 9), Unchanged, "Coronation"},
		// Stored revision becomes max(4, 3)+1 = 5.
		{"newer revision", copyOf("Crowning", 3), Updated, "Crowning"},
		{"older revision", copyOf("Old name", 2), Stale, "Crowning"},
		{"equal revision", copyOf("Other name", 5), Stale, "Crowning"},
		{"unversioned", copyOf("Crowning again", 0), Updated, "Crowning again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.UpsertByUID(ctx, tt.in)
			if err != nil {
				t.Fatalf("UpsertByUID: %v", err)
			}
			if got != tt.want {
				t.Fatalf("UpsertByUID = %v, want %v", got, tt.want)
			}
			e, err := s.GetEventByUID(ctx, stored.UID)
			if err != nil {
				t.Fatal(err)
			}
			if e.Text != tt.wantText {
				t.Fatalf("stored text = %q, want %q", e.Text, tt.wantText)
			}
			if e.ID != stored.ID {
				t.Fatalf("row id changed from %d to %d", stored.ID, e.ID)
			}
		})
	}
}

func TestUpsertByUID_UpdateAdvancesRevision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	stored := event("a", 1, 2)
	mustInsert(t, s, stored)

	in := *stored
	in.Text = "b"
	in.Revision = 10
	if _, err := s.UpsertByUID(ctx, &in); err != nil {
		t.Fatal(err)
	}
	// Receive: max(1, 10) + 1.
	if in.Revision != 11 {
		t.Fatalf("revision after update = %d, want 11", in.Revision)
	}
	next := event("c", 1, 2)
	mustInsert(t, s, next)
	if next.Revision != 12 {
		t.Fatalf("next local revision = %d, want 12", next.Revision)
	}
}

func TestUpsertByUID_Insert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e := event("new", 1, 2)
	e.UID = model.NewUID()
	e.Revision = 7

	got, err := s.UpsertByUID(ctx, e)
	if err != nil {
		t.Fatal(err)
	}
	if got != Inserted {
		t.Fatalf("UpsertByUID = %v, want inserted", got)
	}
	if e.ID <= 0 || e.Revision != 8 {
		t.Fatalf("inserted event id=%d revision=%d, want id>0 revision=8", e.ID, e.Revision)
	}
}

func TestUpsertResultString(t *testing.T) {
	for r, want := range map[UpsertResult]string{
		Inserted: "inserted", Updated: "updated", Unchanged: "unchanged", Stale: "stale",
		UpsertResult(9): "UpsertResult(9)",
	} {
		if got := r.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(r), got, want)
		}
	}
}

// --- Retried transactions ---

// failCommits makes the next n commits roll back and return err.
func failCommits(s *Store, n int, err error) {
	s.commit = func(tx *sql.Tx) error {
		if n > 0 {
			n--
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}
}

var errLocked = errors.New("database is locked")

func TestUpsertByUID_RetriedCommit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stored := event("Coronation", 100, 101)
	stored.UID = model.NewUID()
	stored.Revision = 10
	if _, err := s.UpsertByUID(ctx, stored); err != nil {
		t.Fatal(err)
	}
	// Receive: max(0, 10) + 1.
	if stored.Revision != 11 {
		t.Fatalf("stored revision = %d, want 11", stored.Revision)
	}

	old := *stored
	old.ID = 0
	old.Text = "Old name"
	old.Revision = 5
	failCommits(s, 1, errLocked)
	got, err := s.UpsertByUID(ctx, &old)
	if err != nil {
		t.Fatalf("UpsertByUID after a locked commit: %v", err)
	}
	if got != Stale {
		t.Fatalf("older copy after retry = %v, want stale", got)
	}
	if old.Text != "Coronation" || old.Revision != 11 {
		t.Fatalf("stale result = %q rev %d, want the stored copy", old.Text, old.Revision)
	}

	newer := *stored
	newer.ID = 0
	newer.Text = "Crowning"
	newer.Revision = 20
	failCommits(s, 2, errLocked)
	got, err = s.UpsertByUID(ctx, &newer)
	if err != nil {
		t.Fatal(err)
	}
	if got != Updated {
		t.Fatalf("newer copy after retry = %v, want updated", got)
	}
	// Receive once: max(11, 20) + 1.
	if newer.Revision != 21 {
		t.Fatalf("revision after retried update = %d, want 21", newer.Revision)
	}
	if max, err := s.MaxRevision(ctx); err != nil || max != 21 {
		t.Fatalf("MaxRevision = %d, %v; want 21", max, err)
	}
}

func TestInsertEvent_FailedCommitLeavesEvent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	failCommits(s, 1, errors.New("disk I/O error"))
	e := event("Battle", 1, 2)
	e.UID = model.NewUID()
	before := *e
	if _, err := s.InsertEvent(ctx, e); err == nil {
		t.Fatal("InsertEvent succeeded despite failed commit")
	}
	if *e != before {
		t.Fatalf("event changed by failed insert: %+v, was %+v", *e, before)
	}
	if n, err := s.CountEvents(ctx); err != nil || n != 0 {
		t.Fatalf("CountEvents = %d, %v; want 0", n, err)
	}

	failCommits(s, 1, errLocked)
	mustInsert(t, s, e)
	if e.ID <= 0 || e.Revision != 1 || !e.CreatedAt.Equal(testNow) {
		t.Fatalf("inserted after retry: id=%d rev=%d created=%v", e.ID, e.Revision, e.CreatedAt)
	}
}

// --- Concurrency ---

func TestConcurrentInserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers, each = 4, 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*each)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < each; i++ {
				e := event(fmt.Sprintf("w%d-%d", w, i), int64(i), int64(i+1))
				if _, err := s.InsertEvent(ctx, e); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("InsertEvent: %v", err)
	}

	n, err := s.CountEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != workers*each {
		t.Fatalf("CountEvents = %d, want %d", n, workers*each)
	}
	// Writers are serialised, so every revision is distinct.
	if rev, _ := s.MaxRevision(ctx); rev != workers*each {
		t.Fatalf("MaxRevision = %d, want %d", rev, workers*each)
	}
}
