// Package model defines the event record kept on a timeline.
//
// An event spans [Start, End) on the linear axis. Start == End marks a
// point event. The calendar name records which calendar the user entered
// the event in so it can be shown back the same way; ordering and overlap
// never depend on it because every calendar shares the axis.
//
// Events carry two identities. ID is the local row number and changes
// between databases. UID is a random UUID assigned once and kept across
// export and import, paired with a Lamport revision (see package clock) to
// decide which copy of an event is newer.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tlcal/tlcal/pkg/timeline"
)

var (
	// ErrEmptyText is returned by Validate for an event without text.
	ErrEmptyText = errors.New("event text is empty")
	// ErrBadUID is returned by Validate for a UID that is not a UUID.
	ErrBadUID = errors.New("event uid is not a uuid")
)

// Event is a single timeline entry.
type Event struct {
	ID        int64         `json:"id"`
	UID       string        `json:"uid"`
	Calendar  string        `json:"calendar"`
	Start     timeline.Time `json:"start"`
	End       timeline.Time `json:"end"`
	Text      string        `json:"text"`
	Category  string        `json:"category,omitempty"`
	Revision  int64         `json:"revision"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewUID returns a fresh random event UID.
func NewUID() string { return uuid.NewString() }

// Period returns the span of the event.
func (e Event) Period() timeline.Period {
	return timeline.Period{Start: e.Start, End: e.End}
}

// Validate checks the invariants every stored event satisfies. An empty UID
// is allowed; the store assigns one.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return ErrEmptyText
	}
	if _, err := timeline.NewPeriod(e.Start, e.End); err != nil {
		return fmt.Errorf("event %q: %w", e.Text, err)
	}
	if e.UID != "" {
		if _, err := uuid.Parse(e.UID); err != nil {
			return fmt.Errorf("%w: %q", ErrBadUID, e.UID)
		}
	}
	return nil
}

// SameContent reports whether a and b describe the same event, ignoring
// local bookkeeping (ID, revision, creation time).
func SameContent(a, b Event) bool {
	return a.UID == b.UID && a.Calendar == b.Calendar &&
		a.Start == b.Start && a.End == b.End &&
		a.Text == b.Text && a.Category == b.Category
}

// Less is the display order of events: by start, then end, then UID so
// that ties resolve the same way in every database.
func Less(a, b Event) bool {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c < 0
	}
	if c := a.End.Compare(b.End); c != 0 {
		return c < 0
	}
	return a.UID < b.UID
}
