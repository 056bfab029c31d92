package store

import (
	"context"

	"github.com/tlcal/tlcal/pkg/model"
)

// EventStore is the set of store operations the command layer and the
// timeline file importer depend on. *Store implements it.
type EventStore interface {
	Close() error

	// InsertEvent stores a new event and returns its row ID.
	InsertEvent(ctx context.Context, e *model.Event) (int64, error)
	GetEvent(ctx context.Context, id int64) (*model.Event, error)
	GetEventByUID(ctx context.Context, uid string) (*model.Event, error)

	// ListEvents returns events matching f in axis order.
	ListEvents(ctx context.Context, f Filter) ([]model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	// UpsertByUID merges an imported event by UID and revision.
	UpsertByUID(ctx context.Context, e *model.Event) (UpsertResult, error)

	CountEvents(ctx context.Context) (int64, error)
	MaxRevision(ctx context.Context) (int64, error)
}

var _ EventStore = (*Store)(nil)
