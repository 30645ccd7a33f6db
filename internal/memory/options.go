package memory

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Op names a store mutation reported to an Observer.
type Op string

// Store operations.
const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpRelate Op = "relate"
	OpClear  Op = "clear"
)

// Observer is notified after every successful mutation. It is called with
// the store lock held and must not call back into the store.
type Observer interface {
	Observe(op Op, t types.EntityType)
}

type options struct {
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
	observer  Observer
	relations []types.Relation
}

// Option configures a Store.
type Option func(*options)

// WithClock sets the time source used for created_at, updated_at, and edge
// timestamps. Defaults to time.Now in UTC.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator sets the function that produces ids for entities created
// without one. Defaults to UUID v7.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithLogger sets the logger. Defaults to discarding all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers an observer for mutations.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithRelations replaces the relationship schema. Defaults to
// types.StandardRelations.
func WithRelations(rels []types.Relation) Option {
	return func(o *options) { o.relations = rels }
}

func defaultOptions() options {
	return options{
		now:       func() time.Time { return time.Now().UTC() },
		newID:     generateUUID,
		logger:    slog.New(slog.DiscardHandler),
		relations: types.StandardRelations,
	}
}

// generateUUID returns a UUID v7 string, falling back to v4 if the v7
// generator fails.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
