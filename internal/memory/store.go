// Package memory implements the in-memory CRM store: one table per entity
// type plus a relationship index, guarded by a single reader-writer lock.
//
// Every value handed out is a deep copy, so callers may keep or modify what
// they read without affecting the store. Values passed in are copied before
// they are stored.
package memory

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// table holds the rows of one entity type in insertion order.
type table struct {
	rows  map[string]types.Entity
	order []string
}

func newTable() *table {
	return &table{rows: make(map[string]types.Entity)}
}

func (t *table) remove(id string) {
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// Store is the authoritative mapping from (entity type, id) to record and
// from relation key to relationship collection. Construct with New; the
// zero value is not usable.
//
// Many relations are explicit edge lists. One relations have no index of
// their own: they are read from the owner's foreign reference field at
// lookup time and resolve whenever the named target exists.
type Store struct {
	mu     sync.RWMutex
	schema *types.RelationSchema
	tables map[types.EntityType]*table
	many   map[types.RelationKey][]types.Edge

	now      func() time.Time
	newID    func() string
	logger   *slog.Logger
	observer Observer
}

// New creates an empty store. It fails only if the relationship schema is
// invalid.
func New(opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	schema, err := types.NewRelationSchema(o.relations)
	if err != nil {
		return nil, err
	}
	s := &Store{
		schema:   schema,
		now:      o.now,
		newID:    o.newID,
		logger:   o.logger,
		observer: o.observer,
	}
	s.reset()
	return s, nil
}

// Schema returns the relationship schema the store was built with.
func (s *Store) Schema() *types.RelationSchema { return s.schema }

func (s *Store) reset() {
	s.tables = make(map[types.EntityType]*table, len(types.EntityTypes))
	for _, t := range types.EntityTypes {
		s.tables[t] = newTable()
	}
	s.many = make(map[types.RelationKey][]types.Edge)
}

func (s *Store) notify(op Op, t types.EntityType) {
	if s.observer != nil {
		s.observer.Observe(op, t)
	}
}

func (s *Store) tableFor(op string, t types.EntityType) (*table, error) {
	tbl, ok := s.tables[t]
	if !ok {
		return nil, types.Invalid(op, fmt.Errorf("%w %q", types.ErrUnknownEntityType, t))
	}
	return tbl, nil
}

func (s *Store) exists(t types.EntityType, id string) bool {
	tbl, ok := s.tables[t]
	if !ok {
		return false
	}
	_, ok = tbl.rows[id]
	return ok
}

// Create validates e and stores a copy of it. Blank id, created_at, and
// updated_at are assigned; unset enum fields get their defaults. Validation
// runs before anything is assigned, so a failed Create leaves e untouched
// and the store unchanged.
//
// A caller-supplied id that already exists overwrites the stored record in
// place; the record keeps its original position in List order.
func (s *Store) Create(e types.Entity) (types.Entity, error) {
	const op = "memory.Store.Create"
	if e == nil {
		return nil, types.Invalid(op, fmt.Errorf("nil entity"))
	}
	rec := e.Clone()
	if err := types.Validate(rec); err != nil {
		return nil, withOp(err, op)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	et := rec.EntityType()
	tbl, err := s.tableFor(op, et)
	if err != nil {
		return nil, err
	}

	m := rec.Meta()
	if m.ID == "" {
		m.ID = s.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	if m.UpdatedAt.Before(m.CreatedAt) {
		m.UpdatedAt = m.CreatedAt
	}
	rec.SetDefaults()

	if _, dup := tbl.rows[m.ID]; dup {
		s.logger.Warn("create overwrote existing record", "entity", et, "id", m.ID)
	} else {
		tbl.order = append(tbl.order, m.ID)
	}
	tbl.rows[m.ID] = rec

	s.logger.Debug("created", "entity", et, "id", m.ID)
	s.notify(OpCreate, et)
	return rec.Clone(), nil
}

// Get returns a copy of the record, or false if the id is unknown.
func (s *Store) Get(t types.EntityType, id string) (types.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[t]
	if !ok {
		return nil, false
	}
	rec, ok := tbl.rows[id]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// List returns copies of every record of type t in insertion order.
func (s *Store) List(t types.EntityType) []types.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tbl, ok := s.tables[t]
	if !ok {
		return nil
	}
	out := make([]types.Entity, 0, len(tbl.order))
	for _, id := range tbl.order {
		out = append(out, tbl.rows[id].Clone())
	}
	return out
}

// ListMany returns copies of every record of each type in ts, in insertion
// order, all read under one lock so they reflect the same point in time.
func (s *Store) ListMany(ts ...types.EntityType) map[types.EntityType][]types.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[types.EntityType][]types.Entity, len(ts))
	for _, t := range ts {
		tbl, ok := s.tables[t]
		if !ok {
			continue
		}
		rows := make([]types.Entity, 0, len(tbl.order))
		for _, id := range tbl.order {
			rows = append(rows, tbl.rows[id].Clone())
		}
		out[t] = rows
	}
	return out
}

// Update applies p to the record and refreshes updated_at. The bool reports
// whether the id exists; an unknown id is not an error. The patched record
// is validated before it replaces the stored one, so a failed Update leaves
// the store unchanged. updated_at never moves backwards, even if the clock
// does.
func (s *Store) Update(t types.EntityType, id string, p types.Patch) (types.Entity, bool, error) {
	const op = "memory.Store.Update"
	if p == nil {
		return nil, false, types.Invalid(op, fmt.Errorf("nil patch"))
	}
	if p.Target() != t {
		return nil, false, types.Invalid(op, fmt.Errorf("%w: %s patch for %s", types.ErrTypeMismatch, p.Target(), t))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, err := s.tableFor(op, t)
	if err != nil {
		return nil, false, err
	}
	cur, ok := tbl.rows[id]
	if !ok {
		return nil, false, nil
	}

	next := cur.Clone()
	if err := p.Apply(next); err != nil {
		return nil, true, withOp(err, op)
	}
	if err := types.Validate(next); err != nil {
		return nil, true, withOp(err, op)
	}

	prev := cur.Meta()
	m := next.Meta()
	m.ID = prev.ID
	m.CreatedAt = prev.CreatedAt
	m.UpdatedAt = s.touch(prev.UpdatedAt)

	tbl.rows[id] = next

	s.logger.Debug("updated", "entity", t, "id", id)
	s.notify(OpUpdate, t)
	return next.Clone(), true, nil
}

// touch returns the current time, clamped so it is never before prev.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

// Delete removes the record and every many-relation edge that names it,
// as source or as target, in every relation of every entity type. Returns
// false if the id is unknown.
//
// Foreign reference fields on other records are left as they are; they
// stop resolving until a record with the same id is created again.
func (s *Store) Delete(t types.EntityType, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tbl, ok := s.tables[t]
	if !ok {
		return false
	}
	if _, ok := tbl.rows[id]; !ok {
		return false
	}
	tbl.remove(id)

	pruned := 0
	for _, r := range s.schema.Relations() {
		if r.Cardinality != types.Many {
			continue
		}
		key := r.Key()
		edges := s.many[key]
		kept := edges[:0]
		for _, e := range edges {
			if (r.Owner == t && e.FromID == id) || (r.Target == t && e.ToID == id) {
				pruned++
				continue
			}
			kept = append(kept, e)
		}
		s.many[key] = kept
	}

	s.logger.Debug("deleted", "entity", t, "id", id, "pruned", pruned)
	s.notify(OpDelete, t)
	return true
}

// Clear drops every record and relationship.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	s.logger.Debug("cleared")
	s.notify(OpClear, "")
}

// linked resolves the one relation r of owner id from its foreign
// reference field. The bool is false when the field is empty or names a
// record that does not exist.
func (s *Store) linked(r types.Relation, id string) (types.Entity, bool) {
	owner, ok := s.tables[r.Owner].rows[id]
	if !ok {
		return nil, false
	}
	to := owner.References()[r.Name]
	if to == "" {
		return nil, false
	}
	rec, ok := s.tables[r.Target].rows[to]
	return rec, ok
}

// withOp rewrites the operation of a classified error so it names the
// store method the caller invoked.
func withOp(err error, op string) error {
	if ce, ok := err.(*types.Error); ok {
		c := *ce
		c.Op = op
		return &c
	}
	return err
}
