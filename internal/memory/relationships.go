package memory

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// resolve looks up the relation and checks that to matches its target type.
func (s *Store) resolve(op string, from types.EntityType, rel string, to types.EntityType) (types.Relation, error) {
	r, err := s.schema.Lookup(from, rel)
	if err != nil {
		return types.Relation{}, withOp(err, op)
	}
	if to != "" && r.Target != to {
		return types.Relation{}, types.Invalid(op, fmt.Errorf("%w: %s targets %s, not %s", types.ErrTypeMismatch, r.Key(), r.Target, to))
	}
	return r, nil
}

// AddRelationship records that fromID relates to toID under rel. It returns
// false, with no error, when either endpoint does not exist. An unknown
// relation or a target type that does not match the schema is an
// invalid-argument error.
//
// On a many relation the edge is appended without deduplication: adding the
// same pair twice yields two edges. On a one relation the owner's foreign
// reference field is rewritten to toID and its updated_at refreshed.
func (s *Store) AddRelationship(from types.EntityType, fromID, rel string, to types.EntityType, toID string) (bool, error) {
	return s.AddEdge(types.Edge{Owner: from, Relation: rel, FromID: fromID, ToID: toID}, to)
}

// AddEdge is AddRelationship for a prepared edge. A non-zero e.CreatedAt is
// kept, which lets a snapshot restore edges with their original timestamps.
func (s *Store) AddEdge(e types.Edge, to types.EntityType) (bool, error) {
	const op = "memory.Store.AddRelationship"
	r, err := s.resolve(op, e.Owner, e.Relation, to)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.exists(r.Owner, e.FromID) || !s.exists(r.Target, e.ToID) {
		s.logger.Debug("relationship endpoint missing", "relation", r.Key().String(), "from", e.FromID, "to", e.ToID)
		return false, nil
	}

	switch r.Cardinality {
	case types.Many:
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now()
		}
		s.many[r.Key()] = append(s.many[r.Key()], e)
	case types.One:
		tbl := s.tables[r.Owner]
		rec := tbl.rows[e.FromID].Clone()
		rec.SetReference(r.Name, e.ToID)
		m := rec.Meta()
		m.UpdatedAt = s.touch(m.UpdatedAt)
		tbl.rows[e.FromID] = rec
	}

	s.logger.Debug("related", "relation", r.Key().String(), "from", e.FromID, "to", e.ToID)
	s.notify(OpRelate, r.Owner)
	return true, nil
}

// GetRelated returns copies of the live targets of id under rel, in edge
// order. Edges whose target no longer exists are skipped. For a one
// relation the result holds at most one entity.
func (s *Store) GetRelated(t types.EntityType, id, rel string) ([]types.Entity, error) {
	r, err := s.resolve("memory.Store.GetRelated", t, rel, "")
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	targets := s.tables[r.Target].rows
	var out []types.Entity
	switch r.Cardinality {
	case types.Many:
		for _, e := range s.many[r.Key()] {
			if e.FromID != id {
				continue
			}
			if rec, ok := targets[e.ToID]; ok {
				out = append(out, rec.Clone())
			}
		}
	case types.One:
		if rec, ok := s.linked(r, id); ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// GetRelatedSingle returns a copy of the target of id under a one relation,
// read from the owner's foreign reference field. The bool is false when the
// field is empty or the target does not exist.
// Calling it on a many relation is an invalid-argument error.
func (s *Store) GetRelatedSingle(t types.EntityType, id, rel string) (types.Entity, bool, error) {
	const op = "memory.Store.GetRelatedSingle"
	r, err := s.resolve(op, t, rel, "")
	if err != nil {
		return nil, false, err
	}
	if r.Cardinality != types.One {
		return nil, false, types.Invalid(op, fmt.Errorf("relation %s holds many targets", r.Key()))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.linked(r, id)
	if !ok {
		return nil, false, nil
	}
	return rec.Clone(), true, nil
}

// Edges returns every many-relation edge, grouped by relation in schema
// order and in insertion order within a relation.
func (s *Store) Edges() []types.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Edge
	for _, r := range s.schema.Relations() {
		out = append(out, s.many[r.Key()]...)
	}
	return out
}

// Stats is a point-in-time count of the store contents.
type Stats struct {
	Entities  map[types.EntityType]int
	Relations map[types.RelationKey]int // Edges for many relations, owners whose reference resolves for one relations.
	Taken     time.Time
}

// Stats counts records per entity type and entries per relation.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Entities:  make(map[types.EntityType]int, len(s.tables)),
		Relations: make(map[types.RelationKey]int),
		Taken:     s.now(),
	}
	for t, tbl := range s.tables {
		st.Entities[t] = len(tbl.rows)
	}
	for _, r := range s.schema.Relations() {
		switch r.Cardinality {
		case types.Many:
			st.Relations[r.Key()] = len(s.many[r.Key()])
		case types.One:
			n := 0
			for id := range s.tables[r.Owner].rows {
				if _, ok := s.linked(r, id); ok {
					n++
				}
			}
			st.Relations[r.Key()] = n
		}
	}
	return st
}
