package types

import (
	"fmt"
	"time"
)

// Relation names.
const (
	RelTasks        = "tasks"
	RelVehicles     = "vehicles"
	RelNotes        = "notes"
	RelAppointments = "appointments"
	RelLead         = "lead"
	RelTask         = "task"
)

// Cardinality says how many targets a relation holds per source.
type Cardinality string

const (
	// One relations hold at most one target per source and are backed by a
	// foreign reference field on the source entity.
	One Cardinality = "one"
	// Many relations hold an ordered list of explicit edges.
	Many Cardinality = "many"
)

// RelationKey identifies a relation by its owning type and name.
type RelationKey struct {
	Owner EntityType `json:"owner"`
	Name  string     `json:"relation"`
}

func (k RelationKey) String() string { return string(k.Owner) + "." + k.Name }

// Relation is one row of the relationship schema.
type Relation struct {
	Owner       EntityType
	Name        string
	Target      EntityType
	Cardinality Cardinality
}

// Key returns the lookup key of the relation.
func (r Relation) Key() RelationKey { return RelationKey{Owner: r.Owner, Name: r.Name} }

// StandardRelations is the relationship schema of the CRM.
var StandardRelations = []Relation{
	{Owner: EntityLead, Name: RelTasks, Target: EntityTask, Cardinality: Many},
	{Owner: EntityLead, Name: RelVehicles, Target: EntityVehicle, Cardinality: Many},
	{Owner: EntityLead, Name: RelNotes, Target: EntityNote, Cardinality: Many},
	{Owner: EntityLead, Name: RelAppointments, Target: EntityAppointment, Cardinality: Many},
	{Owner: EntityTask, Name: RelNotes, Target: EntityNote, Cardinality: Many},
	{Owner: EntityTask, Name: RelLead, Target: EntityLead, Cardinality: One},
	{Owner: EntityNote, Name: RelLead, Target: EntityLead, Cardinality: One},
	{Owner: EntityNote, Name: RelTask, Target: EntityTask, Cardinality: One},
	{Owner: EntityAppointment, Name: RelLead, Target: EntityLead, Cardinality: One},
	{Owner: EntityAppointment, Name: RelNotes, Target: EntityNote, Cardinality: Many},
	{Owner: EntityVehicle, Name: RelLead, Target: EntityLead, Cardinality: One},
}

// RelationSchema is a validated, indexed set of relations.
type RelationSchema struct {
	byKey map[RelationKey]Relation
	order []Relation
}

// NewRelationSchema validates rels and indexes them by key. Every "one"
// relation must be backed by a foreign reference on its owner type.
func NewRelationSchema(rels []Relation) (*RelationSchema, error) {
	const op = "types.NewRelationSchema"
	s := &RelationSchema{byKey: make(map[RelationKey]Relation, len(rels))}
	for _, r := range rels {
		if r.Name == "" {
			return nil, Invalid(op, fmt.Errorf("relation on %s has no name", r.Owner))
		}
		if !r.Owner.Valid() || !r.Target.Valid() {
			return nil, Invalid(op, fmt.Errorf("%w in relation %s -> %s", ErrUnknownEntityType, r.Key(), r.Target))
		}
		switch r.Cardinality {
		case Many:
		case One:
			probe, _ := NewEntity(r.Owner)
			if !probe.SetReference(r.Name, "x") {
				return nil, Invalid(op, fmt.Errorf("one relation %s has no backing reference field", r.Key()))
			}
		default:
			return nil, Invalid(op, fmt.Errorf("relation %s has cardinality %q", r.Key(), r.Cardinality))
		}
		if _, dup := s.byKey[r.Key()]; dup {
			return nil, Invalid(op, fmt.Errorf("duplicate relation %s", r.Key()))
		}
		s.byKey[r.Key()] = r
		s.order = append(s.order, r)
	}
	return s, nil
}

// Lookup returns the relation owned by t under name.
func (s *RelationSchema) Lookup(t EntityType, name string) (Relation, error) {
	r, ok := s.byKey[RelationKey{Owner: t, Name: name}]
	if !ok {
		return Relation{}, Invalid("types.RelationSchema.Lookup", fmt.Errorf("%w %s.%s", ErrUnknownRelation, t, name))
	}
	return r, nil
}

// Relations returns the schema rows in declaration order.
func (s *RelationSchema) Relations() []Relation {
	out := make([]Relation, len(s.order))
	copy(out, s.order)
	return out
}

// Edge is one recorded association under a "many" relation.
type Edge struct {
	Owner     EntityType `json:"owner"`      // Type of the source entity.
	Relation  string     `json:"relation"`   // Relation name on the owner.
	FromID    string     `json:"from_id"`    // Source entity ID.
	ToID      string     `json:"to_id"`      // Target entity ID.
	CreatedAt time.Time  `json:"created_at"` // When the edge was added.
}

// Key returns the relation the edge belongs to.
func (e Edge) Key() RelationKey { return RelationKey{Owner: e.Owner, Name: e.Relation} }
