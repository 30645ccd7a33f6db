package types

import (
	"fmt"
	"time"
)

// EntityType names one of the five entity tables.
type EntityType string

// Entity types.
const (
	EntityLead        EntityType = "lead"
	EntityTask        EntityType = "task"
	EntityNote        EntityType = "note"
	EntityAppointment EntityType = "appointment"
	EntityVehicle     EntityType = "vehicle"
)

// EntityTypes lists every entity type in dependency order: referenced types
// come before the types that reference them.
var EntityTypes = []EntityType{
	EntityLead,
	EntityTask,
	EntityNote,
	EntityAppointment,
	EntityVehicle,
}

// entityAliases maps accepted spellings to entity types. Plural table names
// are accepted so CLI users can type either form.
var entityAliases = map[string]EntityType{
	"lead":         EntityLead,
	"leads":        EntityLead,
	"task":         EntityTask,
	"tasks":        EntityTask,
	"note":         EntityNote,
	"notes":        EntityNote,
	"appointment":  EntityAppointment,
	"appointments": EntityAppointment,
	"vehicle":      EntityVehicle,
	"vehicles":     EntityVehicle,
}

// ParseEntityType resolves a name such as "lead" or "leads".
// Returns an error wrapping ErrUnknownEntityType for anything else.
func ParseEntityType(name string) (EntityType, error) {
	t, ok := entityAliases[name]
	if !ok {
		return "", Invalid("types.ParseEntityType", fmt.Errorf("%w %q", ErrUnknownEntityType, name))
	}
	return t, nil
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityLead, EntityTask, EntityNote, EntityAppointment, EntityVehicle:
		return true
	}
	return false
}

// Record holds the identity and timestamp fields common to every entity.
type Record struct {
	ID        string    `json:"id"`         // UUID v7, generated on creation unless supplied.
	CreatedAt time.Time `json:"created_at"` // Set once on creation.
	UpdatedAt time.Time `json:"updated_at"` // Refreshed on every mutation.
}

// Meta returns the record itself so the store can assign identity and
// timestamps on any entity through the Entity interface.
func (r *Record) Meta() *Record { return r }

// Entity is implemented by the pointer form of every entity struct.
type Entity interface {
	// EntityType returns the table the entity belongs to. It is safe to
	// call on a nil pointer.
	EntityType() EntityType

	// Meta exposes the common identity and timestamp fields.
	Meta() *Record

	// Clone returns a deep copy.
	Clone() Entity

	// SetDefaults fills unset enum fields with their default values.
	SetDefaults()

	// References returns the foreign reference fields keyed by the name of
	// the many-to-one relation they back. Empty references are omitted.
	References() map[string]string

	// SetReference writes the foreign reference backing the named relation.
	// Returns false when the entity has no such reference.
	SetReference(relation, id string) bool
}

// NewEntity returns an empty entity of the given type.
func NewEntity(t EntityType) (Entity, error) {
	switch t {
	case EntityLead:
		return &Lead{}, nil
	case EntityTask:
		return &Task{}, nil
	case EntityNote:
		return &Note{}, nil
	case EntityAppointment:
		return &Appointment{}, nil
	case EntityVehicle:
		return &Vehicle{}, nil
	}
	return nil, Invalid("types.NewEntity", fmt.Errorf("%w %q", ErrUnknownEntityType, t))
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
