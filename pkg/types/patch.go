package types

import "fmt"

// Patch is a partial update for one entity type. A field that is nil in the
// patch is absent and leaves the stored value alone; a non-nil field is
// applied even when it points at an empty string or zero. Patches carry no
// id or created_at, so those never change.
type Patch interface {
	// Target returns the entity type the patch applies to.
	Target() EntityType

	// Apply writes the present fields onto e. Returns an error wrapping
	// ErrTypeMismatch when e is not of the patch's target type.
	Apply(e Entity) error
}

// NewPatch returns an empty patch for the given type, ready for decoding.
func NewPatch(t EntityType) (Patch, error) {
	switch t {
	case EntityLead:
		return &LeadPatch{}, nil
	case EntityTask:
		return &TaskPatch{}, nil
	case EntityNote:
		return &NotePatch{}, nil
	case EntityAppointment:
		return &AppointmentPatch{}, nil
	case EntityVehicle:
		return &VehiclePatch{}, nil
	}
	return nil, Invalid("types.NewPatch", fmt.Errorf("%w %q", ErrUnknownEntityType, t))
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func refs(relation, id string) map[string]string {
	if id == "" {
		return nil
	}
	return map[string]string{relation: id}
}

func mismatch(op string, want EntityType, got Entity) error {
	gotType := EntityType("nil")
	if got != nil {
		gotType = got.EntityType()
	}
	return Invalid(op, fmt.Errorf("%w: patch for %s applied to %s", ErrTypeMismatch, want, gotType))
}
