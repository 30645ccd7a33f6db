package types

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Classified errors returned by this module unwrap to one
// of these, so callers can test with errors.Is.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrValidation        = errors.New("validation failed")
	ErrRelationship      = errors.New("relationship endpoint does not exist")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrUnknownRelation   = errors.New("unknown relation")
	ErrTypeMismatch      = errors.New("type mismatch")
)

// ErrorKind is the stable classification reported across the API boundary.
type ErrorKind string

// Error kinds.
const (
	KindNotFound        ErrorKind = "not_found"
	KindValidation      ErrorKind = "validation"
	KindRelationship    ErrorKind = "relationship"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindInternal        ErrorKind = "internal"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:        ErrNotFound,
	KindValidation:      ErrValidation,
	KindRelationship:    ErrRelationship,
	KindInvalidArgument: ErrInvalidArgument,
}

// Error is a classified error carrying the failing operation and, for
// validation failures, the offending field names.
type Error struct {
	Kind   ErrorKind
	Op     string     // Operation that failed, e.g. "memory.Store.Create".
	Entity EntityType // Entity type involved, if any.
	Fields []string   // JSON names of invalid fields.
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	if e.Entity != "" {
		b.WriteString(string(e.Entity))
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(string(e.Kind))
	}
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (fields: %s)", strings.Join(e.Fields, ", "))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of the error's kind, so a validation error is
// errors.Is(err, ErrValidation) even when Err is something more specific.
func (e *Error) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// Invalid classifies err as an invalid argument raised by op.
func Invalid(op string, err error) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Err: err}
}

// KindOf returns the classification of err. Unclassified errors are
// KindInternal; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindInternal
}

// IsUserError reports whether err was caused by caller input rather than a
// system failure.
func IsUserError(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindValidation, KindRelationship, KindInvalidArgument:
		return true
	}
	return false
}
