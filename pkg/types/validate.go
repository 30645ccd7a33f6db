package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// entityValidate checks the validate struct tags on entity types. Field
// names in errors are the json names.
var entityValidate *validator.Validate

func init() {
	entityValidate = validator.New(validator.WithRequiredStructEnabled())
	entityValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks required fields and enum values of e. On failure it returns
// an *Error of KindValidation listing every offending field.
func Validate(e Entity) error {
	if e == nil {
		return &Error{Kind: KindValidation, Op: "types.Validate", Err: errors.New("nil entity")}
	}
	err := entityValidate.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindInternal, Op: "types.Validate", Entity: e.EntityType(), Err: err}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &Error{
		Kind:   KindValidation,
		Op:     "types.Validate",
		Entity: e.EntityType(),
		Fields: fields,
		Err:    ErrValidation,
	}
}
