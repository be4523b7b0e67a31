package schema

import (
	"fmt"
	"reflect"
	"slices"
)

// Enum is implemented by string types with a closed set of values.
// Values must be callable on the zero value.
type Enum interface {
	Values() []string
}

var enumType = reflect.TypeFor[Enum]()

// UnmarshalEnum sets *dst to the text if it is one of the enum's values.
// Enum types call it from UnmarshalText so that plain encoding/json
// decoding is fail-closed too.
//
//	func (s *WorkflowState) UnmarshalText(b []byte) error { return schema.UnmarshalEnum(s, b) }
func UnmarshalEnum[E interface {
	~string
	Enum
}](dst *E, text []byte) error {
	var zero E
	value := string(text)
	if !slices.Contains(zero.Values(), value) {
		return &Error{
			Schema: reflect.TypeFor[E]().String(),
			Reason: fmt.Sprintf("unknown value %q (want one of %v)", value, zero.Values()),
		}
	}
	*dst = E(value)
	return nil
}

// IsValid reports whether v is one of its enum's values.
func IsValid[E interface {
	~string
	Enum
}](v E) bool {
	return slices.Contains(v.Values(), string(v))
}

func enumValues(t reflect.Type) ([]string, bool) {
	if t.Kind() != reflect.String || !t.Implements(enumType) {
		return nil, false
	}
	return reflect.Zero(t).Interface().(Enum).Values(), true
}
