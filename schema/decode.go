package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// Decode decodes a JSON document into a T, enforcing required fields and
// enumerations.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := DecodeInto(data, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeInto decodes a JSON document into the value pointed to by v.
// On error *v may be partially written; use Decode for all-or-nothing
// semantics.
func DecodeInto(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("schema: DecodeInto requires a non-nil pointer, got %T", v)
	}
	t := rv.Type().Elem()
	name := t.String()

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &Error{Schema: name, Reason: "invalid JSON document", Source: data, Err: err}
	}
	if doc == nil {
		return &Error{Schema: name, Reason: "document is null", Source: data}
	}
	if err := check(t, doc, ""); err != nil {
		err.Schema = name
		err.Source = data
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return fromJSONError(name, data, err)
	}
	return nil
}

// DecodeValue decodes an already parsed document (maps, slices and
// primitives as produced by encoding/json) into the value pointed to by v.
func DecodeValue(raw any, v any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("schema: encode source document: %w", err)
	}
	return DecodeInto(data, v)
}

// check walks doc against the shape of t. Schema and Source are filled in
// by the caller.
func check(t reflect.Type, doc any, path string) *Error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if doc == nil {
		return nil
	}

	if values, ok := enumValues(t); ok {
		s, isString := doc.(string)
		if !isString {
			return &Error{Field: path, Reason: fmt.Sprintf("expected string enumeration, got %s", jsonKind(doc))}
		}
		if !slices.Contains(values, s) {
			return &Error{Field: path, Reason: fmt.Sprintf("unknown value %q (want one of %v)", s, values)}
		}
		return nil
	}
	if isLeaf(t) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := doc.(map[string]any)
		if !ok {
			return &Error{Field: path, Reason: fmt.Sprintf("expected object, got %s", jsonKind(doc))}
		}
		for _, f := range planFor(t) {
			child := joinField(path, f.name)
			val, present := obj[f.name]
			if !present || val == nil {
				if f.required {
					reason := "required field missing"
					if present {
						reason = "required field is null"
					}
					return &Error{Field: child, Reason: reason}
				}
				continue
			}
			if err := check(f.typ, val, child); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		arr, ok := doc.([]any)
		if !ok {
			return &Error{Field: path, Reason: fmt.Sprintf("expected array, got %s", jsonKind(doc))}
		}
		for i, elem := range arr {
			if err := check(t.Elem(), elem, path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case reflect.Map:
		obj, ok := doc.(map[string]any)
		if !ok {
			return &Error{Field: path, Reason: fmt.Sprintf("expected object, got %s", jsonKind(doc))}
		}
		for k, elem := range obj {
			if err := check(t.Elem(), elem, joinField(path, k)); err != nil {
				return err
			}
		}
	}
	return nil
}

func fromJSONError(name string, data []byte, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &Error{
			Schema: name,
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
			Source: data,
			Err:    err,
		}
	}
	var schemaErr *Error
	if errors.As(err, &schemaErr) {
		return &Error{Schema: name, Reason: schemaErr.Reason, Source: data, Err: err}
	}
	return &Error{Schema: name, Reason: err.Error(), Source: data, Err: err}
}

func joinField(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
