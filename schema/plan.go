package schema

import (
	"encoding"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"
)

type fieldPlan struct {
	name     string
	required bool
	typ      reflect.Type
}

var (
	plans sync.Map // reflect.Type -> []fieldPlan

	timeType            = reflect.TypeFor[time.Time]()
	rawMessageType      = reflect.TypeFor[json.RawMessage]()
	jsonUnmarshalerType = reflect.TypeFor[json.Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// planFor returns the JSON field plan of a struct type, computing it once.
func planFor(t reflect.Type) []fieldPlan {
	if cached, ok := plans.Load(t); ok {
		return cached.([]fieldPlan)
	}
	fields := buildPlan(t)
	actual, _ := plans.LoadOrStore(t, fields)
	return actual.([]fieldPlan)
}

func buildPlan(t reflect.Type) []fieldPlan {
	var fields []fieldPlan
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup("json")
		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" && opts == "" {
			continue
		}

		// Untagged embedded structs are flattened by encoding/json.
		if f.Anonymous && name == "" {
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct {
				fields = append(fields, planFor(et)...)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if !hasTag || name == "" {
			name = f.Name
		}

		fields = append(fields, fieldPlan{
			name:     name,
			required: !hasOption(opts, "omitempty") && !hasOption(opts, "omitzero"),
			typ:      f.Type,
		})
	}
	return fields
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

// isLeaf reports whether values of t are decoded opaquely, without a
// structural walk.
func isLeaf(t reflect.Type) bool {
	if t == timeType || t == rawMessageType {
		return true
	}
	pt := reflect.PointerTo(t)
	return pt.Implements(jsonUnmarshalerType) || pt.Implements(textUnmarshalerType) ||
		t.Implements(jsonUnmarshalerType)
}
