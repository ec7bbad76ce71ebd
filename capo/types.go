package capo

import (
	"fmt"
	"strings"
)

// Type is the closed set of scalar types a parameter or option can accept.
type Type int

const (
	TypeString Type = iota + 1
	TypeNumber
	TypeBoolean
)

// String returns the lowercase type name used in wildcards and manifests.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// ParseType converts a type name into a Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "string":
		return TypeString, nil
	case "number":
		return TypeNumber, nil
	case "boolean":
		return TypeBoolean, nil
	default:
		return 0, fmt.Errorf("unsupported type %q", name)
	}
}

// IsSupported reports whether t is one of the declared types.
func IsSupported(t Type) bool {
	return t == TypeString || t == TypeNumber || t == TypeBoolean
}

// Matches is a structural check with no coercion: a number type
// accepts Go numeric values only, never numeric-looking strings.
func (t Type) Matches(value any) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		_, ok := toFloat(value)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}

// Types is an ordered set of accepted types with union semantics.
type Types []Type

// ParseTypes converts type names, rejecting unknown names and duplicates.
func ParseTypes(names ...string) (Types, error) {
	types := make(Types, 0, len(names))
	for _, name := range names {
		t, err := ParseType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if types.Has(t) {
			return nil, fmt.Errorf("duplicated type %q", name)
		}
		types = append(types, t)
	}
	return types, nil
}

// Has reports whether t is part of the set.
func (ts Types) Has(t Type) bool {
	for _, candidate := range ts {
		if candidate == t {
			return true
		}
	}
	return false
}

// Matches reports whether value matches at least one member of the set.
func (ts Types) Matches(value any) bool {
	for _, t := range ts {
		if t.Matches(value) {
			return true
		}
	}
	return false
}

// String joins the type names with commas, e.g. "string,number".
func (ts Types) String() string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

func (ts Types) validate() error {
	if len(ts) == 0 {
		return fmt.Errorf("no types declared")
	}
	seen := make(map[Type]bool, len(ts))
	for _, t := range ts {
		if !IsSupported(t) {
			return fmt.Errorf("unsupported type %d", int(t))
		}
		if seen[t] {
			return fmt.Errorf("duplicated type %s", t)
		}
		seen[t] = true
	}
	return nil
}

// toFloat normalizes Go numeric kinds to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// normalize converts numeric values to float64 so values compiled from
// the command line and declared defaults share one representation.
func normalize(value any) any {
	if _, isBool := value.(bool); isBool {
		return value
	}
	if f, ok := toFloat(value); ok {
		return f
	}
	return value
}
