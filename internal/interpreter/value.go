package interpreter

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Value is a runtime value of the scripting language. The closed set of
// representations is: nil, bool, float64, string, []byte (raw data),
// *Array and *Map. Values are immutable once constructed; raw data is
// copied when it crosses the call-frame boundary.
type Value interface{}

// Array represents an ordered collection
type Array struct {
	Elements []Value
}

// Map represents an associative collection
type Map struct {
	Items map[string]Value
}

// NewArray creates a new array
func NewArray(capacity int) *Array {
	return &Array{Elements: make([]Value, 0, capacity)}
}

// NewMap creates a new map
func NewMap() *Map {
	return &Map{Items: make(map[string]Value)}
}

// ValueType returns the type of a value as a string
func ValueType(val Value) string {
	switch val.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []byte:
		return "data"
	case *Array:
		return "array"
	case *Map:
		return "map"
	default:
		return "unknown"
	}
}

// ToString converts a value to a string representation. Raw data is
// rendered as hex so binary payloads stay printable.
func ToString(val Value) string {
	switch v := val.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", v)
	case string:
		return v
	case []byte:
		return hex.EncodeToString(v)
	case *Array:
		elems := make([]string, len(v.Elements))
		for i, elem := range v.Elements {
			elems[i] = ToString(elem)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *Map:
		pairs := make([]string, 0, len(v.Items))
		for k, item := range v.Items {
			pairs = append(pairs, fmt.Sprintf("%s: %s", k, ToString(item)))
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Equal reports deep equality of two values. Data compares byte-wise,
// collections element-wise.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv, ok := b.(*Map)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for k, item := range av.Items {
			other, present := bv.Items[k]
			if !present || !Equal(item, other) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// cloneValue copies a value across the call-frame boundary. Only raw data
// needs a real copy; everything else is immutable or shared by design.
func cloneValue(v Value) Value {
	if data, ok := v.([]byte); ok {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}
	return v
}
