package builtin

import (
	"strconv"

	"vulnscript/internal/interpreter"
)

// NamedValue returns the required named argument or a WrongArgument error
// naming the parameter. The register is never mutated.
func NamedValue(reg *interpreter.Register, name, function string) (interpreter.Value, *FunctionError) {
	v, ok := reg.Named(name)
	if !ok {
		return nil, WrongArgumentErr(function, name, "a value", "missing")
	}
	return v, nil
}

// OptionalNamed returns the named argument if it is bound.
func OptionalNamed(reg *interpreter.Register, name string) (interpreter.Value, bool) {
	return reg.Named(name)
}

// NamedData returns the required named argument as raw bytes. A string
// argument is coerced to its UTF-8 bytes; this is the only implicit
// conversion allowed at the boundary.
func NamedData(reg *interpreter.Register, name, function string) ([]byte, *FunctionError) {
	v, ferr := NamedValue(reg, name, function)
	if ferr != nil {
		return nil, ferr
	}
	return coerceData(v, name, function)
}

// NamedString returns the required named argument as a string.
func NamedString(reg *interpreter.Register, name, function string) (string, *FunctionError) {
	v, ferr := NamedValue(reg, name, function)
	if ferr != nil {
		return "", ferr
	}
	s, ok := v.(string)
	if !ok {
		return "", WrongArgumentErr(function, name, "string", interpreter.ValueType(v))
	}
	return s, nil
}

// PositionalData returns the i-th positional argument as raw bytes, with
// the same string coercion as NamedData.
func PositionalData(reg *interpreter.Register, i int, function string) ([]byte, *FunctionError) {
	v, ok := reg.Positional(i)
	if !ok {
		return nil, WrongArgumentErr(function, "#"+strconv.Itoa(i), "a value", "missing")
	}
	return coerceData(v, "#"+strconv.Itoa(i), function)
}

// PositionalString returns the i-th positional argument as a string.
func PositionalString(reg *interpreter.Register, i int, function string) (string, *FunctionError) {
	v, ok := reg.Positional(i)
	if !ok {
		return "", WrongArgumentErr(function, "#"+strconv.Itoa(i), "a value", "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", WrongArgumentErr(function, "#"+strconv.Itoa(i), "string", interpreter.ValueType(v))
	}
	return s, nil
}

func coerceData(v interpreter.Value, name, function string) ([]byte, *FunctionError) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return nil, WrongArgumentErr(function, name, "string or data", interpreter.ValueType(v))
	}
}
