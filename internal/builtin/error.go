// Package builtin implements the calling protocol shared by all native
// functions: the error taxonomy every failure is mapped into, and the
// argument accessors that validate the dynamically typed register before
// values cross into typed code.
package builtin

import "fmt"

// FunctionError is the only error type a native function may return. It
// always names the function that raised it, so callers can report
// failures without inspecting the register.
type FunctionError struct {
	Function string
	Kind     FunctionErrorKind
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Kind)
}

// FunctionErrorKind classifies a native function failure. The set of
// kinds is closed: WrongArgument and GeneralError.
type FunctionErrorKind interface {
	fmt.Stringer
	functionErrorKind()
}

// WrongArgument reports a missing or malformed argument, or a parameter
// outside its supported range.
type WrongArgument struct {
	Parameter string
	Expected  string
	Actual    string
}

func (k WrongArgument) String() string {
	return fmt.Sprintf("wrong argument %q: expected %s, got %s", k.Parameter, k.Expected, k.Actual)
}

func (WrongArgument) functionErrorKind() {}

// GeneralError is the catch-all for opaque failures of a wrapped
// primitive. The message deliberately carries no detail beyond what the
// primitive itself reports.
type GeneralError struct {
	Message string
}

func (k GeneralError) String() string {
	return k.Message
}

func (GeneralError) functionErrorKind() {}

// WrongArgumentErr builds a FunctionError with a WrongArgument kind.
func WrongArgumentErr(function, parameter, expected, actual string) *FunctionError {
	return &FunctionError{
		Function: function,
		Kind:     WrongArgument{Parameter: parameter, Expected: expected, Actual: actual},
	}
}

// GeneralErr builds a FunctionError with a GeneralError kind.
func GeneralErr(function, message string) *FunctionError {
	return &FunctionError{
		Function: function,
		Kind:     GeneralError{Message: message},
	}
}
