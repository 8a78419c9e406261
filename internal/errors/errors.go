// Package errors defines the interpreter-level error type. Failures raised
// by native functions use the builtin package's FunctionError instead; this
// type covers everything the interpreter itself detects (unknown names,
// type mismatches, malformed statements).
package errors

import "fmt"

// ErrorType represents the category of a script error
type ErrorType string

const (
	SyntaxError    ErrorType = "SyntaxError"
	RuntimeError   ErrorType = "RuntimeError"
	TypeError      ErrorType = "TypeError"
	ReferenceError ErrorType = "ReferenceError"
)

// ScriptError is an error with the source line it was raised on
type ScriptError struct {
	Type    ErrorType
	Message string
	Line    int
}

// Error implements the error interface
func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Type, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string, line int) *ScriptError {
	return &ScriptError{Type: SyntaxError, Message: message, Line: line}
}

// NewRuntimeError creates a new runtime error
func NewRuntimeError(message string, line int) *ScriptError {
	return &ScriptError{Type: RuntimeError, Message: message, Line: line}
}

// NewTypeError creates a new type error
func NewTypeError(message string, line int) *ScriptError {
	return &ScriptError{Type: TypeError, Message: message, Line: line}
}

// NewReferenceError creates a new reference error
func NewReferenceError(message string, line int) *ScriptError {
	return &ScriptError{Type: ReferenceError, Message: message, Line: line}
}
