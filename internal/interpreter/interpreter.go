// Package interpreter evaluates parsed statements one at a time and
// exposes their outcomes to the host. Native built-in functions are
// registered by name and called through one uniform signature.
package interpreter

import (
	"fmt"

	"vulnscript/internal/errors"
	"vulnscript/internal/parser"
	"vulnscript/internal/storage"
)

// NativeFunction is the uniform entry point of every built-in. The
// function receives its own registered name (for error attribution), the
// shared storage sink and the call frame holding its bound arguments.
// Errors returned across this boundary must be *builtin.FunctionError;
// native functions never let library error types escape.
type NativeFunction func(function string, sink storage.Sink, register *Register) (Value, error)

// Interpreter executes statements against a register and a storage sink.
type Interpreter struct {
	scanKey  string
	sink     storage.Sink
	register *Register
	builtins map[string]NativeFunction
}

// New creates an interpreter bound to a scan key, sink and root register.
func New(scanKey string, sink storage.Sink, register *Register) *Interpreter {
	return &Interpreter{
		scanKey:  scanKey,
		sink:     sink,
		register: register,
		builtins: make(map[string]NativeFunction),
	}
}

// RegisterBuiltin binds a native function to a script-visible name.
// Registration happens once, before any statement runs; the lookup table
// is not mutated afterwards.
func (i *Interpreter) RegisterBuiltin(name string, fn NativeFunction) {
	i.builtins[name] = fn
}

// Builtin looks up a native function by exact name.
func (i *Interpreter) Builtin(name string) (NativeFunction, bool) {
	fn, ok := i.builtins[name]
	return fn, ok
}

// Register returns the interpreter's root register.
func (i *Interpreter) Register() *Register {
	return i.register
}

// ScanKey returns the key identifying this script execution.
func (i *Interpreter) ScanKey() string {
	return i.scanKey
}

// Resolve evaluates one top-level statement and returns its value. An
// assignment statement surfaces the assigned value.
func (i *Interpreter) Resolve(stmt parser.Stmt) (Value, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		return i.eval(s.Expr)
	default:
		return nil, errors.NewRuntimeError(fmt.Sprintf("unsupported statement %T", stmt), 0)
	}
}

func (i *Interpreter) eval(expr parser.Expr) (Value, error) {
	switch e := expr.(type) {
	case *parser.Literal:
		return e.Value, nil
	case *parser.Variable:
		v, ok := i.register.Lookup(e.Name)
		if !ok {
			return nil, errors.NewReferenceError("undefined variable: "+e.Name, e.Line)
		}
		return v, nil
	case *parser.Assign:
		v, err := i.eval(e.Value)
		if err != nil {
			return nil, err
		}
		i.register.Define(e.Name, v)
		return v, nil
	case *parser.Unary:
		return i.evalUnary(e)
	case *parser.Binary:
		return i.evalBinary(e)
	case *parser.Call:
		return i.call(e)
	default:
		return nil, errors.NewRuntimeError(fmt.Sprintf("unsupported expression %T", expr), 0)
	}
}

// call evaluates the arguments in order, binds them into a fresh call
// frame and invokes the named built-in. The root register is never
// observed mid-call.
func (i *Interpreter) call(e *parser.Call) (Value, error) {
	fn, ok := i.Builtin(e.Name)
	if !ok {
		return nil, errors.NewReferenceError("undefined function: "+e.Name, e.Line)
	}
	named := make(map[string]Value)
	var positional []Value
	for _, arg := range e.Args {
		v, err := i.eval(arg.Value)
		if err != nil {
			return nil, err
		}
		if arg.Name != "" {
			named[arg.Name] = v
		} else {
			positional = append(positional, v)
		}
	}
	frame := i.register.CallFrame(named, positional)
	return fn(e.Name, i.sink, frame)
}

func (i *Interpreter) evalUnary(e *parser.Unary) (Value, error) {
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		n, ok := right.(float64)
		if !ok {
			return nil, errors.NewTypeError("operand of '-' must be a number, got "+ValueType(right), 0)
		}
		return -n, nil
	case "!":
		b, ok := right.(bool)
		if !ok {
			return nil, errors.NewTypeError("operand of '!' must be a bool, got "+ValueType(right), 0)
		}
		return !b, nil
	}
	return nil, errors.NewRuntimeError("unknown unary operator "+e.Operator, 0)
}

func (i *Interpreter) evalBinary(e *parser.Binary) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==":
		return Equal(left, right), nil
	case "!=":
		return !Equal(left, right), nil
	}

	// String concatenation
	if e.Operator == "+" {
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
	}

	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return nil, errors.NewTypeError(
			fmt.Sprintf("operands of '%s' must be numbers, got %s and %s",
				e.Operator, ValueType(left), ValueType(right)), e.Line)
	}

	switch e.Operator {
	case "+":
		return ln + rn, nil
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		if rn == 0 {
			return nil, errors.NewRuntimeError("division by zero", e.Line)
		}
		return ln / rn, nil
	case "%":
		if rn == 0 {
			return nil, errors.NewRuntimeError("division by zero", e.Line)
		}
		return float64(int64(ln) % int64(rn)), nil
	case "<":
		return ln < rn, nil
	case ">":
		return ln > rn, nil
	case "<=":
		return ln <= rn, nil
	case ">=":
		return ln >= rn, nil
	}
	return nil, errors.NewRuntimeError("unknown operator "+e.Operator, e.Line)
}
