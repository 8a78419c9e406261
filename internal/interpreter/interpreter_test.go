package interpreter_test

import (
	"testing"

	verrors "vulnscript/internal/errors"
	"vulnscript/internal/interpreter"
	"vulnscript/internal/lexer"
	"vulnscript/internal/parser"
	"vulnscript/internal/storage"
)

func parse(t *testing.T, code string) []parser.Stmt {
	t.Helper()
	scanner := lexer.NewScanner(code)
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		t.Fatalf("scan errors: %v", scanner.Errors)
	}
	p := parser.NewParser(tokens)
	stmts := p.Parse()
	if len(p.Errors) > 0 {
		t.Fatalf("parse errors: %v", p.Errors)
	}
	return stmts
}

func newInterp() *interpreter.Interpreter {
	return interpreter.New("test", storage.NewMemSink(), interpreter.NewRegister())
}

func TestExpressionStatements(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected interpreter.Value
	}{
		{name: "number literal", code: `42;`, expected: float64(42)},
		{name: "arithmetic", code: `2 + 3 * 4;`, expected: float64(14)},
		{name: "grouping", code: `(2 + 3) * 4;`, expected: float64(20)},
		{name: "modulo", code: `17 % 5;`, expected: float64(2)},
		{name: "negation", code: `-42;`, expected: float64(-42)},
		{name: "comparison", code: `3 < 4;`, expected: true},
		{name: "equality", code: `"a" == "a";`, expected: true},
		{name: "inequality", code: `1 != 2;`, expected: true},
		{name: "not", code: `!false;`, expected: true},
		{name: "string concat", code: `"foo" + "bar";`, expected: "foobar"},
		{name: "null literal", code: `null;`, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interp := newInterp()
			stmts := parse(t, tt.code)
			v, err := interp.Resolve(stmts[0])
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !interpreter.Equal(v, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, v)
			}
		})
	}
}

// An assignment statement surfaces the assigned value, and bindings made
// by statement N are visible to statement N+1.
func TestAssignmentVisibility(t *testing.T) {
	interp := newInterp()
	stmts := parse(t, `x = 3; y = x * 2; x + y;`)
	outcomes := interp.Stream(stmts).Collect()
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	expected := []interpreter.Value{float64(3), float64(6), float64(9)}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome %d failed: %v", i, o.Err)
		}
		if !interpreter.Equal(o.Value, expected[i]) {
			t.Errorf("outcome %d: expected %v, got %v", i, expected[i], o.Value)
		}
	}
}

// Outcomes appear in exactly statement order, one per statement, with a
// dependent chain across statements.
func TestOutcomeOrdering(t *testing.T) {
	interp := newInterp()
	var calls []string
	record := func(name string) interpreter.NativeFunction {
		return func(function string, _ storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
			calls = append(calls, name)
			v, _ := reg.Positional(0)
			if v == nil {
				return float64(1), nil
			}
			return v.(float64) + 1, nil
		}
	}
	interp.RegisterBuiltin("f", record("f"))
	interp.RegisterBuiltin("g", record("g"))
	interp.RegisterBuiltin("h", record("h"))

	stmts := parse(t, `a = f(); b = g(a); h(b);`)
	outcomes := interp.Stream(stmts).Collect()
	if len(outcomes) != 3 {
		t.Fatalf("expected exactly 3 outcomes, got %d", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Fatalf("outcome %d failed: %v", i, o.Err)
		}
		if !interpreter.Equal(o.Value, float64(i+1)) {
			t.Errorf("outcome %d: expected %d, got %v", i, i+1, o.Value)
		}
	}
	if len(calls) != 3 || calls[0] != "f" || calls[1] != "g" || calls[2] != "h" {
		t.Errorf("calls out of order: %v", calls)
	}
}

// The stream is lazy: statements not pulled are not evaluated, and
// pulling past the end yields nothing.
func TestStreamLaziness(t *testing.T) {
	interp := newInterp()
	evaluated := 0
	interp.RegisterBuiltin("tick", func(function string, _ storage.Sink, _ *interpreter.Register) (interpreter.Value, error) {
		evaluated++
		return float64(evaluated), nil
	})

	stream := interp.Stream(parse(t, `tick(); tick(); tick();`))
	if _, ok := stream.Next(); !ok {
		t.Fatal("expected first outcome")
	}
	if evaluated != 1 {
		t.Fatalf("expected 1 evaluation after one pull, got %d", evaluated)
	}

	stream.Collect()
	if evaluated != 3 {
		t.Fatalf("expected 3 evaluations after draining, got %d", evaluated)
	}
	if _, ok := stream.Next(); ok {
		t.Error("exhausted stream should yield nothing")
	}
	if evaluated != 3 {
		t.Errorf("pulling past the end must not evaluate, got %d", evaluated)
	}
}

func TestUndefinedNames(t *testing.T) {
	interp := newInterp()

	_, err := interp.Resolve(parse(t, `nope;`)[0])
	var serr *verrors.ScriptError
	if serr, _ = err.(*verrors.ScriptError); serr == nil || serr.Type != verrors.ReferenceError {
		t.Fatalf("expected ReferenceError for undefined variable, got %v", err)
	}

	_, err = interp.Resolve(parse(t, `nope();`)[0])
	if serr, _ = err.(*verrors.ScriptError); serr == nil || serr.Type != verrors.ReferenceError {
		t.Fatalf("expected ReferenceError for undefined function, got %v", err)
	}
}

func TestTypeErrors(t *testing.T) {
	interp := newInterp()
	for _, code := range []string{`1 + "a";`, `-"a";`, `!3;`, `1 / 0;`} {
		if _, err := interp.Resolve(parse(t, code)[0]); err == nil {
			t.Errorf("%s should fail", code)
		}
	}
}

// Arguments are cloned into the call frame: a builtin mutating its data
// argument must not affect the script variable.
func TestCallFrameIsolation(t *testing.T) {
	register := interpreter.NewRegister()
	register.Define("payload", []byte{1, 2, 3})
	interp := interpreter.New("test", storage.NewMemSink(), register)
	interp.RegisterBuiltin("mangle", func(function string, _ storage.Sink, reg *interpreter.Register) (interpreter.Value, error) {
		v, _ := reg.Named("data")
		data := v.([]byte)
		for i := range data {
			data[i] = 0
		}
		return nil, nil
	})
	stmts := parse(t, `mangle(data: payload);`)
	if outcomes := interp.Stream(stmts).Collect(); outcomes[0].Err != nil {
		t.Fatalf("unexpected error: %v", outcomes[0].Err)
	}
	v, _ := register.Lookup("payload")
	if !interpreter.Equal(v, []byte{1, 2, 3}) {
		t.Errorf("script variable mutated through call frame: %v", v)
	}
}
