// Package scripttest verifies script execution line by line. A Builder
// pairs each line of script code with an expected outcome, runs the whole
// program once and compares the produced outcome stream against the
// expectations, failing loudly on any mismatch, including a mismatch in
// the number of outcomes.
package scripttest

import (
	"strings"
	"testing"

	"vulnscript/internal/builtin"
	"vulnscript/internal/builtin/cryptography"
	"vulnscript/internal/interpreter"
	"vulnscript/internal/lexer"
	"vulnscript/internal/parser"
	"vulnscript/internal/storage"
)

type expectKind int

const (
	expectOk expectKind = iota
	expectCheck
	expectNone
)

type expectation struct {
	kind  expectKind
	value interpreter.Value
	check func(interpreter.Outcome) bool
}

// Builder accumulates script lines and their expected outcomes. The
// script runs and is verified automatically when the test finishes;
// Verify may also be called explicitly.
type Builder struct {
	t            *testing.T
	lines        []string
	expectations []expectation
	sink         storage.Sink
	variables    map[string]interpreter.Value
	shouldVerify bool
	verified     bool
}

// New creates a Builder bound to the test. Verification is registered as
// a cleanup so forgetting to call Verify cannot silently pass.
func New(t *testing.T) *Builder {
	b := &Builder{
		t:            t,
		sink:         storage.NewMemSink(),
		variables:    make(map[string]interpreter.Value),
		shouldVerify: true,
	}
	t.Cleanup(b.Verify)
	return b
}

// WithSink replaces the in-memory sink.
func (b *Builder) WithSink(sink storage.Sink) *Builder {
	b.sink = sink
	return b
}

// SetVariable pre-binds a script variable before execution.
func (b *Builder) SetVariable(name string, value interpreter.Value) *Builder {
	b.variables[name] = value
	return b
}

// Ok expects the line to succeed with the given value. Integer literals
// are accepted for convenience and converted to the runtime number type.
func (b *Builder) Ok(line string, expected interface{}) *Builder {
	return b.expect(line, expectation{kind: expectOk, value: toValue(expected)})
}

// Check runs an arbitrary predicate against the line's outcome.
func (b *Builder) Check(line string, check func(interpreter.Outcome) bool) *Builder {
	return b.expect(line, expectation{kind: expectCheck, check: check})
}

// Run executes the line without verifying its outcome.
func (b *Builder) Run(line string) *Builder {
	return b.expect(line, expectation{kind: expectNone})
}

// RunAll appends code containing any number of statements. Per-line
// verification is disabled; use Results for custom checks.
func (b *Builder) RunAll(code string) {
	b.lines = append(b.lines, code)
	b.shouldVerify = false
}

func (b *Builder) expect(line string, e expectation) *Builder {
	b.lines = append(b.lines, line)
	b.expectations = append(b.expectations, e)
	return b
}

// Results executes the accumulated script against a fresh register and
// returns the full outcome stream.
func (b *Builder) Results() []interpreter.Outcome {
	b.t.Helper()
	code := strings.Join(b.lines, "\n")

	scanner := lexer.NewScanner(code)
	tokens := scanner.ScanTokens()
	if len(scanner.Errors) > 0 {
		b.t.Fatalf("scan errors: %v", scanner.Errors)
	}
	p := parser.NewParser(tokens)
	stmts := p.Parse()
	if len(p.Errors) > 0 {
		b.t.Fatalf("parse errors: %v", p.Errors)
	}

	register := interpreter.NewRegister()
	for name, value := range b.variables {
		register.Define(name, value)
	}
	interp := interpreter.New("test", b.sink, register)
	builtin.RegisterDataFunctions(interp)
	builtin.RegisterKBFunctions(interp)
	cryptography.RegisterCryptoFunctions(interp)
	cryptography.RegisterHashFunctions(interp)

	return interp.Stream(stmts).Collect()
}

// Verify runs the script and compares every outcome against its
// expectation. It is a no-op after the first call.
func (b *Builder) Verify() {
	if b.verified || len(b.lines) == 0 {
		return
	}
	b.verified = true
	b.t.Helper()

	results := b.Results()
	if !b.shouldVerify {
		for _, e := range b.expectations {
			if e.kind != expectNone {
				b.t.Fatalf("RunAll was called; per-line expectations cannot be verified")
			}
		}
		return
	}
	if len(results) != len(b.expectations) {
		b.t.Fatalf("expected %d outcomes, got %d", len(b.expectations), len(results))
	}
	for i, result := range results {
		b.checkResult(result, b.expectations[i], i)
	}
}

func (b *Builder) checkResult(result interpreter.Outcome, e expectation, line int) {
	b.t.Helper()
	switch e.kind {
	case expectOk:
		if result.Err != nil {
			if _, ok := result.Err.(*builtin.FunctionError); !ok {
				b.t.Fatalf("line %d %q: unexpected interpreter error: %v", line, b.lines[line], result.Err)
			}
			b.t.Errorf("line %d %q: expected %v, got error %v", line, b.lines[line], interpreter.ToString(e.value), result.Err)
			return
		}
		if !interpreter.Equal(result.Value, e.value) {
			b.t.Errorf("line %d %q: expected %v, got %v", line, b.lines[line],
				interpreter.ToString(e.value), interpreter.ToString(result.Value))
		}
	case expectCheck:
		if !e.check(result) {
			b.t.Errorf("check failed in line %d with code %q", line, b.lines[line])
		}
	case expectNone:
	}
}

func toValue(v interface{}) interpreter.Value {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	default:
		return x
	}
}
