package interpreter

import "vulnscript/internal/parser"

// Outcome is the observable result of one top-level statement: either the
// value it produced or the error it failed with. Function-call failures
// carry a *builtin.FunctionError; anything else is an interpreter error
// that verifying consumers treat as fatal.
type Outcome struct {
	Value Value
	Err   error
}

// StatementStream lazily produces one Outcome per statement, in program
// order. Statements are only evaluated when pulled; consuming fewer
// elements than there are statements performs no further work.
type StatementStream struct {
	interp *Interpreter
	stmts  []parser.Stmt
	next   int
}

// Stream returns a lazy outcome stream over the given statements.
func (i *Interpreter) Stream(stmts []parser.Stmt) *StatementStream {
	return &StatementStream{interp: i, stmts: stmts}
}

// Next evaluates the next statement and returns its outcome. The second
// return value is false once the stream is exhausted; pulling past the
// end stays false and runs nothing.
func (s *StatementStream) Next() (Outcome, bool) {
	if s.next >= len(s.stmts) {
		return Outcome{}, false
	}
	stmt := s.stmts[s.next]
	s.next++
	v, err := s.interp.Resolve(stmt)
	return Outcome{Value: v, Err: err}, true
}

// Collect pulls the stream to completion.
func (s *StatementStream) Collect() []Outcome {
	var outcomes []Outcome
	for {
		o, ok := s.Next()
		if !ok {
			return outcomes
		}
		outcomes = append(outcomes, o)
	}
}
