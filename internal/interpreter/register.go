package interpreter

// Register is the variable and argument binding scope. The root register
// holds script variables; each native call gets a child frame holding the
// bound named and positional arguments of exactly that call. A frame is
// owned by one call and never shared between concurrent calls.
type Register struct {
	parent     *Register
	vars       map[string]Value
	named      map[string]Value
	positional []Value
}

// NewRegister creates an empty root register.
func NewRegister() *Register {
	return &Register{vars: make(map[string]Value)}
}

// CallFrame derives a child register holding the arguments of one call.
// Argument values are cloned so the callee cannot alias script variables.
func (r *Register) CallFrame(named map[string]Value, positional []Value) *Register {
	frame := &Register{
		parent: r,
		vars:   make(map[string]Value),
		named:  make(map[string]Value, len(named)),
	}
	for name, v := range named {
		frame.named[name] = cloneValue(v)
	}
	for _, v := range positional {
		frame.positional = append(frame.positional, cloneValue(v))
	}
	return frame
}

// Define binds a script variable in this scope.
func (r *Register) Define(name string, v Value) {
	r.vars[name] = v
}

// Lookup resolves a script variable, walking enclosing scopes.
func (r *Register) Lookup(name string) (Value, bool) {
	for reg := r; reg != nil; reg = reg.parent {
		if v, ok := reg.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Named returns the named argument bound in this call frame. It does not
// consult enclosing scopes; arguments are per-call.
func (r *Register) Named(name string) (Value, bool) {
	v, ok := r.named[name]
	return v, ok
}

// Positional returns the i-th positional argument of this call frame.
func (r *Register) Positional(i int) (Value, bool) {
	if i < 0 || i >= len(r.positional) {
		return nil, false
	}
	return r.positional[i], true
}

// PositionalCount returns how many positional arguments the frame holds.
func (r *Register) PositionalCount() int {
	return len(r.positional)
}
