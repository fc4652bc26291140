package lisp

import "fmt"

// Env is a lexical environment frame: a mapping of symbol to value plus a
// parent link. Lookup climbs parents; shadowing is allowed (§3, §4.9).
type Env struct {
	vars   map[Symbol]Value
	parent *Env

	marked bool // GC header bit; environments are heap-tracked via Heap.NewEnv
}

func (e *Env) gcMarked() bool   { return e.marked }
func (e *Env) gcSetMark(m bool) { e.marked = m }

// NewEnv creates a frame with no parent (the global environment).
func NewEnv() *Env {
	return &Env{vars: make(map[Symbol]Value)}
}

// Child creates a new frame whose parent is e, for lambda/let bodies.
func (e *Env) Child() *Env {
	return &Env{vars: make(map[Symbol]Value), parent: e}
}

// Define binds sym in this frame, shadowing any binding in a parent frame.
func (e *Env) Define(sym Symbol, v Value) {
	e.vars[sym] = v
}

// Lookup climbs parent frames looking for sym.
func (e *Env) Lookup(sym Symbol) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[sym]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set assigns sym in the nearest enclosing frame that binds it, per
// `(set! sym expr)`'s "error if unbound" contract (§4.9).
func (e *Env) Set(sym Symbol, v Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[sym]; ok {
			env.vars[sym] = v
			return nil
		}
	}
	return fmt.Errorf("set!: unbound symbol %s", sym)
}
