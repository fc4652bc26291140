// Package lisp implements the embedded Lisp runtime described in §4.9: a
// reader, a mark-sweep garbage-collected heap, lexical environments, an
// eager call-by-value evaluator with the special forms spec.md names, and
// a builtin surface bridging editor primitives.
package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the tagged-union interface every Lisp runtime value implements.
// Kind names the runtime type for type-mismatch diagnostics; Repr renders
// the value the way `print`/the minibuffer result line does.
type Value interface {
	Kind() string
	Repr() string
}

// Nil is the unique empty-list/false-adjacent value. #f and Nil are both
// falsey (§4.9: "#f and the empty list are falsey").
type NilValue struct{}

func (NilValue) Kind() string  { return "nil" }
func (NilValue) Repr() string  { return "()" }

// Nil is the shared empty-list value.
var Nil Value = NilValue{}

// Bool wraps a boolean.
type Bool bool

func (Bool) Kind() string { return "bool" }
func (b Bool) Repr() string {
	if b {
		return "#t"
	}
	return "#f"
}

// Int wraps a 64-bit integer.
type Int int64

func (Int) Kind() string   { return "int" }
func (i Int) Repr() string { return strconv.FormatInt(int64(i), 10) }

// Float wraps a float64.
type Float float64

func (Float) Kind() string   { return "float" }
func (f Float) Repr() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// String wraps a Lisp string value.
type String string

func (String) Kind() string { return "string" }
func (s String) Repr() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(s) {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Symbol is a Lisp identifier used for variable/function names.
type Symbol string

func (Symbol) Kind() string   { return "symbol" }
func (s Symbol) Repr() string { return string(s) }

// Cons is a pair; proper lists are chains of Cons terminated by Nil.
type Cons struct {
	Car Value
	Cdr Value

	marked bool // GC header bit (§3: "heap-allocated variants carry GC header")
}

func (c *Cons) gcMarked() bool    { return c.marked }
func (c *Cons) gcSetMark(m bool)  { c.marked = m }

func (*Cons) Kind() string { return "cons" }
func (c *Cons) Repr() string {
	var b strings.Builder
	b.WriteByte('(')
	var cur Value = c
	first := true
	for {
		cons, ok := cur.(*Cons)
		if !ok {
			if _, isNil := cur.(NilValue); !isNil {
				b.WriteString(" . ")
				b.WriteString(cur.Repr())
			}
			break
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(cons.Car.Repr())
		cur = cons.Cdr
	}
	b.WriteByte(')')
	return b.String()
}

// Vector is a fixed-size array of values. It has no surface syntax and no
// builtin creates one; only Heap.NewVector allocates it (kept for GC
// symmetry with Cons).
type Vector struct {
	Items []Value

	marked bool
}

func (v *Vector) gcMarked() bool   { return v.marked }
func (v *Vector) gcSetMark(m bool) { v.marked = m }

func (*Vector) Kind() string { return "vector" }
func (v *Vector) Repr() string {
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.Repr()
	}
	return "#(" + strings.Join(parts, " ") + ")"
}

// Hash is a mutable string-keyed table, the "hash" variant §3's data model
// table names alongside cons/vector/closure. Keys are the Repr of the
// Lisp key value, matching the reader's own notion of equality for atoms
// (two strings/symbols/numbers with the same printed form are the same
// key) without needing a separate equal? implementation over compound
// values.
type Hash struct {
	entries map[string]hashEntry

	marked bool
}

type hashEntry struct {
	key   Value
	value Value
}

func (h *Hash) gcMarked() bool   { return h.marked }
func (h *Hash) gcSetMark(m bool) { h.marked = m }

func (*Hash) Kind() string { return "hash" }
func (h *Hash) Repr() string {
	var b strings.Builder
	b.WriteString("#hash(")
	first := true
	for _, e := range h.entries {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteByte('(')
		b.WriteString(e.key.Repr())
		b.WriteString(" . ")
		b.WriteString(e.value.Repr())
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// Get looks up key by its printed form.
func (h *Hash) Get(key Value) (Value, bool) {
	e, ok := h.entries[key.Repr()]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, keyed by key's printed form.
func (h *Hash) Set(key, value Value) {
	h.entries[key.Repr()] = hashEntry{key: key, value: value}
}

// Delete removes key, reporting whether it was present.
func (h *Hash) Delete(key Value) bool {
	k := key.Repr()
	if _, ok := h.entries[k]; !ok {
		return false
	}
	delete(h.entries, k)
	return true
}

// Keys returns every key currently stored, in no particular order.
func (h *Hash) Keys() []Value {
	keys := make([]Value, 0, len(h.entries))
	for _, e := range h.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Len reports the number of entries.
func (h *Hash) Len() int { return len(h.entries) }

// Closure is a user-defined function: a parameter list, a body, and the
// environment captured at definition time.
type Closure struct {
	Name        string // empty for anonymous lambdas
	Params      []Symbol
	Body        []Value
	Env         *Env
	Interactive bool

	marked bool
}

func (c *Closure) gcMarked() bool   { return c.marked }
func (c *Closure) gcSetMark(m bool) { c.marked = m }

func (*Closure) Kind() string { return "closure" }
func (c *Closure) Repr() string {
	if c.Name != "" {
		return fmt.Sprintf("#<closure %s>", c.Name)
	}
	return "#<closure>"
}

// BuiltinFunc is the Go implementation of a builtin procedure.
type BuiltinFunc func(i *Interp, args []Value) (Value, error)

// Builtin wraps a Go-implemented procedure.
type Builtin struct {
	Name string
	Fn   BuiltinFunc
}

func (*Builtin) Kind() string   { return "builtin" }
func (b *Builtin) Repr() string { return fmt.Sprintf("#<builtin %s>", b.Name) }

// Truthy implements "#f and the empty list are falsey; everything else
// truthy" (§4.9).
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case NilValue:
		return false
	default:
		return true
	}
}

// list builds a proper list from items, for builtins that need to return
// one without going through the reader.
func list(items ...Value) Value {
	var result Value = Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = &Cons{Car: items[i], Cdr: result}
	}
	return result
}

// listToSlice flattens a proper list into a Go slice; ok is false if v is
// not a proper list (a non-Cons, non-Nil tail).
func listToSlice(v Value) (items []Value, ok bool) {
	for {
		switch t := v.(type) {
		case NilValue:
			return items, true
		case *Cons:
			items = append(items, t.Car)
			v = t.Cdr
		default:
			return items, false
		}
	}
}
