package lisp

import (
	"fmt"
	"strings"
)

// EditorBridge is the handle builtins use to reach the command processor
// (§4.9: "the editor bridge ... each of which receives a handle to the
// command processor"). internal/command implements this interface and
// installs it on an Interp before running any user script, so `insert`,
// `point`, `goto-char`, and the §4.9 "[FULL] Builtin surface (expansion)"
// additions can act on the live buffer, kill ring, and minibuffer.
type EditorBridge interface {
	Point() int
	GotoChar(pos int) error
	Insert(s string) error
	BufferString() string
	KillRegion(beg, end int) (string, error)
	Yank() (string, error)
	Message(s string)
}

// SetBridge installs the editor bridge a script's builtins dispatch
// through. A nil bridge (the default for a standalone interpreter, e.g.
// in tests) makes editor builtins return a TypeMismatch-flavored error
// instead of panicking; `mark` returns nil instead, as it does for any
// bridge without a Mark method.
func (i *Interp) SetBridge(b EditorBridge) { i.bridge = b }

func installBuiltins(i *Interp) {
	def := func(name string, fn BuiltinFunc) {
		i.Global.Define(Symbol(name), &Builtin{Name: name, Fn: fn})
	}

	def("+", arith(func(a, b float64) float64 { return a + b }, 0))
	def("-", arithSub)
	def("*", arith(func(a, b float64) float64 { return a * b }, 1))
	def("/", arithDiv)
	def("=", compare(func(a, b float64) bool { return a == b }))
	def("<", compare(func(a, b float64) bool { return a < b }))
	def(">", compare(func(a, b float64) bool { return a > b }))
	def("<=", compare(func(a, b float64) bool { return a <= b }))
	def(">=", compare(func(a, b float64) bool { return a >= b }))

	def("cons", biCons)
	def("car", biCar)
	def("cdr", biCdr)
	def("list", biList)
	def("null?", biNullP)
	def("not", biNot)

	def("string-append", biStringAppend)
	def("string-length", biStringLength)
	def("substring", biSubstring)
	def("print", biPrint)

	def("make-hash", biMakeHash)
	def("hash-set!", biHashSet)
	def("hash-ref", biHashRef)
	def("hash-remove!", biHashRemove)
	def("hash-keys", biHashKeys)
	def("hash?", biHashP)

	def("point", biPoint)
	def("goto-char", biGotoChar)
	def("insert", biInsert)
	def("buffer-string", biBufferString)
	def("kill-region", biKillRegion)
	def("yank", biYank)
	def("message", biMessage)
	def("mark", biMark)
}

func wantInt(v Value, who string) (int64, error) {
	switch t := v.(type) {
	case Int:
		return int64(t), nil
	case Float:
		return int64(t), nil
	}
	return 0, &typeMismatch{who: who, want: "number", got: v.Kind()}
}

func wantFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Float:
		return float64(t), true
	}
	return 0, false
}

type typeMismatch struct {
	who, want, got string
}

func (e *typeMismatch) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.who, e.want, e.got)
}

// numericResult decides whether an arithmetic result should be reported
// as an Int (every operand was an Int) or a Float (any operand had a
// fractional type).
func numericResult(anyFloat bool, f float64) Value {
	if anyFloat {
		return Float(f)
	}
	return Int(int64(f))
}

func arith(op func(a, b float64) float64, identity float64) BuiltinFunc {
	return func(i *Interp, args []Value) (Value, error) {
		acc := identity
		anyFloat := false
		for idx, a := range args {
			f, ok := wantFloat(a)
			if !ok {
				return nil, &typeMismatch{who: "arithmetic", want: "number", got: a.Kind()}
			}
			if _, isFloat := a.(Float); isFloat {
				anyFloat = true
			}
			if idx == 0 {
				acc = f
			} else {
				acc = op(acc, f)
			}
		}
		if len(args) == 0 {
			return numericResult(false, identity), nil
		}
		return numericResult(anyFloat, acc), nil
	}
}

func arithSub(i *Interp, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, &typeMismatch{who: "-", want: "at least 1 argument", got: "0"}
	}
	first, ok := wantFloat(args[0])
	if !ok {
		return nil, &typeMismatch{who: "-", want: "number", got: args[0].Kind()}
	}
	anyFloat := isFloatVal(args[0])
	if len(args) == 1 {
		return numericResult(anyFloat, -first), nil
	}
	acc := first
	for _, a := range args[1:] {
		f, ok := wantFloat(a)
		if !ok {
			return nil, &typeMismatch{who: "-", want: "number", got: a.Kind()}
		}
		anyFloat = anyFloat || isFloatVal(a)
		acc -= f
	}
	return numericResult(anyFloat, acc), nil
}

func arithDiv(i *Interp, args []Value) (Value, error) {
	if len(args) < 2 {
		return nil, &typeMismatch{who: "/", want: "at least 2 arguments", got: fmt.Sprint(len(args))}
	}
	acc, ok := wantFloat(args[0])
	if !ok {
		return nil, &typeMismatch{who: "/", want: "number", got: args[0].Kind()}
	}
	anyFloat := isFloatVal(args[0])
	for _, a := range args[1:] {
		f, ok := wantFloat(a)
		if !ok {
			return nil, &typeMismatch{who: "/", want: "number", got: a.Kind()}
		}
		if f == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		anyFloat = anyFloat || isFloatVal(a)
		acc /= f
	}
	return numericResult(anyFloat, acc), nil
}

func isFloatVal(v Value) bool {
	_, ok := v.(Float)
	return ok
}

func compare(op func(a, b float64) bool) BuiltinFunc {
	return func(i *Interp, args []Value) (Value, error) {
		if len(args) < 2 {
			return nil, &typeMismatch{who: "comparison", want: "at least 2 arguments", got: fmt.Sprint(len(args))}
		}
		for idx := 0; idx < len(args)-1; idx++ {
			a, ok := wantFloat(args[idx])
			if !ok {
				return nil, &typeMismatch{who: "comparison", want: "number", got: args[idx].Kind()}
			}
			b, ok := wantFloat(args[idx+1])
			if !ok {
				return nil, &typeMismatch{who: "comparison", want: "number", got: args[idx+1].Kind()}
			}
			if !op(a, b) {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	}
}

func biCons(i *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, &typeMismatch{who: "cons", want: "2 arguments", got: fmt.Sprint(len(args))}
	}
	return i.Heap.NewCons(args[0], args[1]), nil
}

func biCar(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "car", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	c, ok := args[0].(*Cons)
	if !ok {
		return nil, &typeMismatch{who: "car", want: "cons", got: args[0].Kind()}
	}
	return c.Car, nil
}

func biCdr(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "cdr", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	c, ok := args[0].(*Cons)
	if !ok {
		return nil, &typeMismatch{who: "cdr", want: "cons", got: args[0].Kind()}
	}
	return c.Cdr, nil
}

func biList(i *Interp, args []Value) (Value, error) {
	return i.Heap.List(args...), nil
}

func biNullP(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "null?", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	_, isNil := args[0].(NilValue)
	return Bool(isNil), nil
}

func biNot(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "not", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	return Bool(!Truthy(args[0])), nil
}

func biStringAppend(i *Interp, args []Value) (Value, error) {
	var b strings.Builder
	for _, a := range args {
		s, ok := a.(String)
		if !ok {
			return nil, &typeMismatch{who: "string-append", want: "string", got: a.Kind()}
		}
		b.WriteString(string(s))
	}
	return String(b.String()), nil
}

func biStringLength(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "string-length", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, &typeMismatch{who: "string-length", want: "string", got: args[0].Kind()}
	}
	return Int(len([]rune(string(s)))), nil
}

func biSubstring(i *Interp, args []Value) (Value, error) {
	if len(args) != 3 {
		return nil, &typeMismatch{who: "substring", want: "3 arguments", got: fmt.Sprint(len(args))}
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, &typeMismatch{who: "substring", want: "string", got: args[0].Kind()}
	}
	from, err := wantInt(args[1], "substring")
	if err != nil {
		return nil, err
	}
	to, err := wantInt(args[2], "substring")
	if err != nil {
		return nil, err
	}
	runes := []rune(string(s))
	if from < 0 || to > int64(len(runes)) || from > to {
		return nil, fmt.Errorf("substring: index out of range")
	}
	return String(runes[from:to]), nil
}

func biPrint(i *Interp, args []Value) (Value, error) {
	var parts []string
	for _, a := range args {
		parts = append(parts, a.Repr())
	}
	fmt.Println(strings.Join(parts, " "))
	return Nil, nil
}

func (i *Interp) requireBridge(who string) (EditorBridge, error) {
	if i.bridge == nil {
		return nil, &typeMismatch{who: who, want: "an active editor bridge", got: "nil"}
	}
	return i.bridge, nil
}

func biPoint(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("point")
	if err != nil {
		return nil, err
	}
	return Int(b.Point()), nil
}

func biGotoChar(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("goto-char")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, &typeMismatch{who: "goto-char", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	pos, err := wantInt(args[0], "goto-char")
	if err != nil {
		return nil, err
	}
	if err := b.GotoChar(int(pos)); err != nil {
		return nil, err
	}
	return Nil, nil
}

func biInsert(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("insert")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, &typeMismatch{who: "insert", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, &typeMismatch{who: "insert", want: "string", got: args[0].Kind()}
	}
	if err := b.Insert(string(s)); err != nil {
		return nil, err
	}
	return Nil, nil
}

func biBufferString(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("buffer-string")
	if err != nil {
		return nil, err
	}
	return String(b.BufferString()), nil
}

func biKillRegion(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("kill-region")
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, &typeMismatch{who: "kill-region", want: "2 arguments", got: fmt.Sprint(len(args))}
	}
	beg, err := wantInt(args[0], "kill-region")
	if err != nil {
		return nil, err
	}
	end, err := wantInt(args[1], "kill-region")
	if err != nil {
		return nil, err
	}
	killed, err := b.KillRegion(int(beg), int(end))
	if err != nil {
		return nil, err
	}
	return String(killed), nil
}

func biYank(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("yank")
	if err != nil {
		return nil, err
	}
	yanked, err := b.Yank()
	if err != nil {
		return nil, err
	}
	return String(yanked), nil
}

func biMessage(i *Interp, args []Value) (Value, error) {
	b, err := i.requireBridge("message")
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, &typeMismatch{who: "message", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, &typeMismatch{who: "message", want: "string", got: args[0].Kind()}
	}
	b.Message(string(s))
	return Nil, nil
}

func wantHash(v Value, who string) (*Hash, error) {
	h, ok := v.(*Hash)
	if !ok {
		return nil, &typeMismatch{who: who, want: "hash", got: v.Kind()}
	}
	return h, nil
}

func biMakeHash(i *Interp, args []Value) (Value, error) {
	return i.Heap.NewHash(), nil
}

// biHashSet implements `(hash-set! table key value)`, returning table so
// callers can chain it the way `(define t (hash-set! (make-hash) 'a 1))`
// reads.
func biHashSet(i *Interp, args []Value) (Value, error) {
	if len(args) != 3 {
		return nil, &typeMismatch{who: "hash-set!", want: "3 arguments", got: fmt.Sprint(len(args))}
	}
	h, err := wantHash(args[0], "hash-set!")
	if err != nil {
		return nil, err
	}
	h.Set(args[1], args[2])
	return h, nil
}

// biHashRef implements `(hash-ref table key [default])`, returning default
// (or nil if omitted) when key is absent.
func biHashRef(i *Interp, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, &typeMismatch{who: "hash-ref", want: "2 or 3 arguments", got: fmt.Sprint(len(args))}
	}
	h, err := wantHash(args[0], "hash-ref")
	if err != nil {
		return nil, err
	}
	if v, ok := h.Get(args[1]); ok {
		return v, nil
	}
	if len(args) == 3 {
		return args[2], nil
	}
	return Nil, nil
}

func biHashRemove(i *Interp, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, &typeMismatch{who: "hash-remove!", want: "2 arguments", got: fmt.Sprint(len(args))}
	}
	h, err := wantHash(args[0], "hash-remove!")
	if err != nil {
		return nil, err
	}
	return Bool(h.Delete(args[1])), nil
}

func biHashKeys(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "hash-keys", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	h, err := wantHash(args[0], "hash-keys")
	if err != nil {
		return nil, err
	}
	return list(h.Keys()...), nil
}

func biHashP(i *Interp, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, &typeMismatch{who: "hash?", want: "1 argument", got: fmt.Sprint(len(args))}
	}
	_, ok := args[0].(*Hash)
	return Bool(ok), nil
}

func biMark(i *Interp, args []Value) (Value, error) {
	b, ok := i.bridge.(interface{ Mark() (int, bool) })
	if !ok {
		return Nil, nil
	}
	pos, has := b.Mark()
	if !has {
		return Nil, nil
	}
	return Int(pos), nil
}
