package lisp

import (
	"fmt"
)

// DefaultRecursionLimit is the default interpreter reentrancy bound named
// in §5: "reentrancy is bounded by stack depth and guarded by a
// configurable recursion limit (default 512)."
const DefaultRecursionLimit = 512

// Interp is one Lisp evaluation context: a heap, a global environment, and
// the bookkeeping the evaluator needs for recursion limits and
// cooperative interruption.
type Interp struct {
	Heap      *Heap
	Global    *Env
	MaxDepth  int
	depth     int
	interrupt bool
	bridge    EditorBridge
}

// NewInterp creates an interpreter with its own heap and global
// environment, and installs the builtin surface (§4.9).
func NewInterp() *Interp {
	global := NewEnv()
	i := &Interp{
		Heap:     NewHeap(global),
		Global:   global,
		MaxDepth: DefaultRecursionLimit,
	}
	installBuiltins(i)
	return i
}

// InteractiveCommands returns the name of every top-level closure defined
// with the 'interactive tag (§4.9's `(define name 'interactive lambda)`),
// for M-x's candidate list alongside the built-in command table.
func (i *Interp) InteractiveCommands() []string {
	var names []string
	for sym, v := range i.Global.vars {
		if cl, ok := v.(*Closure); ok && cl.Interactive {
			names = append(names, string(sym))
		}
	}
	return names
}

// CallInteractive looks up name as a top-level 'interactive closure and
// calls it with no arguments, the contract M-x uses once a name doesn't
// match the built-in command table.
func (i *Interp) CallInteractive(name string) (Value, bool, error) {
	v, ok := i.Global.Lookup(Symbol(name))
	if !ok {
		return nil, false, nil
	}
	cl, ok := v.(*Closure)
	if !ok || !cl.Interactive {
		return nil, false, nil
	}
	result, err := i.Apply(cl, nil)
	return result, true, err
}

// Interrupt sets the cooperative interrupt flag, checked between
// evaluation steps (§5: "Ctrl-g ... interrupts any tight Lisp loop by
// setting an interrupt flag checked between evaluation steps").
func (i *Interp) Interrupt() { i.interrupt = true }

// ErrInterrupted is returned when evaluation is aborted by Interrupt.
type ErrInterrupted struct{}

func (ErrInterrupted) Error() string { return "lisp: interrupted" }

// EvalString reads exactly one form from src and evaluates it in the
// global environment, the contract eval-expression and the command
// processor (§4.7) use.
func (i *Interp) EvalString(src string) (Value, error) {
	form, err := ReadOne(src)
	if err != nil {
		return nil, err
	}
	return i.Eval(form, i.Global)
}

// Eval evaluates form in env, dispatching special forms and function
// application per §4.9.
func (i *Interp) Eval(form Value, env *Env) (Value, error) {
	if i.interrupt {
		i.interrupt = false
		return nil, ErrInterrupted{}
	}
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.MaxDepth {
		return nil, fmt.Errorf("recursion limit exceeded (%d)", i.MaxDepth)
	}

	switch t := form.(type) {
	case Int, Float, Bool, String, NilValue, *Builtin, *Closure:
		return form, nil
	case Symbol:
		v, ok := env.Lookup(t)
		if !ok {
			return nil, fmt.Errorf("unbound symbol: %s", t)
		}
		return v, nil
	case *Cons:
		return i.evalForm(t, env)
	default:
		return form, nil
	}
}

func (i *Interp) evalForm(form *Cons, env *Env) (Value, error) {
	if sym, ok := form.Car.(Symbol); ok {
		if fn, ok := specialForms[sym]; ok {
			args, ok := listToSlice(form.Cdr)
			if !ok {
				return nil, fmt.Errorf("%s: improper argument list", sym)
			}
			return fn(i, args, env)
		}
	}

	callee, err := i.Eval(form.Car, env)
	if err != nil {
		return nil, err
	}
	prot := i.Heap.Protect(callee)
	defer prot.Release()

	argForms, ok := listToSlice(form.Cdr)
	if !ok {
		return nil, fmt.Errorf("improper argument list in call")
	}
	args := make([]Value, len(argForms))
	for idx, af := range argForms {
		v, err := i.Eval(af, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
		// Every already-evaluated argument is registered as its own root
		// on top of the callee's, so none of them can be reclaimed while
		// evaluating the remaining ones (§9 GC correctness note).
		i.Heap.Protect(v)
	}

	return i.Apply(callee, args)
}

// Apply invokes callee (a *Closure or *Builtin) with args already
// evaluated, binding parameters left-to-right in a fresh frame whose
// parent is the closure's captured environment (§4.9).
func (i *Interp) Apply(callee Value, args []Value) (Value, error) {
	prot := i.Heap.Protect(append([]Value{callee}, args...)...)
	defer prot.Release()

	switch fn := callee.(type) {
	case *Builtin:
		return fn.Fn(i, args)
	case *Closure:
		if len(args) != len(fn.Params) {
			return nil, fmt.Errorf("%s: expected %d argument(s), got %d", closureLabel(fn), len(fn.Params), len(args))
		}
		frame := i.Heap.NewEnv(fn.Env)
		for idx, p := range fn.Params {
			frame.Define(p, args[idx])
		}
		var result Value = Nil
		for _, expr := range fn.Body {
			v, err := i.Eval(expr, frame)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	default:
		return nil, fmt.Errorf("not callable: %s", callee.Repr())
	}
}

func closureLabel(c *Closure) string {
	if c.Name != "" {
		return c.Name
	}
	return "#<lambda>"
}

// specialFormFunc implements one special form: it receives the
// interpreter, the form's unevaluated argument forms, and the environment
// it was invoked in.
type specialFormFunc func(i *Interp, args []Value, env *Env) (Value, error)

var specialForms map[Symbol]specialFormFunc

func init() {
	specialForms = map[Symbol]specialFormFunc{
		"define":  evalDefine,
		"lambda":  evalLambda,
		"let":     evalLet,
		"if":      evalIf,
		"quote":   evalQuote,
		"begin":   evalBegin,
		"set!":    evalSet,
	}
}

// isInteractiveTag reports whether v is the `'interactive` marker that
// tags a top-level define for M-x dispatch. The reader expands the `'x`
// shorthand to `(quote x)`, so the unevaluated form define sees is a
// two-element list, not a bare symbol.
func isInteractiveTag(v Value) bool {
	if sym, ok := v.(Symbol); ok {
		return sym == "interactive"
	}
	c, ok := v.(*Cons)
	if !ok {
		return false
	}
	if head, ok := c.Car.(Symbol); !ok || head != "quote" {
		return false
	}
	inner, ok := c.Cdr.(*Cons)
	if !ok {
		return false
	}
	sym, ok := inner.Car.(Symbol)
	return ok && sym == "interactive"
}

// evalDefine implements `(define sym expr)` and the two sugared forms
// named in §4.9: `(define (name params…) body…)` and the interactive tag
// `(define name 'interactive lambda)`.
//
// Self-referential closures (§9, §8 Property 7): for the function-
// definition sugar, name is bound to a placeholder *before* the closure is
// constructed, so the closure's captured environment already contains its
// own binding and recursive calls resolve instead of failing with an
// unbound-symbol error.
func evalDefine(i *Interp, args []Value, env *Env) (Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("define: expected at least 1 argument")
	}

	if sig, ok := args[0].(*Cons); ok {
		nameSym, ok := sig.Car.(Symbol)
		if !ok {
			return nil, fmt.Errorf("define: expected a symbol as the function name")
		}
		paramForms, ok := listToSlice(sig.Cdr)
		if !ok {
			return nil, fmt.Errorf("define: malformed parameter list")
		}
		params := make([]Symbol, len(paramForms))
		for idx, p := range paramForms {
			sym, ok := p.(Symbol)
			if !ok {
				return nil, fmt.Errorf("define: parameter %v is not a symbol", p)
			}
			params[idx] = sym
		}
		env.Define(nameSym, Nil) // placeholder, bound before the closure captures env
		closure := i.Heap.NewClosure(string(nameSym), params, args[1:], env, false)
		env.Define(nameSym, closure)
		return Symbol(nameSym), nil
	}

	nameSym, ok := args[0].(Symbol)
	if !ok {
		return nil, fmt.Errorf("define: expected a symbol or a function signature")
	}

	// (define name 'interactive lambda-expr)
	if len(args) == 3 {
		if isInteractiveTag(args[1]) {
			env.Define(nameSym, Nil)
			v, err := i.Eval(args[2], env)
			if err != nil {
				return nil, err
			}
			if cl, ok := v.(*Closure); ok {
				cl.Interactive = true
				cl.Name = string(nameSym)
			}
			env.Define(nameSym, v)
			return Symbol(nameSym), nil
		}
	}

	if len(args) != 2 {
		return nil, fmt.Errorf("define: expected (define sym expr)")
	}
	env.Define(nameSym, Nil)
	v, err := i.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	if cl, ok := v.(*Closure); ok && cl.Name == "" {
		cl.Name = string(nameSym)
	}
	env.Define(nameSym, v)
	return Symbol(nameSym), nil
}

// evalLambda implements `(lambda (params…) body…)`.
func evalLambda(i *Interp, args []Value, env *Env) (Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("lambda: expected a parameter list")
	}
	paramForms, ok := listToSlice(args[0])
	if !ok {
		return nil, fmt.Errorf("lambda: malformed parameter list")
	}
	params := make([]Symbol, len(paramForms))
	for idx, p := range paramForms {
		sym, ok := p.(Symbol)
		if !ok {
			return nil, fmt.Errorf("lambda: parameter %v is not a symbol", p)
		}
		params[idx] = sym
	}
	return i.Heap.NewClosure("", params, args[1:], env, false), nil
}

// evalLet implements `(let ((sym expr)…) body…)`: bindings are evaluated
// simultaneously in the enclosing frame, then bound together in a new
// frame (§4.9).
func evalLet(i *Interp, args []Value, env *Env) (Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("let: expected a binding list")
	}
	bindingForms, ok := listToSlice(args[0])
	if !ok {
		return nil, fmt.Errorf("let: malformed binding list")
	}

	names := make([]Symbol, len(bindingForms))
	values := make([]Value, len(bindingForms))
	for idx, bf := range bindingForms {
		pair, ok := listToSlice(bf)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("let: malformed binding")
		}
		sym, ok := pair[0].(Symbol)
		if !ok {
			return nil, fmt.Errorf("let: binding name must be a symbol")
		}
		v, err := i.Eval(pair[1], env) // evaluated in the enclosing frame
		if err != nil {
			return nil, err
		}
		names[idx] = sym
		values[idx] = v
	}

	frame := i.Heap.NewEnv(env)
	for idx, sym := range names {
		frame.Define(sym, values[idx])
	}

	var result Value = Nil
	for _, expr := range args[1:] {
		v, err := i.Eval(expr, frame)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalIf implements `(if cond then else?)`; #f and the empty list are
// falsey, everything else truthy (§4.9).
func evalIf(i *Interp, args []Value, env *Env) (Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("if: expected (if cond then else?)")
	}
	cond, err := i.Eval(args[0], env)
	if err != nil {
		return nil, err
	}
	if Truthy(cond) {
		return i.Eval(args[1], env)
	}
	if len(args) == 3 {
		return i.Eval(args[2], env)
	}
	return Nil, nil
}

// evalQuote implements `(quote x)` / `'x`.
func evalQuote(i *Interp, args []Value, env *Env) (Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("quote: expected exactly 1 argument")
	}
	return args[0], nil
}

// evalBegin implements `(begin e…)`: sequential evaluation, value of the
// last form.
func evalBegin(i *Interp, args []Value, env *Env) (Value, error) {
	var result Value = Nil
	for _, expr := range args {
		v, err := i.Eval(expr, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalSet implements `(set! sym expr)`.
func evalSet(i *Interp, args []Value, env *Env) (Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("set!: expected (set! sym expr)")
	}
	sym, ok := args[0].(Symbol)
	if !ok {
		return nil, fmt.Errorf("set!: expected a symbol")
	}
	v, err := i.Eval(args[1], env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(sym, v); err != nil {
		return nil, err
	}
	return v, nil
}
