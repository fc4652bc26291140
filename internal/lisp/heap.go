package lisp

// Heap owns every GC-tracked allocation the interpreter makes: cons cells,
// vectors, closures, and environment frames. It runs a tracing mark-sweep
// collection whenever the allocation counter crosses an adaptively grown
// threshold (§4.9: "initial 1024 allocations; grown adaptively").
//
// Roots are exactly two: the global environment and the scoped protection
// stack (which the evaluator and builtins use to hold
// callee/argument/partial-result registers live across any allocation
// point, in place of a separate evaluation-stack root), and nothing
// else — there are no weak references and
// no concurrent mutators, so a single mark pass from those roots is
// sufficient (§3, §5).
type Heap struct {
	objects   []gcObject
	allocs    int
	threshold int
	globalEnv *Env
	protected []Value

	lastSwept int // objects freed by the most recent collection, exposed for tests/stress
}

const defaultThreshold = 1024

// gcObject is implemented by every heap-tracked value so the collector can
// flip its mark bit without a type switch on the sweep side.
type gcObject interface {
	gcMarked() bool
	gcSetMark(bool)
}

// NewHeap creates a heap rooted at globalEnv with the default GC
// threshold.
func NewHeap(globalEnv *Env) *Heap {
	return &Heap{globalEnv: globalEnv, threshold: defaultThreshold}
}

// SetThreshold overrides the allocation threshold that triggers a
// collection. Used by tests to stress the collector (§8 Property 8: "under
// stress, threshold lowered to 1").
func (h *Heap) SetThreshold(n int) {
	if n < 1 {
		n = 1
	}
	h.threshold = n
}

// Allocs reports the number of allocations made since the heap was
// created, for diagnostics.
func (h *Heap) Allocs() int { return h.allocs }

// LastSwept reports how many objects the most recent collection reclaimed.
func (h *Heap) LastSwept() int { return h.lastSwept }

func (h *Heap) track(obj gcObject) {
	h.objects = append(h.objects, obj)
	h.allocs++
	if h.allocs >= h.threshold {
		h.Collect()
	}
}

// NewCons allocates a cons cell. car and cdr must already be reachable
// from a protected root (or from an already-rooted structure) for the
// duration of this call, since allocation may trigger a collection.
func (h *Heap) NewCons(car, cdr Value) *Cons {
	c := &Cons{Car: car, Cdr: cdr}
	h.track(c)
	return c
}

// NewVector allocates a vector.
func (h *Heap) NewVector(items []Value) *Vector {
	v := &Vector{Items: items}
	h.track(v)
	return v
}

// NewHash allocates an empty hash table.
func (h *Heap) NewHash() *Hash {
	ht := &Hash{entries: make(map[string]hashEntry)}
	h.track(ht)
	return ht
}

// NewClosure allocates a closure capturing env.
func (h *Heap) NewClosure(name string, params []Symbol, body []Value, env *Env, interactive bool) *Closure {
	c := &Closure{Name: name, Params: params, Body: body, Env: env, Interactive: interactive}
	h.track(c)
	return c
}

// NewEnv allocates a child frame of parent.
func (h *Heap) NewEnv(parent *Env) *Env {
	e := &Env{vars: make(map[Symbol]Value), parent: parent}
	h.track(e)
	return e
}

// List allocates a proper list from items via the heap (so every Cons it
// builds is tracked), right-to-left so each intermediate Cons is already
// reachable from the next one built.
func (h *Heap) List(items ...Value) Value {
	var result Value = Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = h.NewCons(items[i], result)
	}
	return result
}

// Protect registers vals as live roots and returns a handle that must be
// released (LIFO, stack-discipline) once the caller no longer needs the
// guarantee. Builtins and the evaluator acquire this before any operation
// that might allocate, per the GC correctness design note (§9): "any
// function that may allocate must hold callee, arguments, and partial
// results through scoped protection before allocating."
func (h *Heap) Protect(vals ...Value) *Protection {
	mark := len(h.protected)
	h.protected = append(h.protected, vals...)
	return &Protection{heap: h, mark: mark}
}

// Protection is a scoped root-protection handle acquired from Heap.Protect.
type Protection struct {
	heap *Heap
	mark int
}

// Release pops this protection (and anything pushed after it) off the
// protection stack. Callers must release protections in the reverse order
// they were acquired.
func (p *Protection) Release() {
	if p == nil || p.heap == nil {
		return
	}
	p.heap.protected = p.heap.protected[:p.mark]
}

// Collect runs one stop-the-world mark-sweep cycle: mark every object
// reachable from the global environment and the protection stack, then
// drop anything left unmarked from the tracked object set. The threshold
// then grows adaptively to roughly twice the live set, so steady-state
// allocation doesn't collect every few allocations once the heap is
// larger than the initial default.
func (h *Heap) Collect() {
	markEnv(h.globalEnv)
	for _, v := range h.protected {
		markValue(v)
	}

	live := h.objects[:0]
	for _, obj := range h.objects {
		if obj.gcMarked() {
			obj.gcSetMark(false)
			live = append(live, obj)
		}
	}
	h.lastSwept = len(h.objects) - len(live)
	h.objects = live
	h.allocs = 0

	if grown := len(live) * 2; grown > h.threshold {
		h.threshold = grown
	} else if h.threshold < defaultThreshold {
		h.threshold = defaultThreshold
	}
}

func markValue(v Value) {
	switch t := v.(type) {
	case *Cons:
		if t.marked {
			return
		}
		t.marked = true
		markValue(t.Car)
		markValue(t.Cdr)
	case *Vector:
		if t.marked {
			return
		}
		t.marked = true
		for _, it := range t.Items {
			markValue(it)
		}
	case *Closure:
		if t.marked {
			return
		}
		t.marked = true
		markEnv(t.Env)
		for _, b := range t.Body {
			markValue(b)
		}
	case *Hash:
		if t.marked {
			return
		}
		t.marked = true
		for _, e := range t.entries {
			markValue(e.key)
			markValue(e.value)
		}
	}
	// Int, Float, Bool, String, Symbol, NilValue, and *Builtin carry no
	// outgoing references and are not tracked on h.objects (they're
	// ordinary Go values/statics, not heap-managed in this model — see
	// DESIGN.md).
}

func markEnv(e *Env) {
	if e == nil || e.marked {
		return
	}
	e.marked = true
	for _, v := range e.vars {
		markValue(v)
	}
	markEnv(e.parent)
}
