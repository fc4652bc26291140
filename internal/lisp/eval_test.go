package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalSrc(t *testing.T, i *Interp, src string) Value {
	t.Helper()
	v, err := i.EvalString(src)
	require.NoError(t, err)
	return v
}

func TestArithmetic(t *testing.T) {
	i := NewInterp()
	assert.Equal(t, Int(8), evalSrc(t, i, "(+ 2 6)"))
	assert.Equal(t, Int(-4), evalSrc(t, i, "(- 2 6)"))
	assert.Equal(t, Int(12), evalSrc(t, i, "(* 2 6)"))
	assert.Equal(t, Float(2.5), evalSrc(t, i, "(/ 5 2.0)"))
	assert.Equal(t, Bool(true), evalSrc(t, i, "(<= 1 2 3)"))
	assert.Equal(t, Bool(false), evalSrc(t, i, "(<= 1 3 2)"))
}

func TestDivisionByZero(t *testing.T) {
	i := NewInterp()
	_, err := i.EvalString("(/ 1 0)")
	assert.Error(t, err)
}

func TestLetAndClosure(t *testing.T) {
	i := NewInterp()
	// Property/Scenario S5: (let ((x 2)) (+ x (* x 3))) => 8
	assert.Equal(t, Int(8), evalSrc(t, i, "(let ((x 2)) (+ x (* x 3)))"))
}

// TestSelfReferentialFib covers §8 Property 7 verbatim.
func TestSelfReferentialFib(t *testing.T) {
	i := NewInterp()
	evalSrc(t, i, "(define (fib n) (if (<= n 1) n (+ (fib (- n 1)) (fib (- n 2)))))")
	assert.Equal(t, Int(55), evalSrc(t, i, "(fib 10)"))
}

// TestScenarioS5Factorial mirrors spec.md scenario S5's second script.
func TestScenarioS5Factorial(t *testing.T) {
	i := NewInterp()
	evalSrc(t, i, "(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1)))))")
	assert.Equal(t, Int(720), evalSrc(t, i, "(fact 6)"))
}

func TestSetBang(t *testing.T) {
	i := NewInterp()
	evalSrc(t, i, "(define x 1)")
	evalSrc(t, i, "(set! x 42)")
	assert.Equal(t, Int(42), evalSrc(t, i, "x"))

	_, err := i.EvalString("(set! never-defined 1)")
	assert.Error(t, err)
}

func TestQuoteAndList(t *testing.T) {
	i := NewInterp()
	v := evalSrc(t, i, "'(1 2 3)")
	items, ok := listToSlice(v)
	require.True(t, ok)
	assert.Equal(t, []Value{Int(1), Int(2), Int(3)}, items)

	v2 := evalSrc(t, i, "(list 1 2 3)")
	assert.Equal(t, "(1 2 3)", v2.Repr())
}

func TestConsCarCdr(t *testing.T) {
	i := NewInterp()
	assert.Equal(t, Int(1), evalSrc(t, i, "(car (cons 1 2))"))
	assert.Equal(t, Int(2), evalSrc(t, i, "(cdr (cons 1 2))"))
}

func TestIfFalseyValues(t *testing.T) {
	i := NewInterp()
	assert.Equal(t, Int(2), evalSrc(t, i, "(if #f 1 2)"))
	assert.Equal(t, Int(2), evalSrc(t, i, "(if '() 1 2)"))
	assert.Equal(t, Int(1), evalSrc(t, i, "(if 0 1 2)")) // 0 is truthy per §4.9
}

func TestArityMismatch(t *testing.T) {
	i := NewInterp()
	evalSrc(t, i, "(define (f x y) (+ x y))")
	_, err := i.EvalString("(f 1)")
	assert.Error(t, err)
}

func TestUnboundSymbol(t *testing.T) {
	i := NewInterp()
	_, err := i.EvalString("never-bound")
	assert.Error(t, err)
}

func TestRecursionLimit(t *testing.T) {
	i := NewInterp()
	i.MaxDepth = 20
	evalSrc(t, i, "(define (loop n) (if (<= n 0) 0 (loop (- n 1))))")
	_, err := i.EvalString("(loop 1000)")
	assert.Error(t, err)
}

// TestGCStress covers §8 Property 8: with the threshold lowered to 1, a
// pure recursive program's result is unchanged.
func TestGCStress(t *testing.T) {
	i := NewInterp()
	i.Heap.SetThreshold(1)
	evalSrc(t, i, "(define (fib n) (if (<= n 1) n (+ (fib (- n 1)) (fib (- n 2)))))")
	assert.Equal(t, Int(55), evalSrc(t, i, "(fib 10)"))
	assert.Greater(t, i.Heap.LastSwept()+len(i.Heap.objects), 0)
}

func TestInterrupt(t *testing.T) {
	i := NewInterp()
	i.Interrupt()
	_, err := i.EvalString("(+ 1 2)")
	assert.Error(t, err)
	// The flag is one-shot: the next evaluation proceeds normally.
	assert.Equal(t, Int(3), evalSrc(t, i, "(+ 1 2)"))
}
