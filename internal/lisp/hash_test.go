package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSetRefRemove(t *testing.T) {
	i := NewInterp()
	evalSrc(t, i, "(define t (make-hash))")

	assert.Equal(t, Bool(true), evalSrc(t, i, "(hash? t)"))
	assert.Equal(t, Bool(false), evalSrc(t, i, "(hash? 5)"))

	evalSrc(t, i, "(hash-set! t 'a 1)")
	evalSrc(t, i, "(hash-set! t 'b 2)")
	assert.Equal(t, Int(1), evalSrc(t, i, "(hash-ref t 'a)"))
	assert.Equal(t, Int(2), evalSrc(t, i, "(hash-ref t 'b)"))

	assert.Equal(t, Int(99), evalSrc(t, i, "(hash-ref t 'missing 99)"))
	assert.Equal(t, Nil, evalSrc(t, i, "(hash-ref t 'missing)"))

	assert.Equal(t, Bool(true), evalSrc(t, i, "(hash-remove! t 'a)"))
	assert.Equal(t, Bool(false), evalSrc(t, i, "(hash-remove! t 'a)"))
	assert.Equal(t, Nil, evalSrc(t, i, "(hash-ref t 'a)"))
}

func TestHashKeys(t *testing.T) {
	i := NewInterp()
	evalSrc(t, i, "(define t (make-hash))")
	evalSrc(t, i, "(hash-set! t 'x 1)")
	evalSrc(t, i, "(hash-set! t 'y 2)")

	v := evalSrc(t, i, "(hash-keys t)")
	items, ok := listToSlice(v)
	require.True(t, ok)
	assert.Len(t, items, 2)

	names := map[string]bool{}
	for _, it := range items {
		names[it.Repr()] = true
	}
	assert.True(t, names["x"])
	assert.True(t, names["y"])
}

func TestHashSetChains(t *testing.T) {
	i := NewInterp()
	v := evalSrc(t, i, "(hash-set! (make-hash) 'a 1)")
	assert.Equal(t, "hash", v.Kind())
}

// TestHashSurvivesCollection checks a hash reachable only through a
// global binding stays live across a forced collection, and that a
// hash with no remaining reference gets swept, mirroring the existing
// heap GC tests' style for cons/vector/closure.
func TestHashSurvivesCollection(t *testing.T) {
	i := NewInterp()
	i.Heap.SetThreshold(1)

	evalSrc(t, i, "(define kept (make-hash))")
	evalSrc(t, i, "(hash-set! kept 'k 1)")
	i.Heap.Collect()

	assert.Equal(t, Int(1), evalSrc(t, i, "(hash-ref kept 'k)"))

	evalSrc(t, i, "(define kept 0)") // drop the only reference to the hash
	i.Heap.Collect()
	assert.True(t, i.Heap.LastSwept() >= 1)
}
