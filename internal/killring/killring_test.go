package killring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekugo/altre/internal/killring"
)

func TestPushAndYank(t *testing.T) {
	r := killring.New(killring.DefaultCapacity)
	r.Push("abc")
	r.Push("\n")

	text, ok := r.Yank()
	require.True(t, ok)
	assert.Equal(t, "\n", text)
}

func TestYankPopRotation(t *testing.T) {
	// Property 5: yank, N pops, then ring_size-N pops returns the initial
	// yanked content.
	r := killring.New(4)
	r.Push("one")
	r.Push("two")
	r.Push("three")

	initial, ok := r.Yank()
	require.True(t, ok)
	assert.Equal(t, "three", initial)

	const (
		ringSize = 3 // entries currently held
		n        = 1
	)
	var final string
	var ok2 bool
	for range n {
		final, ok2 = r.YankPop()
		require.True(t, ok2)
	}
	for range ringSize - n {
		final, ok2 = r.YankPop()
		require.True(t, ok2)
	}
	assert.Equal(t, initial, final)
}

func TestYankPopRequiresChain(t *testing.T) {
	r := killring.New(killring.DefaultCapacity)
	r.Push("abc")
	_, ok := r.YankPop()
	assert.False(t, ok, "yank-pop without a preceding yank must fail")
}

func TestPushBreaksChain(t *testing.T) {
	r := killring.New(killring.DefaultCapacity)
	r.Push("abc")
	r.Push("def")
	r.Yank()
	r.Push("ghi")
	_, ok := r.YankPop()
	assert.False(t, ok, "an intervening kill must end the yank chain")
}

func TestCapacityEviction(t *testing.T) {
	r := killring.New(2)
	r.Push("a")
	r.Push("b")
	r.Push("c")
	assert.Equal(t, 2, r.Len())
	head, _ := r.Head()
	assert.Equal(t, "c", head)
}
