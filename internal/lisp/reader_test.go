package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAtoms(t *testing.T) {
	v, err := ReadOne("42")
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)

	v, err = ReadOne("3.5")
	require.NoError(t, err)
	assert.Equal(t, Float(3.5), v)

	v, err = ReadOne("#t")
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = ReadOne("#f")
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	v, err = ReadOne("foo-bar?")
	require.NoError(t, err)
	assert.Equal(t, Symbol("foo-bar?"), v)
}

func TestReadString(t *testing.T) {
	v, err := ReadOne(`"a\nb\"c"`)
	require.NoError(t, err)
	assert.Equal(t, String("a\nb\"c"), v)
}

func TestReadList(t *testing.T) {
	v, err := ReadOne("(+ 1 (* 2 3))")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 (* 2 3))", v.Repr())
}

func TestReadQuote(t *testing.T) {
	v, err := ReadOne("'(1 2)")
	require.NoError(t, err)
	assert.Equal(t, "(quote (1 2))", v.Repr())
}

func TestReadDottedPair(t *testing.T) {
	v, err := ReadOne("(1 . 2)")
	require.NoError(t, err)
	c, ok := v.(*Cons)
	require.True(t, ok)
	assert.Equal(t, Int(1), c.Car)
	assert.Equal(t, Int(2), c.Cdr)
}

func TestReadUnterminatedListReportsPosition(t *testing.T) {
	_, err := ReadOne("(+ 1 2")
	require.Error(t, err)
	rerr, ok := err.(*ReadError)
	require.True(t, ok)
	assert.Equal(t, 1, rerr.Pos.Line)
}

func TestReadTrailingInputRejected(t *testing.T) {
	_, err := ReadOne("1 2")
	assert.Error(t, err)
}

func TestReadAllMultipleForms(t *testing.T) {
	forms, err := ReadAll("(define x 1) (+ x 1)")
	require.NoError(t, err)
	require.Len(t, forms, 2)
}

func TestReadComment(t *testing.T) {
	v, err := ReadOne("; a comment\n42")
	require.NoError(t, err)
	assert.Equal(t, Int(42), v)
}
