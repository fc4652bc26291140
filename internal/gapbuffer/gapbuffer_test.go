package gapbuffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekugo/altre/internal/gapbuffer"
)

func TestInsertAndString(t *testing.T) {
	g := gapbuffer.New()
	require.NoError(t, g.InsertString("hello"))
	assert.Equal(t, "hello", g.String())
	assert.Equal(t, 5, g.ByteLen())
	assert.Equal(t, 5, g.Point())
}

func TestInsertDeleteIdentity(t *testing.T) {
	// Property 2: insert then delete the same byte length restores state.
	g := gapbuffer.NewFromString("abcdef")
	require.NoError(t, g.MoveTo(3))
	before := g.String()
	beforePoint := g.Point()

	require.NoError(t, g.InsertString("XYZ"))
	_, err := g.DeleteBack(3)
	require.NoError(t, err)

	assert.Equal(t, before, g.String())
	assert.Equal(t, beforePoint, g.Point())
}

func TestUnicodeRoundTrip(t *testing.T) {
	text := "héllo wörld 日本語"
	g := gapbuffer.NewFromString(text)
	require.NoError(t, g.MoveTo(0))
	assert.Equal(t, text, g.String())

	n := g.CharLen()
	assert.Equal(t, len([]rune(text)), n)
}

func TestInvalidCharBoundary(t *testing.T) {
	g := gapbuffer.NewFromString("héllo") // 'é' is 2 bytes
	// byte offset 2 is mid-character (h=1 byte, é starts at 1, is 2 bytes -> boundary at 1 and 3)
	err := g.MoveTo(2)
	assert.ErrorIs(t, err, gapbuffer.ErrInvalidCharBoundary)
}

func TestOutOfRange(t *testing.T) {
	g := gapbuffer.NewFromString("abc")
	err := g.MoveTo(100)
	assert.ErrorIs(t, err, gapbuffer.ErrOutOfRange)
}

func TestSlice(t *testing.T) {
	g := gapbuffer.NewFromString("hello world")
	require.NoError(t, g.MoveTo(5))
	s, err := g.Slice(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	s, err = g.Slice(6, 11)
	require.NoError(t, err)
	assert.Equal(t, "world", s)
}

func TestDeleteForward(t *testing.T) {
	g := gapbuffer.NewFromString("hello world")
	require.NoError(t, g.MoveTo(5))
	deleted, err := g.DeleteForward(6)
	require.NoError(t, err)
	assert.Equal(t, " world", deleted)
	assert.Equal(t, "hello", g.String())
}

func TestLineCountAndByteOfLine(t *testing.T) {
	g := gapbuffer.NewFromString("abc\ndef\nghi")
	assert.Equal(t, 3, g.LineCount())

	off, err := g.ByteOfLine(0)
	require.NoError(t, err)
	assert.Equal(t, 0, off)

	off, err = g.ByteOfLine(1)
	require.NoError(t, err)
	assert.Equal(t, 4, off)

	off, err = g.ByteOfLine(2)
	require.NoError(t, err)
	assert.Equal(t, 8, off)

	_, err = g.ByteOfLine(3)
	assert.ErrorIs(t, err, gapbuffer.ErrOutOfRange)
}

func TestLineColRoundTrip(t *testing.T) {
	// Property 1: byte_of_line_col(line_col_of_byte(b)) == b for every
	// valid byte offset b on a char boundary.
	text := "line one\nline two\nline three"
	g := gapbuffer.NewFromString(text)

	for b := 0; b <= len(text); b++ {
		line, col, err := g.LineColOfByte(b)
		require.NoError(t, err)
		back, err := g.ByteOfLineCol(line, col)
		require.NoError(t, err)
		assert.Equal(t, b, back, "offset %d -> (%d,%d) -> %d", b, line, col, back)
	}
}

func TestLineCacheInvalidationAcrossEdits(t *testing.T) {
	g := gapbuffer.NewFromString("aaa\nbbb\nccc")
	assert.Equal(t, 3, g.LineCount())

	// Insert a newline in the middle line; line count must reflect it on
	// the next query even though the cache was already warmed above.
	require.NoError(t, g.MoveTo(5)) // inside "bbb"
	require.NoError(t, g.InsertString("\n"))
	assert.Equal(t, 4, g.LineCount())

	off, err := g.ByteOfLine(1)
	require.NoError(t, err)
	assert.Equal(t, 4, off)
}

func TestGrowBeyondInitialCapacity(t *testing.T) {
	g := gapbuffer.NewCap(2)
	for range 100 {
		require.NoError(t, g.InsertString("x"))
	}
	assert.Equal(t, 100, g.ByteLen())
}

func TestMoveGapBothDirections(t *testing.T) {
	g := gapbuffer.NewFromString("0123456789")
	require.NoError(t, g.MoveTo(0))
	require.NoError(t, g.MoveTo(10))
	require.NoError(t, g.MoveTo(4))
	require.NoError(t, g.InsertString("X"))
	assert.Equal(t, "0123X456789", g.String())
}
