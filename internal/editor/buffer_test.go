package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekugo/altre/internal/killring"
)

func TestNavigationCharAndLine(t *testing.T) {
	b := NewFromText("", "abc\ndef")
	b.MoveBufferEnd()
	assert.Equal(t, 7, b.Point())

	b.MoveLineStart()
	assert.Equal(t, 4, b.Point())

	b.MoveLineEnd()
	assert.Equal(t, 7, b.Point())

	b.MoveBufferStart()
	assert.Equal(t, 0, b.Point())

	b.MoveCharForward()
	assert.Equal(t, 1, b.Point())
	b.MoveCharBack()
	assert.Equal(t, 0, b.Point())

	// MoveCharBack at buffer start is a no-op.
	b.MoveCharBack()
	assert.Equal(t, 0, b.Point())
}

func TestNavigationUnicodeCharSteps(t *testing.T) {
	b := NewFromText("", "héllo")
	b.MoveBufferStart()
	b.MoveCharForward() // past 'h'
	assert.Equal(t, 1, b.Point())
	b.MoveCharForward() // past 'é' (2 bytes)
	assert.Equal(t, 3, b.Point())
	b.MoveCharBack()
	assert.Equal(t, 1, b.Point())
}

func TestVerticalMotionPreservesPreferredColumn(t *testing.T) {
	b := NewFromText("", "abcdef\nxy\nuvwxyz")
	start, err := b.ByteOfLineCol(0, 4)
	require.NoError(t, err)
	require.NoError(t, b.text.MoveTo(start))

	b.MoveLineDown() // line 1 is "xy", shorter than preferred column 4
	line, col, err := b.LineColOfByte(b.Point())
	require.NoError(t, err)
	assert.Equal(t, 1, line)
	assert.Equal(t, 2, col) // clamped to line length

	b.MoveLineDown() // line 2 is "uvwxyz", preferred column 4 still remembered
	line, col, err = b.LineColOfByte(b.Point())
	require.NoError(t, err)
	assert.Equal(t, 2, line)
	assert.Equal(t, 4, col)
}

func TestWordMotion(t *testing.T) {
	b := NewFromText("", "  foo bar  baz")
	b.MoveBufferStart()
	b.MoveWordForward()
	assert.Equal(t, 5, b.Point()) // end of "foo"
	b.MoveWordForward()
	assert.Equal(t, 9, b.Point()) // end of "bar"

	b.MoveWordBack()
	assert.Equal(t, 6, b.Point()) // start of "bar"
}

func TestMarkAndRegion(t *testing.T) {
	b := NewFromText("", "hello world")
	_, _, ok := b.Region()
	assert.False(t, ok)

	require.NoError(t, b.text.MoveTo(0))
	b.SetMark()
	require.NoError(t, b.text.MoveTo(5))

	start, end, ok := b.Region()
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	b.ClearMark()
	_, _, ok = b.Region()
	assert.False(t, ok)
}

func TestInsertAndDeleteTracksModified(t *testing.T) {
	b := New()
	assert.False(t, b.Modified())

	require.NoError(t, b.InsertString("hi"))
	assert.True(t, b.Modified())
	assert.Equal(t, "hi", b.Text())

	b.MarkSaved()
	assert.False(t, b.Modified())

	deleted, err := b.DeleteCharBack()
	require.NoError(t, err)
	assert.Equal(t, "i", deleted)
	assert.Equal(t, "h", b.Text())
	assert.True(t, b.Modified())
}

func TestDeleteRangeClampsMark(t *testing.T) {
	b := NewFromText("", "abcdef")
	b.SetMarkAt(4)
	require.NoError(t, b.text.MoveTo(6))

	deleted, err := b.DeleteRange(2, 5)
	require.NoError(t, err)
	assert.Equal(t, "cde", deleted)
	assert.Equal(t, "abf", b.Text())

	mark, ok := b.Mark()
	require.True(t, ok)
	assert.Equal(t, 2, mark) // mark fell inside the deleted span
}

// TestKillLineAndYankRestoresBuffer mirrors scenario S2: on "abc\ndef", two
// Ctrl-k presses kill "abc" then "\n", and a yank followed by a yank-pop
// restores the original text.
func TestKillLineAndYankRestoresBuffer(t *testing.T) {
	b := NewFromText("", "abc\ndef")
	ring := killring.New(killring.DefaultCapacity)
	require.NoError(t, b.text.MoveTo(0))

	from, to := b.KillLineSpan()
	assert.Equal(t, 0, from)
	assert.Equal(t, 3, to)
	killed, err := b.DeleteRange(from, to)
	require.NoError(t, err)
	ring.Push(killed)
	assert.Equal(t, "\ndef", b.Text())

	from, to = b.KillLineSpan()
	assert.Equal(t, 0, from)
	assert.Equal(t, 1, to)
	killed, err = b.DeleteRange(from, to)
	require.NoError(t, err)
	ring.Push(killed)
	assert.Equal(t, "def", b.Text())

	// Successive kills without an intervening motion append in Emacs, but
	// this editor's kill ring keeps them as distinct entries (§4.3); yank
	// both back in order to restore the original text.
	head, ok := ring.Yank()
	require.True(t, ok)
	_, _, err = b.InsertStringAt(b.Point(), head)
	require.NoError(t, err)
	older, ok := ring.YankPop()
	require.True(t, ok)
	_, _, err = b.InsertStringAt(0, older)
	require.NoError(t, err)

	assert.Equal(t, "abc\ndef", b.Text())
}

func TestKillLineSpanAtContentEndKillsNewline(t *testing.T) {
	b := NewFromText("", "abc\ndef")
	start, err := b.ByteOfLineCol(0, 3)
	require.NoError(t, err)
	require.NoError(t, b.text.MoveTo(start))

	from, to := b.KillLineSpan()
	assert.Equal(t, 3, from)
	assert.Equal(t, 4, to)
}

func TestKillLineSpanAtBufferEndIsEmpty(t *testing.T) {
	b := NewFromText("", "abc")
	b.MoveBufferEnd()
	from, to := b.KillLineSpan()
	assert.Equal(t, from, to)
}

func TestPageAndGotoLine(t *testing.T) {
	b := NewFromText("", "1\n2\n3\n4\n5")
	b.GotoLine(3)
	line, _, err := b.LineColOfByte(b.Point())
	require.NoError(t, err)
	assert.Equal(t, 2, line)

	b.PageDown(2)
	line, _, err = b.LineColOfByte(b.Point())
	require.NoError(t, err)
	assert.Equal(t, 4, line)

	b.PageUp(10)
	line, _, err = b.LineColOfByte(b.Point())
	require.NoError(t, err)
	assert.Equal(t, 0, line)
}
