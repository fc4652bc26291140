// Package editor implements the editor buffer: a gap-buffered text store
// plus point, optional mark, preferred visual column, and modification
// tracking, along with the navigation and editing operations that act on
// it.
package editor

import (
	"errors"

	"github.com/tekugo/altre/internal/gapbuffer"
)

// ErrNoMark is returned by operations that need an active mark when none
// has been set.
var ErrNoMark = errors.New("editor: no mark set")

// Buffer wraps a gap-buffered text store with the state an interactive
// editor needs on top of raw text: an optional mark (for the region), a
// preferred visual column for vertical motion, a source path, and a change
// token used to derive the modified flag without diffing content.
type Buffer struct {
	text *gapbuffer.GapBuffer

	mark    int
	hasMark bool

	preferredCol    int
	preferredColSet bool

	path    string
	hasPath bool

	changeToken uint64
	savedToken  uint64
}

// New creates an empty, unmodified buffer with no associated file.
func New() *Buffer {
	return &Buffer{text: gapbuffer.New()}
}

// NewFromText creates a buffer pre-populated with text and bound to path.
// The point starts at the beginning of the buffer and the buffer is
// considered unmodified (it mirrors what is on disk).
func NewFromText(path string, text string) *Buffer {
	b := &Buffer{
		text:    gapbuffer.NewFromString(text),
		path:    path,
		hasPath: path != "",
	}
	_ = b.text.MoveTo(0)
	b.savedToken = b.changeToken
	return b
}

// Point returns the current point as a byte offset on a UTF-8 character
// boundary.
func (b *Buffer) Point() int {
	return b.text.Point()
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.text.String()
}

// MoveTo repositions point to an explicit byte offset, for callers (the
// Lisp editor bridge's goto-char, or session restoration) that already
// hold a validated offset rather than reaching it through a navigation
// gesture.
func (b *Buffer) MoveTo(pos int) error {
	if err := b.text.MoveTo(pos); err != nil {
		return err
	}
	b.clearPreferredColumn()
	return nil
}

// ByteLen returns the buffer's content length in bytes.
func (b *Buffer) ByteLen() int {
	return b.text.ByteLen()
}

// Slice returns the text in byte range [from, to).
func (b *Buffer) Slice(from, to int) (string, error) {
	return b.text.Slice(from, to)
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return b.text.LineCount()
}

// LineColOfByte converts a byte offset to a 0-based (line, byte-column).
func (b *Buffer) LineColOfByte(off int) (line, col int, err error) {
	return b.text.LineColOfByte(off)
}

// ByteOfLineCol converts a 0-based (line, byte-column) to a byte offset.
func (b *Buffer) ByteOfLineCol(line, col int) (int, error) {
	return b.text.ByteOfLineCol(line, col)
}

// ByteOfLine returns the byte offset where line i begins.
func (b *Buffer) ByteOfLine(i int) (int, error) {
	return b.text.ByteOfLine(i)
}

// ---- Mark and region --------------------------------------------------

// SetMark sets the mark to the current point.
func (b *Buffer) SetMark() {
	b.mark = b.text.Point()
	b.hasMark = true
}

// SetMarkAt sets the mark to an explicit byte offset (used when restoring
// a mark after a cancelled operation, e.g. incremental search).
func (b *Buffer) SetMarkAt(pos int) {
	b.mark = pos
	b.hasMark = true
}

// ClearMark removes the mark.
func (b *Buffer) ClearMark() {
	b.hasMark = false
}

// Mark returns the mark's byte offset and whether a mark is set.
func (b *Buffer) Mark() (int, bool) {
	return b.mark, b.hasMark
}

// Region returns the half-open byte interval [min(point,mark),
// max(point,mark)), cloned defensively so the caller can't alias into
// buffer internals. ok is false if no mark is set.
func (b *Buffer) Region() (start, end int, ok bool) {
	if !b.hasMark {
		return 0, 0, false
	}
	p := b.text.Point()
	if p < b.mark {
		return p, b.mark, true
	}
	return b.mark, p, true
}

// ---- Modification tracking ---------------------------------------------

// Modified reports whether the buffer has changed since the last save.
func (b *Buffer) Modified() bool {
	return b.changeToken != b.savedToken
}

// ChangeToken returns the current change token (monotonically increasing
// on every mutation).
func (b *Buffer) ChangeToken() uint64 {
	return b.changeToken
}

// MarkSaved records the current change token as the last-saved one,
// clearing the modified flag.
func (b *Buffer) MarkSaved() {
	b.savedToken = b.changeToken
}

func (b *Buffer) touch() {
	b.changeToken++
}

// ---- Path ----------------------------------------------------------------

// Path returns the buffer's associated file path, if any.
func (b *Buffer) Path() (string, bool) {
	return b.path, b.hasPath
}

// SetPath rebinds the buffer to a new path (used by save-as).
func (b *Buffer) SetPath(path string) {
	b.path = path
	b.hasPath = path != ""
}

// ---- Preferred column -----------------------------------------------------

// clearPreferredColumn is called by every horizontal motion and edit, per
// §4.2: "Set whenever horizontal motion occurs."
func (b *Buffer) clearPreferredColumn() {
	b.preferredColSet = false
}
