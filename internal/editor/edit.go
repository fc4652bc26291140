package editor

import "github.com/tekugo/altre/internal/gapbuffer"

// InsertChar inserts a single character at point and advances point past
// it.
func (b *Buffer) InsertChar(r rune) error {
	if err := b.text.InsertChar(r); err != nil {
		return err
	}
	b.touch()
	b.clearPreferredColumn()
	return nil
}

// InsertString inserts s at point and advances point past it.
func (b *Buffer) InsertString(s string) error {
	if s == "" {
		return nil
	}
	if err := b.text.InsertString(s); err != nil {
		return err
	}
	b.touch()
	b.clearPreferredColumn()
	return nil
}

// InsertStringAt moves point to pos and inserts s there, leaving point
// just past the inserted text. Used by yank, which inserts at the current
// point (pos is normally just Point(), but is accepted explicitly so
// callers that already know the offset don't pay for a redundant lookup).
func (b *Buffer) InsertStringAt(pos int, s string) (from, to int, err error) {
	if err := b.text.MoveTo(pos); err != nil {
		return 0, 0, err
	}
	if err := b.InsertString(s); err != nil {
		return 0, 0, err
	}
	return pos, pos + len(s), nil
}

// DeleteCharBack deletes the character immediately before point
// (backspace). It returns the deleted text, or "" at the start of the
// buffer.
func (b *Buffer) DeleteCharBack() (string, error) {
	p := b.text.Point()
	_, size, err := b.text.RuneBefore(p)
	if err != nil {
		return "", nil // start of buffer: no-op, not an error
	}
	s, err := b.text.DeleteBack(size)
	if err != nil {
		return "", err
	}
	b.touch()
	b.clearPreferredColumn()
	return s, nil
}

// DeleteCharForward deletes the character at point (delete-forward). It
// returns the deleted text, or "" at the end of the buffer.
func (b *Buffer) DeleteCharForward() (string, error) {
	p := b.text.Point()
	_, size, err := b.text.RuneAt(p)
	if err != nil {
		return "", nil // end of buffer: no-op, not an error
	}
	s, err := b.text.DeleteForward(size)
	if err != nil {
		return "", err
	}
	b.touch()
	b.clearPreferredColumn()
	return s, nil
}

// DeleteRange removes the half-open byte range [from, to), moving point
// to from. It returns the removed text.
func (b *Buffer) DeleteRange(from, to int) (string, error) {
	if from == to {
		return "", nil
	}
	if err := b.text.MoveTo(to); err != nil {
		return "", err
	}
	s, err := b.text.DeleteBack(to - from)
	if err != nil {
		return "", err
	}
	b.touch()
	b.clearPreferredColumn()
	if b.hasMark && b.mark > from {
		if b.mark < to {
			b.mark = from
		} else {
			b.mark -= to - from
		}
	}
	return s, nil
}

// KillLineSpan returns the half-open byte span that Ctrl-k would remove
// from the current line: everything from point to end of line's content,
// or just the line's trailing newline if point is already at the content
// end (so repeated kills join lines one at a time, as in scenario S2).
func (b *Buffer) KillLineSpan() (from, to int) {
	p := b.text.Point()
	line, _, _ := b.text.LineColOfByte(p)
	contentEnd := b.lineContentEnd(line)

	if p < contentEnd {
		return p, contentEnd
	}
	if next, err := b.text.ByteOfLine(line + 1); err == nil {
		return p, next
	}
	return p, p
}

// RegionSpan returns the current region, cloning the bounds defensively
// per §4.2 ("operations read it defensively to avoid aliasing during
// edits").
func (b *Buffer) RegionSpan() (from, to int, err error) {
	start, end, ok := b.Region()
	if !ok {
		return 0, 0, ErrNoMark
	}
	return start, end, nil
}

// ErrGapBuffer re-exports the gap buffer's sentinel errors so callers of
// this package don't need to import gapbuffer directly just to compare
// errors.
var (
	ErrInvalidCharBoundary = gapbuffer.ErrInvalidCharBoundary
	ErrOutOfRange          = gapbuffer.ErrOutOfRange
)
