package editor

import "unicode"

// isWordRune classifies a rune using the "Unicode simple word classes"
// named in §4.2: alphanumeric vs. non-alphanumeric. This defines M-f/M-b
// and word-wise kill.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// MoveWordForward moves point to the end of the next word, skipping any
// leading non-word runes first.
func (b *Buffer) MoveWordForward() {
	p := b.wordForwardTarget(b.text.Point())
	_ = b.text.MoveTo(p)
	b.clearPreferredColumn()
}

// MoveWordBack moves point to the start of the previous word, skipping
// any trailing non-word runes first.
func (b *Buffer) MoveWordBack() {
	p := b.wordBackTarget(b.text.Point())
	_ = b.text.MoveTo(p)
	b.clearPreferredColumn()
}

func (b *Buffer) wordForwardTarget(pos int) int {
	// Skip non-word runes.
	for {
		r, size, err := b.text.RuneAt(pos)
		if err != nil {
			return pos
		}
		if isWordRune(r) {
			break
		}
		pos += size
	}
	// Consume word runes.
	for {
		r, size, err := b.text.RuneAt(pos)
		if err != nil || !isWordRune(r) {
			return pos
		}
		pos += size
	}
}

func (b *Buffer) wordBackTarget(pos int) int {
	for {
		r, size, err := b.text.RuneBefore(pos)
		if err != nil {
			return pos
		}
		if isWordRune(r) {
			break
		}
		pos -= size
	}
	for {
		r, size, err := b.text.RuneBefore(pos)
		if err != nil || !isWordRune(r) {
			return pos
		}
		pos -= size
	}
}

// WordSpanForward returns the half-open byte span that a forward word kill
// (M-d) would remove, without mutating the buffer.
func (b *Buffer) WordSpanForward() (from, to int) {
	p := b.text.Point()
	return p, b.wordForwardTarget(p)
}

// WordSpanBack returns the half-open byte span that a backward word kill
// (M-Backspace) would remove, without mutating the buffer.
func (b *Buffer) WordSpanBack() (from, to int) {
	p := b.text.Point()
	return b.wordBackTarget(p), p
}
