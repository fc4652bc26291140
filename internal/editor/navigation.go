package editor

// MoveCharForward moves point one character forward, stopping at the end
// of the buffer.
func (b *Buffer) MoveCharForward() {
	p := b.text.Point()
	_, size, err := b.text.RuneAt(p)
	if err != nil {
		return
	}
	_ = b.text.MoveTo(p + size)
	b.clearPreferredColumn()
}

// MoveCharBack moves point one character backward, stopping at the start
// of the buffer.
func (b *Buffer) MoveCharBack() {
	p := b.text.Point()
	_, size, err := b.text.RuneBefore(p)
	if err != nil {
		return
	}
	_ = b.text.MoveTo(p - size)
	b.clearPreferredColumn()
}

// MoveLineStart moves point to the beginning of the current line.
func (b *Buffer) MoveLineStart() {
	line, _, _ := b.text.LineColOfByte(b.text.Point())
	start, _ := b.text.ByteOfLine(line)
	_ = b.text.MoveTo(start)
	b.clearPreferredColumn()
}

// MoveLineEnd moves point to the end of the current line (before its
// newline, if any).
func (b *Buffer) MoveLineEnd() {
	line, _, _ := b.text.LineColOfByte(b.text.Point())
	end := b.lineContentEnd(line)
	_ = b.text.MoveTo(end)
	b.clearPreferredColumn()
}

// MoveBufferStart moves point to byte offset 0.
func (b *Buffer) MoveBufferStart() {
	_ = b.text.MoveTo(0)
	b.clearPreferredColumn()
}

// MoveBufferEnd moves point to the end of the buffer.
func (b *Buffer) MoveBufferEnd() {
	_ = b.text.MoveTo(b.text.ByteLen())
	b.clearPreferredColumn()
}

// rememberColumn captures the current visual column as the preferred one,
// unless a preferred column is already active (set by an earlier vertical
// motion in the same chain).
func (b *Buffer) rememberColumn() int {
	if !b.preferredColSet {
		line, byteCol, _ := b.text.LineColOfByte(b.text.Point())
		lineStart, _ := b.text.ByteOfLine(line)
		lineText, _ := b.text.Slice(lineStart, lineStart+byteCol)
		b.preferredCol = visualColumn(lineText, len(lineText))
		b.preferredColSet = true
	}
	return b.preferredCol
}

// MoveLineUp moves point up one line, restoring the preferred visual
// column (clamped to the target line's length without resetting the
// preference — §4.2).
func (b *Buffer) MoveLineUp() {
	line, _, _ := b.text.LineColOfByte(b.text.Point())
	if line == 0 {
		return
	}
	target := b.rememberColumn()
	b.moveToVisualColumn(line-1, target)
}

// MoveLineDown moves point down one line, restoring the preferred visual
// column.
func (b *Buffer) MoveLineDown() {
	line, _, _ := b.text.LineColOfByte(b.text.Point())
	if line >= b.text.LineCount()-1 {
		return
	}
	target := b.rememberColumn()
	b.moveToVisualColumn(line+1, target)
}

func (b *Buffer) moveToVisualColumn(line int, visualCol int) {
	start, _ := b.text.ByteOfLine(line)
	end := b.lineContentEnd(line)
	lineText, _ := b.text.Slice(start, end)
	byteCol := byteColumnForVisual(lineText, visualCol)
	_ = b.text.MoveTo(start + byteCol)
}

// PageUp moves point up by rows lines, preserving the preferred column.
func (b *Buffer) PageUp(rows int) {
	line, _, _ := b.text.LineColOfByte(b.text.Point())
	target := b.rememberColumn()
	newLine := line - rows
	if newLine < 0 {
		newLine = 0
	}
	b.moveToVisualColumn(newLine, target)
}

// PageDown moves point down by rows lines, preserving the preferred
// column.
func (b *Buffer) PageDown(rows int) {
	line, _, _ := b.text.LineColOfByte(b.text.Point())
	target := b.rememberColumn()
	newLine := line + rows
	if max := b.text.LineCount() - 1; newLine > max {
		newLine = max
	}
	b.moveToVisualColumn(newLine, target)
}

// GotoLine moves point to the start of the given 1-based line number,
// clamping to the document bounds.
func (b *Buffer) GotoLine(n int) {
	line := n - 1
	if line < 0 {
		line = 0
	}
	if max := b.text.LineCount() - 1; line > max {
		line = max
	}
	start, _ := b.text.ByteOfLine(line)
	_ = b.text.MoveTo(start)
	b.clearPreferredColumn()
}

// lineContentEnd returns the byte offset of the end of line's content,
// i.e. just before its terminating newline (or the buffer end for the
// last line).
func (b *Buffer) lineContentEnd(line int) int {
	if next, err := b.text.ByteOfLine(line + 1); err == nil {
		// next is the byte right after the newline that ends `line`.
		return next - 1
	}
	return b.text.ByteLen()
}
