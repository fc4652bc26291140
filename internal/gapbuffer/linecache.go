package gapbuffer

// lineCache holds the ordered byte offsets of line starts for a GapBuffer.
// It is rebuilt lazily: a mutation invalidates every entry from the
// affected line onward, and a later query re-scans forward from the last
// entry still known to be valid.
type lineCache struct {
	starts []int // starts[0] == 0 always, once built
	valid  int   // number of trustworthy entries in starts
}

func newLineCache() lineCache {
	return lineCache{starts: []int{0}, valid: 1}
}

// invalidateFrom drops every cached entry from line index onward. Line 0's
// start (always 0) can never be invalidated.
func (c *lineCache) invalidateFrom(line int) {
	if line < 1 {
		line = 1
	}
	if line < c.valid {
		c.valid = line
	}
}

// extendTo grows the cache, scanning g's text, until it has at least
// line+1 valid entries or the buffer is exhausted. It returns the number
// of lines that actually exist (>=1).
func (c *lineCache) extendTo(g *GapBuffer, line int) int {
	n := g.ByteLen()
	for c.valid <= line {
		last := c.starts[c.valid-1]
		next := -1
		for pos := last; pos < n; pos++ {
			if g.byteAt(pos) == '\n' {
				next = pos + 1
				break
			}
		}
		if next == -1 {
			// No further newline: no more lines to cache.
			return c.valid
		}
		if c.valid < len(c.starts) {
			c.starts[c.valid] = next
		} else {
			c.starts = append(c.starts, next)
		}
		c.valid++
	}
	return c.valid
}

// lineCount scans the remainder of the buffer (if needed) and returns the
// total number of lines (always >= 1).
func (c *lineCache) lineCount(g *GapBuffer) int {
	n := g.ByteLen()
	for {
		before := c.valid
		c.extendTo(g, c.valid)
		if c.valid == before {
			break
		}
	}
	// starts[c.valid-1] is the last known line start; if it equals n and
	// n>0 and the buffer ends in a newline, there's a trailing empty line,
	// already represented because extendTo would have appended it only if
	// a '\n' existed at n-1. Nothing further to do: valid count is the
	// line count.
	_ = n
	return c.valid
}

// byteOfLine returns the byte offset where line i (0-based) starts.
func (c *lineCache) byteOfLine(g *GapBuffer, i int) (int, error) {
	if i < 0 {
		return 0, ErrOutOfRange
	}
	total := c.lineCount(g)
	if i >= total {
		return 0, ErrOutOfRange
	}
	c.extendTo(g, i)
	return c.starts[i], nil
}

// lineColOf returns the 0-based (line, column) of byte offset b. Column is
// a byte column (the number of bytes since the line start); callers
// wanting visual columns apply tab/grapheme expansion on top of this.
func (c *lineCache) lineColOf(g *GapBuffer, b int) (line int, col int, err error) {
	n := g.ByteLen()
	if b < 0 || b > n {
		return 0, 0, ErrOutOfRange
	}

	// Extend until we find the line containing b, or exhaust the buffer.
	for {
		last := c.valid - 1
		if b < c.starts[last] {
			// b is before the last cached start, so its line is already
			// in the cached prefix (the usual case once the cache is
			// warm): find it by the binary search below.
			break
		}
		// Is b within [starts[last], nextLineStart)?
		before := c.valid
		c.extendTo(g, c.valid)
		if c.valid == before {
			// No more lines cached; b is on the last line.
			return last, b - c.starts[last], nil
		}
		if b < c.starts[c.valid-1] {
			return c.valid - 2, b - c.starts[c.valid-2], nil
		}
	}

	// Fallback: binary search the cached prefix.
	lo, hi := 0, c.valid-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if c.starts[mid] <= b {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, b - c.starts[lo], nil
}

// byteOfLineCol converts a (line, column) pair, where column is a byte
// column, back into an absolute byte offset, clamping column to the line's
// actual length.
func (c *lineCache) byteOfLineCol(g *GapBuffer, line, col int) (int, error) {
	start, err := c.byteOfLine(g, line)
	if err != nil {
		return 0, err
	}
	n := g.ByteLen()
	end := n
	if next, err := c.byteOfLine(g, line+1); err == nil {
		end = next
		// Exclude the newline terminator from the line's own span.
		if end > start && g.byteAt(end-1) == '\n' {
			end--
		}
	}
	if start+col > end {
		col = end - start
	}
	return start + col, nil
}

// lineColAtPointUnsafe is a convenience wrapper used internally for
// invalidation bookkeeping; it tolerates a stale cache since it is only
// used to decide how much of the cache to drop, never to answer a public
// query.
func (g *GapBuffer) lineColAtPointUnsafe() (line, col int) {
	line, col, _ = g.lines.lineColOf(g, g.start)
	return
}

func (g *GapBuffer) lineColOfUnsafe(pos int) (line, col int) {
	line, col, _ = g.lines.lineColOf(g, pos)
	return
}

// LineCount returns the number of lines in the buffer (always >= 1).
func (g *GapBuffer) LineCount() int {
	return g.lines.lineCount(g)
}

// ByteOfLine returns the byte offset where line i (0-based) begins.
func (g *GapBuffer) ByteOfLine(i int) (int, error) {
	return g.lines.byteOfLine(g, i)
}

// LineColOfByte converts a byte offset into a 0-based (line, byte-column)
// pair.
func (g *GapBuffer) LineColOfByte(b int) (line int, col int, err error) {
	return g.lines.lineColOf(g, b)
}

// ByteOfLineCol converts a 0-based (line, byte-column) pair into an
// absolute byte offset, clamping the column to the end of the line if it
// runs past it (so moving to a short line's column never errors).
func (g *GapBuffer) ByteOfLineCol(line, col int) (int, error) {
	return g.lines.byteOfLineCol(g, line, col)
}
