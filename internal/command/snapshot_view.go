package command

import "strings"

// Snapshot produces the read-only per-frame view a front end renders
// (§6, §9): the visible window of lines around point, the cursor's
// position in both coordinate systems, and the minibuffer/status lines.
// rows is the height of the text viewport in lines; the caller (the TUI
// event loop) recomputes it on every resize.
func (p *Processor) Snapshot(rows int) Snapshot {
	b := p.Buffer()
	text := b.Text()
	lines := strings.Split(text, "\n")

	line, col, _ := b.LineColOfByte(b.Point())

	origin := 0
	if p.lastCommand == "recenter-top-bottom" && p.scrollPin != nil {
		origin = *p.scrollPin
	} else if rows > 0 {
		origin = line - rows/2
	}
	if rows > 0 {
		if origin < 0 {
			origin = 0
		}
		if origin > len(lines)-rows {
			origin = len(lines) - rows
		}
		if origin < 0 {
			origin = 0
		}
	}

	end := origin + rows
	if rows <= 0 || end > len(lines) {
		end = len(lines)
	}

	label := p.BufferName()
	if path, ok := b.Path(); ok && path != "" {
		label = path
	}

	return Snapshot{
		Lines: lines[origin:end],
		Cursor: CursorSnapshot{
			Byte: b.Point(),
			Line: line + 1,
			Col:  col,
		},
		ViewportOrigin: origin,
		Minibuffer: MinibufferSnapshot{
			Mode:    p.Mini.Mode().String(),
			Prompt:  p.Mini.Prompt(),
			Input:   p.Mini.Input(),
			Cursor:  p.Mini.Cursor(),
			Message: p.Mini.Message(),
		},
		Status: StatusSnapshot{
			Label:      label,
			Modified:   b.Modified(),
			Line:       line + 1,
			Column:     col,
			TotalLines: len(lines),
		},
	}
}
