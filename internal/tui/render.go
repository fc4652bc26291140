package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/tekugo/altre/internal/command"
)

var (
	styleText      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleMinibuf   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	styleEchoError = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
)

// render draws one Snapshot to the screen: the text viewport, a status
// line naming the buffer and cursor position, and a minibuffer/echo line
// at the bottom, mirroring the teacher's ui.go Draw pipeline (render
// layers, then position the cursor, then screen.Show) scaled down to
// Altre's fixed three-region layout instead of an arbitrary widget tree.
func render(screen tcell.Screen, snap command.Snapshot, echo echoMessage) {
	screen.Clear()
	width, height := screen.Size()
	if height < 2 {
		screen.Show()
		return
	}

	textRows := height - 2
	for row := 0; row < textRows && row < len(snap.Lines); row++ {
		drawText(screen, 0, row, snap.Lines[row], width, styleText)
	}

	status := fmt.Sprintf(" %s%s  L%d:C%d  (%d lines)",
		snap.Status.Label, modifiedMark(snap.Status.Modified),
		snap.Status.Line, snap.Status.Column, snap.Status.TotalLines)
	drawText(screen, 0, textRows, status, width, styleStatus)

	drawMinibufferLine(screen, height-1, width, snap.Minibuffer, echo)

	cx, cy := cursorScreenPos(snap, textRows, width)
	if cx >= 0 {
		screen.ShowCursor(cx, cy)
	} else {
		screen.HideCursor()
	}

	screen.Show()
}

func modifiedMark(modified bool) string {
	if modified {
		return " *"
	}
	return ""
}

// cursorScreenPos places the terminal cursor either in the minibuffer
// (while a session or search is active) or in the text viewport.
func cursorScreenPos(snap command.Snapshot, textRows, width int) (int, int) {
	if snap.Minibuffer.Mode != "Inactive" {
		col := len([]rune(snap.Minibuffer.Prompt)) + snap.Minibuffer.Cursor
		if col >= width {
			col = width - 1
		}
		return col, textRows + 1
	}
	row := snap.Cursor.Line - 1 - snap.ViewportOrigin
	if row < 0 || row >= textRows {
		return -1, -1
	}
	col := snap.Cursor.Col
	if col >= width {
		col = width - 1
	}
	return col, row
}

func drawMinibufferLine(screen tcell.Screen, row, width int, mb command.MinibufferSnapshot, echo echoMessage) {
	switch mb.Mode {
	case "Inactive":
		if echo.text != "" {
			style := styleMinibuf
			if echo.isError {
				style = styleEchoError
			}
			drawText(screen, 0, row, echo.text, width, style)
			return
		}
		drawText(screen, 0, row, "", width, styleMinibuf)
	case "Error":
		drawText(screen, 0, row, mb.Message, width, styleEchoError)
	case "Info":
		drawText(screen, 0, row, mb.Message, width, styleMinibuf)
	default:
		drawText(screen, 0, row, mb.Prompt+mb.Input, width, styleMinibuf)
	}
}

func drawText(screen tcell.Screen, x, y int, text string, width int, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= width {
			break
		}
		screen.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		screen.SetContent(col, y, ' ', nil, style)
	}
}
