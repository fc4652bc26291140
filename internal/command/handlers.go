package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tekugo/altre/internal/editor"
	"github.com/tekugo/altre/internal/keymap"
	"github.com/tekugo/altre/internal/minibuffer"
	"github.com/tekugo/altre/internal/search"
)

// handleMinibufferKey routes one chord to the active minibuffer session
// per the transition table in §4.5.
func (p *Processor) handleMinibufferKey(c keymap.Chord) Result {
	switch {
	case c.Key == keymap.KeyEnter:
		return p.commitMinibuffer()
	case c.Key == keymap.KeyTab:
		p.Mini.Tab()
		return Result{}
	case c.Key == keymap.KeyBackspace:
		p.Mini.Backspace()
		return Result{}
	case c.Mods&keymap.Meta != 0 && c.Key == 'p', c.Key == keymap.KeyUp:
		p.Mini.HistoryPrevious()
		return Result{}
	case c.Mods&keymap.Meta != 0 && c.Key == 'n', c.Key == keymap.KeyDown:
		p.Mini.HistoryNext()
		return Result{}
	case c.IsSelfInserting():
		p.Mini.InsertRune(c.Key)
		return Result{}
	}
	return Result{}
}

// commitMinibuffer ends the active session and resolves its input into
// the high-level request the mode names (§4.5: "Enter → commit: resolve
// request ... hand back to command processor").
func (p *Processor) commitMinibuffer() Result {
	mode, input := p.Mini.Commit()
	switch mode {
	case minibuffer.FindFile:
		return p.openFile(input)
	case minibuffer.WriteFile:
		return p.requestWrite(input)
	case minibuffer.SaveConfirmation:
		path := p.pendingSave
		p.pendingSave = ""
		if input == "y" || input == "yes" {
			return p.saveTo(path)
		}
		return Result{Message: "Not saved", Severity: SeverityInfo}
	case minibuffer.ExecuteCommand:
		return p.runCommand(input, 0)
	case minibuffer.EvalExpression:
		return p.evalExpression(input)
	case minibuffer.GotoLine:
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return Result{Message: "Invalid line number", Severity: SeverityError}
		}
		p.Buffer().GotoLine(n)
		return Result{}
	case minibuffer.SwitchBuffer:
		if _, ok := p.buffers[input]; !ok {
			return Result{Message: fmt.Sprintf("No such buffer: %s", input), Severity: SeverityError}
		}
		p.current = input
		return Result{}
	case minibuffer.KillBuffer:
		return p.killBuffer(input)
	case minibuffer.IncrementalSearchForward, minibuffer.IncrementalSearchBackward:
		p.Buffer().SetMarkAt(p.searchSaved.point)
		p.search = nil
		return Result{Message: "Mark saved where search started", Severity: SeverityInfo}
	case minibuffer.QueryReplacePattern:
		p.qrPattern = input
		p.Mini.Start(minibuffer.QueryReplaceReplacement, fmt.Sprintf("Query replace %s with: ", input), nil)
		return Result{}
	case minibuffer.QueryReplaceReplacement:
		return p.beginQueryReplace(p.qrPattern, input)
	}
	return Result{}
}

func (p *Processor) killBuffer(name string) Result {
	if name == "" {
		name = p.current
	}
	if _, ok := p.buffers[name]; !ok {
		return Result{Message: fmt.Sprintf("No such buffer: %s", name), Severity: SeverityError}
	}
	delete(p.buffers, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	if p.current == name {
		if len(p.order) == 0 {
			p.buffers[scratchBufferName] = editor.New()
			p.order = []string{scratchBufferName}
			p.current = scratchBufferName
		} else {
			p.current = p.order[len(p.order)-1]
		}
	}
	return Result{Message: fmt.Sprintf("Killed buffer %s", name), Severity: SeverityInfo}
}

// evalExpression forwards input to the Lisp runtime and returns its
// printed result (§4.7).
func (p *Processor) evalExpression(input string) Result {
	v, err := p.Lisp.EvalString(input)
	if err != nil {
		return Result{Message: err.Error(), Severity: SeverityError}
	}
	return Result{Message: v.Repr(), Severity: SeverityInfo}
}

// handleSearchKey routes one chord to the active incremental search
// session (§4.6). C-s/C-r advance; Backspace reverts the match stack;
// printable characters extend the pattern; Enter and any other key commit,
// setting the mark where the search started; Ctrl-g is handled by the
// caller before reaching here.
func (p *Processor) handleSearchKey(c keymap.Chord) Result {
	switch {
	case c.Mods&keymap.Ctrl != 0 && c.Key == 's':
		p.search.Advance()
		p.applySearchMatch()
		return p.searchStatus()
	case c.Mods&keymap.Ctrl != 0 && c.Key == 'r':
		p.search.Advance()
		p.applySearchMatch()
		return p.searchStatus()
	case c.Key == keymap.KeyBackspace:
		p.search.Backspace()
		p.Mini.Backspace()
		p.applySearchMatch()
		return p.searchStatus()
	case c.IsSelfInserting():
		p.search.AppendRune(c.Key)
		p.Mini.InsertRune(c.Key)
		p.applySearchMatch()
		return p.searchStatus()
	default:
		p.Buffer().SetMarkAt(p.searchSaved.point)
		p.search = nil
		p.Mini.Commit()
		return Result{Message: "Mark saved where search started", Severity: SeverityInfo}
	}
}

func (p *Processor) searchStatus() Result {
	_, wrapped, ok := p.search.Current()
	if !ok {
		return Result{Message: fmt.Sprintf("Failing %s: %s", directionLabel(p.search.Direction()), p.search.Pattern()), Severity: SeverityError}
	}
	if wrapped {
		return Result{Message: fmt.Sprintf("Wrapped %s: %s", directionLabel(p.search.Direction()), p.search.Pattern()), Severity: SeverityInfo}
	}
	return Result{}
}

func directionLabel(d search.Direction) string {
	if d == search.Backward {
		return "I-search backward"
	}
	return "I-search"
}
