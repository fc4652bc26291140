package command

import (
	"sort"

	"github.com/tekugo/altre/internal/minibuffer"
	"github.com/tekugo/altre/internal/search"
)

// commandFunc is one interactive command's implementation. r carries the
// self-inserted rune for "self-insert" and is ignored by everything else.
type commandFunc func(p *Processor, r rune) Result

// commandTable maps every interactive command name the default keymap
// (or M-x) can resolve to its implementation (§4.7).
var commandTable map[string]commandFunc

// CommandNames returns every built-in interactive command name, sorted, for
// ExecuteCommand completion (StaticSource keeps the order it is given).
func CommandNames() []string {
	names := make([]string, 0, len(commandTable))
	for n := range commandTable {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ExecuteCommandCandidates returns the built-in command table plus every
// top-level 'interactive Lisp closure currently defined, merged and
// sorted, for M-x completion over both surfaces at once.
func (p *Processor) ExecuteCommandCandidates() []string {
	names := append(CommandNames(), p.Lisp.InteractiveCommands()...)
	sort.Strings(names)
	return names
}

func init() {
	commandTable = map[string]commandFunc{
		"self-insert":               cmdSelfInsert,
		"forward-char":              cmdForwardChar,
		"backward-char":             cmdBackwardChar,
		"next-line":                 cmdNextLine,
		"previous-line":             cmdPreviousLine,
		"forward-word":              cmdForwardWord,
		"backward-word":             cmdBackwardWord,
		"move-beginning-of-line":    cmdLineStart,
		"move-end-of-line":          cmdLineEnd,
		"beginning-of-buffer":       cmdBufferStart,
		"end-of-buffer":             cmdBufferEnd,
		"scroll-up-command":         cmdScrollUp,
		"scroll-down-command":       cmdScrollDown,
		"recenter-top-bottom":       cmdRecenterTopBottom,
		"delete-backward-char":      cmdDeleteBack,
		"delete-char":               cmdDeleteForward,
		"kill-line":                 cmdKillLine,
		"kill-word":                 cmdKillWordForward,
		"backward-kill-word":        cmdKillWordBackward,
		"kill-region":               cmdKillRegion,
		"yank":                      cmdYank,
		"yank-pop":                  cmdYankPop,
		"set-mark-command":          cmdSetMark,
		"newline":                   cmdNewline,
		"goto-line":                 cmdStartGotoLine,
		"find-file":                 cmdStartFindFile,
		"save-buffer":               cmdSaveBuffer,
		"write-file":                cmdStartWriteFile,
		"switch-to-buffer":          cmdStartSwitchBuffer,
		"kill-buffer":               cmdStartKillBuffer,
		"execute-extended-command":  cmdStartExecuteCommand,
		"eval-expression":           cmdStartEvalExpression,
		"isearch-forward":           cmdStartIsearchForward,
		"isearch-backward":          cmdStartIsearchBackward,
		"query-replace":             cmdStartQueryReplace,
		"keyboard-quit":             cmdKeyboardQuit,
		"save-buffers-kill-terminal": cmdQuit,
		"nop":                       cmdNop,
	}
}

func cmdQuit(p *Processor, r rune) Result {
	p.Quit = true
	return Result{}
}

func cmdNop(p *Processor, r rune) Result { return Result{} }

func cmdKeyboardQuit(p *Processor, r rune) Result { return p.cancel() }

// ---- Self-insert and basic editing ---------------------------------------

func cmdSelfInsert(p *Processor, r rune) Result {
	if err := p.Buffer().InsertChar(r); err != nil {
		return errResult(err)
	}
	return Result{}
}

func cmdNewline(p *Processor, r rune) Result {
	if err := p.Buffer().InsertChar('\n'); err != nil {
		return errResult(err)
	}
	return Result{}
}

func cmdDeleteBack(p *Processor, r rune) Result {
	if _, err := p.Buffer().DeleteCharBack(); err != nil {
		return errResult(err)
	}
	return Result{}
}

func cmdDeleteForward(p *Processor, r rune) Result {
	if _, err := p.Buffer().DeleteCharForward(); err != nil {
		return errResult(err)
	}
	return Result{}
}

// ---- Navigation -----------------------------------------------------------

func cmdForwardChar(p *Processor, r rune) Result    { p.Buffer().MoveCharForward(); return Result{} }
func cmdBackwardChar(p *Processor, r rune) Result   { p.Buffer().MoveCharBack(); return Result{} }
func cmdNextLine(p *Processor, r rune) Result       { p.Buffer().MoveLineDown(); return Result{} }
func cmdPreviousLine(p *Processor, r rune) Result   { p.Buffer().MoveLineUp(); return Result{} }
func cmdForwardWord(p *Processor, r rune) Result    { p.Buffer().MoveWordForward(); return Result{} }
func cmdBackwardWord(p *Processor, r rune) Result   { p.Buffer().MoveWordBack(); return Result{} }
func cmdLineStart(p *Processor, r rune) Result      { p.Buffer().MoveLineStart(); return Result{} }
func cmdLineEnd(p *Processor, r rune) Result        { p.Buffer().MoveLineEnd(); return Result{} }
func cmdBufferStart(p *Processor, r rune) Result    { p.Buffer().MoveBufferStart(); return Result{} }
func cmdBufferEnd(p *Processor, r rune) Result      { p.Buffer().MoveBufferEnd(); return Result{} }

func cmdScrollUp(p *Processor, r rune) Result {
	p.Buffer().PageDown(p.viewportRows)
	return Result{}
}

func cmdScrollDown(p *Processor, r rune) Result {
	p.Buffer().PageUp(p.viewportRows)
	return Result{}
}

// cmdRecenterTopBottom cycles the viewport pin the way Emacs' C-l does:
// centered on point, then pinned with point at the top row, then pinned
// with point at the bottom row, repeating on every immediately-following
// invocation. Any other command in between resets the cycle (checked via
// p.lastCommand, which still names the command run before this one).
func cmdRecenterTopBottom(p *Processor, r rune) Result {
	if p.lastCommand != "recenter-top-bottom" {
		p.recenterStep = 0
	}
	line, _, _ := p.Buffer().LineColOfByte(p.Buffer().Point())
	switch p.recenterStep % 3 {
	case 0:
		p.scrollPin = nil
	case 1:
		top := line
		p.scrollPin = &top
	case 2:
		bottom := line - p.viewportRows + 1
		if bottom < 0 {
			bottom = 0
		}
		p.scrollPin = &bottom
	}
	p.recenterStep++
	return Result{}
}

// ---- Kill ring / yank -----------------------------------------------------

func cmdKillLine(p *Processor, r rune) Result {
	from, to := p.Buffer().KillLineSpan()
	text, err := p.Buffer().DeleteRange(from, to)
	if err != nil {
		return errResult(err)
	}
	p.Kill.Push(text)
	return Result{}
}

func cmdKillWordForward(p *Processor, r rune) Result {
	from, to := p.Buffer().WordSpanForward()
	text, err := p.Buffer().DeleteRange(from, to)
	if err != nil {
		return errResult(err)
	}
	p.Kill.Push(text)
	return Result{}
}

func cmdKillWordBackward(p *Processor, r rune) Result {
	from, to := p.Buffer().WordSpanBack()
	text, err := p.Buffer().DeleteRange(from, to)
	if err != nil {
		return errResult(err)
	}
	p.Kill.Push(text)
	return Result{}
}

func cmdKillRegion(p *Processor, r rune) Result {
	from, to, err := p.Buffer().RegionSpan()
	if err != nil {
		return Result{Message: "No region", Severity: SeverityError}
	}
	text, err := p.Buffer().DeleteRange(from, to)
	if err != nil {
		return errResult(err)
	}
	p.Kill.Push(text)
	p.Buffer().ClearMark()
	return Result{}
}

func cmdYank(p *Processor, r rune) Result {
	text, ok := p.Kill.Yank()
	if !ok {
		return Result{Message: "Kill ring is empty", Severity: SeverityError}
	}
	if _, _, err := p.Buffer().InsertStringAt(p.Buffer().Point(), text); err != nil {
		return errResult(err)
	}
	p.lastYankLen = len(text)
	return Result{}
}

// cmdYankPop replaces the text inserted by the immediately preceding
// yank/yank-pop with the ring's next entry (§4.3): it deletes the
// previously inserted span, rotates the ring, and inserts the new head.
func cmdYankPop(p *Processor, r rune) Result {
	if !p.Kill.Chained() {
		return Result{Message: "Previous command was not a yank", Severity: SeverityError}
	}
	if p.lastYankLen > 0 {
		if _, err := p.Buffer().DeleteRange(p.Buffer().Point()-p.lastYankLen, p.Buffer().Point()); err != nil {
			return errResult(err)
		}
	}
	text, ok := p.Kill.YankPop()
	if !ok {
		return Result{Message: "Previous command was not a yank", Severity: SeverityError}
	}
	if _, _, err := p.Buffer().InsertStringAt(p.Buffer().Point(), text); err != nil {
		return errResult(err)
	}
	p.lastYankLen = len(text)
	return Result{}
}

// ---- Mark -----------------------------------------------------------------

func cmdSetMark(p *Processor, r rune) Result {
	p.Buffer().SetMark()
	return Result{Message: "Mark set", Severity: SeverityInfo}
}

// ---- Minibuffer-driven commands -------------------------------------------

func cmdStartFindFile(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.FindFile, "Find file: ", p.fileSource())
	return Result{}
}

func cmdStartWriteFile(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.WriteFile, "Write file: ", p.fileSource())
	return Result{}
}

func cmdSaveBuffer(p *Processor, r rune) Result {
	return p.saveBuffer()
}

func cmdStartSwitchBuffer(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.SwitchBuffer, "Switch to buffer: ", minibuffer.StaticSource{Candidates: p.BufferNames()})
	return Result{}
}

func cmdStartKillBuffer(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.KillBuffer, "Kill buffer: ", minibuffer.StaticSource{Candidates: p.BufferNames()})
	return Result{}
}

func cmdStartExecuteCommand(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.ExecuteCommand, "M-x ", minibuffer.StaticSource{Candidates: p.ExecuteCommandCandidates()})
	return Result{}
}

func cmdStartEvalExpression(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.EvalExpression, "Eval: ", nil)
	return Result{}
}

func cmdStartGotoLine(p *Processor, r rune) Result {
	p.Mini.Start(minibuffer.GotoLine, "Goto line: ", nil)
	return Result{}
}

// ---- Incremental search ----------------------------------------------------

func cmdStartIsearchForward(p *Processor, r rune) Result {
	p.startSearch(search.Forward)
	return Result{}
}

func cmdStartIsearchBackward(p *Processor, r rune) Result {
	p.startSearch(search.Backward)
	return Result{}
}

func (p *Processor) startSearch(dir search.Direction) {
	point := p.Buffer().Point()
	mark, hasMark := p.Buffer().Mark()
	p.searchSaved = searchSaved{point: point, mark: mark, hasMark: hasMark}
	p.search = search.New(p.Buffer().Text(), point, dir)

	mode := minibuffer.IncrementalSearchForward
	prompt := "I-search: "
	if dir == search.Backward {
		mode = minibuffer.IncrementalSearchBackward
		prompt = "I-search backward: "
	}
	p.Mini.Start(mode, prompt, nil)
	p.applySearchMatch()
}

func (p *Processor) applySearchMatch() {
	m, _, ok := p.search.Current()
	if !ok {
		return
	}
	if p.search.Direction() == search.Forward {
		_ = p.Buffer().MoveTo(m.End)
	} else {
		_ = p.Buffer().MoveTo(m.Start)
	}
}

func errResult(err error) Result {
	return Result{Message: err.Error(), Severity: SeverityError}
}
