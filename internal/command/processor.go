// Package command implements the command processor described in §4.7: it
// takes a resolved command (or a raw input Event, which it resolves
// itself via the keymap dispatcher and minibuffer state machine) and
// executes it against the active buffer, file layer, kill ring, search
// engine, or minibuffer, producing a Result and, on request, a read-only
// Snapshot (§6).
package command

import (
	"fmt"
	"time"

	"github.com/tekugo/altre/internal/editor"
	"github.com/tekugo/altre/internal/fileio"
	"github.com/tekugo/altre/internal/keymap"
	"github.com/tekugo/altre/internal/killring"
	"github.com/tekugo/altre/internal/lisp"
	"github.com/tekugo/altre/internal/minibuffer"
	"github.com/tekugo/altre/internal/search"
)

// scratchBufferName is the name of the buffer every process starts with,
// matching the teacher's untitled-document convention generalized to
// Altre's Emacs-style naming.
const scratchBufferName = "*scratch*"

// Processor owns every piece of mutable state the event loop drives: the
// set of open buffers, the process-wide kill ring, the keymap dispatcher,
// the minibuffer session, and the Lisp interpreter. It is not safe for
// concurrent use — per §5, the core is single-threaded and cooperative.
type Processor struct {
	buffers      map[string]*editor.Buffer
	order        []string
	current      string

	Kill   *killring.Ring
	Keymap *keymap.Keymap
	Disp   *keymap.Dispatcher
	Mini   *minibuffer.Minibuffer
	Lisp   *lisp.Interp

	fileCompletion *minibuffer.FileCompletionSource

	search       *search.Session
	searchSaved  searchSaved
	queryReplace *queryReplaceState
	qrPattern    string
	pendingSave  string
	viewportRows int
	recursionLim int
	lastYankLen  int
	lastCommand  string
	recenterStep int
	scrollPin    *int

	// Quit is set by save-buffers-kill-terminal; the event loop checks it
	// after every HandleEvent call and exits cleanly when true (§6: exit
	// code 0 "on clean exit (Ctrl-x Ctrl-c)").
	Quit bool
}

type searchSaved struct {
	point   int
	mark    int
	hasMark bool
}

// New creates a processor with one empty *scratch* buffer, a default
// keymap (§4.4), an inactive minibuffer, and its own Lisp interpreter
// bridged back to this processor (§4.9 "editor bridge").
func New() *Processor {
	p := &Processor{
		buffers:      map[string]*editor.Buffer{scratchBufferName: editor.New()},
		order:        []string{scratchBufferName},
		current:      scratchBufferName,
		Kill:         killring.New(killring.DefaultCapacity),
		Keymap:       DefaultKeymap(),
		Mini:         minibuffer.New(),
		viewportRows: 40,
	}
	p.Disp = keymap.NewDispatcher(p.Keymap)
	p.Lisp = lisp.NewInterp()
	p.Lisp.SetBridge(p)
	return p
}

func (p *Processor) now() time.Time { return time.Now() }

// Buffer returns the active buffer.
func (p *Processor) Buffer() *editor.Buffer {
	return p.buffers[p.current]
}

// BufferName returns the active buffer's name (its §4.5 SwitchBuffer /
// KillBuffer identity, distinct from its optional file path).
func (p *Processor) BufferName() string {
	return p.current
}

// BufferNames returns every open buffer's name, most-recently-opened
// first, for SwitchBuffer/KillBuffer completion.
func (p *Processor) BufferNames() []string {
	out := make([]string, len(p.order))
	for i, n := range p.order {
		out[len(p.order)-1-i] = n
	}
	return out
}

func (p *Processor) addBuffer(name string, b *editor.Buffer) {
	if _, exists := p.buffers[name]; !exists {
		p.order = append(p.order, name)
	}
	p.buffers[name] = b
	p.current = name
}

// Close releases resources the processor owns across process lifetime
// (the file-completion source's fsnotify watcher).
func (p *Processor) Close() {
	if p.fileCompletion != nil {
		p.fileCompletion.Close()
	}
}

// ---- Event handling ------------------------------------------------------

// HandleEvent feeds one input event through the processor: minibuffer
// editing and search take priority while a session is active (§4.5,
// §4.6); otherwise the event goes to the keymap dispatcher, whose outcome
// resolves to an interactive command.
func (p *Processor) HandleEvent(ev Event) Result {
	switch ev.Kind {
	case EventTick:
		p.Mini.Tick(ev.Time)
		return Result{}
	case EventResize:
		if ev.Height > 2 {
			p.viewportRows = ev.Height - 2 // status line + minibuffer
		}
		return Result{}
	}

	c := ev.Chord

	if c.Mods&keymap.Ctrl != 0 && c.Key == 'g' {
		return p.cancel()
	}

	if p.queryReplace != nil {
		return p.handleQueryReplaceKey(c)
	}

	if p.search != nil {
		return p.handleSearchKey(c)
	}

	if p.Mini.Active() {
		return p.handleMinibufferKey(c)
	}

	res := p.Disp.Dispatch(c)
	switch res.Outcome {
	case keymap.OutcomeSelfInsert:
		return p.runCommand("self-insert", res.Rune)
	case keymap.OutcomeCommand:
		return p.runCommand(res.Command, 0)
	case keymap.OutcomePartial:
		return Result{Message: keymap.PathString(res.Path) + "-", Severity: SeverityInfo}
	case keymap.OutcomeMiss:
		return Result{Message: keymap.UndefinedMessage(res.Path), Severity: SeverityError}
	case keymap.OutcomeCancel:
		return p.cancel()
	}
	return Result{}
}

// cancel implements the universal Ctrl-g handler (§4.4, §5): clears any
// pending dispatcher prefix, aborts an active minibuffer session, and
// restores the pre-search point/mark atomically if a search was open.
func (p *Processor) cancel() Result {
	p.Disp.Cancel()
	if p.queryReplace != nil {
		p.queryReplace = nil
		p.Buffer().ClearMark()
		p.Mini.Cancel()
		return Result{Message: "Quit", Severity: SeverityInfo}
	}
	if p.search != nil {
		p.restoreSearchState()
		p.search = nil
		p.Mini.Cancel()
		return Result{Message: "Quit", Severity: SeverityInfo}
	}
	if p.Mini.Active() {
		p.Mini.Cancel()
		return Result{Message: "Quit", Severity: SeverityInfo}
	}
	return Result{Message: "Quit", Severity: SeverityInfo}
}

func (p *Processor) restoreSearchState() {
	_ = p.Buffer().MoveTo(p.searchSaved.point)
	if p.searchSaved.hasMark {
		p.Buffer().SetMarkAt(p.searchSaved.mark)
	} else {
		p.Buffer().ClearMark()
	}
}

// runCommand executes a resolved interactive command by name. arg carries
// the rune for self-insert; every other command ignores it. This is the
// hand-off point §4.7 describes as "Takes a resolved command plus the
// active buffer and world state."
func (p *Processor) runCommand(name string, r rune) Result {
	fn, ok := commandTable[name]
	if !ok {
		return p.runInteractiveLisp(name)
	}
	if name != "yank" && name != "yank-pop" {
		p.Kill.BreakChain()
	}
	// p.lastCommand still names the command run before this one; commands
	// like recenter-top-bottom read it to tell a repeat from a fresh
	// invocation before it is overwritten below.
	res := fn(p, r)
	p.lastCommand = name
	return res
}

// runInteractiveLisp is runCommand's fallback once name isn't a built-in:
// it tries a top-level Lisp closure defined with the 'interactive tag
// (§4.9), so M-x and key bindings can resolve to user-defined commands the
// same way Emacs does.
func (p *Processor) runInteractiveLisp(name string) Result {
	v, called, err := p.Lisp.CallInteractive(name)
	if !called {
		return Result{Message: fmt.Sprintf("command-not-found: %s", name), Severity: SeverityError}
	}
	p.lastCommand = name
	if err != nil {
		return Result{Message: err.Error(), Severity: SeverityError}
	}
	if v.Kind() == "nil" {
		return Result{}
	}
	return Result{Message: v.Repr(), Severity: SeverityInfo}
}

// ---- File I/O commands ---------------------------------------------------

// OpenFileArg opens the path given on the command line as the initial
// buffer, the same way find-file does (§6: "CLI ... file to open").
func (p *Processor) OpenFileArg(path string) Result {
	return p.openFile(path)
}

func (p *Processor) openFile(path string) Result {
	if !fileio.Exists(path) {
		p.addBuffer(bufferNameFor(path), editor.NewFromText(path, ""))
		return Result{Message: fmt.Sprintf("New file: %s", path), Severity: SeverityInfo}
	}
	text, err := fileio.Read(path)
	if err != nil {
		return Result{Message: err.Error(), Severity: SeverityError}
	}
	p.addBuffer(bufferNameFor(path), editor.NewFromText(path, text))
	return Result{Message: fmt.Sprintf("Opened %s", path), Severity: SeverityInfo}
}

func (p *Processor) saveBuffer() Result {
	path, ok := p.Buffer().Path()
	if !ok || path == "" {
		p.Mini.Start(minibuffer.WriteFile, "File to save in: ", p.fileSource())
		return Result{Message: "Write file", Severity: SeverityInfo}
	}
	return p.saveTo(path)
}

// requestWrite resolves the WriteFile prompt's input: if it names a file
// that already exists and isn't the buffer's own path, it chains into
// SaveConfirmation (§4.5: "chain to next mode, e.g., save confirmation
// after failed save") instead of overwriting silently.
func (p *Processor) requestWrite(path string) Result {
	current, _ := p.Buffer().Path()
	if path != current && fileio.Exists(path) {
		p.pendingSave = path
		p.Mini.Start(minibuffer.SaveConfirmation, fmt.Sprintf("File %s exists; overwrite? (y or n) ", path), nil)
		return Result{}
	}
	return p.saveTo(path)
}

func (p *Processor) saveTo(path string) Result {
	if err := fileio.Save(path, p.Buffer().Text()); err != nil {
		return Result{Message: err.Error(), Severity: SeverityError}
	}
	p.Buffer().SetPath(path)
	p.Buffer().MarkSaved()
	return Result{Message: "Saved", Severity: SeverityInfo}
}

func bufferNameFor(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func (p *Processor) fileSource() *minibuffer.FileCompletionSource {
	if p.fileCompletion == nil {
		p.fileCompletion = minibuffer.NewFileCompletionSource()
	}
	return p.fileCompletion
}
