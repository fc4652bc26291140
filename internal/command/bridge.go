package command

import "fmt"

// Point implements lisp.EditorBridge.
func (p *Processor) Point() int { return p.Buffer().Point() }

// GotoChar implements lisp.EditorBridge.
func (p *Processor) GotoChar(pos int) error {
	if pos < 0 || pos > p.Buffer().ByteLen() {
		return &BufferError{Kind: BufferInvalidCursorPosition}
	}
	return p.Buffer().MoveTo(pos)
}

// Insert implements lisp.EditorBridge.
func (p *Processor) Insert(s string) error {
	return p.Buffer().InsertString(s)
}

// BufferString implements lisp.EditorBridge.
func (p *Processor) BufferString() string {
	return p.Buffer().Text()
}

// KillRegion implements lisp.EditorBridge: removes [beg,end) from the
// buffer and pushes it to the kill ring, mirroring the interactive
// kill-region command (§4.9 "[FULL] Builtin surface").
func (p *Processor) KillRegion(beg, end int) (string, error) {
	if beg > end {
		beg, end = end, beg
	}
	text, err := p.Buffer().DeleteRange(beg, end)
	if err != nil {
		return "", err
	}
	p.Kill.Push(text)
	return text, nil
}

// Yank implements lisp.EditorBridge: inserts the kill ring head at point.
func (p *Processor) Yank() (string, error) {
	head, ok := p.Kill.Head()
	if !ok {
		return "", fmt.Errorf("yank: kill ring is empty")
	}
	if _, _, err := p.Buffer().InsertStringAt(p.Buffer().Point(), head); err != nil {
		return "", err
	}
	return head, nil
}

// Message implements lisp.EditorBridge: surfaces a script-originated
// message by putting the minibuffer in Info mode, which expires on the same
// timer as an error message.
func (p *Processor) Message(s string) {
	p.Mini.ShowInfo(s, p.now())
}

// Mark provides the optional mark accessor the Lisp `mark` builtin looks
// for on its bridge.
func (p *Processor) Mark() (int, bool) { return p.Buffer().Mark() }
