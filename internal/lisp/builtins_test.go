package lisp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBridge is a minimal EditorBridge standing in for the command
// processor in isolated lisp package tests.
type fakeBridge struct {
	text    string
	point   int
	markPos int
	hasMark bool
	killed  string
	msgs    []string
}

func (f *fakeBridge) Point() int { return f.point }
func (f *fakeBridge) GotoChar(pos int) error {
	if pos < 0 || pos > len(f.text) {
		return fmt.Errorf("out of range")
	}
	f.point = pos
	return nil
}
func (f *fakeBridge) Insert(s string) error {
	f.text = f.text[:f.point] + s + f.text[f.point:]
	f.point += len(s)
	return nil
}
func (f *fakeBridge) BufferString() string { return f.text }
func (f *fakeBridge) KillRegion(beg, end int) (string, error) {
	killed := f.text[beg:end]
	f.text = f.text[:beg] + f.text[end:]
	f.killed = killed
	f.point = beg
	return killed, nil
}
func (f *fakeBridge) Yank() (string, error) {
	f.Insert(f.killed)
	return f.killed, nil
}
func (f *fakeBridge) Message(s string) { f.msgs = append(f.msgs, s) }
func (f *fakeBridge) Mark() (int, bool) { return f.markPos, f.hasMark }

func TestEditorBridgeBuiltins(t *testing.T) {
	i := NewInterp()
	b := &fakeBridge{text: "hello"}
	i.SetBridge(b)

	evalSrc(t, i, `(goto-char 5)`)
	evalSrc(t, i, `(insert " world")`)
	assert.Equal(t, "hello world", b.BufferString())

	v := evalSrc(t, i, `(buffer-string)`)
	assert.Equal(t, String("hello world"), v)

	evalSrc(t, i, `(message "saved")`)
	assert.Equal(t, []string{"saved"}, b.msgs)
}

func TestEditorBridgeMissingErrors(t *testing.T) {
	i := NewInterp()
	_, err := i.EvalString(`(point)`)
	require.Error(t, err)
}

func TestKillRegionAndYank(t *testing.T) {
	i := NewInterp()
	b := &fakeBridge{text: "abcdef"}
	i.SetBridge(b)
	v := evalSrc(t, i, `(kill-region 1 3)`)
	assert.Equal(t, String("bc"), v)
	assert.Equal(t, "adef", b.BufferString())

	evalSrc(t, i, `(goto-char 4)`)
	evalSrc(t, i, `(yank)`)
	assert.Equal(t, "adefbc", b.BufferString())
}

func TestStringBuiltins(t *testing.T) {
	i := NewInterp()
	assert.Equal(t, String("foobar"), evalSrc(t, i, `(string-append "foo" "bar")`))
	assert.Equal(t, Int(6), evalSrc(t, i, `(string-length "foobar")`))
	assert.Equal(t, String("oob"), evalSrc(t, i, `(substring "foobar" 1 4)`))
}
