package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekugo/altre/internal/keymap"
)

func key(k rune, mods keymap.Modifier) Event {
	return KeyEvent(keymap.Chord{Key: k, Mods: mods})
}

func typeString(p *Processor, s string) {
	for _, r := range s {
		p.HandleEvent(key(r, 0))
	}
}

// TestScenarioS1FileOpenAndSave mirrors spec.md scenario S1.
func TestScenarioS1FileOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	p := New()
	defer p.Close()

	p.HandleEvent(key('x', keymap.Ctrl))
	p.HandleEvent(key('f', keymap.Ctrl))
	typeString(p, path)
	res := p.HandleEvent(key(keymap.KeyEnter, 0))
	assert.Equal(t, SeverityInfo, res.Severity)

	typeString(p, "hello")

	p.HandleEvent(key('x', keymap.Ctrl))
	res = p.HandleEvent(key('s', keymap.Ctrl))
	assert.Equal(t, "Saved", res.Message)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.False(t, p.Buffer().Modified())
}

// TestScenarioS2KillAndYank mirrors spec.md scenario S2: Ctrl-k twice on
// "abc\ndef" kills "abc" then the line's trailing newline, one line at a
// time (§4.2 KillLineSpan), leaving two separate ring entries rather than
// Emacs' classic same-command append-kill (not named by spec.md, and not
// implemented here — see DESIGN.md). A single yank therefore restores the
// most recent entry, "\n", landing the buffer back at "\ndef"; a
// following yank-pop rotates to "abc" and restores the original text.
func TestScenarioS2KillAndYank(t *testing.T) {
	p := New()
	defer p.Close()

	typeString(p, "abc\ndef")
	p.Buffer().MoveBufferStart()

	p.HandleEvent(key('k', keymap.Ctrl))
	p.HandleEvent(key('k', keymap.Ctrl))
	assert.Equal(t, "def", p.Buffer().Text())

	head, ok := p.Kill.Head()
	require.True(t, ok)
	assert.Equal(t, "\n", head)

	p.HandleEvent(key('y', keymap.Ctrl))
	assert.Equal(t, "\ndef", p.Buffer().Text())

	p.HandleEvent(key('y', keymap.Meta))
	assert.Equal(t, "abc\ndef", p.Buffer().Text())
}

// TestScenarioS3IncrementalSearch mirrors spec.md scenario S3.
func TestScenarioS3IncrementalSearch(t *testing.T) {
	p := New()
	defer p.Close()
	typeString(p, "foo bar foo")
	p.Buffer().MoveBufferStart()

	p.HandleEvent(key('s', keymap.Ctrl))
	typeString(p, "foo")
	assert.Equal(t, 3, p.Buffer().Point())

	p.HandleEvent(key('s', keymap.Ctrl))
	assert.Equal(t, 11, p.Buffer().Point())

	p.HandleEvent(key('g', keymap.Ctrl))
	assert.Equal(t, 0, p.Buffer().Point())
}

// TestScenarioS4MinibufferCancel mirrors spec.md scenario S4.
func TestScenarioS4MinibufferCancel(t *testing.T) {
	p := New()
	defer p.Close()
	before := p.Buffer().Text()

	p.HandleEvent(key('x', keymap.Ctrl))
	p.HandleEvent(key('f', keymap.Ctrl))
	typeString(p, "/et")
	p.HandleEvent(key('g', keymap.Ctrl))

	assert.False(t, p.Mini.Active())
	assert.Equal(t, before, p.Buffer().Text())
}

// TestScenarioS5LispEval mirrors spec.md scenario S5.
func TestScenarioS5LispEval(t *testing.T) {
	p := New()
	defer p.Close()

	p.HandleEvent(key(':', keymap.Meta))
	typeString(p, "(let ((x 2)) (+ x (* x 3)))")
	res := p.HandleEvent(key(keymap.KeyEnter, 0))
	assert.Equal(t, "8", res.Message)

	p.HandleEvent(key(':', keymap.Meta))
	typeString(p, "(define (fact n) (if (<= n 1) 1 (* n (fact (- n 1)))))")
	p.HandleEvent(key(keymap.KeyEnter, 0))

	p.HandleEvent(key(':', keymap.Meta))
	typeString(p, "(fact 6)")
	res = p.HandleEvent(key(keymap.KeyEnter, 0))
	assert.Equal(t, "720", res.Message)
}

// TestScenarioS6PartialPrefix mirrors spec.md scenario S6.
func TestScenarioS6PartialPrefix(t *testing.T) {
	p := New()
	defer p.Close()

	res := p.HandleEvent(key('x', keymap.Ctrl))
	assert.Equal(t, "C-x-", res.Message)

	res = p.HandleEvent(key('q', 0))
	assert.Equal(t, "undefined key sequence: C-x q", res.Message)
	assert.Empty(t, p.Disp.Pending())
}

func TestFindFileMissingCreatesBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.txt")

	p := New()
	defer p.Close()
	res := p.openFile(path)
	assert.Equal(t, SeverityInfo, res.Severity)
	assert.Equal(t, "", p.Buffer().Text())
}

func TestSwitchAndKillBuffer(t *testing.T) {
	p := New()
	defer p.Close()
	dir := t.TempDir()
	p.openFile(filepath.Join(dir, "x.txt"))
	assert.Equal(t, "x.txt", p.BufferName())

	p.HandleEvent(key('x', keymap.Ctrl))
	p.HandleEvent(key('b', 0))
	typeString(p, scratchBufferName)
	p.HandleEvent(key(keymap.KeyEnter, 0))
	assert.Equal(t, scratchBufferName, p.BufferName())

	p.HandleEvent(key('x', keymap.Ctrl))
	p.HandleEvent(key('k', 0))
	typeString(p, "x.txt")
	p.HandleEvent(key(keymap.KeyEnter, 0))
	assert.NotContains(t, p.BufferNames(), "x.txt")
	assert.Equal(t, scratchBufferName, p.BufferName())
}
