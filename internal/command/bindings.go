package command

import "github.com/tekugo/altre/internal/keymap"

// DefaultKeymap builds the standard Emacs-style chord bindings (§4.4):
// single chords for the common motions/edits, and two-chord C-x prefixes
// for file and buffer management.
func DefaultKeymap() *keymap.Keymap {
	k := keymap.New()

	bind := func(seq []keymap.Chord, cmd string) { k.Bind(seq, cmd) }
	chord := func(key rune, mods keymap.Modifier) keymap.Chord { return keymap.Chord{Key: key, Mods: mods} }

	// Motion.
	bind([]keymap.Chord{chord('f', keymap.Ctrl)}, "forward-char")
	bind([]keymap.Chord{chord('b', keymap.Ctrl)}, "backward-char")
	bind([]keymap.Chord{chord('n', keymap.Ctrl)}, "next-line")
	bind([]keymap.Chord{chord('p', keymap.Ctrl)}, "previous-line")
	bind([]keymap.Chord{chord(keymap.KeyRight, 0)}, "forward-char")
	bind([]keymap.Chord{chord(keymap.KeyLeft, 0)}, "backward-char")
	bind([]keymap.Chord{chord(keymap.KeyDown, 0)}, "next-line")
	bind([]keymap.Chord{chord(keymap.KeyUp, 0)}, "previous-line")
	bind([]keymap.Chord{chord('f', keymap.Meta)}, "forward-word")
	bind([]keymap.Chord{chord('b', keymap.Meta)}, "backward-word")
	bind([]keymap.Chord{chord('a', keymap.Ctrl)}, "move-beginning-of-line")
	bind([]keymap.Chord{chord('e', keymap.Ctrl)}, "move-end-of-line")
	bind([]keymap.Chord{chord(keymap.KeyHome, 0)}, "move-beginning-of-line")
	bind([]keymap.Chord{chord(keymap.KeyEnd, 0)}, "move-end-of-line")
	bind([]keymap.Chord{chord('<', keymap.Meta)}, "beginning-of-buffer")
	bind([]keymap.Chord{chord('>', keymap.Meta)}, "end-of-buffer")
	bind([]keymap.Chord{chord('v', keymap.Ctrl)}, "scroll-up-command")
	bind([]keymap.Chord{chord('v', keymap.Meta)}, "scroll-down-command")
	bind([]keymap.Chord{chord(keymap.KeyPageDown, 0)}, "scroll-up-command")
	bind([]keymap.Chord{chord(keymap.KeyPageUp, 0)}, "scroll-down-command")
	bind([]keymap.Chord{chord('l', keymap.Ctrl)}, "recenter-top-bottom")

	// Editing.
	bind([]keymap.Chord{chord(keymap.KeyEnter, 0)}, "newline")
	bind([]keymap.Chord{chord(keymap.KeyBackspace, 0)}, "delete-backward-char")
	bind([]keymap.Chord{chord('d', keymap.Ctrl)}, "delete-char")
	bind([]keymap.Chord{chord(keymap.KeyDelete, 0)}, "delete-char")
	bind([]keymap.Chord{chord('k', keymap.Ctrl)}, "kill-line")
	bind([]keymap.Chord{chord('d', keymap.Meta)}, "kill-word")
	bind([]keymap.Chord{chord(keymap.KeyBackspace, keymap.Meta)}, "backward-kill-word")
	bind([]keymap.Chord{chord('w', keymap.Ctrl)}, "kill-region")
	bind([]keymap.Chord{chord('y', keymap.Ctrl)}, "yank")
	bind([]keymap.Chord{chord('y', keymap.Meta)}, "yank-pop")
	bind([]keymap.Chord{chord(' ', keymap.Ctrl)}, "set-mark-command")

	// Search.
	bind([]keymap.Chord{chord('s', keymap.Ctrl)}, "isearch-forward")
	bind([]keymap.Chord{chord('r', keymap.Ctrl)}, "isearch-backward")
	bind([]keymap.Chord{chord('%', keymap.Meta)}, "query-replace")

	// Extended commands.
	bind([]keymap.Chord{chord('x', keymap.Meta)}, "execute-extended-command")
	bind([]keymap.Chord{chord(':', keymap.Meta)}, "eval-expression")
	bind([]keymap.Chord{chord('g', keymap.Meta)}, "goto-line")

	// C-x prefix: file and buffer management.
	bind([]keymap.Chord{chord('x', keymap.Ctrl), chord('f', keymap.Ctrl)}, "find-file")
	bind([]keymap.Chord{chord('x', keymap.Ctrl), chord('s', keymap.Ctrl)}, "save-buffer")
	bind([]keymap.Chord{chord('x', keymap.Ctrl), chord('w', keymap.Ctrl)}, "write-file")
	bind([]keymap.Chord{chord('x', keymap.Ctrl), chord('b', 0)}, "switch-to-buffer")
	bind([]keymap.Chord{chord('x', keymap.Ctrl), chord('k', 0)}, "kill-buffer")
	bind([]keymap.Chord{chord('x', keymap.Ctrl), chord('c', keymap.Ctrl)}, "save-buffers-kill-terminal")

	return k
}
