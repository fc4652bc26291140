// Package keymap implements the keymap trie and dispatcher described in
// §4.4: chords resolve against a prefix trie, with partial-match state held
// across chords of a multi-key sequence (e.g. Ctrl-x Ctrl-f), Ctrl-g
// cancellation, and a bypass for self-inserting characters.
package keymap

import "fmt"

// Modifier is a bitset of the modifiers a chord can carry.
type Modifier uint8

const (
	Ctrl Modifier = 1 << iota
	Meta
	Shift
)

// Chord is a single key press with its modifier set, the same shape used
// by terminal key readers: a base key (rune for printable keys, or a named
// non-printable key) plus a modifier bitset.
type Chord struct {
	Key  rune // for named keys (Backspace, Enter, arrows...) a negative sentinel from the Key* constants
	Mods Modifier
}

// Named, non-printable keys, kept out of the Unicode printable range so
// they never collide with a real character chord.
const (
	KeyEnter rune = -(iota + 1)
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)

func (c Chord) String() string {
	s := ""
	if c.Mods&Ctrl != 0 {
		s += "C-"
	}
	if c.Mods&Meta != 0 {
		s += "M-"
	}
	if c.Mods&Shift != 0 {
		s += "S-"
	}
	return s + keyName(c.Key)
}

func keyName(k rune) string {
	switch k {
	case KeyEnter:
		return "RET"
	case KeyBackspace:
		return "DEL"
	case KeyTab:
		return "TAB"
	case KeyEscape:
		return "ESC"
	case KeyUp:
		return "<up>"
	case KeyDown:
		return "<down>"
	case KeyLeft:
		return "<left>"
	case KeyRight:
		return "<right>"
	case KeyHome:
		return "<home>"
	case KeyEnd:
		return "<end>"
	case KeyPageUp:
		return "<prior>"
	case KeyPageDown:
		return "<next>"
	case KeyDelete:
		return "<delete>"
	default:
		return string(k)
	}
}

// IsSelfInserting reports whether the chord is a plain printable character
// with no modifiers, which bypasses the trie and is emitted as InsertChar
// directly (§4.4).
func (c Chord) IsSelfInserting() bool {
	return c.Mods == 0 && c.Key >= 0 && c.Key != KeyEnter
}

// node is a trie node: either a leaf bound to a command name, or an
// internal node with children keyed by chord.
type node struct {
	command  string
	isLeaf   bool
	children map[Chord]*node
}

func newNode() *node {
	return &node{children: make(map[Chord]*node)}
}

// Keymap is a static trie of chord sequences to command names, built once
// at startup.
type Keymap struct {
	root *node
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{root: newNode()}
}

// Bind associates a chord sequence with a command name, creating
// intermediate prefix nodes as needed.
func (k *Keymap) Bind(sequence []Chord, command string) {
	n := k.root
	for _, c := range sequence {
		child, ok := n.children[c]
		if !ok {
			child = newNode()
			n.children[c] = child
		}
		n = child
	}
	n.isLeaf = true
	n.command = command
}

// Outcome classifies what happened when a chord was dispatched.
type Outcome int

const (
	// OutcomeCommand: the path resolved to a bound command; Command holds
	// its name and the pending path has been cleared.
	OutcomeCommand Outcome = iota
	// OutcomePartial: the path is a valid prefix; more chords are awaited.
	OutcomePartial
	// OutcomeMiss: the path matches no binding; the pending path is cleared.
	OutcomeMiss
	// OutcomeCancel: Ctrl-g was pressed; the pending path is cleared.
	OutcomeCancel
	// OutcomeSelfInsert: a plain printable chord bypassed the trie.
	OutcomeSelfInsert
)

// Dispatcher holds the mutable state of an in-progress key sequence:
// the chord path accumulated so far.
type Dispatcher struct {
	keymap  *Keymap
	pending []Chord
}

// NewDispatcher creates a dispatcher bound to a keymap, starting idle.
func NewDispatcher(k *Keymap) *Dispatcher {
	return &Dispatcher{keymap: k}
}

// Pending returns the chord path accumulated so far (empty when idle).
func (d *Dispatcher) Pending() []Chord {
	return append([]Chord(nil), d.pending...)
}

// Result is what Dispatch returns for one incoming chord.
type Result struct {
	Outcome Outcome
	Command string
	Rune    rune // populated for OutcomeSelfInsert
	Path    []Chord
}

// Dispatch feeds one chord into the dispatcher and returns the resulting
// outcome, per the algorithm in §4.4.
func (d *Dispatcher) Dispatch(c Chord) Result {
	if c.Mods&Ctrl != 0 && c.Key == 'g' {
		d.pending = nil
		return Result{Outcome: OutcomeCancel}
	}

	if len(d.pending) == 0 && c.IsSelfInserting() {
		return Result{Outcome: OutcomeSelfInsert, Rune: c.Key}
	}

	path := append(d.pending, c)

	n := d.keymap.root
	for _, step := range path {
		child, ok := n.children[step]
		if !ok {
			d.pending = nil
			return Result{Outcome: OutcomeMiss, Path: path}
		}
		n = child
	}

	if n.isLeaf {
		d.pending = nil
		return Result{Outcome: OutcomeCommand, Command: n.command, Path: path}
	}

	d.pending = path
	return Result{Outcome: OutcomePartial, Path: path}
}

// Cancel clears the pending path without emitting a command (used when the
// dispatcher is reset externally, e.g. by a minibuffer cancel that also
// wants to drop an in-flight prefix).
func (d *Dispatcher) Cancel() {
	d.pending = nil
}

// PathString renders a chord path the way "undefined key sequence <path>"
// messages do (§4.4).
func PathString(path []Chord) string {
	s := ""
	for i, c := range path {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}

// UndefinedMessage formats the miss message for a dispatch Result.
func UndefinedMessage(path []Chord) string {
	return fmt.Sprintf("undefined key sequence: %s", PathString(path))
}
