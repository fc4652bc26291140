// Package tui is the terminal front end: the only package in this module
// allowed to import a terminal backend (§4.4, §6). It decodes tcell key
// events into keymap.Chord, drives the command processor's event loop,
// and renders the processor's per-frame Snapshot to the screen.
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/tekugo/altre/internal/keymap"
)

// decodeKey turns one tcell key event into a keymap.Chord, the boundary
// §4.4 assigns to the terminal layer rather than the dispatcher itself.
// Named keys map onto the package's own Key* sentinels; Ctrl-letter keys
// arrive from tcell as dedicated KeyCtrlA..KeyCtrlZ constants rather than
// KeyRune+ModCtrl, so both forms are recognized.
func decodeKey(ev *tcell.EventKey) keymap.Chord {
	var mods keymap.Modifier
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods |= keymap.Meta
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods |= keymap.Shift
	}

	if named, ok := namedKeys[ev.Key()]; ok {
		return keymap.Chord{Key: named, Mods: mods}
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return keymap.Chord{Key: rune('a' + (ev.Key() - tcell.KeyCtrlA)), Mods: mods | keymap.Ctrl}
	}

	if ev.Key() == tcell.KeyCtrlSpace {
		return keymap.Chord{Key: ' ', Mods: mods | keymap.Ctrl}
	}

	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods |= keymap.Ctrl
	}
	return keymap.Chord{Key: ev.Rune(), Mods: mods}
}

var namedKeys = map[tcell.Key]rune{
	tcell.KeyEnter:      keymap.KeyEnter,
	tcell.KeyBackspace:  keymap.KeyBackspace,
	tcell.KeyBackspace2: keymap.KeyBackspace,
	tcell.KeyTab:        keymap.KeyTab,
	tcell.KeyEscape:     keymap.KeyEscape,
	tcell.KeyUp:         keymap.KeyUp,
	tcell.KeyDown:       keymap.KeyDown,
	tcell.KeyLeft:       keymap.KeyLeft,
	tcell.KeyRight:      keymap.KeyRight,
	tcell.KeyHome:       keymap.KeyHome,
	tcell.KeyEnd:        keymap.KeyEnd,
	tcell.KeyPgUp:       keymap.KeyPageUp,
	tcell.KeyPgDn:       keymap.KeyPageDown,
	tcell.KeyDelete:     keymap.KeyDelete,
}
