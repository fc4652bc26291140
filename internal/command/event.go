package command

import (
	"time"

	"github.com/tekugo/altre/internal/keymap"
)

// EventKind enumerates the input event variants named in §6: "Stream of
// key events ... Non-key events: Resize(w,h), Tick(timestamp)."
type EventKind int

const (
	EventKey EventKind = iota
	EventResize
	EventTick
)

// Event is the abstract input event the core accepts, isolating it from
// any concrete terminal/GUI backend (§1, §9: "the core accepts abstract
// key events").
type Event struct {
	Kind EventKind

	// Populated for EventKey.
	Chord keymap.Chord

	// Populated for EventResize.
	Width, Height int

	// Populated for EventTick; also used to drive minibuffer message
	// expiry (§5: "driven by the event loop timestamp rather than a
	// timer thread").
	Time time.Time
}

// KeyEvent builds an EventKey event for chord c.
func KeyEvent(c keymap.Chord) Event {
	return Event{Kind: EventKey, Chord: c}
}

// ResizeEvent builds an EventResize event.
func ResizeEvent(w, h int) Event {
	return Event{Kind: EventResize, Width: w, Height: h}
}

// TickEvent builds an EventTick event carrying the event loop's current
// timestamp.
func TickEvent(now time.Time) Event {
	return Event{Kind: EventTick, Time: now}
}
