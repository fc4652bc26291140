// Package debuglog wires Altre's ALTRE_DEBUG/ALTRE_GUI_DEBUG_LOG
// diagnostics (§6) through log/slog: a bounded in-memory ring (handed back
// by Setup; no package in this module displays it), fanned out to stderr
// text output and an
// optional JSON Lines file. Grounded on the teacher's fixed-capacity
// Log ring (log.go) and Observable/Subject fanout (observer.go),
// generalized from an in-memory table widget's data source to
// slog.Handler, since slog is the standard-library logging facility and
// nothing in the dependency pack supplies a third-party one (§6 design
// note).
package debuglog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Source  string
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %-5s %s", e.Time.Format("15:04:05.000"), e.Level, e.Message)
}

// Ring is a fixed-capacity circular buffer of Entry, the same start/count
// bookkeeping as the teacher's Log type (log.go), rewritten to back a
// slog.Handler instead of a table widget's data source.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	start   int
	count   int
}

// NewRing creates a ring holding at most capacity entries.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity), size: capacity}
}

func (r *Ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	index := (r.start + r.count) % r.size
	r.entries[index] = e
	if r.count < r.size {
		r.count++
	} else {
		r.start = (r.start + 1) % r.size
	}
}

// Entries returns the buffered entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.start+i)%r.size]
	}
	return out
}

// RingHandler is a slog.Handler that appends every record to a Ring
// instead of writing it anywhere (§6: "a ring-buffer slog.Handler mirrors
// log.go's bounded ring"). The records are readable only through Ring();
// cmd/altre discards the ring and internal/tui has no debug overlay.
type RingHandler struct {
	ring  *Ring
	level slog.Leveler
}

// NewRingHandler creates a handler backed by a fresh Ring of the given
// capacity.
func NewRingHandler(capacity int, level slog.Leveler) *RingHandler {
	return &RingHandler{ring: NewRing(capacity), level: level}
}

// Ring exposes the underlying buffer.
func (h *RingHandler) Ring() *Ring { return h.ring }

func (h *RingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *RingHandler) Handle(_ context.Context, record slog.Record) error {
	source := ""
	record.Attrs(func(a slog.Attr) bool {
		if a.Key == "source" {
			source = a.Value.String()
		}
		return true
	})
	h.ring.add(Entry{Time: record.Time, Level: record.Level, Source: source, Message: record.Message})
	return nil
}

func (h *RingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *RingHandler) WithGroup(_ string) slog.Handler      { return h }
