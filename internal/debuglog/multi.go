package debuglog

import (
	"context"
	"log/slog"
)

// multiHandler fans a record out to every wrapped handler, the slog
// equivalent of the teacher's Subject.Notify broadcasting to every
// subscribed observer (observer.go), generalized from a single `func(any)`
// callback list to the slog.Handler interface so each sink keeps its own
// level filter and formatting.
type multiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler fans out to every non-nil handler given.
func NewMultiHandler(handlers ...slog.Handler) slog.Handler {
	h := &multiHandler{}
	for _, hh := range handlers {
		if hh != nil {
			h.handlers = append(h.handlers, hh)
		}
	}
	return h
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &multiHandler{handlers: make([]slog.Handler, len(m.handlers))}
	for i, h := range m.handlers {
		next.handlers[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := &multiHandler{handlers: make([]slog.Handler, len(m.handlers))}
	for i, h := range m.handlers {
		next.handlers[i] = h.WithGroup(name)
	}
	return next
}
