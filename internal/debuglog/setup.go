package debuglog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Setup builds the slog handler chain §6 describes from the process
// environment: ALTRE_DEBUG=1 enables a stderr text handler (and an
// in-memory ring, returned to the caller); ALTRE_GUI_DEBUG_LOG=<path>
// additionally tees JSON Lines records to that file. Whenever ALTRE_DEBUG
// is not "1" the result is a disabled logger and a nil Ring, whatever
// ALTRE_GUI_DEBUG_LOG says.
func Setup(getenv func(string) string) (logger *slog.Logger, ring *Ring, closeFile func() error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	closeFile = func() error { return nil }

	if getenv("ALTRE_DEBUG") != "1" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, closeFile
	}

	ringHandler := NewRingHandler(500, slog.LevelDebug)
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	handlers := []slog.Handler{ringHandler, stderrHandler}

	if path := getenv("ALTRE_GUI_DEBUG_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "debuglog: cannot open %s: %v\n", path, err)
		} else {
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
			closeFile = f.Close
		}
	}

	return slog.New(NewMultiHandler(handlers...)), ringHandler.Ring(), closeFile
}
