package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tekugo/altre/internal/command"
)

// echoTTL matches the minibuffer's own error/info auto-dismiss window
// (§7: "5-second auto-dismiss"), reused here for messages the dispatcher
// or a command returns outside an active minibuffer session (e.g. the
// "C-x-" partial-prefix echo or "undefined key sequence" misses).
const echoTTL = 5 * time.Second

type echoMessage struct {
	text    string
	isError bool
	until   time.Time
}

// Screen runs Altre's terminal front end: it owns the tcell.Screen, turns
// raw input into command.Event values, and renders the processor's
// Snapshot after every change. Grounded on the teacher's ui.go Run/
// EventLoop split (a polling goroutine feeding a buffered channel that
// the main loop selects on alongside quit/resize), generalized from an
// arbitrary widget tree to Altre's fixed text-viewport/status/minibuffer
// layout.
type Screen struct {
	screen tcell.Screen
	proc   *command.Processor
	events chan tcell.Event
	echo   echoMessage
}

// NewScreen initializes a tcell screen for the current terminal.
func NewScreen(proc *command.Processor) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(styleText)
	s.Clear()
	return &Screen{screen: s, proc: proc, events: make(chan tcell.Event, 16)}, nil
}

// Run drives the event loop until the processor requests a quit (Ctrl-x
// Ctrl-c), then returns nil. Every polled event is preceded by a tick
// carrying the current time, which is what expires minibuffer messages.
func (s *Screen) Run() error {
	defer s.screen.Fini()

	go s.pollEvents()

	width, height := s.screen.Size()
	s.proc.HandleEvent(command.ResizeEvent(width, height))
	s.draw()

	for {
		ev := <-s.events
		s.proc.HandleEvent(command.TickEvent(time.Now()))
		switch ev := ev.(type) {
		case *tcell.EventKey:
			res := s.proc.HandleEvent(command.KeyEvent(decodeKey(ev)))
			s.setEcho(res)
			if s.proc.Quit {
				return nil
			}
			s.draw()
		case *tcell.EventResize:
			w, h := s.screen.Size()
			s.proc.HandleEvent(command.ResizeEvent(w, h))
			s.screen.Sync()
			s.draw()
		}
	}
}

// pollEvents forwards tcell events to the buffered channel, run in its
// own goroutine so PollEvent's blocking read never stalls the main loop
// (teacher's ui.go EventLoop).
func (s *Screen) pollEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.events <- ev
	}
}

func (s *Screen) setEcho(res command.Result) {
	now := time.Now()
	if res.Message == "" {
		if !s.echo.until.IsZero() && now.After(s.echo.until) {
			s.echo = echoMessage{}
		}
		return
	}
	s.echo = echoMessage{
		text:    res.Message,
		isError: res.Severity == command.SeverityError,
		until:   now.Add(echoTTL),
	}
}

func (s *Screen) draw() {
	_, height := s.screen.Size()
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	snap := s.proc.Snapshot(rows)
	render(s.screen, snap, s.echo)
}
