package terminal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/inconshreveable/log15"

	"github.com/wricardo/terminal-snake/game/loop"
)

// ErrClosed is returned when drawing on a screen that has been closed
var ErrClosed = errors.New("terminal closed")

const eventBuffer = 32

var (
	frameStyle  = tcell.StyleDefault
	statusStyle = tcell.StyleDefault.Bold(true)
	pauseStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon).Bold(true)
)

// Screen draws frames on a tcell screen and reads keys from it
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	logger log15.Logger

	mu          sync.Mutex
	closed      bool
	frameHeight int
	closeOnce   sync.Once
}

var _ loop.Terminal = (*Screen)(nil)

// New opens the controlling terminal
func New(logger log15.Logger) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s, logger)
}

// NewWithScreen initialises s and starts the event pump. The caller must
// Close the returned Screen to restore the terminal.
func NewWithScreen(s tcell.Screen, logger log15.Logger) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log15.New()
		logger.SetHandler(log15.DiscardHandler())
	}

	s.HideCursor()
	s.Clear()

	scr := &Screen{
		screen: s,
		events: make(chan tcell.Event, eventBuffer),
		done:   make(chan struct{}),
		logger: logger.New("component", "terminal"),
	}
	go scr.pump()
	return scr, nil
}

func (s *Screen) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Clear blanks the back buffer
func (s *Screen) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.screen.Clear()
	return nil
}

// Draw writes the frame line by line from the top left corner, the status
// line under it, and shows the result
func (s *Screen) Draw(frame, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	for y, line := range lines {
		drawText(s.screen, 0, y, line, frameStyle)
	}
	s.frameHeight = len(lines)
	drawText(s.screen, 0, s.frameHeight, status, statusStyle)
	s.screen.Show()
	return nil
}

// PollKey returns the latest key pressed since the previous call, or
// loop.KeyNone. A quit key wins over any keys pressed after it.
func (s *Screen) PollKey() string {
	key := loop.KeyNone
	for {
		select {
		case ev := <-s.events:
			if name := s.handleEvent(ev); name != loop.KeyNone && !loop.IsQuitKey(key) {
				key = name
			}
		default:
			return key
		}
	}
}

// Pause shows message under the frame and blocks until a key is pressed or
// ctx is done. Keys already queued before the pause are discarded.
func (s *Screen) Pause(ctx context.Context, message string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	drawText(s.screen, 0, s.frameHeight+1, message, pauseStyle)
	drawText(s.screen, 0, s.frameHeight+2, "Press any key to exit", statusStyle)
	s.screen.Show()
	s.mu.Unlock()

	s.PollKey()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return ErrClosed
		case ev := <-s.events:
			if s.handleEvent(ev) != loop.KeyNone {
				return nil
			}
		}
	}
}

// Close restores the terminal and stops the event pump
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.done)
		s.screen.Fini()
	})
	return nil
}

func (s *Screen) handleEvent(ev tcell.Event) string {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return KeyName(e)
	case *tcell.EventResize:
		s.logger.Debug("terminal resized")
		s.mu.Lock()
		if !s.closed {
			s.screen.Sync()
		}
		s.mu.Unlock()
	}
	return loop.KeyNone
}

// KeyName maps a tcell key event to the names loop understands
func KeyName(e *tcell.EventKey) string {
	switch e.Key() {
	case tcell.KeyUp:
		return loop.KeyUp
	case tcell.KeyDown:
		return loop.KeyDown
	case tcell.KeyLeft:
		return loop.KeyLeft
	case tcell.KeyRight:
		return loop.KeyRight
	case tcell.KeyEscape:
		return loop.KeyEsc
	case tcell.KeyCtrlC:
		return loop.KeyCtrlC
	case tcell.KeyRune:
		return string(e.Rune())
	}
	return loop.KeyNone
}

func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) {
	col := x
	for _, ch := range text {
		s.SetContent(col, y, ch, nil, st)
		col++
	}
}
