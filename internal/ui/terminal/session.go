package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"pomotray/internal/core/timer"
	"pomotray/internal/logging"
	"pomotray/internal/loop"

	"golang.org/x/term"
)

const clearScreen = "\x1b[H\x1b[2J"

// Session drives a controller from single-key commands and redraws the
// view on every timer event. All methods except Run must be called on the
// queue goroutine.
type Session struct {
	controller *timer.Controller
	queue      *loop.Queue
	out        io.Writer
	width      int
	raw        bool

	tips     []string
	tipIndex int
	tip      string
	today    int
}

// NewSession creates a session posting work onto queue and drawing to out.
func NewSession(controller *timer.Controller, queue *loop.Queue, out io.Writer, tips []string) *Session {
	return &Session{
		controller: controller,
		queue:      queue,
		out:        out,
		width:      defaultWidth,
		tips:       tips,
	}
}

// Attach redraws on timer events and picks a new tip for every break.
func (session *Session) Attach(source *timer.Timer) {
	source.Subscribe(func(event timer.Event) {
		if event.Type == timer.EventStateChanged && event.State.Break() && len(session.tips) > 0 {
			session.tip = session.tips[session.tipIndex%len(session.tips)]
			session.tipIndex++
		}
		session.Draw()
	})
}

// SetToday updates the completed pomodoro count shown in the footer.
func (session *Session) SetToday(count int) {
	session.today = count
	session.Draw()
}

// Draw renders the current view.
func (session *Session) Draw() {
	snapshot := SnapshotOf(session.controller.Timer())
	snapshot.Tip = session.tip
	snapshot.Today = session.today
	view := Render(snapshot, session.width)
	if session.raw {
		view = strings.ReplaceAll(view, "\n", "\r\n")
	}
	fmt.Fprint(session.out, clearScreen+view)
	if session.raw {
		fmt.Fprint(session.out, "\r\n")
		return
	}
	fmt.Fprintln(session.out)
}

// HandleKey applies one command key. It returns false when the session
// should end.
func (session *Session) HandleKey(key rune) bool {
	switch key {
	case 's', 'S', ' ':
		session.controller.StartOrResume()
	case 'p', 'P':
		session.controller.PauseOrResume()
	case 'r', 'R':
		session.controller.Reset()
	case 'x', 'X':
		session.controller.SkipBreak()
	case 'e', 'E':
		session.controller.ExtendBreak()
	case 'q', 'Q', 3, 4:
		return false
	default:
		logging.Debugf("terminal: ignored key %q", key)
	}
	return true
}

// Run reads keys from in until quit, EOF or ctx ends, executing queued work
// on the calling goroutine. When in is a terminal it is put in raw mode for
// the duration.
func (session *Session) Run(ctx context.Context, in io.Reader) error {
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		state, err := term.MakeRaw(int(file.Fd()))
		if err != nil {
			return fmt.Errorf("enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(int(file.Fd()), state)
		}()
		session.raw = true
	}
	if file, ok := session.out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil {
			session.width = width
		}
	}

	go session.readKeys(in)
	go func() {
		<-ctx.Done()
		session.queue.Close()
	}()

	session.queue.Post(session.Draw)
	session.queue.Run()
	return nil
}

func (session *Session) readKeys(in io.Reader) {
	reader := bufio.NewReader(in)
	for {
		key, _, err := reader.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logging.Warnf("terminal: read input: %v", err)
			}
			session.queue.Close()
			return
		}
		if key == '\n' || key == '\r' {
			continue
		}
		session.queue.Post(func() {
			if !session.HandleKey(key) {
				session.queue.Close()
			}
		})
	}
}
