package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/playmatatu/golfcard/internal/frame"
	"github.com/playmatatu/golfcard/internal/golf"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrClosed       = errors.New("session closed")
	ErrInputBacklog = errors.New("session input backlog full")
	ErrBadInput     = errors.New("invalid session input")
	ErrTooMany      = errors.New("too many live sessions")
)

// Input kinds accepted from a client.
const (
	InputDown   = "down"
	InputMove   = "move"
	InputUp     = "up"
	InputCancel = "cancel"
	InputResize = "resize"
	InputReset  = "reset"
)

// Input is one pointer or viewport event from the client.
type Input struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Ratio  float64 `json:"ratio,omitempty"`
}

// Event types sent to the client.
const (
	EventFrame   = "frame"
	EventStrokes = "strokes"
	EventWon     = "won"
)

// Event is something the session wants its client to see.
type Event struct {
	Type      string       `json:"type"`
	Frame     *frame.Frame `json:"frame,omitempty"`
	Strokes   int          `json:"strokes"`
	Unlock    string       `json:"unlock_token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

// surface is the viewport the browser reported. It is only touched by the
// session goroutine.
type surface struct {
	width, height, ratio float64
	backW, backH         int
	rec                  *frame.Recorder
}

func (s *surface) Canvas() golf.Canvas                { return s.rec }
func (s *surface) Bounds() (float64, float64)         { return s.width, s.height }
func (s *surface) PixelRatio() float64                { return s.ratio }
func (s *surface) SetBackingSize(w, h int, _ float64) { s.backW, s.backH = w, h }

// Session is one browser playing the hole. A single goroutine owns the game;
// everything else talks to it through Send and Events.
type Session struct {
	Token     string
	CreatedAt time.Time

	game    *golf.Game
	surface *surface
	input   chan Input
	events  chan Event
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once

	lastActive atomic.Int64

	mu       sync.RWMutex
	snapshot Snapshot

	onWin func(*Session, int) Event
}

func newSession(token string, width, height, ratio float64, opts []golf.Option, now time.Time) (*Session, error) {
	s := &Session{
		Token:     token,
		CreatedAt: now,
		surface:   &surface{width: width, height: height, ratio: ratio, rec: &frame.Recorder{}},
		input:     make(chan Input, 64),
		events:    make(chan Event, 32),
		stop:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	s.lastActive.Store(now.UnixNano())

	opts = append(opts, golf.WithScoreSink(s))
	g, err := golf.Start(s.surface, opts...)
	if err != nil {
		return nil, err
	}
	s.game = g
	s.refreshSnapshot(now)
	return s, nil
}

// SetStrokes implements golf.ScoreSink.
func (s *Session) SetStrokes(n int) {
	s.emit(Event{Type: EventStrokes, Strokes: n})
}

// ValidViewport rejects sizes no course can be laid out for. Zero is
// allowed: the client resizes once it is laid out.
func ValidViewport(width, height float64) error {
	if !(width >= 0 && height >= 0) {
		return fmt.Errorf("%w: negative viewport", ErrBadInput)
	}
	if width > golf.MaxViewport || height > golf.MaxViewport {
		return fmt.Errorf("%w: viewport larger than %d", ErrBadInput, golf.MaxViewport)
	}
	return nil
}

// Send queues an input for the next tick.
func (s *Session) Send(in Input) error {
	switch in.Kind {
	case InputDown, InputMove, InputUp, InputCancel, InputReset:
	case InputResize:
		if err := ValidViewport(in.Width, in.Height); err != nil {
			return err
		}
	default:
		return ErrBadInput
	}
	select {
	case <-s.stop:
		return ErrClosed
	default:
	}
	select {
	case s.input <- in:
		s.touch(time.Now())
		return nil
	default:
		return ErrInputBacklog
	}
}

// Events streams frames, stroke counts and the win to the attached client.
func (s *Session) Events() <-chan Event { return s.events }

// Done is closed when the session goroutine has exited.
func (s *Session) Done() <-chan struct{} { return s.stopped }

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) close() {
	s.once.Do(func() { close(s.stop) })
}

// run drives the game at hz until ctx ends or the session is closed.
func (s *Session) run(ctx context.Context, hz int) {
	defer close(s.stopped)
	if hz <= 0 {
		hz = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case in := <-s.input:
			s.apply(in)
		case now := <-ticker.C:
			s.drainInput()
			s.advance(now.Sub(s.CreatedAt), now)
		}
	}
}

func (s *Session) drainInput() {
	for {
		select {
		case in := <-s.input:
			s.apply(in)
		default:
			return
		}
	}
}

func (s *Session) apply(in Input) {
	g := s.game
	switch in.Kind {
	case InputDown:
		g.PointerDown(in.X, in.Y)
	case InputMove:
		g.PointerMove(in.X, in.Y)
	case InputUp:
		g.PointerUp(in.X, in.Y)
	case InputCancel:
		g.PointerCancel()
	case InputReset:
		g.Reset()
	case InputResize:
		s.surface.width, s.surface.height = in.Width, in.Height
		if in.Ratio > 0 {
			s.surface.ratio = in.Ratio
		}
		g.Resize()
	}
}

// advance runs one tick at elapsed and emits the frame it produced.
func (s *Session) advance(elapsed time.Duration, now time.Time) {
	wasWon := s.game.Won()
	s.game.Tick(elapsed)
	s.game.Render()

	sf := s.surface
	f := sf.rec.Flush(sf.width, sf.height, clampRatio(sf.ratio))
	s.emit(Event{Type: EventFrame, Frame: &f, Strokes: s.game.Strokes()})

	if !wasWon && s.game.Won() {
		log.Printf("[SESSION] %s won in %d strokes", s.Token, s.game.Strokes())
		ev := Event{Type: EventWon, Strokes: s.game.Strokes()}
		if s.onWin != nil {
			ev = s.onWin(s, s.game.Strokes())
		}
		s.emitWait(ev)
	}
	s.refreshSnapshot(now)
}

// emit drops the event when the client is not keeping up; the next frame
// supersedes it anyway.
func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// emitWait makes room for events that must not be lost.
func (s *Session) emitWait(ev Event) {
	for {
		select {
		case s.events <- ev:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

func (s *Session) refreshSnapshot(now time.Time) {
	g := s.game
	snap := Snapshot{
		Token:     s.Token,
		Strokes:   g.Strokes(),
		Sunk:      g.Sunk(),
		Won:       g.Won(),
		Width:     s.surface.width,
		Height:    s.surface.height,
		CreatedAt: s.CreatedAt,
		UpdatedAt: now,
	}
	if c := g.Course(); c != nil {
		snap.Compact = c.Compact
	}
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

func clampRatio(r float64) float64 {
	if r < 1 || r != r {
		return 1
	}
	if r > 2 {
		return 2
	}
	return r
}
