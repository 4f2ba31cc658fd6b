package golf

import (
	"context"
	"errors"
	"log"
	"math"
	"time"
)

var (
	ErrNoCanvas = errors.New("golf: surface has no canvas")
)

// Option configures a Game before it starts.
type Option func(*Game)

func WithTuning(t Tuning) Option {
	return func(g *Game) { g.tuning = t }
}

func WithFeatures(f Features) Option {
	return func(g *Game) { g.features = f }
}

func WithScoreSink(s ScoreSink) Option {
	return func(g *Game) { g.score = s }
}

// Game is a single mini-golf hole mounted on a surface. It is not safe for
// concurrent use: ticks, pointer events and resizes must be delivered from
// one goroutine, which is how every scheduler in this module drives it.
type Game struct {
	surface  Surface
	canvas   Canvas
	tuning   Tuning
	features Features
	score    ScoreSink

	course  *Course
	ball    Ball
	aim     Aim
	strokes int

	sunk   bool
	sunkAt time.Duration
	won    bool
	done   chan struct{}

	now           time.Duration
	resizePending bool
	backingW      int
	backingH      int
}

// Start mounts a game on s. It fails without starting if s cannot be drawn on.
// The course is built immediately when s already has a size, otherwise on
// the first tick that finds one.
func Start(s Surface, opts ...Option) (*Game, error) {
	if s == nil {
		return nil, ErrNoCanvas
	}
	canvas := s.Canvas()
	if canvas == nil {
		return nil, ErrNoCanvas
	}

	g := &Game{
		surface:  s,
		canvas:   canvas,
		tuning:   DefaultTuning(),
		features: AllFeatures(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.Resize()
	g.publishScore()
	return g, nil
}

// Done is closed once, WinDelay after the ball drops.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the hole is won or ctx ends.
func (g *Game) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resize rebuilds the course from the surface's current bounds. A surface
// that is not laid out yet, or is outside the playable range, is retried on
// the next tick. Any resize drops the gesture in progress; rebuilding puts
// the ball back on the tee without touching the stroke count.
func (g *Game) Resize() {
	w, h := g.surface.Bounds()
	if w <= 0 || h <= 0 || !g.tuning.Playable(w, h) {
		g.resizePending = true
		g.aim = Aim{}
		return
	}
	g.resizePending = false

	ratio := g.surface.PixelRatio()
	if math.IsNaN(ratio) {
		ratio = 1
	}
	ratio = clamp(ratio, 1, 2)
	bw, bh := int(math.Round(w*ratio)), int(math.Round(h*ratio))
	if bs, ok := g.surface.(BackingSizer); ok && (bw != g.backingW || bh != g.backingH) {
		bs.SetBackingSize(bw, bh, ratio)
	}
	g.backingW, g.backingH = bw, bh

	if g.course != nil && g.course.Width == w && g.course.Height == h {
		return
	}

	g.course = BuildCourse(w, h, g.tuning, g.features)
	g.aim = Aim{}
	if g.sunk {
		g.ball.Position = g.course.Hole.Position
		g.ball.Radius = g.course.BallRadius
		g.ball.stop()
		return
	}
	g.resetBall(true)
}

// Reset puts the ball back on the tee and clears the stroke count. It does
// nothing once the ball has dropped.
func (g *Game) Reset() {
	if g.course == nil || g.sunk {
		return
	}
	g.aim = Aim{}
	g.resetBall(false)
}

func (g *Game) resetBall(soft bool) {
	g.ball = Ball{
		Position: g.course.Tee.Position,
		Radius:   g.course.BallRadius,
	}
	if !soft {
		g.strokes = 0
		g.publishScore()
	}
}

// Tick advances the game to elapsed, the time since it started. Time never
// runs backwards; an earlier elapsed is treated as no time passing.
func (g *Game) Tick(elapsed time.Duration) {
	if elapsed > g.now {
		g.now = elapsed
	}
	if g.resizePending {
		g.Resize()
	}
	if g.course == nil {
		return
	}

	if !g.sunk {
		if Step(g.course, &g.ball, g.tuning, g.now.Seconds()) {
			g.sunk = true
			g.sunkAt = g.now
			g.aim = Aim{}
			log.Printf("[GOLF] Ball sunk after %d strokes", g.strokes)
		} else if g.ball.Rolling {
			g.aim = Aim{}
		}
	}

	if g.sunk && !g.won && g.now-g.sunkAt >= g.tuning.WinDelay {
		g.won = true
		close(g.done)
	}
}

// Render draws the current state on the surface's canvas.
func (g *Game) Render() {
	g.Draw(g.canvas)
}

func (g *Game) publishScore() {
	if g.score != nil {
		g.score.SetStrokes(g.strokes)
	}
}

// Course returns the current layout, or nil before the surface has a size.
func (g *Game) Course() *Course { return g.course }

func (g *Game) Ball() Ball { return g.ball }

func (g *Game) Aim() Aim { return g.aim }

func (g *Game) Strokes() int { return g.strokes }

func (g *Game) Sunk() bool { return g.sunk }

// Won reports whether Done has been closed.
func (g *Game) Won() bool { return g.won }

func (g *Game) Elapsed() time.Duration { return g.now }

func (g *Game) Tuning() Tuning { return g.tuning }
