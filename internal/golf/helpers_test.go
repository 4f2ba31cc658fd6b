package golf

import (
	"image/color"
	"time"
)

type op struct {
	kind  string
	color color.Color
	dash  float64
	at    Vec2
	r     float64
}

type recordingCanvas struct {
	ops []op
}

func (c *recordingCanvas) Clear(col color.Color) {
	c.ops = append(c.ops, op{kind: "clear", color: col})
}
func (c *recordingCanvas) FillRect(r Rect, col color.Color) {
	c.ops = append(c.ops, op{kind: "fillRect", color: col, at: Vec2{X: r.X, Y: r.Y}})
}
func (c *recordingCanvas) StrokeRect(r Rect, w float64, col color.Color) {
	c.ops = append(c.ops, op{kind: "strokeRect", color: col})
}
func (c *recordingCanvas) FillPolygon(pts []Vec2, col color.Color) {
	c.ops = append(c.ops, op{kind: "fillPolygon", color: col})
}
func (c *recordingCanvas) StrokePolygon(pts []Vec2, w float64, col color.Color) {
	c.ops = append(c.ops, op{kind: "strokePolygon", color: col})
}
func (c *recordingCanvas) FillCircle(center Vec2, r float64, col color.Color) {
	c.ops = append(c.ops, op{kind: "fillCircle", color: col, at: center, r: r})
}
func (c *recordingCanvas) StrokeCircle(center Vec2, r, w float64, col color.Color) {
	c.ops = append(c.ops, op{kind: "strokeCircle", color: col, at: center, r: r})
}
func (c *recordingCanvas) Line(from, to Vec2, w, dash float64, col color.Color) {
	c.ops = append(c.ops, op{kind: "line", color: col, dash: dash, at: from})
}
func (c *recordingCanvas) Text(s string, at Vec2, col color.Color) {
	c.ops = append(c.ops, op{kind: "text", color: col, at: at})
}

func (c *recordingCanvas) count(kind string, col color.Color) int {
	n := 0
	for _, o := range c.ops {
		if o.kind == kind && (col == nil || o.color == col) {
			n++
		}
	}
	return n
}

type fakeSurface struct {
	w, h    float64
	ratio   float64
	canvas  Canvas
	backW   int
	backH   int
	resized int
}

func (s *fakeSurface) Canvas() Canvas             { return s.canvas }
func (s *fakeSurface) Bounds() (float64, float64) { return s.w, s.h }
func (s *fakeSurface) PixelRatio() float64        { return s.ratio }
func (s *fakeSurface) SetBackingSize(w, h int, _ float64) {
	s.backW, s.backH = w, h
	s.resized++
}

type scoreRecorder struct {
	values []int
}

func (s *scoreRecorder) SetStrokes(n int) { s.values = append(s.values, n) }

func (s *scoreRecorder) last() int {
	if len(s.values) == 0 {
		return -1
	}
	return s.values[len(s.values)-1]
}

func newSurface(w, h float64) *fakeSurface {
	return &fakeSurface{w: w, h: h, ratio: 1, canvas: &recordingCanvas{}}
}

func mustStart(t interface{ Fatalf(string, ...any) }, s Surface, opts ...Option) *Game {
	g, err := Start(s, opts...)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return g
}

// openCourse is a course with nothing on it but a far-away cup.
func openCourse() *Course {
	return &Course{
		Width:      1000,
		Height:     600,
		Padding:    18,
		BallRadius: 7,
		Tee:        Spot{Position: Vec2{X: 70, Y: 530}, Radius: 7},
		Hole:       Spot{Position: Vec2{X: 900, Y: 80}, Radius: 16},
	}
}

func tick(n int) time.Duration {
	return time.Duration(n) * time.Second / 60
}
