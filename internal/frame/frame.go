// Package frame records golf drawing calls as a JSON display list that a
// browser replays onto a <canvas>.
package frame

import (
	"fmt"
	"image/color"
	"math"

	"github.com/playmatatu/golfcard/internal/golf"
)

// Op kinds, one per golf.Canvas method.
const (
	OpClear         = "clear"
	OpFillRect      = "fill_rect"
	OpStrokeRect    = "stroke_rect"
	OpFillPolygon   = "fill_poly"
	OpStrokePolygon = "stroke_poly"
	OpFillCircle    = "fill_circle"
	OpStrokeCircle  = "stroke_circle"
	OpLine          = "line"
	OpText          = "text"
)

// Op is one drawing instruction. Pts holds x,y pairs; rects use X, Y, W, H;
// circles use X, Y, R.
type Op struct {
	Op    string    `json:"op"`
	Color string    `json:"c"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	W     float64   `json:"w,omitempty"`
	H     float64   `json:"h,omitempty"`
	R     float64   `json:"r,omitempty"`
	Pts   []float64 `json:"pts,omitempty"`
	Width float64   `json:"lw,omitempty"`
	Dash  float64   `json:"dash,omitempty"`
	Text  string    `json:"text,omitempty"`
}

// Frame is one rendered picture in logical units. The client scales by Ratio.
type Frame struct {
	Seq    uint64  `json:"seq"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ratio  float64 `json:"ratio"`
	Ops    []Op    `json:"ops"`
}

// Recorder implements golf.Canvas by appending ops.
type Recorder struct {
	ops []Op
	seq uint64
}

var _ golf.Canvas = (*Recorder)(nil)

// Flush returns the ops recorded since the last flush as a frame.
func (r *Recorder) Flush(width, height, ratio float64) Frame {
	r.seq++
	f := Frame{Seq: r.seq, Width: width, Height: height, Ratio: ratio, Ops: r.ops}
	r.ops = nil
	return f
}

// Len reports how many ops are waiting to be flushed.
func (r *Recorder) Len() int { return len(r.ops) }

func (r *Recorder) Clear(c color.Color) {
	r.ops = append(r.ops[:0], Op{Op: OpClear, Color: CSS(c)})
}

func (r *Recorder) FillRect(rect golf.Rect, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpFillRect, Color: CSS(c), X: round(rect.X), Y: round(rect.Y), W: round(rect.W), H: round(rect.H)})
}

func (r *Recorder) StrokeRect(rect golf.Rect, width float64, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpStrokeRect, Color: CSS(c), X: round(rect.X), Y: round(rect.Y), W: round(rect.W), H: round(rect.H), Width: width})
}

func (r *Recorder) FillPolygon(pts []golf.Vec2, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpFillPolygon, Color: CSS(c), Pts: flatten(pts)})
}

func (r *Recorder) StrokePolygon(pts []golf.Vec2, width float64, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpStrokePolygon, Color: CSS(c), Pts: flatten(pts), Width: width})
}

func (r *Recorder) FillCircle(center golf.Vec2, radius float64, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpFillCircle, Color: CSS(c), X: round(center.X), Y: round(center.Y), R: round(radius)})
}

func (r *Recorder) StrokeCircle(center golf.Vec2, radius, width float64, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpStrokeCircle, Color: CSS(c), X: round(center.X), Y: round(center.Y), R: round(radius), Width: width})
}

func (r *Recorder) Line(from, to golf.Vec2, width, dash float64, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpLine, Color: CSS(c), Pts: flatten([]golf.Vec2{from, to}), Width: width, Dash: dash})
}

func (r *Recorder) Text(s string, at golf.Vec2, c color.Color) {
	r.ops = append(r.ops, Op{Op: OpText, Color: CSS(c), X: round(at.X), Y: round(at.Y), Text: s})
}

// CSS formats c as #rrggbb when opaque and rgba() otherwise.
func CSS(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, float64(n.A)/255)
}

func flatten(pts []golf.Vec2) []float64 {
	out := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		out = append(out, round(p.X), round(p.Y))
	}
	return out
}

// round keeps two decimals, plenty for a canvas and a third of the bytes.
func round(v float64) float64 {
	return math.Round(v*100) / 100
}
