package screen

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/playmatatu/golfcard/internal/golf"
	"golang.org/x/image/font/basicfont"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas draws golf shapes onto an ebiten image. Coordinates arrive in
// logical units and are multiplied by Scale.
type Canvas struct {
	Target *ebiten.Image
	Scale  float64
}

var _ golf.Canvas = (*Canvas)(nil)

func (c *Canvas) f(v float64) float32 { return float32(v * c.Scale) }

func (c *Canvas) Clear(col color.Color) {
	c.Target.Fill(col)
}

func (c *Canvas) FillRect(r golf.Rect, col color.Color) {
	vector.DrawFilledRect(c.Target, c.f(r.X), c.f(r.Y), c.f(r.W), c.f(r.H), col, true)
}

func (c *Canvas) StrokeRect(r golf.Rect, width float64, col color.Color) {
	vector.StrokeRect(c.Target, c.f(r.X), c.f(r.Y), c.f(r.W), c.f(r.H), c.f(width), col, true)
}

func (c *Canvas) path(pts []golf.Vec2) *vector.Path {
	var p vector.Path
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(c.f(pt.X), c.f(pt.Y))
		} else {
			p.LineTo(c.f(pt.X), c.f(pt.Y))
		}
	}
	p.Close()
	return &p
}

func (c *Canvas) FillPolygon(pts []golf.Vec2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	vs, is := c.path(pts).AppendVerticesAndIndicesForFilling(nil, nil)
	c.drawTriangles(vs, is, col)
}

func (c *Canvas) StrokePolygon(pts []golf.Vec2, width float64, col color.Color) {
	if len(pts) < 2 {
		return
	}
	vs, is := c.path(pts).AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: c.f(width)})
	c.drawTriangles(vs, is, col)
}

func (c *Canvas) drawTriangles(vs []ebiten.Vertex, is []uint16, col color.Color) {
	r, g, b, a := col.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	c.Target.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
		AntiAlias:      true,
	})
}

func (c *Canvas) FillCircle(center golf.Vec2, radius float64, col color.Color) {
	vector.DrawFilledCircle(c.Target, c.f(center.X), c.f(center.Y), c.f(radius), col, true)
}

func (c *Canvas) StrokeCircle(center golf.Vec2, radius, width float64, col color.Color) {
	vector.StrokeCircle(c.Target, c.f(center.X), c.f(center.Y), c.f(radius), c.f(width), col, true)
}

func (c *Canvas) Line(from, to golf.Vec2, width, dash float64, col color.Color) {
	if dash <= 0 {
		vector.StrokeLine(c.Target, c.f(from.X), c.f(from.Y), c.f(to.X), c.f(to.Y), c.f(width), col, true)
		return
	}
	d := to.Minus(from)
	length := d.Magnitude()
	if length == 0 {
		return
	}
	dir := d.Times(1 / length)
	for s := 0.0; s < length; s += 2 * dash {
		e := math.Min(s+dash, length)
		a, b := from.Plus(dir.Times(s)), from.Plus(dir.Times(e))
		vector.StrokeLine(c.Target, c.f(a.X), c.f(a.Y), c.f(b.X), c.f(b.Y), c.f(width), col, true)
	}
}

// Text draws s centered on at with the 7x13 bitmap face. The face does not
// scale, so on dense screens labels stay small.
func (c *Canvas) Text(s string, at golf.Vec2, col color.Color) {
	b := text.BoundString(basicfont.Face7x13, s)
	x := int(math.Round(at.X*c.Scale)) - b.Dx()/2
	y := int(math.Round(at.Y*c.Scale)) + b.Dy()/2 - 2
	text.Draw(c.Target, s, basicfont.Face7x13, x, y, col)
}
