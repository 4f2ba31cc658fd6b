package golf

import (
	"image/color"
	"math"
)

var (
	colorTurf        = color.RGBA{0xbf, 0xf0, 0xa8, 0xff}
	colorBorder      = color.RGBA{0x34, 0xb3, 0xa0, 0xff}
	colorWall        = color.RGBA{0x93, 0xc5, 0xfd, 0xff}
	colorWing        = color.NRGBA{0x34, 0xb3, 0xa0, 0x73}
	colorBlade       = color.RGBA{0x72, 0x3d, 0x11, 0xff}
	colorCupRing     = color.RGBA{0x60, 0xa5, 0xfa, 0xff}
	colorCup         = color.RGBA{0x0b, 0x10, 0x20, 0xff}
	colorPole        = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colorFlag        = color.RGBA{0xf4, 0x3f, 0x5e, 0xff}
	colorGuide       = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	colorBall        = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBallSunk    = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	colorBallEdge    = color.NRGBA{0, 0, 0, 0x26}
	colorShadow      = color.NRGBA{0, 0, 0, 0x1f}
	colorCarRoof     = color.RGBA{0x37, 0x41, 0x51, 0xff}
	colorCarWheel    = color.RGBA{0x11, 0x18, 0x27, 0xff}
	colorCarBumper   = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	colorPlate       = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	colorPlateBorder = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	colorPlateText   = color.RGBA{0x11, 0x18, 0x27, 0xff}
	colorBackground  = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

const hubRadius = 10

// Draw paints the current state on c. It does not change the game.
func (g *Game) Draw(c Canvas) {
	c.Clear(colorBackground)
	course := g.course
	if course == nil {
		return
	}

	drawField(c, course)

	for _, o := range course.Obstacles {
		if o.Kind == ObstacleWall {
			c.FillRect(o.Rect, colorWall)
		}
	}
	for _, o := range course.Obstacles {
		if o.Kind == ObstacleWing {
			pts := o.Rect.Corners(degToRad(o.Angle))
			c.FillPolygon(pts[:], colorWing)
		}
	}
	for _, p := range course.Props {
		drawCar(c, p)
	}
	for _, p := range course.Plates {
		drawPlate(c, p)
	}
	if w := course.Windmill; w != nil {
		drawWindmill(c, w, g.now.Seconds())
	}
	drawCup(c, course)

	if g.aim.Active {
		d := g.aim.Drag()
		c.Line(g.ball.Position, g.ball.Position.Plus(d), 2, 6, colorGuide)
	}

	drawBall(c, g.ball, g.sunk)
}

func drawField(c Canvas, course *Course) {
	p := course.Padding
	field := course.Field()
	c.FillRect(field, colorTurf)

	alpha, gap, border := uint8(0x1f), 22.0, 3.0
	if course.Compact {
		alpha, gap, border = 0x14, 26.0, 2.0
	}
	stripe := color.NRGBA{0xff, 0xff, 0xff, alpha}
	for y := p + 20; y < course.Height-p; y += gap {
		c.FillRect(Rect{X: p + 10, Y: y, W: course.Width - 2*p - 20, H: 10}, stripe)
	}
	c.StrokeRect(field, border, colorBorder)
}

// local maps a point given in a shape's own frame into world space.
func local(origin Vec2, scale, rad float64, x, y float64) Vec2 {
	return Vec2{X: x * scale, Y: y * scale}.Rotate(rad).Plus(origin)
}

func localRect(origin Vec2, scale, rad float64, x, y, w, h float64) []Vec2 {
	return []Vec2{
		local(origin, scale, rad, x, y),
		local(origin, scale, rad, x+w, y),
		local(origin, scale, rad, x+w, y+h),
		local(origin, scale, rad, x, y+h),
	}
}

func drawCar(c Canvas, p Prop) {
	o, s := p.Center, p.Scale
	c.FillPolygon(localRect(o, s, 0, -32, -12, 64, 24), p.Body)
	c.FillPolygon(localRect(o, s, 0, -16, -18, 32, 10), colorCarRoof)
	c.FillCircle(local(o, s, 0, -20, 12), 6*s, colorCarWheel)
	c.FillCircle(local(o, s, 0, 20, 12), 6*s, colorCarWheel)
	c.FillPolygon(localRect(o, s, 0, -36, -8, 6, 16), colorCarBumper)
	c.FillPolygon(localRect(o, s, 0, 30, -8, 6, 16), colorCarBumper)
}

func drawPlate(c Canvas, p Plate) {
	pts := localRect(p.Position, 1, degToRad(p.Angle), -26, -8, 52, 16)
	c.FillPolygon(pts, colorPlate)
	c.StrokePolygon(pts, 1, colorPlateBorder)
	c.Text(p.Text, p.Position, colorPlateText)
}

func drawWindmill(c Canvas, w *Windmill, seconds float64) {
	blade := localRect(w.Center, 1, w.Angle(seconds), -w.Length, -w.Thickness, 2*w.Length, 2*w.Thickness)
	c.FillPolygon(blade, colorBlade)
	c.FillCircle(w.Center, hubRadius, colorBlade)
}

func drawCup(c Canvas, course *Course) {
	h, r := course.Hole.Position, course.Hole.Radius
	ring := 3.0
	if course.Compact {
		ring = 2
	}
	c.StrokeCircle(h, r+3, ring, colorCupRing)
	c.FillCircle(h, r, colorCup)

	pole := Vec2{X: h.X + r + 8, Y: h.Y}
	c.Line(Vec2{X: pole.X, Y: pole.Y + 12}, Vec2{X: pole.X, Y: pole.Y - 24}, 2, 0, colorPole)
	c.FillPolygon([]Vec2{
		{X: pole.X, Y: pole.Y - 24},
		{X: pole.X + 18, Y: pole.Y - 20},
		{X: pole.X, Y: pole.Y - 12},
	}, colorFlag)
}

func drawBall(c Canvas, b Ball, sunk bool) {
	c.FillPolygon(ellipse(b.Position.Plus(Vec2{X: 2, Y: 3}), b.Radius*1.1, b.Radius*0.7, 16), colorShadow)
	fill := colorBall
	if sunk {
		fill = colorBallSunk
	}
	c.FillCircle(b.Position, b.Radius, fill)
	c.StrokeCircle(b.Position, b.Radius, 1, colorBallEdge)
}

func ellipse(center Vec2, rx, ry float64, segments int) []Vec2 {
	pts := make([]Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Vec2{X: center.X + rx*math.Cos(a), Y: center.Y + ry*math.Sin(a)}
	}
	return pts
}
