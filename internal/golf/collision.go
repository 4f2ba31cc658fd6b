package golf

import "math"

// Ball is the only moving body on the course.
type Ball struct {
	Position Vec2    `json:"position"`
	Velocity Vec2    `json:"velocity"`
	Radius   float64 `json:"radius"`
	Rolling  bool    `json:"rolling"`
}

func (b Ball) Speed() float64 {
	return b.Velocity.Magnitude()
}

func (b *Ball) stop() {
	b.Velocity = Vec2{}
	b.Rolling = false
}

// collideBounds keeps the ball inside the padded field, bouncing off each
// boundary line it crossed.
func collideBounds(b *Ball, c *Course, bounce float64) bool {
	p := c.Padding
	hit := false
	if b.Position.X-b.Radius < p {
		b.Position.X = p + b.Radius
		b.Velocity.X *= -bounce
		hit = true
	}
	if b.Position.X+b.Radius > c.Width-p {
		b.Position.X = c.Width - p - b.Radius
		b.Velocity.X *= -bounce
		hit = true
	}
	if b.Position.Y-b.Radius < p {
		b.Position.Y = p + b.Radius
		b.Velocity.Y *= -bounce
		hit = true
	}
	if b.Position.Y+b.Radius > c.Height-p {
		b.Position.Y = c.Height - p - b.Radius
		b.Velocity.Y *= -bounce
		hit = true
	}
	return hit
}

// keepInside clamps the position into the field without touching velocity.
// Push-outs from later passes may otherwise leave the ball over the border.
func keepInside(b *Ball, c *Course) {
	p := c.Padding
	b.Position.X = clamp(b.Position.X, p+b.Radius, math.Max(p+b.Radius, c.Width-p-b.Radius))
	b.Position.Y = clamp(b.Position.Y, p+b.Radius, math.Max(p+b.Radius, c.Height-p-b.Radius))
}

type rectSide int

const (
	sideLeft rectSide = iota
	sideRight
	sideTop
	sideBottom
)

// nearestSide picks the face of r the point p should be resolved through.
// A point outside the rectangle on one axis only uses that axis; a point
// beyond a corner uses the axis with the larger gap; a point inside uses the
// closest face.
func nearestSide(p Vec2, r Rect) rectSide {
	outX := p.X < r.X || p.X > r.X+r.W
	outY := p.Y < r.Y || p.Y > r.Y+r.H

	xSide := sideLeft
	if p.X > r.X+r.W/2 {
		xSide = sideRight
	}
	ySide := sideTop
	if p.Y > r.Y+r.H/2 {
		ySide = sideBottom
	}

	switch {
	case outX && !outY:
		return xSide
	case outY && !outX:
		return ySide
	case outX && outY:
		gapX := math.Max(r.X-p.X, p.X-(r.X+r.W))
		gapY := math.Max(r.Y-p.Y, p.Y-(r.Y+r.H))
		if gapX >= gapY {
			return xSide
		}
		return ySide
	}

	left := p.X - r.X
	right := r.X + r.W - p.X
	top := p.Y - r.Y
	bottom := r.Y + r.H - p.Y
	m := math.Min(math.Min(left, right), math.Min(top, bottom))
	switch m {
	case left:
		return sideLeft
	case right:
		return sideRight
	case top:
		return sideTop
	}
	return sideBottom
}

// collideRect resolves the ball against an axis-aligned rectangle: the
// velocity component across the hit face is reversed and damped, then the
// ball is moved fully outside along that axis.
func collideRect(b *Ball, r Rect, bounce, clearance float64) bool {
	if r.distanceTo(b.Position) > b.Radius {
		return false
	}

	switch nearestSide(b.Position, r) {
	case sideLeft:
		b.Velocity.X *= -bounce
		b.Position.X = r.X - b.Radius - clearance
	case sideRight:
		b.Velocity.X *= -bounce
		b.Position.X = r.X + r.W + b.Radius + clearance
	case sideTop:
		b.Velocity.Y *= -bounce
		b.Position.Y = r.Y - b.Radius - clearance
	case sideBottom:
		b.Velocity.Y *= -bounce
		b.Position.Y = r.Y + r.H + b.Radius + clearance
	}
	return true
}

// wingContact tests the ball against a rotated rectangle. It returns the
// world-space outward normal and the penetration depth.
func wingContact(pos Vec2, radius float64, o Obstacle) (Vec2, float64, bool) {
	ang := degToRad(o.Angle)
	r := o.Rect
	local := pos.RotateAround(r.Center(), -ang)

	nearest := Vec2{X: clamp(local.X, r.X, r.X+r.W), Y: clamp(local.Y, r.Y, r.Y+r.H)}
	delta := local.Minus(nearest)
	dist := delta.Magnitude()
	if dist > radius {
		return Vec2{}, 0, false
	}

	var n Vec2
	var pen float64
	if dist > 0 {
		n = delta.Times(1 / dist)
		pen = radius - dist
	} else {
		var depth float64
		switch nearestSide(local, r) {
		case sideLeft:
			n, depth = Vec2{X: -1}, local.X-r.X
		case sideRight:
			n, depth = Vec2{X: 1}, r.X+r.W-local.X
		case sideTop:
			n, depth = Vec2{Y: -1}, local.Y-r.Y
		default:
			n, depth = Vec2{Y: 1}, r.Y+r.H-local.Y
		}
		pen = radius + depth
	}
	return n.Rotate(ang), pen, true
}

// collideWing bounces the ball off a wing and nudges it toward target so the
// wings funnel shots into the cup.
func collideWing(b *Ball, o Obstacle, target Vec2, t Tuning) bool {
	n, pen, ok := wingContact(b.Position, b.Radius, o)
	if !ok {
		return false
	}
	b.Position = b.Position.Plus(n.Times(pen + t.WingClearance))
	b.Velocity = b.Velocity.Reflect(n).Times(t.Bounce)
	b.Velocity = b.Velocity.Plus(target.Minus(b.Position).Times(t.WingGuide))
	return true
}

// closestOnSegment projects p onto the segment a-b.
func closestOnSegment(p, a, b Vec2) Vec2 {
	ab := b.Minus(a)
	den := ab.Dot(ab)
	if den == 0 {
		return a
	}
	u := clamp(p.Minus(a).Dot(ab)/den, 0, 1)
	return a.Plus(ab.Times(u))
}

// collideBlade bounces the ball off the windmill blade at its current angle.
func collideBlade(b *Ball, w *Windmill, seconds float64, t Tuning) bool {
	a, e := w.Blade(seconds)
	cp := closestOnSegment(b.Position, a, e)
	delta := b.Position.Minus(cp)
	dist := delta.Magnitude()
	reach := b.Radius + w.Thickness
	if dist > reach {
		return false
	}

	var n Vec2
	if dist > 0 {
		n = delta.Times(1 / dist)
	} else {
		n = e.Minus(a).LeftNormal().Normalize()
	}
	b.Velocity = b.Velocity.Reflect(n).Times(t.Bounce)
	b.Position = b.Position.Plus(n.Times(reach - dist + t.BladeClearance))
	return true
}
