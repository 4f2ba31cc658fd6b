package golf

import "math"

// Aim is one in-progress drag on the ball. Pulling back shoots forward.
type Aim struct {
	Active  bool `json:"active"`
	Start   Vec2 `json:"start"`
	Current Vec2 `json:"current"`
}

// Drag is the launch vector: from the current pointer back to the start.
func (a Aim) Drag() Vec2 {
	return a.Start.Minus(a.Current)
}

// LaunchVelocity maps a drag vector to a launch velocity. Power grows
// linearly with drag length up to divisor and is then capped.
func LaunchVelocity(drag Vec2, divisor, maxSpeed float64) Vec2 {
	power := math.Min(1, drag.Magnitude()/divisor)
	ang := math.Atan2(drag.Y, drag.X)
	s, c := math.Sincos(ang)
	return Vec2{X: c * power * maxSpeed, Y: s * power * maxSpeed}
}

// PointerDown starts aiming if the ball is at rest and the pointer is close
// enough to it. It reports whether a gesture started.
func (g *Game) PointerDown(x, y float64) bool {
	if g.course == nil || g.sunk || g.ball.Rolling {
		return false
	}
	p := Vec2{X: x, Y: y}
	hitR := g.ball.Radius + g.tuning.hitBonus(g.course.Compact)
	if p.DistanceTo(g.ball.Position) > hitR {
		return false
	}
	g.aim = Aim{Active: true, Start: p, Current: p}
	return true
}

// PointerMove updates the guide line of an active gesture.
func (g *Game) PointerMove(x, y float64) {
	if !g.aim.Active {
		return
	}
	g.aim.Current = Vec2{X: x, Y: y}
}

// PointerUp releases the gesture and strikes the ball. Every release counts
// as a stroke, even a zero-length drag.
func (g *Game) PointerUp(x, y float64) bool {
	if !g.aim.Active {
		return false
	}
	g.aim.Current = Vec2{X: x, Y: y}
	drag := g.aim.Drag()
	g.aim = Aim{}

	if g.sunk {
		return false
	}
	g.ball.Velocity = LaunchVelocity(drag, g.tuning.powerDivisor(g.course.Compact), g.tuning.MaxSpeed)
	g.ball.Rolling = true
	g.strokes++
	g.publishScore()
	return true
}

// PointerCancel drops the gesture without striking.
func (g *Game) PointerCancel() {
	g.aim = Aim{}
}
