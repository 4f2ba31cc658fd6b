package golf

// Step advances the ball by one scheduler tick on course c. seconds is the
// time since the game started and only drives the windmill. It reports
// whether the ball dropped into the cup during this tick.
//
// Passes run once each, in a fixed order. Overlap left behind by one pass is
// picked up again on the next tick.
func Step(c *Course, b *Ball, t Tuning, seconds float64) bool {
	if b.Rolling {
		b.Position = b.Position.Plus(b.Velocity)
		b.Velocity = b.Velocity.Times(t.Friction)
		if b.Speed() < t.StopSpeed {
			b.stop()
		}
	}

	collideBounds(b, c, t.Bounce)

	for _, o := range c.Obstacles {
		if o.Kind == ObstacleWall {
			collideRect(b, o.Rect, t.Bounce, t.RectClearance)
		}
	}
	for _, p := range c.Props {
		collideRect(b, p.Rect, t.Bounce, t.RectClearance)
	}
	for _, o := range c.Obstacles {
		if o.Kind == ObstacleWing {
			collideWing(b, o, c.Hole.Position, t)
		}
	}
	if c.Windmill != nil {
		collideBlade(b, c.Windmill, seconds, t)
	}

	keepInside(b, c)

	if captured := pullToCup(b, c, t); captured {
		return true
	}

	// a resting ball can be set moving by the blade or the cup's pull
	if b.Speed() > t.StopSpeed {
		b.Rolling = true
	} else if !b.Rolling {
		b.Velocity = Vec2{}
	}
	return false
}

// pullToCup draws a nearby ball toward the cup and captures it when it is
// both deep enough and slow enough.
func pullToCup(b *Ball, c *Course, t Tuning) bool {
	hole := c.Hole.Position
	toHole := hole.Minus(b.Position)
	d := toHole.Magnitude()

	if d < t.PullRadius {
		b.Velocity = b.Velocity.Plus(toHole.Times(t.pullStrength(c.Compact) * t.PullGain))
	}

	if d < c.Hole.Radius*t.CaptureRatio && b.Speed() < t.captureSpeed(c.Compact) {
		b.Position = hole
		b.stop()
		return true
	}
	return false
}
