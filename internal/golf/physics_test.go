package golf

import (
	"math"
	"testing"
)

func TestWallHeadOnReversesAndDampens(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	wall := Rect{X: 400, Y: 200, W: 18, H: 200}
	c.Obstacles = []Obstacle{{Name: "wall", Kind: ObstacleWall, Rect: wall}}

	v := 5.0
	b := &Ball{Position: Vec2{X: 390, Y: 300}, Velocity: Vec2{X: v}, Radius: 7, Rolling: true}
	Step(c, b, tun, 0)

	if b.Velocity.X >= 0 {
		t.Fatalf("vx did not flip: %.4f", b.Velocity.X)
	}
	got := math.Abs(b.Velocity.X)
	if got > tun.Bounce*v || got < tun.Bounce*v*0.99 {
		t.Errorf("|vx| = %.4f, want about %.4f", got, tun.Bounce*v)
	}
	if d := wall.distanceTo(b.Position); d <= b.Radius {
		t.Errorf("ball still overlaps wall: distance %.3f radius %.3f", d, b.Radius)
	}
}

func TestBallInsideWallLeavesThroughNearestFace(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	wall := Rect{X: 400, Y: 200, W: 18, H: 200}
	c.Obstacles = []Obstacle{{Kind: ObstacleWall, Rect: wall}}

	b := &Ball{Position: Vec2{X: 414, Y: 300}, Radius: 7}
	Step(c, b, tun, 0)

	if b.Position.X <= wall.X+wall.W {
		t.Errorf("ball not pushed out of the right face: x=%.3f", b.Position.X)
	}
	if d := wall.distanceTo(b.Position); d <= b.Radius {
		t.Errorf("ball still overlaps wall: distance %.3f", d)
	}
}

func TestPropsAreSolid(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	car := Rect{X: 300, Y: 300, W: 72, H: 36}
	c.Props = []Prop{{Name: "car", Rect: car}}

	b := &Ball{Position: Vec2{X: 336, Y: 290}, Velocity: Vec2{Y: 4}, Radius: 7, Rolling: true}
	Step(c, b, tun, 0)

	if b.Velocity.Y >= 0 {
		t.Errorf("ball did not bounce off the car roof: vy=%.4f", b.Velocity.Y)
	}
	if b.Position.Y > car.Y-b.Radius {
		t.Errorf("ball not pushed above the car: y=%.3f", b.Position.Y)
	}
}

func TestBoundsBounceDampens(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	b := &Ball{Position: Vec2{X: c.Padding + 8, Y: 300}, Velocity: Vec2{X: -3}, Radius: 7, Rolling: true}

	Step(c, b, tun, 0)

	if b.Velocity.X <= 0 {
		t.Fatalf("vx did not flip at the left border: %.4f", b.Velocity.X)
	}
	if b.Velocity.X >= 3 {
		t.Errorf("bounce did not lose speed: %.4f", b.Velocity.X)
	}
	if b.Position.X != c.Padding+b.Radius {
		t.Errorf("ball not clamped to the border: x=%.3f", b.Position.X)
	}
}

func TestFrictionBringsBallToRest(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	b := &Ball{Position: Vec2{X: 100, Y: 300}, Velocity: Vec2{X: 2}, Radius: 7, Rolling: true}

	prev := b.Speed()
	ticks := 0
	for b.Rolling && ticks < 5000 {
		Step(c, b, tun, 0)
		if s := b.Speed(); s > prev {
			t.Fatalf("speed rose on tick %d without a collision: %.5f -> %.5f", ticks, prev, s)
		}
		prev = b.Speed()
		ticks++
	}

	if b.Rolling {
		t.Fatalf("ball still rolling after %d ticks", ticks)
	}
	if !b.Velocity.IsZero() {
		t.Errorf("resting ball has velocity %+v", b.Velocity)
	}
}

func TestContainmentOverManyShots(t *testing.T) {
	tun := DefaultTuning()
	c := BuildCourse(800, 600, tun, AllFeatures())

	for shot := 0; shot < 16; shot++ {
		ang := float64(shot) * math.Pi / 8
		b := &Ball{
			Position: c.Tee.Position,
			Velocity: Vec2{X: math.Cos(ang) * tun.MaxSpeed, Y: math.Sin(ang) * tun.MaxSpeed},
			Radius:   c.BallRadius,
			Rolling:  true,
		}
		for i := 0; i < 1500; i++ {
			captured := Step(c, b, tun, float64(i)/60)
			p := b.Position
			if p.X-b.Radius < c.Padding-1e-9 || p.X+b.Radius > c.Width-c.Padding+1e-9 ||
				p.Y-b.Radius < c.Padding-1e-9 || p.Y+b.Radius > c.Height-c.Padding+1e-9 {
				t.Fatalf("shot %d tick %d: ball left the field at %+v", shot, i, p)
			}
			if captured {
				break
			}
		}
	}
}

func TestWindmillBladeDeflects(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	c.Windmill = &Windmill{Center: Vec2{X: 400, Y: 300}, Length: 50, Thickness: 8, Speed: 0.9}

	// blade is horizontal at t=0
	b := &Ball{Position: Vec2{X: 420, Y: 320}, Velocity: Vec2{Y: -5}, Radius: 7, Rolling: true}
	Step(c, b, tun, 0)

	if b.Velocity.Y <= 0 {
		t.Errorf("blade did not send the ball back down: vy=%.4f", b.Velocity.Y)
	}
	if d := b.Position.Y - 300; d <= b.Radius+8 {
		t.Errorf("ball not cleared of the blade: gap %.3f", d)
	}
}

func TestWindmillAngleFollowsTime(t *testing.T) {
	w := &Windmill{Center: Vec2{X: 0, Y: 0}, Length: 50, Speed: 0.9}
	a, _ := w.Blade(math.Pi / 2 / 0.9)
	if math.Abs(a.X) > 1e-9 || math.Abs(a.Y-50) > 1e-9 {
		t.Errorf("blade end after a quarter turn = %+v, want (0, 50)", a)
	}
}

func TestWingReflectsAndGuidesTowardCup(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	c.Obstacles = []Obstacle{{Kind: ObstacleWing, Rect: Rect{X: 400, Y: 250, W: 12, H: 100}}}

	b := &Ball{Position: Vec2{X: 388, Y: 300}, Velocity: Vec2{X: 5}, Radius: 7, Rolling: true}
	Step(c, b, tun, 0)

	if b.Velocity.X >= 0 {
		t.Errorf("wing did not reflect the ball: vx=%.4f", b.Velocity.X)
	}
	// the cup is up and to the right, so the guide adds upward speed
	if b.Velocity.Y >= 0 {
		t.Errorf("wing did not nudge the ball toward the cup: vy=%.4f", b.Velocity.Y)
	}
}

func TestRotatedWingUsesWorldNormal(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	// a vertical 12x100 bar turned 90 degrees lies flat across y=300
	c.Obstacles = []Obstacle{{Kind: ObstacleWing, Rect: Rect{X: 400, Y: 250, W: 12, H: 100}, Angle: 90}}

	b := &Ball{Position: Vec2{X: 406, Y: 283}, Velocity: Vec2{Y: 5}, Radius: 7, Rolling: true}
	Step(c, b, tun, 0)

	if b.Velocity.Y >= 0 {
		t.Errorf("ball falling onto the wing should bounce up: vy=%.4f", b.Velocity.Y)
	}
	if b.Position.Y >= 288 {
		t.Errorf("ball not pushed up off the wing: y=%.3f", b.Position.Y)
	}
}

func TestCupCapturesSlowBall(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	hole := c.Hole.Position
	b := &Ball{Position: hole.Plus(Vec2{X: 5}), Velocity: Vec2{X: -0.5}, Radius: 7, Rolling: true}

	if !Step(c, b, tun, 0) {
		t.Fatalf("slow ball over the cup was not captured: %+v", b)
	}
	if b.Position != hole {
		t.Errorf("ball not snapped to the cup: %+v", b.Position)
	}
	if !b.Velocity.IsZero() || b.Rolling {
		t.Errorf("captured ball still moving: %+v", b)
	}
}

func TestCupRejectsFastBall(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	hole := c.Hole.Position
	b := &Ball{Position: hole.Plus(Vec2{X: 8}), Velocity: Vec2{X: -6}, Radius: 7, Rolling: true}

	if Step(c, b, tun, 0) {
		t.Errorf("ball at %.2f speed dropped in", b.Speed())
	}
}

func TestCompactCupIsMoreForgiving(t *testing.T) {
	tun := DefaultTuning()
	full := openCourse()
	compact := openCourse()
	compact.Compact = true

	start := full.Hole.Position.Plus(Vec2{X: 3})
	// 1.2 is over the full-size cap but under the compact one
	fb := &Ball{Position: start, Velocity: Vec2{Y: 1.2}, Radius: 7, Rolling: true}
	cb := &Ball{Position: start, Velocity: Vec2{Y: 1.2}, Radius: 7, Rolling: true}

	if Step(full, fb, tun, 0) {
		t.Errorf("full-size cup captured a ball moving %.3f", fb.Speed())
	}
	if !Step(compact, cb, tun, 0) {
		t.Errorf("compact cup did not capture a ball moving 1.2")
	}
}

func TestRestingBallInsidePullRadiusRollsIn(t *testing.T) {
	tun := DefaultTuning()
	c := openCourse()
	b := &Ball{Position: c.Hole.Position.Plus(Vec2{X: 30}), Radius: 7}

	captured := false
	for i := 0; i < 600 && !captured; i++ {
		captured = Step(c, b, tun, 0)
	}
	if !captured {
		t.Errorf("ball resting next to the cup never dropped: %+v", b)
	}
}
