package golf

import (
	"testing"
	"time"
)

func TestDrawDoesNotChangeState(t *testing.T) {
	g := mustStart(t, newSurface(800, 600))
	p := g.Ball().Position
	g.PointerDown(p.X, p.Y)
	g.PointerUp(p.X-30, p.Y+10)
	g.Tick(tick(3))

	before := g.Ball()
	c := &recordingCanvas{}
	g.Draw(c)
	g.Draw(c)
	if g.Ball() != before {
		t.Errorf("drawing moved the ball: %+v -> %+v", before, g.Ball())
	}
}

func TestDrawFullCourse(t *testing.T) {
	g := mustStart(t, newSurface(800, 600))
	c := &recordingCanvas{}
	g.Draw(c)

	if c.ops[0].kind != "clear" {
		t.Errorf("first op = %s, want clear", c.ops[0].kind)
	}
	if n := c.count("fillRect", colorWall); n != 1 {
		t.Errorf("center walls drawn = %d, want 1", n)
	}
	if n := c.count("fillPolygon", colorWing); n != 2 {
		t.Errorf("wings drawn = %d, want 2", n)
	}
	if n := c.count("fillPolygon", colorBlade); n != 1 {
		t.Errorf("windmill blades drawn = %d, want 1", n)
	}
	if n := c.count("text", nil); n != 3 {
		t.Errorf("plates labelled = %d, want 3", n)
	}
	if n := c.count("fillCircle", colorCup); n != 1 {
		t.Errorf("cups drawn = %d, want 1", n)
	}
	if n := c.count("fillCircle", colorBall); n != 1 {
		t.Errorf("balls drawn = %d, want 1", n)
	}
}

func TestDrawCompactCourseSkipsHazards(t *testing.T) {
	g := mustStart(t, newSurface(400, 700))
	c := &recordingCanvas{}
	g.Draw(c)

	if n := c.count("fillPolygon", colorBlade); n != 0 {
		t.Errorf("compact course drew %d windmill blades", n)
	}
	if n := c.count("fillPolygon", colorWing); n != 0 {
		t.Errorf("compact course drew %d wings", n)
	}
}

func TestGuideLineOnlyWhileAiming(t *testing.T) {
	g := mustStart(t, newSurface(800, 600))
	c := &recordingCanvas{}
	g.Draw(c)
	if n := c.count("line", colorGuide); n != 0 {
		t.Errorf("guide drawn without a gesture")
	}

	p := g.Ball().Position
	g.PointerDown(p.X, p.Y)
	g.PointerMove(p.X-40, p.Y)
	c = &recordingCanvas{}
	g.Draw(c)
	found := false
	for _, o := range c.ops {
		if o.kind == "line" && o.color == colorGuide {
			found = true
			if o.dash <= 0 {
				t.Errorf("guide line is not dashed")
			}
			if o.at != p {
				t.Errorf("guide starts at %+v, want the ball %+v", o.at, p)
			}
		}
	}
	if !found {
		t.Errorf("guide not drawn while aiming")
	}
}

func TestSunkBallIsTinted(t *testing.T) {
	g, _ := sinkCompact(t)
	g.Tick(time.Second)
	c := &recordingCanvas{}
	g.Draw(c)

	if n := c.count("fillCircle", colorBallSunk); n != 1 {
		t.Errorf("sunk ball tint drawn %d times, want 1", n)
	}
	if n := c.count("fillCircle", colorBall); n != 0 {
		t.Errorf("plain ball still drawn after capture")
	}
}

func TestDrawWithoutCourseOnlyClears(t *testing.T) {
	g := mustStart(t, newSurface(0, 0))
	c := &recordingCanvas{}
	g.Draw(c)
	if len(c.ops) != 1 || c.ops[0].kind != "clear" {
		t.Errorf("ops without a course = %+v", c.ops)
	}
}
