package golf

import (
	"image/color"
	"math"
)

// ObstacleKind distinguishes axis-aligned walls from rotated wings.
type ObstacleKind string

const (
	ObstacleWall ObstacleKind = "wall"
	ObstacleWing ObstacleKind = "wing"
)

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Corners returns the corners clockwise from the top-left, rotated by rad
// around the rectangle's center.
func (r Rect) Corners(rad float64) [4]Vec2 {
	c := r.Center()
	pts := [4]Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	if rad != 0 {
		for i := range pts {
			pts[i] = pts[i].RotateAround(c, rad)
		}
	}
	return pts
}

// distanceTo returns the distance from p to the nearest point of r (0 inside).
func (r Rect) distanceTo(p Vec2) float64 {
	n := Vec2{X: clamp(p.X, r.X, r.X+r.W), Y: clamp(p.Y, r.Y, r.Y+r.H)}
	return p.DistanceTo(n)
}

// Obstacle is a collidable rectangle. Wings carry a tilt in degrees and are
// rotated around their center.
type Obstacle struct {
	Name  string       `json:"name"`
	Kind  ObstacleKind `json:"kind"`
	Rect  Rect         `json:"rect"`
	Angle float64      `json:"angle"`
}

// Spot is a circular marker on the course: the tee or the cup.
type Spot struct {
	Position Vec2    `json:"position"`
	Radius   float64 `json:"radius"`
}

// Windmill is a blade spinning around Center. The blade spans Length on each
// side of the center and is 2*Thickness wide.
type Windmill struct {
	Center    Vec2    `json:"center"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Speed     float64 `json:"speed"`
}

// Angle returns the blade rotation in radians after elapsed seconds.
func (w *Windmill) Angle(seconds float64) float64 {
	return seconds * w.Speed
}

// Blade returns the end points of the blade after elapsed seconds.
func (w *Windmill) Blade(seconds float64) (Vec2, Vec2) {
	s, c := math.Sincos(w.Angle(seconds))
	arm := Vec2{X: c * w.Length, Y: s * w.Length}
	return w.Center.Plus(arm), w.Center.Minus(arm)
}

// Prop is a parked car. Its Rect is what the ball collides with.
type Prop struct {
	Name   string     `json:"name"`
	Center Vec2       `json:"center"`
	Scale  float64    `json:"scale"`
	Rect   Rect       `json:"rect"`
	Body   color.RGBA `json:"-"`
}

// Plate is a decorative licence plate; the ball rolls over it.
type Plate struct {
	Text     string  `json:"text"`
	Position Vec2    `json:"position"`
	Angle    float64 `json:"angle"`
}

// Course is the geometry of the single hole. It is rebuilt, never mutated,
// whenever the viewport changes.
type Course struct {
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Padding    float64    `json:"padding"`
	Compact    bool       `json:"compact"`
	Scale      float64    `json:"scale"`
	BallRadius float64    `json:"ball_radius"`
	Tee        Spot       `json:"tee"`
	Hole       Spot       `json:"hole"`
	Windmill   *Windmill  `json:"windmill,omitempty"`
	Obstacles  []Obstacle `json:"obstacles"`
	Props      []Prop     `json:"props"`
	Plates     []Plate    `json:"plates"`
}

// car half extents at scale 1, bumper to bumper and roof to wheels
const (
	carHalfW = 36
	carHalfH = 18
)

// Playable reports whether a viewport can hold a course: large enough for
// the tee and the cup, and no larger than MaxSide on either axis.
func (t Tuning) Playable(width, height float64) bool {
	minSide := 2*t.Padding + 2*(t.CompactHoleRadius+t.BallRadius) + 4
	maxSide := t.MaxSide
	if maxSide <= 0 {
		maxSide = MaxViewport
	}
	return width >= minSide && height >= minSide && width <= maxSide && height <= maxSide
}

// BuildCourse lays out the hole for a width x height viewport. The result is
// a pure function of its arguments.
func BuildCourse(width, height float64, t Tuning, f Features) *Course {
	p := t.Padding
	compact := width < t.CompactBreakpoint
	scale := 1.0
	if compact {
		scale = t.CompactScale
	}

	c := &Course{
		Width:      width,
		Height:     height,
		Padding:    p,
		Compact:    compact,
		Scale:      scale,
		BallRadius: t.BallRadius * scale,
	}

	holeR := t.HoleRadius
	if compact {
		holeR = t.CompactHoleRadius
	}
	c.Tee = Spot{
		Position: c.inside(Vec2{X: p + t.TeeInset.X*scale, Y: height - p - t.TeeInset.Y*scale}, t.BallRadius*scale),
		Radius:   t.BallRadius * scale,
	}
	c.Hole = Spot{
		Position: c.inside(Vec2{X: width - p - t.HoleInset.X*scale, Y: p + t.HoleInset.Y*scale}, holeR*scale),
		Radius:   holeR * scale,
	}

	if !compact {
		h := c.Hole.Position
		if f.CenterWall {
			c.Obstacles = append(c.Obstacles, Obstacle{
				Name: "center-wall",
				Kind: ObstacleWall,
				Rect: Rect{X: width * 0.42, Y: height * 0.30, W: 18, H: height * 0.48},
			})
		}
		if f.Wings {
			c.Obstacles = append(c.Obstacles,
				Obstacle{Name: "upper-wing", Kind: ObstacleWing, Rect: Rect{X: h.X - 120, Y: h.Y - 70, W: 12, H: 110}, Angle: 22},
				Obstacle{Name: "lower-wing", Kind: ObstacleWing, Rect: Rect{X: h.X - 58, Y: h.Y + 18, W: 12, H: 100}, Angle: -28},
			)
		}
		if f.Windmill {
			c.Windmill = &Windmill{
				Center:    h,
				Length:    t.WindmillLength,
				Thickness: t.WindmillThickness,
				Speed:     t.WindmillSpeed,
			}
		}
	}

	if f.Props {
		c.addCar("blue-car", Vec2{X: p + 140*scale, Y: height - p - 44*scale}, scale, color.RGBA{0x0e, 0xa5, 0xe9, 0xff})
		c.addCar("red-car", Vec2{X: width / 2, Y: p + 60*scale}, 0.9*scale, color.RGBA{0xef, 0x44, 0x44, 0xff})
	}
	c.Plates = []Plate{
		{Text: "UNC", Position: Vec2{X: p + 60, Y: p + 60}, Angle: -12},
		{Text: "MITZI", Position: Vec2{X: width - p - 80, Y: height / 2}, Angle: 8},
		{Text: "TUNDRA", Position: Vec2{X: width/2 + 60, Y: height - p - 40}, Angle: -6},
	}

	return c
}

// inside pulls p so a circle of radius r lies strictly within the padded field.
func (c *Course) inside(p Vec2, r float64) Vec2 {
	minX, minY := c.Padding+r+1, c.Padding+r+1
	maxX, maxY := c.Width-c.Padding-r-1, c.Height-c.Padding-r-1
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return Vec2{X: clamp(p.X, minX, maxX), Y: clamp(p.Y, minY, maxY)}
}

// addCar places a car unless it would sit on the tee, the cup or outside the field.
func (c *Course) addCar(name string, center Vec2, scale float64, body color.RGBA) {
	r := Rect{
		X: center.X - carHalfW*scale,
		Y: center.Y - carHalfH*scale,
		W: 2 * carHalfW * scale,
		H: 2 * carHalfH * scale,
	}
	if r.X < c.Padding || r.Y < c.Padding || r.X+r.W > c.Width-c.Padding || r.Y+r.H > c.Height-c.Padding {
		return
	}
	if r.distanceTo(c.Tee.Position) <= c.Tee.Radius+c.BallRadius {
		return
	}
	if r.distanceTo(c.Hole.Position) <= c.Hole.Radius+2*c.BallRadius {
		return
	}
	c.Props = append(c.Props, Prop{Name: name, Center: center, Scale: scale, Rect: r, Body: body})
}

// Field returns the padded playable rectangle.
func (c *Course) Field() Rect {
	return Rect{X: c.Padding, Y: c.Padding, W: c.Width - 2*c.Padding, H: c.Height - 2*c.Padding}
}
