package golf

import "time"

// MaxViewport is the largest logical width or height a course is built for.
const MaxViewport = 8192

// Tuning holds every gameplay constant. The Compact* variants apply when the
// viewport is narrower than CompactBreakpoint; they widen touch tolerances.
type Tuning struct {
	Friction  float64 // velocity multiplier per tick
	StopSpeed float64 // below this speed the ball snaps to rest
	Bounce    float64 // fraction of normal speed kept after a hit
	MaxSpeed  float64 // launch speed at full power

	Padding           float64
	CompactBreakpoint float64
	CompactScale      float64
	MaxSide           float64 // larger viewports are never laid out

	BallRadius        float64
	HoleRadius        float64
	CompactHoleRadius float64
	TeeInset          Vec2 // from the bottom-left padded corner
	HoleInset         Vec2 // from the top-right padded corner

	HitBonus            float64
	CompactHitBonus     float64
	PowerDivisor        float64
	CompactPowerDivisor float64

	PullRadius          float64
	PullGain            float64
	PullStrength        float64
	CompactPullStrength float64
	CaptureRatio        float64 // fraction of the hole radius the ball must be inside
	CaptureSpeed        float64
	CompactCaptureSpeed float64

	WingGuide float64 // nudge toward the hole after a wing bounce

	WindmillLength    float64
	WindmillThickness float64
	WindmillSpeed     float64 // radians per second

	RectClearance  float64
	WingClearance  float64
	BladeClearance float64

	WinDelay time.Duration
}

// DefaultTuning returns the tuning the course was designed with.
func DefaultTuning() Tuning {
	return Tuning{
		Friction:  0.991,
		StopSpeed: 0.045,
		Bounce:    0.85,
		MaxSpeed:  10,

		Padding:           18,
		CompactBreakpoint: 430,
		CompactScale:      0.95,
		MaxSide:           MaxViewport,

		BallRadius:        7,
		HoleRadius:        16,
		CompactHoleRadius: 18,
		TeeInset:          Vec2{X: 52, Y: 48},
		HoleInset:         Vec2{X: 84, Y: 68},

		HitBonus:            16,
		CompactHitBonus:     28,
		PowerDivisor:        160,
		CompactPowerDivisor: 120,

		PullRadius:          44,
		PullGain:            0.018,
		PullStrength:        0.55,
		CompactPullStrength: 0.75,
		CaptureRatio:        0.95,
		CaptureSpeed:        0.95,
		CompactCaptureSpeed: 1.4,

		WingGuide: 0.002,

		WindmillLength:    50,
		WindmillThickness: 8,
		WindmillSpeed:     0.9,

		RectClearance:  0.5,
		WingClearance:  0.8,
		BladeClearance: 0.5,

		WinDelay: 700 * time.Millisecond,
	}
}

func (t Tuning) hitBonus(compact bool) float64 {
	if compact {
		return t.CompactHitBonus
	}
	return t.HitBonus
}

func (t Tuning) powerDivisor(compact bool) float64 {
	if compact {
		return t.CompactPowerDivisor
	}
	return t.PowerDivisor
}

func (t Tuning) pullStrength(compact bool) float64 {
	if compact {
		return t.CompactPullStrength
	}
	return t.PullStrength
}

func (t Tuning) captureSpeed(compact bool) float64 {
	if compact {
		return t.CompactCaptureSpeed
	}
	return t.CaptureSpeed
}

// Features toggles optional course pieces. Compact courses never get the
// windmill, the center wall or the wings regardless of these flags.
type Features struct {
	Windmill   bool
	CenterWall bool
	Wings      bool
	Props      bool
}

func AllFeatures() Features {
	return Features{Windmill: true, CenterWall: true, Wings: true, Props: true}
}
