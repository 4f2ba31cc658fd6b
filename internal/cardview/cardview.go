// Package cardview is the desktop card's state machine: the envelope intro,
// the golf gate, the code prompt and the tabbed card pages. It holds no
// drawing code so it can be driven from tests.
package cardview

import (
	"strings"

	"github.com/charmbracelet/harmonica"
)

type Phase int

const (
	PhaseEnvelope Phase = iota
	PhaseGolf
	PhaseCard
)

type Tab int

const (
	TabLetter Tab = iota
	TabReasons
	TabVouchers
)

var tabNames = [...]string{"Letter", "Reasons", "Vouchers"}

func (t Tab) String() string { return tabNames[t] }

// Tabs lists the card pages in display order.
func Tabs() []Tab { return []Tab{TabLetter, TabReasons, TabVouchers} }

// Envelope animates the flap opening with a spring. Without motion it opens
// on the first update after the click.
type Envelope struct {
	spring  harmonica.Spring
	motion  bool
	opening bool
	pos     float64
	vel     float64
}

func NewEnvelope(fps int, motion bool) *Envelope {
	return &Envelope{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.6), motion: motion}
}

func (e *Envelope) Click() { e.opening = true }

// Open is how far the flap has opened, 0 closed and 1 open. The spring may
// overshoot slightly.
func (e *Envelope) Open() float64 { return e.pos }

// Update advances one frame and reports whether the envelope is done.
func (e *Envelope) Update() bool {
	if !e.opening {
		return false
	}
	if !e.motion {
		e.pos = 1
		return true
	}
	e.pos, e.vel = e.spring.Update(e.pos, e.vel, 1)
	return e.pos > 0.98 && abs(e.vel) < 0.05
}

// CodeEntry collects a typed unlock code.
type CodeEntry struct {
	Active bool
	Buffer string
}

const maxCodeLen = 24

func (c *CodeEntry) Begin() {
	c.Active = true
	c.Buffer = ""
}

func (c *CodeEntry) Cancel() {
	c.Active = false
	c.Buffer = ""
}

func (c *CodeEntry) Type(runes []rune) {
	for _, r := range runes {
		if r < 32 || len(c.Buffer) >= maxCodeLen {
			continue
		}
		c.Buffer += string(r)
	}
}

func (c *CodeEntry) Backspace() {
	if c.Buffer == "" {
		return
	}
	r := []rune(c.Buffer)
	c.Buffer = string(r[:len(r)-1])
}

// View is the whole desktop flow.
type View struct {
	Phase    Phase
	Tab      Tab
	Envelope *Envelope
	Code     CodeEntry

	toast      string
	toastTicks int
}

func New(fps int, motion bool) *View {
	return &View{Envelope: NewEnvelope(fps, motion)}
}

// Update advances animations by one frame.
func (v *View) Update() {
	if v.Phase == PhaseEnvelope && v.Envelope.Update() {
		v.Phase = PhaseGolf
	}
	if v.toastTicks > 0 {
		v.toastTicks--
		if v.toastTicks == 0 {
			v.toast = ""
		}
	}
}

// Unlock moves to the card, from the golf gate or the code prompt.
func (v *View) Unlock() {
	v.Phase = PhaseCard
	v.Tab = TabLetter
	v.Code.Cancel()
}

func (v *View) SelectTab(t Tab) {
	if v.Phase == PhaseCard && t >= TabLetter && t <= TabVouchers {
		v.Tab = t
	}
}

// Toast shows a short message for ticks frames.
func (v *View) Toast(msg string, ticks int) {
	v.toast, v.toastTicks = msg, ticks
}

func (v *View) ToastText() string { return v.toast }

// Wrap breaks s into lines of at most cols characters, keeping paragraph
// breaks. Words longer than a line are split.
func Wrap(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for len([]rune(w)) > cols {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:cols]))
				w = string(r[cols:])
			}
			switch {
			case line == "":
				line = w
			case len([]rune(line))+1+len([]rune(w)) <= cols:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
