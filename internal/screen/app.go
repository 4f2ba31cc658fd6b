// Package screen hosts the card in a desktop window with ebiten: envelope,
// golf gate, then the letter, reasons and vouchers.
package screen

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/card"
	"github.com/playmatatu/golfcard/internal/cardview"
	"github.com/playmatatu/golfcard/internal/golf"
	"golang.org/x/image/font/basicfont"
)

var (
	colorPaper    = color.RGBA{0xf8, 0xfa, 0xfc, 0xff}
	colorInk      = color.RGBA{0x0f, 0x17, 0x2a, 0xff}
	colorMuted    = color.RGBA{0x64, 0x74, 0x8b, 0xff}
	colorEnvelope = color.RGBA{0xbf, 0xdb, 0xfe, 0xff}
	colorFlap     = color.RGBA{0x93, 0xc5, 0xfd, 0xff}
	colorAccent   = color.RGBA{0x34, 0xb3, 0xa0, 0xff}
	colorPanel    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorDone     = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
)

const (
	lineHeight = 16
	margin     = 24
	tabHeight  = 28
	tabWidth   = 96
)

// surface reports the window's logical size to the golf game.
type surface struct {
	canvas        *Canvas
	width, height float64
	ratio         float64
}

func (s *surface) Canvas() golf.Canvas                { return s.canvas }
func (s *surface) Bounds() (float64, float64)         { return s.width, s.height }
func (s *surface) PixelRatio() float64                { return s.ratio }
func (s *surface) SetBackingSize(w, h int, r float64) { s.canvas.Scale = r }

// App implements ebiten.Game.
type App struct {
	view    *cardview.View
	service *card.Service
	codes   *auth.CodeChecker
	game    *golf.Game
	surface *surface

	strokes int
	ticks   int
	touch   ebiten.TouchID
	touched bool
	page    *card.Page
}

// NewApp builds the desktop card. codes may be nil to disable the code prompt.
func NewApp(service *card.Service, codes *auth.CodeChecker, opts ...golf.Option) (*App, error) {
	a := &App{
		view:    cardview.New(ebiten.TPS(), service.Content().Motion),
		service: service,
		codes:   codes,
		surface: &surface{canvas: &Canvas{Scale: 1}, ratio: 1},
	}
	opts = append(opts, golf.WithScoreSink(a))
	g, err := golf.Start(a.surface, opts...)
	if err != nil {
		return nil, err
	}
	a.game = g
	return a, nil
}

// SetStrokes implements golf.ScoreSink.
func (a *App) SetStrokes(n int) { a.strokes = n }

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != a.surface.width || h != a.surface.height || scale != a.surface.ratio {
		a.surface.width, a.surface.height, a.surface.ratio = w, h, scale
		a.game.Resize()
	}
	s := a.surface.canvas.Scale
	return int(w * s), int(h * s)
}

// cursor returns the mouse position in logical units.
func (a *App) cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	s := a.surface.canvas.Scale
	return float64(x) / s, float64(y) / s
}

func (a *App) Update() error {
	a.ticks++
	a.view.Update()

	switch a.view.Phase {
	case cardview.PhaseEnvelope:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			a.view.Envelope.Click()
		}

	case cardview.PhaseGolf:
		if a.view.Code.Active {
			a.updateCode()
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) && a.codes != nil {
			a.view.Code.Begin()
			break
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			a.game.Reset()
		}
		a.updatePointer()
		a.game.Tick(time.Duration(a.ticks) * time.Second / time.Duration(ebiten.TPS()))
		if a.game.Won() {
			a.unlock()
		}

	case cardview.PhaseCard:
		a.updateCard()
	}
	return nil
}

func (a *App) updatePointer() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		a.game.PointerDown(a.cursor())
	} else if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		a.game.PointerUp(a.cursor())
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		a.game.PointerMove(a.cursor())
	}

	s := a.surface.canvas.Scale
	if !a.touched {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			a.touch, a.touched = ids[0], true
			x, y := ebiten.TouchPosition(a.touch)
			a.game.PointerDown(float64(x)/s, float64(y)/s)
		}
		return
	}
	if inpututil.IsTouchJustReleased(a.touch) {
		x, y := inpututil.TouchPositionInPreviousTick(a.touch)
		a.game.PointerUp(float64(x)/s, float64(y)/s)
		a.touched = false
		return
	}
	x, y := ebiten.TouchPosition(a.touch)
	a.game.PointerMove(float64(x)/s, float64(y)/s)
}

func (a *App) updateCode() {
	c := &a.view.Code
	c.Type(ebiten.AppendInputChars(nil))
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		c.Cancel()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		c.Backspace()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		if err := a.codes.Check(c.Buffer); err != nil {
			a.view.Toast("Not quite. Try again!", 90)
			c.Begin()
			return
		}
		log.Printf("[AUTH] Card unlocked by code")
		a.unlock()
	}
}

func (a *App) unlock() {
	page, err := a.service.Page(context.Background())
	if err != nil {
		log.Printf("[CARD] page failed: %v", err)
		a.view.Toast("Could not open the card", 120)
		return
	}
	a.page = page
	a.view.Unlock()
}

func (a *App) updateCard() {
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(k) {
			a.view.SelectTab(cardview.Tab(i))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && a.view.Tab == cardview.TabLetter {
		if err := clipboard.WriteAll(a.page.Letter); err != nil {
			log.Printf("[CARD] clipboard: %v", err)
			a.view.Toast("Clipboard unavailable", 90)
		} else {
			a.view.Toast("Letter copied", 90)
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	pt := image.Pt(int(float64(x)/a.surface.canvas.Scale), int(float64(y)/a.surface.canvas.Scale))
	for _, t := range cardview.Tabs() {
		if pt.In(tabRect(t)) {
			a.view.SelectTab(t)
			return
		}
	}
	if a.view.Tab != cardview.TabVouchers {
		return
	}
	for i, v := range a.page.Vouchers {
		if v.Redeemed || !pt.In(a.redeemRect(i)) {
			continue
		}
		state, err := a.service.Redeem(context.Background(), v.Slug)
		if err != nil {
			a.view.Toast("Could not redeem", 90)
			return
		}
		a.page.Vouchers[i] = state
		a.view.Toast("Redeemed: "+v.Title, 90)
	}
}

func tabRect(t cardview.Tab) image.Rectangle {
	x := margin + int(t)*(tabWidth+8)
	return image.Rect(x, margin+24, x+tabWidth, margin+24+tabHeight)
}

func (a *App) redeemRect(i int) image.Rectangle {
	w := int(a.surface.width)
	top := margin + 24 + tabHeight + 16 + i*64
	return image.Rect(w-margin-96, top+14, w-margin-12, top+40)
}

func (a *App) Draw(screen *ebiten.Image) {
	c := a.surface.canvas
	c.Target = screen

	switch a.view.Phase {
	case cardview.PhaseEnvelope:
		a.drawEnvelope(c)
	case cardview.PhaseGolf:
		a.game.Draw(c)
		c.FillRect(golf.Rect{X: 10, Y: 10, W: 96, H: 22}, colorPanel)
		a.label(c, fmt.Sprintf("Strokes: %d", a.strokes), 18, 26, colorInk)
		if a.view.Code.Active {
			a.drawCodePrompt(c)
		}
	case cardview.PhaseCard:
		a.drawCard(c)
	}

	if t := a.view.ToastText(); t != "" {
		w := a.surface.width
		c.FillRect(golf.Rect{X: w/2 - 110, Y: a.surface.height - 48, W: 220, H: 26}, colorInk)
		c.Text(t, golf.Vec2{X: w / 2, Y: a.surface.height - 35}, colorPanel)
	}
}

// label draws left-aligned text at a logical baseline.
func (a *App) label(c *Canvas, s string, x, y float64, col color.Color) {
	text.Draw(c.Target, s, basicfont.Face7x13, int(x*c.Scale), int(y*c.Scale), col)
}

func (a *App) drawEnvelope(c *Canvas) {
	c.Clear(colorPaper)
	w, h := a.surface.width, a.surface.height
	ew, eh := minf(w*0.7, 420), minf(h*0.5, 260)
	x, y := (w-ew)/2, (h-eh)/2
	c.FillRect(golf.Rect{X: x, Y: y, W: ew, H: eh}, colorEnvelope)

	// the flap swings from pointing down to pointing up as it opens
	tip := y + eh*0.55 - a.view.Envelope.Open()*eh*1.1
	c.FillPolygon([]golf.Vec2{{X: x, Y: y}, {X: x + ew, Y: y}, {X: x + ew/2, Y: tip}}, colorFlap)
	c.StrokeRect(golf.Rect{X: x, Y: y, W: ew, H: eh}, 2, colorAccent)

	content := a.service.Content()
	c.Text("For "+content.HerName, golf.Vec2{X: w / 2, Y: y + eh*0.75}, colorInk)
	c.Text("click to open", golf.Vec2{X: w / 2, Y: y + eh + 24}, colorMuted)
}

func (a *App) drawCodePrompt(c *Canvas) {
	w, h := a.surface.width, a.surface.height
	c.FillRect(golf.Rect{X: w/2 - 140, Y: h/2 - 40, W: 280, H: 80}, colorPanel)
	c.StrokeRect(golf.Rect{X: w/2 - 140, Y: h/2 - 40, W: 280, H: 80}, 2, colorAccent)
	c.Text("Enter code (Esc to cancel)", golf.Vec2{X: w / 2, Y: h/2 - 16}, colorMuted)
	cursor := ""
	if a.ticks/30%2 == 0 {
		cursor = "_"
	}
	c.Text(a.view.Code.Buffer+cursor, golf.Vec2{X: w / 2, Y: h/2 + 14}, colorInk)
}

func (a *App) drawCard(c *Canvas) {
	c.Clear(colorPaper)
	content := a.service.Content()
	a.label(c, "For "+content.HerName+", from "+content.FromName, margin, margin+10, colorInk)

	for _, t := range cardview.Tabs() {
		r := tabRect(t)
		rect := golf.Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
		if t == a.view.Tab {
			c.FillRect(rect, colorAccent)
		} else {
			c.StrokeRect(rect, 1, colorAccent)
		}
		c.Text(fmt.Sprintf("%d %s", int(t)+1, t), rect.Center(), colorInk)
	}

	top := float64(margin + 24 + tabHeight + 16)
	cols := int((a.surface.width - 2*margin) / 7)
	switch a.view.Tab {
	case cardview.TabLetter:
		y := top + 12
		for _, line := range cardview.Wrap(a.page.Letter, cols) {
			a.label(c, line, margin, y, colorInk)
			y += lineHeight
		}
		a.label(c, "C to copy", margin, a.surface.height-margin, colorMuted)
	case cardview.TabReasons:
		y := top + 12
		for _, reason := range a.page.Reasons {
			for _, line := range cardview.Wrap(reason, cols) {
				a.label(c, line, margin, y, colorInk)
				y += lineHeight
			}
			y += 4
		}
	case cardview.TabVouchers:
		for i, v := range a.page.Vouchers {
			y := top + float64(i*64)
			box := golf.Rect{X: margin, Y: y, W: a.surface.width - 2*margin, H: 54}
			c.FillRect(box, colorPanel)
			c.StrokeRect(box, 1, colorDone)
			a.label(c, v.Title, margin+12, y+20, colorInk)
			a.label(c, v.Note, margin+12, y+40, colorMuted)

			r := a.redeemRect(i)
			btn := golf.Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
			if v.Redeemed {
				c.FillRect(btn, colorDone)
				c.Text("Redeemed!", btn.Center(), colorMuted)
			} else {
				c.FillRect(btn, colorAccent)
				c.Text("Redeem", btn.Center(), colorPanel)
			}
		}
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

var _ ebiten.Game = (*App)(nil)
