package golf

import "image/color"

// Canvas is the drawing surface the renderer paints on. All coordinates are
// logical viewport units; implementations apply any pixel-density scaling.
type Canvas interface {
	Clear(c color.Color)
	FillRect(r Rect, c color.Color)
	StrokeRect(r Rect, width float64, c color.Color)
	FillPolygon(pts []Vec2, c color.Color)
	StrokePolygon(pts []Vec2, width float64, c color.Color)
	FillCircle(center Vec2, radius float64, c color.Color)
	StrokeCircle(center Vec2, radius, width float64, c color.Color)
	// Line draws a segment; a positive dash length makes it dashed.
	Line(from, to Vec2, width, dash float64, c color.Color)
	// Text draws s centered on at.
	Text(s string, at Vec2, c color.Color)
}

// Surface is whatever the game is mounted on: a window, a browser canvas
// relayed over a socket, or a test double.
type Surface interface {
	Canvas() Canvas
	Bounds() (width, height float64)
	PixelRatio() float64
}

// BackingSizer is implemented by surfaces whose pixel buffer must be resized
// to match the viewport and pixel ratio.
type BackingSizer interface {
	SetBackingSize(width, height int, ratio float64)
}

// ScoreSink receives the stroke count after every stroke and hard reset.
type ScoreSink interface {
	SetStrokes(strokes int)
}
