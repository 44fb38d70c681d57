package chart

import "image/color"

// Op is one drawing primitive. A composed frame is an ordered list of ops
// painted in sequence, later ops over earlier ones; ops carry no
// references to the drawing surface, so composition involves no I/O and
// can run anywhere.
type Op interface {
	op()
}

// RectOp paints an axis-aligned filled rectangle.
type RectOp struct {
	X, Y, W, H int
	Color      color.RGBA
}

// CircleOp paints a filled circle.
type CircleOp struct {
	CX, CY, R float64
	Color     color.RGBA
}

// LineOp paints a stroked line segment.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          color.RGBA
}

// TextOp paints a string through the surface's text facility, anchored at
// its top-left corner. Used for headers, labels, and glyphs that have no
// procedural grid pattern.
type TextOp struct {
	Text     string
	X, Y     int
	SizePx   int
	Centered bool
	Color    color.RGBA
}

func (RectOp) op()   {}
func (CircleOp) op() {}
func (LineOp) op()   {}
func (TextOp) op()   {}

// Frame is a fully composed chart: background first, then content.
type Frame struct {
	Background color.RGBA
	Ops        []Op
}

func gray(v uint8) color.RGBA {
	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}
