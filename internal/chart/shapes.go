package chart

import "image/color"

// Optotype shapes are generated algebraically from the pixel size rather
// than by scaling or rotating bitmaps. All cell boundaries come from the
// same integer edge function, so strokes meet exactly even at pixel sizes
// that are not multiples of five.

// edge returns the pixel offset of grid boundary i (0..5) within a glyph
// of the given pixel size.
func edge(i, sizePx int) int {
	return i * sizePx / 5
}

// SymbolOps lowers one catalog symbol to paint ops, centered on (cx, cy)
// at the given pixel height. Multi-rune symbols (the composite "FP") draw
// each rune offset from the shared anchor, three quarters of the size to
// either side for a pair.
func SymbolOps(symbol string, sizePx, cx, cy int, clr color.RGBA) []Op {
	runes := []rune(symbol)
	if len(runes) == 0 || sizePx <= 0 {
		return nil
	}
	if len(runes) == 1 {
		return runeOps(runes[0], sizePx, cx, cy, clr)
	}

	// Spread the pair (or longer run) around the shared anchor.
	step := sizePx * 3 / 2
	left := cx - step*(len(runes)-1)/2
	var ops []Op
	for i, r := range runes {
		ops = append(ops, runeOps(r, sizePx, left+i*step, cy, clr)...)
	}
	return ops
}

// runeOps draws one rune centered on (cx, cy). Runes with a 5x5 grid
// pattern become exact rectangles; anything else falls back to a text op
// for the surface to rasterize.
func runeOps(r rune, sizePx, cx, cy int, clr color.RGBA) []Op {
	grid, ok := glyphGrids[r]
	if !ok {
		return []Op{TextOp{
			Text:     string(r),
			X:        cx,
			Y:        cy,
			SizePx:   sizePx,
			Centered: true,
			Color:    clr,
		}}
	}

	x0 := cx - sizePx/2
	y0 := cy - sizePx/2
	var ops []Op
	for row := 0; row < 5; row++ {
		top := y0 + edge(row, sizePx)
		h := edge(row+1, sizePx) - edge(row, sizePx)
		// Merge horizontal runs of inked cells into single rectangles.
		col := 0
		for col < 5 {
			if grid[row][col] != '#' {
				col++
				continue
			}
			start := col
			for col < 5 && grid[row][col] == '#' {
				col++
			}
			ops = append(ops, RectOp{
				X:     x0 + edge(start, sizePx),
				Y:     top,
				W:     edge(col, sizePx) - edge(start, sizePx),
				H:     h,
				Color: clr,
			})
		}
	}
	return ops
}

// TumblingEOps draws an E whose arms point in the given direction. The
// spine and three arms are positioned algebraically per orientation: bar
// thickness is a fifth of the size, arms sit on grid rows (or columns)
// 0, 2 and 4.
func TumblingEOps(orient Orientation, sizePx, cx, cy int, clr color.RGBA) []Op {
	if sizePx <= 0 {
		return nil
	}
	x0 := cx - sizePx/2
	y0 := cy - sizePx/2

	var ops []Op
	switch orient {
	case OrientRight:
		ops = append(ops, RectOp{X: x0, Y: y0, W: edge(1, sizePx), H: sizePx, Color: clr})
		for _, k := range []int{0, 2, 4} {
			ops = append(ops, RectOp{
				X: x0, Y: y0 + edge(k, sizePx),
				W: sizePx, H: edge(k+1, sizePx) - edge(k, sizePx),
				Color: clr,
			})
		}
	case OrientLeft:
		ops = append(ops, RectOp{X: x0 + edge(4, sizePx), Y: y0, W: sizePx - edge(4, sizePx), H: sizePx, Color: clr})
		for _, k := range []int{0, 2, 4} {
			ops = append(ops, RectOp{
				X: x0, Y: y0 + edge(k, sizePx),
				W: sizePx, H: edge(k+1, sizePx) - edge(k, sizePx),
				Color: clr,
			})
		}
	case OrientDown:
		ops = append(ops, RectOp{X: x0, Y: y0, W: sizePx, H: edge(1, sizePx), Color: clr})
		for _, k := range []int{0, 2, 4} {
			ops = append(ops, RectOp{
				X: x0 + edge(k, sizePx), Y: y0,
				W: edge(k+1, sizePx) - edge(k, sizePx), H: sizePx,
				Color: clr,
			})
		}
	case OrientUp:
		ops = append(ops, RectOp{X: x0, Y: y0 + edge(4, sizePx), W: sizePx, H: sizePx - edge(4, sizePx), Color: clr})
		for _, k := range []int{0, 2, 4} {
			ops = append(ops, RectOp{
				X: x0 + edge(k, sizePx), Y: y0,
				W: edge(k+1, sizePx) - edge(k, sizePx), H: sizePx,
				Color: clr,
			})
		}
	}
	return ops
}

// LandoltCOps draws a ring with a gap facing the given direction: an
// annulus of outer radius size/2 and inner radius size/2 - size/5, with a
// rectangular gap of width size/4 centered on the midpoint of the
// orientation's edge. The inner disc and the gap are painted in the
// background color over the outer disc.
func LandoltCOps(orient Orientation, sizePx, cx, cy int, clr, bg color.RGBA) []Op {
	if sizePx <= 0 {
		return nil
	}
	outer := float64(sizePx) / 2
	inner := outer - float64(sizePx)/5
	gapW := sizePx / 4

	ops := []Op{
		CircleOp{CX: float64(cx), CY: float64(cy), R: outer, Color: clr},
		CircleOp{CX: float64(cx), CY: float64(cy), R: inner, Color: bg},
	}

	// The gap rectangle spans from the orientation's edge midpoint to the
	// ring center, cutting cleanly through the annulus.
	half := sizePx / 2
	switch orient {
	case OrientLeft:
		ops = append(ops, RectOp{X: cx - half, Y: cy - gapW/2, W: half, H: gapW, Color: bg})
	case OrientRight:
		ops = append(ops, RectOp{X: cx, Y: cy - gapW/2, W: half, H: gapW, Color: bg})
	case OrientUp:
		ops = append(ops, RectOp{X: cx - gapW/2, Y: cy - half, W: gapW, H: half, Color: bg})
	case OrientDown:
		ops = append(ops, RectOp{X: cx - gapW/2, Y: cy, W: gapW, H: half, Color: bg})
	}
	return ops
}
