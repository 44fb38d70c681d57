package chart

import (
	"fmt"
	"image/color"
	"math"

	"github.com/kalam1991git/vision-test/internal/optics"
)

// View bundles everything a chart needs to lay itself out: the display,
// the conversion scale, and the viewing context snapshot. Layout is a pure
// function of a View, with no hidden state.
type View struct {
	Conv       *optics.Converter
	Catalog    *Catalog
	Width      int
	Height     int
	DistanceMm float64
	Test       Kind
	Language   string
	Brightness int
	Contrast   int
}

func (v View) px(sizeMm float64) int {
	return v.Conv.Pixels(sizeMm, v.DistanceMm)
}

// background returns the frame background, white scaled by brightness.
func (v View) background() color.RGBA {
	return gray(uint8(255 * clampPercent(v.Brightness) / 100))
}

// foreground returns the optotype ink color. Contrast pulls the ink from
// the background luminance down toward black.
func (v View) foreground() color.RGBA {
	bgLum := 255 * clampPercent(v.Brightness) / 100
	return gray(uint8(bgLum * (100 - clampPercent(v.Contrast)) / 100))
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ShapeKind distinguishes oriented shape placements from symbol
// placements.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeTumblingE
	ShapeLandoltC
)

// Placement is one positioned chart element: either a symbol from the
// catalog or an oriented shape, with its physical and pixel size and its
// center anchor.
type Placement struct {
	Symbol string
	Shape  ShapeKind
	Orient Orientation
	SizeMm float64
	SizePx int
	X, Y   int
	Color  color.RGBA // zero means the view's foreground
}

// composer is implemented by each test-kind variant: placements positions
// the optotypes, primitives supplies the chart's backdrop (color fields,
// gradients, fan lines).
type composer interface {
	placements(v View) []Placement
	primitives(v View) []Op
}

var composers = map[Kind]composer{
	KindSnellen:     acuityChart{kind: KindSnellen},
	KindLogMAR:      acuityChart{kind: KindLogMAR},
	KindNumbers:     acuityChart{kind: KindNumbers},
	KindTumblingE:   orientedGrid{shape: ShapeTumblingE},
	KindLandoltC:    orientedGrid{shape: ShapeLandoltC},
	KindFan:         fanChart{},
	KindDuochrome:   duochromeChart{},
	KindContrast:    contrastChart{},
	KindColorPlates: platesChart{},
}

// titles maps known kinds to their header text. Unknown test names render
// with the stored name as-is.
var titles = map[Kind]string{
	KindSnellen:     "Snellen Acuity",
	KindLogMAR:      "LogMAR Acuity",
	KindNumbers:     "Number Acuity",
	KindTumblingE:   "Tumbling E",
	KindLandoltC:    "Landolt C",
	KindFan:         "Astigmatic Fan",
	KindDuochrome:   "Duochrome",
	KindContrast:    "Contrast Sensitivity",
	KindColorPlates: "Color Plates",
}

// Placements returns the positioned optotypes for the view's active test.
// Unknown test kinds produce no placements.
func Placements(v View) []Placement {
	comp, ok := composers[v.Test]
	if !ok {
		return nil
	}
	return comp.placements(v)
}

// Compose builds the full frame for the view: header, backdrop primitives
// and every placed optotype lowered to paint ops.
func Compose(v View) Frame {
	bg := v.background()
	fg := v.foreground()

	frame := Frame{Background: bg}
	frame.Ops = append(frame.Ops, headerOps(v, fg)...)

	comp, ok := composers[v.Test]
	if !ok {
		// Permissive policy: an unrecognized test name shows only the
		// header so a typo over the remote is obvious but harmless.
		return frame
	}

	frame.Ops = append(frame.Ops, comp.primitives(v)...)
	for _, p := range comp.placements(v) {
		clr := p.Color
		if clr == (color.RGBA{}) {
			clr = fg
		}
		switch p.Shape {
		case ShapeTumblingE:
			frame.Ops = append(frame.Ops, TumblingEOps(p.Orient, p.SizePx, p.X, p.Y, clr)...)
		case ShapeLandoltC:
			frame.Ops = append(frame.Ops, LandoltCOps(p.Orient, p.SizePx, p.X, p.Y, clr, bg)...)
		default:
			frame.Ops = append(frame.Ops, SymbolOps(p.Symbol, p.SizePx, p.X, p.Y, clr)...)
		}
	}
	return frame
}

func headerOps(v View, fg color.RGBA) []Op {
	title, ok := titles[v.Test]
	if !ok {
		title = string(v.Test)
	}
	return []Op{
		TextOp{Text: title, X: v.Width / 2, Y: 12, SizePx: 26, Centered: true, Color: fg},
		TextOp{Text: v.Catalog.InstructionsFor(v.Language), X: v.Width / 2, Y: 42, SizePx: 16, Centered: true, Color: fg},
	}
}

// acuityChart lays out Snellen, LogMAR and number charts: one row per
// catalog line, rows evenly spaced down the display, symbols centered
// with center-to-center spacing of 1.5x the row's pixel size.
type acuityChart struct {
	kind Kind
}

func (c acuityChart) placements(v View) []Placement {
	lines := v.Catalog.LinesFor(v.Language, c.kind)
	n := len(lines)
	if n == 0 {
		return nil
	}

	var out []Placement
	for i, line := range lines {
		sizePx := v.px(line.SizeMm)
		if sizePx <= 0 || len(line.Symbols) == 0 {
			continue
		}
		y := v.Height * (i + 1) / (n + 1)
		spacing := sizePx * 3 / 2
		total := sizePx + (len(line.Symbols)-1)*spacing
		x := (v.Width-total)/2 + sizePx/2
		for _, sym := range line.Symbols {
			out = append(out, Placement{
				Symbol: sym,
				SizeMm: line.SizeMm,
				SizePx: sizePx,
				X:      x,
				Y:      y,
			})
			x += spacing
		}
	}
	return out
}

func (acuityChart) primitives(View) []Op { return nil }

// orientedGrid lays out the tumbling-E and Landolt-C charts: five rows of
// three, the row size shrinking as base/(row+1), orientations cycling
// deterministically by cell index.
type orientedGrid struct {
	shape ShapeKind
}

const (
	gridRows = 5
	gridCols = 3
)

func (g orientedGrid) placements(v View) []Placement {
	var out []Placement
	for i := 0; i < gridRows; i++ {
		sizeMm := BaseOrientedMm / float64(i+1)
		sizePx := v.px(sizeMm)
		if sizePx <= 0 {
			continue
		}
		y := v.Height * (i + 1) / (gridRows + 1)
		for j := 0; j < gridCols; j++ {
			out = append(out, Placement{
				Shape:  g.shape,
				Orient: OrientationAt(i*gridCols + j),
				SizeMm: sizeMm,
				SizePx: sizePx,
				X:      v.Width * (j + 1) / (gridCols + 1),
				Y:      y,
			})
		}
	}
	return out
}

func (orientedGrid) primitives(View) []Op { return nil }

// fanChart draws the astigmatic fan: diameter lines through the display
// center every 10 degrees, labeled every 30. The fan is a fixed
// diagnostic pattern and is not scaled by viewing distance.
type fanChart struct{}

func (fanChart) placements(View) []Placement { return nil }

func (fanChart) primitives(v View) []Op {
	cx := float64(v.Width) / 2
	cy := float64(v.Height) / 2
	radius := 0.4 * math.Min(float64(v.Width), float64(v.Height))
	fg := v.foreground()

	var ops []Op
	for deg := 0; deg < 180; deg += 10 {
		rad := float64(deg) * math.Pi / 180
		dx := math.Cos(rad) * radius
		dy := math.Sin(rad) * radius
		ops = append(ops, LineOp{
			X1: cx - dx, Y1: cy + dy,
			X2: cx + dx, Y2: cy - dy,
			Width: 3,
			Color: fg,
		})
		if deg%30 == 0 {
			labelR := radius * 1.12
			ops = append(ops, TextOp{
				Text:     fmt.Sprintf("%d", deg),
				X:        int(cx + math.Cos(rad)*labelR),
				Y:        int(cy - math.Sin(rad)*labelR),
				SizePx:   16,
				Centered: true,
				Color:    fg,
			})
		}
	}
	return ops
}

// duochromeChart splits the display into red and green halves with one
// shared letter column straddling the boundary at nine evenly spaced
// rows.
type duochromeChart struct{}

const duochromeRows = 9

func (duochromeChart) placements(v View) []Placement {
	lines := v.Catalog.LinesFor(v.Language, KindDuochrome)
	if len(lines) == 0 {
		return nil
	}
	line := lines[0]
	if len(line.Symbols) == 0 {
		return nil
	}
	sizePx := v.px(line.SizeMm)
	if sizePx <= 0 {
		return nil
	}

	out := make([]Placement, 0, duochromeRows)
	for i := 0; i < duochromeRows; i++ {
		out = append(out, Placement{
			Symbol: line.Symbols[i%len(line.Symbols)],
			SizeMm: line.SizeMm,
			SizePx: sizePx,
			X:      v.Width / 2,
			Y:      v.Height * (i + 1) / (duochromeRows + 1),
			Color:  color.RGBA{A: 0xff}, // always black over the color field
		})
	}
	return out
}

func (duochromeChart) primitives(v View) []Op {
	level := uint8(255 * clampPercent(v.Brightness) / 100)
	return []Op{
		RectOp{X: 0, Y: 0, W: v.Width / 2, H: v.Height, Color: color.RGBA{R: level, A: 0xff}},
		RectOp{X: v.Width / 2, Y: 0, W: v.Width - v.Width/2, H: v.Height, Color: color.RGBA{G: level, A: 0xff}},
	}
}

// contrastChart draws a horizontal gradient whose local contrast follows
// an inverse-square falloff from the left edge, with five sample letters
// whose gray level tracks the falloff at their position.
type contrastChart struct{}

var contrastSampleFractions = []float64{0.1, 0.3, 0.5, 0.7, 0.9}

// contrastFalloff is the local contrast at horizontal fraction f: full at
// the left edge, inverse-square toward the right.
func contrastFalloff(f float64) float64 {
	return 1.0 / ((1 + 2*f) * (1 + 2*f))
}

func (contrastChart) placements(v View) []Placement {
	lines := v.Catalog.LinesFor(v.Language, KindContrast)
	if len(lines) == 0 {
		return nil
	}
	line := lines[0]
	sizePx := v.px(line.SizeMm)
	if sizePx <= 0 {
		return nil
	}
	scale := float64(clampPercent(v.Brightness)) / 100

	var out []Placement
	for i, f := range contrastSampleFractions {
		if i >= len(line.Symbols) {
			break
		}
		ink := uint8(255 * contrastFalloff(f) * scale)
		out = append(out, Placement{
			Symbol: line.Symbols[i],
			SizeMm: line.SizeMm,
			SizePx: sizePx,
			X:      int(float64(v.Width) * f),
			Y:      v.Height / 2,
			Color:  color.RGBA{R: ink, G: ink, B: ink, A: 0xff},
		})
	}
	return out
}

func (contrastChart) primitives(v View) []Op {
	scale := float64(clampPercent(v.Brightness)) / 100
	ops := make([]Op, 0, v.Width)
	for x := 0; x < v.Width; x++ {
		f := float64(x) / float64(v.Width)
		level := uint8(255 * (1 - contrastFalloff(f)) * scale)
		ops = append(ops, RectOp{X: x, Y: 0, W: 1, H: v.Height, Color: gray(level)})
	}
	return ops
}

// platesChart draws four colored discs, one per display quadrant, each
// with an embedded numeral in a confusable hue.
type platesChart struct{}

type plate struct {
	numeral string
	disc    color.RGBA
	ink     color.RGBA
}

var plates = []plate{
	{numeral: "5", disc: color.RGBA{R: 0xc8, G: 0x50, B: 0x3c, A: 0xff}, ink: color.RGBA{R: 0x6e, G: 0x8c, B: 0x3a, A: 0xff}},
	{numeral: "7", disc: color.RGBA{R: 0x6e, G: 0x8c, B: 0x3a, A: 0xff}, ink: color.RGBA{R: 0xc8, G: 0x50, B: 0x3c, A: 0xff}},
	{numeral: "3", disc: color.RGBA{R: 0xd2, G: 0x96, B: 0x3c, A: 0xff}, ink: color.RGBA{R: 0x8c, G: 0x6e, B: 0x96, A: 0xff}},
	{numeral: "8", disc: color.RGBA{R: 0x50, G: 0x96, B: 0x8c, A: 0xff}, ink: color.RGBA{R: 0xb4, G: 0x78, B: 0x50, A: 0xff}},
}

func (platesChart) quadrantCenters(v View) [4][2]int {
	return [4][2]int{
		{v.Width / 4, v.Height / 4},
		{3 * v.Width / 4, v.Height / 4},
		{v.Width / 4, 3 * v.Height / 4},
		{3 * v.Width / 4, 3 * v.Height / 4},
	}
}

func (p platesChart) placements(v View) []Placement {
	radius := plateRadius(v)
	centers := p.quadrantCenters(v)

	out := make([]Placement, 0, len(plates))
	for i, pl := range plates {
		out = append(out, Placement{
			Symbol: pl.numeral,
			SizePx: radius,
			X:      centers[i][0],
			Y:      centers[i][1],
			Color:  pl.ink,
		})
	}
	return out
}

func (p platesChart) primitives(v View) []Op {
	radius := plateRadius(v)
	centers := p.quadrantCenters(v)

	ops := make([]Op, 0, len(plates))
	for i, pl := range plates {
		ops = append(ops, CircleOp{
			CX:    float64(centers[i][0]),
			CY:    float64(centers[i][1]),
			R:     float64(radius),
			Color: pl.disc,
		})
	}
	return ops
}

func plateRadius(v View) int {
	m := v.Width
	if v.Height < m {
		m = v.Height
	}
	return m / 5
}
