package chart

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalam1991git/vision-test/internal/optics"
)

func testView(t *testing.T, kind Kind) View {
	t.Helper()
	conv, err := optics.NewConverter(optics.Geometry{WidthPx: 800, HeightPx: 480, DPI: 96})
	require.NoError(t, err)
	return View{
		Conv:       conv,
		Catalog:    NewCatalog(),
		Width:      800,
		Height:     480,
		DistanceMm: 3000,
		Test:       kind,
		Language:   "english",
		Brightness: 100,
		Contrast:   100,
	}
}

func TestAcuityRowsEvenlySpaced(t *testing.T) {
	t.Parallel()

	v := testView(t, KindSnellen)
	ps := Placements(v)
	require.NotEmpty(t, ps)

	lines := v.Catalog.LinesFor("english", KindSnellen)
	n := len(lines)

	// Collect the distinct row centers in order.
	var rows []int
	seen := map[int]bool{}
	for _, p := range ps {
		if !seen[p.Y] {
			seen[p.Y] = true
			rows = append(rows, p.Y)
		}
	}
	require.Len(t, rows, n)
	for i, y := range rows {
		assert.Equal(t, v.Height*(i+1)/(n+1), y, "row %d", i)
	}
}

func TestAcuityRowHorizontallyCentered(t *testing.T) {
	t.Parallel()

	v := testView(t, KindSnellen)
	ps := Placements(v)
	require.NotEmpty(t, ps)

	// Group by row, check symmetric extent and 1.5x spacing.
	byRow := map[int][]Placement{}
	for _, p := range ps {
		byRow[p.Y] = append(byRow[p.Y], p)
	}
	for y, row := range byRow {
		first, last := row[0], row[len(row)-1]
		left := first.X - first.SizePx/2
		right := last.X + last.SizePx/2
		assert.InDelta(t, float64(left), float64(v.Width-right), 2, "row y=%d", y)

		for i := 1; i < len(row); i++ {
			assert.Equal(t, row[i-1].SizePx*3/2, row[i].X-row[i-1].X, "spacing in row y=%d", y)
		}
	}
}

func TestOrientedGridShape(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindTumblingE, KindLandoltC} {
		v := testView(t, kind)
		ps := Placements(v)
		require.Len(t, ps, gridRows*gridCols, "%s", kind)

		for i := 0; i < gridRows; i++ {
			rowSize := ps[i*gridCols].SizeMm
			assert.InDelta(t, BaseOrientedMm/float64(i+1), rowSize, 1e-9)
			for j := 0; j < gridCols; j++ {
				p := ps[i*gridCols+j]
				assert.Equal(t, OrientationAt(i*gridCols+j), p.Orient)
				assert.Empty(t, p.Symbol)
			}
		}

		// Strictly decreasing acuity demand row by row.
		for i := 1; i < gridRows; i++ {
			assert.Less(t, ps[i*gridCols].SizeMm, ps[(i-1)*gridCols].SizeMm)
		}
	}
}

func TestHindiNumbersLayoutUsesEnglishData(t *testing.T) {
	t.Parallel()

	v := testView(t, KindNumbers)
	v.Language = "hindi"
	hindi := Placements(v)

	v.Language = "english"
	english := Placements(v)

	require.NotEmpty(t, english)
	assert.Equal(t, english, hindi)
}

func TestUnknownTestComposesHeaderOnly(t *testing.T) {
	t.Parallel()

	v := testView(t, Kind("mystery-test"))
	frame := Compose(v)

	// Header text only: title and instruction line.
	require.Len(t, frame.Ops, 2)
	title, ok := frame.Ops[0].(TextOp)
	require.True(t, ok)
	assert.Equal(t, "mystery-test", title.Text)
}

func TestDuochromeHalvesAndStraddlingColumn(t *testing.T) {
	t.Parallel()

	v := testView(t, KindDuochrome)
	frame := Compose(v)

	var halves []RectOp
	for _, op := range frame.Ops {
		if r, ok := op.(RectOp); ok && r.H == v.Height {
			halves = append(halves, r)
		}
	}
	require.Len(t, halves, 2)
	assert.Equal(t, 0, halves[0].X)
	assert.Equal(t, v.Width/2, halves[0].W)
	assert.Equal(t, v.Width/2, halves[1].X)
	assert.NotEqual(t, halves[0].Color, halves[1].Color)

	ps := Placements(v)
	require.Len(t, ps, duochromeRows)
	for i, p := range ps {
		assert.Equal(t, v.Width/2, p.X, "letter %d must straddle the boundary", i)
		assert.Equal(t, v.Height*(i+1)/(duochromeRows+1), p.Y)
	}
}

func TestContrastLettersTrackFalloff(t *testing.T) {
	t.Parallel()

	v := testView(t, KindContrast)
	ps := Placements(v)
	require.Len(t, ps, len(contrastSampleFractions))

	for i := 1; i < len(ps); i++ {
		// Letters dim left to right along the falloff.
		assert.Less(t, ps[i].Color.R, ps[i-1].Color.R)
	}
	for i, p := range ps {
		want := uint8(255 * contrastFalloff(contrastSampleFractions[i]))
		assert.Equal(t, want, p.Color.R)
		assert.Equal(t, p.Color.R, p.Color.G)
		assert.Equal(t, p.Color.G, p.Color.B)
	}
}

func TestColorPlatesOnePerQuadrant(t *testing.T) {
	t.Parallel()

	v := testView(t, KindColorPlates)
	frame := Compose(v)

	var discs []CircleOp
	for _, op := range frame.Ops {
		if c, ok := op.(CircleOp); ok {
			discs = append(discs, c)
		}
	}
	require.Len(t, discs, 4)

	centers := map[[2]int]bool{}
	for _, d := range discs {
		centers[[2]int{int(d.CX), int(d.CY)}] = true
	}
	assert.Contains(t, centers, [2]int{v.Width / 4, v.Height / 4})
	assert.Contains(t, centers, [2]int{3 * v.Width / 4, v.Height / 4})
	assert.Contains(t, centers, [2]int{v.Width / 4, 3 * v.Height / 4})
	assert.Contains(t, centers, [2]int{3 * v.Width / 4, 3 * v.Height / 4})
}

func TestFanPatternFixedGeometry(t *testing.T) {
	t.Parallel()

	v := testView(t, KindFan)
	near := Compose(v)

	v.DistanceMm = 6000
	far := Compose(v)

	// The fan is a fixed diagnostic pattern: viewing distance must not
	// change it.
	assert.Equal(t, near.Ops, far.Ops)

	var lines int
	for _, op := range near.Ops {
		if _, ok := op.(LineOp); ok {
			lines++
		}
	}
	assert.Equal(t, 18, lines) // every 10 degrees, 0..170
}

func TestComposeDoublingDistanceHalvesLetterSize(t *testing.T) {
	t.Parallel()

	v := testView(t, KindSnellen)
	nearPs := Placements(v)
	v.DistanceMm = 6000
	farPs := Placements(v)

	require.NotEmpty(t, nearPs)
	require.NotEmpty(t, farPs)
	assert.InDelta(t, float64(nearPs[0].SizePx), float64(2*farPs[0].SizePx), 2)
}

func TestBrightnessScalesBackground(t *testing.T) {
	t.Parallel()

	v := testView(t, KindSnellen)
	v.Brightness = 100
	assert.Equal(t, gray(255), Compose(v).Background)

	v.Brightness = 50
	assert.Equal(t, gray(127), Compose(v).Background)

	v.Brightness = 0
	assert.Equal(t, gray(0), Compose(v).Background)
}

func TestForegroundFollowsContrast(t *testing.T) {
	t.Parallel()

	v := testView(t, KindSnellen)
	v.Contrast = 100
	assert.Equal(t, color.RGBA{A: 0xff}, v.foreground())

	v.Contrast = 0
	assert.Equal(t, v.background(), v.foreground())
}
