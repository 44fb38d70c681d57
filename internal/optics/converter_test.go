package optics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testGeometry() Geometry {
	return Geometry{WidthPx: 800, HeightPx: 480, DPI: 96}
}

func TestNewConverterRejectsBadGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		geo  Geometry
	}{
		{name: "zero width", geo: Geometry{WidthPx: 0, HeightPx: 480, DPI: 96}},
		{name: "zero height", geo: Geometry{WidthPx: 800, HeightPx: 0, DPI: 96}},
		{name: "negative width", geo: Geometry{WidthPx: -800, HeightPx: 480, DPI: 96}},
		{name: "zero dpi", geo: Geometry{WidthPx: 800, HeightPx: 480, DPI: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConverter(tt.geo)
			require.Error(t, err)
		})
	}
}

func TestPixelsHalvesWhenDistanceDoubles(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(testGeometry())
	require.NoError(t, err)

	near := conv.Pixels(50, 3000)
	far := conv.Pixels(50, 6000)

	// Doubling the distance should roughly halve the pixel size. Allow one
	// pixel of truncation slack.
	assert.InDelta(t, near, far*2, 2)
	assert.Greater(t, near, far)
}

func TestPixelsScaleInvariance(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(testGeometry())
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		sizeMm := rapid.Float64Range(1, 200).Draw(t, "sizeMm")
		distMm := rapid.Float64Range(500, 10000).Draw(t, "distMm")
		k := rapid.Float64Range(0.5, 4).Draw(t, "k")

		// Equal angular subtense: scaling size and distance together must
		// not change the result beyond truncation error.
		a := conv.Pixels(sizeMm, distMm)
		b := conv.Pixels(sizeMm*k, distMm*k)
		if a != b && a != b+1 && a+1 != b {
			t.Fatalf("angular subtense broken: %d px vs %d px (k=%g)", a, b, k)
		}
	})
}

func TestPixelsMonotonicInSize(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(testGeometry())
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		distMm := rapid.Float64Range(500, 10000).Draw(t, "distMm")
		small := rapid.Float64Range(0.1, 100).Draw(t, "small")
		bigger := small + rapid.Float64Range(0, 100).Draw(t, "delta")

		if conv.Pixels(bigger, distMm) < conv.Pixels(small, distMm) {
			t.Fatalf("pixels decreased when size grew: %g -> %g", small, bigger)
		}
	})
}

func TestPixelsMonotonicInDistance(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(testGeometry())
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		sizeMm := rapid.Float64Range(0.1, 200).Draw(t, "sizeMm")
		near := rapid.Float64Range(500, 10000).Draw(t, "near")
		far := near + rapid.Float64Range(0, 10000).Draw(t, "delta")

		if conv.Pixels(sizeMm, far) > conv.Pixels(sizeMm, near) {
			t.Fatalf("pixels grew when distance grew: %g -> %g", near, far)
		}
	})
}

func TestPixelsNonPositiveSize(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(testGeometry())
	require.NoError(t, err)

	assert.Equal(t, 0, conv.Pixels(0, 3000))
	assert.Equal(t, 0, conv.Pixels(-5, 3000))
}

func TestDiagonalMm(t *testing.T) {
	t.Parallel()

	// A 3-4-5 display: 300x400 px at 100 dpi has a 5 inch diagonal.
	geo := Geometry{WidthPx: 300, HeightPx: 400, DPI: 100}
	assert.InDelta(t, 5*MmPerInch, geo.DiagonalMm(), 1e-9)
}
