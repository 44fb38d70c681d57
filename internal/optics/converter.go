// Package optics converts physical optotype sizes into on-screen pixel
// lengths for a known display and viewing distance.
//
// Acuity charts are defined by angular subtense: a 6/6 Snellen letter
// subtends 5 minutes of arc at the design distance regardless of how far
// away the patient sits. The converter realizes that convention for a
// concrete panel by going through the display's physical diagonal.
package optics

import (
	"fmt"
	"math"
)

// MmPerInch converts display diagonal measurements to millimeters.
const MmPerInch = 25.4

// arcMinute is one minute of arc in radians.
const arcMinute = math.Pi / (180.0 * 60.0)

// Geometry describes the active display: logical pixel dimensions and the
// panel's pixel density. Set once at startup and immutable for the session.
type Geometry struct {
	WidthPx  int
	HeightPx int
	DPI      float64
}

// Validate reports whether the geometry can drive size conversion.
func (g Geometry) Validate() error {
	if g.WidthPx <= 0 || g.HeightPx <= 0 {
		return fmt.Errorf("optics: display dimensions must be positive, got %dx%d", g.WidthPx, g.HeightPx)
	}
	if g.DPI <= 0 {
		return fmt.Errorf("optics: pixel density must be positive, got %g", g.DPI)
	}
	return nil
}

// DiagonalMm returns the physical diagonal of the display in millimeters.
func (g Geometry) DiagonalMm() float64 {
	diagPx := math.Hypot(float64(g.WidthPx), float64(g.HeightPx))
	return diagPx / g.DPI * MmPerInch
}

// Converter maps millimeter sizes to pixel lengths for one display.
type Converter struct {
	geo        Geometry
	diagonalMm float64
}

// NewConverter builds a converter for the given display geometry. Geometry
// with non-positive dimensions is a configuration error and is rejected
// here rather than producing silent zero-size charts later.
func NewConverter(geo Geometry) (*Converter, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	return &Converter{geo: geo, diagonalMm: geo.DiagonalMm()}, nil
}

// Geometry returns the display geometry the converter was built for.
func (c *Converter) Geometry() Geometry {
	return c.geo
}

// PixelsPerMm returns the scale factor applied to millimeter sizes at the
// given viewing distance. One minute of arc at distanceMm maps to
// diagonalMm / (2 * distanceMm * tan(1')) pixels per millimeter, so the
// same chart line subtends the same visual angle on any calibrated panel.
// Callers must guard distanceMm >= 1.
func (c *Converter) PixelsPerMm(distanceMm float64) float64 {
	return c.diagonalMm / (2.0 * distanceMm * math.Tan(arcMinute))
}

// Pixels converts a physical optotype size at the given viewing distance
// into a pixel length, truncated to an integer. Negative sizes clamp to 0.
func (c *Converter) Pixels(sizeMm, distanceMm float64) int {
	if sizeMm <= 0 {
		return 0
	}
	px := int(sizeMm * c.PixelsPerMm(distanceMm))
	if px < 0 {
		return 0
	}
	return px
}
