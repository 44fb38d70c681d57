// Package chart generates vision-test charts as resolution-independent
// paint operations. Layout and shape generation are pure functions of the
// display geometry, the viewing context, and the static catalog, so the
// same inputs always produce the same frame.
package chart

// Kind identifies one test chart family.
type Kind string

const (
	KindSnellen     Kind = "snellen"
	KindLogMAR      Kind = "logmar"
	KindNumbers     Kind = "numbers"
	KindTumblingE   Kind = "tumbling_e"
	KindLandoltC    Kind = "landolt_c"
	KindFan         Kind = "astigmatic_fan"
	KindDuochrome   Kind = "duochrome"
	KindContrast    Kind = "contrast"
	KindColorPlates Kind = "color_plates"
)

// Rotation is the fixed cycling order used by the next/prev commands.
var Rotation = []Kind{
	KindSnellen,
	KindLogMAR,
	KindNumbers,
	KindTumblingE,
	KindLandoltC,
	KindFan,
	KindDuochrome,
	KindContrast,
	KindColorPlates,
}

// RotationIndex returns the position of kind in the rotation, or -1 when
// the kind is not part of it (unknown test names are stored verbatim and
// render header-only, so they legitimately fall outside the rotation).
func RotationIndex(kind Kind) int {
	for i, k := range Rotation {
		if k == kind {
			return i
		}
	}
	return -1
}

// Next returns the rotation entry after kind, wrapping at the end. An
// unknown kind snaps to the first entry.
func Next(kind Kind) Kind {
	i := RotationIndex(kind)
	if i < 0 {
		return Rotation[0]
	}
	return Rotation[(i+1)%len(Rotation)]
}

// Prev returns the rotation entry before kind, wrapping at the start. An
// unknown kind snaps to the last entry.
func Prev(kind Kind) Kind {
	i := RotationIndex(kind)
	if i < 0 {
		return Rotation[len(Rotation)-1]
	}
	return Rotation[(i+len(Rotation)-1)%len(Rotation)]
}

// Orientation is one of the four cardinal directions used by tumbling-E
// arms and Landolt-C gaps.
type Orientation int

const (
	OrientUp Orientation = iota
	OrientRight
	OrientDown
	OrientLeft
)

// orientCycle is the deterministic presentation order for oriented grids.
var orientCycle = []Orientation{OrientUp, OrientRight, OrientDown, OrientLeft}

// OrientationAt returns the orientation for the given cell index. Cells
// cycle through the four cardinal directions in a fixed order so a chart
// is reproducible across sessions.
func OrientationAt(cell int) Orientation {
	if cell < 0 {
		cell = -cell
	}
	return orientCycle[cell%len(orientCycle)]
}

func (o Orientation) String() string {
	switch o {
	case OrientUp:
		return "up"
	case OrientRight:
		return "right"
	case OrientDown:
		return "down"
	case OrientLeft:
		return "left"
	default:
		return "unknown"
	}
}
