package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotationHasNineKinds(t *testing.T) {
	t.Parallel()
	assert.Len(t, Rotation, 9)
}

func TestNextPrevAreInverse(t *testing.T) {
	t.Parallel()

	for _, k := range Rotation {
		assert.Equal(t, k, Prev(Next(k)), "next then prev from %s", k)
		assert.Equal(t, k, Next(Prev(k)), "prev then next from %s", k)
	}
}

func TestNextWrapsAround(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Rotation[0], Next(Rotation[len(Rotation)-1]))
	assert.Equal(t, Rotation[len(Rotation)-1], Prev(Rotation[0]))
}

func TestNextUnknownKindSnapsToRotation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Rotation[0], Next(Kind("no-such-test")))
	assert.Equal(t, Rotation[len(Rotation)-1], Prev(Kind("no-such-test")))
}

func TestOrientationCycleIsDeterministic(t *testing.T) {
	t.Parallel()

	want := []Orientation{OrientUp, OrientRight, OrientDown, OrientLeft}
	for cell := 0; cell < 12; cell++ {
		assert.Equal(t, want[cell%4], OrientationAt(cell), "cell %d", cell)
	}
}
