package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalam1991git/vision-test/internal/chart"
)

func TestNewClampsInitialValues(t *testing.T) {
	t.Parallel()

	c := New(Snapshot{Test: chart.KindSnellen, Brightness: 150, Contrast: -5, DistanceMm: 0})
	snap := c.Snapshot()
	assert.Equal(t, 100, snap.Brightness)
	assert.Equal(t, 0, snap.Contrast)
	assert.Equal(t, 1.0, snap.DistanceMm)
}

func TestSetDistanceRejectsSubMillimeter(t *testing.T) {
	t.Parallel()

	c := New(Snapshot{DistanceMm: 3000})
	assert.False(t, c.SetDistanceMm(0))
	assert.False(t, c.SetDistanceMm(-100))
	assert.Equal(t, 3000.0, c.Snapshot().DistanceMm)

	assert.True(t, c.SetDistanceMm(6000))
	assert.Equal(t, 6000.0, c.Snapshot().DistanceMm)
}

func TestStepsClampAndReport(t *testing.T) {
	t.Parallel()

	c := New(Snapshot{Brightness: 95, Contrast: 5})
	assert.Equal(t, 100, c.StepBrightness(10))
	assert.Equal(t, 0, c.StepContrast(-10))
}

func TestSnapshotIsConsistentUnderConcurrentWrites(t *testing.T) {
	t.Parallel()

	c := New(Snapshot{Test: chart.KindSnellen, DistanceMm: 3000, Brightness: 50, Contrast: 50})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.SetTest(chart.KindLogMAR)
				c.SetDistanceMm(4000)
				c.StepBrightness(1)
				c.StepContrast(-1)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				snap := c.Snapshot()
				assert.GreaterOrEqual(t, snap.Brightness, 0)
				assert.LessOrEqual(t, snap.Brightness, 100)
			}
		}()
	}
	wg.Wait()
}
