// Package state holds the viewing context: the single piece of mutable
// shared display state. Everything else in the system is immutable data
// rebuilt per frame.
package state

import (
	"sync"

	"github.com/kalam1991git/vision-test/internal/chart"
)

// Snapshot is a consistent copy of the viewing context, safe to hand to
// layout and rendering without holding the lock.
type Snapshot struct {
	Test       chart.Kind
	Language   string
	DistanceMm float64
	Brightness int
	Contrast   int
}

// Context is the mutable viewing context. It is mutated only through the
// command dispatcher; concurrent readers (the HTTP status page, the render
// loop) take snapshots under the lock so a distance change and a test
// change are never observed half-applied.
type Context struct {
	mu   sync.RWMutex
	vals Snapshot
}

// New builds a context from an initial snapshot, clamping percentage
// fields into range.
func New(initial Snapshot) *Context {
	initial.Brightness = clamp(initial.Brightness)
	initial.Contrast = clamp(initial.Contrast)
	if initial.DistanceMm < 1 {
		initial.DistanceMm = 1
	}
	return &Context{vals: initial}
}

// Snapshot returns a consistent copy of the current values.
func (c *Context) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals
}

// SetTest stores the test name verbatim; unknown names are allowed and
// render as a header-only chart.
func (c *Context) SetTest(kind chart.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Test = kind
}

// SetLanguage stores the language tag verbatim; the catalog falls back to
// English for tags it has no data for.
func (c *Context) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Language = lang
}

// SetDistanceMm updates the viewing distance. Values below one
// millimeter are rejected so size conversion can never divide by zero.
func (c *Context) SetDistanceMm(mm float64) bool {
	if mm < 1 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DistanceMm = mm
	return true
}

// StepBrightness moves brightness by delta, clamped to [0,100], and
// returns the stored value.
func (c *Context) StepBrightness(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Brightness = clamp(c.vals.Brightness + delta)
	return c.vals.Brightness
}

// StepContrast moves contrast by delta, clamped to [0,100], and returns
// the stored value.
func (c *Context) StepContrast(delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Contrast = clamp(c.vals.Contrast + delta)
	return c.vals.Contrast
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
