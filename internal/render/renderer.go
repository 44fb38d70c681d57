// Package render abstracts the drawing surface and event loop from the
// chart logic, so the core can be exercised in tests without a display
// and the backend can be swapped without touching layout code.
package render

import (
	"errors"
	"image/color"
)

// Termination is returned from Game.Update to stop the engine loop
// cleanly. Backends translate it into their own shutdown signal.
var Termination = errors.New("render: termination requested")

// Renderer draws shapes and text onto an Image.
type Renderer interface {
	// FillRect paints an axis-aligned filled rectangle.
	FillRect(dst Image, x, y, w, h float32, clr color.Color)

	// FillCircle paints a filled circle.
	FillCircle(dst Image, cx, cy, r float32, clr color.Color)

	// StrokeLine paints a line segment with the given stroke width.
	StrokeLine(dst Image, x1, y1, x2, y2, width float32, clr color.Color)

	// DrawText paints a string at the given pixel height. When centered,
	// (x, y) is the string's center; otherwise its top-left corner.
	DrawText(dst Image, text string, x, y, sizePx int, centered bool, clr color.Color)

	// MeasureText returns the rendered extent of text at sizePx.
	MeasureText(text string, sizePx int) (width, height int)
}

// Image is a renderable surface.
type Image interface {
	Size() (width, height int)
	Fill(clr color.Color)
}

// Key is a keyboard key the display reacts to.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyE
	KeyH
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// InputManager reports keyboard state for the current tick.
type InputManager interface {
	IsKeyJustPressed(key Key) bool
}

// Game is the application loop driven by the engine: Update runs once
// per tick, Draw once per frame, Layout fixes the logical resolution.
type Game interface {
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetFullscreen(fullscreen bool)
	SetTPS(tps int)
	SetCursorVisible(visible bool)

	// RunGame blocks until the game returns Termination or the window
	// closes.
	RunGame(game Game) error
}
