// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/kalam1991git/vision-test/internal/render"
)

// Debug-font glyph metrics used for text scaling.
const (
	baseCharWidth  = 6
	baseCharHeight = 13
)

// Renderer implements render.Renderer using Ebitengine.
type Renderer struct{}

// NewRenderer creates the Ebitengine-backed renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// FillRect draws a filled rectangle on the destination image.
func (r *Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	vector.DrawFilledRect(ebitenImg(dst), x, y, w, h, clr, false)
}

// FillCircle draws a filled circle on the destination image.
func (r *Renderer) FillCircle(dst render.Image, cx, cy, radius float32, clr color.Color) {
	vector.DrawFilledCircle(ebitenImg(dst), cx, cy, radius, clr, true)
}

// StrokeLine draws a line segment on the destination image.
func (r *Renderer) StrokeLine(dst render.Image, x1, y1, x2, y2, width float32, clr color.Color) {
	vector.StrokeLine(ebitenImg(dst), x1, y1, x2, y2, width, clr, true)
}

// DrawText draws a string at the requested pixel height by rendering the
// debug font to a scratch image and scaling it. Good enough for headers
// and labels; optotype letters are drawn procedurally and never go
// through here.
// TODO: bundle a Devanagari-capable face and move to text/v2 so Hindi
// chart rows render with real glyphs instead of the ASCII debug font.
func (r *Renderer) DrawText(dst render.Image, str string, x, y, sizePx int, centered bool, clr color.Color) {
	if str == "" || sizePx <= 0 {
		return
	}

	baseW := baseCharWidth * len([]rune(str))
	scratch := ebiten.NewImage(baseW, baseCharHeight)
	defer scratch.Dispose()
	ebitenutil.DebugPrintAt(scratch, str, 0, 0)

	scale := float64(sizePx) / float64(baseCharHeight)
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(scale, scale)
	w, h := r.MeasureText(str, sizePx)
	if centered {
		opts.GeoM.Translate(float64(x)-float64(w)/2, float64(y)-float64(h)/2)
	} else {
		opts.GeoM.Translate(float64(x), float64(y))
	}
	opts.ColorScale.ScaleWithColor(clr)
	ebitenImg(dst).DrawImage(scratch, opts)
}

// MeasureText returns the rendered extent of text at the given height.
func (r *Renderer) MeasureText(str string, sizePx int) (width, height int) {
	scale := float64(sizePx) / float64(baseCharHeight)
	return int(float64(baseCharWidth*len([]rune(str))) * scale), sizePx
}

// Image wraps an *ebiten.Image as a render.Image.
type Image struct {
	img *ebiten.Image
}

// Size returns the image dimensions.
func (i *Image) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the image with a color.
func (i *Image) Fill(clr color.Color) {
	i.img.Fill(clr)
}

func ebitenImg(img render.Image) *ebiten.Image {
	return img.(*Image).img
}

// InputManager implements render.InputManager with inpututil.
type InputManager struct{}

// NewInputManager creates the Ebitengine-backed input manager.
func NewInputManager() render.InputManager {
	return &InputManager{}
}

var keyMap = map[render.Key]ebiten.Key{
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeyEscape: ebiten.KeyEscape,
	render.KeyE:      ebiten.KeyE,
	render.KeyH:      ebiten.KeyH,
	render.Key1:      ebiten.KeyDigit1,
	render.Key2:      ebiten.KeyDigit2,
	render.Key3:      ebiten.KeyDigit3,
	render.Key4:      ebiten.KeyDigit4,
	render.Key5:      ebiten.KeyDigit5,
	render.Key6:      ebiten.KeyDigit6,
	render.Key7:      ebiten.KeyDigit7,
	render.Key8:      ebiten.KeyDigit8,
	render.Key9:      ebiten.KeyDigit9,
}

// IsKeyJustPressed reports whether the key went down this tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	ek, ok := keyMap[key]
	if !ok {
		return false
	}
	return inpututil.IsKeyJustPressed(ek)
}

// Engine implements render.Engine.
type Engine struct{}

// NewEngine creates the Ebitengine-backed engine.
func NewEngine() render.Engine {
	return &Engine{}
}

// SetWindowSize sets the window size in pixels.
func (e *Engine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *Engine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetFullscreen toggles fullscreen mode.
func (e *Engine) SetFullscreen(fullscreen bool) {
	ebiten.SetFullscreen(fullscreen)
}

// SetTPS sets the logic tick rate.
func (e *Engine) SetTPS(tps int) {
	ebiten.SetTPS(tps)
}

// SetCursorVisible shows or hides the mouse cursor.
func (e *Engine) SetCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

// RunGame runs the loop until the game asks for termination.
func (e *Engine) RunGame(game render.Game) error {
	err := ebiten.RunGame(&gameAdapter{game: game})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// gameAdapter adapts render.Game to ebiten.Game.
type gameAdapter struct {
	game render.Game
}

func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.Termination) {
		return ebiten.Termination
	}
	return err
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&Image{img: screen})
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
