// 桌面单窗口版本，基于 ebiten
package window

import (
	"image"
	"image/draw"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hoshinonyaruko/snake-duel/render"
	"github.com/hoshinonyaruko/snake-duel/snake"
)

// 键盘按键到游戏按键名的映射
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "Up",
	ebiten.KeyArrowDown:  "Down",
	ebiten.KeyArrowLeft:  "Left",
	ebiten.KeyArrowRight: "Right",
	ebiten.KeyW:          "w",
	ebiten.KeyA:          "a",
	ebiten.KeyS:          "s",
	ebiten.KeyD:          "d",
	ebiten.KeyR:          "r",
	ebiten.KeyP:          "p",
	ebiten.KeyG:          "g",
	ebiten.KeyM:          "m",
	ebiten.KeyDigit1:     "1",
	ebiten.KeyDigit2:     "2",
	ebiten.KeyDigit3:     "3",
	ebiten.KeyNumpad1:    "1",
	ebiten.KeyNumpad2:    "2",
	ebiten.KeyNumpad3:    "3",
}

// Window hosts a game in an ebiten window. ebiten calls Update and Draw from
// one goroutine, so the game needs no locking here.
type Window struct {
	game     *snake.Game
	renderer *render.Renderer
	lastTick time.Time
	keys     []ebiten.Key
	buf      *image.RGBA
	frame    *ebiten.Image
}

func New(game *snake.Game, renderer *render.Renderer) *Window {
	width, height := renderer.Size()
	return &Window{
		game:     game,
		renderer: renderer,
		lastTick: time.Now(),
		buf:      image.NewRGBA(image.Rect(0, 0, width, height)),
		frame:    ebiten.NewImage(width, height),
	}
}

// Update feeds key presses to the game and ticks it whenever the scheduled
// delay has passed.
func (w *Window) Update() error {
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	for _, k := range w.keys {
		if name, ok := keyNames[k]; ok {
			w.game.HandleKey(name)
		}
	}

	now := time.Now()
	if !w.game.Running() {
		w.lastTick = now
		return nil
	}
	if now.Sub(w.lastTick) >= w.game.Delay() {
		w.game.Tick()
		w.lastTick = now
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	img := w.renderer.Render(w.game.Snapshot())
	draw.Draw(w.buf, w.buf.Bounds(), img, img.Bounds().Min, draw.Src)
	w.frame.WritePixels(w.buf.Pix)
	screen.DrawImage(w.frame, nil)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.renderer.Size()
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	width, height := w.renderer.Size()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Snake")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	return ebiten.RunGame(w)
}
