// 把游戏快照绘制成图片，供 HTTP 和桌面窗口共用
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/structs"
)

var (
	colorPlayer1  = color.RGBA{50, 205, 50, 255} // lime green
	colorPlayer2  = color.RGBA{255, 255, 0, 255}
	colorGlow     = color.RGBA{255, 165, 0, 255}
	colorObstacle = color.RGBA{128, 128, 128, 255}
	colorGrid     = color.RGBA{105, 105, 105, 255}
	colorText     = color.White

	itemColors = map[structs.ItemType]color.Color{
		structs.RedFood:    color.RGBA{255, 0, 0, 255},
		structs.GoldFood:   color.RGBA{255, 215, 0, 255},
		structs.Poison:     color.RGBA{128, 0, 128, 255},
		structs.SpeedBoost: color.RGBA{0, 0, 255, 255},
		structs.Slowdown:   color.RGBA{255, 165, 0, 255},
	}
)

// SpriteSource supplies optional tile images by name.
type SpriteSource interface {
	Sprite(name string) (image.Image, bool)
}

// Renderer draws snapshots at BlockSize pixels per tile. Items and obstacles
// use a sprite named after the item type (or "obstacle") when one is loaded,
// and a coloured square otherwise.
type Renderer struct {
	BlockSize int
	Sprites   SpriteSource
}

func New(blockSize int, sprites SpriteSource) *Renderer {
	if blockSize <= 0 {
		blockSize = snake.TileSize
	}
	return &Renderer{BlockSize: blockSize, Sprites: sprites}
}

// Size returns the canvas size in pixels.
func (r *Renderer) Size() (int, int) {
	return snake.Cols * r.BlockSize, snake.Rows * r.BlockSize
}

// scale converts play-field units into canvas pixels.
func (r *Renderer) scale(v float64) float64 {
	return v * float64(r.BlockSize) / snake.TileSize
}

// Render draws one frame.
func (r *Renderer) Render(snap structs.Snapshot) image.Image {
	width, height := r.Size()
	dc := gg.NewContext(width, height)
	dc.SetColor(color.Black)
	dc.Clear()

	switch snap.State {
	case snake.ModeSelect.String():
		r.drawMenu(dc, snake.WindowHeight/4, []string{"Choose Mode"},
			[]string{"1: Singleplayer", "2: Multiplayer", "", "S: Settings"})
	case snake.Settings.String():
		grid := "Grid: OFF (press G in-game)"
		if snap.GridEnabled {
			grid = "Grid: ON (press G in-game)"
		}
		r.drawMenu(dc, snake.WindowHeight/3, []string{"Settings"},
			[]string{grid, "", "M: Return to Main Menu"})
	case snake.DifficultySelect.String():
		r.drawMenu(dc, snake.WindowHeight/3, []string{"Choose Difficulty"},
			[]string{"1: Easy", "2: Medium", "3: Hard"})
	default:
		r.drawField(dc, snap)
		if snap.GameOver {
			return r.drawGameOver(dc.Image(), snap)
		}
	}
	return dc.Image()
}

func (r *Renderer) drawMenu(dc *gg.Context, titleY float64, title, options []string) {
	cx := r.scale(snake.WindowWidth / 2)
	dc.SetColor(colorText)
	for _, line := range title {
		dc.DrawStringAnchored(line, cx, r.scale(titleY), 0.5, 0.5)
	}
	// 选项从中间偏上开始，每行间隔30
	y := float64(snake.WindowHeight/2 - 30)
	for _, line := range options {
		if line != "" {
			dc.DrawStringAnchored(line, cx, r.scale(y), 0.5, 0.5)
		}
		y += 25
	}
}

func (r *Renderer) drawField(dc *gg.Context, snap structs.Snapshot) {
	if snap.GridEnabled {
		r.drawGrid(dc)
	}
	for _, obstacle := range snap.Obstacles {
		r.drawTile(dc, obstacle, "obstacle", colorObstacle)
	}
	for _, item := range snap.Items {
		r.drawTile(dc, item.Position, item.Type.String(), itemColors[item.Type])
	}
	for _, p := range snap.Players {
		c := color.Color(colorPlayer1)
		if p.Number == 2 {
			c = colorPlayer2
		}
		if p.Glowing {
			c = colorGlow
		}
		for _, segment := range p.Body {
			r.drawTile(dc, segment, "", c)
		}
	}
	r.drawScoreboard(dc, snap)
}

func (r *Renderer) drawGrid(dc *gg.Context) {
	width, height := r.Size()
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	for i := 0; i < snake.Rows; i++ {
		y := float64(i * r.BlockSize)
		dc.DrawLine(0, y, float64(width), y)
		dc.Stroke()
	}
	for j := 0; j < snake.Cols; j++ {
		x := float64(j * r.BlockSize)
		dc.DrawLine(x, 0, x, float64(height))
		dc.Stroke()
	}
}

func (r *Renderer) drawTile(dc *gg.Context, pos structs.Position, sprite string, fallback color.Color) {
	col, row := snake.Cell(pos)
	x, y := col*r.BlockSize, row*r.BlockSize
	if sprite != "" && r.Sprites != nil {
		if img, found := r.Sprites.Sprite(sprite); found {
			dc.DrawImage(img, x, y)
			return
		}
	}
	// 没有贴图时使用纯色方块
	dc.SetColor(fallback)
	dc.DrawRectangle(float64(x), float64(y), float64(r.BlockSize), float64(r.BlockSize))
	dc.Fill()
}

func (r *Renderer) drawScoreboard(dc *gg.Context, snap structs.Snapshot) {
	dc.SetColor(colorText)
	dc.DrawStringAnchored(fmt.Sprintf("Highscore: %d", snap.Highscore), r.scale(100), r.scale(20), 0.5, 0.5)
	for _, p := range snap.Players {
		c, x := colorPlayer1, 30.0
		if p.Number == 2 {
			c, x = colorPlayer2, 100.0
		}
		dc.SetColor(c)
		dc.DrawStringAnchored(fmt.Sprintf("P%d: %d", p.Number, p.Score), r.scale(x), r.scale(40), 0.5, 0.5)
	}
	if snap.Paused {
		dc.SetColor(colorText)
		dc.DrawStringAnchored("PAUSED", r.scale(snake.WindowWidth/2), r.scale(20), 0.5, 0.5)
	}
}

// drawGameOver blurs the final frame and puts the results on top.
func (r *Renderer) drawGameOver(frame image.Image, snap structs.Snapshot) image.Image {
	width, height := r.Size()
	dc := gg.NewContext(width, height)
	dc.DrawImage(imaging.Blur(frame, 3), 0, 0)

	cx := r.scale(snake.WindowWidth / 2)
	cy := float64(snake.WindowHeight / 2)
	dc.SetColor(colorText)
	dc.DrawStringAnchored("Game Over!", cx, r.scale(cy-40), 0.5, 0.5)
	for _, p := range snap.Players {
		c := colorPlayer1
		if p.Number == 2 {
			c = colorPlayer2
		}
		dc.SetColor(c)
		y := cy + float64(20*(p.Number-1))
		dc.DrawStringAnchored(fmt.Sprintf("Player %d Score: %d", p.Number, p.Score), cx, r.scale(y), 0.5, 0.5)
	}
	dc.SetColor(colorText)
	dc.DrawStringAnchored("Press R to Restart", cx, r.scale(cy+60), 0.5, 0.5)
	return dc.Image()
}

// SavePNG renders snap and writes it to path, creating parent directories.
func (r *Renderer) SavePNG(snap structs.Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return imaging.Save(r.Render(snap), path)
}
