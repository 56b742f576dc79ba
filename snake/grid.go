package snake

import "github.com/hoshinonyaruko/snake-duel/structs"

// 地图尺寸固定，运行时不可配置
const (
	Rows     = 25
	Cols     = 25
	TileSize = 25

	WindowWidth  = TileSize * Cols
	WindowHeight = TileSize * Rows
)

// InBounds reports whether p lies inside the play field.
func InBounds(p structs.Position) bool {
	return p.X >= 0 && p.X < WindowWidth && p.Y >= 0 && p.Y < WindowHeight
}

// Cell converts a pixel position into its grid column and row.
func Cell(p structs.Position) (col, row int) {
	return p.X / TileSize, p.Y / TileSize
}
