package snake

import (
	"errors"

	"github.com/hoshinonyaruko/snake-duel/structs"
)

// ErrPairedItem is returned when a single red or gold food is requested; food
// only ever spawns as a pair.
var ErrPairedItem = errors.New("food items spawn only as a red/gold pair")

// randomCell picks a uniformly random tile. Nothing checks whether the tile is
// already taken by a snake, an obstacle or another item.
func (s *Session) randomCell() structs.Position {
	return structs.Position{
		X: s.rng.Intn(Cols) * TileSize,
		Y: s.rng.Intn(Rows) * TileSize,
	}
}

// SpawnFoodPair places one red and one gold food at independent random tiles.
func (s *Session) SpawnFoodPair() {
	red := structs.Item{Position: s.randomCell(), Type: structs.RedFood}
	gold := structs.Item{Position: s.randomCell(), Type: structs.GoldFood}
	s.Items = append(s.Items, red, gold)
}

// SpawnObstacle adds an obstacle at a random tile and returns its position.
func (s *Session) SpawnObstacle() structs.Position {
	pos := s.randomCell()
	s.Obstacles = append(s.Obstacles, pos)
	return pos
}

// SpawnItem places a single poison, speed boost or slowdown item.
func (s *Session) SpawnItem(t structs.ItemType) (structs.Item, error) {
	switch t {
	case structs.Poison, structs.SpeedBoost, structs.Slowdown:
	case structs.RedFood, structs.GoldFood:
		return structs.Item{}, ErrPairedItem
	default:
		return structs.Item{}, errors.New("unknown item type")
	}
	item := structs.Item{Position: s.randomCell(), Type: t}
	s.Items = append(s.Items, item)
	return item, nil
}
