package snake

import "github.com/hoshinonyaruko/snake-duel/structs"

// 玩家起始位置
var startPositions = []structs.Position{
	{X: TileSize * 5, Y: TileSize * 5},
	{X: TileSize * 15, Y: TileSize * 15},
}

// Player owns one snake together with its score and glow timer.
type Player struct {
	Number    int
	Body      []structs.Position // 下标0为蛇头
	Heading   structs.Heading
	Score     int
	GlowTimer int
}

// NewPlayer places a one-segment snake at start, standing still.
func NewPlayer(number int, start structs.Position) *Player {
	return &Player{
		Number:  number,
		Body:    []structs.Position{start},
		Heading: structs.Still,
	}
}

func (p *Player) Head() structs.Position {
	return p.Body[0]
}

// Turn changes the heading unless h would reverse it. It reports whether the
// heading was accepted.
func (p *Player) Turn(h structs.Heading) bool {
	if h.Reverse(p.Heading) {
		return false
	}
	p.Heading = h
	return true
}

// Grow appends a copy of the tail segment.
func (p *Player) Grow() {
	p.Body = append(p.Body, p.Body[len(p.Body)-1])
}

func (p *Player) Glowing() bool {
	return p.GlowTimer > 0
}

func (p *Player) snapshot() structs.PlayerSnapshot {
	body := make([]structs.Position, len(p.Body))
	copy(body, p.Body)
	return structs.PlayerSnapshot{
		Number:  p.Number,
		Body:    body,
		Heading: p.Heading,
		Score:   p.Score,
		Glowing: p.Glowing(),
	}
}
