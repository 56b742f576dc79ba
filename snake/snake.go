// 关于的蛇的更新
package snake

import (
	"log"

	"github.com/hoshinonyaruko/snake-duel/structs"
)

// MoveSnake advances p one tile along its heading. Every segment takes the
// place its predecessor held before the move, then the head takes the new
// position, which is returned.
func MoveSnake(p *Player) structs.Position {
	newHead := p.Head().Add(p.Heading, TileSize)

	// 身体从尾部开始依次前移
	for i := len(p.Body) - 1; i > 0; i-- {
		p.Body[i] = p.Body[i-1]
	}
	p.Body[0] = newHead
	return newHead
}

// resolve checks the freshly moved head of p. Wall, own body, obstacles and
// items are tested in that order and the first hit wins.
func (s *Session) resolve(p *Player, head structs.Position) {
	if !InBounds(head) {
		s.end(p, EventWallCollision)
		return
	}

	// 蛇头不与自己比较
	for _, segment := range p.Body[1:] {
		if segment == head {
			s.end(p, EventGameOver)
			return
		}
	}

	for _, obstacle := range s.Obstacles {
		if obstacle == head {
			s.end(p, EventObstacleCollision)
			return
		}
	}

	// 每帧只吃第一个命中的物品
	for _, item := range s.Items {
		if item.Position == head {
			s.applyItem(p, item)
			return
		}
	}
}

// applyItem dispatches the effect of item on the player that reached it.
func (s *Session) applyItem(p *Player, item structs.Item) {
	switch item.Type {
	case structs.RedFood, structs.GoldFood:
		p.Grow()
		points := 1
		if item.Type == structs.GoldFood {
			points = 3
			p.GlowTimer = GlowTicks
		}
		p.Score += points
		s.sound.Play(EventItemEaten)

		// 红色和金色食物成对出现，吃掉任意一个都要一起移除再重新生成
		s.Items = withoutFood(s.Items)
		s.SpawnFoodPair()

	case structs.Poison:
		s.end(p, EventGameOver)

	case structs.SpeedBoost:
		s.Effects.SpeedBoostTimer = SpeedBoostTicks
		s.sound.Play(EventItemEaten)
		s.Items = without(s.Items, item)

	case structs.Slowdown:
		s.Effects.SlowdownTimer = SlowdownTicks
		s.sound.Play(EventItemEaten)
		s.Items = without(s.Items, item)

	default:
		log.Printf("player %d hit unknown item type %d", p.Number, item.Type)
	}
}

// end latches the session into game over.
func (s *Session) end(p *Player, event string) {
	log.Printf("game over: player %d, %s", p.Number, event)
	s.GameOver = true
	s.scores.Record(s.MaxScore())
	s.sound.Play(event)
}

// withoutFood 重建物品数组，排除所有红色和金色食物
func withoutFood(items []structs.Item) []structs.Item {
	retained := make([]structs.Item, 0, len(items))
	for _, item := range items {
		if !item.Type.IsFood() {
			retained = append(retained, item)
		}
	}
	return retained
}

// without drops the first occurrence of target.
func without(items []structs.Item, target structs.Item) []structs.Item {
	retained := make([]structs.Item, 0, len(items))
	removed := false
	for _, item := range items {
		if !removed && item == target {
			removed = true
			continue
		}
		retained = append(retained, item)
	}
	return retained
}
