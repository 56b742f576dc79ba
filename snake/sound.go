package snake

import "log"

// 声音事件名称
const (
	EventItemEaten         = "item_eaten"
	EventObstacleCollision = "obstacle_collision"
	EventWallCollision     = "wall_collision"
	EventGameOver          = "game_over"
)

// Sound receives named sound events. Implementations must not block.
type Sound interface {
	Play(event string)
}

// LogSound writes every event to the standard logger.
type LogSound struct{}

func (LogSound) Play(event string) {
	log.Printf("Sound-Event: %s", event)
}

// Sounds fans an event out to several sinks.
type Sounds []Sound

func (s Sounds) Play(event string) {
	for _, sink := range s {
		sink.Play(event)
	}
}
