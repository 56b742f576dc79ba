package snake

import (
	"math/rand"
	"time"

	"github.com/hoshinonyaruko/snake-duel/structs"
)

// Mode selects how many players take part.
type Mode int

const (
	Singleplayer Mode = iota + 1
	Multiplayer
)

func (m Mode) String() string {
	switch m {
	case Singleplayer:
		return "singleplayer"
	case Multiplayer:
		return "multiplayer"
	default:
		return ""
	}
}

// Session is one round of play from difficulty selection until restart.
// It is not safe for concurrent use.
type Session struct {
	Mode       Mode
	Difficulty Difficulty
	Players    []*Player
	Items      []structs.Item
	Obstacles  []structs.Position
	Effects    Effects
	GameOver   bool
	Paused     bool

	scores *Highscores
	sound  Sound
	rng    *rand.Rand
}

// NewSession creates the snakes for mode. The item and obstacle sets start
// empty.
func NewSession(mode Mode, difficulty Difficulty, scores *Highscores, sound Sound, rng *rand.Rand) *Session {
	if scores == nil {
		scores = &Highscores{}
	}
	if sound == nil {
		sound = Sounds(nil)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		Mode:       mode,
		Difficulty: difficulty,
		scores:     scores,
		sound:      sound,
		rng:        rng,
	}
	count := 1
	if mode == Multiplayer {
		count = 2
	}
	for i := 0; i < count; i++ {
		s.Players = append(s.Players, NewPlayer(i+1, startPositions[i]))
	}
	return s
}

// Update runs one tick: timers count down, then each snake moves and its
// collisions are resolved. Every snake takes its step even when an earlier one
// ends the round; only later calls are no-ops.
func (s *Session) Update() {
	if s.GameOver || s.Paused {
		return
	}

	s.Effects.Advance()
	for _, p := range s.Players {
		countdown(&p.GlowTimer)
	}

	for _, p := range s.Players {
		head := MoveSnake(p)
		s.resolve(p, head)
	}
}

// MaxScore returns the leading score among all players.
func (s *Session) MaxScore() int {
	best := 0
	for _, p := range s.Players {
		best = max(best, p.Score)
	}
	return best
}

func (s *Session) scoresList() []int {
	scores := make([]int, len(s.Players))
	for i, p := range s.Players {
		scores[i] = p.Score
	}
	return scores
}

// Delay is the wait before the next Update.
func (s *Session) Delay() time.Duration {
	return Delay(s.Difficulty, s.Effects, s.scoresList()...)
}

// Player returns the player with the given 1-based number, or nil.
func (s *Session) Player(number int) *Player {
	if number < 1 || number > len(s.Players) {
		return nil
	}
	return s.Players[number-1]
}

// FoodCount counts the live red and gold food items.
func (s *Session) FoodCount() int {
	n := 0
	for _, item := range s.Items {
		if item.Type.IsFood() {
			n++
		}
	}
	return n
}
