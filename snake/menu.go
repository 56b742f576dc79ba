package snake

import (
	"errors"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/hoshinonyaruko/snake-duel/structs"
)

// State is the screen the game is currently on.
type State int

const (
	ModeSelect State = iota
	Settings
	DifficultySelect
	Playing
	Over
)

func (s State) String() string {
	switch s {
	case ModeSelect:
		return "mode_select"
	case Settings:
		return "settings"
	case DifficultySelect:
		return "difficulty_select"
	case Playing:
		return "playing"
	case Over:
		return "game_over"
	default:
		return "unknown"
	}
}

// ErrNoSession is returned by operations that need a round in progress.
var ErrNoSession = errors.New("no game in progress")

// 玩家按键与方向的对应
var (
	player1Keys = map[string]structs.Heading{
		"up":    structs.Up,
		"down":  structs.Down,
		"left":  structs.Left,
		"right": structs.Right,
	}
	player2Keys = map[string]structs.Heading{
		"w": structs.Up,
		"s": structs.Down,
		"a": structs.Left,
		"d": structs.Right,
	}
	difficultyKeys = map[string]Difficulty{
		"1": Easy,
		"2": Medium,
		"3": Hard,
	}
)

// Game drives the menus and the current session. Keys are bound per state;
// restart, pause and grid toggling work everywhere.
type Game struct {
	state   State
	mode    Mode
	grid    bool
	session *Session

	scores *Highscores
	sound  Sound
	rng    *rand.Rand
}

// NewGame loads the highscore from store and opens the mode selection.
func NewGame(store HighscoreStore, sound Sound, rng *rand.Rand) *Game {
	if sound == nil {
		sound = LogSound{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		state:  ModeSelect,
		scores: LoadHighscores(store),
		sound:  sound,
		rng:    rng,
	}
}

func (g *Game) State() State {
	return g.state
}

// Session returns the round in progress, or nil while in the menus.
func (g *Game) Session() *Session {
	return g.session
}

func (g *Game) Highscore() int {
	return g.scores.Best
}

// Running reports whether ticks should be scheduled.
func (g *Game) Running() bool {
	return g.state == Playing
}

// HandleKey applies one key press. Unknown keys and keys that do not belong
// to the current screen are ignored.
func (g *Game) HandleKey(key string) {
	key = strings.ToLower(key)

	switch key {
	case "r":
		g.Restart()
		return
	case "p":
		g.TogglePause()
		return
	case "g":
		g.grid = !g.grid
		log.Printf("Grid enabled: %v", g.grid)
		return
	}

	switch g.state {
	case ModeSelect:
		switch key {
		case "1":
			g.mode = Singleplayer
			g.state = DifficultySelect
		case "2":
			g.mode = Multiplayer
			g.state = DifficultySelect
		case "s":
			g.state = Settings
		}

	case Settings:
		if key == "m" {
			g.state = ModeSelect
		}

	case DifficultySelect:
		if d, ok := difficultyKeys[key]; ok {
			g.start(d)
		}

	case Playing:
		if g.session.Paused {
			return
		}
		if h, ok := player1Keys[key]; ok {
			g.session.Players[0].Turn(h)
		}
		if h, ok := player2Keys[key]; ok {
			if p := g.session.Player(2); p != nil {
				p.Turn(h)
			}
		}
	}
}

// start opens a fresh session with the first food pair on the board.
func (g *Game) start(d Difficulty) {
	g.session = NewSession(g.mode, d, g.scores, g.sound, g.rng)
	g.session.SpawnFoodPair()
	g.state = Playing
	log.Printf("new game: %v, %v", g.mode, d)
}

// Tick advances the session by one step while playing.
func (g *Game) Tick() {
	if g.state != Playing {
		return
	}
	g.session.Update()
	if g.session.GameOver {
		g.state = Over
	}
}

// Delay is the wait before the next Tick.
func (g *Game) Delay() time.Duration {
	if g.session == nil {
		return MinDelay * time.Millisecond
	}
	return g.session.Delay()
}

// Restart persists the highscore if it was beaten, drops the session and
// returns to the mode selection.
func (g *Game) Restart() {
	log.Printf("restarting game")
	if g.session != nil {
		g.scores.Record(g.session.MaxScore())
	}
	g.session = nil
	g.mode = 0
	g.state = ModeSelect
}

// TogglePause flips the pause flag of the running session.
func (g *Game) TogglePause() {
	if g.session == nil {
		return
	}
	g.session.Paused = !g.session.Paused
	log.Printf("Pause: %v", g.session.Paused)
}

// SpawnObstacle places an obstacle in the current session.
func (g *Game) SpawnObstacle() (structs.Position, error) {
	if g.session == nil {
		return structs.Position{}, ErrNoSession
	}
	return g.session.SpawnObstacle(), nil
}

// SpawnItem places a single non-food item in the current session.
func (g *Game) SpawnItem(t structs.ItemType) (structs.Item, error) {
	if g.session == nil {
		return structs.Item{}, ErrNoSession
	}
	return g.session.SpawnItem(t)
}

// Snapshot copies everything the renderer needs.
func (g *Game) Snapshot() structs.Snapshot {
	snap := structs.Snapshot{
		State:       g.state.String(),
		Mode:        g.mode.String(),
		Highscore:   g.scores.Best,
		GridEnabled: g.grid,
		Players:     []structs.PlayerSnapshot{},
		Items:       []structs.Item{},
		Obstacles:   []structs.Position{},
	}
	s := g.session
	if s == nil {
		return snap
	}
	snap.Difficulty = s.Difficulty.String()
	snap.GameOver = s.GameOver
	snap.Paused = s.Paused
	snap.SpeedBoost = s.Effects.SpeedBoostActive()
	snap.Slowdown = s.Effects.SlowdownActive()
	snap.DelayMS = int(s.Delay() / time.Millisecond)
	for _, p := range s.Players {
		snap.Players = append(snap.Players, p.snapshot())
	}
	snap.Items = append(snap.Items, s.Items...)
	snap.Obstacles = append(snap.Obstacles, s.Obstacles...)
	return snap
}
