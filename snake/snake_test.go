package snake

import (
	"math/rand"
	"testing"

	"github.com/hoshinonyaruko/snake-duel/structs"
)

type recordSound struct {
	events []string
}

func (r *recordSound) Play(event string) {
	r.events = append(r.events, event)
}

func (r *recordSound) last() string {
	if len(r.events) == 0 {
		return ""
	}
	return r.events[len(r.events)-1]
}

type memStore struct {
	score int
	saves int
}

func (m *memStore) Load() (int, error) { return m.score, nil }

func (m *memStore) Save(score int) error {
	m.score = score
	m.saves++
	return nil
}

func newTestSession(mode Mode, d Difficulty) (*Session, *recordSound, *memStore) {
	sound := &recordSound{}
	store := &memStore{}
	s := NewSession(mode, d, LoadHighscores(store), sound, rand.New(rand.NewSource(1)))
	return s, sound, store
}

func pos(col, row int) structs.Position {
	return structs.Position{X: col * TileSize, Y: row * TileSize}
}

func TestMoveSnakeFollowsPredecessor(t *testing.T) {
	p := NewPlayer(1, pos(5, 5))
	p.Body = append(p.Body, pos(4, 5), pos(3, 5))
	p.Heading = structs.Down

	head := MoveSnake(p)

	want := []structs.Position{pos(5, 6), pos(5, 5), pos(4, 5)}
	if head != want[0] {
		t.Errorf("Expected head %v, got %v", want[0], head)
	}
	for i, w := range want {
		if p.Body[i] != w {
			t.Errorf("segment %d: expected %v, got %v", i, w, p.Body[i])
		}
	}
}

func TestTickMovesHeadOneTile(t *testing.T) {
	s, _, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Heading = structs.Right

	s.Update()

	if p.Head() != (structs.Position{X: 150, Y: 125}) {
		t.Errorf("Expected head (150,125), got %v", p.Head())
	}
	if len(p.Body) != 1 || p.Body[0] != p.Head() {
		t.Errorf("Expected body [(150,125)], got %v", p.Body)
	}
	if p.Score != 0 {
		t.Errorf("Expected score 0, got %d", p.Score)
	}
	if got := DelayMS(s.Difficulty, s.Effects, s.scoresList()...); got != 150 {
		t.Errorf("Expected delay 150, got %d", got)
	}
}

func TestWallCollision(t *testing.T) {
	s, sound, store := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Body[0] = structs.Position{X: 600, Y: 125}
	p.Heading = structs.Right
	p.Score = 4

	s.Update()

	if p.Head().X != WindowWidth {
		t.Fatalf("Expected head x %d, got %d", WindowWidth, p.Head().X)
	}
	if !s.GameOver {
		t.Fatal("Expected game over after leaving the field")
	}
	if sound.last() != EventWallCollision {
		t.Errorf("Expected %q, got %v", EventWallCollision, sound.events)
	}
	if store.score != 4 || store.saves != 1 {
		t.Errorf("Expected highscore 4 saved once, got %d (%d saves)", store.score, store.saves)
	}
}

func TestWallCollisionKeepsHigherHighscore(t *testing.T) {
	sound := &recordSound{}
	store := &memStore{score: 10}
	s := NewSession(Singleplayer, Easy, LoadHighscores(store), sound, rand.New(rand.NewSource(1)))
	s.Players[0].Body[0] = pos(0, 3)
	s.Players[0].Heading = structs.Left
	s.Players[0].Score = 3

	s.Update()

	if !s.GameOver {
		t.Fatal("Expected game over")
	}
	if store.saves != 0 || store.score != 10 {
		t.Errorf("Expected stored highscore untouched, got %d (%d saves)", store.score, store.saves)
	}
}

func TestSelfCollision(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	// 蛇身绕成一圈，头向下会撞到身体
	p.Body = []structs.Position{pos(5, 5), pos(6, 5), pos(6, 6), pos(5, 6), pos(4, 6)}
	p.Heading = structs.Down

	s.Update()

	if !s.GameOver {
		t.Fatal("Expected self collision to end the game")
	}
	if sound.last() != EventGameOver {
		t.Errorf("Expected %q, got %v", EventGameOver, sound.events)
	}
}

func TestHeadNeverHitsItself(t *testing.T) {
	s, _, _ := newTestSession(Singleplayer, Easy)
	// 静止的单节蛇不会自撞
	for i := 0; i < 5; i++ {
		s.Update()
	}
	if s.GameOver {
		t.Error("A still one-segment snake must not collide with itself")
	}
}

func TestObstacleCollision(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	s.Players[0].Heading = structs.Up
	s.Obstacles = []structs.Position{pos(5, 4)}

	s.Update()

	if !s.GameOver {
		t.Fatal("Expected obstacle collision to end the game")
	}
	if sound.last() != EventObstacleCollision {
		t.Errorf("Expected %q, got %v", EventObstacleCollision, sound.events)
	}
}

func TestWallBeatsObstacleAndItem(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Body[0] = pos(0, 0)
	p.Heading = structs.Up
	off := structs.Position{X: 0, Y: -TileSize}
	s.Obstacles = []structs.Position{off}
	s.Items = []structs.Item{{Position: off, Type: structs.RedFood}}

	s.Update()

	if sound.last() != EventWallCollision {
		t.Errorf("Expected wall collision to win, got %v", sound.events)
	}
	if p.Score != 0 {
		t.Errorf("Expected no score, got %d", p.Score)
	}
}

func TestRedFood(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Heading = structs.Right
	s.Items = []structs.Item{
		{Position: pos(6, 5), Type: structs.RedFood},
		{Position: pos(20, 20), Type: structs.GoldFood},
		{Position: pos(1, 1), Type: structs.SpeedBoost},
	}

	s.Update()

	if p.Score != 1 {
		t.Errorf("Expected score 1, got %d", p.Score)
	}
	if len(p.Body) != 2 {
		t.Errorf("Expected body length 2, got %d", len(p.Body))
	}
	if p.GlowTimer != 0 {
		t.Errorf("Red food must not glow, got %d", p.GlowTimer)
	}
	if sound.last() != EventItemEaten {
		t.Errorf("Expected %q, got %v", EventItemEaten, sound.events)
	}
	if s.FoodCount() != 2 {
		t.Errorf("Expected a fresh food pair, got %d food items", s.FoodCount())
	}
	if len(s.Items) != 3 {
		t.Errorf("Expected the speed boost to survive, got %v", s.Items)
	}
	if s.Items[0].Type != structs.SpeedBoost {
		t.Errorf("Expected retained items first, got %v", s.Items)
	}
}

func TestGoldFood(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Body[0] = structs.Position{X: 100, Y: 75}
	p.Heading = structs.Down
	p.Score = 2
	red := structs.Item{Position: pos(10, 10), Type: structs.RedFood}
	gold := structs.Item{Position: structs.Position{X: 100, Y: 100}, Type: structs.GoldFood}
	s.Items = []structs.Item{red, gold}

	s.Update()

	if p.Score != 5 {
		t.Errorf("Expected score 5, got %d", p.Score)
	}
	if p.GlowTimer != GlowTicks {
		t.Errorf("Expected glow timer %d, got %d", GlowTicks, p.GlowTimer)
	}
	if len(p.Body) != 2 {
		t.Errorf("Expected body length 2, got %d", len(p.Body))
	}
	if sound.last() != EventItemEaten {
		t.Errorf("Expected %q, got %v", EventItemEaten, sound.events)
	}
	if len(s.Items) != 2 {
		t.Fatalf("Expected exactly two new food items, got %v", s.Items)
	}
	if s.Items[0].Type != structs.RedFood || s.Items[1].Type != structs.GoldFood {
		t.Errorf("Expected a red/gold pair, got %v", s.Items)
	}
}

func TestOnlyFirstItemConsumed(t *testing.T) {
	s, _, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Heading = structs.Right
	s.Items = []structs.Item{
		{Position: pos(6, 5), Type: structs.SpeedBoost},
		{Position: pos(6, 5), Type: structs.Slowdown},
	}

	s.Update()

	if !s.Effects.SpeedBoostActive() || s.Effects.SlowdownActive() {
		t.Errorf("Expected only the boost to apply, got %+v", s.Effects)
	}
	if len(s.Items) != 1 || s.Items[0].Type != structs.Slowdown {
		t.Errorf("Expected the slowdown to stay, got %v", s.Items)
	}
}

func TestPoisonEndsGame(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Heading = structs.Left
	p.Score = 7
	s.Items = []structs.Item{{Position: pos(4, 5), Type: structs.Poison}}

	s.Update()

	if !s.GameOver {
		t.Fatal("Expected poison to end the game")
	}
	if p.Score != 7 {
		t.Errorf("Expected score unchanged, got %d", p.Score)
	}
	if sound.last() != EventGameOver {
		t.Errorf("Expected %q, got %v", EventGameOver, sound.events)
	}
}

func TestSpeedBoostAndSlowdownTimers(t *testing.T) {
	s, _, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Heading = structs.Right
	s.Items = []structs.Item{
		{Position: pos(6, 5), Type: structs.SpeedBoost},
		{Position: pos(7, 5), Type: structs.Slowdown},
	}

	s.Update()
	if s.Effects.SpeedBoostTimer != SpeedBoostTicks {
		t.Fatalf("Expected boost timer %d, got %d", SpeedBoostTicks, s.Effects.SpeedBoostTimer)
	}
	if got := DelayMS(s.Difficulty, s.Effects, p.Score); got != 90 {
		t.Errorf("Expected boosted delay 90, got %d", got)
	}

	s.Update()
	if s.Effects.SpeedBoostTimer != SpeedBoostTicks-1 {
		t.Errorf("Expected boost timer %d, got %d", SpeedBoostTicks-1, s.Effects.SpeedBoostTimer)
	}
	if s.Effects.SlowdownTimer != SlowdownTicks {
		t.Errorf("Expected slowdown timer %d, got %d", SlowdownTicks, s.Effects.SlowdownTimer)
	}
	if len(s.Items) != 0 {
		t.Errorf("Expected both singletons consumed, got %v", s.Items)
	}
	if got := DelayMS(s.Difficulty, s.Effects, p.Score); got != 126 {
		t.Errorf("Expected combined delay 126, got %d", got)
	}
}

func TestEffectExpires(t *testing.T) {
	s, _, _ := newTestSession(Singleplayer, Medium)
	s.Effects.SpeedBoostTimer = 1
	s.Players[0].GlowTimer = 1

	s.Update()

	if s.Effects.SpeedBoostActive() {
		t.Error("Expected boost to stop the tick its timer reaches zero")
	}
	if s.Players[0].Glowing() {
		t.Error("Expected glow to stop the tick its timer reaches zero")
	}
	if got := s.Delay().Milliseconds(); got != 100 {
		t.Errorf("Expected base delay 100, got %d", got)
	}
}

func TestPausedUpdateIsNoop(t *testing.T) {
	s, _, _ := newTestSession(Singleplayer, Easy)
	s.Players[0].Heading = structs.Right
	s.Effects.SlowdownTimer = 5
	s.Paused = true

	s.Update()

	if s.Players[0].Head() != pos(5, 5) {
		t.Errorf("Expected head unchanged while paused, got %v", s.Players[0].Head())
	}
	if s.Effects.SlowdownTimer != 5 {
		t.Errorf("Expected timer unchanged while paused, got %d", s.Effects.SlowdownTimer)
	}
}

func TestGameOverLatches(t *testing.T) {
	s, sound, _ := newTestSession(Singleplayer, Easy)
	p := s.Players[0]
	p.Body[0] = pos(24, 0)
	p.Heading = structs.Right

	s.Update()
	head := p.Head()
	events := len(sound.events)
	for i := 0; i < 3; i++ {
		s.Update()
	}

	if p.Head() != head {
		t.Errorf("Expected no movement after game over, got %v", p.Head())
	}
	if len(sound.events) != events {
		t.Errorf("Expected no further events, got %v", sound.events)
	}
}

func TestBodyLengthNeverShrinks(t *testing.T) {
	s, _, _ := newTestSession(Multiplayer, Hard)
	s.SpawnFoodPair()
	rng := rand.New(rand.NewSource(7))
	headings := []structs.Heading{structs.Up, structs.Down, structs.Left, structs.Right}
	lengths := []int{1, 1}

	for tick := 0; tick < 500 && !s.GameOver; tick++ {
		for _, p := range s.Players {
			p.Turn(headings[rng.Intn(len(headings))])
		}
		s.Update()
		for i, p := range s.Players {
			if len(p.Body) < lengths[i] {
				t.Fatalf("tick %d: player %d shrank from %d to %d", tick, p.Number, lengths[i], len(p.Body))
			}
			lengths[i] = len(p.Body)
		}
		if n := s.FoodCount(); n != 2 {
			t.Fatalf("tick %d: expected food pair, got %d food items", tick, n)
		}
	}
}

func TestTurnRejectsReverse(t *testing.T) {
	tests := []struct {
		current, turn, want structs.Heading
	}{
		{structs.Right, structs.Left, structs.Right},
		{structs.Left, structs.Right, structs.Left},
		{structs.Up, structs.Down, structs.Up},
		{structs.Down, structs.Up, structs.Down},
		{structs.Right, structs.Up, structs.Up},
		{structs.Still, structs.Left, structs.Left},
	}
	for _, tt := range tests {
		p := NewPlayer(1, pos(1, 1))
		p.Heading = tt.current
		p.Turn(tt.turn)
		if p.Heading != tt.want {
			t.Errorf("heading %v + turn %v: expected %v, got %v", tt.current, tt.turn, tt.want, p.Heading)
		}
	}
}

func TestMultiplayerMovesBothSnakes(t *testing.T) {
	s, _, _ := newTestSession(Multiplayer, Easy)
	s.Players[0].Heading = structs.Right
	s.Players[1].Heading = structs.Up

	s.Update()

	if s.Players[0].Head() != pos(6, 5) {
		t.Errorf("Expected player 1 at %v, got %v", pos(6, 5), s.Players[0].Head())
	}
	if s.Players[1].Head() != pos(15, 14) {
		t.Errorf("Expected player 2 at %v, got %v", pos(15, 14), s.Players[1].Head())
	}
}

func TestSecondPlayerStillMovesWhenFirstCrashes(t *testing.T) {
	s, sound, _ := newTestSession(Multiplayer, Easy)
	s.Players[0].Body[0] = structs.Position{X: 600, Y: 125}
	s.Players[0].Heading = structs.Right
	s.Players[1].Heading = structs.Left
	s.Items = []structs.Item{
		{Position: structs.Position{X: 350, Y: 375}, Type: structs.RedFood},
		{Position: pos(0, 0), Type: structs.GoldFood},
	}

	s.Update()

	if !s.GameOver {
		t.Fatal("Expected player 1 to end the round")
	}
	p2 := s.Players[1]
	if p2.Head() != (structs.Position{X: 350, Y: 375}) {
		t.Errorf("Expected player 2 head (350,375), got %v", p2.Head())
	}
	if p2.Score != 1 || len(p2.Body) != 2 {
		t.Errorf("Expected player 2 to eat the red food, got score %d length %d", p2.Score, len(p2.Body))
	}
	want := []string{EventWallCollision, EventItemEaten}
	if len(sound.events) != len(want) || sound.events[0] != want[0] || sound.events[1] != want[1] {
		t.Errorf("Expected events %v, got %v", want, sound.events)
	}
	if s.FoodCount() != 2 {
		t.Errorf("Expected a fresh food pair, got %d food items", s.FoodCount())
	}

	s.Update()
	if p2.Head() != (structs.Position{X: 350, Y: 375}) {
		t.Errorf("Expected no movement after the round ended, got %v", p2.Head())
	}
}

func TestGlowIsPerPlayer(t *testing.T) {
	s, _, _ := newTestSession(Multiplayer, Easy)
	s.Players[1].Heading = structs.Left
	s.Items = []structs.Item{
		{Position: pos(14, 15), Type: structs.GoldFood},
		{Position: pos(0, 0), Type: structs.RedFood},
	}

	s.Update()

	if s.Players[0].Glowing() {
		t.Error("Player 1 must not glow")
	}
	if s.Players[1].GlowTimer != GlowTicks || s.Players[1].Score != 3 {
		t.Errorf("Expected player 2 glowing with 3 points, got glow %d score %d", s.Players[1].GlowTimer, s.Players[1].Score)
	}
	if s.MaxScore() != 3 {
		t.Errorf("Expected max score 3, got %d", s.MaxScore())
	}
}
