package snake

// 状态效果持续的帧数
const (
	SpeedBoostTicks = 100
	SlowdownTicks   = 100
	GlowTicks       = 30
)

// Effects holds the session-wide speed modifiers. An effect is active while
// its timer is positive.
type Effects struct {
	SpeedBoostTimer int
	SlowdownTimer   int
}

func (e Effects) SpeedBoostActive() bool {
	return e.SpeedBoostTimer > 0
}

func (e Effects) SlowdownActive() bool {
	return e.SlowdownTimer > 0
}

// Advance counts every running timer down by one tick.
func (e *Effects) Advance() {
	countdown(&e.SpeedBoostTimer)
	countdown(&e.SlowdownTimer)
}

func countdown(timer *int) {
	if *timer > 0 {
		*timer--
	}
}
