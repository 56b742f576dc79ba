package snake

import "time"

// Difficulty is the base tick interval in milliseconds.
type Difficulty int

const (
	Easy   Difficulty = 150
	Medium Difficulty = 100
	Hard   Difficulty = 50
)

// MinDelay is the shortest interval between two ticks, in milliseconds.
const MinDelay = 50

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return ""
	}
}

// DelayMS computes the wait before the next tick. Boost shortens the base
// interval to 60%, slowdown stretches it to 140%; both apply when both are
// active. Every point of the leading score takes another 2ms off.
func DelayMS(d Difficulty, e Effects, scores ...int) int {
	base := int(d)
	// 整数运算，等于 floor(base*0.6) 和 floor(base*1.4)；
	// 浮点计算在 90*1.4 时会得到 125.999...
	if e.SpeedBoostActive() {
		base = base * 6 / 10
	}
	if e.SlowdownActive() {
		base = base * 14 / 10
	}
	best := 0
	for _, s := range scores {
		best = max(best, s)
	}
	return max(base-2*best, MinDelay)
}

// Delay is DelayMS as a time.Duration.
func Delay(d Difficulty, e Effects, scores ...int) time.Duration {
	return time.Duration(DelayMS(d, e, scores...)) * time.Millisecond
}
