package api

import (
	"context"
	"time"

	"github.com/hoshinonyaruko/snake-duel/snake"
	"github.com/hoshinonyaruko/snake-duel/structs"
)

// Runner owns the game on a single goroutine. Handlers never touch the game
// directly; they send commands and wait for the snapshot taken right after.
type Runner struct {
	game    *snake.Game
	cmds    chan command
	publish func(structs.Snapshot)
}

type command struct {
	fn    func(*snake.Game) error
	reply chan result
}

type result struct {
	snap structs.Snapshot
	err  error
}

// NewRunner wraps game. publish, if set, receives a snapshot after every tick.
func NewRunner(game *snake.Game, publish func(structs.Snapshot)) *Runner {
	return &Runner{
		game:    game,
		cmds:    make(chan command),
		publish: publish,
	}
}

// Run processes commands and ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	armed := false

	for {
		select {
		case <-ctx.Done():
			stopTimer(timer)
			return

		case cmd := <-r.cmds:
			err := cmd.fn(r.game)
			cmd.reply <- result{snap: r.game.Snapshot(), err: err}

		case <-timer.C:
			armed = false
			r.game.Tick()
			if r.publish != nil {
				r.publish(r.game.Snapshot())
			}
		}

		// 按当前状态重新安排下一次刷新，已经在计时的不重置
		switch running := r.game.Running(); {
		case running && !armed:
			timer.Reset(r.game.Delay())
			armed = true
		case !running && armed:
			stopTimer(timer)
			armed = false
		}
	}
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}

// Do runs fn on the game goroutine and returns the resulting snapshot.
func (r *Runner) Do(ctx context.Context, fn func(*snake.Game) error) (structs.Snapshot, error) {
	cmd := command{fn: fn, reply: make(chan result, 1)}
	select {
	case r.cmds <- cmd:
	case <-ctx.Done():
		return structs.Snapshot{}, ctx.Err()
	}
	select {
	case res := <-cmd.reply:
		return res.snap, res.err
	case <-ctx.Done():
		return structs.Snapshot{}, ctx.Err()
	}
}

// Snapshot reads the current state.
func (r *Runner) Snapshot(ctx context.Context) (structs.Snapshot, error) {
	return r.Do(ctx, func(*snake.Game) error { return nil })
}
