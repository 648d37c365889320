package spacebattle

import (
	"math"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle/engine"
)

// Script supplies the input for a tick. It may inspect the game.
type Script func(tick int, g *Game) core.InputFrame

// Simulate plays a fresh session headless for up to ticks ticks, stopping
// early once the game over scene is shown.
func Simulate(rt core.RuntimeConfig, ticks int, script Script) *Game {
	g := New()
	g.Reset(rt)
	return run(g, ticks, script)
}

// SimulateWith is Simulate under an explicit game config instead of the
// one found by the config search.
func SimulateWith(gc config.SpaceBattleConfig, rt core.RuntimeConfig, ticks int, script Script) *Game {
	g := New()
	g.ResetWith(rt, gc)
	return run(g, ticks, script)
}

func run(g *Game, ticks int, script Script) *Game {
	for tick := 0; tick < ticks && !g.SceneShown(); tick++ {
		in := core.NewInputFrame()
		if script != nil {
			in = script(tick, g)
		}
		g.Step(in)
	}
	return g
}

// Playback returns a script that feeds recorded frames at their ticks.
func Playback(frames map[int]core.InputFrame) Script {
	return func(tick int, _ *Game) core.InputFrame {
		if f, ok := frames[tick]; ok {
			return f
		}
		return core.NewInputFrame()
	}
}

// Autopilot is a simple player: it starts the game, steers under the lowest
// enemy and fires every few ticks.
func Autopilot(tick int, g *Game) core.InputFrame {
	in := core.NewInputFrame()

	switch g.eng.Phase() {
	case engine.PhaseBeforeGame:
		in.Set(core.ActionFire)
		return in
	case engine.PhaseAfterGame:
		return in
	}

	if tick%8 == 0 {
		in.Set(core.ActionFire)
	}

	player := g.eng.Player()
	target, found := 0.0, false
	lowest := math.Inf(1)
	for _, ent := range g.eng.Entities() {
		if ent.Category != engine.CategoryEnemy || ent.Frozen {
			continue
		}
		if ent.Pos.Y > player.Pos.Y && ent.Pos.Y < lowest {
			lowest, target, found = ent.Pos.Y, ent.Pos.X, true
		}
	}
	if !found {
		return in
	}

	cell := g.cfg.World.Width / float64(g.view.screenW)
	switch dx := target - player.Pos.X; {
	case dx > cell:
		in.AddDrag(1, 0)
	case dx < -cell:
		in.AddDrag(-1, 0)
	}
	return in
}
