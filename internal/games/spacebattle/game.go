// Package spacebattle adapts the Space Battle engine to the arcade Game
// interface. It maps screen cells to world units, turns engine events into
// short-lived visual effects and sound cues, and draws the world into a
// character screen.
package spacebattle

import (
	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
	"github.com/vovakirdan/space-battle/internal/games/spacebattle/engine"
	"github.com/vovakirdan/space-battle/internal/registry"
)

// explosionDuration is how long an explosion glyph stays on screen, in seconds.
const explosionDuration = 0.2

// configPath is an optional YAML file; empty means the default search order.
var configPath string

// SetConfigPath sets a custom config file path for Space Battle.
// Must be called before Reset.
func SetConfigPath(path string) {
	configPath = path
}

type explosion struct {
	pos   core.Vec
	until float64
}

// Game implements registry.Game on top of engine.Engine.
type Game struct {
	cfg       config.SpaceBattleConfig
	runtime   core.RuntimeConfig
	eng       *engine.Engine
	view      viewport
	paused    bool
	tickCount int

	explosions []explosion
	flashUntil float64

	hudShown bool
	hudAt    float64
	hudFade  float64

	startDismissed bool
	startAt        float64
	startExit      float64

	transition bool
	sceneAt    float64 // game over scene is fully shown from here
}

// New creates a new Space Battle game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "spacebattle"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Battle"
}

// Reset starts a new session on the title screen. A config that fails to
// load is replaced by the defaults; callers that care check
// config.LoadSpaceBattle themselves first.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gc, err := config.LoadSpaceBattle(configPath)
	if err != nil {
		gc = config.DefaultSpaceBattleConfig()
	}
	g.ResetWith(cfg, gc)
}

// ResetWith starts a new session with an explicit game config, bypassing
// the config search.
func (g *Game) ResetWith(cfg core.RuntimeConfig, gc config.SpaceBattleConfig) {
	*g = Game{
		cfg:     gc,
		runtime: cfg,
		eng:     engine.New(gc, cfg.Seed),
		view:    newViewport(gc.World.Width, gc.World.Height, cfg.ScreenW, cfg.ScreenH),
	}
	g.eng.Tick(0)
	g.absorb(g.eng.Events())
}

// Step applies one frame of input and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.eng.Phase() != engine.PhaseAfterGame {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.applyInput(in)
	g.eng.Advance(g.runtime.TickSeconds())

	sounds := g.absorb(g.eng.Events())
	return core.StepResult{State: g.State(), Sounds: sounds}
}

// applyInput turns keys, taps and drags into engine taps and drags.
func (g *Game) applyInput(in core.InputFrame) {
	phase := g.eng.Phase()
	pressed := false
	switch phase {
	case engine.PhaseBeforeGame:
		if in.Has(core.ActionFire) || in.Has(core.ActionConfirm) {
			g.eng.Tap(g.eng.StartControl().Center())
			pressed = true
		}
	case engine.PhaseInGame:
		if in.Has(core.ActionFire) {
			g.eng.Tap(g.eng.Player().Pos)
			pressed = true
		}
	}

	// A key press and a click in the same frame are one press. Taps only
	// act in the phase the frame started in.
	if !pressed {
		for _, t := range in.Taps {
			g.eng.Tap(g.view.toWorld(t.X, t.Y))
			if g.eng.Phase() != phase {
				break
			}
		}
	}
	if in.DragX != 0 || in.DragY != 0 {
		g.eng.Drag(g.view.dragToWorld(in.DragX, in.DragY))
	}
}

// absorb records the visual effects of events and returns their sound cues.
func (g *Game) absorb(events []engine.Event) []string {
	now := g.eng.Now()
	var sounds []string

	for _, ev := range events {
		switch ev.Kind {
		case engine.EventExplode:
			g.explosions = append(g.explosions, explosion{pos: ev.Pos, until: now + explosionDuration})
		case engine.EventFlash:
			g.flashUntil = now + ev.Duration
		case engine.EventSound:
			sounds = append(sounds, string(ev.Sound))
		case engine.EventHUDShow:
			g.hudShown, g.hudAt, g.hudFade = true, now, ev.Duration
		case engine.EventStartDismiss:
			g.startDismissed, g.startAt, g.startExit = true, now, ev.Duration
		case engine.EventSceneTransition:
			g.transition, g.sceneAt = true, now+ev.Duration
		}
	}

	kept := g.explosions[:0]
	for _, x := range g.explosions {
		if x.until > now {
			kept = append(kept, x)
		}
	}
	g.explosions = kept

	return sounds
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		Lives:    g.eng.Lives(),
		Phase:    g.eng.Phase().String(),
		GameOver: g.eng.Phase() == engine.PhaseAfterGame,
		Paused:   g.paused,
	}
}

// Config returns the game config of the current session.
func (g *Game) Config() config.SpaceBattleConfig {
	return g.cfg
}

// ConfigYAML encodes the game config of the current session, so a
// recording can be replayed under the same rules.
func (g *Game) ConfigYAML() ([]byte, error) {
	return g.cfg.YAML()
}

// Stats returns the engine counters for the current session.
func (g *Game) Stats() engine.Stats {
	return g.eng.Stats()
}

// Ticks returns the number of simulated ticks since Reset.
func (g *Game) Ticks() int {
	return g.tickCount
}

// SceneShown reports whether the game over scene has fully faded in.
func (g *Game) SceneShown() bool {
	return g.transition && g.eng.Now() >= g.sceneAt
}

func init() {
	registry.Register("spacebattle", func() registry.Game {
		return New()
	})
}
