// Package engine is the Space Battle simulation: game phases, enemy waves and
// their trajectories, collisions, lives and score. It has no notion of
// terminals or sound; it reports what happened through Events and exposes
// entity positions in world units for a presentation layer to draw.
//
// An Engine is not safe for concurrent use. All methods must be called from
// the goroutine that calls Tick.
package engine

import (
	"math"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
)

// Stats summarises a run.
type Stats struct {
	Ticks      int // ticks spent in game
	Kills      int
	Breaches   int
	Hearts     int
	LivesLost  int
	GameOvers  int
	FinalPhase Phase
}

// Engine owns one play session from the title screen to game over.
type Engine struct {
	cfg    config.SpaceBattleConfig
	rng    *core.RNG
	sched  *Scheduler
	broad  *broadPhase
	bounds core.RectF

	phase  Phase
	score  int
	lives  int
	player *Entity

	entities []*Entity
	nextID   EntityID
	events   []Event

	now       float64 // simulation clock, seconds since the first Tick
	origin    float64 // caller's time of the first Tick
	hasTicked bool

	frameAnchored bool
	lastFrame     float64
	background    [2]float64

	stats Stats
}

// New creates an engine in the BeforeGame phase with score 0 and full lives.
// Every random decision is drawn from seed.
func New(cfg config.SpaceBattleConfig, seed int64) *Engine {
	w, h := cfg.World.Width, cfg.World.Height
	e := &Engine{
		cfg:        cfg,
		rng:        core.NewRNG(seed),
		sched:      NewScheduler(),
		broad:      newBroadPhase(),
		bounds:     core.RectF{X: 0, Y: 0, W: w, H: h},
		phase:      PhaseBeforeGame,
		lives:      cfg.Gameplay.Lives,
		background: [2]float64{h / 2, h * 1.5},
	}

	pc := cfg.Player
	e.player = e.spawn(&Entity{
		Category: CategoryPlayer,
		Pos:      core.V(w/2, h*pc.StartY),
		Size:     core.V(pc.Width, pc.Height),
		Rotation: math.Pi / 2,
		Body:     newBody(CategoryPlayer),
	})

	e.sched.Every(keyDecorative, 0, cfg.Enemies.DecorativeInterval, e.spawnDecorative)
	return e
}

// Tick advances the simulation to now, in seconds on the caller's clock.
// The first call anchors the clock: simulation time is measured from it.
// A time earlier than the previous one is treated as no time passing.
func (e *Engine) Tick(now float64) {
	if !e.hasTicked {
		e.hasTicked = true
		e.origin = now
	}
	t := now - e.origin
	if t < e.now {
		t = e.now
	}
	dt := t - e.now
	e.now = t
	e.advance(dt)
}

// Advance moves the simulation forward by dt seconds.
func (e *Engine) Advance(dt float64) {
	if !e.hasTicked {
		e.Tick(0)
	}
	e.Tick(e.origin + e.now + dt)
}

func (e *Engine) advance(dt float64) {
	if e.phase == PhaseInGame {
		e.stats.Ticks++
	}

	e.sched.Advance(e.now)

	// Entities spawned by a plan step start moving on the next tick.
	n := len(e.entities)
	for i := 0; i < n; i++ {
		ent := e.entities[i]
		if !ent.Removed && !ent.Frozen && ent.Plan != nil {
			e.advancePlan(ent, dt)
		}
	}

	e.frameUpdate(e.now)

	if e.phase == PhaseInGame {
		for _, c := range e.broad.detect(e.entities) {
			if e.phase != PhaseInGame {
				break
			}
			e.resolve(c.A, c.B)
		}
	}

	e.purge()
}

// purge drops removed entities, keeping creation order.
func (e *Engine) purge() {
	kept := e.entities[:0]
	for _, ent := range e.entities {
		if !ent.Removed {
			kept = append(kept, ent)
		}
	}
	for i := len(kept); i < len(e.entities); i++ {
		e.entities[i] = nil
	}
	e.entities = kept
}

// Start leaves the title screen. It returns false outside BeforeGame.
func (e *Engine) Start() bool {
	if e.phase != PhaseBeforeGame {
		return false
	}

	e.sched.Cancel(keyDecorative)
	for _, ent := range e.entities {
		if ent.Decorative {
			e.remove(ent)
		}
	}

	e.setPhase(PhaseInGame)

	gc := e.cfg.Gameplay
	e.sched.After(keyStartSpawning, gc.StartDelay, func() {
		e.sched.Every(keySpawnEnemy, e.cfg.Enemies.SpawnInterval, e.cfg.Enemies.SpawnInterval, e.spawnEnemy)
	})

	pc := e.cfg.Player
	entrance := core.V(e.player.Pos.X, e.cfg.World.Height*pc.EntranceY)
	e.player.Plan = NewPlan(MoveTo(entrance, pc.EntranceDuration))

	e.emit(Event{Kind: EventHUDShow, Duration: gc.HUDFade})
	e.emit(Event{Kind: EventStartDismiss, Duration: pc.EntranceDuration})
	return true
}

// Tap handles a press at p in world units. In game it fires; on the title
// screen a press on the start control starts the game.
func (e *Engine) Tap(p core.Vec) {
	switch e.phase {
	case PhaseInGame:
		e.fireBullet()
	case PhaseBeforeGame:
		if e.StartControl().Contains(p) {
			e.Start()
		}
	}
}

// Drag moves the player by d, keeping the whole ship on screen.
func (e *Engine) Drag(d core.Vec) {
	if e.phase != PhaseInGame || e.player.Hidden {
		return
	}
	e.player.Pos = e.playerArea().ClampPoint(e.player.Pos.Add(d))
}

// playerArea is the region the player's centre may occupy.
func (e *Engine) playerArea() core.RectF {
	return e.bounds.Inset(e.player.Size.X/2, e.player.Size.Y/2)
}

// StartControl returns the area of the start control.
func (e *Engine) StartControl() core.RectF {
	w, h := e.cfg.World.Width, e.cfg.World.Height
	return core.CenteredRect(core.V(w/2, h/2), core.V(w*0.6, 60))
}

func (e *Engine) setPhase(p Phase) {
	e.phase = p
	e.emit(Event{Kind: EventPhaseChanged, Phase: p})
}

// breach is the penalty for an enemy that reached the exit.
func (e *Engine) breach() {
	if e.phase != PhaseInGame {
		return
	}
	e.stats.Breaches++
	e.loseLife()
}

func (e *Engine) gainLife() {
	e.lives++
	e.stats.Hearts++
}

// loseLife takes one life and starts the game over sequence when none are left.
func (e *Engine) loseLife() {
	if e.phase != PhaseInGame || e.lives <= 0 {
		return
	}
	e.lives--
	e.stats.LivesLost++
	if e.lives == 0 {
		e.gameOver()
	}
}

// gameOver stops all schedules, freezes everything in flight and hands
// over to the game over scene after a short delay.
func (e *Engine) gameOver() {
	e.setPhase(PhaseAfterGame)
	e.stats.GameOvers++
	e.sched.CancelAll()

	for _, ent := range e.entities {
		switch ent.Category {
		case CategoryBullet, CategoryEnemy, CategoryEnemyBullet:
			ent.Frozen = true
		}
	}
	e.emit(Event{Kind: EventSound, Sound: SoundGameOver})

	gc := e.cfg.Gameplay
	e.sched.After(keyTransition, gc.GameOverDelay, func() {
		e.emit(Event{Kind: EventSceneTransition, Duration: gc.TransitionFade})
	})
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the number of enemies shot down.
func (e *Engine) Score() int { return e.score }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// Now returns the simulation clock in seconds.
func (e *Engine) Now() float64 { return e.now }

// Bounds returns the play area.
func (e *Engine) Bounds() core.RectF { return e.bounds }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.SpaceBattleConfig { return e.cfg }

// Background returns the centre heights of the two background layers.
func (e *Engine) Background() [2]float64 { return e.background }

// Stats returns counters for the run so far.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.FinalPhase = e.phase
	return s
}

// Player returns a copy of the player entity.
func (e *Engine) Player() Entity {
	p := *e.player
	p.Plan = nil
	return p
}

// Entities returns copies of every live entity in creation order.
// The copies carry no motion plan.
func (e *Engine) Entities() []Entity {
	out := make([]Entity, 0, len(e.entities))
	for _, ent := range e.entities {
		if ent.Removed {
			continue
		}
		c := *ent
		c.Plan = nil
		out = append(out, c)
	}
	return out
}

// Count returns the number of live entities of category c.
func (e *Engine) Count(c Category) int {
	n := 0
	for _, ent := range e.entities {
		if !ent.Removed && ent.Category == c {
			n++
		}
	}
	return n
}
