package engine

import (
	"math"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
)

// Scheduler keys.
const (
	keyDecorative    = "spawn-decorative"
	keyStartSpawning = "start-spawning"
	keySpawnEnemy    = "spawn-enemy"
	keyTransition    = "scene-transition"
)

// spawn registers ent and announces it.
func (e *Engine) spawn(ent *Entity) *Entity {
	e.nextID++
	ent.ID = e.nextID
	e.entities = append(e.entities, ent)
	e.emit(Event{Kind: EventSpawn, ID: ent.ID, Category: ent.Category, Pos: ent.Pos})
	return ent
}

// remove marks ent for removal at the end of the tick. Removing an entity
// twice is a no-op.
func (e *Engine) remove(ent *Entity) {
	if ent == nil || ent.Removed {
		return
	}
	ent.Removed = true
	ent.Plan = nil
	ent.Body = nil
	e.emit(Event{Kind: EventRemove, ID: ent.ID, Category: ent.Category, Pos: ent.Pos})
}

// laneX draws a column that keeps an entity of width w fully on screen.
func (e *Engine) laneX(w float64) float64 {
	return e.rng.Uniform(w/2, e.cfg.World.Width-w/2)
}

// spawnDecorative launches one looping enemy for the title screen. It stops
// its own schedule once the game has started.
func (e *Engine) spawnDecorative() {
	if e.phase != PhaseBeforeGame {
		e.sched.Cancel(keyDecorative)
		return
	}

	ec := e.cfg.Enemies
	h := e.cfg.World.Height
	start := core.V(e.laneX(ec.Width), h+ec.Height/2)
	end := core.V(e.laneX(ec.Width), -h*ec.ExitDepth)
	stopY := e.rng.Uniform(ec.StopMargin, h-ec.StopMargin)
	stop := core.V(StopColumn(start, end, stopY), stopY)

	plan := LoopingPlan(start, end, stop, ec.LoopRadius, ec.LoopLegDuration)
	plan.Append(Step{Kind: StepRemove})

	e.spawn(&Entity{
		Category:   CategoryEnemy,
		Pos:        start,
		Size:       core.V(ec.Width, ec.Height),
		Rotation:   core.Bearing(start, end),
		Plan:       plan,
		Decorative: true,
	})
}

// spawnEnemy launches one scored enemy. Its travel time comes from the
// difficulty table; some enemies stop near the top to fire once. An enemy
// that reaches the exit costs the player a life.
func (e *Engine) spawnEnemy() {
	if e.phase != PhaseInGame {
		return
	}

	ec := e.cfg.Enemies
	h := e.cfg.World.Height
	start := core.V(e.laneX(ec.Width), h+ec.Height/2)
	end := core.V(e.laneX(ec.Width), -h*ec.ExitDepth)
	shootY := e.rng.Uniform(h-ec.ShootBand, h)
	duration := config.DifficultyFactor(e.score)

	var shoot *ShootPoint
	if e.rng.Chance(ec.ShootChance) {
		shoot = &ShootPoint{
			At:    core.V(StopColumn(start, end, shootY), shootY),
			Pause: ec.ShootPause,
		}
	}

	plan := StraightPlan(start, end, duration, shoot)
	plan.Append(Step{Kind: StepRemove}, Step{Kind: StepBreach})

	e.spawn(&Entity{
		Category: CategoryEnemy,
		Pos:      start,
		Size:     core.V(ec.Width, ec.Height),
		Rotation: core.Bearing(start, end),
		Plan:     plan,
		Body:     newBody(CategoryEnemy),
	})
}

// fireBullet shoots one player bullet straight up from the player.
func (e *Engine) fireBullet() {
	if e.phase != PhaseInGame || e.player.Hidden {
		return
	}

	bc := e.cfg.Bullets
	from := e.player.Pos
	to := core.V(from.X, e.cfg.World.Height*bc.PlayerReach)
	e.spawn(&Entity{
		Category: CategoryBullet,
		Pos:      from,
		Size:     core.V(bc.Width, bc.Height),
		Rotation: math.Pi / 2,
		Plan:     NewPlan(MoveTo(to, bc.PlayerDuration), Step{Kind: StepRemove}),
		Body:     newBody(CategoryBullet),
	})
	e.emit(Event{Kind: EventSound, Sound: SoundShoot})
}

// bulletFromEnemy fires one enemy bullet straight down from pos.
func (e *Engine) bulletFromEnemy(pos core.Vec) {
	if e.phase != PhaseInGame {
		return
	}

	bc := e.cfg.Bullets
	to := core.V(pos.X, -e.cfg.World.Height*e.cfg.Enemies.ExitDepth)
	e.spawn(&Entity{
		Category: CategoryEnemyBullet,
		Pos:      pos,
		Size:     core.V(bc.Width, bc.Height),
		Rotation: -math.Pi / 2,
		Plan:     NewPlan(MoveTo(to, bc.EnemyDuration), Step{Kind: StepRemove}),
		Body:     newBody(CategoryEnemyBullet),
	})
}

// emitHeart may drop an extra life at pos, drifting downward within
// MaxAngle degrees of straight down.
func (e *Engine) emitHeart(pos core.Vec) {
	hc := e.cfg.Hearts
	if !e.rng.Chance(hc.DropChance) {
		return
	}

	theta := core.ToRadians(e.rng.Uniform(-hc.MaxAngle, hc.MaxAngle))
	e.spawn(&Entity{
		Category: CategoryHeart,
		Pos:      pos,
		Size:     core.V(hc.Width, hc.Height),
		Dir:      core.V(math.Sin(theta), -math.Cos(theta)),
		Body:     newBody(CategoryHeart),
	})
}
