package engine

import (
	"testing"

	"github.com/vovakirdan/space-battle/internal/config"
	"github.com/vovakirdan/space-battle/internal/core"
)

// quietConfig keeps in-game enemies from spawning on their own so tests
// control every entity.
func quietConfig() config.SpaceBattleConfig {
	cfg := config.DefaultSpaceBattleConfig()
	cfg.Enemies.SpawnInterval = 1e6
	return cfg
}

// startedEngine returns an engine that is in game with the player's
// entrance finished and the event queue drained. The clock reads 0.5.
func startedEngine(t *testing.T, cfg config.SpaceBattleConfig) *Engine {
	t.Helper()
	e := New(cfg, 1)
	e.Tick(0)
	if !e.Start() {
		t.Fatal("Start() returned false on a fresh engine")
	}
	e.Tick(0.5)
	e.Events()
	return e
}

// place adds a stationary entity of category c at pos.
func place(e *Engine, c Category, pos core.Vec) *Entity {
	var size core.Vec
	switch c {
	case CategoryEnemy:
		size = core.V(e.cfg.Enemies.Width, e.cfg.Enemies.Height)
	case CategoryBullet, CategoryEnemyBullet:
		size = core.V(e.cfg.Bullets.Width, e.cfg.Bullets.Height)
	case CategoryHeart:
		size = core.V(e.cfg.Hearts.Width, e.cfg.Hearts.Height)
	}
	return e.spawn(&Entity{Category: c, Pos: pos, Size: size, Body: newBody(c)})
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func hasSound(events []Event, s Sound) bool {
	for _, ev := range events {
		if ev.Kind == EventSound && ev.Sound == s {
			return true
		}
	}
	return false
}

// Duration returns the total time of the timed steps.
func (p *Plan) Duration() float64 {
	total := 0.0
	for _, s := range p.Steps {
		if s.Kind == StepMove || s.Kind == StepWait {
			total += s.Duration
		}
	}
	return total
}

// Pending reports whether a timer is registered under key.
func (s *Scheduler) Pending(key string) bool {
	for _, t := range s.timers {
		if t.key == key {
			return true
		}
	}
	return false
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}
