package engine

// frameUpdate advances the free-running parts of the world: the background
// layers and the hearts. It only runs while in game. The first in-game
// frame anchors the clock and moves nothing.
func (e *Engine) frameUpdate(now float64) {
	if e.phase != PhaseInGame {
		return
	}

	dt := 0.0
	if e.frameAnchored {
		dt = now - e.lastFrame
	}
	e.frameAnchored = true
	e.lastFrame = now

	e.scrollBackground(dt)
	for _, ent := range e.entities {
		if ent.Category == CategoryHeart && !ent.Removed {
			e.updateHeart(ent, dt)
		}
	}
}

// scrollBackground moves both layers down and wraps a layer back above the
// other once it has left the screen.
func (e *Engine) scrollBackground(dt float64) {
	h := e.cfg.World.Height
	moved := e.cfg.Background.ScrollSpeed * dt
	for i := range e.background {
		e.background[i] -= moved
		if e.background[i] < -h/2 {
			e.background[i] += 2 * h
		}
	}
}

// updateHeart ages a heart and bounces it around the play area. Movement is
// a fixed distance per frame. A heart is removed once its lifetime is up.
func (e *Engine) updateHeart(h *Entity, dt float64) {
	hc := e.cfg.Hearts
	h.Elapsed += dt
	if h.Elapsed >= hc.Lifetime {
		e.remove(h)
		return
	}

	h.Pos = h.Pos.Add(h.Dir.Scale(hc.Speed))

	// Reflect only while heading into a wall so a heart inside the margin
	// does not flip back and forth every frame.
	inner := e.bounds.Inset(h.Size.X/2, h.Size.Y/2)
	if (h.Pos.X <= inner.MinX() && h.Dir.X < 0) || (h.Pos.X >= inner.MaxX() && h.Dir.X > 0) {
		h.Dir.X = -h.Dir.X
	}
	if (h.Pos.Y <= inner.MinY() && h.Dir.Y < 0) || (h.Pos.Y >= inner.MaxY() && h.Dir.Y > 0) {
		h.Dir.Y = -h.Dir.Y
	}

	h.Pos = e.bounds.ClampPoint(h.Pos)
}
