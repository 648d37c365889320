package engine

import "github.com/vovakirdan/space-battle/internal/core"

// Canonicalize orders a contact pair by category value, lowest first. The
// player side of any valid pair (Bullet or Player) therefore comes first,
// whichever order the broad-phase reported.
func Canonicalize(a, b *Entity) (*Entity, *Entity) {
	if b.Category < a.Category {
		return b, a
	}
	return a, b
}

// resolve applies the outcome of a contact between a and b.
// Pairs involving an entity that is already gone are ignored.
func (e *Engine) resolve(a, b *Entity) {
	if a == nil || b == nil || a.Removed || b.Removed {
		return
	}
	first, second := Canonicalize(a, b)

	switch {
	case first.Category == CategoryHeart || second.Category == CategoryHeart:
		heart := second
		if first.Category == CategoryHeart {
			heart = first
		}
		e.gainLife()
		e.remove(heart)
		e.emit(Event{Kind: EventSound, Sound: SoundPickup})

	case second.Category != CategoryEnemyBullet:
		var enemy *Entity
		if first.Category == CategoryEnemy {
			enemy = first
		}
		if second.Category == CategoryEnemy {
			enemy = second
		}
		if enemy != nil {
			e.explode(enemy.Pos)
		}

		if first.Category != CategoryPlayer {
			// Bullet meets enemy
			e.remove(first)
			e.remove(second)
			e.score++
			e.stats.Kills++
			if enemy != nil {
				e.emitHeart(enemy.Pos)
			}
			return
		}
		e.hitPlayer(first)
		e.remove(second)

	default:
		// Player meets enemy fire
		e.hitPlayer(first)
		e.remove(second)
	}
}

// hitPlayer shows the damage and takes a life. The last life blows the ship up.
func (e *Engine) hitPlayer(player *Entity) {
	if e.lives > 1 {
		e.emit(Event{Kind: EventFlash, ID: player.ID, Duration: e.cfg.Gameplay.FlashDuration})
	} else {
		e.explode(player.Pos)
		player.Hidden = true
		player.Body = nil
		e.emit(Event{Kind: EventRemove, ID: player.ID, Category: player.Category, Pos: player.Pos})
	}
	e.loseLife()
}

func (e *Engine) explode(pos core.Vec) {
	e.emit(Event{Kind: EventExplode, Pos: pos})
	e.emit(Event{Kind: EventSound, Sound: SoundExplosion})
}
