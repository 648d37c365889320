package engine

import "github.com/vovakirdan/space-battle/internal/core"

// EntityID identifies an entity for the lifetime of an Engine. IDs are never reused.
type EntityID int

// Category is the collision and behaviour tag of an entity. Values are bit
// flags so they can be combined into contact masks.
type Category uint32

const (
	CategoryNone        Category = 0
	CategoryBullet      Category = 1 << 0
	CategoryPlayer      Category = 1 << 1
	CategoryEnemy       Category = 1 << 2
	CategoryEnemyBullet Category = 1 << 3
	CategoryHeart       Category = 1 << 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "None"
	case CategoryBullet:
		return "Bullet"
	case CategoryPlayer:
		return "Player"
	case CategoryEnemy:
		return "Enemy"
	case CategoryEnemyBullet:
		return "EnemyBullet"
	case CategoryHeart:
		return "Heart"
	default:
		return "Mixed"
	}
}

// contactMask returns the categories an entity of category c reports contacts with.
func contactMask(c Category) Category {
	switch c {
	case CategoryBullet:
		return CategoryEnemy
	case CategoryPlayer:
		return CategoryEnemy | CategoryEnemyBullet | CategoryHeart
	case CategoryEnemy:
		return CategoryBullet | CategoryPlayer
	case CategoryEnemyBullet, CategoryHeart:
		return CategoryPlayer
	default:
		return CategoryNone
	}
}

// Body registers an entity with the broad-phase.
type Body struct {
	Category    Category
	ContactMask Category
}

// newBody returns the body for an entity of category c.
func newBody(c Category) *Body {
	return &Body{Category: c, ContactMask: contactMask(c)}
}

// Entity is a single simulated object. Which optional fields are meaningful
// depends on Category:
//   - Enemy: Decorative marks pre-game spawns, which have no Body.
//   - Heart: Dir and Elapsed drive the bounce-and-expire update.
//   - Player, Enemy, Bullet, EnemyBullet: Plan drives motion.
type Entity struct {
	ID       EntityID
	Category Category
	Pos      core.Vec
	Rotation float64 // radians, counter-clockwise from +x
	Size     core.Vec

	Plan *Plan
	Body *Body

	Decorative bool

	Dir     core.Vec
	Elapsed float64

	Frozen  bool // motion stopped by game over
	Hidden  bool // no visual form; the player after its final hit
	Removed bool
}

// Bounds returns the entity's axis-aligned box.
func (e *Entity) Bounds() core.RectF {
	return core.CenteredRect(e.Pos, e.Size)
}
