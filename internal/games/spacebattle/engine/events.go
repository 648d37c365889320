package engine

import "github.com/vovakirdan/space-battle/internal/core"

// EventKind discriminates Event.
type EventKind int

const (
	EventSpawn           EventKind = iota // ID, Category, Pos
	EventRemove                           // ID, Category, Pos
	EventFlash                            // ID, Duration
	EventExplode                          // Pos
	EventSound                            // Sound
	EventHUDShow                          // Duration of the fade-in
	EventStartDismiss                     // Duration of the start control exit
	EventSceneTransition                  // Duration of the fade to the game-over scene
	EventPhaseChanged                     // Phase
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "Spawn"
	case EventRemove:
		return "Remove"
	case EventFlash:
		return "Flash"
	case EventExplode:
		return "Explode"
	case EventSound:
		return "Sound"
	case EventHUDShow:
		return "HUDShow"
	case EventStartDismiss:
		return "StartDismiss"
	case EventSceneTransition:
		return "SceneTransition"
	case EventPhaseChanged:
		return "PhaseChanged"
	default:
		return "Unknown"
	}
}

// Sound names a fire-and-forget sound cue.
type Sound string

const (
	SoundShoot     Sound = "shoot"
	SoundExplosion Sound = "explosion"
	SoundPickup    Sound = "pickup"
	SoundGameOver  Sound = "gameover"
)

// Event is a lifecycle notification for the presentation layer.
// Only the fields listed for its Kind are set.
type Event struct {
	Kind     EventKind
	ID       EntityID
	Category Category
	Pos      core.Vec
	Duration float64
	Sound    Sound
	Phase    Phase
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// Events returns and clears the events raised since the previous call.
func (e *Engine) Events() []Event {
	out := e.events
	e.events = nil
	return out
}
