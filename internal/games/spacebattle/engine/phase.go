package engine

// Phase is the top-level state of a simulation.
type Phase int

const (
	PhaseBeforeGame Phase = iota // title screen, decorative enemies loop past
	PhaseInGame                  // scored play
	PhaseAfterGame               // terminal; a new Engine is needed to play again
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBeforeGame:
		return "BeforeGame"
	case PhaseInGame:
		return "InGame"
	case PhaseAfterGame:
		return "AfterGame"
	default:
		return "Unknown"
	}
}
