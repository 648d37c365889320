package engine

import "github.com/vovakirdan/space-battle/internal/core"

// StepKind selects what a plan step does.
type StepKind int

const (
	StepMove   StepKind = iota // travel in a straight line to Target over Duration
	StepWait                   // hold position for Duration
	StepFace                   // turn toward Target
	StepFire                   // fire one enemy bullet from the current position
	StepBreach                 // the entity got through: the player loses a life
	StepRemove                 // remove the entity
)

// Step is one element of a motion plan. Only Move and Wait consume time.
type Step struct {
	Kind     StepKind
	Target   core.Vec
	Duration float64
}

// MoveTo returns a timed straight-line move.
func MoveTo(target core.Vec, duration float64) Step {
	return Step{Kind: StepMove, Target: target, Duration: duration}
}

// Wait returns a pause.
func Wait(duration float64) Step {
	return Step{Kind: StepWait, Duration: duration}
}

// Face returns an instant turn toward target.
func Face(target core.Vec) Step {
	return Step{Kind: StepFace, Target: target}
}

// Plan is an ordered list of steps advanced by the simulation clock.
type Plan struct {
	Steps []Step

	index   int
	elapsed float64  // time spent in the current timed step
	from    core.Vec // position when the current move began
	started bool
}

// NewPlan creates a plan from steps.
func NewPlan(steps ...Step) *Plan {
	return &Plan{Steps: steps}
}

// Append adds steps to the end of the plan.
func (p *Plan) Append(steps ...Step) {
	p.Steps = append(p.Steps, steps...)
}

// Done reports whether every step has run.
func (p *Plan) Done() bool {
	return p.index >= len(p.Steps)
}

func (p *Plan) next() {
	p.index++
	p.elapsed = 0
	p.started = false
}

// advancePlan runs ent's plan for dt seconds. Time left over when a timed
// step finishes carries into the following steps, so many short moves can
// complete within one tick.
func (e *Engine) advancePlan(ent *Entity, dt float64) {
	p := ent.Plan
	for p != nil && !p.Done() && !ent.Frozen {
		st := p.Steps[p.index]
		switch st.Kind {
		case StepMove:
			if !p.started {
				p.from = ent.Pos
				p.started = true
			}
			remaining := st.Duration - p.elapsed
			if dt < remaining {
				p.elapsed += dt
				ent.Pos = core.Lerp(p.from, st.Target, p.elapsed/st.Duration)
				return
			}
			dt -= remaining
			ent.Pos = st.Target
			p.next()
		case StepWait:
			remaining := st.Duration - p.elapsed
			if dt < remaining {
				p.elapsed += dt
				return
			}
			dt -= remaining
			p.next()
		case StepFace:
			if ent.Pos != st.Target {
				ent.Rotation = core.Bearing(ent.Pos, st.Target)
			}
			p.next()
		case StepFire:
			p.next()
			e.bulletFromEnemy(ent.Pos)
		case StepBreach:
			p.next()
			e.breach()
		case StepRemove:
			p.next()
			e.remove(ent)
		default:
			p.next()
		}
	}
}
