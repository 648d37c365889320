package engine

import (
	"math"

	"github.com/vovakirdan/space-battle/internal/core"
)

// loopStepDuration is the time spent on each one-degree segment of a loop.
const loopStepDuration = 1.0 / 360.0

// ShootPoint splits a straight descent: the enemy stops At, fires and waits Pause.
type ShootPoint struct {
	At    core.Vec
	Pause float64
}

// StraightPlan builds the steps of a straight descent from start to end
// taking duration seconds in total. With a shoot point the time is shared
// between the two legs in proportion to their length, and the pause is
// added on top.
func StraightPlan(start, end core.Vec, duration float64, shoot *ShootPoint) *Plan {
	if shoot == nil {
		return NewPlan(Face(end), MoveTo(end, duration))
	}

	time1 := 0.0
	if total := core.Distance(start, end); total > 0 {
		time1 = core.Distance(start, shoot.At) * duration / total
	}
	time2 := duration - time1

	return NewPlan(
		Face(shoot.At),
		MoveTo(shoot.At, time1),
		Step{Kind: StepFire},
		Wait(shoot.Pause),
		Face(end),
		MoveTo(end, time2),
	)
}

// StopColumn returns the x at which the line start->end crosses row stopY.
// A horizontal line has no single crossing; start.X is returned.
func StopColumn(start, end core.Vec, stopY float64) float64 {
	if start.Y == end.Y {
		return start.X
	}
	return (start.Y-stopY)*(end.X-start.X)/(start.Y-end.Y) + start.X
}

// Arc is a full circle tangent to a straight path at its stop point.
type Arc struct {
	Center     core.Vec
	Radius     float64
	StartAngle float64    // degrees; the angle of the stop point seen from Center
	Clockwise  bool       // true when the path runs right to left
	Degrees    []float64  // sample angles in visiting order
	Points     []core.Vec // sample positions, same order as Degrees
}

// LoopArc builds the circle an enemy flying start->end loops around at stop.
// The circle sits on the side that keeps the loop turning away from the
// direction of travel, and is sampled every whole degree for one full turn
// beginning and ending at StartAngle. A vertical path takes the
// left-to-right branch.
func LoopArc(start, end, stop core.Vec, radius float64) Arc {
	dx := end.X - start.X
	angle := core.Bearing(start, end)

	arc := Arc{Radius: radius}
	if dx >= 0 {
		complement := math.Pi/2 - math.Abs(angle)
		arc.Center = core.V(stop.X+radius*math.Cos(complement), stop.Y+radius*math.Sin(complement))
		arc.StartAngle = core.ToDegrees(math.Pi + complement)

		for d := math.Ceil(arc.StartAngle); d <= 360; d++ {
			arc.Degrees = append(arc.Degrees, d)
		}
		for d := 0.0; d <= math.Floor(arc.StartAngle); d++ {
			arc.Degrees = append(arc.Degrees, d)
		}
	} else {
		// Mirror image of the branch above about the vertical axis,
		// swept clockwise.
		complement := math.Pi/2 - (math.Pi - math.Abs(angle))
		arc.Center = core.V(stop.X-radius*math.Cos(complement), stop.Y+radius*math.Sin(complement))
		arc.StartAngle = 360 - core.ToDegrees(complement)
		arc.Clockwise = true

		for d := math.Floor(arc.StartAngle); d >= 0; d-- {
			arc.Degrees = append(arc.Degrees, d)
		}
		for d := 360.0; d >= math.Ceil(arc.StartAngle); d-- {
			arc.Degrees = append(arc.Degrees, d)
		}
	}

	arc.Points = make([]core.Vec, len(arc.Degrees))
	for i, d := range arc.Degrees {
		rad := core.ToRadians(d)
		arc.Points[i] = core.V(arc.Center.X+radius*math.Cos(rad), arc.Center.Y+radius*math.Sin(rad))
	}
	return arc
}

// LoopingPlan flies to stop in legDuration, loops once around the arc, then
// flies to end in legDuration. The entity turns toward every point before
// moving to it.
func LoopingPlan(start, end, stop core.Vec, radius, legDuration float64) *Plan {
	arc := LoopArc(start, end, stop, radius)

	steps := make([]Step, 0, 2*len(arc.Points)+4)
	steps = append(steps, Face(end), MoveTo(stop, legDuration))
	for _, pt := range arc.Points {
		steps = append(steps, Face(pt), MoveTo(pt, loopStepDuration))
	}
	steps = append(steps, Face(end), MoveTo(end, legDuration))
	return NewPlan(steps...)
}
