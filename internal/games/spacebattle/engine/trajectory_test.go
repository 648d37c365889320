package engine

import (
	"math"
	"testing"

	"github.com/vovakirdan/space-battle/internal/core"
)

const eps = 1e-9

func near(a, b core.Vec, tol float64) bool {
	return core.Distance(a, b) <= tol
}

func TestStraightPlanWithoutShoot(t *testing.T) {
	start := core.V(100, 600)
	end := core.V(100, -100)
	plan := StraightPlan(start, end, 2.0, nil)

	var moves []Step
	for _, s := range plan.Steps {
		if s.Kind == StepMove {
			moves = append(moves, s)
		}
	}
	if len(moves) != 1 {
		t.Fatalf("expected a single linear move, got %d moves", len(moves))
	}
	if moves[0].Target != end || moves[0].Duration != 2.0 {
		t.Errorf("move = %+v, expected to %v in 2.0", moves[0], end)
	}
	if plan.Duration() != 2.0 {
		t.Errorf("plan duration = %v, expected 2.0", plan.Duration())
	}
}

func TestStraightPlanCoversDisplacementInDuration(t *testing.T) {
	e := New(quietConfig(), 1)
	ent := &Entity{Category: CategoryEnemy, Pos: core.V(100, 600)}
	ent.Plan = StraightPlan(ent.Pos, core.V(100, -100), 2.0, nil)

	e.advancePlan(ent, 1.0)
	if !near(ent.Pos, core.V(100, 250), eps) {
		t.Errorf("halfway position = %v, expected (100, 250)", ent.Pos)
	}
	if ent.Plan.Done() {
		t.Fatal("plan finished early")
	}

	e.advancePlan(ent, 1.0)
	if ent.Pos != core.V(100, -100) {
		t.Errorf("final position = %v, expected (100, -100)", ent.Pos)
	}
	if !ent.Plan.Done() {
		t.Error("plan should be done after exactly 2.0")
	}
	if math.Abs(ent.Rotation+math.Pi/2) > eps {
		t.Errorf("rotation = %v, expected to face straight down", ent.Rotation)
	}
}

func TestStraightPlanSplitsAtShootPoint(t *testing.T) {
	start := core.V(0, 700)
	end := core.V(0, -100)
	stop := core.V(0, 600)
	plan := StraightPlan(start, end, 2.0, &ShootPoint{At: stop, Pause: 0.1})

	expected := []StepKind{StepFace, StepMove, StepFire, StepWait, StepFace, StepMove}
	if len(plan.Steps) != len(expected) {
		t.Fatalf("got %d steps, expected %d", len(plan.Steps), len(expected))
	}
	for i, k := range expected {
		if plan.Steps[i].Kind != k {
			t.Errorf("step %d kind = %v, expected %v", i, plan.Steps[i].Kind, k)
		}
	}

	// 100 of 800 units before the stop
	if got := plan.Steps[1].Duration; math.Abs(got-0.25) > eps {
		t.Errorf("time1 = %v, expected 0.25", got)
	}
	if got := plan.Steps[5].Duration; math.Abs(got-1.75) > eps {
		t.Errorf("time2 = %v, expected 1.75", got)
	}
	if got := plan.Steps[3].Duration; got != 0.1 {
		t.Errorf("pause = %v, expected 0.1", got)
	}
	if math.Abs(plan.Duration()-2.1) > eps {
		t.Errorf("total = %v, expected 2.1", plan.Duration())
	}
}

func TestStraightPlanDegenerate(t *testing.T) {
	p := core.V(50, 50)
	plan := StraightPlan(p, p, 1.0, &ShootPoint{At: p, Pause: 0.1})
	if plan.Steps[1].Duration != 0 || plan.Steps[5].Duration != 1.0 {
		t.Errorf("zero-length path should put all time in the second leg: %+v", plan.Steps)
	}
}

func TestStopColumn(t *testing.T) {
	tests := []struct {
		name       string
		start, end core.Vec
		stopY      float64
		expected   float64
	}{
		{"vertical", core.V(100, 700), core.V(100, -100), 300, 100},
		{"rightward", core.V(0, 700), core.V(100, -100), 300, 50},
		{"leftward", core.V(100, 700), core.V(0, -100), 300, 50},
		{"at start row", core.V(20, 700), core.V(300, -100), 700, 20},
		{"horizontal line", core.V(20, 100), core.V(300, 100), 100, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StopColumn(tc.start, tc.end, tc.stopY)
			if math.IsNaN(got) || math.IsInf(got, 0) || math.Abs(got-tc.expected) > eps {
				t.Errorf("StopColumn = %v, expected %v", got, tc.expected)
			}
		})
	}
}

// checkSweep verifies that degrees form one unbroken traversal in the
// given direction with a single wrap between 0 and 360.
func checkSweep(t *testing.T, degrees []float64, step float64) {
	t.Helper()
	wraps := 0
	for i := 1; i < len(degrees); i++ {
		d := degrees[i] - degrees[i-1]
		if d == step {
			continue
		}
		if degrees[i-1] == 360 && degrees[i] == 0 || degrees[i-1] == 0 && degrees[i] == 360 {
			wraps++
			continue
		}
		t.Fatalf("gap or duplicate between %v and %v at index %d", degrees[i-1], degrees[i], i)
	}
	if wraps != 1 {
		t.Errorf("expected exactly one wrap, got %d", wraps)
	}
}

func TestLoopArcRightward(t *testing.T) {
	rng := core.NewRNG(3)
	for i := 0; i < 200; i++ {
		start := core.V(rng.Uniform(25, 389), 761)
		end := core.V(rng.Uniform(start.X, 389), -147.2)
		stopY := rng.Uniform(100, 636)
		stop := core.V(StopColumn(start, end, stopY), stopY)

		arc := LoopArc(start, end, stop, 50)
		if arc.Clockwise {
			t.Fatal("dx >= 0 must sweep counter-clockwise")
		}
		if arc.Degrees[0] != math.Ceil(arc.StartAngle) {
			t.Fatalf("first sample %v, expected ceil(%v)", arc.Degrees[0], arc.StartAngle)
		}
		if last := arc.Degrees[len(arc.Degrees)-1]; last != math.Floor(arc.StartAngle) {
			t.Fatalf("last sample %v, expected floor(%v)", last, arc.StartAngle)
		}
		checkSweep(t, arc.Degrees, 1)

		if math.Abs(core.Distance(arc.Center, stop)-50) > 1e-6 {
			t.Fatalf("stop point is %v from the centre, expected 50", core.Distance(arc.Center, stop))
		}
		a := core.ToRadians(arc.StartAngle)
		onCircle := core.V(arc.Center.X+50*math.Cos(a), arc.Center.Y+50*math.Sin(a))
		if !near(onCircle, stop, 1e-6) {
			t.Fatalf("start angle does not point at the stop: %v vs %v", onCircle, stop)
		}
	}
}

func TestLoopArcLeftward(t *testing.T) {
	rng := core.NewRNG(4)
	for i := 0; i < 200; i++ {
		start := core.V(rng.Uniform(26, 389), 761)
		end := core.V(rng.Uniform(25, start.X-0.5), -147.2)
		stopY := rng.Uniform(100, 636)
		stop := core.V(StopColumn(start, end, stopY), stopY)

		arc := LoopArc(start, end, stop, 50)
		if !arc.Clockwise {
			t.Fatal("dx < 0 must sweep clockwise")
		}
		if arc.Degrees[0] != math.Floor(arc.StartAngle) {
			t.Fatalf("first sample %v, expected floor(%v)", arc.Degrees[0], arc.StartAngle)
		}
		if last := arc.Degrees[len(arc.Degrees)-1]; last != math.Ceil(arc.StartAngle) {
			t.Fatalf("last sample %v, expected ceil(%v)", last, arc.StartAngle)
		}
		checkSweep(t, arc.Degrees, -1)

		a := core.ToRadians(arc.StartAngle)
		onCircle := core.V(arc.Center.X+50*math.Cos(a), arc.Center.Y+50*math.Sin(a))
		if !near(onCircle, stop, 1e-6) {
			t.Fatalf("start angle does not point at the stop: %v vs %v", onCircle, stop)
		}

		// The loop is the rightward loop mirrored about x = 0.
		mirror := func(v core.Vec) core.Vec { return core.V(-v.X, v.Y) }
		right := LoopArc(mirror(start), mirror(end), mirror(stop), 50)
		if !near(arc.Center, mirror(right.Center), 1e-6) {
			t.Fatalf("centre %v is not the mirror of %v", arc.Center, right.Center)
		}
		if d := math.Mod(arc.StartAngle+right.StartAngle, 360); math.Abs(d-180) > 1e-6 {
			t.Fatalf("start angles %v and %v are not mirrored", arc.StartAngle, right.StartAngle)
		}
		first, last := arc.Points[0], arc.Points[len(arc.Points)-1]
		if core.Distance(first, stop) > 1 || core.Distance(last, stop) > 1 {
			t.Fatalf("loop %v .. %v does not start and end at the stop %v", first, last, stop)
		}
	}
}

func TestLoopArcVerticalTakesRightwardBranch(t *testing.T) {
	start := core.V(200, 761)
	end := core.V(200, -147.2)
	stop := core.V(200, 400)
	arc := LoopArc(start, end, stop, 50)

	if arc.Clockwise {
		t.Error("dx == 0 should take the counter-clockwise branch")
	}
	if math.Abs(arc.StartAngle-180) > 1e-9 {
		t.Errorf("start angle = %v, expected 180", arc.StartAngle)
	}
	if !near(arc.Center, core.V(250, 400), 1e-9) {
		t.Errorf("centre = %v, expected (250, 400)", arc.Center)
	}
	for _, p := range arc.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatal("NaN in loop samples")
		}
	}
}

func TestLoopArcSamplesOnCircle(t *testing.T) {
	arc := LoopArc(core.V(50, 761), core.V(300, -147.2), core.V(150, 400), 50)
	if len(arc.Points) != len(arc.Degrees) {
		t.Fatalf("%d points for %d angles", len(arc.Points), len(arc.Degrees))
	}
	if len(arc.Points) < 361 || len(arc.Points) > 362 {
		t.Errorf("expected a full turn of samples, got %d", len(arc.Points))
	}
	for _, p := range arc.Points {
		if d := core.Distance(p, arc.Center); math.Abs(d-50) > 1e-9 {
			t.Fatalf("sample %v is %v from the centre", p, d)
		}
	}
}

func TestLoopingPlan(t *testing.T) {
	start := core.V(50, 761)
	end := core.V(300, -147.2)
	stop := core.V(StopColumn(start, end, 400), 400)
	plan := LoopingPlan(start, end, stop, 50, 1.0)
	arc := LoopArc(start, end, stop, 50)

	if len(plan.Steps) != 2*len(arc.Points)+4 {
		t.Fatalf("got %d steps for %d samples", len(plan.Steps), len(arc.Points))
	}
	if plan.Steps[1].Kind != StepMove || plan.Steps[1].Target != stop || plan.Steps[1].Duration != 1.0 {
		t.Errorf("first leg = %+v", plan.Steps[1])
	}
	last := plan.Steps[len(plan.Steps)-1]
	if last.Kind != StepMove || last.Target != end || last.Duration != 1.0 {
		t.Errorf("last leg = %+v", last)
	}
	// Every loop move is preceded by a turn toward its target
	for i := 2; i < len(plan.Steps)-2; i += 2 {
		face, move := plan.Steps[i], plan.Steps[i+1]
		if face.Kind != StepFace || move.Kind != StepMove || face.Target != move.Target {
			t.Fatalf("steps %d-%d are not face+move: %+v %+v", i, i+1, face, move)
		}
		if math.Abs(move.Duration-1.0/360.0) > eps {
			t.Fatalf("loop step duration %v", move.Duration)
		}
	}

	want := 2.0 + float64(len(arc.Points))/360.0
	if math.Abs(plan.Duration()-want) > 1e-9 {
		t.Errorf("plan duration %v, expected %v", plan.Duration(), want)
	}
}

func TestLoopingPlanFollowsCircleWithinOneTick(t *testing.T) {
	e := New(quietConfig(), 1)
	start := core.V(50, 761)
	end := core.V(300, -147.2)
	stop := core.V(StopColumn(start, end, 400), 400)
	arc := LoopArc(start, end, stop, 50)

	ent := &Entity{Category: CategoryEnemy, Pos: start, Plan: LoopingPlan(start, end, stop, 50, 1.0)}
	e.advancePlan(ent, 1.0)
	if !near(ent.Pos, stop, 1e-9) {
		t.Fatalf("after the first leg at %v, expected the stop %v", ent.Pos, stop)
	}

	// One 60 Hz frame covers several one-degree steps
	dt := 1.0 / 60.0
	for elapsed := 0.0; elapsed < 0.9; elapsed += dt {
		e.advancePlan(ent, dt)
		if d := core.Distance(ent.Pos, arc.Center); math.Abs(d-50) > 1 {
			t.Fatalf("left the loop: %v from the centre", d)
		}
	}
}
