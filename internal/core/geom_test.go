package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 0, Y: 15, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edge does not count",
			a:        RectF{X: 0, Y: 0, W: 10, H: 10},
			b:        RectF{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        RectF{X: 0, Y: 0, W: 20, H: 20},
			b:        RectF{X: 5, Y: 5, W: 5, H: 5},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFContainsAndClamp(t *testing.T) {
	r := RectF{X: 0, Y: 0, W: 100, H: 50}

	if !r.Contains(V(100, 50)) {
		t.Error("edges should be inside")
	}
	if r.Contains(V(-0.1, 10)) {
		t.Error("point left of the box should be outside")
	}

	got := r.ClampPoint(V(150, -20))
	if got != V(100, 0) {
		t.Errorf("ClampPoint = %v, expected (100, 0)", got)
	}

	inner := r.Inset(10, 5)
	if inner.MinX() != 10 || inner.MaxX() != 90 || inner.MinY() != 5 || inner.MaxY() != 45 {
		t.Errorf("Inset produced %+v", inner)
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(V(50, 50), V(20, 10))
	if r.X != 40 || r.Y != 45 || r.W != 20 || r.H != 10 {
		t.Errorf("CenteredRect = %+v", r)
	}
	if r.Center() != V(50, 50) {
		t.Errorf("Center() = %v", r.Center())
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(V(0, 0), V(3, 4)); math.Abs(d-5) > eps {
		t.Errorf("Distance = %f, expected 5", d)
	}
	if d := Distance(V(100, 600), V(100, -100)); math.Abs(d-700) > eps {
		t.Errorf("Distance = %f, expected 700", d)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec
		expected float64
	}{
		{"east", V(0, 0), V(1, 0), 0},
		{"north", V(0, 0), V(0, 1), math.Pi / 2},
		{"south", V(0, 0), V(0, -1), -math.Pi / 2},
		{"west", V(0, 0), V(-1, 0), math.Pi},
		{"south-east", V(10, 10), V(20, 0), -math.Pi / 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bearing(tc.from, tc.to); math.Abs(got-tc.expected) > eps {
				t.Errorf("Bearing = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestAngleConversion(t *testing.T) {
	if got := ToDegrees(math.Pi); got != 180 {
		t.Errorf("ToDegrees(pi) = %f", got)
	}
	if got := ToRadians(90); math.Abs(got-math.Pi/2) > eps {
		t.Errorf("ToRadians(90) = %f", got)
	}
	for _, deg := range []float64{-45, 0, 1, 359, 720} {
		if got := ToDegrees(ToRadians(deg)); math.Abs(got-deg) > 1e-9 {
			t.Errorf("round trip %f -> %f", deg, got)
		}
	}
}

func TestVecOps(t *testing.T) {
	v := V(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len = %f", v.Len())
	}
	n := v.Normalize()
	if math.Abs(n.Len()-1) > eps {
		t.Errorf("Normalize length = %f", n.Len())
	}
	if (Vec{}).Normalize() != (Vec{}) {
		t.Error("zero vector should stay zero")
	}
	if got := Lerp(V(0, 0), V(10, -10), 0.25); got != V(2.5, -2.5) {
		t.Errorf("Lerp = %v", got)
	}
	if got := v.Add(V(1, 1)).Sub(V(2, 2)).Scale(2); got != V(4, 6) {
		t.Errorf("Add/Sub/Scale = %v", got)
	}
}

func TestRNGUniformBounds(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 1000; i++ {
		v := rng.Uniform(-45, 45)
		if v < -45 || v > 45 {
			t.Fatalf("Uniform out of range: %f", v)
		}
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("sequences diverged at %d", i)
		}
	}
}

func TestRNGChanceExtremes(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 100; i++ {
		if !rng.Chance(1) {
			t.Fatal("Chance(1) should always be true")
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestRNGChanceZero(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 1000; i++ {
		if rng.Chance(0) {
			t.Fatal("Chance(0) should never be true")
		}
	}
}
