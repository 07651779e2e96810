package easel

import (
	"image"
	"math"
	"testing"
)

const epsilon = 1e-10

func pointsEqual(p1, p2 Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

// -------------------------------------------------------------------
// Rect Tests
// -------------------------------------------------------------------

func TestRect_NewRect(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    Point
		expectMin Point
		expectMax Point
	}{
		{
			name: "normal order",
			p1:   Pt(0, 0), p2: Pt(10, 10),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "reversed order",
			p1:   Pt(10, 10), p2: Pt(0, 0),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "mixed",
			p1:   Pt(5, 0), p2: Pt(0, 5),
			expectMin: Pt(0, 0), expectMax: Pt(5, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.p1, tt.p2)
			if !pointsEqual(r.Min, tt.expectMin, epsilon) {
				t.Errorf("Min = %v, want %v", r.Min, tt.expectMin)
			}
			if !pointsEqual(r.Max, tt.expectMax, epsilon) {
				t.Errorf("Max = %v, want %v", r.Max, tt.expectMax)
			}
		})
	}
}

func TestRect_RectXYWH(t *testing.T) {
	r := RectXYWH(2, 3, 10, 5)
	if !pointsEqual(r.Min, Pt(2, 3), epsilon) {
		t.Errorf("Min = %v, want (2, 3)", r.Min)
	}
	if !pointsEqual(r.Max, Pt(12, 8), epsilon) {
		t.Errorf("Max = %v, want (12, 8)", r.Max)
	}
}

func TestRect_WidthHeight(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 5))
	if r.Width() != 10 {
		t.Errorf("Width() = %v, want 10", r.Width())
	}
	if r.Height() != 5 {
		t.Errorf("Height() = %v, want 5", r.Height())
	}
}

func TestRect_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		expect bool
	}{
		{"zero value", Rect{}, true},
		{"normal", RectXYWH(0, 0, 10, 10), false},
		{"zero width", RectXYWH(5, 5, 0, 10), true},
		{"zero height", RectXYWH(5, 5, 10, 0), true},
		{"inverted", Rect{Min: Pt(10, 10), Max: Pt(0, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.expect {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestRect_Union(t *testing.T) {
	r1 := NewRect(Pt(0, 0), Pt(5, 5))
	r2 := NewRect(Pt(3, 3), Pt(10, 10))
	u := r1.Union(r2)

	if !pointsEqual(u.Min, Pt(0, 0), epsilon) {
		t.Errorf("Union Min = %v, want (0, 0)", u.Min)
	}
	if !pointsEqual(u.Max, Pt(10, 10), epsilon) {
		t.Errorf("Union Max = %v, want (10, 10)", u.Max)
	}
}

func TestRect_Contains(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 10))

	tests := []struct {
		name   string
		p      Point
		expect bool
	}{
		{"inside", Pt(5, 5), true},
		{"corner", Pt(0, 0), true},
		{"edge", Pt(5, 0), true},
		{"outside", Pt(15, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Contains(tt.p)
			if result != tt.expect {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, result, tt.expect)
			}
		})
	}
}

func TestRect_Expand(t *testing.T) {
	r := RectXYWH(2, 2, 6, 6)

	grown := r.Expand(1)
	if !pointsEqual(grown.Min, Pt(1, 1), epsilon) || !pointsEqual(grown.Max, Pt(9, 9), epsilon) {
		t.Errorf("Expand(1) = %v, want [(1,1), (9,9)]", grown)
	}

	shrunk := r.Expand(-2)
	if !pointsEqual(shrunk.Min, Pt(4, 4), epsilon) || !pointsEqual(shrunk.Max, Pt(6, 6), epsilon) {
		t.Errorf("Expand(-2) = %v, want [(4,4), (6,6)]", shrunk)
	}
}

func TestRect_Translate(t *testing.T) {
	r := RectXYWH(0, 0, 4, 3)
	moved := r.Translate(10, -5)

	if !pointsEqual(moved.Min, Pt(10, -5), epsilon) {
		t.Errorf("Translate Min = %v, want (10, -5)", moved.Min)
	}
	if !pointsEqual(moved.Max, Pt(14, -2), epsilon) {
		t.Errorf("Translate Max = %v, want (14, -2)", moved.Max)
	}
	if moved.Width() != r.Width() || moved.Height() != r.Height() {
		t.Error("Translate should preserve size")
	}
}

func TestRect_ImageRect(t *testing.T) {
	tests := []struct {
		name   string
		r      Rect
		expect image.Rectangle
	}{
		{"integral", RectXYWH(1, 2, 3, 4), image.Rect(1, 2, 4, 6)},
		{"fractional grows outward", NewRect(Pt(0.3, 0.7), Pt(4.2, 5.01)), image.Rect(0, 0, 5, 6)},
		{"negative min floors", NewRect(Pt(-1.5, -0.25), Pt(2, 2)), image.Rect(-2, -1, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.ImageRect(); got != tt.expect {
				t.Errorf("ImageRect() = %v, want %v", got, tt.expect)
			}
		})
	}
}

// -------------------------------------------------------------------
// QuadBez Tests
// -------------------------------------------------------------------

func TestQuadBez_Eval(t *testing.T) {
	// A parabola-like curve
	q := NewQuadBez(Pt(0, 0), Pt(5, 10), Pt(10, 0))

	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"t=0", 0, Pt(0, 0)},
		{"t=1", 1, Pt(10, 0)},
		{"t=0.5", 0.5, Pt(5, 5)}, // Midpoint should be at (5, 5)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := q.Eval(tt.t)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, result, tt.expect)
			}
		})
	}
}

func TestQuadBez_Subdivide(t *testing.T) {
	q := NewQuadBez(Pt(0, 0), Pt(5, 10), Pt(10, 0))
	q1, q2 := q.Subdivide()

	// The midpoint should be shared
	if !pointsEqual(q1.P2, q2.P0, epsilon) {
		t.Errorf("Subdivision junction: q1.P2=%v != q2.P0=%v", q1.P2, q2.P0)
	}

	// Endpoints should match original
	if !pointsEqual(q1.P0, q.P0, epsilon) {
		t.Errorf("q1.P0 = %v, want %v", q1.P0, q.P0)
	}
	if !pointsEqual(q2.P2, q.P2, epsilon) {
		t.Errorf("q2.P2 = %v, want %v", q2.P2, q.P2)
	}

	// Verify points on subdivided curves match original
	for i := 0; i <= 10; i++ {
		tt := float64(i) / 10.0
		original := q.Eval(tt)

		var subdivided Point
		if tt <= 0.5 {
			subdivided = q1.Eval(tt * 2)
		} else {
			subdivided = q2.Eval((tt - 0.5) * 2)
		}

		if !pointsEqual(original, subdivided, 1e-9) {
			t.Errorf("Mismatch at t=%v: original=%v, subdivided=%v", tt, original, subdivided)
		}
	}
}

// -------------------------------------------------------------------
// CubicBez Tests
// -------------------------------------------------------------------

func TestCubicBez_Eval(t *testing.T) {
	// y = x^2 approximation
	c := NewCubicBez(Pt(0, 0), Pt(1.0/3.0, 0), Pt(2.0/3.0, 1.0/3.0), Pt(1, 1))

	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"t=0", 0, Pt(0, 0)},
		{"t=1", 1, Pt(1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Eval(tt.t)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, result, tt.expect)
			}
		})
	}
}

func TestCubicBez_Subdivide(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	c1, c2 := c.Subdivide()

	// Junction should match
	if !pointsEqual(c1.P3, c2.P0, epsilon) {
		t.Errorf("Subdivision junction: c1.P3=%v != c2.P0=%v", c1.P3, c2.P0)
	}

	// Endpoints should match original
	if !pointsEqual(c1.P0, c.P0, epsilon) {
		t.Errorf("c1.P0 = %v, want %v", c1.P0, c.P0)
	}
	if !pointsEqual(c2.P3, c.P3, epsilon) {
		t.Errorf("c2.P3 = %v, want %v", c2.P3, c.P3)
	}

	// Verify points on subdivided curves match original
	for i := 0; i <= 10; i++ {
		tt := float64(i) / 10.0
		original := c.Eval(tt)

		var subdivided Point
		if tt <= 0.5 {
			subdivided = c1.Eval(tt * 2)
		} else {
			subdivided = c2.Eval((tt - 0.5) * 2)
		}

		if !pointsEqual(original, subdivided, 1e-9) {
			t.Errorf("Mismatch at t=%v: original=%v, subdivided=%v", tt, original, subdivided)
		}
	}
}

func TestCubicFlatness(t *testing.T) {
	// Control points on the chord: flatness should be zero.
	flat := NewCubicBez(Pt(0, 0), Pt(1.0/3.0, 0), Pt(2.0/3.0, 0), Pt(1, 0))
	if f := cubicFlatness(flat); f > epsilon {
		t.Errorf("flatness of straight segment = %v, want ~0", f)
	}

	// A strongly bent curve must measure as non-flat.
	bent := NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	if f := cubicFlatness(bent); f <= epsilon {
		t.Errorf("flatness of bent curve = %v, want > 0", f)
	}

	// Subdividing must reduce flatness on both halves.
	whole := cubicFlatness(bent)
	c1, c2 := bent.Subdivide()
	if f := cubicFlatness(c1); f >= whole {
		t.Errorf("flatness of first half = %v, want < %v", f, whole)
	}
	if f := cubicFlatness(c2); f >= whole {
		t.Errorf("flatness of second half = %v, want < %v", f, whole)
	}
}
