package easel

import (
	"math"
	"testing"
)

func TestPoint_Creation(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"zero", 0, 0},
		{"positive", 3, 4},
		{"negative", -1, -2},
		{"mixed", -5, 10},
		{"fractional", 1.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Pt(tt.x, tt.y)
			if p.X != tt.x || p.Y != tt.y {
				t.Errorf("Pt(%v, %v) = %v, want (%v, %v)", tt.x, tt.y, p, tt.x, tt.y)
			}
		})
	}
}

func TestPoint_Add(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		expect Point
	}{
		{"zero+zero", Pt(0, 0), Pt(0, 0), Pt(0, 0)},
		{"positive", Pt(1, 2), Pt(3, 4), Pt(4, 6)},
		{"negative", Pt(-1, -2), Pt(-3, -4), Pt(-4, -6)},
		{"mixed", Pt(1, -2), Pt(-3, 4), Pt(-2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Add(tt.q)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("%v.Add(%v) = %v, want %v", tt.p, tt.q, result, tt.expect)
			}
		})
	}
}

func TestPoint_Sub(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		expect Point
	}{
		{"zero-zero", Pt(0, 0), Pt(0, 0), Pt(0, 0)},
		{"positive", Pt(5, 7), Pt(2, 3), Pt(3, 4)},
		{"negative", Pt(-1, -2), Pt(-3, -4), Pt(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Sub(tt.q)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("%v.Sub(%v) = %v, want %v", tt.p, tt.q, result, tt.expect)
			}
		})
	}
}

func TestPoint_Mul(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		s      float64
		expect Point
	}{
		{"zero scalar", Pt(1, 2), 0, Pt(0, 0)},
		{"positive", Pt(1, 2), 3, Pt(3, 6)},
		{"negative", Pt(1, 2), -2, Pt(-2, -4)},
		{"fractional", Pt(4, 6), 0.5, Pt(2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Mul(tt.s)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("%v.Mul(%v) = %v, want %v", tt.p, tt.s, result, tt.expect)
			}
		})
	}
}

func TestPoint_Dot(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		expect float64
	}{
		{"orthogonal", Pt(1, 0), Pt(0, 1), 0},
		{"parallel", Pt(1, 0), Pt(2, 0), 2},
		{"same", Pt(3, 4), Pt(3, 4), 25},
		{"opposite", Pt(1, 0), Pt(-1, 0), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Dot(tt.q)
			if math.Abs(result-tt.expect) > epsilon {
				t.Errorf("%v.Dot(%v) = %v, want %v", tt.p, tt.q, result, tt.expect)
			}
		})
	}
}

func TestPoint_Cross(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		expect float64
	}{
		{"parallel", Pt(1, 0), Pt(2, 0), 0},
		{"orthogonal", Pt(1, 0), Pt(0, 1), 1},
		{"reverse orthogonal", Pt(0, 1), Pt(1, 0), -1},
		{"general", Pt(3, 4), Pt(5, 6), 3*6 - 4*5}, // -2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Cross(tt.q)
			if math.Abs(result-tt.expect) > epsilon {
				t.Errorf("%v.Cross(%v) = %v, want %v", tt.p, tt.q, result, tt.expect)
			}
		})
	}
}

func TestPoint_Length(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		expect float64
	}{
		{"zero", Pt(0, 0), 0},
		{"unit x", Pt(1, 0), 1},
		{"unit y", Pt(0, 1), 1},
		{"3-4-5", Pt(3, 4), 5},
		{"negative", Pt(-3, -4), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Length()
			if math.Abs(result-tt.expect) > epsilon {
				t.Errorf("%v.Length() = %v, want %v", tt.p, result, tt.expect)
			}
		})
	}
}

func TestPoint_LengthSquared(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		expect float64
	}{
		{"zero", Pt(0, 0), 0},
		{"3-4-5", Pt(3, 4), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.LengthSquared()
			if math.Abs(result-tt.expect) > epsilon {
				t.Errorf("%v.LengthSquared() = %v, want %v", tt.p, result, tt.expect)
			}
		})
	}
}

func TestPoint_Distance(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		expect float64
	}{
		{"same point", Pt(2, 3), Pt(2, 3), 0},
		{"horizontal", Pt(0, 0), Pt(10, 0), 10},
		{"3-4-5", Pt(1, 1), Pt(4, 5), 5},
		{"symmetric", Pt(4, 5), Pt(1, 1), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Distance(tt.q)
			if math.Abs(result-tt.expect) > epsilon {
				t.Errorf("%v.Distance(%v) = %v, want %v", tt.p, tt.q, result, tt.expect)
			}
		})
	}
}

func TestPoint_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		expect Point
	}{
		{"zero", Pt(0, 0), Pt(0, 0)},
		{"unit x", Pt(5, 0), Pt(1, 0)},
		{"unit y", Pt(0, 3), Pt(0, 1)},
		{"diagonal", Pt(3, 4), Pt(0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Normalize()
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("%v.Normalize() = %v, want %v", tt.p, result, tt.expect)
			}
		})
	}
}

func TestPoint_Lerp(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		t      float64
		expect Point
	}{
		{"t=0", Pt(0, 0), Pt(10, 10), 0, Pt(0, 0)},
		{"t=1", Pt(0, 0), Pt(10, 10), 1, Pt(10, 10)},
		{"t=0.5", Pt(0, 0), Pt(10, 10), 0.5, Pt(5, 5)},
		{"t=0.25", Pt(0, 0), Pt(8, 4), 0.25, Pt(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p.Lerp(tt.q, tt.t)
			if !pointsEqual(result, tt.expect, epsilon) {
				t.Errorf("%v.Lerp(%v, %v) = %v, want %v", tt.p, tt.q, tt.t, result, tt.expect)
			}
		})
	}
}
