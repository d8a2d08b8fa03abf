package fuzzy

import (
	"errors"
	"math"
	"testing"
)

func TestTriangleEvaluate(t *testing.T) {
	mf, err := NewMembershipFunction("Zero", Triangle, []float64{-1, 0, 1})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}

	cases := []struct {
		x    float64
		want float64
	}{
		{-2, 0},
		{-1, 0},
		{-0.5, 0.5},
		{0, 1},
		{0.5, 0.5},
		{1, 0},
		{2, 0},
	}
	for _, c := range cases {
		if got := mf.Evaluate(c.x); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("triangle(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestTrapezoidEvaluate(t *testing.T) {
	mf, err := NewMembershipFunction("Plateau", Trapezoid, []float64{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}

	cases := []struct {
		x    float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
		{2, 1},
		{2.5, 0.5},
		{3, 0},
		{4, 0},
	}
	for _, c := range cases {
		if got := mf.Evaluate(c.x); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("trapezoid(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestZShapeEvaluate(t *testing.T) {
	mf, err := NewMembershipFunction("Small", ZShape, []float64{1, 5})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}

	if got := mf.Evaluate(0); got != 1 {
		t.Errorf("z(0) = %v, want 1", got)
	}
	if got := mf.Evaluate(1); got != 1 {
		t.Errorf("z(1) = %v, want 1", got)
	}
	if got := mf.Evaluate(5); got != 0 {
		t.Errorf("z(5) = %v, want 0", got)
	}
	if got := mf.Evaluate(10); got != 0 {
		t.Errorf("z(10) = %v, want 0", got)
	}
	// Interior follows 1 - 2t^2.
	x := 2.0
	tt := (x - 1) / 4
	if got, want := mf.Evaluate(x), 1-2*tt*tt; math.Abs(got-want) > 1e-12 {
		t.Errorf("z(%v) = %v, want %v", x, got, want)
	}
}

func TestSShapeEvaluate(t *testing.T) {
	mf, err := NewMembershipFunction("Large", SShape, []float64{15, 30})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}

	if got := mf.Evaluate(0); got != 0 {
		t.Errorf("s(0) = %v, want 0", got)
	}
	if got := mf.Evaluate(15); got != 0 {
		t.Errorf("s(15) = %v, want 0", got)
	}
	if got := mf.Evaluate(30); got != 1 {
		t.Errorf("s(30) = %v, want 1", got)
	}
	if got := mf.Evaluate(60); got != 1 {
		t.Errorf("s(60) = %v, want 1", got)
	}
	x := 20.0
	tt := (x - 15) / 15
	if got, want := mf.Evaluate(x), 2*tt*tt; math.Abs(got-want) > 1e-12 {
		t.Errorf("s(%v) = %v, want %v", x, got, want)
	}
}

func TestDegenerateShapes(t *testing.T) {
	// A Z or S shape with a==b degenerates to a step; never NaN.
	z, err := NewMembershipFunction("step", ZShape, []float64{2, 2})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}
	if got := z.Evaluate(2); got != 1 {
		t.Errorf("degenerate z(2) = %v, want 1", got)
	}
	if got := z.Evaluate(2.0001); got != 0 {
		t.Errorf("degenerate z(2.0001) = %v, want 0", got)
	}

	s, err := NewMembershipFunction("step", SShape, []float64{2, 2})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}
	if got := s.Evaluate(2); got != 0 {
		t.Errorf("degenerate s(2) = %v, want 0", got)
	}
	if got := s.Evaluate(2.0001); got != 1 {
		t.Errorf("degenerate s(2.0001) = %v, want 1", got)
	}

	// A spike triangle is 1 at its apex and 0 elsewhere.
	tri, err := NewMembershipFunction("spike", Triangle, []float64{3, 3, 3})
	if err != nil {
		t.Fatalf("NewMembershipFunction: %v", err)
	}
	if got := tri.Evaluate(3); got != 1 {
		t.Errorf("spike(3) = %v, want 1", got)
	}
	if got := tri.Evaluate(2.999); got != 0 {
		t.Errorf("spike(2.999) = %v, want 0", got)
	}
	for _, x := range []float64{2, 3, 4} {
		if math.IsNaN(tri.Evaluate(x)) {
			t.Errorf("spike(%v) is NaN", x)
		}
	}
}

func TestMalformedMF(t *testing.T) {
	cases := []struct {
		name   string
		shape  Shape
		params []float64
	}{
		{"triangle too few", Triangle, []float64{0, 1}},
		{"triangle too many", Triangle, []float64{0, 1, 2, 3}},
		{"z too many", ZShape, []float64{0, 1, 2}},
		{"s too few", SShape, []float64{0}},
		{"out of order", Triangle, []float64{2, 1, 3}},
		{"z out of order", ZShape, []float64{5, 1}},
	}
	for _, c := range cases {
		_, err := NewMembershipFunction(c.name, c.shape, c.params)
		if err == nil {
			t.Errorf("%s: expected error, got none", c.name)
			continue
		}
		var malformed *MalformedMFError
		if !errors.As(err, &malformed) {
			t.Errorf("%s: expected MalformedMFError, got %T", c.name, err)
		}
	}
}
