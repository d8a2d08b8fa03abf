// Package fuzzy implements the Mamdani fuzzy inference system used to score
// per-timestep anomalies in ADS-B tracks. Membership functions, linguistic
// variables and the fixed anomaly rule base live here; the genetic tuning of
// the membership breakpoints lives in internal/ga.
package fuzzy

import "fmt"

// Shape identifies the curve family of a membership function.
type Shape int

const (
	Triangle Shape = iota
	Trapezoid
	ZShape
	SShape
)

// String returns the shape name used in errors and reports.
func (s Shape) String() string {
	switch s {
	case Triangle:
		return "triangle"
	case Trapezoid:
		return "trapezoid"
	case ZShape:
		return "z-shape"
	case SShape:
		return "s-shape"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// paramCount returns the number of breakpoints the shape requires.
func (s Shape) paramCount() int {
	switch s {
	case Triangle:
		return 3
	case Trapezoid:
		return 4
	case ZShape, SShape:
		return 2
	}
	return 0
}

// MalformedMFError reports a membership function constructed with the wrong
// parameter count or with breakpoints out of order.
type MalformedMFError struct {
	Label  string
	Shape  Shape
	Reason string
}

func (e *MalformedMFError) Error() string {
	return fmt.Sprintf("malformed membership function %q (%s): %s", e.Label, e.Shape, e.Reason)
}

// MembershipFunction is a labelled curve over one linguistic variable.
// Params holds the breakpoints: {a,b,c} for triangles, {a,b,c,d} for
// trapezoids and {a,b} for Z/S shapes, all non-decreasing.
type MembershipFunction struct {
	Label  string
	Shape  Shape
	Params []float64
}

// NewMembershipFunction validates the parameter vector for the shape.
func NewMembershipFunction(label string, shape Shape, params []float64) (MembershipFunction, error) {
	mf := MembershipFunction{Label: label, Shape: shape, Params: params}
	if err := mf.Validate(); err != nil {
		return MembershipFunction{}, err
	}
	return mf, nil
}

// Validate checks the parameter count and ordering.
func (mf MembershipFunction) Validate() error {
	want := mf.Shape.paramCount()
	if want == 0 {
		return &MalformedMFError{Label: mf.Label, Shape: mf.Shape, Reason: "unknown shape"}
	}
	if len(mf.Params) != want {
		return &MalformedMFError{
			Label: mf.Label, Shape: mf.Shape,
			Reason: fmt.Sprintf("expected %d parameters, got %d", want, len(mf.Params)),
		}
	}
	for i := 1; i < len(mf.Params); i++ {
		if mf.Params[i] < mf.Params[i-1] {
			return &MalformedMFError{
				Label: mf.Label, Shape: mf.Shape,
				Reason: fmt.Sprintf("parameters must be non-decreasing, got %v", mf.Params),
			}
		}
	}
	return nil
}

// Evaluate returns the membership grade of x. Triangles and trapezoids stay
// in [0,1]. Between a and b the Z shape is 1-2t² and the S shape 2t² with
// t=(x-a)/(b-a), so near b the Z shape dips below 0 (down to -1) and the
// S shape exceeds 1 (up to 2); the result is not clamped.
//
// Degenerate breakpoints are defined, never NaN: a Z or S shape with a==b is
// a step at a, and a triangle with a==b==c is 1 at b and 0 elsewhere.
func (mf MembershipFunction) Evaluate(x float64) float64 {
	p := mf.Params
	switch mf.Shape {
	case Triangle:
		a, b, c := p[0], p[1], p[2]
		if x == b {
			return 1.0
		}
		if x <= a || x >= c {
			return 0.0
		}
		if x < b {
			return (x - a) / (b - a)
		}
		return (c - x) / (c - b)

	case Trapezoid:
		a, b, c, d := p[0], p[1], p[2], p[3]
		if x >= b && x <= c {
			return 1.0
		}
		if x <= a || x >= d {
			return 0.0
		}
		if x < b {
			return (x - a) / (b - a)
		}
		return (d - x) / (d - c)

	case ZShape:
		a, b := p[0], p[1]
		if x <= a {
			return 1.0
		}
		if x >= b {
			return 0.0
		}
		t := (x - a) / (b - a)
		return 1.0 - 2.0*t*t

	case SShape:
		a, b := p[0], p[1]
		if x <= a {
			return 0.0
		}
		if x >= b {
			return 1.0
		}
		t := (x - a) / (b - a)
		return 2.0 * t * t
	}
	return 0.0
}
