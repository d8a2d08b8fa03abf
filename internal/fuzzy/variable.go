package fuzzy

import "fmt"

// UnknownTermError reports a rule or lookup referencing a term that does not
// exist on the named variable.
type UnknownTermError struct {
	Variable string
	Term     string
}

func (e *UnknownTermError) Error() string {
	return fmt.Sprintf("unknown term %q on variable %q", e.Term, e.Variable)
}

// Variable is a named linguistic variable over [Min,Max] with an ordered set
// of membership functions. Ordering follows the dominant abscissa of each
// term, so adjacent terms overlap on their shoulders.
type Variable struct {
	Name string
	Min  float64
	Max  float64
	MFs  []MembershipFunction
}

// Clamp pulls x into the variable domain. Out-of-domain inputs are clamped
// rather than rejected.
func (v Variable) Clamp(x float64) float64 {
	if x < v.Min {
		return v.Min
	}
	if x > v.Max {
		return v.Max
	}
	return x
}

// Membership returns the grade of x under the term with the given label.
func (v Variable) Membership(label string, x float64) (float64, error) {
	for _, mf := range v.MFs {
		if mf.Label == label {
			return mf.Evaluate(x), nil
		}
	}
	return 0, &UnknownTermError{Variable: v.Name, Term: label}
}

// Fuzzify returns the membership grades of x in MF order.
func (v Variable) Fuzzify(x float64) []float64 {
	mu := make([]float64, len(v.MFs))
	for i, mf := range v.MFs {
		mu[i] = mf.Evaluate(x)
	}
	return mu
}

// Terms returns the term labels in MF order.
func (v Variable) Terms() []string {
	labels := make([]string, len(v.MFs))
	for i, mf := range v.MFs {
		labels[i] = mf.Label
	}
	return labels
}
