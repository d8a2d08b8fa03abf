package fuzzy

import "fmt"

// Canonical ADS-B variable names. Feature rows are keyed by these.
const (
	VarSpeedChange        = "SpeedChange"
	VarHeadingChange      = "HeadingChange"
	VarVerticalRateChange = "VerticalRateChange"
	VarAltitudeChange     = "AltitudeChange"
	VarTimeGap            = "TimeGap"
	VarAnomalyLevel       = "AnomalyLevel"
)

// TermSpec declares one linguistic term of a variable.
type TermSpec struct {
	Label string
	Shape Shape
}

// VariableSpec declares a variable's domain and term inventory. The breakpoint
// values are supplied separately, either as the canonical defaults or as a
// slice of a tuned gene vector.
type VariableSpec struct {
	Name  string
	Min   float64
	Max   float64
	Terms []TermSpec
}

// ParamCount returns the total number of breakpoints across all terms.
func (s VariableSpec) ParamCount() int {
	n := 0
	for _, t := range s.Terms {
		n += t.Shape.paramCount()
	}
	return n
}

var fiveTerms = []TermSpec{
	{"Negative_Large", ZShape},
	{"Negative", Triangle},
	{"Zero", Triangle},
	{"Positive", Triangle},
	{"Positive_Large", SShape},
}

// InputSpecs lists the five ADS-B input variables in gene-vector order.
var InputSpecs = []VariableSpec{
	{Name: VarSpeedChange, Min: -10, Max: 10, Terms: fiveTerms},
	{Name: VarHeadingChange, Min: -180, Max: 180, Terms: fiveTerms},
	{Name: VarVerticalRateChange, Min: -20, Max: 20, Terms: fiveTerms},
	{Name: VarAltitudeChange, Min: -1000, Max: 1000, Terms: fiveTerms},
	{Name: VarTimeGap, Min: 0, Max: 60, Terms: []TermSpec{
		{"Small", ZShape},
		{"Medium", Triangle},
		{"Large", SShape},
	}},
}

// OutputSpec is the anomaly score variable.
var OutputSpec = VariableSpec{
	Name: VarAnomalyLevel, Min: 0, Max: 1, Terms: []TermSpec{
		{"Low", ZShape},
		{"Medium", Triangle},
		{"High", SShape},
	},
}

// defaultParams holds the expert-chosen breakpoints per variable, laid out
// term by term in spec order.
var defaultParams = map[string][]float64{
	VarSpeedChange:        {-6, -3, -6, -3, 0, -1, 0, 1, 0, 3, 6, 3, 6},
	VarHeadingChange:      {-90, -30, -60, -20, 0, -5, 0, 5, 0, 20, 60, 30, 90},
	VarVerticalRateChange: {-10, -5, -10, -5, 0, -1, 0, 1, 0, 5, 10, 5, 10},
	VarAltitudeChange:     {-500, -100, -500, -100, 0, -50, 0, 50, 0, 100, 500, 100, 500},
	VarTimeGap:            {1, 5, 3, 10, 20, 15, 30},
	VarAnomalyLevel:       {0.2, 0.4, 0.2, 0.5, 0.8, 0.6, 0.8},
}

// DefaultParams returns a copy of the canonical breakpoints for the named
// variable, or nil if the variable is unknown.
func DefaultParams(name string) []float64 {
	p, ok := defaultParams[name]
	if !ok {
		return nil
	}
	out := make([]float64, len(p))
	copy(out, p)
	return out
}

// BuildVariable assembles a Variable from a spec and a flat breakpoint slice.
// The slice length must match spec.ParamCount; each term's parameters are
// validated for count and ordering.
func BuildVariable(spec VariableSpec, params []float64) (Variable, error) {
	if len(params) != spec.ParamCount() {
		return Variable{}, fmt.Errorf("variable %s expects %d breakpoints, got %d", spec.Name, spec.ParamCount(), len(params))
	}
	v := Variable{Name: spec.Name, Min: spec.Min, Max: spec.Max}
	idx := 0
	for _, t := range spec.Terms {
		n := t.Shape.paramCount()
		mf, err := NewMembershipFunction(t.Label, t.Shape, params[idx:idx+n:idx+n])
		if err != nil {
			return Variable{}, err
		}
		v.MFs = append(v.MFs, mf)
		idx += n
	}
	return v, nil
}

// DefaultVariable builds the named variable with its canonical breakpoints.
func DefaultVariable(name string) (Variable, error) {
	for _, spec := range InputSpecs {
		if spec.Name == name {
			return BuildVariable(spec, DefaultParams(name))
		}
	}
	if name == OutputSpec.Name {
		return BuildVariable(OutputSpec, DefaultParams(name))
	}
	return Variable{}, fmt.Errorf("no ADS-B variable named %q", name)
}
