package fuzzy

import "fmt"

// OutputGridSamples is the number of points the output domain is discretized
// on during aggregation (step 0.01 over [0,1]). Tests compare against this
// reference grid; keep it available even if a finer grid is introduced.
const OutputGridSamples = 101

// MissingInputError reports a rule antecedent whose variable is absent from
// the system or from the input row.
type MissingInputError struct {
	Variable string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input for variable %q", e.Variable)
}

// FIS is a Mamdani fuzzy inference system: min for AND, clipping for
// implication, max for aggregation, centroid defuzzification.
type FIS struct {
	inputs map[string]Variable
	order  []string
	output Variable
	rules  []Rule
}

// NewFIS returns an empty system.
func NewFIS() *FIS {
	return &FIS{inputs: make(map[string]Variable)}
}

// AddInput registers an input variable, replacing any previous variable with
// the same name.
func (f *FIS) AddInput(v Variable) {
	if _, ok := f.inputs[v.Name]; !ok {
		f.order = append(f.order, v.Name)
	}
	f.inputs[v.Name] = v
}

// SetOutput sets the output variable.
func (f *FIS) SetOutput(v Variable) {
	f.output = v
}

// AddRule appends a rule to the rule base.
func (f *FIS) AddRule(r Rule) {
	f.rules = append(f.rules, r)
}

// AddRules appends rules in order.
func (f *FIS) AddRules(rules []Rule) {
	f.rules = append(f.rules, rules...)
}

// InputNames returns the registered input variables in insertion order.
func (f *FIS) InputNames() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Output returns the output variable.
func (f *FIS) Output() Variable {
	return f.output
}

// Evaluate runs Mamdani inference over one input row and returns the
// defuzzified output. Inputs outside a variable's domain are clamped to it.
// Evaluation is deterministic: the same system and inputs always produce the
// same output bit for bit.
func (f *FIS) Evaluate(inputs map[string]float64) (float64, error) {
	agg := make([]float64, OutputGridSamples)
	step := (f.output.Max - f.output.Min) / float64(OutputGridSamples-1)

	for _, rule := range f.rules {
		strength := 1.0
		for _, ant := range rule.Antecedents {
			v, ok := f.inputs[ant.Variable]
			if !ok {
				return 0, &MissingInputError{Variable: ant.Variable}
			}
			x, ok := inputs[ant.Variable]
			if !ok {
				return 0, &MissingInputError{Variable: ant.Variable}
			}
			mu, err := v.Membership(ant.Term, v.Clamp(x))
			if err != nil {
				return 0, err
			}
			if mu < strength {
				strength = mu
			}
		}
		if strength <= 0 {
			continue
		}

		// Clip the consequent to the firing strength and fold into the
		// aggregate by max.
		cons, err := f.consequentMF(rule.Consequent)
		if err != nil {
			return 0, err
		}
		for i := range agg {
			x := f.output.Min + float64(i)*step
			mu := cons.Evaluate(x)
			if mu > strength {
				mu = strength
			}
			if mu > agg[i] {
				agg[i] = mu
			}
		}
	}

	return f.defuzzify(agg, step), nil
}

func (f *FIS) consequentMF(c Consequent) (MembershipFunction, error) {
	if c.Variable != f.output.Name {
		return MembershipFunction{}, &MissingInputError{Variable: c.Variable}
	}
	for _, mf := range f.output.MFs {
		if mf.Label == c.Term {
			return mf, nil
		}
	}
	return MembershipFunction{}, &UnknownTermError{Variable: c.Variable, Term: c.Term}
}

// defuzzify computes the centroid of the aggregated surface. An all-zero
// surface defuzzifies to 0.
func (f *FIS) defuzzify(agg []float64, step float64) float64 {
	var num, den float64
	for i, mu := range agg {
		x := f.output.Min + float64(i)*step
		num += x * mu
		den += mu
	}
	if den == 0 {
		return 0.0
	}
	return num / den
}

// NewAnomalyFIS assembles the complete ADS-B anomaly scorer from per-variable
// breakpoint slices in InputSpecs order followed by the output breakpoints.
// Passing nil for a slice uses the canonical defaults for that variable.
func NewAnomalyFIS(inputParams [][]float64, outputParams []float64) (*FIS, error) {
	if inputParams == nil {
		inputParams = make([][]float64, len(InputSpecs))
	}
	if len(inputParams) != len(InputSpecs) {
		return nil, fmt.Errorf("expected %d input parameter slices, got %d", len(InputSpecs), len(inputParams))
	}

	fis := NewFIS()
	for i, spec := range InputSpecs {
		params := inputParams[i]
		if params == nil {
			params = DefaultParams(spec.Name)
		}
		v, err := BuildVariable(spec, params)
		if err != nil {
			return nil, err
		}
		fis.AddInput(v)
	}

	if outputParams == nil {
		outputParams = DefaultParams(OutputSpec.Name)
	}
	out, err := BuildVariable(OutputSpec, outputParams)
	if err != nil {
		return nil, err
	}
	fis.SetOutput(out)

	fis.AddRules(AnomalyRuleBase())
	return fis, nil
}
