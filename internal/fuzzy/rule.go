package fuzzy

// Antecedent is one (variable, term) condition of a rule. Antecedents within
// a rule are combined by AND (min).
type Antecedent struct {
	Variable string
	Term     string
}

// Consequent names the output term a rule asserts.
type Consequent struct {
	Variable string
	Term     string
}

// Rule maps a conjunction of antecedents to one consequent term.
type Rule struct {
	Antecedents []Antecedent
	Consequent  Consequent
}
