package fuzzy

// The fixed ADS-B anomaly rule base. Rule order is insertion order; max
// aggregation makes it irrelevant to the result.

// NormalBehaviorRules cover expected flight regimes and map to Low.
func NormalBehaviorRules() []Rule {
	return []Rule{
		{
			Antecedents: []Antecedent{
				{VarSpeedChange, "Zero"},
				{VarHeadingChange, "Zero"},
				{VarVerticalRateChange, "Zero"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "Low"},
		},
		{
			Antecedents: []Antecedent{
				{VarSpeedChange, "Negative"},
				{VarHeadingChange, "Zero"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "Low"},
		},
		{
			Antecedents: []Antecedent{
				{VarSpeedChange, "Positive"},
				{VarVerticalRateChange, "Positive"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "Low"},
		},
	}
}

// StrongAnomalyRules fire on single large excursions and map to High.
func StrongAnomalyRules() []Rule {
	return []Rule{
		{
			Antecedents: []Antecedent{
				{VarSpeedChange, "Positive_Large"},
				{VarHeadingChange, "Positive_Large"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "High"},
		},
		{
			Antecedents: []Antecedent{
				{VarHeadingChange, "Positive"},
				{VarVerticalRateChange, "Negative_Large"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "High"},
		},
		{
			Antecedents: []Antecedent{
				{VarAltitudeChange, "Positive_Large"},
				{VarVerticalRateChange, "Zero"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "High"},
		},
	}
}

// TimeGapRules damp large deltas when the track has a long reporting gap;
// big changes are expected after 30+ seconds of silence.
func TimeGapRules() []Rule {
	return []Rule{
		{
			Antecedents: []Antecedent{
				{VarTimeGap, "Large"},
				{VarSpeedChange, "Positive_Large"},
			},
			Consequent: Consequent{VarAnomalyLevel, "Medium"},
		},
		{
			Antecedents: []Antecedent{
				{VarTimeGap, "Large"},
				{VarHeadingChange, "Positive_Large"},
			},
			Consequent: Consequent{VarAnomalyLevel, "Low"},
		},
		{
			Antecedents: []Antecedent{
				{VarTimeGap, "Large"},
				{VarSpeedChange, "Zero"},
			},
			Consequent: Consequent{VarAnomalyLevel, "Low"},
		},
	}
}

// CompoundAnomalyRules fire on coupled moderate excursions and map to High.
func CompoundAnomalyRules() []Rule {
	return []Rule{
		{
			Antecedents: []Antecedent{
				{VarSpeedChange, "Positive"},
				{VarHeadingChange, "Negative"},
				{VarVerticalRateChange, "Positive_Large"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "High"},
		},
		{
			Antecedents: []Antecedent{
				{VarSpeedChange, "Negative"},
				{VarAltitudeChange, "Positive_Large"},
				{VarTimeGap, "Small"},
			},
			Consequent: Consequent{VarAnomalyLevel, "High"},
		},
	}
}

// AnomalyRuleBase returns the full rule set in group order.
func AnomalyRuleBase() []Rule {
	var rules []Rule
	rules = append(rules, NormalBehaviorRules()...)
	rules = append(rules, StrongAnomalyRules()...)
	rules = append(rules, TimeGapRules()...)
	rules = append(rules, CompoundAnomalyRules()...)
	return rules
}
