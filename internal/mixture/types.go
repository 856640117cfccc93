package mixture

// Classification is the discrete safety verdict for a gas mixture.
type Classification string

const (
	ClassNormal          Classification = "NORMAL"
	ClassLowFlowWarning  Classification = "LOW_FLOW_WARNING"
	ClassClinicalWarning Classification = "CLINICAL_WARNING"
	ClassCriticalHypoxic Classification = "CRITICAL_HYPOXIC"
)

// Severity orders classifications from benign to acute. Higher wins when
// multiple hazards hold at once.
func (c Classification) Severity() int {
	switch c {
	case ClassCriticalHypoxic:
		return 3
	case ClassClinicalWarning:
		return 2
	case ClassLowFlowWarning:
		return 1
	default:
		return 0
	}
}

// FlowInputs are the fresh-gas flow settings on the mixer, in liters per
// minute, plus the vaporizer agent concentration dial.
type FlowInputs struct {
	O2  float64 `json:"o2"`
	N2O float64 `json:"n2o"`
	Air float64 `json:"air"`
	// AgentPct is the anesthetic agent concentration in percent.
	// Zero means the vaporizer is off.
	AgentPct float64 `json:"agent,omitempty"`
}

// Total returns the combined fresh gas flow in L/min.
func (f FlowInputs) Total() float64 {
	return f.O2 + f.N2O + f.Air
}

// PatientContext carries the demographic fields used to select which risk
// thresholds apply. The evaluator never mutates it.
type PatientContext struct {
	Age      int     `json:"age"`    // years
	ASA      int     `json:"asa"`    // ASA physical status class, 1..5
	WeightKg float64 `json:"weight"` // kg
	// ComplianceMLPerCmH2O is the measured lung compliance.
	// Zero means not measured; advisory checks are skipped.
	ComplianceMLPerCmH2O float64 `json:"compliance,omitempty"`
}

// EvaluationResult is the deterministic output of Evaluate. It is created
// fresh per call and has no lifecycle beyond it.
type EvaluationResult struct {
	FiO2Pct        float64        `json:"fio2"`      // full precision, 0..100
	TotalFlow      float64        `json:"totalFlow"` // L/min
	Classification Classification `json:"classification"`
	Explanation    string         `json:"explanation"`
	// Alerts holds critical hazard messages, Advisories everything below
	// that. Both are included in Explanation.
	Alerts     []string `json:"alerts,omitempty"`
	Advisories []string `json:"advisories,omitempty"`
}
