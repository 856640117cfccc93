package api

// EvaluateRequest is the request payload for POST /v1/mixture/evaluate.
type EvaluateRequest struct {
	Flows   *FlowsDTO   `json:"flows"`
	Patient *PatientDTO `json:"patient"`
}

// FlowsDTO carries fresh-gas flow settings in L/min plus the vaporizer dial.
type FlowsDTO struct {
	O2       float64 `json:"o2"`
	N2O      float64 `json:"n2o"`
	Air      float64 `json:"air"`
	AgentPct float64 `json:"agent,omitempty"`
}

// PatientDTO carries the patient context for threshold selection.
type PatientDTO struct {
	Age        int     `json:"age"`
	ASA        int     `json:"asa"`
	WeightKg   float64 `json:"weight"`
	Compliance float64 `json:"compliance,omitempty"`
}

// EvaluateResponse is the response payload for evaluation requests.
type EvaluateResponse struct {
	FiO2Pct        float64  `json:"fio2"`
	TotalFlow      float64  `json:"totalFlow"`
	Classification string   `json:"classification"`
	Indicator      string   `json:"indicator"` // green, orange, red
	Explanation    string   `json:"explanation"`
	Alerts         []string `json:"alerts,omitempty"`
	Advisories     []string `json:"advisories,omitempty"`
	ThresholdsETag string   `json:"thresholdsEtag"`
	EvaluatedAt    string   `json:"evaluatedAt"`
}

// ThresholdsUpdateRequest is the payload for PUT /v1/thresholds. Fields left
// null keep their current value.
type ThresholdsUpdateRequest struct {
	ElderlyAgeYears         *int     `json:"elderlyAgeYears,omitempty"`
	HighRiskASA             *int     `json:"highRiskASA,omitempty"`
	HighRiskFiO2Pct         *float64 `json:"highRiskFiO2Pct,omitempty"`
	LowFlowTotalLPM         *float64 `json:"lowFlowTotalLPM,omitempty"`
	AgentMaxPct             *float64 `json:"agentMaxPct,omitempty"`
	AgentSensitivePct       *float64 `json:"agentSensitivePct,omitempty"`
	LowWeightKg             *float64 `json:"lowWeightKg,omitempty"`
	LowComplianceMLPerCmH2O *float64 `json:"lowComplianceMLPerCmH2O,omitempty"`
}

// ThresholdsUpdateResponse acknowledges an accepted thresholds update.
type ThresholdsUpdateResponse struct {
	OK   bool   `json:"ok"`
	ETag string `json:"etag"`
}
