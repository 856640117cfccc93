package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gasguard/gasguard/internal/mixture"
	"github.com/gasguard/gasguard/internal/policy"
	"github.com/gasguard/gasguard/internal/telemetry"
)

// handleEvaluate handles POST /v1/mixture/evaluate
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	if req.Flows == nil {
		BadRequestError(w, r, ErrCodeMissingField, "flows is required")
		return
	}
	if req.Patient == nil {
		BadRequestError(w, r, ErrCodeMissingField, "patient is required")
		return
	}

	flows := mixture.FlowInputs{
		O2:       req.Flows.O2,
		N2O:      req.Flows.N2O,
		Air:      req.Flows.Air,
		AgentPct: req.Flows.AgentPct,
	}
	patient := mixture.PatientContext{
		Age:                  req.Patient.Age,
		ASA:                  req.Patient.ASA,
		WeightKg:             req.Patient.WeightKg,
		ComplianceMLPerCmH2O: req.Patient.Compliance,
	}

	s.evaluate(w, r, flows, patient)
}

// handleEvaluateGET handles GET /v1/mixture/evaluate with query parameters
func (s *Server) handleEvaluateGET(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		flows   mixture.FlowInputs
		patient mixture.PatientContext
		err     error
	)

	floatParams := []struct {
		name string
		dst  *float64
	}{
		{"o2", &flows.O2},
		{"n2o", &flows.N2O},
		{"air", &flows.Air},
		{"agent", &flows.AgentPct},
		{"weight", &patient.WeightKg},
		{"compliance", &patient.ComplianceMLPerCmH2O},
	}
	for _, p := range floatParams {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		if *p.dst, err = strconv.ParseFloat(raw, 64); err != nil {
			BadRequestError(w, r, ErrCodeInvalidParam, p.name+" must be a number")
			return
		}
	}

	intParams := []struct {
		name string
		dst  *int
	}{
		{"age", &patient.Age},
		{"asa", &patient.ASA},
	}
	for _, p := range intParams {
		raw := query.Get(p.name)
		if raw == "" {
			continue
		}
		if *p.dst, err = strconv.Atoi(raw); err != nil {
			BadRequestError(w, r, ErrCodeInvalidParam, p.name+" must be an integer")
			return
		}
	}

	s.evaluate(w, r, flows, patient)
}

// evaluate runs the classifier against the active threshold snapshot and
// writes the result.
func (s *Server) evaluate(w http.ResponseWriter, r *http.Request, flows mixture.FlowInputs, patient mixture.PatientContext) {
	snap := policy.Load()
	evaluator := mixture.NewEvaluator(snap.Thresholds)

	result, err := evaluator.Evaluate(flows, patient)
	if err != nil {
		var invalid *mixture.InvalidInputError
		if errors.As(err, &invalid) {
			telemetry.InvalidInputs.Inc()
			ValidationError(w, r, "invalid evaluation input", invalid.Fields)
			return
		}
		InternalError(w, r, "evaluation failed")
		return
	}

	telemetry.Evaluations.WithLabelValues(string(result.Classification)).Inc()
	telemetry.FiO2Observed.Observe(result.FiO2Pct)

	writeJSON(w, http.StatusOK, EvaluateResponse{
		FiO2Pct:        result.FiO2Pct,
		TotalFlow:      result.TotalFlow,
		Classification: string(result.Classification),
		Indicator:      indicatorFor(result.Classification),
		Explanation:    result.Explanation,
		Alerts:         result.Alerts,
		Advisories:     result.Advisories,
		ThresholdsETag: snap.ETag,
		EvaluatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// indicatorFor maps a classification to the visual indicator the
// presentation layer renders.
func indicatorFor(c mixture.Classification) string {
	switch c {
	case mixture.ClassCriticalHypoxic:
		return "red"
	case mixture.ClassClinicalWarning, mixture.ClassLowFlowWarning:
		return "orange"
	default:
		return "green"
	}
}
