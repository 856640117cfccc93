package api

import (
	"encoding/json"
	"net/http"

	"github.com/gasguard/gasguard/internal/audit"
	"github.com/gasguard/gasguard/internal/mixture"
	"github.com/gasguard/gasguard/internal/policy"
	"github.com/gasguard/gasguard/internal/telemetry"
)

// handleGetThresholds serves the active threshold snapshot with an ETag.
func (s *Server) handleGetThresholds(w http.ResponseWriter, r *http.Request) {
	snap := policy.Load()
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == snap.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("ETag", snap.ETag)
	_ = json.NewEncoder(w).Encode(snap)
}

// handleUpdateThresholds applies a partial thresholds update, validates the
// resulting set, and swaps the snapshot. The 25% hypoxic floor is not part
// of the update surface.
func (s *Server) handleUpdateThresholds(w http.ResponseWriter, r *http.Request) {
	var req ThresholdsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "invalid JSON")
		return
	}

	before := policy.Load().Thresholds
	next := applyUpdate(before, req)

	if result := next.Validate(); !result.Valid {
		s.auditor.Record(r.Context(), audit.NewEvent(r, "thresholds.update").
			WithDetails(map[string]any{"errors": result.Errors}).
			Failed())
		ValidationError(w, r, "invalid thresholds", result.Errors)
		return
	}

	snap := policy.Build(next)
	policy.Update(snap)
	telemetry.ThresholdUpdates.Inc()

	s.auditor.Record(r.Context(), audit.NewEvent(r, "thresholds.update").
		WithDetails(map[string]any{
			"before": before,
			"after":  next,
			"etag":   snap.ETag,
		}))

	writeJSON(w, http.StatusOK, ThresholdsUpdateResponse{OK: true, ETag: snap.ETag})
}

func applyUpdate(t mixture.Thresholds, req ThresholdsUpdateRequest) mixture.Thresholds {
	if req.ElderlyAgeYears != nil {
		t.ElderlyAgeYears = *req.ElderlyAgeYears
	}
	if req.HighRiskASA != nil {
		t.HighRiskASA = *req.HighRiskASA
	}
	if req.HighRiskFiO2Pct != nil {
		t.HighRiskFiO2Pct = *req.HighRiskFiO2Pct
	}
	if req.LowFlowTotalLPM != nil {
		t.LowFlowTotalLPM = *req.LowFlowTotalLPM
	}
	if req.AgentMaxPct != nil {
		t.AgentMaxPct = *req.AgentMaxPct
	}
	if req.AgentSensitivePct != nil {
		t.AgentSensitivePct = *req.AgentSensitivePct
	}
	if req.LowWeightKg != nil {
		t.LowWeightKg = *req.LowWeightKg
	}
	if req.LowComplianceMLPerCmH2O != nil {
		t.LowComplianceMLPerCmH2O = *req.LowComplianceMLPerCmH2O
	}
	return t
}
