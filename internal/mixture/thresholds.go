package mixture

import (
	"fmt"

	"github.com/gasguard/gasguard/internal/validation"
)

const (
	// HypoxicFiO2Pct is the absolute physiological floor for FiO2. Any
	// mixture below it is critical regardless of patient context. It is a
	// constant, not a threshold: no configuration may lower it.
	HypoxicFiO2Pct = 25.0

	// AirO2Fraction is the oxygen fraction of room air.
	AirO2Fraction = 0.21
)

// Thresholds are the adjustable clinical limits the evaluator classifies
// against. They are plain values passed into the evaluator, never
// process-wide mutable state.
type Thresholds struct {
	// ElderlyAgeYears: patients at or above this age are high-risk.
	ElderlyAgeYears int `json:"elderlyAgeYears"`
	// HighRiskASA: patients at or above this ASA class are high-risk.
	HighRiskASA int `json:"highRiskASA"`
	// HighRiskFiO2Pct is the minimum FiO2 recommended for high-risk patients.
	HighRiskFiO2Pct float64 `json:"highRiskFiO2Pct"`
	// LowFlowTotalLPM: total fresh gas flow below this risks CO2 rebreathing.
	LowFlowTotalLPM float64 `json:"lowFlowTotalLPM"`
	// AgentMaxPct: agent concentration above this draws an advisory.
	AgentMaxPct float64 `json:"agentMaxPct"`
	// AgentSensitivePct: agent concentration above this draws an advisory
	// for elderly or low-weight patients.
	AgentSensitivePct float64 `json:"agentSensitivePct"`
	// LowWeightKg marks patients sensitive to high anesthetic doses.
	LowWeightKg float64 `json:"lowWeightKg"`
	// LowComplianceMLPerCmH2O: measured lung compliance below this draws
	// an airway-pressure advisory.
	LowComplianceMLPerCmH2O float64 `json:"lowComplianceMLPerCmH2O"`
}

// DefaultThresholds returns the standard clinical limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ElderlyAgeYears:         65,
		HighRiskASA:             3,
		HighRiskFiO2Pct:         30.0,
		LowFlowTotalLPM:         0.5,
		AgentMaxPct:             8.0,
		AgentSensitivePct:       6.0,
		LowWeightKg:             50.0,
		LowComplianceMLPerCmH2O: 30.0,
	}
}

// Validate checks threshold sanity. The high-risk FiO2 minimum may never sit
// below the hypoxic floor; a clinical warning band narrower than the critical
// band would silently disappear.
func (t Thresholds) Validate() *validation.ValidationResult {
	result := validation.NewValidationResult()

	if t.ElderlyAgeYears < 1 {
		result.AddError("elderlyAgeYears", "Elderly age threshold must be at least 1 year")
	}
	if t.HighRiskASA < 1 || t.HighRiskASA > 5 {
		result.AddError("highRiskASA", "High-risk ASA threshold must be between 1 and 5")
	}
	if t.HighRiskFiO2Pct < HypoxicFiO2Pct {
		result.AddError("highRiskFiO2Pct", fmt.Sprintf("High-risk FiO2 minimum cannot be below the %.0f%% hypoxic floor", HypoxicFiO2Pct))
	}
	if t.HighRiskFiO2Pct > 100 {
		result.AddError("highRiskFiO2Pct", "High-risk FiO2 minimum cannot exceed 100%")
	}
	if t.LowFlowTotalLPM <= 0 {
		result.AddError("lowFlowTotalLPM", "Low-flow threshold must be greater than zero")
	}
	if t.AgentMaxPct <= 0 || t.AgentMaxPct > 100 {
		result.AddError("agentMaxPct", "Agent maximum must be between 0 and 100 percent")
	}
	if t.AgentSensitivePct <= 0 || t.AgentSensitivePct > t.AgentMaxPct {
		result.AddError("agentSensitivePct", "Agent sensitivity threshold must be positive and not above the agent maximum")
	}
	if t.LowWeightKg <= 0 {
		result.AddError("lowWeightKg", "Low-weight threshold must be greater than zero")
	}
	if t.LowComplianceMLPerCmH2O <= 0 {
		result.AddError("lowComplianceMLPerCmH2O", "Low-compliance threshold must be greater than zero")
	}

	return result
}
