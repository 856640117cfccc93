// Package validation provides field-level validation for gas flow and
// patient parameters.
package validation

import (
	"fmt"
	"math"
)

const (
	// MinASA is the lowest ASA physical status class
	MinASA = 1
	// MaxASA is the highest ASA physical status class
	MaxASA = 5
	// MaxAgentPct is the vaporizer dial ceiling; the dial reads in percent
	MaxAgentPct = 100.0
)

// ValidationResult holds the result of validation
type ValidationResult struct {
	Valid  bool
	Errors map[string]string
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:  true,
		Errors: make(map[string]string),
	}
}

// AddError adds a field error and marks the result as invalid
func (v *ValidationResult) AddError(field, message string) {
	v.Valid = false
	v.Errors[field] = message
}

// Merge combines another validation result into this one
func (v *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	for field, message := range other.Errors {
		v.AddError(field, message)
	}
}

// ValidateFlows validates fresh-gas flow settings. Each flow must be a
// finite non-negative number and the total must be greater than zero, since
// FiO2 is a fraction of total flow.
func ValidateFlows(o2, n2o, air, agentPct float64) *ValidationResult {
	result := NewValidationResult()

	flows := []struct {
		field string
		value float64
	}{
		{"o2", o2},
		{"n2o", n2o},
		{"air", air},
	}

	anyInvalid := false
	for _, f := range flows {
		if !isFinite(f.value) {
			result.AddError(f.field, "Flow must be a finite number")
			anyInvalid = true
			continue
		}
		if f.value < 0 {
			result.AddError(f.field, "Flow must be non-negative (L/min)")
			anyInvalid = true
		}
	}

	if !anyInvalid && o2+n2o+air == 0 {
		result.AddError("flows", "Total fresh gas flow must be greater than zero")
	}

	if !isFinite(agentPct) || agentPct < 0 || agentPct > MaxAgentPct {
		result.AddError("agent", fmt.Sprintf("Agent concentration must be between 0 and %.0f percent", MaxAgentPct))
	}

	return result
}

// ValidatePatient validates patient demographic fields. Compliance is
// optional; zero means not measured.
func ValidatePatient(age, asa int, weightKg, complianceMLPerCmH2O float64) *ValidationResult {
	result := NewValidationResult()

	if age <= 0 {
		result.AddError("age", "Age must be a positive number of years")
	}
	if asa < MinASA || asa > MaxASA {
		result.AddError("asa", fmt.Sprintf("ASA class must be between %d and %d", MinASA, MaxASA))
	}
	if !isFinite(weightKg) || weightKg <= 0 {
		result.AddError("weight", "Weight must be greater than zero (kg)")
	}
	if !isFinite(complianceMLPerCmH2O) || complianceMLPerCmH2O < 0 {
		result.AddError("compliance", "Lung compliance must be non-negative (mL/cmH2O)")
	}

	return result
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
