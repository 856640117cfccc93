// Package mixture implements the gas-mixture safety evaluator: given
// fresh-gas flow settings and patient context it computes the delivered FiO2
// and classifies the mixture as normal, warning, or critical.
//
// Evaluation is a pure function over its arguments. It holds no state, does
// no I/O, and is safe to call concurrently.
package mixture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gasguard/gasguard/internal/validation"
)

const safeExplanation = "Gas mixture within safe clinical limits."

// InvalidInputError reports inputs outside their valid ranges: negative
// flows, zero total flow, or out-of-range patient fields. Fields maps the
// offending field name to a human-readable message.
type InvalidInputError struct {
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid evaluation input"
	}
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return "invalid evaluation input: " + strings.Join(names, ", ")
}

// Evaluator classifies gas mixtures against a fixed set of thresholds.
// The zero value is not usable; construct with NewEvaluator.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator returns an evaluator closed over the given thresholds.
func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{thresholds: t}
}

// Thresholds returns the limits this evaluator classifies against.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// Evaluate computes FiO2 for the given flows and classifies the mixture.
//
// FiO2% = ((O2 + Air*0.21) / total) * 100, kept at full precision; callers
// round for display only.
//
// Classification is an ordered cascade, first match wins:
//  1. FiO2 below the 25% hypoxic floor -> CRITICAL_HYPOXIC (never
//     patient-adjustable).
//  2. High-risk patient (elderly or high ASA) with FiO2 below the
//     patient-specific minimum -> CLINICAL_WARNING.
//  3. Total flow below the low-flow threshold -> LOW_FLOW_WARNING.
//  4. Otherwise NORMAL.
//
// Every hazard that holds contributes a message even when a higher-severity
// classification wins, so a simultaneous low-flow + hypoxic condition reports
// CRITICAL_HYPOXIC but mentions both hazards in the explanation.
func (e *Evaluator) Evaluate(flows FlowInputs, patient PatientContext) (EvaluationResult, error) {
	if err := validateInputs(flows, patient); err != nil {
		return EvaluationResult{}, err
	}

	t := e.thresholds
	total := flows.Total()
	fio2 := (flows.O2 + flows.Air*AirO2Fraction) / total * 100

	result := EvaluationResult{
		FiO2Pct:        fio2,
		TotalFlow:      total,
		Classification: ClassNormal,
	}

	if fio2 < HypoxicFiO2Pct {
		result.Classification = ClassCriticalHypoxic
		result.Alerts = append(result.Alerts,
			fmt.Sprintf("Hypoxic mixture detected: FiO2 = %.1f%% (< %.0f%%).", fio2, HypoxicFiO2Pct))
	}

	if e.isHighRisk(patient) && fio2 < t.HighRiskFiO2Pct {
		if result.Classification == ClassNormal {
			result.Classification = ClassClinicalWarning
		}
		result.Advisories = append(result.Advisories,
			fmt.Sprintf("FiO2 %.1f%% is below the patient-specific minimum of %.0f%% (age >= %d or ASA >= %d).",
				fio2, t.HighRiskFiO2Pct, t.ElderlyAgeYears, t.HighRiskASA))
	}

	if total < t.LowFlowTotalLPM {
		if result.Classification == ClassNormal {
			result.Classification = ClassLowFlowWarning
		}
		result.Advisories = append(result.Advisories,
			fmt.Sprintf("Low fresh gas flow (< %.1f L/min). Risk of CO2 rebreathing.", t.LowFlowTotalLPM))
	}

	result.Advisories = append(result.Advisories, e.agentAdvisories(flows, patient)...)

	if patient.ComplianceMLPerCmH2O > 0 && patient.ComplianceMLPerCmH2O < t.LowComplianceMLPerCmH2O {
		result.Advisories = append(result.Advisories,
			"Low lung compliance. Monitor airway pressure closely.")
	}

	result.Explanation = explain(result.Alerts, result.Advisories)
	return result, nil
}

// isHighRisk is the single place the patient-risk predicate lives: elderly
// patients and those at or above the high-risk ASA class get the stricter
// FiO2 minimum.
func (e *Evaluator) isHighRisk(patient PatientContext) bool {
	return patient.Age >= e.thresholds.ElderlyAgeYears || patient.ASA >= e.thresholds.HighRiskASA
}

// agentAdvisories covers the vaporizer: an absolute concentration ceiling,
// and a lower ceiling for patients sensitive to the agent.
func (e *Evaluator) agentAdvisories(flows FlowInputs, patient PatientContext) []string {
	t := e.thresholds
	var advisories []string

	if flows.AgentPct > t.AgentMaxPct {
		advisories = append(advisories,
			fmt.Sprintf("High anesthetic agent concentration (%.1f%%).", flows.AgentPct))
	}

	sensitive := patient.Age >= t.ElderlyAgeYears || patient.WeightKg < t.LowWeightKg
	if sensitive && flows.AgentPct > t.AgentSensitivePct {
		advisories = append(advisories,
			"Elderly or low-weight patient may be sensitive to a high anesthetic dose.")
	}

	return advisories
}

func explain(alerts, advisories []string) string {
	messages := make([]string, 0, len(alerts)+len(advisories))
	messages = append(messages, alerts...)
	messages = append(messages, advisories...)
	if len(messages) == 0 {
		return safeExplanation
	}
	return strings.Join(messages, " ")
}

func validateInputs(flows FlowInputs, patient PatientContext) error {
	result := validation.ValidateFlows(flows.O2, flows.N2O, flows.Air, flows.AgentPct)
	result.Merge(validation.ValidatePatient(patient.Age, patient.ASA, patient.WeightKg, patient.ComplianceMLPerCmH2O))
	if result.Valid {
		return nil
	}
	return &InvalidInputError{Fields: result.Errors}
}
