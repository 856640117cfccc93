package mixture

import "testing"

func TestDefaultThresholds_Valid(t *testing.T) {
	if result := DefaultThresholds().Validate(); !result.Valid {
		t.Fatalf("DefaultThresholds should validate, got %v", result.Errors)
	}
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Thresholds)
		wantField string
	}{
		{
			name:      "high-risk fio2 below hypoxic floor",
			mutate:    func(t *Thresholds) { t.HighRiskFiO2Pct = 20 },
			wantField: "highRiskFiO2Pct",
		},
		{
			name:      "high-risk fio2 above 100",
			mutate:    func(t *Thresholds) { t.HighRiskFiO2Pct = 120 },
			wantField: "highRiskFiO2Pct",
		},
		{
			name:      "elderly age zero",
			mutate:    func(t *Thresholds) { t.ElderlyAgeYears = 0 },
			wantField: "elderlyAgeYears",
		},
		{
			name:      "asa out of range",
			mutate:    func(t *Thresholds) { t.HighRiskASA = 6 },
			wantField: "highRiskASA",
		},
		{
			name:      "low flow zero",
			mutate:    func(t *Thresholds) { t.LowFlowTotalLPM = 0 },
			wantField: "lowFlowTotalLPM",
		},
		{
			name:      "agent sensitive above max",
			mutate:    func(t *Thresholds) { t.AgentSensitivePct = t.AgentMaxPct + 1 },
			wantField: "agentSensitivePct",
		},
		{
			name:      "low weight zero",
			mutate:    func(t *Thresholds) { t.LowWeightKg = 0 },
			wantField: "lowWeightKg",
		},
		{
			name:      "low compliance negative",
			mutate:    func(t *Thresholds) { t.LowComplianceMLPerCmH2O = -1 },
			wantField: "lowComplianceMLPerCmH2O",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thresholds := DefaultThresholds()
			tt.mutate(&thresholds)
			result := thresholds.Validate()
			if result.Valid {
				t.Fatalf("Validate() should fail for %s", tt.name)
			}
			if _, ok := result.Errors[tt.wantField]; !ok {
				t.Errorf("Errors = %v, want entry for %q", result.Errors, tt.wantField)
			}
		})
	}
}
