package policy

import (
	"testing"

	"github.com/gasguard/gasguard/internal/mixture"
)

func TestBuild_ETagIsStable(t *testing.T) {
	a := Build(mixture.DefaultThresholds())
	b := Build(mixture.DefaultThresholds())
	if a.ETag == "" {
		t.Fatal("expected non-empty ETag")
	}
	if a.ETag != b.ETag {
		t.Errorf("same thresholds produced different ETags: %s vs %s", a.ETag, b.ETag)
	}
}

func TestBuild_ETagChangesWithThresholds(t *testing.T) {
	base := Build(mixture.DefaultThresholds())

	changed := mixture.DefaultThresholds()
	changed.ElderlyAgeYears = 70
	if got := Build(changed); got.ETag == base.ETag {
		t.Errorf("different thresholds share ETag %s", got.ETag)
	}
}

func TestLoadUpdate(t *testing.T) {
	defer Update(Build(mixture.DefaultThresholds()))

	custom := mixture.DefaultThresholds()
	custom.LowFlowTotalLPM = 0.8
	snap := Build(custom)
	Update(snap)

	got := Load()
	if got.ETag != snap.ETag {
		t.Errorf("Load ETag = %s, want %s", got.ETag, snap.ETag)
	}
	if got.Thresholds.LowFlowTotalLPM != 0.8 {
		t.Errorf("LowFlowTotalLPM = %v, want 0.8", got.Thresholds.LowFlowTotalLPM)
	}
}

func TestLoad_DefaultsBeforeFirstUpdate(t *testing.T) {
	// Load never returns nil, even before any Update.
	got := Load()
	if got == nil {
		t.Fatal("Load returned nil")
	}
	if got.ETag == "" {
		t.Error("expected default snapshot to carry an ETag")
	}
}
