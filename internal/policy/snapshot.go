// Package policy holds the process-wide snapshot of active clinical
// thresholds. The snapshot is immutable once built; updates swap an atomic
// pointer, so readers never block and evaluations always see a consistent
// set of limits.
package policy

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/gasguard/gasguard/internal/mixture"
)

// Snapshot is an immutable view of the active thresholds plus a weak ETag
// over their canonical JSON encoding.
type Snapshot struct {
	ETag       string             `json:"etag"`
	Thresholds mixture.Thresholds `json:"thresholds"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

var current atomic.Pointer[Snapshot]

// Load returns the active snapshot. Before the first Update it returns a
// snapshot of the default thresholds.
func Load() *Snapshot {
	if s := current.Load(); s != nil {
		return s
	}
	return Build(mixture.DefaultThresholds())
}

// Update swaps in a new snapshot.
func Update(s *Snapshot) {
	current.Store(s)
}

// Build computes the ETag for the given thresholds and stamps the snapshot.
func Build(t mixture.Thresholds) *Snapshot {
	blob, _ := json.Marshal(t)
	etag := fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(blob))
	return &Snapshot{
		ETag:       etag,
		Thresholds: t,
		UpdatedAt:  time.Now().UTC(),
	}
}
