package memory

import (
	"context"
	"time"
)

// PlayerSummary is the long-term lookup result named in §4.2 and §6.
type PlayerSummary struct {
	PlayerID      string
	Aura          int
	Deaths        int
	DragonsKilled int
	HoursPlayed   float64
	NemesisCause  string
}

// RunSummary is one entry of a player's recent run history.
type RunSummary struct {
	RunID       string
	StartedAt   time.Time
	Victory     bool
	FinalPhase  string
	DeathCount  int
}

// LongTerm is the long-term lookup surface: two player read queries plus
// the mask debt load/save pair, the core's only write. The two player
// queries may fail with a TransientUnavailable domain error; callers must degrade gracefully rather than propagate it
// into the pipeline as a hard failure.
type LongTerm interface {
	PlayerSummary(ctx context.Context, playerID string) (PlayerSummary, error)
	RecentRuns(ctx context.Context, playerID string, k int) ([]RunSummary, error)

	// MaskDebt and SaveMaskDebt persist the mask selector's per-variant debt
	// ledger, the only per-process state the core carries across runs.
	MaskDebt(ctx context.Context) (map[string]float64, error)
	SaveMaskDebt(ctx context.Context, debt map[string]float64) error
}
