package scenario

import (
	"time"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/synthetic/world"
)

// ToolCallRecord is one tool invocation recorded in a RunTrace.
type ToolCallRecord struct {
	Tool      string
	Args      map[string]any
	Succeeded bool
	Reason    string
}

// DecisionRecord is one decision node outcome recorded in a RunTrace.
type DecisionRecord struct {
	EventKind string
	Mask      string
	Intent    string
}

// RunTrace is the output record for one scenario run: aggregate counts
// plus the full ordered diff/tool-call/decision history, serializable to
// a portable structured format.
type RunTrace struct {
	ScenarioName string
	RunID        string

	TotalEvents       int
	TotalToolCalls    int
	ErisInterventions int
	Victory           bool
	Deaths            int
	FinalPhase        world.Phase
	FinalFracture     float64
	Duration          time.Duration

	Diffs           []world.Diff
	ToolCalls       []ToolCallRecord
	DecisionRecords []DecisionRecord

	CriticalClassifications int
}

func (t *RunTrace) recordDiff(d world.Diff) {
	t.Diffs = append(t.Diffs, d)
	if d.CausedVictory {
		t.Victory = true
	}
	if d.CausedDeath {
		t.Deaths++
	}
}

func (t *RunTrace) recordToolCall(r ToolCallRecord) {
	t.ToolCalls = append(t.ToolCalls, r)
	t.TotalToolCalls++
}

func (t *RunTrace) recordDecision(d DecisionRecord) {
	t.DecisionRecords = append(t.DecisionRecords, d)
	if d.Intent != "" && d.Intent != "silent" {
		t.ErisInterventions++
	}
}

func (t *RunTrace) recordClassification(p event.Priority) {
	if p == event.PriorityCritical {
		t.CriticalClassifications++
	}
}
