package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/synthetic/world"
)

// PipelineOutcome is everything one event's pipeline run contributes to a
// RunTrace: the synthetic-world diffs of the event and of each tool call,
// the tool calls themselves, the decision record, and the priority the
// classify node confirmed.
type PipelineOutcome struct {
	Diffs      []world.Diff
	ToolCalls  []ToolCallRecord
	Decision   DecisionRecord
	Classified event.Priority
}

// Pipeline is the director pipeline's contract from the scenario runner's
// perspective: fold one event against the current world state and report
// what happened. Test mode is strictly serial — the runner awaits each
// call to completion before dequeuing the next event.
type Pipeline interface {
	Process(ctx context.Context, evt event.Event, w world.State) (world.State, PipelineOutcome, error)
}

// Runner is the closed-loop harness: it drives a scripted scenario
// through the synthetic world and a pipeline, producing a RunTrace.
type Runner struct {
	Pipeline        Pipeline
	PhaseThresholds [4]float64
}

// NewRunner constructs a Runner over the given pipeline and phase
// thresholds.
func NewRunner(pipeline Pipeline, phaseThresholds [4]float64) *Runner {
	return &Runner{Pipeline: pipeline, PhaseThresholds: phaseThresholds}
}

// Run replays scene step by step, awaiting each pipeline invocation to
// completion before advancing, and returns the resulting RunTrace.
func (r *Runner) Run(ctx context.Context, scene *Scenario, runID string) (*RunTrace, error) {
	players := make([]world.PlayerInit, 0, len(scene.Players))
	for _, p := range scene.Players {
		players = append(players, world.PlayerInit{ID: p.ID, Role: p.Role, Dimension: p.Dimension})
	}
	state := world.FromScenario(players, r.PhaseThresholds)

	trace := &RunTrace{ScenarioName: scene.Name, RunID: runID}
	start := time.Now()

	for _, step := range scene.Steps {
		evt := event.Event{
			Kind:    event.Kind(step.Kind),
			Subject: step.Subject,
			Payload: step.Args,
		}

		trace.TotalEvents++
		next, outcome, err := r.Pipeline.Process(ctx, evt, state)
		if err != nil {
			return nil, fmt.Errorf("process step %d (%s): %w", trace.TotalEvents, step.Kind, err)
		}
		state = next

		trace.recordClassification(outcome.Classified)
		for _, d := range outcome.Diffs {
			trace.recordDiff(d)
		}
		for _, c := range outcome.ToolCalls {
			trace.recordToolCall(c)
		}
		if outcome.Decision.EventKind != "" {
			trace.recordDecision(outcome.Decision)
		}
	}

	trace.Duration = time.Since(start)
	trace.FinalPhase = state.Phase()
	trace.FinalFracture = state.Fracture()
	return trace, nil
}
