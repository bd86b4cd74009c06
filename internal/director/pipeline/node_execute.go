package pipeline

import (
	"context"

	"github.com/eris/director/internal/director/model"
	"github.com/eris/director/internal/director/tool"
	"github.com/eris/director/internal/synthetic/world"
)

// toolResult bundles one dispatched call's world-level effect with the
// executor's bridge-level outcome, the unit the pipeline folds into a
// trace.
type toolResult struct {
	world.Diff
	CorrelationID string
	Reason        string
}

// execute validates each step against the registry and its declared schema
// before it ever touches world state, folds the now known-good step into
// the world via ApplyToolCall, and only dispatches through the executor
// (bridge-level correlation id + outbound command) once the world itself
// accepts the call. A call that fails schema validation never reaches
// world state, and a call the world rejects (business-rule invariant, e.g.
// healing a full-health target) never reaches the bridge: dropping a call
// must mean no effect, not mutate-then-report.
func (p *Pipeline) execute(ctx context.Context, w world.State, steps []model.ToolInvocation, origin string) (world.State, []toolResult) {
	results := make([]toolResult, 0, len(steps))
	for _, step := range steps {
		descriptor, ok := p.Registry.Lookup(step.Tool)
		if !ok {
			continue
		}

		call := tool.Call{Descriptor: descriptor, Args: step.Args, Origin: origin}
		if err := p.Executor.Validate(call); err != nil {
			results = append(results, toolResult{
				Diff:   world.Diff{Source: world.SourceToolCall, Name: descriptor.Name()},
				Reason: err.Error(),
			})
			continue
		}

		next, diff := world.ApplyToolCall(w, descriptor, step.Args)
		if !diff.Succeeded {
			results = append(results, toolResult{Diff: diff, Reason: diff.Reason})
			continue
		}
		w = next

		outcome, err := p.Executor.Execute(ctx, call)
		reason := diff.Reason
		if err != nil {
			reason = err.Error()
		} else if outcome.Error != "" {
			reason = outcome.Error
		}
		results = append(results, toolResult{Diff: diff, CorrelationID: outcome.CorrelationID, Reason: reason})
	}
	return w, results
}
