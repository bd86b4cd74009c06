package pipeline

import (
	"context"

	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
)

// act asks the model provider for a concrete tool plan once the decision
// node has committed to speak or intervene. A provider failure yields an
// empty plan, which the caller treats the same as a plan the protection
// validator rejected outright.
func (p *Pipeline) act(ctx context.Context, descriptor mask.Descriptor, synopsis memory.Synopsis, decision model.Decision) model.Plan {
	ctx, cancel := context.WithTimeout(ctx, p.ModelTimeout)
	defer cancel()

	resp, err := p.Provider.Act(ctx, model.Request{
		SystemPrompt: descriptor.SystemPrompt,
		UserPrompt:   synopsis.Text + "\nRationale: " + decision.Rationale,
	})
	if err != nil {
		return model.Plan{}
	}
	return model.Plan{Narrative: resp.Narrative, Steps: resp.Steps}
}
