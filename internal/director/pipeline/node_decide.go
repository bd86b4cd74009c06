package pipeline

import (
	"context"

	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
)

// decide asks the model provider for an intent classification under the
// node's timeout budget. A Timeout or TransientUnavailable from the
// provider collapses the decision to silent rather than propagating, per
// the error propagation policy.
func (p *Pipeline) decide(ctx context.Context, descriptor mask.Descriptor, synopsis memory.Synopsis) model.Decision {
	ctx, cancel := context.WithTimeout(ctx, p.ModelTimeout)
	defer cancel()

	resp, err := p.Provider.Decide(ctx, model.Request{
		SystemPrompt: descriptor.SystemPrompt,
		UserPrompt:   synopsis.Text,
	})
	if err != nil {
		return model.Decision{Intent: model.IntentSilent, Rationale: "provider unavailable: " + err.Error()}
	}
	intent := model.Intent(resp.Intent)
	if intent != model.IntentSpeak && intent != model.IntentIntervene {
		intent = model.IntentSilent
	}
	return model.Decision{
		Intent:     intent,
		Targets:    resp.Targets,
		Escalation: resp.Escalation,
		Rationale:  resp.Rationale,
	}
}
