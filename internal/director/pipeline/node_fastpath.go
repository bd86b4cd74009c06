package pipeline

import (
	"context"

	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
)

// fastPathAct is the chat fast path's narrower call into the agentic
// action node: a shortened prompt, the chat timeout rather than the model
// timeout, and a plan the caller restricts to broadcast/message_player
// regardless of what the provider proposes.
func (p *Pipeline) fastPathAct(ctx context.Context, descriptor mask.Descriptor, synopsis memory.Synopsis) model.Plan {
	ctx, cancel := context.WithTimeout(ctx, p.ChatTimeout)
	defer cancel()

	resp, err := p.Provider.Act(ctx, model.Request{
		SystemPrompt: descriptor.SystemPrompt,
		UserPrompt:   synopsis.Text,
	})
	if err != nil {
		return model.Plan{}
	}
	return model.Plan{Narrative: resp.Narrative, Steps: resp.Steps}
}
