package pipeline

import (
	"context"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/synthetic/world"
)

// enrich assembles the token-budgeted synopsis the decision and agentic
// action nodes read: the world's to_snapshot() projection, recent events,
// the rolling chat buffer, and the event's subject's long-term summary,
// degrading gracefully when the long-term store is unavailable or the
// lookup exceeds NodeDeadline.
func (p *Pipeline) enrich(ctx context.Context, evt event.Event, w world.State) memory.Synopsis {
	summaries := make(map[string]memory.PlayerSummary)
	if p.LongTerm != nil && evt.Subject != "" {
		lookupCtx := ctx
		if p.NodeDeadline > 0 {
			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(ctx, p.NodeDeadline)
			defer cancel()
		}
		if summary, err := p.LongTerm.PlayerSummary(lookupCtx, evt.Subject); err == nil {
			summaries[evt.Subject] = summary
		}
	}
	return memory.BuildSynopsis(w.ToSnapshot(), p.recentEvents, p.chatBuffer, summaries, p.ContextTokens)
}

// recordRecent appends evt to the bounded recent-events window and, for
// chat, the rolling chat buffer capped at ChatBufferSize.
func (p *Pipeline) recordRecent(evt event.Event) {
	const recentWindow = 50
	p.recentEvents = append(p.recentEvents, evt)
	if len(p.recentEvents) > recentWindow {
		p.recentEvents = p.recentEvents[len(p.recentEvents)-recentWindow:]
	}

	if evt.Kind != event.KindChat {
		return
	}
	p.chatBuffer = append(p.chatBuffer, evt)
	if limit := p.ChatBufferSize; limit > 0 && len(p.chatBuffer) > limit {
		p.chatBuffer = p.chatBuffer[len(p.chatBuffer)-limit:]
	}
}
