package pipeline

import (
	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/director/mask"
)

// maskSelect advances the process-owned mask state by one event and
// returns the descriptor now active. Mask state is the only per-process
// persistence the pipeline carries across calls; it is never reset mid-run
// except by a mask switch resetting stability per the selector's policy.
func (p *Pipeline) maskSelect(evt event.Event) mask.Descriptor {
	next, descriptor := p.Masks.Select(p.maskState, evt)
	p.maskState = next
	return descriptor
}
