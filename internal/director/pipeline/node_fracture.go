package pipeline

import (
	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/synthetic/world"
)

// fractureCheck folds the event's tension/fear contribution into the
// world and recomputes phase, delegating to the synthetic world's pure
// Apply function so the pipeline and the scenario runner always agree on
// the mechanics of a given event.
func (p *Pipeline) fractureCheck(w world.State, evt event.Event) (world.State, world.Diff) {
	return world.ApplyEvent(w, evt)
}
