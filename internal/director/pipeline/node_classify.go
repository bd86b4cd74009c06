package pipeline

import "github.com/eris/director/internal/director/event"

// classify re-confirms the priority the Event Processor already assigned
// at submit time. Both call sites share event.Classify so they can never
// disagree.
func (p *Pipeline) classify(evt event.Event) event.Priority {
	return event.Classify(evt.Kind, evt.Payload, p.MobKillPriority)
}
