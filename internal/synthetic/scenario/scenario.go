// Package scenario loads scripted runs for the synthetic world: an
// initial player list plus an ordered list of events, expressed in a
// small Lua DSL and replayed deterministically against the director
// pipeline.
package scenario

// Scenario is a structured record: name, initial player list with roles,
// ordered list of kind-specific events.
type Scenario struct {
	Name    string
	Players []Player
	Steps   []Step
}

// Player is one entry in a scenario's initial player list.
type Player struct {
	ID        string
	Role      string
	Dimension string
}

// Step is one scripted occurrence: an inbound event with kind-specific
// payload fields.
type Step struct {
	Kind    string
	Subject string
	Args    map[string]any
}
