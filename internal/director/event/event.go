// Package event defines the director's inbound observation envelope and the
// debounced priority queue that smooths it into a tractable decision stream.
package event

import "time"

// Kind identifies the semantic category of an observation. Kind names are
// part of the inbound wire contract; the bridge discards unknown kinds
// rather than forwarding them into the queue.
type Kind string

const (
	KindAdvancement Kind = "advancement"
	KindDamage      Kind = "damage"
	KindInventory   Kind = "inventory"
	KindDimension   Kind = "dimension"
	KindChat        Kind = "chat"
	KindDeath       Kind = "death"
	KindDragonKill  Kind = "dragon_kill"
	KindMobKill     Kind = "mob_kill"
	KindStructure   Kind = "structure"
	KindHealth      Kind = "health"
)

// Priority is a discrete ordered escalation level assigned at submit time
// and re-confirmed by the pipeline's classify node.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// ParsePriority parses a configuration string into a Priority, defaulting to
// LOW for anything unrecognized.
func ParsePriority(s string) Priority {
	switch s {
	case "CRITICAL":
		return PriorityCritical
	case "HIGH":
		return PriorityHigh
	case "MEDIUM":
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// String renders the priority for logs and traces.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "CRITICAL"
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Event is an immutable observation about the game world. Events are never
// mutated after enqueue; the pipeline carries derived state alongside the
// event rather than writing back into it.
type Event struct {
	Kind        Kind
	Subject     string // player identity, empty when not player-scoped
	Payload     map[string]any
	ArrivalTime time.Time
	Priority    Priority
}

// DebounceClass groups event kinds that share a minimum re-admission
// interval. Chat has no class: it is always eligible (the fast path).
type DebounceClass string

const (
	DebounceClassState     DebounceClass = "state"
	DebounceClassDamage    DebounceClass = "damage"
	DebounceClassMilestone DebounceClass = "milestone"
)

// debounceClassOf maps an event kind to the debounce class that gates its
// re-admission. Kinds absent from this mapping (chat) bypass debouncing
// entirely.
func debounceClassOf(kind Kind) (DebounceClass, bool) {
	switch kind {
	case KindHealth, KindInventory:
		return DebounceClassState, true
	case KindDamage:
		return DebounceClassDamage, true
	case KindAdvancement, KindDimension, KindStructure:
		return DebounceClassMilestone, true
	case KindDeath, KindDragonKill, KindMobKill:
		return DebounceClassMilestone, true
	case KindChat:
		return "", false
	default:
		return "", false
	}
}
