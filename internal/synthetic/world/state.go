// Package world implements the director's deterministic, language-model-
// free replica of the game's observable state: pure Apply(state, input)
// functions over an immutable prior state, generalizing the teacher's
// event-sourcing fold (Applier.Apply(state any, evt event.Event) (any,
// error)) to also fold tool calls.
package world

// Phase is an escalation level derived from the fracture metric.
// APOCALYPSE is terminal: once reached, a run never regresses to a lower
// phase.
type Phase string

const (
	PhaseNormal     Phase = "NORMAL"
	PhaseRising     Phase = "RISING"
	PhaseCritical   Phase = "CRITICAL"
	PhaseBreaking   Phase = "BREAKING"
	PhaseApocalypse Phase = "APOCALYPSE"
)

var phaseOrder = map[Phase]int{
	PhaseNormal:     0,
	PhaseRising:     1,
	PhaseCritical:   2,
	PhaseBreaking:   3,
	PhaseApocalypse: 4,
}

// GameState is the coarse run lifecycle.
type GameState string

const (
	GameStateIdle   GameState = "IDLE"
	GameStateActive GameState = "ACTIVE"
	GameStateEnding GameState = "ENDING"
	GameStateEnded  GameState = "ENDED"
)

// PlayerState is one player's observable condition plus director-local
// state (fear, aura) that only the synthetic world and pipeline see.
type PlayerState struct {
	ID         string
	Role       string
	Dimension  string
	X, Y, Z    float64
	Health     float64
	MaxHealth  float64
	Food       float64
	Saturation float64
	Alive      bool
	GameMode   string

	Advancements []string
	Inventory    map[string]int

	MobKills      int
	DamageTaken   float64
	EnteredNether int
	EnteredEnd    int

	Fear float64
	Aura int
}

// clone returns a deep copy so Apply never mutates its input.
func (p PlayerState) clone() PlayerState {
	out := p
	out.Advancements = append([]string(nil), p.Advancements...)
	out.Inventory = make(map[string]int, len(p.Inventory))
	for k, v := range p.Inventory {
		out.Inventory[k] = v
	}
	return out
}

// MobSpawn is one spawned hostile mob tracked by the synthetic world.
type MobSpawn struct {
	ID        string
	Type      string
	Target    string
	SpawnedAt int64
	Alive     bool
}

// State is the complete synthetic world snapshot. State is immutable by
// convention: every mutating operation returns a new State rather than
// modifying the receiver, which is what makes byte-identical replay
// possible.
type State struct {
	Players map[string]PlayerState

	GameState    GameState
	DragonAlive  bool
	DragonHealth float64
	Weather      string
	Mobs         map[string]MobSpawn

	Tension     float64
	GlobalChaos float64

	PhaseThresholds [4]float64

	TNTSpawnedThisRun int
	MobsSpawnedThisRun int

	terminalApocalypse bool
}

// NewState returns an empty world ready to receive from_scenario
// initialization.
func NewState(phaseThresholds [4]float64) State {
	return State{
		Players:         make(map[string]PlayerState),
		GameState:       GameStateIdle,
		DragonAlive:     true,
		DragonHealth:    200,
		Weather:         "clear",
		Mobs:            make(map[string]MobSpawn),
		PhaseThresholds: phaseThresholds,
	}
}

// Fracture is the aggregate tension metric: tension + sum of fears +
// global chaos.
func (s State) Fracture() float64 {
	total := s.Tension + s.GlobalChaos
	for _, p := range s.Players {
		total += p.Fear
	}
	return total
}

// Phase derives the escalation level from Fracture against the
// configured thresholds, latching at APOCALYPSE once reached within a
// run.
func (s State) Phase() Phase {
	if s.terminalApocalypse {
		return PhaseApocalypse
	}
	fracture := s.Fracture()
	switch {
	case fracture >= s.PhaseThresholds[3]:
		return PhaseApocalypse
	case fracture >= s.PhaseThresholds[2]:
		return PhaseBreaking
	case fracture >= s.PhaseThresholds[1]:
		return PhaseCritical
	case fracture >= s.PhaseThresholds[0]:
		return PhaseRising
	default:
		return PhaseNormal
	}
}

// clone returns a deep copy of the state, the starting point for every
// Apply function.
func (s State) clone() State {
	out := s
	out.Players = make(map[string]PlayerState, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p.clone()
	}
	out.Mobs = make(map[string]MobSpawn, len(s.Mobs))
	for id, m := range s.Mobs {
		out.Mobs[id] = m
	}
	return out
}

// clampHealth enforces 0 <= health <= maxHealth, latching alive/death on
// the floor.
func clampHealth(p *PlayerState) {
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	if p.Health <= 0 {
		p.Health = 0
		p.Alive = false
	}
}

// settlePhase recomputes terminalApocalypse on next after a mutation, never
// letting a run leave APOCALYPSE once reached, and reports whether the
// mutation crossed a phase threshold upward — any crossing (NORMAL up
// through APOCALYPSE), not only the terminal one.
func settlePhase(prior State, next *State) (triggeredPhaseChange bool) {
	beforeRank := phaseRank(prior.Phase())
	if next.Phase() == PhaseApocalypse {
		next.terminalApocalypse = true
	}
	afterRank := phaseRank(next.Phase())
	return afterRank > beforeRank
}

// phaseRank reports the ordinal rank of a phase, used by callers that need
// to detect an upward phase crossing without relying on terminal latching.
func phaseRank(p Phase) int {
	return phaseOrder[p]
}
