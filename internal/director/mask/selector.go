package mask

import (
	"math"
	"math/rand"

	"github.com/eris/director/internal/director/event"
)

// State is the process-scoped mask state carried between events. Debt
// counters are the only per-process persistence the selector needs; callers
// are responsible for loading them from and saving them to long-term
// storage, never stashing them in package-level globals.
type State struct {
	Current           Variant
	Stability         float64
	EventsSinceSwitch int
	Debt              map[Variant]float64
}

// NewState returns an initial State anchored on an initial mask and
// stability, with a zeroed debt ledger.
func NewState(initial Variant, initialStability float64) State {
	return State{
		Current:   initial,
		Stability: initialStability,
		Debt:      make(map[Variant]float64),
	}
}

// Selector applies the resample-or-retain policy on every event: with
// probability 1-stability, resample a new mask from a softmax over
// affinity+debt; otherwise retain the current mask. Stability decays
// linearly on every event and floors at minStability; a switch resets it.
type Selector struct {
	descriptors      []Descriptor
	byVariant        map[Variant]Descriptor
	initialStability float64
	decayStep        float64
	minStability     float64
	debtWeight       float64
	rng              *rand.Rand
}

// NewSelector constructs a Selector over the given descriptor set. rng must
// be seeded explicitly by the caller (from the scenario or process seed) so
// that replays stay deterministic; Selector never reaches for an unseeded
// global source.
func NewSelector(descriptors []Descriptor, initialStability, decayStep, minStability, debtWeight float64, rng *rand.Rand) *Selector {
	byVariant := make(map[Variant]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byVariant[d.Variant] = d
	}
	return &Selector{
		descriptors:      descriptors,
		byVariant:        byVariant,
		initialStability: initialStability,
		decayStep:        decayStep,
		minStability:     minStability,
		debtWeight:       debtWeight,
		rng:              rng,
	}
}

// Select advances state by one event: decays stability, possibly resamples
// the mask from a softmax over affinity(mask, event) + debtWeight*debt(mask),
// and returns the resulting state plus the descriptor now active.
func (s *Selector) Select(state State, evt event.Event) (State, Descriptor) {
	next := state
	next.Stability = math.Max(s.minStability, state.Stability-s.decayStep)
	next.EventsSinceSwitch = state.EventsSinceSwitch + 1
	if next.Debt == nil {
		next.Debt = make(map[Variant]float64)
	}

	resampleProb := 1 - state.Stability
	if s.rng.Float64() < resampleProb {
		chosen := s.resample(evt, state.Debt)
		if chosen != state.Current {
			next.Current = chosen
			next.Stability = s.initialStability
			next.EventsSinceSwitch = 0
		}
	}

	return next, s.byVariant[next.Current]
}

// resample draws a variant from softmax(affinity(mask, event) +
// debtWeight*debt(mask)), using the standard max-subtraction for numerical
// stability.
func (s *Selector) resample(evt event.Event, debt map[Variant]float64) Variant {
	scores := make([]float64, len(s.descriptors))
	maxScore := math.Inf(-1)
	for i, d := range s.descriptors {
		score := d.Affinity(evt.Kind) + s.debtWeight*debt[d.Variant]
		scores[i] = score
		if score > maxScore {
			maxScore = score
		}
	}

	weights := make([]float64, len(scores))
	sum := 0.0
	for i, sc := range scores {
		w := math.Exp(sc - maxScore)
		weights[i] = w
		sum += w
	}

	draw := s.rng.Float64() * sum
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if draw <= cumulative {
			return s.descriptors[i].Variant
		}
	}
	return s.descriptors[len(s.descriptors)-1].Variant
}
