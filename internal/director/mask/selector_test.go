package mask

import (
	"math/rand"
	"testing"

	"github.com/eris/director/internal/director/event"
)

func newTestSelector(seed int64) *Selector {
	return NewSelector(Descriptors(), 0.70, 0.05, 0.30, 1.0, rand.New(rand.NewSource(seed)))
}

func TestSelectorStabilityDecaysAndFloors(t *testing.T) {
	// A single-mask registry makes every resample return the current mask,
	// so no switch resets stability and the decay runs down to the floor.
	var observerOnly []Descriptor
	for _, d := range Descriptors() {
		if d.Variant == VariantObserver {
			observerOnly = append(observerOnly, d)
		}
	}
	s := NewSelector(observerOnly, 0.70, 0.05, 0.30, 1.0, rand.New(rand.NewSource(1)))
	state := NewState(VariantObserver, 0.70)

	for i := 0; i < 100; i++ {
		state, _ = s.Select(state, event.Event{Kind: event.KindMobKill})
		if state.Stability < 0.30 {
			t.Fatalf("stability dropped below floor: %v", state.Stability)
		}
	}
	if state.Stability != 0.30 {
		t.Fatalf("expected stability to floor at 0.30 after 100 events, got %v", state.Stability)
	}
}

func TestSelectorSwitchResetsStability(t *testing.T) {
	s := NewSelector(Descriptors(), 0.70, 0.05, 0.30, 1.0, rand.New(rand.NewSource(42)))
	state := NewState(VariantObserver, 0.05) // near-zero so a resample is near-certain

	next, _ := s.Select(state, event.Event{Kind: event.KindDamage})
	if next.Current != state.Current {
		if next.Stability != 0.70 {
			t.Fatalf("expected stability reset to 0.70 on switch, got %v", next.Stability)
		}
		if next.EventsSinceSwitch != 0 {
			t.Fatalf("expected EventsSinceSwitch reset to 0, got %v", next.EventsSinceSwitch)
		}
	}
}

func TestSelectorAllMasksReachableOver10000Events(t *testing.T) {
	s := newTestSelector(7)
	state := NewState(VariantObserver, 0.70)

	seen := make(map[Variant]bool)
	kinds := []event.Kind{
		event.KindDamage, event.KindChat, event.KindDeath, event.KindDimension,
		event.KindMobKill, event.KindAdvancement, event.KindHealth,
	}

	for i := 0; i < 10000; i++ {
		kind := kinds[i%len(kinds)]
		state, _ = s.Select(state, event.Event{Kind: kind})
		seen[state.Current] = true
		if state.Stability < 0.30 || state.Stability > 0.70 {
			t.Fatalf("stability %v left [0.30, 0.70] at event %d", state.Stability, i)
		}
	}

	for _, d := range Descriptors() {
		if !seen[d.Variant] {
			t.Errorf("mask %v never appeared across 10000 events", d.Variant)
		}
	}
}

func TestSelectorDebtShiftsSelection(t *testing.T) {
	s := NewSelector(Descriptors(), 0.0, 0.0, 0.0, 5.0, rand.New(rand.NewSource(3)))
	state := NewState(VariantObserver, 0.0)
	state.Debt = map[Variant]float64{VariantChaosBringer: 100}

	counts := make(map[Variant]int)
	for i := 0; i < 200; i++ {
		state, _ = s.Select(state, event.Event{Kind: event.KindDamage})
		counts[state.Current]++
	}

	if counts[VariantChaosBringer] == 0 {
		t.Fatal("expected heavily-weighted debt mask to be selected at least once")
	}
}
