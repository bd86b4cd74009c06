package event

import (
	"testing"
	"time"
)

func TestProcessorPriorityOrdering(t *testing.T) {
	p := NewProcessor(DebounceWindows{}, 0, 50, nil)
	base := time.Now()

	p.Submit(Event{Kind: KindChat, Priority: PriorityHigh, ArrivalTime: base})
	p.Submit(Event{Kind: KindMobKill, Priority: PriorityLow, ArrivalTime: base})
	p.Submit(Event{Kind: KindDeath, Priority: PriorityCritical, ArrivalTime: base})

	evt, ok := p.Next(base)
	if !ok || evt.Priority != PriorityCritical {
		t.Fatalf("expected CRITICAL first, got %+v ok=%v", evt, ok)
	}

	evt, ok = p.Next(base)
	if !ok || evt.Priority != PriorityHigh {
		t.Fatalf("expected HIGH second, got %+v ok=%v", evt, ok)
	}
}

func TestProcessorFirstArrivalWithinPriority(t *testing.T) {
	p := NewProcessor(DebounceWindows{}, 0, 50, nil)
	base := time.Now()

	p.Submit(Event{Kind: KindAdvancement, Subject: "first", Priority: PriorityMedium, ArrivalTime: base})
	p.Submit(Event{Kind: KindDimension, Subject: "second", Priority: PriorityMedium, ArrivalTime: base.Add(time.Second)})

	evt, ok := p.Next(base.Add(time.Hour))
	if !ok || evt.Subject != "first" {
		t.Fatalf("expected first-arrival event, got %+v", evt)
	}
}

func TestProcessorDebounceGatesReadmission(t *testing.T) {
	windows := DebounceWindows{Damage: 5 * time.Second}
	p := NewProcessor(windows, 0, 50, nil)
	base := time.Now()

	p.Submit(Event{Kind: KindDamage, Priority: PriorityMedium, ArrivalTime: base})
	evt, ok := p.Next(base)
	if !ok || evt.Kind != KindDamage {
		t.Fatalf("expected first damage event eligible, got %+v ok=%v", evt, ok)
	}

	p.Submit(Event{Kind: KindDamage, Priority: PriorityMedium, ArrivalTime: base.Add(2 * time.Second)})
	_, ok = p.Next(base.Add(2 * time.Second))
	if ok {
		t.Fatal("expected second damage event within debounce window to be ineligible")
	}

	p.Submit(Event{Kind: KindDamage, Priority: PriorityMedium, ArrivalTime: base.Add(6 * time.Second)})
	evt, ok = p.Next(base.Add(6 * time.Second))
	if !ok || evt.ArrivalTime != base.Add(6*time.Second) {
		t.Fatalf("expected event past debounce window eligible, got %+v ok=%v", evt, ok)
	}
}

func TestProcessorChatAlwaysEligible(t *testing.T) {
	windows := DebounceWindows{Damage: time.Hour}
	p := NewProcessor(windows, 0, 50, nil)
	base := time.Now()

	p.Submit(Event{Kind: KindChat, Priority: PriorityHigh, ArrivalTime: base})
	p.Submit(Event{Kind: KindChat, Priority: PriorityHigh, ArrivalTime: base.Add(time.Millisecond)})

	_, ok := p.Next(base)
	if !ok {
		t.Fatal("expected first chat event eligible")
	}
	_, ok = p.Next(base)
	if !ok {
		t.Fatal("expected second chat event eligible; chat bypasses debounce")
	}
}

func TestProcessorChatBufferRolls(t *testing.T) {
	p := NewProcessor(DebounceWindows{}, 0, 3, nil)
	base := time.Now()

	for i := 0; i < 5; i++ {
		p.Submit(Event{Kind: KindChat, Priority: PriorityHigh, ArrivalTime: base, Payload: map[string]any{"i": i}})
	}

	buf := p.ChatBuffer()
	if len(buf) != 3 {
		t.Fatalf("expected chat buffer capped at 3, got %d", len(buf))
	}
	if buf[len(buf)-1].Payload["i"] != 4 {
		t.Fatalf("expected newest message last, got %+v", buf[len(buf)-1])
	}
}

func TestProcessorOverflowEvictsLowestPriorityOldest(t *testing.T) {
	var evicted []Event
	p := NewProcessor(DebounceWindows{}, 2, 50, func(evt Event) {
		evicted = append(evicted, evt)
	})
	base := time.Now()

	p.Submit(Event{Kind: KindMobKill, Subject: "a", Priority: PriorityLow, ArrivalTime: base})
	p.Submit(Event{Kind: KindMobKill, Subject: "b", Priority: PriorityLow, ArrivalTime: base.Add(time.Second)})
	p.Submit(Event{Kind: KindDeath, Subject: "c", Priority: PriorityCritical, ArrivalTime: base.Add(2 * time.Second)})

	if len(evicted) != 1 {
		t.Fatalf("expected exactly one eviction, got %d", len(evicted))
	}
	if evicted[0].Subject != "a" {
		t.Fatalf("expected lowest-priority oldest (a) evicted, got %+v", evicted[0])
	}
	if p.Len() != 2 {
		t.Fatalf("expected queue length 2 after eviction, got %d", p.Len())
	}
}

func TestProcessorEmptyQueueNotEligible(t *testing.T) {
	p := NewProcessor(DebounceWindows{}, 0, 50, nil)
	_, ok := p.Next(time.Now())
	if ok {
		t.Fatal("expected no event from empty queue")
	}
}
