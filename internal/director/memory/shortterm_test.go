package memory

import (
	"strings"
	"testing"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/synthetic/world"
)

func TestBuildSynopsisIncludesAllSections(t *testing.T) {
	recent := []event.Event{{Kind: event.KindDeath, Subject: "alice", Priority: event.PriorityCritical}}
	chat := []event.Event{{Kind: event.KindChat, Subject: "bob", Payload: map[string]any{"message": "hello"}}}
	summaries := map[string]PlayerSummary{"alice": {PlayerID: "alice", Aura: 3}}

	synopsis := BuildSynopsis(world.Snapshot{}, recent, chat, summaries, 25000)

	if !strings.Contains(synopsis.Text, "alice") {
		t.Error("expected synopsis to mention alice")
	}
	if !strings.Contains(synopsis.Text, "hello") {
		t.Error("expected synopsis to include chat message")
	}
	if synopsis.Truncated {
		t.Error("expected no truncation within budget")
	}
}

func TestBuildSynopsisTruncatesToBudget(t *testing.T) {
	var recent []event.Event
	for i := 0; i < 1000; i++ {
		recent = append(recent, event.Event{Kind: event.KindMobKill, Subject: "grinder", Priority: event.PriorityLow})
	}

	synopsis := BuildSynopsis(world.Snapshot{}, recent, nil, nil, 10)

	if !synopsis.Truncated {
		t.Fatal("expected truncation with a tiny token budget")
	}
	if synopsis.TokenCount > 15 {
		t.Errorf("expected token count near budget, got %d", synopsis.TokenCount)
	}
}
