package pipeline

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/eris/director/internal/director/bridge"
	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
	"github.com/eris/director/internal/director/tool"
	"github.com/eris/director/internal/synthetic/scenario"
	"github.com/eris/director/internal/synthetic/world"
)

type fakeProvider struct {
	decide model.DecideResponse
	act    model.ActResponse
	err    error
}

func (f *fakeProvider) Decide(ctx context.Context, req model.Request) (model.DecideResponse, error) {
	return f.decide, f.err
}

func (f *fakeProvider) Act(ctx context.Context, req model.Request) (model.ActResponse, error) {
	return f.act, f.err
}

type fakeLongTerm struct{}

func (fakeLongTerm) PlayerSummary(ctx context.Context, playerID string) (memory.PlayerSummary, error) {
	return memory.PlayerSummary{PlayerID: playerID}, nil
}
func (fakeLongTerm) RecentRuns(ctx context.Context, playerID string, k int) ([]memory.RunSummary, error) {
	return nil, nil
}
func (fakeLongTerm) MaskDebt(ctx context.Context) (map[string]float64, error) { return nil, nil }
func (fakeLongTerm) SaveMaskDebt(ctx context.Context, debt map[string]float64) error { return nil }

func newTestPipeline(provider model.Provider) *Pipeline {
	registry := tool.NewRegistry()
	executor := tool.NewExecutor(registry, scenario.EchoBridge{})
	selector := mask.NewSelector(mask.Descriptors(), 0.70, 0.05, 0.30, 1.0, rand.New(rand.NewSource(1)))

	p := New(registry, executor, selector, provider, fakeLongTerm{}, mask.VariantObserver, 0.70)
	p.MobKillPriority = event.PriorityLow
	p.HealthFloor = 1.0
	p.MaxMobsPerRun = 50
	p.MaxTNTPerRun = 10
	p.ContextTokens = 25000
	p.ChatBufferSize = 50
	p.ModelTimeout = 8 * time.Second
	p.ChatTimeout = 3 * time.Second
	return p
}

func seedWorld() world.State {
	return world.FromScenario([]world.PlayerInit{{ID: "alice", Role: "warrior"}}, [4]float64{50, 80, 120, 150})
}

func TestProcessSilentDecisionEmitsNoToolCalls(t *testing.T) {
	p := newTestPipeline(&fakeProvider{decide: model.DecideResponse{Intent: "silent"}})
	w := seedWorld()

	next, outcome, err := p.Process(context.Background(), event.Event{Kind: event.KindDamage, Subject: "alice", Payload: map[string]any{"amount": 2.0}}, w)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(outcome.ToolCalls) != 0 {
		t.Fatalf("expected no tool calls for a silent decision, got %d", len(outcome.ToolCalls))
	}
	if next.Players["alice"].Health != w.Players["alice"].Health-2 {
		t.Fatalf("expected the fracture-check node to still apply the damage event")
	}
}

func TestProcessInterveneDispatchesAcceptedTool(t *testing.T) {
	p := newTestPipeline(&fakeProvider{
		decide: model.DecideResponse{Intent: "intervene"},
		act: model.ActResponse{
			Narrative: "Eris intervenes",
			Steps:     []model.ToolInvocation{{Tool: "heal_player", Args: map[string]any{"target_player": "alice", "amount": 4.0}}},
		},
	})
	w := seedWorld()
	p2 := w.Players["alice"]
	p2.Health = 5
	w.Players["alice"] = p2

	next, outcome, err := p.Process(context.Background(), event.Event{Kind: event.KindDamage, Subject: "alice", Payload: map[string]any{"amount": 1.0}}, w)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(outcome.ToolCalls) != 1 || !outcome.ToolCalls[0].Succeeded {
		t.Fatalf("expected one successful tool call, got %+v", outcome.ToolCalls)
	}
	if next.Players["alice"].Health <= 4 {
		t.Fatalf("expected heal_player to raise alice's health, got %v", next.Players["alice"].Health)
	}
}

func TestProcessProtectionValidatorRejectsUnknownTarget(t *testing.T) {
	p := newTestPipeline(&fakeProvider{
		decide: model.DecideResponse{Intent: "intervene"},
		act: model.ActResponse{
			Steps: []model.ToolInvocation{{Tool: "damage_player", Args: map[string]any{"target_player": "bob", "amount": 5.0}}},
		},
	})
	w := seedWorld()

	_, outcome, err := p.Process(context.Background(), event.Event{Kind: event.KindStructure, Subject: "alice"}, w)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(outcome.ToolCalls) != 0 {
		t.Fatalf("expected the protection validator to drop a call against an unknown/dead player, got %+v", outcome.ToolCalls)
	}
}

func TestProcessChatFastPathRestrictsToolsToAllowedSet(t *testing.T) {
	p := newTestPipeline(&fakeProvider{
		act: model.ActResponse{
			Steps: []model.ToolInvocation{
				{Tool: "broadcast", Args: map[string]any{"message": "hi"}},
				{Tool: "spawn_tnt", Args: map[string]any{"target_player": "alice"}},
			},
		},
	})
	w := seedWorld()

	_, outcome, err := p.Process(context.Background(), event.Event{Kind: event.KindChat, Subject: "alice", Payload: map[string]any{"message": "hello"}}, w)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(outcome.ToolCalls) != 1 || outcome.ToolCalls[0].Tool != "broadcast" {
		t.Fatalf("expected only broadcast to survive the chat fast path, got %+v", outcome.ToolCalls)
	}
}

func TestProcessModelOutageCollapsesToSilent(t *testing.T) {
	p := newTestPipeline(&fakeProvider{err: errProviderDown{}})
	w := seedWorld()

	_, outcome, err := p.Process(context.Background(), event.Event{Kind: event.KindAdvancement, Subject: "alice", Payload: map[string]any{"advancement": "nether"}}, w)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if outcome.Decision.Intent != string(model.IntentSilent) {
		t.Fatalf("intent = %q, want silent", outcome.Decision.Intent)
	}
	if len(outcome.ToolCalls) != 0 {
		t.Fatal("expected no tool calls on a model outage")
	}
}

type errProviderDown struct{}

func (errProviderDown) Error() string { return "model unavailable" }

var _ bridge.GameBridge = scenario.EchoBridge{}
