package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/eris/director/internal/director/event"
	"github.com/eris/director/internal/director/mask"
	"github.com/eris/director/internal/director/memory"
	"github.com/eris/director/internal/director/model"
	"github.com/eris/director/internal/director/tool"
	"github.com/eris/director/internal/synthetic/scenario"
	"github.com/eris/director/internal/synthetic/world"
)

var tracer = otel.Tracer("github.com/eris/director/internal/director/pipeline")

// Pipeline is the director's linear decision pipeline, single-threaded
// and cooperative: it owns the mask state and the rolling event/chat
// windows, and borrows a read-only view of world state for each call.
// Suspension points are limited to the model provider, the long-term
// store, and tool dispatch; nothing interleaves within one event's run.
type Pipeline struct {
	Registry  *tool.Registry
	Executor  *tool.Executor
	Masks     *mask.Selector
	Provider  model.Provider
	LongTerm  memory.LongTerm

	MobKillPriority event.Priority
	HealthFloor     float64
	MaxMobsPerRun   int
	MaxTNTPerRun    int
	ContextTokens   int
	ChatBufferSize  int
	ModelTimeout    time.Duration
	ChatTimeout     time.Duration
	NodeDeadline    time.Duration

	maskState   mask.State
	recentEvents []event.Event
	chatBuffer   []event.Event
}

// New constructs a Pipeline with its mask state anchored on initialMask
// at the configured initial stability.
func New(registry *tool.Registry, executor *tool.Executor, masks *mask.Selector, provider model.Provider, longTerm memory.LongTerm, initialMask mask.Variant, initialStability float64) *Pipeline {
	return &Pipeline{
		Registry:  registry,
		Executor:  executor,
		Masks:     masks,
		Provider:  provider,
		LongTerm:  longTerm,
		maskState: mask.NewState(initialMask, initialStability),
	}
}

// LoadMaskDebt seeds the selector's debt ledger from the long-term store,
// the only per-process state the core carries across restarts. Call once
// at startup, before the first Process call.
func (p *Pipeline) LoadMaskDebt(ctx context.Context) error {
	if p.LongTerm == nil {
		return nil
	}
	debt, err := p.LongTerm.MaskDebt(ctx)
	if err != nil {
		return err
	}
	p.maskState.Debt = make(map[mask.Variant]float64, len(debt))
	for variant, value := range debt {
		p.maskState.Debt[mask.Variant(variant)] = value
	}
	return nil
}

// PersistMaskDebt writes the selector's current debt ledger back to the
// long-term store. Call on a clean shutdown.
func (p *Pipeline) PersistMaskDebt(ctx context.Context) error {
	if p.LongTerm == nil {
		return nil
	}
	debt := make(map[string]float64, len(p.maskState.Debt))
	for variant, value := range p.maskState.Debt {
		debt[string(variant)] = value
	}
	return p.LongTerm.SaveMaskDebt(ctx, debt)
}

// Process runs evt through the full pipeline against world snapshot w and
// returns the new world state plus everything worth recording on a trace.
// Process satisfies the scenario package's Pipeline interface so a
// scenario.Runner can drive it directly.
func (p *Pipeline) Process(ctx context.Context, evt event.Event, w world.State) (world.State, scenario.PipelineOutcome, error) {
	ctx, span := tracer.Start(ctx, "pipeline.Process", trace.WithAttributes(
		attribute.String("event.kind", string(evt.Kind)),
		attribute.String("event.subject", evt.Subject),
	))
	defer span.End()

	outcome := scenario.PipelineOutcome{Classified: p.classify(evt)}

	if evt.Kind == event.KindChat {
		return p.processChat(ctx, evt, w, outcome)
	}

	w, eventDiff := p.fractureCheck(w, evt)
	outcome.Diffs = append(outcome.Diffs, eventDiff)

	synopsis := p.enrich(ctx, evt, w)
	descriptor := p.maskSelect(evt)

	decision := p.decide(ctx, descriptor, synopsis)
	outcome.Decision = scenario.DecisionRecord{
		EventKind: string(evt.Kind),
		Mask:      string(descriptor.Variant),
		Intent:    string(decision.Intent),
	}

	if decision.Intent == model.IntentSilent {
		p.recordRecent(evt)
		return w, outcome, nil
	}

	plan := p.act(ctx, descriptor, synopsis, decision)
	accepted := p.protect(w, plan.Steps, false)
	w, results := p.execute(ctx, w, accepted, "agentic_action")
	for _, r := range results {
		outcome.Diffs = append(outcome.Diffs, r.Diff)
		outcome.ToolCalls = append(outcome.ToolCalls, scenario.ToolCallRecord{
			Tool:      r.Diff.Name,
			Succeeded: r.Diff.Succeeded,
			Reason:    r.Reason,
		})
	}

	p.recordRecent(evt)
	return w, outcome, nil
}

// processChat runs the chat fast path: enricher and fracture-check nodes
// are bypassed, the model call uses the tighter chat timeout, and only
// broadcast/message_player may be dispatched.
func (p *Pipeline) processChat(ctx context.Context, evt event.Event, w world.State, outcome scenario.PipelineOutcome) (world.State, scenario.PipelineOutcome, error) {
	msg, _ := evt.Payload["message"].(string)
	synopsis := memory.Synopsis{Text: evt.Subject + ": " + msg}
	descriptor := p.maskSelect(evt)

	plan := p.fastPathAct(ctx, descriptor, synopsis)
	outcome.Decision = scenario.DecisionRecord{
		EventKind: string(evt.Kind),
		Mask:      string(descriptor.Variant),
		Intent:    string(model.IntentSpeak),
	}

	accepted := p.protect(w, plan.Steps, true)
	w, results := p.execute(ctx, w, accepted, "chat_fast_path")
	for _, r := range results {
		outcome.Diffs = append(outcome.Diffs, r.Diff)
		outcome.ToolCalls = append(outcome.ToolCalls, scenario.ToolCallRecord{
			Tool:      r.Diff.Name,
			Succeeded: r.Diff.Succeeded,
			Reason:    r.Reason,
		})
	}

	p.recordRecent(evt)
	return w, outcome, nil
}
