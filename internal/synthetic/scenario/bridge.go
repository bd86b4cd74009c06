package scenario

import (
	"context"

	"github.com/eris/director/internal/director/bridge"
)

// EchoBridge is a bridge.GameBridge that always reports success without
// touching any external system. The scenario runner folds tool calls
// into the synthetic world directly (see world.ApplyToolCall); EchoBridge
// exists only so the executor's schema validation and correlation-id
// generation still run the same code path they would in live mode.
type EchoBridge struct{}

// Dispatch always succeeds.
func (EchoBridge) Dispatch(ctx context.Context, cmd bridge.Command) (bridge.Result, error) {
	return bridge.Result{CorrelationID: cmd.CorrelationID, Success: true}, nil
}

// Subscribe returns a closed channel: the scenario runner drives events
// from the scripted step list, never from a live subscription.
func (EchoBridge) Subscribe(ctx context.Context) (<-chan bridge.InboundEvent, error) {
	ch := make(chan bridge.InboundEvent)
	close(ch)
	return ch, nil
}
