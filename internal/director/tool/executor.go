package tool

import (
	"context"
	"strings"

	"github.com/eris/director/internal/director/bridge"
	apperrors "github.com/eris/director/internal/errors"
	"github.com/eris/director/internal/platform/id"
)

// Executor dispatches validated tool calls through a GameBridge, attaching
// a fresh correlation id to every outbound command.
type Executor struct {
	registry *Registry
	bridge   bridge.GameBridge
}

// NewExecutor constructs an Executor bound to registry and bridge.
func NewExecutor(registry *Registry, gameBridge bridge.GameBridge) *Executor {
	return &Executor{registry: registry, bridge: gameBridge}
}

// Call is one resolved invocation ready for dispatch: the declared
// descriptor, its arguments, and the pipeline node that originated it.
type Call struct {
	Descriptor Descriptor
	Args       map[string]any
	Origin     string
	Reason     string
}

// Outcome records what happened to a dispatched call, attached to the
// WorldDiff the caller builds for this tool call.
type Outcome struct {
	CorrelationID string
	Success       bool
	TimedOut      bool
	Error         string
}

// Validate checks call.Args against the declared schema without
// dispatching anything. Callers that need to gate a world mutation on
// schema validity (the synthetic world must never see an invalid call)
// should call Validate before touching world state, then Execute once the
// call is known-good.
func (e *Executor) Validate(call Call) error {
	if err := call.Descriptor.Schema.Validate(call.Args); err != nil {
		return apperrors.WithMetadata(
			apperrors.CodeSchemaViolation,
			err.Error(),
			map[string]string{"Tool": call.Descriptor.Name(), "Field": failingField(call.Descriptor.Schema, call.Args)},
		)
	}
	return nil
}

// Execute validates call.Args against the declared schema, then dispatches
// through the bridge with a freshly generated correlation id. A schema
// violation never reaches the bridge.
func (e *Executor) Execute(ctx context.Context, call Call) (Outcome, error) {
	if err := e.Validate(call); err != nil {
		return Outcome{}, err
	}

	correlationID, err := id.NewID()
	if err != nil {
		return Outcome{}, apperrors.Wrap(apperrors.CodeUnknown, "generate correlation id", err)
	}

	cmd := bridge.Command{
		Command:       call.Descriptor.Name(),
		Parameters:    underscoredParameters(call.Args),
		CorrelationID: correlationID,
		Reason:        call.Reason,
	}

	result, err := e.bridge.Dispatch(ctx, cmd)
	if err != nil {
		return Outcome{CorrelationID: correlationID, Success: false, Error: err.Error()}, apperrors.Wrap(
			apperrors.CodeTransientUnavailable, "game bridge dispatch failed", err,
		)
	}

	return Outcome{
		CorrelationID: correlationID,
		Success:       result.Success,
		TimedOut:      result.TimedOut,
		Error:         result.Error,
	}, nil
}

// underscoredParameters normalizes argument keys to snake_case on the wire;
// the plugin side accepts camelCase too, but the executor always emits the
// underscored form.
func underscoredParameters(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[toSnakeCase(k)] = v
	}
	return out
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func failingField(s Schema, args map[string]any) string {
	for _, f := range s.Fields {
		if (Schema{Fields: []Field{f}}).Validate(args) != nil {
			return f.Name
		}
	}
	return ""
}
