// Package bridge defines the director's boundary with the live game: an
// inbound stream of events and an outbound stream of tool-backed commands.
// The package holds interfaces only; the game server, its plugin command
// surface, and the streaming transport are out of scope per the core's
// purpose statement — callers supply a concrete GameBridge (live) or let
// the scenario runner drive the synthetic world directly instead.
package bridge

import (
	"context"
	"time"
)

// Command is the outbound wire shape: a tool registry name, its arguments,
// a correlation id for result matching, and the rationale recorded for
// audit. Parameter names are underscored on the wire; the executor never
// emits camelCase even though the plugin side accepts both.
type Command struct {
	Command       string
	Parameters    map[string]any
	CorrelationID string
	Reason        string
}

// Result reports what happened to a dispatched Command.
type Result struct {
	CorrelationID string
	Success       bool
	TimedOut      bool
	Error         string
}

// InboundEvent is the bridge's wire shape for the inbound event stream
// named in the external interfaces: a type tag, an event kind, and a
// free-form payload. Unknown kinds are logged and discarded by the
// caller, never forwarded into the queue.
type InboundEvent struct {
	Type      string
	EventKind string
	Data      map[string]any
	Received  time.Time
}

// GameBridge is the director's sole dependency on the live game. Dispatch
// is the only suspension point the executor owns; Subscribe hands back a
// channel the event processor's submit loop drains.
type GameBridge interface {
	Dispatch(ctx context.Context, cmd Command) (Result, error)
	Subscribe(ctx context.Context) (<-chan InboundEvent, error)
}
