// Package model abstracts the language-model provider the decision and
// agentic action nodes call into: a request/response call with a text
// system prompt, a text user prompt, and a structured output schema.
package model

import "context"

// Intent is the decision node's coarse classification of what to do with
// an event.
type Intent string

const (
	IntentSilent    Intent = "silent"
	IntentSpeak     Intent = "speak"
	IntentIntervene Intent = "intervene"
)

// Decision is the structured record the Decision Node produces.
type Decision struct {
	Intent     Intent
	Targets    []string
	Escalation float64
	Rationale  string
}

// ToolInvocation is one step of an agentic action Plan.
type ToolInvocation struct {
	Tool string
	Args map[string]any
}

// Plan is the agentic action node's output: a narrative plus an ordered
// list of tool invocations.
type Plan struct {
	Narrative string
	Steps     []ToolInvocation
}

// Request is what the pipeline sends to a Provider: the masked system
// prompt, the synopsis as the user prompt, and generation parameters.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
}

// DecideResponse is a Provider's raw answer to a decision request, decoded
// into the structured Decision shape by the caller.
type DecideResponse struct {
	Intent     string
	Targets    []string
	Escalation float64
	Rationale  string
}

// ActResponse is a Provider's raw answer to an agentic action request.
type ActResponse struct {
	Narrative string
	Steps     []ToolInvocation
}

// Provider is the director's sole dependency on a language-model vendor.
// Both calls may fail with Unavailable or Timeout; the pipeline's decision
// and agentic action nodes collapse to silent on either.
type Provider interface {
	Decide(ctx context.Context, req Request) (DecideResponse, error)
	Act(ctx context.Context, req Request) (ActResponse, error)
}
