package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/eris/director/internal/errors"
)

// OpenAIConfig configures the raw-HTTP OpenAI adapter, mirroring the
// teacher's OpenAIInvokeConfig shape (responses URL + injectable client)
// rather than depending on an SDK.
type OpenAIConfig struct {
	ResponsesURL string
	APIKey       string
	Model        string
	HTTPClient   *http.Client
}

// openAIAdapter implements Provider against the OpenAI Responses API using
// net/http directly, the same pattern the teacher's invoke adapter uses
// for its own provider calls.
type openAIAdapter struct {
	cfg OpenAIConfig
}

// NewOpenAIAdapter constructs a Provider backed by the OpenAI Responses
// API. A zero-value HTTPClient and empty ResponsesURL are filled with
// sensible defaults.
func NewOpenAIAdapter(cfg OpenAIConfig) Provider {
	if cfg.ResponsesURL == "" {
		cfg.ResponsesURL = "https://api.openai.com/v1/responses"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &openAIAdapter{cfg: cfg}
}

type responsesRequest struct {
	Model       string  `json:"model"`
	Input       string  `json:"input"`
	Instructions string `json:"instructions,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type responsesResult struct {
	OutputText string `json:"output_text"`
}

func (a *openAIAdapter) invoke(ctx context.Context, req Request) (string, error) {
	if a.cfg.ResponsesURL == "" {
		return "", apperrors.New(apperrors.CodeSchemaViolation, "responses url is required")
	}
	if a.cfg.APIKey == "" {
		return "", apperrors.New(apperrors.CodeSchemaViolation, "credential secret is required")
	}
	if a.cfg.Model == "" {
		return "", apperrors.New(apperrors.CodeSchemaViolation, "model is required")
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		return "", apperrors.New(apperrors.CodeSchemaViolation, "input is required")
	}

	body, err := json.Marshal(responsesRequest{
		Model:        a.cfg.Model,
		Input:        req.UserPrompt,
		Instructions: req.SystemPrompt,
		Temperature:  req.Temperature,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnknown, "marshal responses request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.ResponsesURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnknown, "build responses request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.cfg.APIKey)

	resp, err := a.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeTransientUnavailable, "invoke request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeTransientUnavailable, "read responses body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.WithMetadata(
			apperrors.CodeTransientUnavailable,
			fmt.Sprintf("responses request failed: status %d", resp.StatusCode),
			map[string]string{"Dependency": "openai"},
		)
	}

	var result responsesResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", apperrors.Wrap(apperrors.CodeUnknown, "decode responses body", err)
	}
	if result.OutputText == "" {
		return "", apperrors.New(apperrors.CodeUnknown, "responses body missing output_text")
	}
	return result.OutputText, nil
}

// decideResponsePayload is the decision payload shape the director asks the
// model to emit.
type decideResponsePayload struct {
	Intent     string   `json:"intent"`
	Targets    []string `json:"targets"`
	Escalation float64  `json:"escalation"`
	Rationale  string   `json:"rationale"`
}

func (a *openAIAdapter) Decide(ctx context.Context, req Request) (DecideResponse, error) {
	text, err := a.invoke(ctx, req)
	if err != nil {
		return DecideResponse{}, err
	}
	var payload decideResponsePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return DecideResponse{}, apperrors.Wrap(apperrors.CodeSchemaViolation, "decode decision payload", err)
	}
	return DecideResponse{
		Intent:     payload.Intent,
		Targets:    payload.Targets,
		Escalation: payload.Escalation,
		Rationale:  payload.Rationale,
	}, nil
}

type actResponsePayload struct {
	Narrative string `json:"narrative"`
	Steps     []struct {
		Tool string         `json:"tool"`
		Args map[string]any `json:"args"`
	} `json:"steps"`
}

func (a *openAIAdapter) Act(ctx context.Context, req Request) (ActResponse, error) {
	text, err := a.invoke(ctx, req)
	if err != nil {
		return ActResponse{}, err
	}
	var payload actResponsePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return ActResponse{}, apperrors.Wrap(apperrors.CodeSchemaViolation, "decode action payload", err)
	}
	steps := make([]ToolInvocation, 0, len(payload.Steps))
	for _, s := range payload.Steps {
		steps = append(steps, ToolInvocation{Tool: s.Tool, Args: s.Args})
	}
	return ActResponse{Narrative: payload.Narrative, Steps: steps}, nil
}
