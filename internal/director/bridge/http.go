package bridge

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPBridge is a GameBridge that dispatches commands as JSON POSTs to the
// game server's command endpoint and subscribes to its inbound event
// stream over a newline-delimited-JSON long poll. Standing up the MCP or
// gRPC transport the rest of this module's stack favors is out of scope
// here (see the package doc comment); this is the plainest thing that
// satisfies the interface against a real process.
type HTTPBridge struct {
	CommandURL string
	EventsURL  string
	Client     *http.Client
}

// NewHTTPBridge constructs an HTTPBridge with a sensible default client
// timeout for Dispatch; Subscribe sends its request through a copy of
// Client with the timeout cleared, so the stream runs until ctx ends.
func NewHTTPBridge(commandURL, eventsURL string) *HTTPBridge {
	return &HTTPBridge{
		CommandURL: commandURL,
		EventsURL:  eventsURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Dispatch posts cmd to CommandURL and decodes the JSON response as a
// Result.
func (b *HTTPBridge) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return Result{}, fmt.Errorf("marshal command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.CommandURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.Client.Do(req)
	if err != nil {
		return Result{CorrelationID: cmd.CorrelationID, Success: false, Error: err.Error()}, nil
	}
	defer resp.Body.Close()

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("decode dispatch response: %w", err)
	}
	return result, nil
}

// Subscribe opens a long-lived GET against EventsURL and decodes one
// InboundEvent per line of the response body, closing the returned channel
// when the stream ends or ctx is canceled.
func (b *HTTPBridge) Subscribe(ctx context.Context) (<-chan InboundEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.EventsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build subscribe request: %w", err)
	}

	client := *b.Client
	client.Timeout = 0
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan InboundEvent)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			var evt InboundEvent
			if err := json.Unmarshal(line, &evt); err != nil {
				continue
			}
			select {
			case out <- evt:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
