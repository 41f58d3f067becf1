// Package ai implements the chat collaborator: a minimal client for
// OpenAI-compatible chat-completions endpoints (Ollama, OpenAI, and
// compatible gateways), in both complete-response and streamed form.
//
// Every call is stateless and single-turn: one user message in, one response
// out. No conversation history is kept across calls.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/doeshing/clicra-go/internal/domain"
	"github.com/doeshing/clicra-go/internal/ports"
)

// Client talks to a chat-completions endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client. No client-level timeout is set: a streamed
// generation may legitimately run for minutes, and bounded waiting is the
// caller's decision via the context.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// Complete implements ports.ChatClient.
func (c *Client) Complete(ctx context.Context, model domain.ModelDefinition, prompt string) (string, error) {
	resp, err := c.post(ctx, model, prompt, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var decoded chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	return decoded.FirstMessage(), nil
}

// Stream implements ports.ChatClient. The returned sequence reads lazily
// from the response body and closes it once exhausted; it buffers at most one
// partial line between yields.
func (c *Client) Stream(ctx context.Context, model domain.ModelDefinition, prompt string) (domain.LineSeq, error) {
	resp, err := c.post(ctx, model, prompt, true)
	if err != nil {
		return nil, err
	}
	return assembleLines(newEventReader(resp.Body).next), nil
}

func (c *Client) post(ctx context.Context, model domain.ModelDefinition, prompt string, stream bool) (*http.Response, error) {
	payload := chatCompletionRequest{
		Model:     modelID(model),
		MaxTokens: model.MaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		Stream:    stream,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := model.Endpoint
	if endpoint == "" {
		endpoint = domain.DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := setAuthHeader(req, model); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, fmt.Errorf("chat endpoint %s: %s: %s", endpoint, resp.Status, bytes.TrimSpace(detail))
	}
	return resp, nil
}

func setAuthHeader(req *http.Request, model domain.ModelDefinition) error {
	if model.AuthEnvVar == "" {
		return nil
	}
	key := os.Getenv(model.AuthEnvVar)
	if key == "" {
		return fmt.Errorf("missing API key: set %s", model.AuthEnvVar)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	return nil
}

func modelID(model domain.ModelDefinition) string {
	if model.ModelID != "" {
		return model.ModelID
	}
	return model.Name
}

var _ ports.ChatClient = (*Client)(nil)
