package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// DefaultLocalBaseURL is the LM Studio default listen address.
const DefaultLocalBaseURL = "http://localhost:1234"

// LocalConfig holds configuration for an OpenAI-compatible local server.
type LocalConfig struct {
	// BaseURL points at the server root. Defaults to DefaultLocalBaseURL.
	BaseURL string

	// APIKey is sent as a bearer token when set. Most local servers
	// ignore it.
	APIKey string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Local calls an OpenAI-compatible chat completions endpoint, as served
// by LM Studio and llama.cpp.
type Local struct {
	apiKey    string
	baseURL   string
	transport *transport
}

// NewLocal creates a client for a locally hosted server.
func NewLocal(cfg LocalConfig) *Local {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultLocalBaseURL
	}
	return &Local{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		transport: newTransport(cfg.HTTPClient),
	}
}

// Capabilities implements Client. Local context windows are small, so
// prompts over budget go straight to the reduction pipeline.
func (l *Local) Capabilities() Capabilities {
	return Capabilities{
		ToleratesLargeContext: false,
		DefaultBudgets:        DefaultLocalBudgets,
	}
}

type chatRequest struct {
	Model           string        `json:"model"`
	Messages        []chatMessage `json:"messages"`
	MaxTokens       int           `json:"max_tokens,omitempty"`
	Temperature     *float64      `json:"temperature,omitempty"`
	ReasoningEffort string        `json:"reasoning_effort,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *chatError `json:"error,omitempty"`
}

type chatError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete implements Client with one chat completions call.
func (l *Local) Complete(ctx context.Context, req Request) (*Result, error) {
	body := chatRequest{
		Model:           req.Model,
		MaxTokens:       req.MaxTokens,
		Temperature:     req.Temperature,
		ReasoningEffort: req.ReasoningEffort,
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	headers := map[string]string{}
	if l.apiKey != "" {
		headers["Authorization"] = "Bearer " + l.apiKey
	}

	resp, err := l.transport.post(ctx, l.baseURL+"/v1/chat/completions", headers, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read local response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, l.parseError(resp, respBody)
	}

	var decoded chatResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("parse local response: %w", err)
	}
	// Some local servers report failures with a 200 status
	if decoded.Error != nil {
		return nil, l.wrapError(resp.StatusCode, decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("local response contained no choices")
	}

	choice := decoded.Choices[0]
	result := &Result{
		Text:       choice.Message.Content,
		StopReason: localStopReason(choice.FinishReason),
		ResponseID: decoded.ID,
	}
	if result.ResponseID == "" {
		result.ResponseID = requestID()
	}

	slog.Debug("local completion finished",
		"model", req.Model,
		"stop_reason", result.StopReason,
		"response_id", result.ResponseID,
		"chars", len(result.Text))

	return result, nil
}

func (l *Local) parseError(resp *http.Response, body []byte) error {
	var decoded chatResponse
	if json.Unmarshal(body, &decoded) == nil && decoded.Error != nil {
		return l.wrapError(resp.StatusCode, decoded.Error.Message)
	}

	msg := string(body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return l.wrapError(resp.StatusCode, msg)
}

func (l *Local) wrapError(status int, msg string) error {
	return &APIError{
		Provider:   "local",
		StatusCode: status,
		RequestID:  requestID(),
		Message:    msg,
	}
}

// localStopReason maps OpenAI-style finish reasons onto the shared enum.
func localStopReason(reason string) StopReason {
	switch reason {
	case "stop":
		return StopEnd
	case "length":
		return StopLength
	default:
		return StopUnknown
	}
}
