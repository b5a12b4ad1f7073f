package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Anthropic API defaults.
const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

// AnthropicConfig holds configuration for the hosted Anthropic client.
type AnthropicConfig struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// BaseURL overrides the API endpoint, for proxies and tests.
	BaseURL string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
}

// Anthropic calls the hosted Anthropic Messages API.
type Anthropic struct {
	apiKey    string
	baseURL   string
	transport *transport
}

// NewAnthropic creates a hosted Anthropic client.
func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}
	return &Anthropic{
		apiKey:    cfg.APIKey,
		baseURL:   baseURL,
		transport: newTransport(cfg.HTTPClient),
	}
}

// Capabilities implements Client. The hosted API takes very large prompts,
// so the direct path is always worth attempting.
func (a *Anthropic) Capabilities() Capabilities {
	return Capabilities{
		ToleratesLargeContext: true,
		DefaultBudgets:        DefaultHostedBudgets,
	}
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature *float64           `json:"temperature,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID         string `json:"id"`
	StopReason string `json:"stop_reason"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements Client with one Messages API call.
func (a *Anthropic) Complete(ctx context.Context, req Request) (*Result, error) {
	body := anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	for _, m := range req.Messages {
		// The Messages API takes the system prompt as a top-level field.
		if m.Role == RoleSystem {
			if body.System != "" {
				body.System += "\n\n"
			}
			body.System += m.Content
			continue
		}
		body.Messages = append(body.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := a.transport.post(ctx, a.baseURL+"/v1/messages", headers, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read anthropic response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, a.parseError(resp, respBody)
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("parse anthropic response: %w", err)
	}

	var text string
	for _, block := range decoded.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	result := &Result{
		Text:       text,
		StopReason: anthropicStopReason(decoded.StopReason),
		ResponseID: decoded.ID,
	}
	if result.ResponseID == "" {
		result.ResponseID = requestID()
	}

	slog.Debug("anthropic completion finished",
		"model", req.Model,
		"stop_reason", result.StopReason,
		"response_id", result.ResponseID,
		"chars", len(result.Text))

	return result, nil
}

func (a *Anthropic) parseError(resp *http.Response, body []byte) error {
	apiErr := &APIError{
		Provider:   "anthropic",
		StatusCode: resp.StatusCode,
		RequestID:  resp.Header.Get("request-id"),
	}

	var decoded anthropicErrorBody
	if json.Unmarshal(body, &decoded) == nil && decoded.Error.Message != "" {
		apiErr.Message = decoded.Error.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.RequestID == "" {
		apiErr.RequestID = requestID()
	}
	return apiErr
}

// anthropicStopReason maps Messages API stop reasons onto the shared enum.
func anthropicStopReason(reason string) StopReason {
	switch reason {
	case "end_turn", "stop_sequence":
		return StopEnd
	case "max_tokens":
		return StopLength
	default:
		return StopUnknown
	}
}
