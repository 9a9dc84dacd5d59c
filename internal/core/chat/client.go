// Package chat talks to OpenAI-compatible chat-completions endpoints.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hay-kot/gim/internal/core/logging"
	"github.com/hay-kot/gim/pkg/logutils"
)

// Role values accepted in a Message.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// DefaultTemperature keeps commit messages close to deterministic.
const DefaultTemperature = 0.1

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ExtraBody carries vendor extensions understood by OpenAI-compatible proxies.
type ExtraBody struct {
	EnableThinking bool `json:"enable_thinking"`
}

// Request is the chat-completions request body.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
	ExtraBody   ExtraBody `json:"extra_body"`
}

// NewRequest builds a non-streaming request with the user message first,
// followed by the system message when system is not empty.
func NewRequest(model string, temperature float64, system, user string) Request {
	msgs := []Message{{Role: RoleUser, Content: user}}
	if system != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	return Request{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
	}
}

// Validate checks that the request has a model and only non-empty messages.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return errors.New("chat request: model is required")
	}
	if len(r.Messages) == 0 {
		return errors.New("chat request: at least one message is required")
	}
	for i, m := range r.Messages {
		if m.Role != RoleUser && m.Role != RoleSystem {
			return fmt.Errorf("chat request: message %d: unsupported role %q", i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("chat request: message %d (%s): content is empty", i, m.Role)
		}
	}
	return nil
}

type response struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client sends chat requests over HTTP.
type Client struct {
	http       *http.Client
	verboseOut io.Writer
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient;
// verbose output is written to verboseOut when a request asks for it.
func NewClient(httpClient *http.Client, verboseOut io.Writer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if verboseOut == nil {
		verboseOut = io.Discard
	}
	return &Client{http: httpClient, verboseOut: verboseOut}
}

// Send posts req to endpoint and returns the first choice's content.
func (c *Client) Send(ctx context.Context, endpoint, apiKey string, req Request, verbose bool) (string, error) {
	vlog := logutils.NewVerbose(verbose, c.verboseOut)
	log := logging.Component("chat")

	if err := req.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	vlog.Info().Msgf("POST %s (model %s)", endpoint, req.Model)
	log.Debug().Ctx(ctx).Str("endpoint", endpoint).Str("model", req.Model).Msg("sending chat request")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call chat endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		vlog.Info().Msgf("response status %d", resp.StatusCode)
		return "", &RequestFailedError{Status: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}
	vlog.Info().Msgf("response: %s", raw)

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &ResponseParseError{Err: err}
	}

	switch {
	case len(parsed.Choices) > 0:
		return parsed.Choices[0].Message.Content, nil
	case parsed.Error != nil:
		return "", &ProviderError{Message: parsed.Error.Message, Kind: parsed.Error.Type}
	default:
		return "", ErrUnknownResponse
	}
}
