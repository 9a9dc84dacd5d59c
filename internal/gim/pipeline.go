package gim

import (
	"context"
	"strings"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/logging"
	"github.com/hay-kot/gim/internal/core/prompt"
)

// ChatSender sends one chat request and returns the reply text.
type ChatSender interface {
	Send(ctx context.Context, endpoint, apiKey string, req chat.Request, verbose bool) (string, error)
}

// PromptSource supplies the system prompt for each stage.
type PromptSource interface {
	Load(kind prompt.Kind) string
}

// Summary is the first-stage output: one line per changed file. It can only
// be produced by Pipeline.Summarize, so Subject cannot run before it.
type Summary struct {
	text string
}

// Text returns the per-file summary.
func (s Summary) Text() string {
	return s.text
}

// Draft is a commit message ready to be committed.
type Draft struct {
	Subject string
	Body    string
}

// WithTitle uses title as the subject and the summary as the body, skipping
// the second stage.
func (s Summary) WithTitle(title string) Draft {
	return Draft{Subject: strings.TrimSpace(title), Body: s.text}
}

// Endpoint is a resolved chat endpoint with its credentials.
type Endpoint struct {
	URL         string
	APIKey      string
	Model       string
	Temperature float64
	Language    string
}

// Pipeline runs the two chat stages.
type Pipeline struct {
	client   ChatSender
	prompts  PromptSource
	endpoint Endpoint
	verbose  bool
}

// NewPipeline creates a pipeline for endpoint.
func NewPipeline(client ChatSender, prompts PromptSource, endpoint Endpoint, verbose bool) *Pipeline {
	return &Pipeline{client: client, prompts: prompts, endpoint: endpoint, verbose: verbose}
}

// Summarize asks for a one-line summary of every file in cs.
func (p *Pipeline) Summarize(ctx context.Context, cs ChangeSet) (Summary, error) {
	ctx = logging.WithStage(ctx, "summarize")
	text, err := p.send(ctx, "summarize changes", prompt.Diff, cs.Diff)
	if err != nil {
		return Summary{}, err
	}
	return Summary{text: text}, nil
}

// Subject condenses s into a single subject line. The summary becomes the
// commit body.
func (p *Pipeline) Subject(ctx context.Context, s Summary) (Draft, error) {
	ctx = logging.WithStage(ctx, "subject")
	text, err := p.send(ctx, "generate subject", prompt.Subject, s.text)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Subject: firstLine(text), Body: s.text}, nil
}

func (p *Pipeline) send(ctx context.Context, stage string, kind prompt.Kind, user string) (string, error) {
	system := prompt.Augment(p.prompts.Load(kind), p.endpoint.Language)
	req := chat.NewRequest(p.endpoint.Model, p.endpoint.Temperature, system, user)

	log := logging.Component("pipeline")
	log.Debug().Ctx(ctx).Int("user_bytes", len(user)).Msg("chat stage")

	text, err := p.client.Send(ctx, p.endpoint.URL, p.endpoint.APIKey, req, p.verbose)
	if err != nil {
		return "", &StageError{Stage: stage, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &StageError{Stage: stage, Err: ErrEmptyResponse}
	}
	return text, nil
}

// firstLine returns the first non-blank line of s with wrapping quotes and
// backticks removed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = unwrap(strings.TrimSpace(line))
		if line != "" {
			return line
		}
	}
	return ""
}

// unwrap strips matching pairs of quotes or backticks around s. A lone quote
// at either end is part of the text.
func unwrap(s string) string {
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first != last || !strings.ContainsRune("`\"'", rune(first)) {
			break
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
