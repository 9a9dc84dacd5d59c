// Package gim generates commit messages from staged changes and commits them.
//
// A run moves through fixed stages: the passive update reminder, change
// collection, the summarize chat call, the subject chat call and finally
// git commit. Any stage failure stops the run; side effects of earlier
// stages, such as files staged by auto-add, are kept.
package gim

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/core/git"
	"github.com/hay-kot/gim/internal/core/logging"
	"github.com/hay-kot/gim/pkg/logutils"
	"github.com/hay-kot/gim/pkg/randid"
)

// Options are the per-invocation switches of GenerateCommit.
type Options struct {
	// Title, when set, is used as the subject and the subject stage is skipped.
	Title   string
	AutoAdd bool
	Amend   bool
	Verbose bool
}

// Notifier runs the passive update reminder.
type Notifier interface {
	Run(ctx context.Context) bool
}

// Waiter runs fn while showing progress for title.
type Waiter func(ctx context.Context, title string, fn func(context.Context) error) error

func runDirect(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

// Deps are the collaborators of a Generator.
type Deps struct {
	Config   *config.Config
	Git      git.Git
	Chat     ChatSender
	Prompts  PromptSource
	Reminder Notifier // optional
	Wait     Waiter   // optional
	Dir      string
	Out      io.Writer
	ErrOut   io.Writer
}

// Generator drives one commit generation run.
type Generator struct {
	deps Deps
}

// NewGenerator creates a Generator.
func NewGenerator(deps Deps) *Generator {
	if deps.Wait == nil {
		deps.Wait = runDirect
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	if deps.ErrOut == nil {
		deps.ErrOut = io.Discard
	}
	return &Generator{deps: deps}
}

// GenerateCommit collects changes, drafts a message and commits. The
// returned Outcome is set even when err is not nil.
func (g *Generator) GenerateCommit(ctx context.Context, opts Options) (Outcome, error) {
	ctx = logging.WithRunID(ctx, randid.Generate(8))
	log := logging.Component("generator")
	vlog := logutils.NewVerbose(opts.Verbose, g.deps.ErrOut)
	cfg := g.deps.Config

	if g.deps.Reminder != nil {
		g.deps.Reminder.Run(ctx)
	}

	endpoint, err := g.resolve(vlog)
	if err != nil {
		return OutcomeOf(err), err
	}

	collector := NewCollector(g.deps.Git, g.deps.Dir, cfg.User.Ignore, g.deps.Out, vlog)
	cs, err := collector.Collect(ctx, opts.AutoAdd, opts.Amend, cfg.User.LinesLimit)
	if err != nil {
		return OutcomeOf(err), err
	}
	if cs.Empty() {
		_, _ = fmt.Fprintln(g.deps.Out, "No staged changes to commit (use -a to stage all changes)")
		return SkippedNoChanges, nil
	}
	vlog.Info().Msgf("collected %d files, %d lines", len(cs.Files), cs.Lines)

	pipeline := NewPipeline(g.deps.Chat, g.deps.Prompts, endpoint, opts.Verbose)

	var summary Summary
	err = g.deps.Wait(ctx, "Summarizing changes...", func(ctx context.Context) error {
		var err error
		summary, err = pipeline.Summarize(ctx, cs)
		return err
	})
	if err != nil {
		return OutcomeOf(err), err
	}

	title := strings.TrimSpace(opts.Title)
	draft := summary.WithTitle(title)
	if title == "" {
		err = g.deps.Wait(ctx, "Writing subject...", func(ctx context.Context) error {
			var err error
			draft, err = pipeline.Subject(ctx, summary)
			return err
		})
		if err != nil {
			return OutcomeOf(err), err
		}
	}
	vlog.Info().Msgf("subject: %s", draft.Subject)

	committer := NewCommitter(g.deps.Git, g.deps.Dir, g.deps.Out)
	if err := committer.Commit(ctx, CommitSpec{Subject: draft.Subject, Body: draft.Body, Amend: opts.Amend}); err != nil {
		return OutcomeOf(err), err
	}

	log.Info().Ctx(ctx).Bool("amend", opts.Amend).Int("files", len(cs.Files)).Msg("commit created")
	return Committed, nil
}

// resolve validates the AI settings and finds the chat endpoint.
func (g *Generator) resolve(vlog zerolog.Logger) (Endpoint, error) {
	ai := g.deps.Config.AI
	if err := g.deps.Config.ValidateAI(); err != nil {
		return Endpoint{}, err
	}

	if ai.URL != "" && !chat.ValidURL(ai.URL) {
		vlog.Info().Msgf("ignoring invalid ai.url %q", ai.URL)
	}

	url, err := chat.ResolveEndpoint(ai.Model, ai.URL)
	if err != nil {
		return Endpoint{}, fmt.Errorf("model %q: %w", ai.Model, err)
	}
	vlog.Info().Msgf("using endpoint %s", url)

	return Endpoint{
		URL:         url,
		APIKey:      ai.APIKey,
		Model:       ai.Model,
		Temperature: ai.TemperatureValue(),
		Language:    ai.Language,
	}, nil
}
