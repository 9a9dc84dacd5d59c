package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/core/chat"
	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/core/styles"
	"github.com/hay-kot/gim/internal/printer"
)

type AICmd struct {
	flags    *Flags
	model    string
	apiKey   string
	url      string
	language string

	// form is swapped in tests.
	form func(ai *config.AIConfig) error
}

// NewAICmd creates a new ai command
func NewAICmd(flags *Flags) *AICmd {
	cmd := &AICmd{flags: flags}
	cmd.form = cmd.runForm
	return cmd
}

// Register adds the ai command to the application
func (cmd *AICmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ai",
		Usage:     "Configure the chat model and endpoint",
		UsageText: "gim ai [--model name] [--apikey key] [--url url] [--language lang]",
		Description: `Stores the chat completion settings in the config file.

The endpoint is picked from the model name for known providers (gpt, o1, o3,
o4, gemini, deepseek, qwen, moonshot and kimi models). Use --url for anything
else; a base URL such as https://host/v1 is completed to
https://host/v1/chat/completions.

Run without flags in a terminal to edit the settings interactively.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "model",
				Usage:       "model name sent with each request",
				Destination: &cmd.model,
			},
			&cli.StringFlag{
				Name:        "apikey",
				Aliases:     []string{"k"},
				Usage:       "API key sent as a bearer token",
				Destination: &cmd.apiKey,
			},
			&cli.StringFlag{
				Name:        "url",
				Aliases:     []string{"u"},
				Usage:       "chat completions endpoint or base URL",
				Destination: &cmd.url,
			},
			&cli.StringFlag{
				Name:        "language",
				Aliases:     []string{"l"},
				Usage:       "language of the generated commit message",
				Destination: &cmd.language,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AICmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	interactive := !c.IsSet("model") && !c.IsSet("apikey") && !c.IsSet("url") && !c.IsSet("language")
	if interactive && !isTerminal(os.Stdin) {
		return fmt.Errorf("no settings given; use --model, --apikey, --url or --language")
	}

	cfg, err := cmd.flags.Store.Update(func(cfg *config.Config) error {
		if interactive {
			return cmd.form(&cfg.AI)
		}

		if c.IsSet("model") {
			cfg.AI.Model = strings.TrimSpace(cmd.model)
		}
		if c.IsSet("apikey") {
			cfg.AI.APIKey = strings.TrimSpace(cmd.apiKey)
		}
		if c.IsSet("url") {
			cfg.AI.URL = strings.TrimSpace(cmd.url)
		}
		if c.IsSet("language") {
			cfg.AI.Language = strings.TrimSpace(cmd.language)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("save ai settings: %w", err)
	}
	cmd.flags.Config = cfg

	p.Success("AI settings saved", cmd.flags.Store.Path())
	p.Printf("  model:    %s", cfg.AI.Model)
	p.Printf("  apikey:   %s", cfg.AI.MaskedKey())
	p.Printf("  language: %s", cfg.AI.Language)

	url, err := chat.ResolveEndpoint(cfg.AI.Model, cfg.AI.URL)
	switch {
	case cfg.AI.Model == "":
	case err != nil:
		p.Warnf("No endpoint known for model %q; set one with --url", cfg.AI.Model)
	default:
		p.Printf("  endpoint: %s", url)
	}

	if cfg.AI.URL != "" && !chat.ValidURL(cfg.AI.URL) {
		p.Warnf("%q is not an http(s) URL and will be ignored", cfg.AI.URL)
	}

	return nil
}

func (cmd *AICmd) runForm(ai *config.AIConfig) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Model").
				Description("e.g. gpt-4o-mini, deepseek-chat, qwen-plus").
				Validate(requireValue("model")).
				Value(&ai.Model),
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Validate(requireValue("api key")).
				Value(&ai.APIKey),
			huh.NewInput().
				Title("Endpoint URL").
				Description("Leave empty to pick one from the model name").
				Validate(optionalURL).
				Value(&ai.URL),
			huh.NewInput().
				Title("Language").
				Validate(requireValue("language")).
				Value(&ai.Language),
		),
	).WithTheme(styles.FormTheme()).Run()
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func optionalURL(s string) error {
	if s = strings.TrimSpace(s); s != "" && !chat.ValidURL(s) {
		return fmt.Errorf("must be an http or https URL")
	}
	return nil
}
