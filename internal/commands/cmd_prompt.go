package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/core/prompt"
	"github.com/hay-kot/gim/internal/core/styles"
	"github.com/hay-kot/gim/internal/printer"
)

type PromptCmd struct {
	flags *Flags
	path  bool
	reset bool
}

// NewPromptCmd creates a new prompt command
func NewPromptCmd(flags *Flags) *PromptCmd {
	return &PromptCmd{flags: flags}
}

// Register adds the prompt command to the application
func (cmd *PromptCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "prompt",
		Usage:     "Show, locate or reset the system prompts",
		UsageText: "gim prompt [--path] [--reset] [diff|subject]",
		Description: `Prints the system prompts used for the two chat calls.

The diff prompt summarizes each changed file; the subject prompt turns that
summary into a one-line subject. Both live as text files next to the config
file and can be edited freely. --reset restores the built-in text.

Without an argument every prompt is processed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "path",
				Usage:       "print the prompt file paths instead of their text",
				Destination: &cmd.path,
			},
			&cli.BoolFlag{
				Name:        "reset",
				Usage:       "overwrite the prompt files with the built-in text",
				Destination: &cmd.reset,
			},
		},
		ShellComplete: PromptKindCompleter(),
		Action:        cmd.run,
	})

	return app
}

func (cmd *PromptCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	store := prompt.NewStore(cmd.flags.Store.Dir())
	w := c.Root().Writer

	kinds, err := parseKinds(c.Args().Slice())
	if err != nil {
		return err
	}

	for _, kind := range kinds {
		switch {
		case cmd.reset:
			if err := store.Reset(kind); err != nil {
				return err
			}
			p.Success("Reset "+string(kind)+" prompt", store.Path(kind))
		case cmd.path:
			_, _ = fmt.Fprintln(w, store.Path(kind))
		default:
			p.Header(fmt.Sprintf("%s prompt (%s)", kind, store.Path(kind)))
			_, _ = fmt.Fprintln(w, render(store.Load(kind)))
		}
	}

	return nil
}

func parseKinds(args []string) ([]prompt.Kind, error) {
	if len(args) == 0 {
		return prompt.Kinds, nil
	}

	kinds := make([]prompt.Kind, 0, len(args))
	for _, arg := range args {
		kind := prompt.Kind(strings.ToLower(arg))
		if !slices.Contains(prompt.Kinds, kind) {
			return nil, fmt.Errorf("unknown prompt %q (want diff or subject)", arg)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// render formats markdown for the terminal. Piped output is left untouched.
func render(text string) string {
	if !isTerminal(os.Stdout) {
		return text
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return text
	}

	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}
