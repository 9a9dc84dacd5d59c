package commands

import (
	"context"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"

	"github.com/hay-kot/gim/internal/gim"
)

// isTerminal is swapped in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// spinnerWaiter shows a spinner while a chat call runs. Without a
// terminal it runs the call directly.
func spinnerWaiter() gim.Waiter {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stderr) {
		return nil
	}

	return func(ctx context.Context, title string, fn func(context.Context) error) error {
		return spinner.New().
			Title(title).
			Context(ctx).
			ActionWithErr(fn).
			Run()
	}
}
