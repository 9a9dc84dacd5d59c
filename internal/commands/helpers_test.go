package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gim/internal/core/config"
	"github.com/hay-kot/gim/internal/printer"
)

// testFlags returns Flags backed by a fresh config file in a temp dir.
func testFlags(t *testing.T, mutate func(*config.Config)) *Flags {
	t.Helper()

	store := config.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	cfg, err := store.Update(func(cfg *config.Config) error {
		if mutate != nil {
			mutate(cfg)
		}
		return nil
	})
	require.NoError(t, err)

	return &Flags{
		ConfigPath: store.Path(),
		Version:    "dev",
		Config:     cfg,
		Store:      store,
	}
}

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

type runResult struct {
	out    bytes.Buffer
	errOut bytes.Buffer
	status bytes.Buffer
}

// runApp registers cmd on a fresh root command and runs args against it.
func runApp(t *testing.T, cmd registrar, args ...string) (*runResult, error) {
	t.Helper()
	return runVersionedApp(t, "", cmd, args...)
}

// runVersionedApp is runApp with the root Version set, which makes the cli
// add its version flag.
func runVersionedApp(t *testing.T, version string, cmd registrar, args ...string) (*runResult, error) {
	t.Helper()

	res := &runResult{}
	app := &cli.Command{
		Name:      "gim",
		Version:   version,
		Writer:    &res.out,
		ErrWriter: &res.errOut,
		// keep cli.Exit errors from terminating the test binary
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	app = cmd.Register(app)

	ctx := printer.NewContext(context.Background(), printer.New(&res.status))
	err := app.Run(ctx, append([]string{"gim"}, args...))
	return res, err
}

// stubTerminal makes every file look like a terminal (or not) for the test.
func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(*os.File) bool { return tty }
	t.Cleanup(func() { isTerminal = orig })
}
