// Package cli wires configuration, storage and the provider into cobra
// commands.
package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/render"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/repository"
)

// CLI is one invocation of the psych command tree.
type CLI struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	store      repository.Store
	httpClient *http.Client

	flags struct {
		configPath string
		logLevel   string
		store      string
	}
	rt *session
}

// Option applies a configuration option to the CLI.
type Option func(*CLI)

// WithIO replaces the standard streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(c *CLI) {
		if in != nil {
			c.stdin = in
		}
		if out != nil {
			c.stdout = out
		}
		if errOut != nil {
			c.stderr = errOut
		}
	}
}

// WithStore bypasses store_backend and uses s.
func WithStore(s repository.Store) Option {
	return func(c *CLI) {
		c.store = s
	}
}

// WithHTTPClient sets the client used for provider lookups.
func WithHTTPClient(h *http.Client) Option {
	return func(c *CLI) {
		c.httpClient = h
	}
}

// New creates a CLI bound to the process streams unless overridden.
func New(opts ...Option) *CLI {
	c := &CLI{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes args and returns the process exit code.
func (c *CLI) Run(ctx context.Context, args []string) int {
	c.rt = nil
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	err := root.ExecuteContext(ctx)
	if c.rt != nil {
		c.rt.close(ctx)
	}
	if err == nil {
		return 0
	}
	var shown *reportedError
	if !errors.As(err, &shown) {
		_ = render.Notice(c.stderr, render.LevelError, err.Error())
	}
	return 1
}

// reportedError marks a failure that a command already showed to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error { return &reportedError{err: err} }

func (c *CLI) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "psych",
		Short:         "Build psych sheets from WCA personal records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationOffline] == "true" {
				return nil
			}
			return c.bootstrap(cmd.Context())
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.configPath, "config", "", "path to a YAML config file (default $PSYCH_CONFIG)")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&c.flags.store, "store", "", "storage backend: file, redis or memory")

	root.AddCommand(
		c.addCommand(),
		c.bulkCommand(),
		c.removeCommand(),
		c.clearCommand(),
		c.listCommand(),
		c.rankCommand(),
		c.eventsCommand(),
	)
	return root
}
