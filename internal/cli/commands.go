package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/render"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/roster"
)

// annotationOffline marks commands that run without configuration or storage.
const annotationOffline = "offline"

const (
	formatTable = "table"
	formatJSON  = "json"
)

func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <wca-id>",
		Short: "Track a competitor after checking the WCA ID exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.rt.svc.Add(cmd.Context(), args[0])
			switch {
			case errors.Is(err, identifier.ErrInvalidID):
				_ = render.Notice(c.stderr, render.LevelError, fmt.Sprintf("%s is not a valid WCA ID", strings.TrimSpace(args[0])))
				return reported(err)
			case errors.Is(err, roster.ErrCompetitorNotFound):
				_ = render.Notice(c.stderr, render.LevelError, roster.ErrCompetitorNotFound.Error())
				return reported(err)
			case err != nil:
				return err
			}
			level, msg := render.AddedMessage(res)
			return render.Notice(c.stdout, level, msg)
		},
	}
}

func (c *CLI) bulkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk [file]",
		Short: "Track every WCA ID found in a file or stdin",
		Long:  "Extracts every WCA ID from free text, such as a pasted competitor list. Reads stdin when no file or - is given. Extracted IDs are not checked with the provider.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.readInput(args)
			if err != nil {
				return err
			}
			res, err := c.rt.svc.AddBulk(cmd.Context(), text)
			if err != nil {
				return err
			}
			return render.Notice(c.stdout, render.LevelSuccess, render.BulkMessage(res))
		},
	}
}

func (c *CLI) readInput(args []string) (string, error) {
	var r io.Reader = c.stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <wca-id>",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a competitor",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.ToUpper(strings.TrimSpace(args[0]))
			removed, err := c.rt.svc.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			level, msg := render.RemovedMessage(id, removed)
			return render.Notice(c.stdout, level, msg)
		},
	}
}

func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Stop tracking every competitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.rt.svc.Clear(cmd.Context()); err != nil {
				return err
			}
			return render.Notice(c.stdout, render.LevelInfo, render.ClearedMessage)
		},
	}
}

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tracked WCA IDs",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return render.IDs(c.stdout, c.rt.svc.List())
		},
	}
}

func (c *CLI) rankCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "rank <event>",
		Short: "Rank tracked competitors by their personal records in an event",
		Long:  "Ranks tracked competitors for an event code such as 333, 333bf or 333mbf. Run `psych events` for the catalog.",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("unknown format %q: use %s or %s", format, formatTable, formatJSON)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := event.Parse(args[0])
			if err != nil {
				return err
			}
			board, err := c.rt.svc.Rank(cmd.Context(), kind)
			if err != nil {
				_ = render.ErrorPanel(c.stdout)
				return reported(err)
			}
			if format == formatJSON {
				return render.JSON(c.stdout, board)
			}
			return render.Table(c.stdout, board)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or json")
	return cmd
}

func (c *CLI) eventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "events",
		Short:       "List supported event codes",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOffline: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			return render.Events(c.stdout)
		},
	}
}
