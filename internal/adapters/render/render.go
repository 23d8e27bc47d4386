// Package render turns leaderboards and roster outcomes into terminal or
// JSON output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	service "github.com/limchunyik/wca-psych-sheet-generator/internal/app"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/result"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/types"
)

const (
	emptyCell   = "-"
	emptyBoard  = "No results found for this event. Try adding some WCA IDs first!"
	errorPanel  = "Error loading rankings. Please try again."
	medalsShown = 3
)

var headers = []string{"Rank", "Name", "WCA ID", "Single", "Average"}

// Rows converts ranked rows to display strings.
func Rows(board service.Leaderboard) []types.Row {
	out := make([]types.Row, 0, len(board.Rows))
	for _, r := range board.Rows {
		out = append(out, types.Row{
			Rank:    r.Position,
			Name:    r.Name,
			WCAID:   string(r.ID),
			Single:  orDash(result.Decode(r.Single, board.Kind)),
			Average: orDash(result.DecodeAverage(r.Average, board.Kind)),
		})
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return emptyCell
	}
	return s
}

// Table writes the leaderboard as a bordered table with the top three
// positions highlighted.
func Table(w io.Writer, board service.Leaderboard) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Results for " + board.Kind.DisplayName()))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Comparing %d competitor%s", len(board.Rows), plural(len(board.Rows)))))
	b.WriteString("\n")

	rows := Rows(board)
	if len(rows) == 0 {
		b.WriteString(emptyBoard)
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{fmt.Sprint(r.Rank), r.Name, r.WCAID, r.Single, r.Average})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 && row < medalsShown:
				return medalStyles[row]
			default:
				return cellStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if n := len(board.Failed); n > 0 {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("%d competitor%s could not be loaded: %s",
			n, plural(n), strings.Join(identifier.Strings(board.Failed), ", "))))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonBoard struct {
	BatchID   string      `json:"batch_id"`
	Event     string      `json:"event"`
	EventName string      `json:"event_name"`
	Requested int         `json:"requested"`
	Failed    []string    `json:"failed"`
	Rows      []types.Row `json:"rows"`
}

// JSON writes the leaderboard as an indented JSON document.
func JSON(w io.Writer, board service.Leaderboard) error {
	failed := identifier.Strings(board.Failed)
	if failed == nil {
		failed = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonBoard{
		BatchID:   board.BatchID,
		Event:     board.Kind.String(),
		EventName: board.Kind.DisplayName(),
		Requested: board.Requested,
		Failed:    failed,
		Rows:      Rows(board),
	})
}

// ErrorPanel writes the message shown in place of a leaderboard when a batch
// fails.
func ErrorPanel(w io.Writer) error {
	return Notice(w, LevelError, errorPanel)
}

// IDs writes one tracked identifier per line.
func IDs(w io.Writer, ids []identifier.ID) error {
	if len(ids) == 0 {
		return Notice(w, LevelInfo, "No competitors tracked yet.")
	}
	var b strings.Builder
	b.WriteString(subtleStyle.Render(fmt.Sprintf("Tracking %d competitor%s", len(ids), plural(len(ids)))))
	b.WriteString("\n")
	for _, id := range ids {
		b.WriteString(string(id))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Events writes the event catalog as a two column table.
func Events(w io.Writer) error {
	rows := make([][]string, 0, len(event.All()))
	for _, k := range event.All() {
		rows = append(rows, []string{k.String(), k.DisplayName()})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Code", "Event").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
