package render

import (
	"fmt"
	"io"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/roster"
)

// Level selects the styling of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notice writes a single styled status line.
func Notice(w io.Writer, level Level, msg string) error {
	style, ok := noticeStyles[level]
	if !ok {
		style = noticeStyles[LevelInfo]
	}
	_, err := fmt.Fprintln(w, style.Render(msg))
	return err
}

// AddedMessage describes the outcome of a manual add.
func AddedMessage(res roster.AddResult) (Level, string) {
	if res.AlreadyPresent {
		return LevelInfo, fmt.Sprintf("%s already added!", res.ID)
	}
	return LevelSuccess, fmt.Sprintf("Added %s successfully!", res.ID)
}

// BulkMessage describes the outcome of a bulk extraction.
func BulkMessage(res roster.BulkResult) string {
	added := len(res.Added)
	return fmt.Sprintf("Extracted %d new WCA ID%s. %d duplicate%s skipped.",
		added, plural(added), res.Skipped, plural(res.Skipped))
}

// RemovedMessage describes the outcome of a removal.
func RemovedMessage(id string, removed bool) (Level, string) {
	if !removed {
		return LevelInfo, fmt.Sprintf("%s was not tracked", id)
	}
	return LevelInfo, fmt.Sprintf("Removed %s", id)
}

// ClearedMessage is shown after the roster is emptied.
const ClearedMessage = "Cleared all competitors!"
