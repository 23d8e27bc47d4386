// Package model contains domain models passed between layers.
package model

import (
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/result"
)

// CompetitorRecord is one competitor's personal bests for a single event,
// produced fresh by every ranking request.
type CompetitorRecord struct {
	ID      identifier.ID // lookup key
	Name    string        // display name from the provider
	Single  result.Code   // best single for the ranked event
	Average result.Code   // best average for the ranked event
	Fetched bool          // false when the lookup failed after retries
}

// Failed builds the record of a lookup that did not succeed.
func Failed(id identifier.ID) CompetitorRecord {
	return CompetitorRecord{ID: id}
}

// RankedRow is a record with its 1-based position on the sheet.
type RankedRow struct {
	Position int
	CompetitorRecord
}
