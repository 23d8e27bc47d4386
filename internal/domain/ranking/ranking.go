// Package ranking orders competitor records into a psych sheet.
package ranking

import (
	"sort"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/model"
)

// Less reports whether a ranks strictly ahead of b for kind.
//
// Blindfolded events rank by single alone. Every other event ranks
// competitors with an average ahead of those without; averages are compared
// first and singles break ties. Absent results are worse than any value.
func Less(a, b model.CompetitorRecord, kind event.Kind) bool {
	if kind.Blindfolded() {
		return a.Single.Less(b.Single)
	}

	hasA, hasB := a.Average.Present(), b.Average.Present()
	switch {
	case hasA && !hasB:
		return true
	case !hasA && hasB:
		return false
	case hasA && hasB && !a.Average.Equal(b.Average):
		return a.Average.Less(b.Average)
	default:
		return a.Single.Less(b.Single)
	}
}

// Rank drops unfetched records, sorts the rest for kind and numbers them
// from 1. The sort is stable: records that compare equal keep their input
// order and still receive distinct consecutive positions.
func Rank(records []model.CompetitorRecord, kind event.Kind) []model.RankedRow {
	kept := make([]model.CompetitorRecord, 0, len(records))
	for _, r := range records {
		if r.Fetched {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return Less(kept[i], kept[j], kind)
	})

	rows := make([]model.RankedRow, len(kept))
	for i, r := range kept {
		rows[i] = model.RankedRow{Position: i + 1, CompetitorRecord: r}
	}
	return rows
}
