package provider

import (
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/result"
)

// Person is the subset of a provider person document used for ranking.
type Person struct {
	Name string `json:"name"`
	Rank Ranks  `json:"rank"`
}

// Ranks holds personal records keyed by event.
type Ranks struct {
	Singles  []Record `json:"singles"`
	Averages []Record `json:"averages"`
}

// Record is a personal best for one event.
type Record struct {
	EventID string `json:"eventId"`
	Best    int64  `json:"best"`
}

// Project selects the best single and average for kind. A missing entry, or
// a best of zero or below (the provider's "no result"), is absent.
func (p Person) Project(kind event.Kind) (single, average result.Code) {
	return find(p.Rank.Singles, kind), find(p.Rank.Averages, kind)
}

func find(records []Record, kind event.Kind) result.Code {
	for _, r := range records {
		if r.EventID == string(kind) {
			if r.Best <= 0 {
				return result.None()
			}
			return result.Some(r.Best)
		}
	}
	return result.None()
}
