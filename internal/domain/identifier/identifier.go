// Package identifier parses and extracts WCA competitor identifiers.
//
// An identifier is the year of first competition, four letters taken from
// the competitor's name and a two digit disambiguator, e.g. 2015ABCD12.
package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidID is returned for text that is not a well-formed identifier.
var ErrInvalidID = errors.New("invalid WCA ID")

var (
	exact    = regexp.MustCompile(`^\d{4}[A-Z]{4}\d{2}$`)
	embedded = regexp.MustCompile(`\b\d{4}[A-Z]{4}\d{2}\b`)
)

// ID is a competitor identifier in canonical upper case.
type ID string

func (id ID) String() string { return string(id) }

// Normalize trims and upper-cases manual input and validates the format.
func Normalize(raw string) (ID, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !exact.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return ID(s), nil
}

// Extract returns every identifier embedded in free-form text, in order of
// appearance and including repeats. Matching is case-sensitive.
func Extract(text string) []ID {
	matches := embedded.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]ID, len(matches))
	for i, m := range matches {
		out[i] = ID(m)
	}
	return out
}

// Strings converts ids for persistence.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
