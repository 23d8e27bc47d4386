// Package event holds the closed catalog of WCA events a psych sheet can be
// generated for.
package event

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEvent is returned when a value is not in the catalog.
var ErrUnknownEvent = errors.New("unknown event")

// Kind is a provider event identifier, e.g. "333" or "333bf".
type Kind string

// Catalog, in display order.
const (
	Cube2x2    Kind = "222"
	Cube3x3    Kind = "333"
	Cube4x4    Kind = "444"
	Cube5x5    Kind = "555"
	Cube6x6    Kind = "666"
	Cube7x7    Kind = "777"
	Blind3x3   Kind = "333bf"
	FewestMove Kind = "333fm"
	OneHanded  Kind = "333oh"
	Clock      Kind = "clock"
	Megaminx   Kind = "minx"
	Pyraminx   Kind = "pyram"
	Skewb      Kind = "skewb"
	Square1    Kind = "sq1"
	Blind4x4   Kind = "444bf"
	Blind5x5   Kind = "555bf"
	MultiBlind Kind = "333mbf"
)

// Family selects how result codes of a kind are encoded.
type Family int

const (
	// FamilyTimed results are centiseconds.
	FamilyTimed Family = iota
	// FamilyMoves results are move counts; averages are move counts x100.
	FamilyMoves
	// FamilyMulti results pack solved, attempted and seconds into one integer.
	FamilyMulti
)

var catalog = []Kind{
	Cube2x2, Cube3x3, Cube4x4, Cube5x5, Cube6x6, Cube7x7,
	Blind3x3, FewestMove, OneHanded, Clock, Megaminx, Pyraminx,
	Skewb, Square1, Blind4x4, Blind5x5, MultiBlind,
}

var displayNames = map[Kind]string{
	Cube3x3:    "3x3",
	Cube2x2:    "2x2",
	Cube4x4:    "4x4",
	Cube5x5:    "5x5",
	Cube6x6:    "6x6",
	Cube7x7:    "7x7",
	Blind3x3:   "3BLD",
	FewestMove: "FMC",
	OneHanded:  "OH",
	Clock:      "Clock",
	Megaminx:   "Megaminx",
	Pyraminx:   "Pyraminx",
	Skewb:      "Skewb",
	Square1:    "Square-1",
	Blind4x4:   "4BLD",
	Blind5x5:   "5BLD",
	MultiBlind: "MBLD",
}

// All returns the catalog in display order.
func All() []Kind {
	out := make([]Kind, len(catalog))
	copy(out, catalog)
	return out
}

// Parse resolves s (case-insensitive) to a catalog entry.
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
	}
	return k, nil
}

// Valid reports whether k is in the catalog.
func (k Kind) Valid() bool {
	_, ok := displayNames[k]
	return ok
}

// DisplayName returns the short human label, or the raw id when unknown.
func (k Kind) DisplayName() string {
	if name, ok := displayNames[k]; ok {
		return name
	}
	return string(k)
}

// Blindfolded reports membership of the family ranked by single only.
// Multi-blind is not a member: it has its own encoding and no average.
func (k Kind) Blindfolded() bool {
	switch k {
	case Blind3x3, Blind4x4, Blind5x5:
		return true
	default:
		return false
	}
}

// Family returns the result encoding used by k.
func (k Kind) Family() Family {
	switch k {
	case FewestMove:
		return FamilyMoves
	case MultiBlind:
		return FamilyMulti
	default:
		return FamilyTimed
	}
}

func (k Kind) String() string { return string(k) }
