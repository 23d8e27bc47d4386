package result

import (
	"fmt"
	"strconv"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
)

const (
	centisPerSecond = 100
	centisPerMinute = 60 * centisPerSecond
	centisPerHour   = 60 * centisPerMinute

	multiWidth       = 10
	multiBase        = 99
	multiUnknownTime = 99999
)

// MultiResult is a decoded multi-blind attempt.
type MultiResult struct {
	Solved    int
	Attempted int
	// Seconds is the attempt duration; meaningless when TimeUnknown is set.
	Seconds     int
	TimeUnknown bool
}

// Decode renders a single result of kind for display.
func Decode(c Code, kind event.Kind) string {
	v, ok := c.Value()
	if !ok {
		return ""
	}

	switch kind.Family() {
	case event.FamilyMoves:
		return strconv.FormatInt(v, 10)
	case event.FamilyMulti:
		if m, ok := DecodeMulti(c); ok {
			return m.String()
		}
		return strconv.FormatInt(v, 10)
	default:
		return FormatCentiseconds(v)
	}
}

// DecodeAverage renders an average result of kind for display. Fewest moves
// means are stored as move counts multiplied by 100.
func DecodeAverage(c Code, kind event.Kind) string {
	v, ok := c.Value()
	if !ok {
		return ""
	}
	if kind.Family() == event.FamilyMoves {
		return fmt.Sprintf("%d.%02d", v/100, v%100)
	}
	return Decode(c, kind)
}

// FormatCentiseconds renders cs as H:MM:SS.ss, M:SS.ss or S.ss.
func FormatCentiseconds(cs int64) string {
	hours := cs / centisPerHour
	minutes := (cs % centisPerHour) / centisPerMinute
	rem := cs % centisPerMinute
	secs, hundredths := rem/centisPerSecond, rem%centisPerSecond

	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, hundredths)
	case minutes > 0:
		return fmt.Sprintf("%d:%02d.%02d", minutes, secs, hundredths)
	default:
		return fmt.Sprintf("%d.%02d", secs, hundredths)
	}
}

// DecodeMulti unpacks a multi-blind code laid out as 0DDTTTTTMM once padded
// to ten digits. It returns false for absent codes or codes wider than ten
// digits.
func DecodeMulti(c Code) (MultiResult, bool) {
	v, ok := c.Value()
	if !ok {
		return MultiResult{}, false
	}
	s := fmt.Sprintf("%0*d", multiWidth, v)
	if len(s) != multiWidth {
		return MultiResult{}, false
	}

	dd := atoi(s[1:3])
	ttttt := atoi(s[3:8])
	mm := atoi(s[8:10])

	solved := (multiBase - dd) + mm
	return MultiResult{
		Solved:      solved,
		Attempted:   solved + mm,
		Seconds:     ttttt,
		TimeUnknown: ttttt == multiUnknownTime,
	}, true
}

// String renders "solved/attempted H:MM:SS", "solved/attempted M:SS" or
// "solved/attempted Unknown".
func (m MultiResult) String() string {
	score := fmt.Sprintf("%d/%d", m.Solved, m.Attempted)
	if m.TimeUnknown {
		return score + " Unknown"
	}

	hours := m.Seconds / 3600
	minutes := (m.Seconds % 3600) / 60
	seconds := m.Seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%s %d:%02d:%02d", score, hours, minutes, seconds)
	}
	return fmt.Sprintf("%s %d:%02d", score, minutes, seconds)
}

// atoi parses a fixed-width run of ASCII digits.
func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
