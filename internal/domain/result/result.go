// Package result decodes provider result codes into display strings.
//
// Codes are opaque integers whose meaning depends on the event family:
// centiseconds for timed events, a move count for fewest moves, and a packed
// decimal for multi-blind. Decoding is pure and never touches I/O.
package result

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Code is an optional, non-negative provider result. The zero value is absent.
type Code struct {
	value int64
	ok    bool
}

// Some returns a present code. Negative values are treated as absent.
func Some(v int64) Code {
	if v < 0 {
		return Code{}
	}
	return Code{value: v, ok: true}
}

// None returns an absent code.
func None() Code { return Code{} }

// Value returns the raw integer and whether it is present.
func (c Code) Value() (int64, bool) { return c.value, c.ok }

// Present reports whether the code carries a value.
func (c Code) Present() bool { return c.ok }

// Less orders codes ascending with absent sorting after every present value.
func (c Code) Less(o Code) bool {
	switch {
	case c.ok && o.ok:
		return c.value < o.value
	case c.ok:
		return true
	default:
		return false
	}
}

// Equal reports whether both codes are absent or carry the same value.
func (c Code) Equal(o Code) bool {
	return c.ok == o.ok && c.value == o.value
}

func (c Code) String() string {
	if !c.ok {
		return "none"
	}
	return strconv.FormatInt(c.value, 10)
}

// MarshalJSON renders an absent code as null.
func (c Code) MarshalJSON() ([]byte, error) {
	if !c.ok {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(c.value, 10)), nil
}

// UnmarshalJSON accepts null or an integer.
func (c *Code) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = Code{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("result code: %w", err)
	}
	*c = Some(v)
	return nil
}
