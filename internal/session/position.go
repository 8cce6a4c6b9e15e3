package session

import (
	"fmt"
	"math"
	"strings"
)

// Position is a cursor offset into the ROM buffer.
type Position int64

// NaN is stored as position when the cursor input is not a hexadecimal number.
const NaN Position = -1

// IsNaN returns whether the position holds the not-a-number sentinel.
func (p Position) IsNaN() bool {
	return p < 0
}

func (p Position) String() string {
	if p.IsNaN() {
		return "NaN"
	}
	return fmt.Sprintf("%X", int64(p))
}

// ParseHexPosition parses s as a base 16 number the way a lenient numeric
// input field does: leading white space, an optional '+' sign and an optional
// 0x prefix are accepted, and parsing stops at the first non hex digit.
// NaN is returned if no digit was found, for negative numbers and on overflow.
// Negative and oversized input deliberately differs from parseInt in
// JavaScript, which returns a negative value or a rounded float; a cursor
// position is never negative and always fits into an int64.
func ParseHexPosition(s string) Position {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	if strings.HasPrefix(s, "-") {
		return NaN
	}
	s = strings.TrimPrefix(s, "+")
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}

	var value uint64
	digits := 0
	for i := 0; i < len(s); i++ {
		d := hexDigit(s[i])
		if d < 0 {
			break
		}
		if value > (math.MaxInt64-uint64(d))/16 {
			return NaN
		}
		value = value*16 + uint64(d)
		digits++
	}
	if digits == 0 {
		return NaN
	}
	return Position(value)
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
