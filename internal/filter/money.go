package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseMoney parses a formatted money string into dollars. Accepted
// forms include "$135M", "$1.2M", "850K", "$2,400,000", and plain
// numbers. Suffixes K, M, and B scale by a thousand, a million, and a
// billion. Anything else is an error, and callers are expected to
// exclude the record rather than fail.
func ParseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty money value")
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	if len(s) > 0 {
		switch s[len(s)-1] {
		case 'K', 'k':
			multiplier = 1e3
			s = s[:len(s)-1]
		case 'M', 'm':
			multiplier = 1e6
			s = s[:len(s)-1]
		case 'B', 'b':
			multiplier = 1e9
			s = s[:len(s)-1]
		}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable money value: %q", s)
	}
	return n * multiplier, nil
}

// FormatMillions renders a dollar amount in the "$NNNM" style used by
// the marketplace for AUM figures.
func FormatMillions(dollars float64) string {
	millions := dollars / 1e6
	if millions == float64(int64(millions)) {
		return fmt.Sprintf("$%dM", int64(millions))
	}
	return fmt.Sprintf("$%.1fM", millions)
}
