package validation

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var trailingZeroDecimal = regexp.MustCompile(`\.0*\s*$`)

// Integer interprets a raw JSON value as an integer. JSON integers, integral
// numbers such as 5.0 and numeric strings such as "5" are accepted; fractions,
// booleans, null, arrays and objects are not.
func Integer(raw []byte) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		return parseIntString(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return parseIntString(string(raw))
	default:
		return 0, false
	}
}

func parseIntString(s string) (int, bool) {
	s = trailingZeroDecimal.ReplaceAllString(strings.TrimSpace(s), "")
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}

	// Exponent forms like 5e0.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
