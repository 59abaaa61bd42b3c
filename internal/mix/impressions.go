// Package mix implements the media-mix proposal core: price/impression
// scaling, capacity-aware availability checks, greedy line allocation,
// result aggregation and monthly occupancy reporting. Every function in
// the package is a pure computation over the inputs it is handed; state
// lifecycle belongs to the caller.
package mix

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adplanhq/mixengine/internal/models"
)

// Korean magnitude suffixes found in free-text impression figures.
const (
	suffixMan   = "만" // x10,000
	suffixCheon = "천" // x1,000
)

// impressionToken matches the leading numeric token of an impression
// figure with an optional magnitude suffix, e.g. "30만 보장" or "1.5천".
var impressionToken = regexp.MustCompile(`([0-9.]+)(` + suffixMan + `|` + suffixCheon + `)?`)

// ParseImpressions extracts the numeric magnitude of an impression
// figure. Numeric values are returned as-is; free text is scanned for a
// leading number with an optional magnitude suffix. Text with no
// parseable number yields 0.
func ParseImpressions(v models.ImpressionVolume) float64 {
	if v.IsNumber {
		n, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return 0
		}
		return n
	}
	cleaned := strings.ReplaceAll(v.Raw, ",", "")
	m := impressionToken.FindStringSubmatch(cleaned)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch m[2] {
	case suffixMan:
		n *= 10000
	case suffixCheon:
		n *= 1000
	}
	return n
}

// formatCount renders an impression count with thousands separators for
// display ("1,234,567").
func formatCount(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
