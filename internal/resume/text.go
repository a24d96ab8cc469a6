package resume

import (
	"fmt"
	"strings"
)

// CleanText collapses runs of whitespace to a single space and trims the result.
// Non-string values are formatted when they are scalars and dropped otherwise.
func CleanText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.Join(strings.Fields(val), " ")
	case fmt.Stringer:
		return strings.Join(strings.Fields(val.String()), " ")
	case int, int32, int64, float32, float64, bool:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

// Initials returns up to two upper-case initials for a display name.
func Initials(name string) string {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(firstRune(parts[0]))
	default:
		return strings.ToUpper(firstRune(parts[0]) + firstRune(parts[len(parts)-1]))
	}
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// Truncate clips s to at most n runes, appending "..." when it was clipped.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
