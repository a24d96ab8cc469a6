package resume

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"20060102",
	"200601",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"2006/01",
	"Jan 2006",
	"January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

var (
	yearOnlyPattern = regexp.MustCompile(`^\d{4}$`)
	fullDatePattern = regexp.MustCompile(`^(?:\d{4}-\d{2}-\d{2}|\d{8})$`)
)

// DatePreferences controls how FormatDate renders month-precision dates.
type DatePreferences struct {
	// Format uses résumé-editor tokens: "MMM yyyy", "MMMM yyyy", "MM/yyyy", "yyyy" or "dd MMM yyyy".
	Format string
}

// DefaultDatePreferences returns the "MMM yyyy" preference.
func DefaultDatePreferences() DatePreferences {
	return DatePreferences{Format: "MMM yyyy"}
}

func (p DatePreferences) layout() string {
	switch p.Format {
	case "MMMM yyyy":
		return "January 2006"
	case "MM/yyyy":
		return "01/2006"
	case "yyyy":
		return "2006"
	case "dd MMM yyyy":
		return "02 Jan 2006"
	default:
		return "Jan 2006"
	}
}

// IsPresent reports whether s denotes an ongoing role.
func IsPresent(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "current", "now":
		return true
	}
	return false
}

// ParseDate parses the date formats résumé editors produce. It never panics
// and reports false for empty, "present" and unrecognised values.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || IsPresent(s) {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a résumé date at the precision it was entered with.
// Empty and unparseable input yield "" so templates can substitute a label.
func FormatDate(s string, prefs DatePreferences) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if IsPresent(s) {
		return "Present"
	}

	t, ok := ParseDate(s)
	if !ok {
		return ""
	}

	switch {
	case yearOnlyPattern.MatchString(s):
		return t.Format("2006")
	case fullDatePattern.MatchString(s) && t.Day() > 1:
		return t.Format("02 Jan 2006")
	default:
		return t.Format(prefs.layout())
	}
}
