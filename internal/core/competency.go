package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseMonthYear parses a user-facing "mm/yyyy" label. Any other shape
// yields ok=false; callers treat that as absent rather than an error.
func ParseMonthYear(s string) (year, month int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	if m < 1 || m > 12 || y < 1 {
		return 0, 0, false
	}
	return y, m, true
}

// MonthYearLabel renders the canonical "mm/yyyy" display label.
func MonthYearLabel(year, month int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}

// NormalizeCompetency converts free-text input into the canonical
// sortable "yyyy-mm" key. It accepts either "mm/yyyy" or an already
// canonical key; blank or unparseable input yields the empty string
// (validity is signaled by emptiness, not an error).
func NormalizeCompetency(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if y, m, ok := ParseMonthYear(s); ok {
		return fmt.Sprintf("%04d-%02d", y, m)
	}
	if _, err := time.Parse("2006-01", s); err == nil {
		return s
	}
	return ""
}

// CompetencyLabel is the display inverse of NormalizeCompetency.
// Empty or malformed keys render as a placeholder dash.
func CompetencyLabel(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "-"
	}
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return "-"
	}
	y, errY := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errY != nil || errM != nil {
		return "-"
	}
	return MonthYearLabel(y, m)
}
