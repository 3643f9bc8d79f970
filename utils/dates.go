package utils

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339, value)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
		}
		t = t2
	}
	return DateOnly(t), nil
}

// DateOnly drops the clock part of t, keeping its calendar day, in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
