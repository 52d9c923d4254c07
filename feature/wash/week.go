package wash

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var weekPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// WeekKey returns the ISO year-week key of t, e.g. "2025-W10".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// ParseWeek accepts a week key or a calendar date (YYYY-MM-DD) and returns the week key.
func ParseWeek(s string) (string, error) {
	if m := weekPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		if week < 1 || week > weeksInYear(year) {
			return "", &ValidationError{Field: "week", Reason: fmt.Sprintf("week %s does not exist", s)}
		}
		return s, nil
	}
	if d, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return WeekKey(d), nil
	}
	return "", &ValidationError{Field: "week", Reason: fmt.Sprintf("%q is neither a week (YYYY-Www) nor a date (YYYY-MM-DD)", s)}
}

// weeksInYear returns 52 or 53. December 28th always falls in the last ISO week.
func weeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
