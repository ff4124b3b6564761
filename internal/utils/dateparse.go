package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	agoRe      = regexp.MustCompile(`^(\d+)\s*(m|min|mins|minutes?|h|hours?|d|days?|w|weeks?)\s+ago$`)
	relativeRe = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)$`)
)

var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2006-01-02 15:04",
	time.RFC3339,
	time.RFC3339Nano,
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseFlexibleDate understands absolute dates and phrases such as "today",
// "yesterday", "3 days", "2h ago", "last week" and "this month", relative to now.
func ParseFlexibleDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}
	loc := now.Location()

	switch input {
	case "now":
		return now, nil
	case "today":
		return startOfDay(now), nil
	case "yesterday":
		return startOfDay(now.AddDate(0, 0, -1)), nil
	case "last week":
		return now.AddDate(0, 0, -7), nil
	case "last month":
		return now.AddDate(0, -1, 0), nil
	case "last year":
		return now.AddDate(-1, 0, 0), nil
	case "this week":
		return weekStart(now), nil
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	case "this year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
	}

	if m := agoRe.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		var unit time.Duration
		switch m[2][0] {
		case 'm':
			unit = time.Minute
		case 'h':
			unit = time.Hour
		case 'd':
			unit = 24 * time.Hour
		case 'w':
			unit = 7 * 24 * time.Hour
		}
		return now.Add(-time.Duration(n) * unit), nil
	}

	if m := relativeRe.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch strings.TrimSuffix(m[2], "s") {
		case "day":
			return now.AddDate(0, 0, -n), nil
		case "week":
			return now.AddDate(0, 0, -7*n), nil
		case "month":
			return now.AddDate(0, -n, 0), nil
		case "year":
			return now.AddDate(-n, 0, 0), nil
		}
	}

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

// weekStart returns Monday 00:00 of now's week.
func weekStart(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(now.AddDate(0, 0, -(weekday - 1)))
}

// GetDateRange returns [start, end) for a named preset.
func GetDateRange(preset string, now time.Time) (time.Time, time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "today":
		start := startOfDay(now)
		return start, start.AddDate(0, 0, 1), nil
	case "yesterday":
		start := startOfDay(now.AddDate(0, 0, -1))
		return start, start.AddDate(0, 0, 1), nil
	case "week":
		start := weekStart(now)
		return start, start.AddDate(0, 0, 7), nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0), nil
	case "last7days", "last-7-days":
		return startOfDay(now.AddDate(0, 0, -7)), now, nil
	case "last30days", "last-30-days":
		return startOfDay(now.AddDate(0, 0, -30)), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown date preset: %s", preset)
	}
}
