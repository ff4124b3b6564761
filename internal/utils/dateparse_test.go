package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var refNow = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"now", refNow},
		{"today", time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)},
		{" Yesterday ", time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)},
		{"this week", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		{"this month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"this year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last week", refNow.AddDate(0, 0, -7)},
		{"3 days", refNow.AddDate(0, 0, -3)},
		{"2 months", refNow.AddDate(0, -2, 0)},
		{"2h ago", refNow.Add(-2 * time.Hour)},
		{"30min ago", refNow.Add(-30 * time.Minute)},
		{"1 week ago", refNow.Add(-7 * 24 * time.Hour)},
		{"2026-02-01", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"2026/02/01", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.in, refNow)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestParseFlexibleDateRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "someday", "3 fortnights"} {
		_, err := ParseFlexibleDate(in, refNow)
		assert.Error(t, err, in)
	}
}

func TestThisWeekOnSunday(t *testing.T) {
	sunday := time.Date(2026, 3, 22, 9, 0, 0, 0, time.UTC)
	got, err := ParseFlexibleDate("this week", sunday)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), got)
}

func TestGetDateRange(t *testing.T) {
	tests := []struct {
		preset     string
		start, end time.Time
	}{
		{"today", time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC)},
		{"yesterday", time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)},
		{"week", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)},
		{"month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last7days", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), refNow},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			start, end, err := GetDateRange(tt.preset, refNow)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}

	_, _, err := GetDateRange("decade", refNow)
	assert.Error(t, err)
}
