package utils

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC), 0},
		{"one day", time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC), time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC), 1},
		{"month boundary", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC), 2},
		{"reversed", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(tc.start, tc.end); got != tc.want {
				t.Errorf("DaysBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := LastDayOfMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("LastDayOfMonth(%d, %v) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}
