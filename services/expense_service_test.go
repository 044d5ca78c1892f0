package services

import (
	"testing"
	"time"

	"dukahub-backend/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateRecurringDatesWeekly(t *testing.T) {
	thursday := 3 // Monday-based weekday

	// Start on a Monday; every occurrence lands on the following Thursdays.
	start := date(2025, time.January, 6)
	dates := GenerateRecurringDates(start, models.RecurrenceWeekly, &thursday, nil, nil)

	if len(dates) != maxRecurringOccurrences {
		t.Fatalf("expected %d occurrences, got %d", maxRecurringOccurrences, len(dates))
	}
	if !dates[0].Equal(date(2025, time.January, 9)) {
		t.Errorf("first occurrence = %v, want 2025-01-09", dates[0])
	}
	for i, d := range dates {
		if d.Weekday() != time.Thursday {
			t.Errorf("occurrence %d is a %v, want Thursday", i, d.Weekday())
		}
		if i > 0 {
			if got := d.Sub(dates[i-1]); got != 7*24*time.Hour {
				t.Errorf("gap between occurrence %d and %d is %v, want 168h", i-1, i, got)
			}
		}
	}
}

func TestGenerateRecurringDatesWeeklySameWeekday(t *testing.T) {
	thursday := 3
	// Start on a Thursday: the start date itself is never generated.
	start := date(2025, time.January, 9)
	dates := GenerateRecurringDates(start, models.RecurrenceWeekly, &thursday, nil, nil)

	if len(dates) == 0 {
		t.Fatal("expected occurrences")
	}
	if !dates[0].Equal(date(2025, time.January, 16)) {
		t.Errorf("first occurrence = %v, want 2025-01-16", dates[0])
	}
}

func TestGenerateRecurringDatesWeeklyEndDate(t *testing.T) {
	thursday := 3
	start := date(2025, time.January, 6)
	end := date(2025, time.January, 31)
	dates := GenerateRecurringDates(start, models.RecurrenceWeekly, &thursday, nil, &end)

	want := []time.Time{
		date(2025, time.January, 9),
		date(2025, time.January, 16),
		date(2025, time.January, 23),
		date(2025, time.January, 30),
	}
	if len(dates) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(dates), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateRecurringDatesMonthlyClamped(t *testing.T) {
	day := 31
	start := date(2025, time.January, 15)
	dates := GenerateRecurringDates(start, models.RecurrenceMonthly, nil, &day, nil)

	if len(dates) == 0 {
		t.Fatal("expected occurrences")
	}
	// February has no 31st; the date clamps to the month end.
	if !dates[0].Equal(date(2025, time.February, 28)) {
		t.Errorf("first occurrence = %v, want 2025-02-28", dates[0])
	}
	if !dates[1].Equal(date(2025, time.March, 31)) {
		t.Errorf("second occurrence = %v, want 2025-03-31", dates[1])
	}
	if !dates[2].Equal(date(2025, time.April, 30)) {
		t.Errorf("third occurrence = %v, want 2025-04-30", dates[2])
	}
	if len(dates) > maxRecurringOccurrences {
		t.Errorf("got %d occurrences, cap is %d", len(dates), maxRecurringOccurrences)
	}
}

func TestGenerateRecurringDatesMonthlyEndDate(t *testing.T) {
	day := 10
	start := date(2025, time.January, 15)
	end := date(2025, time.April, 30)
	dates := GenerateRecurringDates(start, models.RecurrenceMonthly, nil, &day, &end)

	want := []time.Time{
		date(2025, time.February, 10),
		date(2025, time.March, 10),
		date(2025, time.April, 10),
	}
	if len(dates) != len(want) {
		t.Fatalf("expected %d occurrences, got %d: %v", len(want), len(dates), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateRecurringDatesLeapYearBoundary(t *testing.T) {
	day := 15
	// The span crosses 2024-02-29. The boundary is 365 days after the start,
	// not one calendar year, so 2024-06-15 (day 366) must not be generated.
	start := date(2023, time.June, 15)
	dates := GenerateRecurringDates(start, models.RecurrenceMonthly, nil, &day, nil)

	if len(dates) != 11 {
		t.Fatalf("expected 11 occurrences, got %d: %v", len(dates), dates)
	}
	if last := dates[len(dates)-1]; !last.Equal(date(2024, time.May, 15)) {
		t.Errorf("last occurrence = %v, want 2024-05-15", last)
	}
	boundary := start.AddDate(0, 0, 365)
	for i, d := range dates {
		if d.After(boundary) {
			t.Errorf("occurrence %d (%v) is past the 365-day boundary %v", i, d, boundary)
		}
	}
}

func TestGenerateRecurringDatesMonthlyFullYear(t *testing.T) {
	day := 15
	// No leap day in the span: day 365 lands exactly on 2026-01-15 and is kept.
	start := date(2025, time.January, 15)
	dates := GenerateRecurringDates(start, models.RecurrenceMonthly, nil, &day, nil)

	if len(dates) != maxRecurringOccurrences {
		t.Fatalf("expected %d occurrences, got %d: %v", maxRecurringOccurrences, len(dates), dates)
	}
	if last := dates[len(dates)-1]; !last.Equal(date(2026, time.January, 15)) {
		t.Errorf("last occurrence = %v, want 2026-01-15", last)
	}
}

func TestGenerateRecurringDatesMissingDayField(t *testing.T) {
	start := date(2025, time.January, 6)
	if dates := GenerateRecurringDates(start, models.RecurrenceWeekly, nil, nil, nil); dates != nil {
		t.Errorf("weekly without day_of_week should yield nothing, got %v", dates)
	}
	if dates := GenerateRecurringDates(start, models.RecurrenceMonthly, nil, nil, nil); dates != nil {
		t.Errorf("monthly without day_of_month should yield nothing, got %v", dates)
	}
}

func TestValidateRecurrence(t *testing.T) {
	badDay := 7
	goodDay := 0
	badDOM := 0
	goodDOM := 31

	cases := []struct {
		name    string
		input   CreateExpenseInput
		wantErr bool
	}{
		{"not recurring", CreateExpenseInput{}, false},
		{"weekly ok", CreateExpenseInput{IsRecurring: true, RecurrenceFrequency: models.RecurrenceWeekly, RecurrenceDayOfWeek: &goodDay}, false},
		{"weekly day out of range", CreateExpenseInput{IsRecurring: true, RecurrenceFrequency: models.RecurrenceWeekly, RecurrenceDayOfWeek: &badDay}, true},
		{"weekly missing day", CreateExpenseInput{IsRecurring: true, RecurrenceFrequency: models.RecurrenceWeekly}, true},
		{"monthly ok", CreateExpenseInput{IsRecurring: true, RecurrenceFrequency: models.RecurrenceMonthly, RecurrenceDayOfMonth: &goodDOM}, false},
		{"monthly day out of range", CreateExpenseInput{IsRecurring: true, RecurrenceFrequency: models.RecurrenceMonthly, RecurrenceDayOfMonth: &badDOM}, true},
		{"missing frequency", CreateExpenseInput{IsRecurring: true}, true},
		{"unknown frequency", CreateExpenseInput{IsRecurring: true, RecurrenceFrequency: "daily"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRecurrence(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("validateRecurrence error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				if se, ok := AsServiceError(err); !ok || se.Kind != KindValidationError {
					t.Errorf("expected ValidationError, got %v", err)
				}
			}
		})
	}
}
