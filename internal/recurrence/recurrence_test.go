package recurrence

import (
	"testing"
	"time"

	"github.com/dosewatch/dosewatch/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsDue_Daily(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatDaily,
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"start date", date(2024, time.January, 1), true},
		{"mid range", date(2024, time.January, 15), true},
		{"end date", date(2024, time.January, 31), true},
		{"before range", date(2023, time.December, 31), false},
		{"after range", date(2024, time.February, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(sched, tt.day, start, end); got != tt.want {
				t.Errorf("IsDue(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestIsDue_Daily_DeviceTimezone(t *testing.T) {
	// Range bounds parse as UTC midnight; the candidate date is the
	// device's wall clock. The boundary doses must stay due regardless of
	// which side of UTC the device sits on.
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatDaily,
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	tokyo := time.FixedZone("UTC+9", 9*3600)
	newYork := time.FixedZone("UTC-5", -5*3600)

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"start date east of UTC", time.Date(2024, time.January, 1, 0, 0, 0, 0, tokyo), true},
		{"end date east of UTC", time.Date(2024, time.January, 31, 23, 0, 0, 0, tokyo), true},
		{"start date west of UTC", time.Date(2024, time.January, 1, 7, 0, 0, 0, newYork), true},
		{"end date west of UTC", time.Date(2024, time.January, 31, 23, 59, 0, 0, newYork), true},
		{"day before start east of UTC", time.Date(2023, time.December, 31, 23, 0, 0, 0, tokyo), false},
		{"day after end west of UTC", time.Date(2024, time.February, 1, 0, 0, 0, 0, newYork), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDue(sched, tt.day, start, end); got != tt.want {
				t.Errorf("IsDue(%s) = %v, want %v", tt.day.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestIsDue_EveryXDays_DeviceTimezone(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatEveryXDays,
		IntervalDays:   3,
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	tokyo := time.FixedZone("UTC+9", 9*3600)

	// Day counting follows the calendar date, not the instant: Jan 4 on a
	// UTC+9 device is 3 whole days after a UTC-parsed Jan 1 start.
	if !IsDue(sched, time.Date(2024, time.January, 4, 0, 0, 0, 0, tokyo), start, end) {
		t.Error("Jan 4 should be due on a UTC+9 device")
	}
	if IsDue(sched, time.Date(2024, time.January, 5, 0, 0, 0, 0, tokyo), start, end) {
		t.Error("Jan 5 should not be due on a UTC+9 device")
	}
}

func TestIsDue_EveryXDays(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatEveryXDays,
		IntervalDays:   3,
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	// Every 3 days starting Jan 1: 1, 4, 7, ..., 31 (11 occurrences).
	var due []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsDue(sched, d, start, end) {
			due = append(due, d)
		}
	}

	if len(due) != 11 {
		t.Fatalf("expected 11 occurrences in January, got %d", len(due))
	}
	for i, d := range due {
		want := start.AddDate(0, 0, i*3)
		if !d.Equal(want) {
			t.Errorf("occurrence %d: got %s, want %s", i, d.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}

	// Day zero always counts as due.
	if !IsDue(sched, start, start, end) {
		t.Error("start date itself should be due")
	}

	// Nothing outside the window.
	if IsDue(sched, date(2024, time.February, 3), start, end) {
		t.Error("date past the end should never be due")
	}
}

func TestIsDue_EveryXDays_DefensiveInterval(t *testing.T) {
	// Interval <= 0 is treated as 1, not an error.
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatEveryXDays,
		IntervalDays:   0,
	}
	start := date(2024, time.March, 1)
	end := date(2024, time.March, 10)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !IsDue(sched, d, start, end) {
			t.Errorf("interval 0 should behave as daily, %s not due", d.Format("2006-01-02"))
		}
	}
}

func TestIsDue_Weekly(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatWeekly,
		Weekday:        "wednesday",
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.December, 31)

	// Across any 7 consecutive days exactly one is due.
	window := date(2024, time.June, 10)
	count := 0
	for i := 0; i < 7; i++ {
		if IsDue(sched, window.AddDate(0, 0, i), start, end) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly 1 due day in a 7-day window, got %d", count)
	}

	// Jan 3 2024 is a Wednesday.
	if !IsDue(sched, date(2024, time.January, 3), start, end) {
		t.Error("expected Wednesday Jan 3 to be due")
	}
	if IsDue(sched, date(2024, time.January, 4), start, end) {
		t.Error("Thursday should not be due")
	}
}

func TestIsDue_Weekly_MissingWeekday(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatWeekly,
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.December, 31)

	// Absent weekday means never due, not daily.
	for i := 0; i < 7; i++ {
		if IsDue(sched, start.AddDate(0, 0, i), start, end) {
			t.Fatal("weekly schedule without a weekday should never be due")
		}
	}
}

func TestIsDue_Monthly_ShortMonthSkipped(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatMonthly,
		MonthDay:       31,
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.April, 30)

	// Jan-Apr 2024 with day 31: only Jan 31 and Mar 31 exist. February
	// and April are skipped entirely, with no rollover to the 30th or 1st.
	var due []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsDue(sched, d, start, end) {
			due = append(due, d)
		}
	}

	if len(due) != 2 {
		t.Fatalf("expected 2 occurrences Jan-Apr, got %d", len(due))
	}
	if !due[0].Equal(date(2024, time.January, 31)) {
		t.Errorf("first occurrence: got %s, want 2024-01-31", due[0].Format("2006-01-02"))
	}
	if !due[1].Equal(date(2024, time.March, 31)) {
		t.Errorf("second occurrence: got %s, want 2024-03-31", due[1].Format("2006-01-02"))
	}
}

func TestIsDue_MalformedPattern(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatPattern("fortnightly"),
	}
	start := date(2024, time.January, 1)
	end := date(2024, time.January, 31)

	if IsDue(sched, date(2024, time.January, 5), start, end) {
		t.Error("unknown repeat pattern must fail closed")
	}
}

func TestIsDue_RangeCheckBeforePattern(t *testing.T) {
	// Even a daily schedule is never due outside the prescription range.
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:00",
		Repeat:         models.RepeatDaily,
	}
	start := date(2024, time.May, 10)
	end := date(2024, time.May, 20)

	if IsDue(sched, date(2024, time.May, 9), start, end) {
		t.Error("day before start should not be due")
	}
	if IsDue(sched, date(2024, time.May, 21), start, end) {
		t.Error("day after end should not be due")
	}
}

func TestTriggerInstant(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "08:30",
		Repeat:         models.RepeatDaily,
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, loc)

	got, err := TriggerInstant(sched, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2024, time.June, 15, 8, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("TriggerInstant = %v, want %v", got, want)
	}
	if got.Location() != loc {
		t.Errorf("trigger should stay in the date's location, got %v", got.Location())
	}
}

func TestTriggerInstant_InvalidTime(t *testing.T) {
	sched := models.Schedule{
		ID:             "s1",
		PrescriptionID: "p1",
		Time:           "25:99",
		Repeat:         models.RepeatDaily,
	}

	if _, err := TriggerInstant(sched, date(2024, time.June, 15)); err == nil {
		t.Error("expected error for malformed time-of-day")
	}
}
