package schedule

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 14, hour, minute, 0, 0, time.UTC)
}

func TestOpenHoursCheckSameDayWindow(t *testing.T) {
	hours := OpenHours{OpenHour: 9, CloseHour: 23}

	cases := []struct {
		name     string
		when     time.Time
		duration time.Duration
		wantErr  string
	}{
		{"well inside", at(14, 0), 2 * time.Hour, ""},
		{"starts at opening", at(9, 0), 2 * time.Hour, ""},
		{"ends exactly at closing", at(21, 0), 2 * time.Hour, ""},
		{"starts before opening", at(8, 59), time.Hour, "starts before opening"},
		{"starts at closing", at(23, 0), time.Hour, "starts at or after closing"},
		{"runs past closing", at(22, 0), 2 * time.Hour, "ends after closing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := hours.Check(tc.when, tc.duration, time.UTC)
			checkHoursResult(t, err, tc.wantErr)
		})
	}
}

func TestOpenHoursCheckMidnightCrossing(t *testing.T) {
	// Open 09:00, close 02:00 the next day.
	hours := OpenHours{OpenHour: 9, CloseHour: 2}

	cases := []struct {
		name     string
		when     time.Time
		duration time.Duration
		wantErr  string
	}{
		{"evening start crossing midnight", at(23, 0), 2 * time.Hour, ""},
		{"small-hours start before closing", at(1, 0), time.Hour, ""},
		{"start inside the closed gap", at(3, 0), time.Hour, "starts while the cinema is closed"},
		{"start just before reopening", at(8, 59), time.Hour, "starts while the cinema is closed"},
		{"evening start running past closing", at(23, 30), 3 * time.Hour, "ends after closing"},
		{"small-hours start running past closing", at(1, 30), time.Hour, "ends after closing"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := hours.Check(tc.when, tc.duration, time.UTC)
			checkHoursResult(t, err, tc.wantErr)
		})
	}
}

func TestOpenHoursCheckRespectsLocation(t *testing.T) {
	hours := OpenHours{OpenHour: 9, CloseHour: 23}
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 07:30 UTC in March is 08:30 in Warsaw (CET, UTC+1), before opening.
	when := time.Date(2026, time.March, 14, 7, 30, 0, 0, time.UTC)
	if err := hours.Check(when, time.Hour, warsaw); err == nil {
		t.Fatal("expected rejection for start before local opening")
	}
	// The same instant evaluated against UTC is 07:30 and also rejected, but
	// 08:30 UTC is fine in Warsaw (09:30 local).
	when = time.Date(2026, time.March, 14, 8, 30, 0, 0, time.UTC)
	if err := hours.Check(when, time.Hour, warsaw); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
}

func checkHoursResult(t *testing.T, err error, wantReason string) {
	t.Helper()
	if wantReason == "" {
		if err != nil {
			t.Fatalf("unexpected rejection: %v", err)
		}
		return
	}
	ohe, ok := err.(*OutOfHoursError)
	if !ok {
		t.Fatalf("want *OutOfHoursError with reason %q, got %v", wantReason, err)
	}
	if ohe.Reason != wantReason {
		t.Fatalf("want reason %q, got %q", wantReason, ohe.Reason)
	}
}
