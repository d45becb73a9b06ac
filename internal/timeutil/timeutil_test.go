package timeutil

import (
	"testing"
	"time"
)

func TestNumericalWeekdayMondayFirst(t *testing.T) {
	// 2026-03-09 is a Monday.
	monday := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

	want := []struct {
		offset int
		num    int
		name   string
	}{
		{0, 0, "Monday"},
		{1, 1, "Tuesday"},
		{5, 5, "Saturday"},
		{6, 6, "Sunday"},
	}
	for _, w := range want {
		day := monday.AddDate(0, 0, w.offset)
		if got := NumericalWeekday(day, time.UTC); got != w.num {
			t.Fatalf("%s: want %d, got %d", w.name, w.num, got)
		}
		if got := WeekdayName(day, time.UTC); got != w.name {
			t.Fatalf("want %s, got %s", w.name, got)
		}
	}
}

func TestLocalFormatting(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC on the 14th is 00:30 on the 15th in Warsaw (CET).
	instant := time.Date(2026, time.March, 14, 23, 30, 0, 0, time.UTC)

	if got := LocalDate(instant, time.UTC); got != "2026-03-14" {
		t.Fatalf("UTC date: got %q", got)
	}
	if got := LocalClock(instant, time.UTC); got != "23:30" {
		t.Fatalf("UTC clock: got %q", got)
	}
	if got := LocalDate(instant, warsaw); got != "2026-03-15" {
		t.Fatalf("Warsaw date: got %q", got)
	}
	if got := LocalClock(instant, warsaw); got != "00:30" {
		t.Fatalf("Warsaw clock: got %q", got)
	}

	// The weekday flips with the date: Saturday in UTC, Sunday in Warsaw.
	if got := NumericalWeekday(instant, time.UTC); got != 5 {
		t.Fatalf("UTC weekday: got %d", got)
	}
	if got := NumericalWeekday(instant, warsaw); got != 6 {
		t.Fatalf("Warsaw weekday: got %d", got)
	}
}
