package utils

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
		ok   bool
	}{
		{"monday", time.Monday, true},
		{"Sunday", time.Sunday, true},
		{"  FRIDAY ", time.Friday, true},
		{"funday", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := ParseWeekday(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDayNameRoundTrip(t *testing.T) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := DayName(wd)
		back, ok := ParseWeekday(name)
		if !ok || back != wd {
			t.Errorf("ParseWeekday(DayName(%v)) = %v, %v", wd, back, ok)
		}
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	got := CombineDateTime(date, "14:30")
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("CombineDateTime clock = %02d:%02d, want 14:30", got.Hour(), got.Minute())
	}
	if got.Year() != 2024 || got.Month() != time.May || got.Day() != 1 {
		t.Errorf("CombineDateTime date = %v, want 2024-05-01", got)
	}

	// junk input falls back to midnight
	midnight := CombineDateTime(date, "half past two")
	if midnight.Hour() != 0 || midnight.Minute() != 0 {
		t.Errorf("CombineDateTime fallback = %02d:%02d, want 00:00", midnight.Hour(), midnight.Minute())
	}
}

func TestFormatSessionSchedule(t *testing.T) {
	date := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	got := FormatSessionSchedule(date, "10:00", "10:30")
	if got != "2024-05-01 10:00-10:30" {
		t.Errorf("FormatSessionSchedule = %q", got)
	}
}

func TestTitleName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"jacob mathew", "Jacob Mathew"},
		{"  amara n  ", "Amara N"},
		{"FARIDA", "Farida"},
	}
	for _, tc := range tests {
		if got := TitleName(tc.in); got != tc.want {
			t.Errorf("TitleName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
