package utils

import (
	"errors"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Europe/London", timezone: "Europe/London", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 3, 5, 23, 59, 59, 999, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", in, got, want)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-05", time.UTC)
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 5 || got.Hour() != 0 {
		t.Errorf("unexpected parsed date: %v", got)
	}

	_, err = ParseDate("05/03/2024", time.UTC)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestIsDateKey(t *testing.T) {
	valid := []string{"2024-03-05", "1999-12-31"}
	invalid := []string{"2024-3-5", "2024-02-30", "garbage", ""}

	for _, s := range valid {
		if !IsDateKey(s) {
			t.Errorf("expected %q to be a date key", s)
		}
	}
	for _, s := range invalid {
		if IsDateKey(s) {
			t.Errorf("expected %q not to be a date key", s)
		}
	}
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	got, err := ResolveDate("", now)
	if err != nil || got != "2024-03-10" {
		t.Errorf("ResolveDate(\"\") = %q, %v; want 2024-03-10", got, err)
	}

	got, err = ResolveDate("2024-03-01", now)
	if err != nil || got != "2024-03-01" {
		t.Errorf("ResolveDate(2024-03-01) = %q, %v", got, err)
	}

	if _, err := ResolveDate("tomorrow", now); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-03")
	if err != nil {
		t.Fatalf("ParseMonth returned error: %v", err)
	}
	if year != 2024 || month != time.March {
		t.Errorf("ParseMonth = %d-%v, want 2024-March", year, month)
	}

	if _, _, err := ParseMonth("March"); err == nil {
		t.Error("expected error for invalid month")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:05", 545, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9am", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
