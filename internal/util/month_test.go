package util

import (
	"testing"
	"time"
)

func TestDateOf_UsesLocation(t *testing.T) {
	manila, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	// 2024-05-31 20:00 UTC is already 2024-06-01 in Manila (UTC+8)
	instant := time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)

	got := DateOf(instant, manila)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}

	gotUTC := DateOf(instant, nil)
	wantUTC := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	if !gotUTC.Equal(wantUTC) {
		t.Errorf("DateOf(nil loc) = %v, want %v", gotUTC, wantUTC)
	}
}

func TestMonthStartAndEnd(t *testing.T) {
	tests := []struct {
		date      time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			date:      time.Date(2024, 2, 17, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // leap year
		},
		{
			date:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		if got := MonthStart(tt.date); !got.Equal(tt.wantStart) {
			t.Errorf("MonthStart(%v) = %v, want %v", tt.date, got, tt.wantStart)
		}
		if got := MonthEnd(tt.date); !got.Equal(tt.wantEnd) {
			t.Errorf("MonthEnd(%v) = %v, want %v", tt.date, got, tt.wantEnd)
		}
	}
}

func TestIsMonthStart(t *testing.T) {
	if !IsMonthStart(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected 2024-05-01 to be a month start")
	}
	if IsMonthStart(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("Expected 2024-05-02 not to be a month start")
	}
}

func TestYearMonth(t *testing.T) {
	got, err := YearMonth(2024, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("YearMonth(2024, 5) = %v", got)
	}

	if _, err := YearMonth(2024, 13); err == nil {
		t.Error("Expected error for month 13")
	}
	if _, err := YearMonth(2024, 0); err == nil {
		t.Error("Expected error for month 0")
	}
}

func TestMinDate(t *testing.T) {
	a := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	if got := MinDate(a, b); !got.Equal(a) {
		t.Errorf("MinDate() = %v, want %v", got, a)
	}
	if got := MinDate(b, a); !got.Equal(a) {
		t.Errorf("MinDate() = %v, want %v", got, a)
	}
}
