package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateLayout,
			dateStr:  "2025-01-01",
			expected: "2025-01-01",
		},
		{
			name:     "Leap day",
			layout:   DateLayout,
			dateStr:  "2024-02-29",
			expected: "2024-02-29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Plain date", input: "2025-01-01", want: "2025-01-01"},
		{name: "Surrounding whitespace", input: " 2025-06-15 ", want: "2025-06-15"},
		{name: "Month only", input: "2025-01", wantErr: true},
		{name: "Impossible day", input: "2025-02-30", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got.Format(DateLayout) != tt.want {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.input, got.Format(DateLayout), tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseDate(%q) location = %v, expected UTC", tt.input, got.Location())
			}
		})
	}
}

func TestAddMonthsRollover(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		months   int
		expected string
	}{
		{"First of month", "2025-01-01", 1, "2025-02-01"},
		{"Year boundary", "2025-12-15", 1, "2026-01-15"},
		{"Jan 31 rolls past February", "2025-01-31", 1, "2025-03-03"},
		{"Jan 31 in leap year", "2024-01-31", 1, "2024-03-02"},
		{"Mar 31 rolls past April", "2025-03-31", 1, "2025-05-01"},
		{"Offset applied from start, not chained", "2025-01-31", 2, "2025-03-31"},
		{"Leap day plus a year", "2024-02-29", 12, "2025-03-01"},
		{"Twelve months", "2025-01-01", 12, "2026-01-01"},
		{"Negative offset", "2025-03-15", -3, "2024-12-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MustParseTime(DateLayout, tt.start)
			result := AddMonths(start, tt.months).Format(DateLayout)
			if result != tt.expected {
				t.Errorf("AddMonths(%s, %d) = %s, expected %s", tt.start, tt.months, result, tt.expected)
			}
		})
	}
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{name: "Add multiple years", date: "2025-01-01", months: 24, expected: "2027-01-01"},
		{name: "Subtract multiple years", date: "2025-01-01", months: -24, expected: "2023-01-01"},
		{name: "Rollover", date: "2025-08-31", months: 1, expected: "2025-10-01"},
		{name: "Invalid date", date: "not-a-date", months: 1, expected: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateLayout, tt.months)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OffsetDate() error = %v, wantErr %t", err, tt.wantErr)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %s, expected %s", result, tt.expected)
			}
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	date := MustParseTime(DateLayout, "2025-02-01")
	if got := FormatDisplay(date); got != "01 Feb 25" {
		t.Errorf("FormatDisplay() = %s, expected 01 Feb 25", got)
	}
}
