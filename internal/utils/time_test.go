package utils

import (
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
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation(%q) returned nil location", tt.timezone)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2024-05-01", want: "2024-05-01"},
		{input: "  2024-05-01 ", want: "2024-05-01"},
		{input: "", wantErr: true},
		{input: "2024-5-1", wantErr: true},
		{input: "2024-02-30", wantErr: true},
		{input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "09:00", want: "09:00"},
		{input: "9:05", want: "09:05"},
		{input: "9", want: "09:00"},
		{input: "18", want: "18:00"},
		{input: "23:59", want: "23:59"},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "12:5", wantErr: true},
		{input: "", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "123:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreviousDay(t *testing.T) {
	tests := []struct {
		day  string
		want string
	}{
		{day: "2024-05-02", want: "2024-05-01"},
		{day: "2024-03-01", want: "2024-02-29"},
		{day: "2025-01-01", want: "2024-12-31"},
	}

	for _, tt := range tests {
		got, err := PreviousDay(tt.day)
		if err != nil {
			t.Fatalf("PreviousDay(%q) unexpected error: %v", tt.day, err)
		}
		if got != tt.want {
			t.Errorf("PreviousDay(%q) = %q, want %q", tt.day, got, tt.want)
		}
	}

	if _, err := PreviousDay("not-a-day"); err == nil {
		t.Error("PreviousDay should reject malformed input")
	}
}

func TestFixedClock(t *testing.T) {
	clock := &FixedClock{T: time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)}
	if got := Today(clock); got != "2024-05-01" {
		t.Fatalf("Today = %q, want 2024-05-01", got)
	}

	clock.AdvanceDays(1)
	if got := Today(clock); got != "2024-05-02" {
		t.Errorf("Today after advance = %q, want 2024-05-02", got)
	}

	clock.Set(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if got := Today(clock); got != "2024-12-31" {
		t.Errorf("Today after set = %q, want 2024-12-31", got)
	}
}
