package utils

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{3012.5, "3,012.50"},
		{1, "1.00"},
		{0.5, "0.5000"},
		{0.01, "0.0100"},
		{0.00001234, "0.00001234"},
		{0, "0.00000000"},
		{1234567.891, "1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		n        float64
		decimals int
		want     string
	}{
		{2.5e9, 2, "2.50B"},
		{1500000, 2, "1.50M"},
		{12500, 2, "12.50K"},
		{950, 2, "950.00"},
		{4210, 0, "4K"},
		{-2e6, 1, "-2.0M"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.n, tt.decimals); got != tt.want {
			t.Errorf("FormatCompact(%v, %d) = %q, want %q", tt.n, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatFull(t *testing.T) {
	tests := []struct {
		n        float64
		decimals int
		want     string
	}{
		{0, 0, "0"},
		{999, 0, "999"},
		{1000, 0, "1,000"},
		{310000000, 2, "310,000,000.00"},
		{-12345.6, 1, "-12,345.6"},
		{-0.001, 2, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatFull(tt.n, tt.decimals); got != tt.want {
			t.Errorf("FormatFull(%v, %d) = %q, want %q", tt.n, tt.decimals, got, tt.want)
		}
	}
}

func TestFormatPct(t *testing.T) {
	if got := FormatPct(2.45); got != "+2.45%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPct(-1.234); got != "-1.23%" {
		t.Errorf("got %q", got)
	}
	if got := FormatPct(0); got != "+0.00%" {
		t.Errorf("got %q", got)
	}
}

func TestShortAddress(t *testing.T) {
	tests := map[string]string{
		"": "-",
		"0x1234":                                     "0x1234",
		"0x88e6a0c2ddd26feeb64f039a2c41296fcb3f5640": "0x88e6...5640",
	}
	for in, want := range tests {
		if got := ShortAddress(in); got != want {
			t.Errorf("ShortAddress(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	tests := []struct {
		t    *time.Time
		want string
	}{
		{nil, "-"},
		{at(30 * time.Second), "30s"},
		{at(12 * time.Minute), "12m"},
		{at(5 * time.Hour), "5h"},
		{at(72 * time.Hour), "3d"},
		{at(800 * 24 * time.Hour), "2y"},
		{at(-time.Hour), "0s"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.t, now); got != tt.want {
			t.Errorf("FormatAge = %q, want %q", got, tt.want)
		}
	}
}
