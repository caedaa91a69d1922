package domain

import "testing"

func TestParseClock(t *testing.T) {
	clock, err := ParseClock("February 23, 2026, 00:00:00")
	if err != nil {
		t.Fatalf("ParseClock returned error: %v", err)
	}
	if got := clock.String(); got != "February 23, 2026, 00:00:00" {
		t.Errorf("String() = %q, want original form back", got)
	}
	if got := clock.DateString(); got != "February 23, 2026" {
		t.Errorf("DateString() = %q, want %q", got, "February 23, 2026")
	}
}

func TestParseClock_DayPadding(t *testing.T) {
	// Чтение принимает день с нулем и без, запись всегда с нулем.
	padded, err := ParseClock("March 01, 2026, 08:00:00")
	if err != nil {
		t.Fatalf("padded day: %v", err)
	}
	bare, err := ParseClock("March 1, 2026, 08:00:00")
	if err != nil {
		t.Fatalf("bare day: %v", err)
	}
	if !padded.Equal(bare) {
		t.Errorf("padded and bare forms must parse to the same clock")
	}
	if got := bare.String(); got != "March 01, 2026, 08:00:00" {
		t.Errorf("String() = %q, want padded day", got)
	}
}

func TestParseClock_Invalid(t *testing.T) {
	tests := []string{
		"",
		"2026-02-23 00:00:00",
		"23 February 2026, 00:00:00",
		"February 23, 2026",
	}

	for _, input := range tests {
		if _, err := ParseClock(input); err == nil {
			t.Errorf("ParseClock(%q) expected error, got nil", input)
		}
	}
}

func TestParseDate(t *testing.T) {
	clock, err := ParseDate("February 23, 2026")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if got := clock.String(); got != "February 23, 2026, 00:00:00" {
		t.Errorf("String() = %q, want midnight clock", got)
	}
}

func TestSimClock_Advance(t *testing.T) {
	tests := []struct {
		start    string
		secs     int
		expected string
	}{
		{"February 23, 2026, 00:00:00", 10, "February 23, 2026, 00:00:10"},
		{"February 23, 2026, 23:59:55", 10, "February 24, 2026, 00:00:05"},
		{"February 23, 2026, 00:00:00", 0, "February 23, 2026, 00:00:00"},
		// Переход месяца: день пишется с ведущим нулем.
		{"February 28, 2026, 23:59:50", 10, "March 01, 2026, 00:00:00"},
	}

	for _, tt := range tests {
		clock, err := ParseClock(tt.start)
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", tt.start, err)
		}
		if got := clock.Advance(tt.secs).String(); got != tt.expected {
			t.Errorf("Advance(%q, %d) = %q, want %q", tt.start, tt.secs, got, tt.expected)
		}
	}
}

func TestSimClock_Advance_DoesNotMutate(t *testing.T) {
	clock, _ := ParseClock("February 23, 2026, 00:00:00")
	_ = clock.Advance(3600)

	if got := clock.String(); got != "February 23, 2026, 00:00:00" {
		t.Errorf("Advance mutated receiver: %q", got)
	}
}

func TestSimClock_Sub(t *testing.T) {
	a, _ := ParseClock("February 23, 2026, 00:00:00")
	b := a.Advance(90)

	if got := b.Sub(a); got != 90 {
		t.Errorf("Sub = %d, want 90", got)
	}
	if got := a.Sub(b); got != -90 {
		t.Errorf("reverse Sub = %d, want -90", got)
	}
}

func TestSimClock_Zero(t *testing.T) {
	var clock SimClock
	if !clock.IsZero() {
		t.Error("zero value must report IsZero")
	}

	parsed, _ := ParseClock("February 23, 2026, 12:30:00")
	if parsed.IsZero() {
		t.Error("parsed clock must not report IsZero")
	}
}
