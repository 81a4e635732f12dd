package emu

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	for _, c := range []struct {
		in   string
		want time.Duration
	}{
		{"500Hz", 2 * time.Millisecond},
		{"500hz", 2 * time.Millisecond},
		{"60HZ", time.Second / 60},
		{"1000 Hz", time.Millisecond},
		{"1MHz", time.Microsecond},
		{"1.5MHz", 666 * time.Nanosecond},
		{"0.5Hz", 2 * time.Second},
		{"1GHz", time.Nanosecond},
		{"2ghz", time.Nanosecond},
		{"0.125Hz", 8 * time.Second},
	} {
		got, err := ParseClock(c.in)
		if err != nil {
			t.Errorf("ParseClock(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseClockErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"500",
		"Hz",
		"5kHz",
		"500 bogus",
		"-1Hz",
		"0Hz",
		"0.0MHz",
		"1.Hz",
		"500Hz extra",
		"0.0000000001Hz",
		"0.00000000001Hz",
	} {
		d, err := ParseClock(in)
		if err == nil {
			t.Errorf("ParseClock(%q) = %v, want error", in, d)
			continue
		}
		if !errors.Is(err, ErrClock) {
			t.Errorf("ParseClock(%q) error %v does not wrap ErrClock", in, err)
		}
	}
}
