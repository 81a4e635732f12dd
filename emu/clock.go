package emu

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultClock is the interpreter clock rate used when none is given.
const DefaultClock = "500Hz"

// ErrClock is returned by ParseClock for a malformed clock rate.
var ErrClock = errors.New("invalid clock rate")

var clockRE = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([a-zA-Z]+)\s*$`)

var clockUnits = map[string]float64{
	"hz":  1,
	"mhz": 1e6,
	"ghz": 1e9,
}

// ParseClock parses a clock rate such as "500Hz", "1.5MHz" or "2ghz" and
// returns the interval between interpreter cycles.
func ParseClock(s string) (time.Duration, error) {
	m := clockRE.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w %q: want <number><Hz|MHz|GHz>", ErrClock, s)
	}
	mult, ok := clockUnits[strings.ToLower(m[2])]
	if !ok {
		return 0, fmt.Errorf("%w %q: unit must be Hz, MHz or GHz", ErrClock, s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrClock, s, err)
	}
	hz := n * mult
	if hz <= 0 {
		return 0, fmt.Errorf("%w %q: frequency must be positive", ErrClock, s)
	}
	ns := float64(time.Second) / hz
	if ns >= math.MaxInt64 {
		return 0, fmt.Errorf("%w %q: frequency too low", ErrClock, s)
	}
	if ns < 1 {
		// Faster than the timer resolution.
		return 1, nil
	}
	return time.Duration(ns), nil
}
