package gamedata

import (
	"fmt"
	"strconv"
	"strings"
)

// GameClock is a time within a period, as sources print it ("MM:SS").
// Sources disagree on rounding, so comparisons use absolute second
// differences rather than equality.
type GameClock struct {
	Minutes int `json:"minutes" yaml:"minutes"`
	Seconds int `json:"seconds" yaml:"seconds"`
}

// ParseClock parses a "MM:SS" clock string.
func ParseClock(s string) (GameClock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return GameClock{}, fmt.Errorf("malformed clock %q", s)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return GameClock{}, fmt.Errorf("malformed clock %q: %w", s, err)
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return GameClock{}, fmt.Errorf("malformed clock %q: %w", s, err)
	}
	if minutes < 0 || seconds < 0 || seconds > 59 {
		return GameClock{}, fmt.Errorf("clock %q out of range", s)
	}
	return GameClock{Minutes: minutes, Seconds: seconds}, nil
}

// MustClock parses a "MM:SS" clock string and panics on failure.
// Intended for fixtures and tests.
func MustClock(s string) GameClock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the clock as "MM:SS".
func (c GameClock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Minutes, c.Seconds)
}

// TotalSeconds returns the clock as seconds within the period.
func (c GameClock) TotalSeconds() int {
	return c.Minutes*60 + c.Seconds
}

// DiffSeconds returns the absolute difference between two clocks in seconds.
func (c GameClock) DiffSeconds(other GameClock) int {
	d := c.TotalSeconds() - other.TotalSeconds()
	if d < 0 {
		d = -d
	}
	return d
}

// Equal reports whether two clocks read the same time.
func (c GameClock) Equal(other GameClock) bool {
	return c.Minutes == other.Minutes && c.Seconds == other.Seconds
}
