package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a wall-clock position within a day, in minutes since midnight.
//
// Hours are not wrapped at 24: a long day may schedule a slot at "25:15".
// Keeping the value unbounded preserves strict ordering between slots.
type ClockTime int

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

// Add advances c by d, truncated to whole minutes.
func (c ClockTime) Add(d time.Duration) ClockTime {
	return c + ClockTime(d/time.Minute)
}

// Sub returns the duration between c and earlier.
func (c ClockTime) Sub(earlier ClockTime) time.Duration {
	return time.Duration(c-earlier) * time.Minute
}

// String renders the time as zero-padded HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ParseClockTime parses an HH:MM string.
func ParseClockTime(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock time %q: missing ':'", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 {
		return 0, fmt.Errorf("parse clock time %q: invalid hour", s)
	}

	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse clock time %q: invalid minute", s)
	}

	return NewClockTime(hour, minute), nil
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClockTime(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
