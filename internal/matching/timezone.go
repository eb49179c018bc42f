package matching

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOffset parses a UTC offset such as "+03:00", "-0530", "+3" or "Z"
// into minutes east of UTC.
func ParseOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, fmt.Errorf("empty offset")
	case "Z", "UTC", "GMT":
		return 0, nil
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "UTC"), "GMT")
	if s == "" {
		return 0, fmt.Errorf("empty offset")
	}

	sign := 1
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	default:
		return 0, fmt.Errorf("offset %q must start with + or -", s)
	}

	var hh, mm string
	switch {
	case strings.Contains(s, ":"):
		parts := strings.SplitN(s, ":", 2)
		hh, mm = parts[0], parts[1]
	case len(s) == 4:
		hh, mm = s[:2], s[2:]
	default:
		hh, mm = s, "0"
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 14 {
		return 0, fmt.Errorf("invalid offset hours %q", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid offset minutes %q", mm)
	}
	return sign * (h*60 + m), nil
}

// TimezoneRange is an inclusive range of offsets in minutes.
type TimezoneRange struct {
	Min int
	Max int
}

// ParseTimezoneRange parses "min..max", ex: "+02:00..+05:00".
func ParseTimezoneRange(s string) (TimezoneRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "..")
	if len(parts) != 2 {
		return TimezoneRange{}, fmt.Errorf("timezone range %q must look like +HH:MM..+HH:MM", s)
	}
	lo, err := ParseOffset(parts[0])
	if err != nil {
		return TimezoneRange{}, fmt.Errorf("timezone range %q: %w", s, err)
	}
	hi, err := ParseOffset(parts[1])
	if err != nil {
		return TimezoneRange{}, fmt.Errorf("timezone range %q: %w", s, err)
	}
	if lo > hi {
		return TimezoneRange{}, fmt.Errorf("timezone range %q: min after max", s)
	}
	return TimezoneRange{Min: lo, Max: hi}, nil
}

func (r TimezoneRange) Contains(offset int) bool {
	return offset >= r.Min && offset <= r.Max
}

// InRange reports whether the candidate offset tz lies in r. An unparseable
// offset is never in range.
func (r TimezoneRange) InRange(tz string) bool {
	off, err := ParseOffset(tz)
	if err != nil {
		return false
	}
	return r.Contains(off)
}
