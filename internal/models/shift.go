package models

import (
	"strconv"
	"strings"
)

// ShiftStartMinutes parses the start of a shift window such as
// "07:00-10:00" into minutes since midnight. Malformed shifts sort last.
func ShiftStartMinutes(shift string) int {
	start, _, ok := strings.Cut(shift, "-")
	if !ok {
		return 1 << 20
	}
	hh, mm, ok := strings.Cut(strings.TrimSpace(start), ":")
	if !ok {
		return 1 << 20
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 1 << 20
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 1 << 20
	}
	return h*60 + m
}

// ShiftBefore orders two shift windows by their canonical start time.
func ShiftBefore(a, b string) bool {
	return ShiftStartMinutes(a) < ShiftStartMinutes(b)
}
