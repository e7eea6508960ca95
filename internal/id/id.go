// Package id formats and parses journal event IDs of the form YYYY-MM-NNN.
// Sequences restart at 1 every month.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatEventID returns an event ID like "2025-01-001".
func FormatEventID(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// ParseEventID parses "2025-01-001" into year, month, seq.
func ParseEventID(id string) (year, month, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid event ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in event ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in event ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range in event ID %q", month, id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in event ID %q: %w", id, err)
	}
	if seq < 1 {
		return 0, 0, 0, fmt.Errorf("sequence %d out of range in event ID %q", seq, id)
	}

	return year, month, seq, nil
}

// Period returns the "YYYY-MM" prefix that groups an event ID's sequence.
// "2025-01-001" -> "2025-01"
func Period(eventID string) string {
	i := strings.LastIndexByte(eventID, '-')
	if i < 0 {
		return ""
	}
	return eventID[:i]
}

// Next returns the ID following the highest sequence among existing in the
// month of at. IDs from other months and malformed IDs are ignored.
func Next(existing []string, at time.Time) string {
	year, month := at.Year(), int(at.Month())
	maxSeq := 0
	for _, e := range existing {
		y, m, s, err := ParseEventID(e)
		if err != nil || y != year || m != month {
			continue
		}
		maxSeq = max(maxSeq, s)
	}
	return FormatEventID(year, month, maxSeq+1)
}
