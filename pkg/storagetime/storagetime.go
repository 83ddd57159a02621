// Package storagetime converts instants into the business-local wall clock
// used for bill dates and builds the time windows aggregates are computed over.
//
// Bill dates are stored as the instant shifted by a fixed UTC offset and
// labelled UTC, so that "2024-01-15 16:00:00" in the bills table means 4pm
// on the shop floor. Expense timestamps are plain UTC and are never shifted.
package storagetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Layout is the canonical storage string for bill dates
	Layout = "2006-01-02 15:04:05"
	// DateLayout is the calendar-day format used by range queries
	DateLayout = "2006-01-02"

	day = 24 * time.Hour
)

// ErrInvalidDate is returned when an input date cannot be parsed
var ErrInvalidDate = errors.New("invalid date")

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	Layout,
	DateLayout,
}

// Normalizer applies the configured business offset
type Normalizer struct {
	offset time.Duration
}

// New creates a normalizer for the given offset east of UTC
func New(offset time.Duration) *Normalizer {
	return &Normalizer{offset: offset}
}

// NewFromString creates a normalizer from an offset such as "+05:30"
func NewFromString(offset string) (*Normalizer, error) {
	d, err := ParseOffset(offset)
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

// ParseOffset parses "+HH:MM", "-HH:MM", "+HHMM", "+HH" or "Z"
func ParseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "Z" || s == "z" {
		return 0, nil
	}

	sign := time.Duration(1)
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	default:
		return 0, fmt.Errorf("invalid utc offset %q: missing sign", s)
	}

	s = strings.ReplaceAll(s, ":", "")
	var hh, mm string
	switch len(s) {
	case 2:
		hh, mm = s, "00"
	case 4:
		hh, mm = s[:2], s[2:]
	default:
		return 0, fmt.Errorf("invalid utc offset %q", s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h > 14 {
		return 0, fmt.Errorf("invalid utc offset hours %q", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return 0, fmt.Errorf("invalid utc offset minutes %q", mm)
	}

	return sign * (time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}

// Offset returns the configured offset
func (n *Normalizer) Offset() time.Duration {
	return n.offset
}

// ToStorage converts an instant into the storage convention
func (n *Normalizer) ToStorage(t time.Time) time.Time {
	return t.UTC().Add(n.offset).Truncate(time.Second)
}

// Format renders a storage value in the canonical layout
func (n *Normalizer) Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// ParseInput parses a caller-supplied date. Values without a zone are UTC.
func ParseInput(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Normalize parses a caller date and converts it into the storage convention
func (n *Normalizer) Normalize(s string) (time.Time, error) {
	t, err := ParseInput(s)
	if err != nil {
		return time.Time{}, err
	}
	return n.ToStorage(t), nil
}

// Restore is Normalize for values a client may be echoing back. A bare
// storage-layout value ("2006-01-02 15:04:05") is already in the storage
// convention and is kept as is; anything else is normalized.
func (n *Normalizer) Restore(s string) (time.Time, error) {
	if t, err := time.Parse(Layout, strings.TrimSpace(s)); err == nil {
		return t, nil
	}
	return n.Normalize(s)
}

// ParseDay parses a "YYYY-MM-DD" calendar day as UTC midnight
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Window is a half-open interval [Start, End)
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Shift moves both bounds by d
func (w Window) Shift(d time.Duration) Window {
	return Window{Start: w.Start.Add(d), End: w.End.Add(d)}
}

// DayRange covers every instant from start 00:00:00 through the end of the
// end day, in plain UTC.
func DayRange(start, end time.Time) Window {
	return Window{
		Start: midnight(start),
		End:   midnight(end).Add(day),
	}
}

// StorageRange converts a plain UTC day range into the storage convention
func (n *Normalizer) StorageRange(w Window) Window {
	return w.Shift(n.offset)
}

// Day returns the storage-convention day containing now
func (n *Normalizer) Day(now time.Time) Window {
	start := midnight(n.ToStorage(now))
	return Window{Start: start, End: start.Add(day)}
}

// PreviousDay returns the storage-convention day before the one containing now
func (n *Normalizer) PreviousDay(now time.Time) Window {
	today := n.Day(now)
	return Window{Start: today.Start.Add(-day), End: today.Start}
}

// Week returns the ISO week (Monday start) containing now
func (n *Normalizer) Week(now time.Time) Window {
	today := n.Day(now).Start
	sinceMonday := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -sinceMonday)
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// Month returns the calendar month containing now
func (n *Normalizer) Month(now time.Time) Window {
	s := n.ToStorage(now)
	start := time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// Year returns the calendar year containing now
func (n *Normalizer) Year(now time.Time) Window {
	s := n.ToStorage(now)
	start := time.Date(s.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(1, 0, 0)}
}

// DayOf truncates a storage value to its calendar day
func DayOf(t time.Time) time.Time {
	return midnight(t)
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
