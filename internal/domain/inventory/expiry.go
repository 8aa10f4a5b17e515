package inventory

import (
	"errors"
	"time"
)

// Date is an expiration date in the store's fixed DDMMYYYY format,
// e.g. "01012030" for January 1st 2030.
type Date string

const dateLayout = "02012006"

var ErrInvalidDate = errors.New("inventory: expiration date must be 8 digits (DDMMYYYY)")

// ParseDate validates s against the DDMMYYYY format.
func ParseDate(s string) (Date, error) {
	if len(s) != 8 {
		return "", ErrInvalidDate
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

// Time returns the calendar day the date denotes.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// ExpiredAt reports whether the date lies strictly before now's calendar day.
// A malformed date counts as expired.
func (d Date) ExpiredAt(now time.Time) bool {
	t, err := d.Time()
	if err != nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.Before(today)
}

func (d Date) String() string { return string(d) }
