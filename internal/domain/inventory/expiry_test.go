package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("01012030")
	require.NoError(t, err)
	assert.Equal(t, Date("01012030"), d)

	for _, raw := range []string{"", "0101203", "010120300", "99992030", "abcdefgh"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", raw)
	}
}

func TestExpiredAt(t *testing.T) {
	now := time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		date    Date
		expired bool
	}{
		{"31082026", true},  // yesterday
		{"01092026", false}, // today keeps until end of day
		{"02092026", false}, // tomorrow
		{"01012030", false},
		{"01011999", true},
		{"notadate", true}, // malformed counts as expired
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expired, tc.date.ExpiredAt(now), "date %s", tc.date)
	}
}

func TestItemDeduct(t *testing.T) {
	item, err := NewItem("Paracetamol", 10, 5.0, "01012030")
	require.NoError(t, err)

	require.NoError(t, item.Deduct(4))
	assert.Equal(t, 6, item.Quantity)

	assert.ErrorIs(t, item.Deduct(7), ErrInsufficientStock)
	assert.Equal(t, 6, item.Quantity)

	assert.ErrorIs(t, item.Deduct(0), ErrInvalidQuantity)
	assert.ErrorIs(t, item.Deduct(-1), ErrInvalidQuantity)
}

func TestNewItemRejectsNegativeQuantity(t *testing.T) {
	_, err := NewItem("Paracetamol", -1, 5.0, "01012030")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}
