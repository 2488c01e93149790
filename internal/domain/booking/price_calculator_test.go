//go:build unit

package booking_test

import (
	"testing"
	"time"

	"homestay/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stay(t *testing.T, in, out time.Time) booking.DateRange {
	t.Helper()
	r, err := booking.NewDateRange(in, out)
	require.NoError(t, err)
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNightlyPriceCalculator(t *testing.T) {
	calc := booking.NewNightlyPriceCalculator()

	t.Run("total is nightly price times inclusive days", func(t *testing.T) {
		r := stay(t, day(2026, time.March, 10), day(2026, time.March, 12))

		total, err := calc.TotalCents(10000, r)
		require.NoError(t, err)
		assert.Equal(t, int64(30000), total)
	})

	t.Run("single-day stay is charged one night", func(t *testing.T) {
		r := stay(t, day(2026, time.March, 10), day(2026, time.March, 10))

		total, err := calc.TotalCents(12424, r)
		require.NoError(t, err)
		assert.Equal(t, int64(12424), total)
	})

	t.Run("rejects zero nightly price", func(t *testing.T) {
		r := stay(t, day(2026, time.March, 10), day(2026, time.March, 10))

		_, err := calc.TotalCents(0, r)
		assert.ErrorIs(t, err, booking.ErrInvalidPrice)
	})

	t.Run("rejects negative nightly price", func(t *testing.T) {
		r := stay(t, day(2026, time.March, 10), day(2026, time.March, 10))

		_, err := calc.TotalCents(-500, r)
		assert.ErrorIs(t, err, booking.ErrInvalidPrice)
	})
}

func TestApplicationFeeCents(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		fee   int64
	}{
		{name: "exact division", total: 30000, fee: 1500},
		{name: "rounds half up", total: 10, fee: 1},
		{name: "rounds down below half", total: 9, fee: 0},
		{name: "large totals stay exact", total: 1234567, fee: 61728},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.fee, booking.ApplicationFeeCents(tc.total))
		})
	}
}

func TestDateRange(t *testing.T) {
	t.Run("rejects reversed endpoints", func(t *testing.T) {
		_, err := booking.NewDateRange(day(2026, time.March, 12), day(2026, time.March, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("truncates endpoints to UTC days", func(t *testing.T) {
		r, err := booking.NewDateRange(
			time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC),
			time.Date(2026, time.March, 12, 2, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		assert.Equal(t, day(2026, time.March, 10), r.CheckIn())
		assert.Equal(t, day(2026, time.March, 12), r.CheckOut())
		assert.Equal(t, int64(3), r.InclusiveDays())
	})

	t.Run("counts days across month boundaries", func(t *testing.T) {
		r := stay(t, day(2026, time.January, 30), day(2026, time.February, 2))
		assert.Equal(t, int64(4), r.InclusiveDays())
	})
}
