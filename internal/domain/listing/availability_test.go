//go:build unit

package listing_test

import (
	"encoding/json"
	"testing"
	"time"

	"homestay/internal/domain/listing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAvailabilityIndexWithRange(t *testing.T) {
	t.Run("marks every day of an inclusive range", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()

		extended, err := idx.WithRange(day(2026, time.March, 10), day(2026, time.March, 12))
		require.NoError(t, err)

		assert.Equal(t, 3, extended.Days())
		assert.True(t, extended.IsOccupied(day(2026, time.March, 10)))
		assert.True(t, extended.IsOccupied(day(2026, time.March, 11)))
		assert.True(t, extended.IsOccupied(day(2026, time.March, 12)))
		assert.False(t, extended.IsOccupied(day(2026, time.March, 13)))
	})

	t.Run("single-day stay marks exactly one day", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()

		extended, err := idx.WithRange(day(2026, time.March, 10), day(2026, time.March, 10))
		require.NoError(t, err)
		assert.Equal(t, 1, extended.Days())
	})

	t.Run("rejects a range overlapping an occupied day", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		occupied, err := idx.WithRange(day(2026, time.March, 12), day(2026, time.March, 14))
		require.NoError(t, err)

		_, err = occupied.WithRange(day(2026, time.March, 10), day(2026, time.March, 12))
		assert.ErrorIs(t, err, listing.ErrDateUnavailable)
	})

	t.Run("failed extension leaves the receiver untouched", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		occupied, err := idx.WithRange(day(2026, time.March, 12), day(2026, time.March, 12))
		require.NoError(t, err)

		_, err = occupied.WithRange(day(2026, time.March, 10), day(2026, time.March, 14))
		require.ErrorIs(t, err, listing.ErrDateUnavailable)

		// All-or-nothing: days 10 and 11 were never marked.
		assert.Equal(t, 1, occupied.Days())
		assert.False(t, occupied.IsOccupied(day(2026, time.March, 10)))
		assert.False(t, occupied.IsOccupied(day(2026, time.March, 11)))
	})

	t.Run("rejects check-in after check-out", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()

		_, err := idx.WithRange(day(2026, time.March, 14), day(2026, time.March, 10))
		assert.ErrorIs(t, err, listing.ErrInvalidDateRange)
	})

	t.Run("adjacent ranges do not conflict", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		first, err := idx.WithRange(day(2026, time.March, 10), day(2026, time.March, 12))
		require.NoError(t, err)

		second, err := first.WithRange(day(2026, time.March, 13), day(2026, time.March, 15))
		require.NoError(t, err)
		assert.Equal(t, 6, second.Days())
	})

	t.Run("time of day never affects day identity", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		extended, err := idx.WithRange(
			time.Date(2026, time.March, 10, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.March, 11, 0, 1, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		assert.Equal(t, 2, extended.Days())
		assert.True(t, extended.IsOccupied(time.Date(2026, time.March, 10, 4, 30, 0, 0, time.UTC)))
	})

	t.Run("reads are idempotent", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		extended, err := idx.WithRange(day(2026, time.March, 10), day(2026, time.March, 10))
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			assert.True(t, extended.IsOccupied(day(2026, time.March, 10)))
		}
		assert.Equal(t, 1, extended.Days())
	})
}

func TestAvailabilityIndexJSON(t *testing.T) {
	t.Run("serializes as nested year month day object", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		extended, err := idx.WithRange(day(2026, time.December, 31), day(2027, time.January, 1))
		require.NoError(t, err)

		data, err := json.Marshal(extended)
		require.NoError(t, err)
		assert.JSONEq(t, `{"2026":{"12":{"31":true}},"2027":{"1":{"1":true}}}`, string(data))
	})

	t.Run("empty index serializes as empty object", func(t *testing.T) {
		data, err := json.Marshal(listing.NewAvailabilityIndex())
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("round trips through the wire form", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		extended, err := idx.WithRange(day(2026, time.March, 10), day(2026, time.March, 12))
		require.NoError(t, err)

		data, err := json.Marshal(extended)
		require.NoError(t, err)

		var decoded listing.AvailabilityIndex
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, 3, decoded.Days())
		assert.True(t, decoded.IsOccupied(day(2026, time.March, 11)))
	})

	t.Run("wire form matches the stored calendar shape", func(t *testing.T) {
		idx := listing.NewAvailabilityIndex()
		extended, err := idx.WithRange(day(2026, time.March, 10), day(2026, time.March, 12))
		require.NoError(t, err)

		data, err := json.Marshal(extended)
		require.NoError(t, err)

		var got map[string]map[string]map[string]bool
		require.NoError(t, json.Unmarshal(data, &got))

		want := map[string]map[string]map[string]bool{
			"2026": {"3": {"10": true, "11": true, "12": true}},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("calendar mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("false leaves are ignored on decode", func(t *testing.T) {
		var decoded listing.AvailabilityIndex
		require.NoError(t, json.Unmarshal([]byte(`{"2026":{"3":{"10":true,"11":false}}}`), &decoded))

		assert.True(t, decoded.IsOccupied(day(2026, time.March, 10)))
		assert.False(t, decoded.IsOccupied(day(2026, time.March, 11)))
	})
}
