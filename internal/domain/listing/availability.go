package listing

import (
	"encoding/json"
	"strconv"
	"time"
)

// DayKey identifies one UTC calendar day. Only year, month and day are
// compared, so DST shifts can never split or merge a booked day.
type DayKey struct {
	Year  int
	Month int
	Day   int
}

func DayKeyOf(t time.Time) DayKey {
	u := t.UTC()
	return DayKey{Year: u.Year(), Month: int(u.Month()), Day: u.Day()}
}

// AvailabilityIndex is the set of calendar days already booked on a
// listing. Values are immutable: WithRange returns a new index and never
// touches its receiver, so a failed extension leaves the caller's copy
// exactly as it was.
type AvailabilityIndex struct {
	days map[DayKey]struct{}
}

func NewAvailabilityIndex() AvailabilityIndex {
	return AvailabilityIndex{days: map[DayKey]struct{}{}}
}

func (idx AvailabilityIndex) IsOccupied(t time.Time) bool {
	_, ok := idx.days[DayKeyOf(t)]
	return ok
}

func (idx AvailabilityIndex) Days() int {
	return len(idx.days)
}

func (idx AvailabilityIndex) Clone() AvailabilityIndex {
	cloned := make(map[DayKey]struct{}, len(idx.days))
	for k := range idx.days {
		cloned[k] = struct{}{}
	}
	return AvailabilityIndex{days: cloned}
}

// WithRange marks every day from checkIn to checkOut inclusive and returns
// the extended index. If any day in the range is already occupied it
// returns ErrDateUnavailable and no days are marked (all-or-nothing).
func (idx AvailabilityIndex) WithRange(checkIn, checkOut time.Time) (AvailabilityIndex, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if in.After(out) {
		return AvailabilityIndex{}, ErrInvalidDateRange
	}

	extended := idx.Clone()
	for cursor := in; !cursor.After(out); cursor = cursor.AddDate(0, 0, 1) {
		key := DayKeyOf(cursor)
		if _, occupied := extended.days[key]; occupied {
			return AvailabilityIndex{}, ErrDateUnavailable
		}
		extended.days[key] = struct{}{}
	}

	return extended, nil
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MarshalJSON serializes the index in its wire form: a sparse object keyed
// by year, then month (1-12), then day, with true leaves. Absent keys mean
// "not booked".
func (idx AvailabilityIndex) MarshalJSON() ([]byte, error) {
	nested := map[string]map[string]map[string]bool{}
	for key := range idx.days {
		year := strconv.Itoa(key.Year)
		month := strconv.Itoa(key.Month)
		day := strconv.Itoa(key.Day)

		if nested[year] == nil {
			nested[year] = map[string]map[string]bool{}
		}
		if nested[year][month] == nil {
			nested[year][month] = map[string]bool{}
		}
		nested[year][month][day] = true
	}
	return json.Marshal(nested)
}

func (idx *AvailabilityIndex) UnmarshalJSON(data []byte) error {
	var nested map[string]map[string]map[string]bool
	if err := json.Unmarshal(data, &nested); err != nil {
		return err
	}

	days := map[DayKey]struct{}{}
	for yearStr, months := range nested {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return err
		}
		for monthStr, daysOfMonth := range months {
			month, err := strconv.Atoi(monthStr)
			if err != nil {
				return err
			}
			for dayStr, booked := range daysOfMonth {
				if !booked {
					continue
				}
				day, err := strconv.Atoi(dayStr)
				if err != nil {
					return err
				}
				days[DayKey{Year: year, Month: month, Day: day}] = struct{}{}
			}
		}
	}

	idx.days = days
	return nil
}
