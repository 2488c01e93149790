package booking

import "time"

// DateRange is an inclusive pair of UTC calendar days. Both endpoints are
// booked nights: a range of one day is a single-night stay.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	if in.After(out) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{checkIn: in, checkOut: out}, nil
}

func (r DateRange) CheckIn() time.Time  { return r.checkIn }
func (r DateRange) CheckOut() time.Time { return r.checkOut }

// InclusiveDays counts every booked day in the range, endpoints included.
func (r DateRange) InclusiveDays() int64 {
	return int64(r.checkOut.Sub(r.checkIn)/(24*time.Hour)) + 1
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
