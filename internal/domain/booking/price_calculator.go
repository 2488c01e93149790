package booking

// Prices are integer amounts in the smallest currency unit; no floating
// point arithmetic is involved anywhere in the charge path.

const platformFeePercent = 5

type PriceCalculator interface {
	TotalCents(nightlyCents int64, stay DateRange) (int64, error)
}

type NightlyPriceCalculator struct{}

func NewNightlyPriceCalculator() *NightlyPriceCalculator {
	return &NightlyPriceCalculator{}
}

func (pc *NightlyPriceCalculator) TotalCents(nightlyCents int64, stay DateRange) (int64, error) {
	if nightlyCents <= 0 {
		return 0, ErrInvalidPrice
	}
	return nightlyCents * stay.InclusiveDays(), nil
}

// ApplicationFeeCents is the platform's cut, 5% of the total rounded
// half-up to the nearest unit. It is retained at capture time, not billed
// separately.
func ApplicationFeeCents(totalCents int64) int64 {
	return (totalCents*platformFeePercent + 50) / 100
}
