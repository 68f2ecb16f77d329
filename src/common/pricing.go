package common

import (
	"math"
	"rephotos/src/models"
)

// DiscountTier is one row of the volume discount table.
type DiscountTier struct {
	Percent  float64 `json:"percent"`
	RangeMin float64 `json:"min"`
	RangeMax float64 `json:"max"`
}

// discountTiers is evaluated highest threshold first; the first row whose
// minimum is covered by the total wins.
var discountTiers = []DiscountTier{
	{Percent: 17, RangeMin: 1100, RangeMax: math.Inf(1)},
	{Percent: 15, RangeMin: 900, RangeMax: 1099.99},
	{Percent: 12, RangeMin: 700, RangeMax: 899.99},
	{Percent: 10, RangeMin: 500, RangeMax: 699.99},
	{Percent: 5, RangeMin: 350, RangeMax: 499.99},
	{Percent: 3, RangeMin: 199.99, RangeMax: 349.99},
}

// noDiscount also catches negative totals; malformed input falls through to
// the 0% tier rather than erroring.
var noDiscount = DiscountTier{Percent: 0, RangeMin: 0, RangeMax: 199.98}

func LineTotal(s models.SelectedService) float64 {
	count := s.Count
	if count < 1 {
		count = 1
	}
	return s.Price * float64(count)
}

func AggregateTotal(services models.ServiceList) float64 {
	var total float64
	for _, s := range services {
		total += LineTotal(s)
	}
	return total
}

func DiscountFor(total float64) DiscountTier {
	for _, tier := range discountTiers {
		if total >= tier.RangeMin {
			return tier
		}
	}
	return noDiscount
}

func ApplyDiscount(total float64) float64 {
	tier := DiscountFor(total)
	return total * (1 - tier.Percent/100)
}
