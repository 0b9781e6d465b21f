package capgains

import (
	"maps"
	"slices"
)

// YearlyGains holds realized capital gains by calendar year.
type YearlyGains map[int]Money

// AggregateByYear sums capital gains by the year of their sale.
func AggregateByYear(gains []RealizedGain) YearlyGains {
	yearly := make(YearlyGains)
	for _, g := range gains {
		year := g.Sale.Date.Year()
		yearly[year] = yearly[year].Add(g.CapitalGains)
	}
	return yearly
}

// Years returns the years in ascending order.
func (y YearlyGains) Years() []int { return slices.Sorted(maps.Keys(y)) }

// Total returns the sum over all years.
func (y YearlyGains) Total() Money {
	var total Money
	for _, year := range y.Years() {
		total = total.Add(y[year])
	}
	return total
}
