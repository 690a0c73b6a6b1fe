package series

import (
	"sort"
	"time"

	"github.com/de-tools/price-atlas/pkg/models/domain"
)

// ForwardFill returns a copy of points where every missing value is replaced
// by the nearest preceding non-missing value. A leading run of missing values
// stays missing. The input order is assumed chronological, which is how the
// backend emits the series.
func ForwardFill(points []domain.PricePoint) []domain.PricePoint {
	filled := make([]domain.PricePoint, len(points))
	copy(filled, points)

	var last *float64
	for i := range filled {
		if filled[i].Value != nil {
			v := *filled[i].Value
			last = &v
			continue
		}
		if last != nil {
			v := *last
			filled[i].Value = &v
		}
	}
	return filled
}

type groupKey struct {
	product string
	date    time.Time
}

type accumulator struct {
	sum     float64
	count   int
	minDate time.Time
}

func (a *accumulator) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	m := a.sum / float64(a.count)
	return &m
}

// MonthlyMean groups points by (product, calendar month) and averages the
// non-missing values; the first of the month represents each group. A group
// with no observed values stays missing. Output is sorted by product, then
// month, so repeated runs write identical files.
func MonthlyMean(points []domain.PricePoint) []domain.PricePoint {
	groups := make(map[groupKey]*accumulator)
	for _, p := range points {
		month := time.Date(p.Date.Year(), p.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		key := groupKey{product: p.Product, date: month}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{}
			groups[key] = acc
		}
		if p.Value != nil {
			acc.sum += *p.Value
			acc.count++
		}
	}
	return collect(groups, func(key groupKey, acc *accumulator) time.Time { return key.date })
}

// OverallMean reduces the series to one point per product: the mean of all
// non-missing values, dated at the product's earliest record.
func OverallMean(points []domain.PricePoint) []domain.PricePoint {
	groups := make(map[groupKey]*accumulator)
	for _, p := range points {
		key := groupKey{product: p.Product}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{minDate: p.Date}
			groups[key] = acc
		}
		if p.Date.Before(acc.minDate) {
			acc.minDate = p.Date
		}
		if p.Value != nil {
			acc.sum += *p.Value
			acc.count++
		}
	}
	return collect(groups, func(key groupKey, acc *accumulator) time.Time { return acc.minDate })
}

func collect(groups map[groupKey]*accumulator, date func(groupKey, *accumulator) time.Time) []domain.PricePoint {
	result := make([]domain.PricePoint, 0, len(groups))
	for key, acc := range groups {
		result = append(result, domain.PricePoint{
			Date:    date(key, acc),
			Product: key.product,
			Value:   acc.mean(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Product != result[j].Product {
			return result[i].Product < result[j].Product
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// Summarize reports how many distinct days the series covers and its date range.
func Summarize(points []domain.PricePoint) domain.Coverage {
	if len(points) == 0 {
		return domain.Coverage{}
	}

	seen := make(map[time.Time]struct{}, len(points))
	cov := domain.Coverage{First: points[0].Date, Last: points[0].Date}
	for _, p := range points {
		seen[p.Date] = struct{}{}
		if p.Date.Before(cov.First) {
			cov.First = p.Date
		}
		if p.Date.After(cov.Last) {
			cov.Last = p.Date
		}
	}
	cov.Days = len(seen)
	return cov
}
