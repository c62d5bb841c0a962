package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/citanz/dashboard/backend/internal/domain"
)

// PaymentDistribution counts payments per exact amount. Payments without a
// parsable amount are skipped. Ordered by count descending, then amount.
func (e *Engine) PaymentDistribution(payments []domain.PaymentRecord) []domain.AmountCount {
	type bucket struct {
		amount decimal.Decimal
		count  int
	}
	index := make(map[string]int)
	var buckets []bucket
	for _, p := range payments {
		if !p.Amount.Valid {
			continue
		}
		key := p.Amount.Decimal.String()
		if i, ok := index[key]; ok {
			buckets[i].count++
			continue
		}
		index[key] = len(buckets)
		buckets = append(buckets, bucket{amount: p.Amount.Decimal, count: 1})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].amount.LessThan(buckets[j].amount)
	})

	out := make([]domain.AmountCount, len(buckets))
	for i, b := range buckets {
		out[i] = domain.AmountCount{Amount: b.amount.InexactFloat64(), Count: b.count}
	}
	return out
}

// IncomeTrend sums payment amounts per month, chronologically. Months without
// payments are not emitted; payments missing a date or amount are skipped.
func (e *Engine) IncomeTrend(payments []domain.PaymentRecord) []domain.MonthAmount {
	sums := make(map[string]decimal.Decimal)
	for _, p := range payments {
		if p.PaidAt == nil || !p.Amount.Valid {
			continue
		}
		month := e.month(*p.PaidAt)
		sums[month] = sums[month].Add(p.Amount.Decimal)
	}

	months := make([]string, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]domain.MonthAmount, len(months))
	for i, month := range months {
		out[i] = domain.MonthAmount{Month: month, Amount: sums[month].InexactFloat64()}
	}
	return out
}
