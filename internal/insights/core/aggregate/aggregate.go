// Package aggregate holds the one-shot grouping views computed over the
// filtered snapshot. Null (absent) categorical values are dropped before
// grouping, never bucketed into a synthetic category.
package aggregate

import (
	"sort"
	"strconv"
	"time"

	dataset "ott-insights-service/internal/dataset/core/domain"
	"ott-insights-service/internal/insights/core/domain"
)

// conversionEvents are the funnel outcomes attributed to campaigns.
var conversionEvents = map[string]struct{}{
	"BINGE-SUBSCRIPTION": {},
	"SUBSCRIBE-SUCCESS":  {},
}

// FunnelCounts counts events per funnel step, reindexed to the step
// order with zero fill for steps absent from the data.
func FunnelCounts(events []dataset.Event, steps []string) []domain.StepCount {
	counts := make(map[string]int, len(steps))
	inFunnel := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		inFunnel[s] = struct{}{}
	}
	for _, e := range events {
		if _, ok := inFunnel[e.EventName]; ok {
			counts[e.EventName]++
		}
	}

	out := make([]domain.StepCount, 0, len(steps))
	for _, s := range steps {
		out = append(out, domain.StepCount{Step: s, Count: counts[s]})
	}
	return out
}

// DailyCounts groups events by event_date, ascending.
func DailyCounts(events []dataset.Event) []domain.DateCount {
	counts := make(map[int64]int)
	for _, e := range events {
		counts[e.EventDate.Unix()]++
	}

	out := make([]domain.DateCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, domain.DateCount{Date: unixDay(day), Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func unixDay(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// CampaignConversions counts conversion events per campaign, descending.
func CampaignConversions(events []dataset.Event) []domain.KeyCount {
	conversions := make([]dataset.Event, 0, len(events))
	for _, e := range events {
		if _, ok := conversionEvents[e.EventName]; ok {
			conversions = append(conversions, e)
		}
	}
	return CountBy(conversions, dataset.ColCampaign)
}

// CountBy groups events by one categorical column and counts rows per
// value, sorted by count descending then key ascending.
func CountBy(events []dataset.Event, column string) []domain.KeyCount {
	counts := make(map[string]int)
	for _, e := range events {
		if v, ok := e.Get(column); ok {
			counts[v]++
		}
	}

	out := make([]domain.KeyCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.KeyCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// TopN is CountBy capped at n entries. Fewer distinct values than n is
// fine; the result is never padded.
func TopN(events []dataset.Event, column string, n int) []domain.KeyCount {
	out := CountBy(events, column)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PaymentBreakdown groups by (payment_method, payment_status). Rows
// missing either column are dropped.
func PaymentBreakdown(events []dataset.Event) []domain.PaymentCount {
	type pair struct{ method, status string }
	counts := make(map[pair]int)
	for _, e := range events {
		method, ok := e.Get(dataset.ColPaymentMethod)
		if !ok {
			continue
		}
		status, ok := e.Get(dataset.ColPaymentStatus)
		if !ok {
			continue
		}
		counts[pair{method, status}]++
	}

	out := make([]domain.PaymentCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, domain.PaymentCount{Method: p.method, Status: p.status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Method != out[j].Method {
			return out[i].Method < out[j].Method
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// PackStats groups by pack_name and reports row count plus mean
// pack_price, sorted by count descending then name ascending. Prices
// that fail to parse are left out of the mean but still counted.
func PackStats(events []dataset.Event) []domain.PackStat {
	type acc struct {
		count    int
		priceSum float64
		priced   int
	}
	stats := make(map[string]*acc)
	for _, e := range events {
		pack, ok := e.Get(dataset.ColPackName)
		if !ok {
			continue
		}
		a := stats[pack]
		if a == nil {
			a = &acc{}
			stats[pack] = a
		}
		a.count++
		if raw, ok := e.Get(dataset.ColPackPrice); ok {
			if price, err := strconv.ParseFloat(raw, 64); err == nil {
				a.priceSum += price
				a.priced++
			}
		}
	}

	out := make([]domain.PackStat, 0, len(stats))
	for pack, a := range stats {
		mean := 0.0
		if a.priced > 0 {
			mean = a.priceSum / float64(a.priced)
		}
		out = append(out, domain.PackStat{Pack: pack, Count: a.count, MeanPrice: mean})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Pack < out[j].Pack
	})
	return out
}
