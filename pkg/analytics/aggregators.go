package analytics

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/shopspring/decimal"
)

var (
	lowPriceCeiling    = decimal.NewFromInt(50)
	mediumPriceCeiling = decimal.NewFromInt(200)
)

func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}

// CategoryCounts groups events by category in order of first occurrence.
func CategoryCounts(events []event.Event, foldCase bool) []CategoryCount {
	if len(events) == 0 {
		return []CategoryCount{}
	}

	indexByKey := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, e := range events {
		key := e.Category.Key(foldCase)
		idx, found := indexByKey[key]
		if !found {
			idx = len(counts)
			indexByKey[key] = idx
			counts = append(counts, CategoryCount{Name: e.Category.DisplayName()})
		}
		counts[idx].Count++
	}

	for i := range counts {
		counts[i].Percentage = percentage(counts[i].Count, len(events))
	}
	return counts
}

type monthKey struct {
	year  int
	month time.Month
}

// MonthlyTrend buckets events by the month of their start date, oldest month first.
func MonthlyTrend(events []event.Event, loc *time.Location) []MonthlyBucket {
	buckets := make(map[monthKey]*MonthlyBucket)
	for _, e := range events {
		start := utils.FirstOfMonth(e.StartDate, loc)
		key := monthKey{start.Year(), start.Month()}
		bucket, found := buckets[key]
		if !found {
			bucket = &MonthlyBucket{Month: start.Format("Jan 2006"), Start: start}
			buckets[key] = bucket
		}
		bucket.EventCount++
		bucket.ParticipantSum += e.MaxParticipants
	}

	result := make([]MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	slices.SortFunc(result, func(a, b MonthlyBucket) int {
		return a.Start.Compare(b.Start)
	})
	return result
}

// TierOf places a price into its tier. Tier ceilings are inclusive.
func TierOf(price decimal.Decimal) PriceTier {
	switch {
	case price.IsZero():
		return PriceFree
	case price.LessThanOrEqual(lowPriceCeiling):
		return PriceLow
	case price.LessThanOrEqual(mediumPriceCeiling):
		return PriceMedium
	default:
		return PriceHigh
	}
}

// PriceDistribution always returns the four tiers in fixed order.
func PriceDistribution(events []event.Event) []PriceBucket {
	counts := make(map[PriceTier]int, len(priceTiers))
	for _, e := range events {
		counts[TierOf(e.Price)]++
	}

	result := make([]PriceBucket, 0, len(priceTiers))
	for _, tier := range priceTiers {
		result = append(result, PriceBucket{
			Tier:       tier,
			Count:      counts[tier],
			Percentage: percentage(counts[tier], len(events)),
		})
	}
	return result
}

// LocationRanking returns the n most frequent locations, most frequent first. Ties keep
// the order in which locations were first seen. n <= 0 returns every location.
func LocationRanking(events []event.Event, n int, normalize bool) []LocationRank {
	indexByKey := make(map[string]int)
	ranks := make([]LocationRank, 0)
	for _, e := range events {
		key := e.Location
		if normalize {
			key = strings.ToLower(strings.TrimSpace(key))
		}
		idx, found := indexByKey[key]
		if !found {
			idx = len(ranks)
			indexByKey[key] = idx
			ranks = append(ranks, LocationRank{Location: e.Location})
		}
		ranks[idx].Count++
	}

	slices.SortStableFunc(ranks, func(a, b LocationRank) int {
		return b.Count - a.Count
	})
	if n > 0 && len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// Summarize computes the headline numbers. Upcoming events start strictly after now;
// the average price of an empty list is zero.
func Summarize(events []event.Event, now time.Time) SummaryStats {
	stats := SummaryStats{
		TotalEvents:  len(events),
		AveragePrice: decimal.Zero,
	}
	total := decimal.Zero
	for _, e := range events {
		stats.TotalParticipants += e.MaxParticipants
		total = total.Add(e.Price)
		if e.IsFree() {
			stats.FreeCount++
		}
		if e.IsUpcoming(now) {
			stats.UpcomingCount++
		}
	}
	stats.PaidCount = stats.TotalEvents - stats.FreeCount
	if stats.TotalEvents > 0 {
		stats.AveragePrice = total.Div(decimal.NewFromInt(int64(stats.TotalEvents))).Round(2)
	}
	return stats
}

// Build recomputes the whole dashboard from events.
func Build(events []event.Event, now time.Time, opts Options) Dashboard {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return Dashboard{
		GeneratedAt:  now,
		Categories:   CategoryCounts(events, opts.FoldCategoryCase),
		Monthly:      MonthlyTrend(events, loc),
		Prices:       PriceDistribution(events),
		Locations:    LocationRanking(events, opts.TopLocations, opts.NormalizeLocations),
		LocationList: LocationRanking(events, opts.ListLocations, opts.NormalizeLocations),
		Summary:      Summarize(events, now),
	}
}
