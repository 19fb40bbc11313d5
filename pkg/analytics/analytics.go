package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

type CategoryCount struct {
	Name       string
	Count      int
	Percentage int
}

// MonthlyBucket groups events by the month of their start date. Start is the first
// instant of that month in the dashboard time zone.
type MonthlyBucket struct {
	Month          string
	Start          time.Time
	EventCount     int
	ParticipantSum int
}

type PriceTier string

const (
	PriceFree   PriceTier = "free"
	PriceLow    PriceTier = "low"
	PriceMedium PriceTier = "medium"
	PriceHigh   PriceTier = "high"
)

var priceTiers = []PriceTier{PriceFree, PriceLow, PriceMedium, PriceHigh}

var priceTierLabels = map[PriceTier]string{
	PriceFree:   "Free",
	PriceLow:    "$1-50",
	PriceMedium: "$51-200",
	PriceHigh:   "$200+",
}

func (t PriceTier) Label() string {
	return priceTierLabels[t]
}

type PriceBucket struct {
	Tier       PriceTier
	Count      int
	Percentage int
}

type LocationRank struct {
	Location string
	Count    int
}

// SummaryStats uses maxParticipants as the participant count; registrations are not tracked.
type SummaryStats struct {
	TotalEvents       int
	TotalParticipants int
	AveragePrice      decimal.Decimal
	UpcomingCount     int
	FreeCount         int
	PaidCount         int
}

type Dashboard struct {
	GeneratedAt  time.Time
	Sequence     uint64
	FetchedAt    time.Time
	Categories   []CategoryCount
	Monthly      []MonthlyBucket
	Prices       []PriceBucket
	Locations    []LocationRank
	LocationList []LocationRank
	Summary      SummaryStats
}

type Options struct {
	FoldCategoryCase   bool
	NormalizeLocations bool
	TopLocations       int
	ListLocations      int
	Location           *time.Location
}

func DefaultOptions() Options {
	return Options{
		TopLocations:  10,
		ListLocations: 8,
		Location:      time.UTC,
	}
}
