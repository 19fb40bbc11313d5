package analytics

import (
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/evebuzz/evebuzz/internal/rest"
)

type CategoryCountDTO struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type MonthlyBucketDTO struct {
	Month             string `json:"month"`
	Events            int    `json:"events"`
	TotalParticipants int    `json:"totalParticipants"`
}

type PriceBucketDTO struct {
	Tier       string `json:"tier"`
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type LocationRankDTO struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type SummaryStatsDTO struct {
	TotalEvents       int     `json:"totalEvents"`
	TotalParticipants int     `json:"totalParticipants"`
	AveragePrice      float64 `json:"averagePrice"`
	UpcomingEvents    int     `json:"upcomingEvents"`
	FreeEvents        int     `json:"freeEvents"`
	PaidEvents        int     `json:"paidEvents"`
}

type DashboardDTO struct {
	GeneratedAt  time.Time          `json:"generatedAt"`
	Sequence     uint64             `json:"sequence"`
	FetchedAt    time.Time          `json:"fetchedAt"`
	EventTypes   []CategoryCountDTO `json:"eventTypes"`
	Monthly      []MonthlyBucketDTO `json:"monthly"`
	Prices       []PriceBucketDTO   `json:"priceDistribution"`
	Locations    []LocationRankDTO  `json:"locations"`
	LocationList []LocationRankDTO  `json:"locationList"`
	Summary      SummaryStatsDTO    `json:"totalStats"`
}

type Handler struct {
	service  Service
	renderer DashboardRenderer
}

func NewHandler(service Service, renderer DashboardRenderer) *Handler {
	return &Handler{service, renderer}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.GetDashboard(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	if acceptsCSV(r) {
		csv, err := h.renderer.RenderDashboard(dashboard)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, dashboardToDTO(dashboard))
}

// acceptsCSV reports whether any Accept entry names text/csv with a non-zero quality.
func acceptsCSV(r *http.Request) bool {
	for _, header := range r.Header.Values("Accept") {
		for _, entry := range strings.Split(header, ",") {
			mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(entry))
			if err != nil || mediaType != "text/csv" {
				continue
			}
			if q, ok := params["q"]; ok {
				if quality, err := strconv.ParseFloat(q, 64); err != nil || quality <= 0 {
					continue
				}
			}
			return true
		}
	}
	return false
}

func dashboardToDTO(d Dashboard) DashboardDTO {
	categories := make([]CategoryCountDTO, 0, len(d.Categories))
	for _, c := range d.Categories {
		categories = append(categories, CategoryCountDTO{Name: c.Name, Count: c.Count, Percentage: c.Percentage})
	}
	monthly := make([]MonthlyBucketDTO, 0, len(d.Monthly))
	for _, m := range d.Monthly {
		monthly = append(monthly, MonthlyBucketDTO{Month: m.Month, Events: m.EventCount, TotalParticipants: m.ParticipantSum})
	}
	prices := make([]PriceBucketDTO, 0, len(d.Prices))
	for _, p := range d.Prices {
		prices = append(prices, PriceBucketDTO{Tier: string(p.Tier), Category: p.Tier.Label(), Count: p.Count, Percentage: p.Percentage})
	}

	return DashboardDTO{
		GeneratedAt:  d.GeneratedAt,
		Sequence:     d.Sequence,
		FetchedAt:    d.FetchedAt,
		EventTypes:   categories,
		Monthly:      monthly,
		Prices:       prices,
		Locations:    locationsToDTO(d.Locations),
		LocationList: locationsToDTO(d.LocationList),
		Summary: SummaryStatsDTO{
			TotalEvents:       d.Summary.TotalEvents,
			TotalParticipants: d.Summary.TotalParticipants,
			AveragePrice:      d.Summary.AveragePrice.InexactFloat64(),
			UpcomingEvents:    d.Summary.UpcomingCount,
			FreeEvents:        d.Summary.FreeCount,
			PaidEvents:        d.Summary.PaidCount,
		},
	}
}

func locationsToDTO(ranks []LocationRank) []LocationRankDTO {
	dtos := make([]LocationRankDTO, 0, len(ranks))
	for _, l := range ranks {
		dtos = append(dtos, LocationRankDTO{Location: l.Location, Count: l.Count})
	}
	return dtos
}
