package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/evebuzz/evebuzz/internal/rest"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type DayDTO struct {
	Date      string      `json:"date"`
	InMonth   bool        `json:"inMonth"`
	HasEvents bool        `json:"hasEvents"`
	Events    []event.DTO `json:"events"`
}

type MonthDTO struct {
	Year      int        `json:"year"`
	Month     int        `json:"month"`
	WeekStart string     `json:"weekStart"`
	Weeks     [][]DayDTO `json:"weeks"`
}

type Handler struct {
	service Service
	loc     *time.Location
}

func NewHandler(service Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{service: service, loc: loc}
}

func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	dateString := r.URL.Query().Get("date")
	date, err := time.ParseInLocation(time.DateOnly, dateString, h.loc)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
		return
	}

	day, err := h.service.GetDay(r.Context(), date)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, DayDTO{
		Date:      day.Date.Format(time.DateOnly),
		InMonth:   true,
		HasEvents: day.HasEvents,
		Events:    event.ToDTOs(day.Events),
	})
}

func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be a positive number")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be a number between 1 and 12")
		return
	}

	view, err := h.service.GetMonth(r.Context(), year, time.Month(month))
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	weeks := make([][]DayDTO, 0, len(view.Weeks))
	for _, week := range view.Weeks {
		days := make([]DayDTO, 0, len(week))
		for _, d := range week {
			days = append(days, DayDTO{
				Date:      d.Date.Format(time.DateOnly),
				InMonth:   d.InMonth,
				HasEvents: len(d.Events) > 0,
				Events:    event.ToDTOs(d.Events),
			})
		}
		weeks = append(weeks, days)
	}
	rest.WriteJSON(w, http.StatusOK, MonthDTO{
		Year:      view.Year,
		Month:     int(view.Month),
		WeekStart: view.WeekStart.String(),
		Weeks:     weeks,
	})
}

func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	cal, err := h.service.GetFeed(r.Context())
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	writeCalendar(w, cal, "events.ics")
}

func (h *Handler) GetEventEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event id", err.Error())
		return
	}

	cal, err := h.service.GetEventEntry(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	writeCalendar(w, cal, "event-"+strconv.Itoa(id)+".ics")
}

func writeCalendar(w http.ResponseWriter, cal *ical.Calendar, filename string) {
	body, err := Encode(cal)
	if err != nil {
		log.Errorf("Failed to encode calendar %s: %v", filename, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Errorf("Failed to write calendar %s: %v", filename, err)
	}
}
