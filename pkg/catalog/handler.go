package catalog

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/evebuzz/evebuzz/internal/rest"
	"github.com/evebuzz/evebuzz/pkg/calendar"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/session"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PageDTO struct {
	Items      []event.DTO `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalItems int         `json:"totalItems"`
	TotalPages int         `json:"totalPages"`
}

type EventDetailsDTO struct {
	event.DTO
	GoogleCalendarLink string `json:"googleCalendarLink"`
}

type RefreshDTO struct {
	Sequence  uint64    `json:"sequence"`
	FetchedAt time.Time `json:"fetchedAt"`
	Count     int       `json:"count"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	order, err := ParseSortOrder(params.Get("sort"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid sort order", "'sort' must be one of date, title, organizer")
		return
	}
	page, err := positiveIntParam(params.Get("page"), 1)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid page", "'page' must be a positive number")
		return
	}
	pageSize, err := positiveIntParam(params.Get("pageSize"), 0)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid page size", "'pageSize' must be a positive number")
		return
	}
	if pageSize > MaxPageSize {
		rest.WriteError(w, http.StatusBadRequest, "Invalid page size", fmt.Sprintf("'pageSize' must not exceed %d", MaxPageSize))
		return
	}

	result, err := h.service.List(r.Context(), Query{
		Type:     params.Get("type"),
		Search:   params.Get("search"),
		Sort:     order,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, PageDTO{
		Items:      event.ToDTOs(result.Items),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	e, err := h.service.Get(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, EventDetailsDTO{
		DTO:                event.ToDTO(e),
		GoogleCalendarLink: calendar.GoogleCalendarLink(e),
	})
}

func (h *Handler) GetRelated(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	related, err := h.service.Related(r.Context(), id)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, event.ToDTOs(related))
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	sess, err := session.Current(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}

	snap, err := h.service.Refresh(r.Context(), sess)
	if err != nil {
		rest.WriteServiceError(w, err)
		return
	}
	log.Debugf("Refresh %d served", snap.Sequence)
	rest.WriteJSON(w, http.StatusOK, RefreshDTO{
		Sequence:  snap.Sequence,
		FetchedAt: snap.FetchedAt,
		Count:     len(snap.Records),
	})
}

func eventID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event id", err.Error())
		return 0, false
	}
	return id, true
}

func positiveIntParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
