package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/events/refresh", deps.CatalogHandler.Refresh).Methods("POST")
	r.HandleFunc("/api/events", deps.CatalogHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/events/{id:[0-9]+}", deps.CatalogHandler.GetEvent).Methods("GET")
	r.HandleFunc("/api/events/{id:[0-9]+}/related", deps.CatalogHandler.GetRelated).Methods("GET")
	r.HandleFunc("/api/events/{id:[0-9]+}/ics", deps.CalendarHandler.GetEventEntry).Methods("GET")

	// Analytics
	r.HandleFunc("/api/analytics/dashboard", deps.AnalyticsHandler.GetDashboard).Methods("GET")

	// Calendar
	r.HandleFunc("/api/calendar/day", deps.CalendarHandler.GetDay).Methods("GET")
	r.HandleFunc("/api/calendar/month", deps.CalendarHandler.GetMonth).Methods("GET")
	r.HandleFunc("/api/calendar/events.ics", deps.CalendarHandler.GetFeed).Methods("GET")
}
