package app

import (
	"fmt"
	"time"

	"github.com/evebuzz/evebuzz/internal/config"
	"github.com/evebuzz/evebuzz/internal/event_bus"
	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/analytics"
	"github.com/evebuzz/evebuzz/pkg/calendar"
	"github.com/evebuzz/evebuzz/pkg/catalog"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/eventapi"
	"github.com/evebuzz/evebuzz/pkg/snapshot"
	"golang.org/x/text/language"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	EventBus *event_bus.EventBus
	Parser   *event.Parser

	EventsClient  eventapi.Client
	SnapshotStore *snapshot.Store

	AnalyticsService  *analytics.ServiceImpl
	DashboardRenderer *analytics.CsvDashboardRendererImpl
	AnalyticsHandler  *analytics.Handler
	unwatchSnapshots  func()

	CalendarService *calendar.ServiceImpl
	CalendarHandler *calendar.Handler

	CatalogService *catalog.ServiceImpl
	CatalogHandler *catalog.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, client eventapi.Client, clock utils.Clock) (*Dependencies, error) {
	loc, err := time.LoadLocation(cfg.Dashboard.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard.timezone %q: %w", cfg.Dashboard.Timezone, err)
	}
	rangeMode, err := calendar.ParseRangeMode(cfg.Calendar.RangeMode)
	if err != nil {
		return nil, err
	}
	weekStart, err := calendar.ParseWeekday(cfg.Calendar.WeekStart)
	if err != nil {
		return nil, err
	}
	lang, err := language.Parse(cfg.Catalog.Language)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog.language %q: %w", cfg.Catalog.Language, err)
	}

	deps := &Dependencies{}

	deps.Clock = clock
	deps.EventBus = event_bus.NewEventBus()
	deps.Parser = event.NewParser(loc)

	deps.EventsClient = client
	deps.SnapshotStore = snapshot.NewStore(deps.EventsClient, deps.EventBus, deps.Clock)

	deps.AnalyticsService = analytics.NewServiceImpl(deps.SnapshotStore, deps.Parser, deps.Clock, analytics.Options{
		FoldCategoryCase:   cfg.Analytics.FoldCategoryCase,
		NormalizeLocations: cfg.Analytics.NormalizeLocations,
		TopLocations:       cfg.Analytics.TopLocations,
		ListLocations:      cfg.Analytics.ListLocations,
		Location:           loc,
	})
	deps.unwatchSnapshots = deps.AnalyticsService.WatchSnapshots(deps.EventBus)
	deps.DashboardRenderer = analytics.NewCsvDashboardRenderer()
	deps.AnalyticsHandler = analytics.NewHandler(deps.AnalyticsService, deps.DashboardRenderer)

	deps.CalendarService = calendar.NewServiceImpl(deps.SnapshotStore, deps.Parser, deps.Clock, rangeMode, weekStart)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService, loc)

	deps.CatalogService = catalog.NewServiceImpl(deps.SnapshotStore, deps.SnapshotStore, deps.Parser, catalog.Options{
		PageSize:         cfg.Catalog.PageSize,
		FoldCategoryCase: cfg.Analytics.FoldCategoryCase,
		Language:         lang,
	})
	deps.CatalogHandler = catalog.NewHandler(deps.CatalogService)

	return deps, nil
}

func (d *Dependencies) Close() {
	if d.unwatchSnapshots != nil {
		d.unwatchSnapshots()
	}
}
