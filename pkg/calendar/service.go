package calendar

import (
	"context"
	"time"

	"github.com/emersion/go-ical"
	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/snapshot"
	log "github.com/sirupsen/logrus"
)

type DayView struct {
	Date      time.Time
	HasEvents bool
	Events    []event.Event
}

type MonthView struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Weeks     [][]Day
}

type Service interface {
	GetDay(ctx context.Context, date time.Time) (DayView, error)
	GetMonth(ctx context.Context, year int, month time.Month) (MonthView, error)
	GetFeed(ctx context.Context) (*ical.Calendar, error)
	GetEventEntry(ctx context.Context, id int) (*ical.Calendar, error)
}

type ServiceImpl struct {
	source    snapshot.Source
	parser    *event.Parser
	clock     utils.Clock
	mode      RangeMode
	weekStart time.Weekday
}

func NewServiceImpl(source snapshot.Source, parser *event.Parser, clock utils.Clock, mode RangeMode, weekStart time.Weekday) *ServiceImpl {
	return &ServiceImpl{
		source:    source,
		parser:    parser,
		clock:     clock,
		mode:      mode,
		weekStart: weekStart,
	}
}

func (s *ServiceImpl) Location() *time.Location {
	return s.parser.Location()
}

func (s *ServiceImpl) matcher() (*Matcher, []event.Event, error) {
	_, events, err := snapshot.ParseCurrent(s.source, s.parser)
	if err != nil {
		return nil, nil, err
	}
	return NewMatcher(events, s.parser.Location(), s.mode), events, nil
}

func (s *ServiceImpl) GetDay(ctx context.Context, date time.Time) (DayView, error) {
	m, _, err := s.matcher()
	if err != nil {
		return DayView{}, err
	}
	events := m.EventsOnDate(date)
	return DayView{
		Date:      utils.DayOf(date, s.parser.Location()),
		HasEvents: len(events) > 0,
		Events:    events,
	}, nil
}

func (s *ServiceImpl) GetMonth(ctx context.Context, year int, month time.Month) (MonthView, error) {
	m, _, err := s.matcher()
	if err != nil {
		return MonthView{}, err
	}
	return MonthView{
		Year:      year,
		Month:     month,
		WeekStart: s.weekStart,
		Weeks:     m.MonthGrid(year, month, s.weekStart),
	}, nil
}

func (s *ServiceImpl) GetFeed(ctx context.Context) (*ical.Calendar, error) {
	_, events, err := s.matcher()
	if err != nil {
		return nil, err
	}
	log.Debugf("Exporting %d events to iCalendar feed", len(events))
	return NewFeed(events, s.clock.Now()), nil
}

func (s *ServiceImpl) GetEventEntry(ctx context.Context, id int) (*ical.Calendar, error) {
	_, events, err := s.matcher()
	if err != nil {
		return nil, err
	}
	e, err := event.FindByID(events, id)
	if err != nil {
		return nil, err
	}
	return NewFeed([]event.Event{e}, s.clock.Now()), nil
}
