package analytics

import (
	"context"

	"github.com/evebuzz/evebuzz/internal/event_bus"
	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/snapshot"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetDashboard(ctx context.Context) (Dashboard, error)
}

type ServiceImpl struct {
	source snapshot.Source
	parser *event.Parser
	clock  utils.Clock
	opts   Options
}

func NewServiceImpl(source snapshot.Source, parser *event.Parser, clock utils.Clock, opts Options) *ServiceImpl {
	if opts.Location == nil {
		opts.Location = parser.Location()
	}
	return &ServiceImpl{
		source: source,
		parser: parser,
		clock:  clock,
		opts:   opts,
	}
}

// GetDashboard recomputes every aggregate from the current snapshot.
func (s *ServiceImpl) GetDashboard(ctx context.Context) (Dashboard, error) {
	snap, events, err := snapshot.ParseCurrent(s.source, s.parser)
	if err != nil {
		return Dashboard{}, err
	}

	dashboard := Build(events, s.clock.Now(), s.opts)
	dashboard.Sequence = snap.Sequence
	dashboard.FetchedAt = snap.FetchedAt
	log.Debugf("Dashboard computed from snapshot %d with %d events", snap.Sequence, len(events))
	return dashboard, nil
}

// WatchSnapshots validates each applied snapshot so malformed upstream data is reported
// when it arrives, not only when the dashboard is next opened.
func (s *ServiceImpl) WatchSnapshots(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.SnapshotRefreshedType, func(ctx context.Context, e event_bus.SnapshotRefreshed) error {
		if _, err := s.GetDashboard(ctx); err != nil {
			log.Warnf("Snapshot %d cannot be aggregated: %v", e.Sequence, err)
		}
		return nil
	})
}
