package snapshot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/evebuzz/evebuzz/internal/event_bus"
	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/eventapi"
	"github.com/evebuzz/evebuzz/pkg/session"
	log "github.com/sirupsen/logrus"
)

var ErrNoSnapshot = errors.New("no event snapshot has been loaded yet")

var ErrStaleRefresh = errors.New("refresh superseded by a newer refresh")

// Snapshot is an immutable copy of the events collection. Records must not be modified.
type Snapshot struct {
	Sequence  uint64
	FetchedAt time.Time
	Records   []event.Record
}

type Source interface {
	Current() (Snapshot, error)
}

type Refresher interface {
	Refresh(ctx context.Context, s session.Session) (Snapshot, error)
}

// Store keeps the latest snapshot. Every refresh takes a sequence number and its response
// is applied only if no newer refresh has been issued meanwhile.
type Store struct {
	client eventapi.Client
	bus    *event_bus.EventBus
	clock  utils.Clock

	issued  atomic.Uint64
	mu      sync.RWMutex
	current *Snapshot
}

func NewStore(client eventapi.Client, bus *event_bus.EventBus, clock utils.Clock) *Store {
	return &Store{
		client: client,
		bus:    bus,
		clock:  clock,
	}
}

func (s *Store) Current() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return *s.current, nil
}

func (s *Store) Refresh(ctx context.Context, sess session.Session) (Snapshot, error) {
	seq := s.issued.Add(1)
	log.Debugf("Starting events refresh %d", seq)

	records, err := s.client.FetchEvents(ctx, sess)
	if err != nil {
		log.Warnf("Events refresh %d failed: %v", seq, err)
		s.publish(ctx, event_bus.SnapshotRefreshFailedType, event_bus.SnapshotRefreshFailed{Sequence: seq, Err: err})
		return Snapshot{}, err
	}

	s.mu.Lock()
	latest := s.issued.Load()
	if seq != latest {
		s.mu.Unlock()
		log.Infof("Discarding events refresh %d, refresh %d was issued after it", seq, latest)
		s.publish(ctx, event_bus.SnapshotDiscardedType, event_bus.SnapshotDiscarded{Sequence: seq, Latest: latest})
		return Snapshot{}, ErrStaleRefresh
	}
	snap := Snapshot{
		Sequence:  seq,
		FetchedAt: s.clock.Now(),
		Records:   records,
	}
	s.current = &snap
	s.mu.Unlock()

	log.Infof("Applied events refresh %d with %d events", seq, len(records))
	s.publish(ctx, event_bus.SnapshotRefreshedType, event_bus.SnapshotRefreshed{
		Sequence:  seq,
		Count:     len(records),
		FetchedAt: snap.FetchedAt,
	})
	return snap, nil
}

func (s *Store) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Warnf("Snapshot subscribers failed: %v", err)
	}
}
