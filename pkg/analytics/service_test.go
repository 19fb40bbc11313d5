package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evebuzz/evebuzz/internal/event_bus"
	"github.com/evebuzz/evebuzz/internal/test_utils"
	"github.com/evebuzz/evebuzz/internal/utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/eventapi"
	"github.com/evebuzz/evebuzz/pkg/snapshot"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fetchedAt = time.Date(2025, time.May, 29, 11, 0, 0, 0, time.UTC)

func newTestService(records []event.Record) *ServiceImpl {
	source := snapshot.StaticSource{Snapshot: snapshot.Snapshot{Sequence: 4, FetchedAt: fetchedAt, Records: records}}
	return NewServiceImpl(source, event.NewParser(time.UTC), &utils.MockClock{FixedNow: now}, DefaultOptions())
}

func TestServiceImpl_GetDashboard(t *testing.T) {
	t.Run("should compute dashboard from current snapshot", func(t *testing.T) {
		// given
		service := newTestService(test_utils.ExampleRecords())

		// when
		dashboard, err := service.GetDashboard(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, uint64(4), dashboard.Sequence)
		assert.Equal(t, fetchedAt, dashboard.FetchedAt)
		assert.Equal(t, now, dashboard.GeneratedAt)
		assert.Equal(t, 3, dashboard.Summary.TotalEvents)
	})

	t.Run("should fail whole aggregation on malformed record", func(t *testing.T) {
		// given
		records := test_utils.ExampleRecords()
		bad := test_utils.Record(17, "sports", "abc", "2025-06-02", 3)
		records = append(records, bad)
		service := newTestService(records)

		// when
		dashboard, err := service.GetDashboard(context.Background())

		// then
		require.ErrorIs(t, err, event.ErrMalformedRecord)
		var malformed *event.MalformedRecordError
		require.True(t, errors.As(err, &malformed))
		assert.Equal(t, 17, malformed.ID)
		assert.Equal(t, "price", malformed.Field)
		assert.Equal(t, Dashboard{}, dashboard)
	})

	t.Run("should report missing snapshot", func(t *testing.T) {
		store := snapshot.NewStore(eventapi.NewClientStub(), event_bus.NewEventBus(), &utils.MockClock{FixedNow: now})
		service := NewServiceImpl(store, event.NewParser(time.UTC), &utils.MockClock{FixedNow: now}, DefaultOptions())

		_, err := service.GetDashboard(context.Background())

		assert.ErrorIs(t, err, snapshot.ErrNoSnapshot)
	})

	t.Run("should return zero dashboard for empty snapshot", func(t *testing.T) {
		service := newTestService([]event.Record{})

		dashboard, err := service.GetDashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, dashboard.Summary.TotalEvents)
		assert.True(t, dashboard.Summary.AveragePrice.IsZero())
		assert.Len(t, dashboard.Prices, 4)
	})
}

func TestServiceImpl_WatchSnapshots(t *testing.T) {
	t.Run("should warn when an applied snapshot is malformed", func(t *testing.T) {
		// given
		hook := test.NewGlobal()
		t.Cleanup(hook.Reset)
		client := eventapi.NewClientStub()
		client.SetRecords([]event.Record{test_utils.Record(5, "sports", "free", "2025-06-02", 3)})
		bus := event_bus.NewEventBus()
		clock := &utils.MockClock{FixedNow: now}
		store := snapshot.NewStore(client, bus, clock)
		service := NewServiceImpl(store, event.NewParser(time.UTC), clock, DefaultOptions())
		unsubscribe := service.WatchSnapshots(bus)
		t.Cleanup(unsubscribe)

		// when
		_, err := store.Refresh(context.Background(), test_utils.Session())

		// then
		require.NoError(t, err)
		var warnings []string
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel {
				warnings = append(warnings, entry.Message)
			}
		}
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], "cannot be aggregated")
		assert.Contains(t, warnings[0], "price")
	})
}
