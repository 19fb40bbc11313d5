package event_bus

import "time"

const (
	SnapshotRefreshedType     EventType = "snapshot.refreshed"
	SnapshotRefreshFailedType EventType = "snapshot.refresh_failed"
	SnapshotDiscardedType     EventType = "snapshot.discarded"
)

type SnapshotRefreshed struct {
	Sequence  uint64
	Count     int
	FetchedAt time.Time
}

type SnapshotRefreshFailed struct {
	Sequence uint64
	Err      error
}

// SnapshotDiscarded is published when a refresh response arrives after a newer refresh was issued.
type SnapshotDiscarded struct {
	Sequence uint64
	Latest   uint64
}
