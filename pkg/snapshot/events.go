package snapshot

import (
	"github.com/evebuzz/evebuzz/pkg/event"
	log "github.com/sirupsen/logrus"
)

// ParseCurrent returns the current snapshot with its records parsed. A single malformed
// record fails the whole call.
func ParseCurrent(source Source, parser *event.Parser) (Snapshot, []event.Event, error) {
	snap, err := source.Current()
	if err != nil {
		return Snapshot{}, nil, err
	}
	events, err := parser.ParseAll(snap.Records)
	if err != nil {
		log.Errorf("Snapshot %d contains a malformed record: %v", snap.Sequence, err)
		return Snapshot{}, nil, err
	}
	return snap, events, nil
}

// StaticSource serves a fixed snapshot.
type StaticSource struct {
	Snapshot Snapshot
}

func (s StaticSource) Current() (Snapshot, error) {
	return s.Snapshot, nil
}
