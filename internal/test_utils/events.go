package test_utils

import (
	"testing"
	"time"

	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/session"
)

// Record builds an upstream record. The end date equals the start date.
func Record(id int, eventType string, price string, startDate string, maxParticipants int) event.Record {
	return event.Record{
		ID:                  id,
		Title:               "Event " + eventType,
		Type:                eventType,
		MinTeamParticipants: 1,
		MaxTeamParticipants: maxParticipants,
		Location:            "Main Hall",
		StartDate:           startDate,
		EndDate:             startDate,
		Price:               event.Amount(price),
		Organizer:           "Student Council",
	}
}

func Other(id int, label string, price string, startDate string, maxParticipants int) event.Record {
	r := Record(id, string(event.KindOthers), price, startDate, maxParticipants)
	r.OtherTypeName = &label
	return r
}

// ExampleRecords is the three-event dashboard scenario: two hackathons and a dance night.
func ExampleRecords() []event.Record {
	return []event.Record{
		Record(1, "hackathon", "0.00", "2025-05-28", 4),
		Record(2, "hackathon", "150", "2025-05-30", 6),
		Other(3, "Dance Night", "0", "2025-06-01", 10),
	}
}

func MustParse(t *testing.T, records ...event.Record) []event.Event {
	t.Helper()
	events, err := event.NewParser(time.UTC).ParseAll(records)
	if err != nil {
		t.Fatalf("failed to parse test records: %v", err)
	}
	return events
}

func Session() session.Session {
	return session.Session{Token: "test-token"}
}
