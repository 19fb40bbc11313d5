package calendar

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/evebuzz/evebuzz/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stamp = time.Date(2025, time.May, 29, 12, 0, 0, 0, time.UTC)

func TestNewFeed(t *testing.T) {
	t.Run("should contain one VEVENT per event", func(t *testing.T) {
		// given
		records := test_utils.ExampleRecords()
		records[0].RegistrationLink = "https://example.edu/register"
		records[0].Description = "Build something"
		events := test_utils.MustParse(t, records...)

		// when
		body, err := Encode(NewFeed(events, stamp))

		// then
		require.NoError(t, err)
		ics := string(body)
		assert.Equal(t, 3, strings.Count(ics, "BEGIN:VEVENT"))
		assert.Contains(t, ics, "PRODID:"+productID)
		assert.Contains(t, ics, "VERSION:2.0")
		assert.Contains(t, ics, "UID:"+EventUID(1))
		assert.Contains(t, ics, "DTSTART:20250528T000000Z")
		assert.Contains(t, ics, "DTSTAMP:20250529T120000Z")
		assert.Contains(t, ics, "SUMMARY:Event hackathon")
		assert.Contains(t, ics, "DESCRIPTION:Build something")
		assert.Contains(t, ics, "LOCATION:Main Hall")
		assert.Contains(t, ics, "https://example.edu/register")
	})

	t.Run("should convert start and end to UTC", func(t *testing.T) {
		events := test_utils.MustParse(t, test_utils.Record(5, "seminar", "0", "2025-06-10T10:00:00+02:00", 30))

		body, err := Encode(NewFeed(events, stamp))

		require.NoError(t, err)
		assert.Contains(t, string(body), "DTSTART:20250610T080000Z")
		assert.Contains(t, string(body), "DTEND:20250610T080000Z")
	})
}

func TestEncode(t *testing.T) {
	t.Run("should encode calendar without events", func(t *testing.T) {
		body, err := Encode(NewFeed(nil, stamp))

		require.NoError(t, err)
		assert.Equal(t, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:"+productID+"\r\nEND:VCALENDAR\r\n", string(body))
	})
}

func TestEventUID(t *testing.T) {
	assert.Equal(t, EventUID(7), EventUID(7))
	assert.NotEqual(t, EventUID(7), EventUID(8))
}

func TestGoogleCalendarLink(t *testing.T) {
	// given
	r := test_utils.Record(1, "workshop", "25", "2025-05-28T09:00:00Z", 12)
	r.EndDate = "2025-05-28T11:30:00Z"
	r.Description = "Intro to Go"
	e := test_utils.MustParse(t, r)[0]

	// when
	link := GoogleCalendarLink(e)

	// then
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	query := u.Query()
	assert.Equal(t, "TEMPLATE", query.Get("action"))
	assert.Equal(t, "Event workshop", query.Get("text"))
	assert.Equal(t, "20250528T090000Z/20250528T113000Z", query.Get("dates"))
	assert.Equal(t, "Intro to Go", query.Get("details"))
	assert.Equal(t, "Main Hall", query.Get("location"))
}
