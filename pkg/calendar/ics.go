package calendar

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/google/uuid"
)

const productID = "-//EveBuzz//Campus Events//EN"

var uidNamespace = uuid.MustParse("4f6c2b8e-0d1a-5c3e-9b7a-2e8d1f0c6a53")

// EventUID is stable for a given event id, so re-imported feeds update entries in place.
func EventUID(id int) string {
	return uuid.NewSHA1(uidNamespace, []byte(strconv.Itoa(id))).String()
}

func NewFeed(events []event.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	for _, e := range events {
		cal.Children = append(cal.Children, toICal(e, stamp))
	}
	return cal
}

func toICal(e event.Event, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, EventUID(e.ID))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.StartDate.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, e.EndDate.UTC())
	ve.Props.SetText(ical.PropSummary, e.Title)

	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ve.Props.SetText(ical.PropLocation, e.Location)
	}
	if e.RegistrationLink != "" {
		if link, err := url.Parse(e.RegistrationLink); err == nil && link.IsAbs() {
			ve.Props.SetURI(ical.PropURL, link)
		}
	}
	return ve
}

// Encode writes cal in iCalendar format. A calendar without events is written as a bare
// VCALENDAR carrying only its version and product id.
func Encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if len(cal.Children) == 0 {
		return encodeEmpty(cal), nil
	}
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeEmpty(cal *ical.Calendar) []byte {
	version, prodID := "2.0", productID
	if prop := cal.Props.Get(ical.PropVersion); prop != nil {
		version = prop.Value
	}
	if prop := cal.Props.Get(ical.PropProductID); prop != nil {
		prodID = prop.Value
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "BEGIN:VCALENDAR\r\nVERSION:%s\r\nPRODID:%s\r\nEND:VCALENDAR\r\n", version, prodID)
	return buf.Bytes()
}

const googleCalendarURL = "https://calendar.google.com/calendar/render"

// GoogleCalendarLink builds an "add event" template link for Google Calendar.
func GoogleCalendarLink(e event.Event) string {
	const layout = "20060102T150405Z"
	query := url.Values{}
	query.Set("action", "TEMPLATE")
	query.Set("text", e.Title)
	query.Set("dates", e.StartDate.UTC().Format(layout)+"/"+e.EndDate.UTC().Format(layout))
	query.Set("details", e.Description)
	query.Set("location", e.Location)
	return googleCalendarURL + "?" + query.Encode()
}
