package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrMalformedRecord = errors.New("malformed event record")

// MalformedRecordError names the record and the field that failed validation.
type MalformedRecordError struct {
	ID    int
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed event record %d: field %s (%q): %v", e.ID, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// Record is an event as returned by the upstream events collection.
type Record struct {
	ID                  int     `json:"id"`
	Title               string  `json:"title"`
	Type                string  `json:"type"`
	OtherTypeName       *string `json:"other_type_name"`
	Image               string  `json:"image"`
	Description         string  `json:"description"`
	MinTeamParticipants int     `json:"minTeamParticipants"`
	MaxTeamParticipants int     `json:"maxTeamParticipants"`
	Location            string  `json:"location"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	Price               Amount  `json:"price"`
	Organizer           string  `json:"organizer"`
	ContactInfo         string  `json:"contact_info"`
	RegistrationLink    string  `json:"registrationLink"`
	CreatedAt           string  `json:"created_at"`
}

// Amount keeps the textual form of a price. The backend sends decimals as strings,
// but a bare JSON number is accepted too.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(data)
	return nil
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parser turns upstream records into events. Timestamps without an offset are read
// in the parser's location.
type Parser struct {
	loc *time.Location
}

func NewParser(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc}
}

func (p *Parser) Location() *time.Location {
	return p.loc
}

// ParseAll parses every record and stops at the first malformed one.
func (p *Parser) ParseAll(records []Record) ([]Event, error) {
	events := make([]Event, 0, len(records))
	for _, r := range records {
		e, err := p.Parse(r)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func (p *Parser) Parse(r Record) (Event, error) {
	if strings.TrimSpace(r.Type) == "" {
		return Event{}, &MalformedRecordError{ID: r.ID, Field: "type", Value: r.Type, Err: errors.New("type is required")}
	}

	price, err := ParsePrice(string(r.Price))
	if err != nil {
		return Event{}, &MalformedRecordError{ID: r.ID, Field: "price", Value: string(r.Price), Err: err}
	}

	start, err := p.ParseTime(r.StartDate)
	if err != nil {
		return Event{}, &MalformedRecordError{ID: r.ID, Field: "start_date", Value: r.StartDate, Err: err}
	}
	end, err := p.ParseTime(r.EndDate)
	if err != nil {
		return Event{}, &MalformedRecordError{ID: r.ID, Field: "end_date", Value: r.EndDate, Err: err}
	}

	var createdAt time.Time
	if r.CreatedAt != "" {
		createdAt, err = p.ParseTime(r.CreatedAt)
		if err != nil {
			log.Debugf("ignoring unparseable created_at of event %d: %v", r.ID, err)
			createdAt = time.Time{}
		}
	}

	otherTypeName := ""
	if r.OtherTypeName != nil {
		otherTypeName = *r.OtherTypeName
	}

	return Event{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		Image:            r.Image,
		Type:             r.Type,
		OtherTypeName:    otherTypeName,
		Category:         CategoryOf(r.Type, otherTypeName),
		MinParticipants:  r.MinTeamParticipants,
		MaxParticipants:  r.MaxTeamParticipants,
		Location:         r.Location,
		StartDate:        start,
		EndDate:          end,
		Price:            price,
		Organizer:        r.Organizer,
		ContactInfo:      r.ContactInfo,
		RegistrationLink: r.RegistrationLink,
		CreatedAt:        createdAt,
	}, nil
}

// ParseTime accepts RFC 3339 timestamps and the offset-less layouts the backend emits.
func (p *Parser) ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("timestamp is required")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, p.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}

func ParsePrice(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, errors.New("price is required")
	}
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a decimal number: %w", err)
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("price must not be negative")
	}
	return price, nil
}
