package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindHackathon   Kind = "hackathon"
	KindCultural    Kind = "cultural"
	KindSports      Kind = "sports"
	KindCompetition Kind = "competition"
	KindWorkshop    Kind = "workshop"
	KindSeminar     Kind = "seminar"
	KindOthers      Kind = "others"
)

var knownKinds = []Kind{KindHackathon, KindCultural, KindSports, KindCompetition, KindWorkshop, KindSeminar, KindOthers}

func (k Kind) IsKnown() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Category is the classification of an event: one of the known kinds, or a custom
// label. Custom labels come from "others" events carrying an other_type_name and from
// type strings outside the known kinds.
type Category struct {
	Kind  Kind
	Label string
}

func CategoryOf(eventType string, otherTypeName string) Category {
	kind := Kind(eventType)
	if kind == KindOthers && otherTypeName != "" {
		return Category{Kind: KindOthers, Label: otherTypeName}
	}
	if !kind.IsKnown() {
		return Category{Kind: KindOthers, Label: eventType}
	}
	return Category{Kind: kind}
}

func (c Category) IsCustom() bool {
	return c.Label != ""
}

// Raw is the category string as entered upstream, before any display formatting.
func (c Category) Raw() string {
	if c.IsCustom() {
		return c.Label
	}
	return string(c.Kind)
}

// Key returns the grouping key. Keys are case-sensitive unless foldCase is set.
func (c Category) Key(foldCase bool) string {
	if foldCase {
		return strings.ToLower(strings.TrimSpace(c.Raw()))
	}
	return c.Raw()
}

// DisplayName capitalizes the first letter only, so "dance night" stays "Dance night".
func (c Category) DisplayName() string {
	return capitalize(c.Raw())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

type Event struct {
	ID               int
	Title            string
	Description      string
	Image            string
	Type             string
	OtherTypeName    string
	Category         Category
	MinParticipants  int
	MaxParticipants  int
	Location         string
	StartDate        time.Time
	EndDate          time.Time
	Price            decimal.Decimal
	Organizer        string
	ContactInfo      string
	RegistrationLink string
	CreatedAt        time.Time
}

func (e Event) IsFree() bool {
	return e.Price.IsZero()
}

func (e Event) IsUpcoming(now time.Time) bool {
	return e.StartDate.After(now)
}

var ErrNotFound = errors.New("event not found")

func FindByID(events []Event, id int) (Event, error) {
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return Event{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}
