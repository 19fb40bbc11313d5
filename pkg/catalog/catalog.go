package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/evebuzz/evebuzz/pkg/event"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortByDate      SortOrder = "date"
	SortByTitle     SortOrder = "title"
	SortByOrganizer SortOrder = "organizer"
)

func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case "", SortByDate:
		return SortByDate, nil
	case SortByTitle:
		return SortByTitle, nil
	case SortByOrganizer:
		return SortByOrganizer, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", value)
	}
}

const AllTypes = "all"

type Query struct {
	Type     string
	Search   string
	Sort     SortOrder
	Page     int
	PageSize int
}

type Page struct {
	Items      []event.Event
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// MatchesType compares case-insensitively against the type, and against the custom label
// of "others" events.
func MatchesType(e event.Event, typeFilter string) bool {
	typeFilter = strings.TrimSpace(typeFilter)
	if typeFilter == "" || strings.EqualFold(typeFilter, AllTypes) {
		return true
	}
	if strings.EqualFold(e.Type, typeFilter) {
		return true
	}
	return event.Kind(e.Type) == event.KindOthers && e.OtherTypeName != "" && strings.EqualFold(e.OtherTypeName, typeFilter)
}

func MatchesSearch(e event.Event, search string) bool {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return true
	}
	for _, field := range []string{e.Title, e.Description, e.Location, e.Organizer} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func Filter(events []event.Event, typeFilter string, search string) []event.Event {
	result := make([]event.Event, 0, len(events))
	for _, e := range events {
		if MatchesType(e, typeFilter) && MatchesSearch(e, search) {
			result = append(result, e)
		}
	}
	return result
}

// Sort orders events in place. Equal keys keep their snapshot order. Titles and organizers
// are compared with the collation rules of lang.
func Sort(events []event.Event, order SortOrder, lang language.Tag) {
	switch order {
	case SortByTitle, SortByOrganizer:
		collator := collate.New(lang, collate.IgnoreCase)
		key := func(e event.Event) string {
			if order == SortByTitle {
				return e.Title
			}
			return e.Organizer
		}
		slices.SortStableFunc(events, func(a, b event.Event) int {
			return collator.CompareString(key(a), key(b))
		})
	default:
		slices.SortStableFunc(events, func(a, b event.Event) int {
			return a.StartDate.Compare(b.StartDate)
		})
	}
}

// MaxPageSize bounds the page size accepted from clients.
const MaxPageSize = 100

// Paginate cuts a 1-based page. Pages past the end are empty but keep the totals.
func Paginate(events []event.Event, page int, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	total := len(events)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	result := Page{
		Items:      []event.Event{},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
	// checked before the multiply so huge pages cannot overflow the offset
	if page > totalPages {
		return result
	}
	from := (page - 1) * pageSize
	to := from + min(pageSize, total-from)
	result.Items = events[from:to]
	return result
}

// Related returns up to limit other events sharing the category of the event with id.
func Related(events []event.Event, id int, limit int, foldCase bool) ([]event.Event, error) {
	target, err := event.FindByID(events, id)
	if err != nil {
		return nil, err
	}
	result := make([]event.Event, 0)
	if limit <= 0 {
		return result, nil
	}
	key := target.Category.Key(foldCase)
	for _, e := range events {
		if len(result) >= limit {
			break
		}
		if e.ID != id && e.Category.Key(foldCase) == key {
			result = append(result, e)
		}
	}
	return result, nil
}
