package catalog

import (
	"fmt"
	"math"
	"testing"

	"github.com/evebuzz/evebuzz/internal/test_utils"
	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func ids(events []event.Event) []int {
	result := make([]int, 0, len(events))
	for _, e := range events {
		result = append(result, e.ID)
	}
	return result
}

func catalogueRecords() []event.Record {
	hack := test_utils.Record(1, "hackathon", "0", "2025-05-28", 4)
	hack.Title = "Code Sprint"
	hack.Organizer = "CS Society"

	seminar := test_utils.Record(2, "seminar", "10", "2025-05-20", 50)
	seminar.Title = "Ethics in AI"
	seminar.Description = "A talk about responsible machine learning"
	seminar.Organizer = "Philosophy Club"

	dance := test_utils.Other(3, "Dance Night", "0", "2025-06-01", 100)
	dance.Title = "ábaco evening"
	dance.Location = "Gym"
	dance.Organizer = "dance club"

	hack2 := test_utils.Record(4, "Hackathon", "20", "2025-05-10", 6)
	hack2.Title = "Build Weekend"
	hack2.Organizer = "Alumni"

	return []event.Record{hack, seminar, dance, hack2}
}

func TestFilter(t *testing.T) {
	events := test_utils.MustParse(t, catalogueRecords()...)

	tests := []struct {
		name       string
		typeFilter string
		search     string
		want       []int
	}{
		{"no filter", "", "", []int{1, 2, 3, 4}},
		{"all disables type filter", "ALL", "", []int{1, 2, 3, 4}},
		{"type is case-insensitive", "hackathon", "", []int{1, 4}},
		{"matches custom label of others", "dance night", "", []int{3}},
		{"matches others type itself", "others", "", []int{3}},
		{"search title", "", "sprint", []int{1}},
		{"search description", "", "MACHINE", []int{2}},
		{"search location", "", "gym", []int{3}},
		{"search organizer", "", "alumni", []int{4}},
		{"type and search combined", "hackathon", "weekend", []int{4}},
		{"nothing matches", "sports", "", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(events, tt.typeFilter, tt.search)))
		})
	}
}

func TestSort(t *testing.T) {
	t.Run("should sort by start date by default", func(t *testing.T) {
		events := test_utils.MustParse(t, catalogueRecords()...)

		Sort(events, SortByDate, language.English)

		assert.Equal(t, []int{4, 2, 1, 3}, ids(events))
	})

	t.Run("should sort titles with locale collation", func(t *testing.T) {
		events := test_utils.MustParse(t, catalogueRecords()...)

		Sort(events, SortByTitle, language.English)

		// "ábaco" sorts with "a", not after "z"
		assert.Equal(t, []int{3, 4, 1, 2}, ids(events))
	})

	t.Run("should sort organizers ignoring case", func(t *testing.T) {
		events := test_utils.MustParse(t, catalogueRecords()...)

		Sort(events, SortByOrganizer, language.English)

		assert.Equal(t, []int{4, 1, 3, 2}, ids(events))
	})

	t.Run("should keep snapshot order for equal keys", func(t *testing.T) {
		records := []event.Record{
			test_utils.Record(1, "sports", "0", "2025-05-01", 1),
			test_utils.Record(2, "sports", "0", "2025-05-01", 1),
			test_utils.Record(3, "sports", "0", "2025-05-01", 1),
		}
		events := test_utils.MustParse(t, records...)

		Sort(events, SortByTitle, language.English)

		assert.Equal(t, []int{1, 2, 3}, ids(events))
	})
}

func TestParseSortOrder(t *testing.T) {
	order, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortByDate, order)

	order, err = ParseSortOrder("Organizer")
	require.NoError(t, err)
	assert.Equal(t, SortByOrganizer, order)

	_, err = ParseSortOrder("price")
	assert.Error(t, err)
}

func TestPaginate(t *testing.T) {
	records := make([]event.Record, 0, 14)
	for i := 1; i <= 14; i++ {
		records = append(records, test_utils.Record(i, "sports", "0", fmt.Sprintf("2025-05-%02d", i), 1))
	}
	events := test_utils.MustParse(t, records...)

	t.Run("should cut requested page", func(t *testing.T) {
		page := Paginate(events, 2, 6)

		assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, ids(page.Items))
		assert.Equal(t, 14, page.TotalItems)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("should return partial last page", func(t *testing.T) {
		page := Paginate(events, 3, 6)

		assert.Equal(t, []int{13, 14}, ids(page.Items))
	})

	t.Run("should return empty items past the end with correct totals", func(t *testing.T) {
		page := Paginate(events, 9, 6)

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 9, page.Page)
		assert.Equal(t, 14, page.TotalItems)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("should report zero pages for empty input", func(t *testing.T) {
		page := Paginate(nil, 1, 6)

		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("should return empty items for huge page number", func(t *testing.T) {
		page := Paginate(events[:3], 1<<62, 4)

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1<<62, page.Page)
		assert.Equal(t, 3, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("should return every item for huge page size", func(t *testing.T) {
		page := Paginate(events[:3], 1, math.MaxInt)

		assert.Equal(t, []int{1, 2, 3}, ids(page.Items))
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("should return empty items for huge page number and page size", func(t *testing.T) {
		page := Paginate(events, math.MaxInt, math.MaxInt)

		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
	})
}

func TestRelated(t *testing.T) {
	records := []event.Record{
		test_utils.Record(1, "hackathon", "0", "2025-05-01", 1),
		test_utils.Record(2, "seminar", "0", "2025-05-02", 1),
		test_utils.Record(3, "hackathon", "0", "2025-05-03", 1),
		test_utils.Record(4, "Hackathon", "0", "2025-05-04", 1),
		test_utils.Record(5, "hackathon", "0", "2025-05-05", 1),
		test_utils.Record(6, "hackathon", "0", "2025-05-06", 1),
		test_utils.Record(7, "hackathon", "0", "2025-05-07", 1),
	}
	events := test_utils.MustParse(t, records...)

	t.Run("should return at most limit events of same category", func(t *testing.T) {
		related, err := Related(events, 1, 3, false)

		require.NoError(t, err)
		assert.Equal(t, []int{3, 5, 6}, ids(related))
	})

	t.Run("should merge casings when folding", func(t *testing.T) {
		related, err := Related(events, 1, 3, true)

		require.NoError(t, err)
		assert.Equal(t, []int{3, 4, 5}, ids(related))
	})

	t.Run("should return empty when category is unique", func(t *testing.T) {
		related, err := Related(events, 2, 3, false)

		require.NoError(t, err)
		assert.Empty(t, related)
	})

	t.Run("should fail for unknown event", func(t *testing.T) {
		_, err := Related(events, 99, 3, false)

		assert.ErrorIs(t, err, event.ErrNotFound)
	})
}
