package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/msomdec/bazaar/internal/domain"
)

// Query filters and sorts a listing snapshot. It is pure: the input slice is
// never mutated, the result is freshly allocated, and identical inputs yield
// identical output. Every listing view goes through this one function.
//
// All criteria must pass for a listing to be kept; zero-valued criteria
// impose no constraint. Sorting is stable, so equal keys keep their
// pre-sort (insertion) order. The zero SortKey keeps repository order.
func Query(listings []domain.Listing, criteria domain.FilterCriteria, sortKey domain.SortKey) []domain.Listing {
	result := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if matches(l, criteria) {
			result = append(result, l)
		}
	}

	switch sortKey {
	case domain.SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case domain.SortDateNew:
		sort.SliceStable(result, func(i, j int) bool { return dateValue(result[i]) > dateValue(result[j]) })
	case domain.SortDateOld:
		sort.SliceStable(result, func(i, j int) bool { return dateValue(result[i]) < dateValue(result[j]) })
	}

	return result
}

func matches(l domain.Listing, c domain.FilterCriteria) bool {
	if c.City != "" && l.City != c.City {
		return false
	}
	if c.PropertyType != "" && l.PropertyType != c.PropertyType {
		return false
	}
	if c.Make != "" && !containsFold(l.Make, c.Make) {
		return false
	}
	if c.Model != "" && !containsFold(l.Model, c.Model) {
		return false
	}
	if c.MaxPrice > 0 && l.Price > c.MaxPrice {
		return false
	}
	if c.MinBedrooms > 0 && l.Bedrooms < c.MinBedrooms {
		return false
	}
	if c.MinBathrooms > 0 && l.Bathrooms < c.MinBathrooms {
		return false
	}
	if c.MinYear > 0 && l.Year < c.MinYear {
		return false
	}
	if c.Query != "" && !containsFold(searchBlob(l), c.Query) {
		return false
	}
	return true
}

// searchBlob concatenates the free-text searchable fields of a listing.
// A single substring hit anywhere in the blob satisfies the query criterion.
func searchBlob(l domain.Listing) string {
	parts := []string{l.Title, l.Description, l.City}
	switch l.Category {
	case domain.CategoryHome:
		parts = append(parts, l.PropertyType)
	case domain.CategoryCar:
		parts = append(parts, l.Make, l.Model, strconv.Itoa(l.Year))
	}
	return strings.Join(parts, " ")
}

// dateValue maps a listing's creation time onto a sortable integer. Missing
// dates sort as the epoch, i.e. oldest.
func dateValue(l domain.Listing) int64 {
	if l.DateAdded.IsZero() {
		return 0
	}
	return l.DateAdded.Unix()
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
