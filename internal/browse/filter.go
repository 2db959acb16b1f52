package browse

import (
	"sort"
	"strings"

	"concert-ticketing-client/internal/models"
)

// SortOption selects the ordering of the concert list
type SortOption string

const (
	SortNewest    SortOption = "newest"
	SortOldest    SortOption = "oldest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortNameAZ    SortOption = "name-az"
	SortNameZA    SortOption = "name-za"
)

// ParseSortOption maps a query parameter to a sort option, defaulting to
// newest-first
func ParseSortOption(value string) SortOption {
	switch SortOption(value) {
	case SortOldest, SortPriceLow, SortPriceHigh, SortNameAZ, SortNameZA:
		return SortOption(value)
	default:
		return SortNewest
	}
}

// PriceRange is a browsing filter bucket keyed on a concert's lowest ticket
// price. Max of 0 means unbounded.
type PriceRange struct {
	ID    string
	Label string
	Min   int
	Max   int
}

// PriceRanges are the selectable price filter buckets
var PriceRanges = []PriceRange{
	{ID: "under500k", Label: "< Rp 500.000", Min: 0, Max: 500000},
	{ID: "500k-1m", Label: "Rp 500.000 - 1.000.000", Min: 500000, Max: 1000000},
	{ID: "above1m", Label: "> Rp 1.000.000", Min: 1000000, Max: 0},
}

// contains reports whether price falls within the range
func (r PriceRange) contains(price int) bool {
	if price < r.Min {
		return false
	}
	return r.Max == 0 || price < r.Max
}

// Filter narrows and orders the concert list. Zero-value fields are inactive.
type Filter struct {
	Query       string
	PriceRanges []string // PriceRange IDs
	Venues      []string
	SortBy      SortOption
}

// Apply filters and sorts a copy of the concert list
func (f Filter) Apply(concerts []models.Concert) []models.Concert {
	result := make([]models.Concert, 0, len(concerts))

	query := strings.ToLower(strings.TrimSpace(f.Query))
	for _, concert := range concerts {
		if query != "" &&
			!strings.Contains(strings.ToLower(concert.Title), query) &&
			!strings.Contains(strings.ToLower(concert.Venue), query) {
			continue
		}

		if len(f.PriceRanges) > 0 && !f.matchesPriceRange(&concert) {
			continue
		}

		if len(f.Venues) > 0 && !containsString(f.Venues, concert.Venue) {
			continue
		}

		result = append(result, concert)
	}

	f.sortConcerts(result)
	return result
}

// matchesPriceRange checks the concert's lowest price against any selected
// bucket
func (f Filter) matchesPriceRange(concert *models.Concert) bool {
	lowest := concert.LowestPrice()
	for _, id := range f.PriceRanges {
		for _, r := range PriceRanges {
			if r.ID == id && r.contains(lowest) {
				return true
			}
		}
	}
	return false
}

// sortConcerts orders the list in place. Price comparisons use the minimum
// ticket type price of each concert.
func (f Filter) sortConcerts(concerts []models.Concert) {
	sort.SliceStable(concerts, func(i, j int) bool {
		a, b := &concerts[i], &concerts[j]
		switch f.SortBy {
		case SortOldest:
			return models.ParseBackendTime(a.StartAt).Before(models.ParseBackendTime(b.StartAt))
		case SortPriceLow:
			return a.LowestPrice() < b.LowestPrice()
		case SortPriceHigh:
			return a.LowestPrice() > b.LowestPrice()
		case SortNameAZ:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortNameZA:
			return strings.ToLower(a.Title) > strings.ToLower(b.Title)
		default: // newest
			return models.ParseBackendTime(a.StartAt).After(models.ParseBackendTime(b.StartAt))
		}
	})
}

// Venues returns the unique venues across concerts, sorted alphabetically
func Venues(concerts []models.Concert) []string {
	seen := make(map[string]bool)
	var venues []string
	for _, concert := range concerts {
		if !seen[concert.Venue] {
			seen[concert.Venue] = true
			venues = append(venues, concert.Venue)
		}
	}
	sort.Strings(venues)
	return venues
}

// containsString reports whether values contains value
func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
