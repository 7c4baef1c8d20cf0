package model

// Intent is the classified purpose of a query. Exactly one intent is selected
// per query by an ordered rule cascade.
type Intent string

const (
	IntentGreeting Intent = "greeting"

	IntentSortByPriceDesc         Intent = "sort_by_price_desc"
	IntentSortByPriceDescLocation Intent = "sort_by_price_desc_location"
	IntentSortByPriceAsc          Intent = "sort_by_price_asc"
	IntentSortByPriceAscLocation  Intent = "sort_by_price_asc_location"
	IntentSortByAreaDesc          Intent = "sort_by_area_desc"
	IntentSortByAreaDescLocation  Intent = "sort_by_area_desc_location"
	IntentSortByAreaAsc           Intent = "sort_by_area_asc"
	IntentSortByAreaAscLocation   Intent = "sort_by_area_asc_location"

	IntentFilterSearch   Intent = "filter_search"
	IntentSemanticSearch Intent = "semantic_search"
)

// Sort field names, matching the store's column names
const (
	SortFieldPrice = "price"
	SortFieldArea  = "area_sqft"
)

// IsSort reports whether the intent is one of the sort variants
func (i Intent) IsSort() bool {
	switch i {
	case IntentSortByPriceDesc, IntentSortByPriceDescLocation,
		IntentSortByPriceAsc, IntentSortByPriceAscLocation,
		IntentSortByAreaDesc, IntentSortByAreaDescLocation,
		IntentSortByAreaAsc, IntentSortByAreaAscLocation:
		return true
	}
	return false
}

// SortField returns the field a sort intent orders by, or "" for non-sort intents
func (i Intent) SortField() string {
	switch i {
	case IntentSortByPriceDesc, IntentSortByPriceDescLocation,
		IntentSortByPriceAsc, IntentSortByPriceAscLocation:
		return SortFieldPrice
	case IntentSortByAreaDesc, IntentSortByAreaDescLocation,
		IntentSortByAreaAsc, IntentSortByAreaAscLocation:
		return SortFieldArea
	}
	return ""
}

// Descending reports whether a sort intent orders high-to-low
func (i Intent) Descending() bool {
	switch i {
	case IntentSortByPriceDesc, IntentSortByPriceDescLocation,
		IntentSortByAreaDesc, IntentSortByAreaDescLocation:
		return true
	}
	return false
}

// LocationQualified reports whether a sort intent is scoped to a resolved location
func (i Intent) LocationQualified() bool {
	switch i {
	case IntentSortByPriceDescLocation, IntentSortByPriceAscLocation,
		IntentSortByAreaDescLocation, IntentSortByAreaAscLocation:
		return true
	}
	return false
}

// FilterSpec is a set of structured constraints extracted from a query. A nil
// or zero spec means "no constraint", not "no results".
type FilterSpec struct {
	Bedrooms  *int
	Location  *string
	PriceMin  *float64
	PriceMax  *float64
	Amenities []string // record must contain ALL of these
}

// IsEmpty reports whether the spec carries no constraints
func (f *FilterSpec) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Bedrooms == nil && f.Location == nil &&
		f.PriceMin == nil && f.PriceMax == nil && len(f.Amenities) == 0
}
