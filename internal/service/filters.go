package service

import (
	"regexp"
	"strconv"
	"strings"

	"aptchat/internal/model"
)

var (
	bhkRe      = regexp.MustCompile(`(\d)\s?bhk`)
	priceMaxRe = regexp.MustCompile(`(under|below)\s?(\d+)`)
	priceMinRe = regexp.MustCompile(`(above|over)\s?(\d+)`)
)

// amenityKeywords maps query keywords to the canonical amenity names stored on
// records. All matched amenities must be present on a result.
var amenityKeywords = []struct {
	keyword   string
	canonical string
}{
	{"pool", "Swimming Pool"},
	{"gym", "Gym"},
	{"parking", "Parking"},
}

// ExtractFilters pulls structured constraints out of a free-text query. Each
// rule is independent and all are applied; a clause that fails to parse is
// treated as absent, never as an error.
func ExtractFilters(query string, knownLocations []string) *model.FilterSpec {
	query = strings.ToLower(query)
	spec := &model.FilterSpec{}

	if m := bhkRe.FindStringSubmatch(query); m != nil {
		if bedrooms, err := strconv.Atoi(m[1]); err == nil {
			spec.Bedrooms = &bedrooms
		}
	}

	if location := ResolveLocation(query, knownLocations); location != "" {
		spec.Location = &location
	}

	if strings.Contains(query, "under") || strings.Contains(query, "below") {
		if m := priceMaxRe.FindStringSubmatch(query); m != nil {
			if amount, err := strconv.ParseFloat(m[2], 64); err == nil {
				spec.PriceMax = &amount
			}
		}
	} else if strings.Contains(query, "above") || strings.Contains(query, "over") {
		if m := priceMinRe.FindStringSubmatch(query); m != nil {
			if amount, err := strconv.ParseFloat(m[2], 64); err == nil {
				spec.PriceMin = &amount
			}
		}
	}

	for _, a := range amenityKeywords {
		if strings.Contains(query, a.keyword) {
			spec.Amenities = append(spec.Amenities, a.canonical)
		}
	}

	return spec
}
