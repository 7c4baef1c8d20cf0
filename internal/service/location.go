package service

import "strings"

// cityAliases maps alternate city spellings to the canonical city keyword.
// Resolution scans known locations for one containing the alias.
var cityAliases = [][]string{
	{"pune", "puna"},
	{"mumbai", "bombay"},
	{"bangalore", "bengaluru"},
	{"delhi", "new delhi", "dilli"},
}

// ResolveLocation maps free text onto a canonical location from the store.
// Match stages, first hit wins:
//  1. the query contains a known location's full string
//  2. the query contains a location's city part (segment before the first comma)
//  3. the query contains a known city alias; the first known location whose
//     lowercase form contains the alias is returned
//
// Matching is case-insensitive. knownLocations must be freshly fetched per
// query, and its order decides ties in stage 3 (the store returns it sorted).
// Returns "" when nothing matched.
func ResolveLocation(query string, knownLocations []string) string {
	query = strings.ToLower(query)

	for _, loc := range knownLocations {
		if strings.Contains(query, strings.ToLower(loc)) {
			return loc
		}
	}

	for _, loc := range knownLocations {
		cityPart := strings.TrimSpace(strings.SplitN(strings.ToLower(loc), ",", 2)[0])
		if cityPart != "" && strings.Contains(query, cityPart) {
			return loc
		}
	}

	for _, aliasList := range cityAliases {
		for _, alias := range aliasList {
			if !strings.Contains(query, alias) {
				continue
			}
			for _, loc := range knownLocations {
				if strings.Contains(strings.ToLower(loc), alias) {
					return loc
				}
			}
		}
	}

	return ""
}
