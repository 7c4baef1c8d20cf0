package service

import (
	"regexp"
	"strings"

	"aptchat/internal/model"
)

// greetingPhrases trigger the greeting intent ahead of every other check, so a
// casual opener never falls into a filter or sort branch.
var greetingPhrases = []string{"hi", "hello", "hey", "how are you", "good morning", "good evening"}

// filterTriggerWords indicate a constrained search
var filterTriggerWords = []string{"with", "in", "under", "above", "near", "bhk", "bedroom", "budget"}

var (
	priceDescRe = regexp.MustCompile(`(most expensive|highest price|most costly)`)
	priceAscRe  = regexp.MustCompile(`(cheapest|lowest price|most affordable)`)
	areaDescRe  = regexp.MustCompile(`(biggest|largest)`)
	areaAscRe   = regexp.MustCompile(`(smallest|tiniest)`)
)

// ClassifyIntent maps a free-text query onto exactly one intent. The checks run
// as an ordered cascade, first match wins:
// greeting, superlative sorts (location-qualified iff a location resolved),
// filter trigger words, semantic fallback.
func ClassifyIntent(query string, knownLocations []string) model.Intent {
	query = strings.ToLower(strings.TrimSpace(query))

	for _, greet := range greetingPhrases {
		if strings.Contains(query, greet) {
			return model.IntentGreeting
		}
	}

	location := ResolveLocation(query, knownLocations)

	switch {
	case priceDescRe.MatchString(query):
		if location != "" {
			return model.IntentSortByPriceDescLocation
		}
		return model.IntentSortByPriceDesc
	case priceAscRe.MatchString(query):
		if location != "" {
			return model.IntentSortByPriceAscLocation
		}
		return model.IntentSortByPriceAsc
	case areaDescRe.MatchString(query):
		if location != "" {
			return model.IntentSortByAreaDescLocation
		}
		return model.IntentSortByAreaDesc
	case areaAscRe.MatchString(query):
		if location != "" {
			return model.IntentSortByAreaAscLocation
		}
		return model.IntentSortByAreaAsc
	}

	for _, word := range filterTriggerWords {
		if strings.Contains(query, word) {
			return model.IntentFilterSearch
		}
	}

	return model.IntentSemanticSearch
}
