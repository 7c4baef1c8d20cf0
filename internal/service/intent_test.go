package service

import (
	"testing"

	"aptchat/internal/model"
)

func TestClassifyIntent(t *testing.T) {
	known := []string{"Andheri West, Mumbai", "Baner, Pune", "Koregaon Park, Pune"}

	tests := []struct {
		name     string
		query    string
		expected model.Intent
	}{
		{
			name:     "plain greeting",
			query:    "hello there",
			expected: model.IntentGreeting,
		},
		{
			name:     "greeting wins over sort and filter keywords",
			query:    "hi, show cheapest 2 bhk in Pune",
			expected: model.IntentGreeting,
		},
		{
			name:     "most expensive without location",
			query:    "show me the most expensive apartments",
			expected: model.IntentSortByPriceDesc,
		},
		{
			name:     "most expensive with location",
			query:    "most expensive apartments available around pune",
			expected: model.IntentSortByPriceDescLocation,
		},
		{
			name:     "cheapest with location",
			query:    "cheapest apartment located at mumbai",
			expected: model.IntentSortByPriceAscLocation,
		},
		{
			name:     "most affordable synonym",
			query:    "most affordable flats",
			expected: model.IntentSortByPriceAsc,
		},
		{
			name:     "largest without location",
			query:    "largest apartments please",
			expected: model.IntentSortByAreaDesc,
		},
		{
			name:     "smallest with location",
			query:    "smallest flat at baner",
			expected: model.IntentSortByAreaAscLocation,
		},
		{
			name:     "bhk triggers filter search",
			query:    "2 bhk flats",
			expected: model.IntentFilterSearch,
		},
		{
			name:     "price ceiling triggers filter search",
			query:    "flats under 40000",
			expected: model.IntentFilterSearch,
		},
		{
			// "with" alone is a filter trigger even when no concrete clause
			// parses, yielding an unconstrained filter query
			name:     "bare with triggers filter search",
			query:    "tell me about apartments with a view",
			expected: model.IntentFilterSearch,
		},
		{
			name:     "no keywords falls back to semantic search",
			query:    "cozy place for a couple",
			expected: model.IntentSemanticSearch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyIntent(tt.query, known)
			if got != tt.expected {
				t.Errorf("ClassifyIntent(%q) = %q, want %q", tt.query, got, tt.expected)
			}
		})
	}
}

func TestClassifyIntentSortWithoutKnownLocations(t *testing.T) {
	// With no known locations the sort intent stays unqualified
	got := ClassifyIntent("cheapest apartment located at mumbai", nil)
	if got != model.IntentSortByPriceAsc {
		t.Errorf("expected %q, got %q", model.IntentSortByPriceAsc, got)
	}
}
