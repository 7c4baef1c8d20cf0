package service

import (
	"fmt"
	"strings"

	"aptchat/internal/model"
)

// Fixed user-facing messages
const (
	GreetingMessage  = "👋 Hello! I'm your apartment search assistant. How can I help you find your perfect home today?"
	NoResultsMessage = "🔍 I couldn't find any apartments matching your criteria. Try broadening your search or adjusting your filters."
)

// FormatResults renders retrieval results into envelope items: one header item
// followed by a record item per result, in retrieval order. An empty result
// list yields a single no-results item.
func FormatResults(intent model.Intent, results []model.RetrievalResult, location string) []model.ChatItem {
	if len(results) == 0 {
		return []model.ChatItem{{
			Summary: NoResultsMessage,
			Type:    model.ItemTypeNoResults,
		}}
	}

	items := make([]model.ChatItem, 0, len(results)+1)
	items = append(items, model.ChatItem{
		Summary: "✨ " + headerText(intent, location),
		Type:    model.ItemTypeHeader,
	})

	for _, r := range results {
		items = append(items, recordItem(r))
	}

	return items
}

// recordItem builds the human-readable summary plus the unmodified record details
func recordItem(r model.RetrievalResult) model.ChatItem {
	amenities := "None"
	if len(r.Amenities) > 0 {
		amenities = strings.Join(r.Amenities, ", ")
	}

	summary := fmt.Sprintf(
		"🏠 **%d BHK Apartment**\n"+
			"📍 **Location:** %s\n"+
			"📏 **Area:** %g sqft\n"+
			"💰 **Price:** ₹%g\n"+
			"🛁 **Amenities:** %s\n",
		r.Bedrooms, r.Location, r.AreaSqft, r.Price, amenities,
	)

	// Relevance line only on the semantic path
	if r.Score != nil {
		summary += fmt.Sprintf("🔍 **Relevance Score:** %.2f", *r.Score)
	}

	return model.ChatItem{
		Summary:         summary,
		SimilarityScore: r.Score,
		Details: &model.ApartmentDetails{
			Bedrooms:  r.Bedrooms,
			Location:  r.Location,
			Price:     r.Price,
			AreaSqft:  r.AreaSqft,
			Amenities: r.Amenities,
		},
	}
}

// headerText picks the contextual header for the intent family
func headerText(intent model.Intent, location string) string {
	scope := " we have"
	if location != "" {
		scope = " in " + location
	}

	switch intent.SortField() {
	case model.SortFieldPrice:
		if intent.Descending() {
			return fmt.Sprintf("Here are the most expensive apartments%s:", scope)
		}
		return fmt.Sprintf("Here are the most affordable apartments%s:", scope)
	case model.SortFieldArea:
		if intent.Descending() {
			return fmt.Sprintf("Here are the largest apartments%s:", scope)
		}
		return fmt.Sprintf("Here are the most compact apartments%s:", scope)
	}

	if intent == model.IntentFilterSearch {
		return "Here are apartments matching your filters:"
	}
	return "Here are some apartments that might interest you:"
}
