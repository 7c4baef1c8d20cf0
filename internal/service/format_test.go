package service

import (
	"reflect"
	"strings"
	"testing"

	"aptchat/internal/model"
)

func sampleResult() model.RetrievalResult {
	return model.RetrievalResult{
		Apartment: model.Apartment{
			Bedrooms:  2,
			Location:  "Baner, Pune",
			Price:     35000,
			AreaSqft:  1100,
			Amenities: model.StringArray{"Swimming Pool", "Gym"},
		},
	}
}

func TestFormatResultsNoResults(t *testing.T) {
	items := FormatResults(model.IntentFilterSearch, nil, "")

	if len(items) != 1 {
		t.Fatalf("expected a single item, got %d", len(items))
	}
	if items[0].Type != model.ItemTypeNoResults {
		t.Errorf("expected no_results item, got %q", items[0].Type)
	}
	if items[0].Summary != NoResultsMessage {
		t.Errorf("unexpected message: %q", items[0].Summary)
	}
}

func TestFormatResultsHeaderPrecedesRecords(t *testing.T) {
	results := []model.RetrievalResult{sampleResult(), sampleResult()}
	items := FormatResults(model.IntentFilterSearch, results, "")

	if len(items) != 3 {
		t.Fatalf("expected header plus 2 records, got %d items", len(items))
	}
	if items[0].Type != model.ItemTypeHeader {
		t.Errorf("first item should be the header, got type %q", items[0].Type)
	}
	for i, item := range items[1:] {
		if item.Type != "" || item.Details == nil {
			t.Errorf("record item %d malformed: %+v", i, item)
		}
	}
}

func TestFormatResultsHeaderText(t *testing.T) {
	results := []model.RetrievalResult{sampleResult()}

	tests := []struct {
		name     string
		intent   model.Intent
		location string
		contains string
	}{
		{"price desc with location", model.IntentSortByPriceDescLocation, "Baner, Pune", "most expensive apartments in Baner, Pune"},
		{"price asc with location", model.IntentSortByPriceAscLocation, "Baner, Pune", "most affordable apartments in Baner, Pune"},
		{"price asc without location", model.IntentSortByPriceAsc, "", "most affordable apartments we have"},
		{"area desc", model.IntentSortByAreaDesc, "", "largest apartments we have"},
		{"area asc", model.IntentSortByAreaAsc, "", "most compact apartments we have"},
		{"filter", model.IntentFilterSearch, "", "matching your filters"},
		{"semantic", model.IntentSemanticSearch, "", "might interest you"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := FormatResults(tt.intent, results, tt.location)
			if !strings.Contains(items[0].Summary, tt.contains) {
				t.Errorf("header %q does not contain %q", items[0].Summary, tt.contains)
			}
		})
	}
}

func TestFormatResultsRecordSummary(t *testing.T) {
	items := FormatResults(model.IntentFilterSearch, []model.RetrievalResult{sampleResult()}, "")
	summary := items[1].Summary

	for _, want := range []string{"2 BHK", "Baner, Pune", "1100 sqft", "₹35000", "Swimming Pool, Gym"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
	if strings.Contains(summary, "Relevance Score") {
		t.Error("non-semantic result should not carry a relevance line")
	}
}

func TestFormatResultsSemanticScoreLine(t *testing.T) {
	r := sampleResult()
	score := 0.1235
	r.Score = &score

	items := FormatResults(model.IntentSemanticSearch, []model.RetrievalResult{r}, "")

	if !strings.Contains(items[1].Summary, "Relevance Score:** 0.12") {
		t.Errorf("expected 2-decimal relevance line, got:\n%s", items[1].Summary)
	}
	if items[1].SimilarityScore == nil || *items[1].SimilarityScore != 0.1235 {
		t.Errorf("expected similarity_score 0.1235, got %v", items[1].SimilarityScore)
	}
}

func TestFormatResultsEmptyAmenities(t *testing.T) {
	r := sampleResult()
	r.Amenities = nil

	items := FormatResults(model.IntentFilterSearch, []model.RetrievalResult{r}, "")
	if !strings.Contains(items[1].Summary, "Amenities:** None") {
		t.Errorf("expected None for absent amenities, got:\n%s", items[1].Summary)
	}
}

// Details must reflect the underlying record unmodified
func TestFormatResultsDetailsRoundTrip(t *testing.T) {
	r := sampleResult()
	items := FormatResults(model.IntentFilterSearch, []model.RetrievalResult{r}, "")

	details := items[1].Details
	if details == nil {
		t.Fatal("record item missing details")
	}
	if details.Bedrooms != r.Bedrooms || details.Location != r.Location ||
		details.Price != r.Price || details.AreaSqft != r.AreaSqft ||
		!reflect.DeepEqual(details.Amenities, []string(r.Amenities)) {
		t.Errorf("details do not match source record: %+v vs %+v", details, r.Apartment)
	}
}
