package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aptchat/internal/model"
)

type fakeStore struct {
	locations    []string
	apartments   []model.Apartment
	locationsErr error

	findSpec    *model.FilterSpec
	findLimit   int
	findCalls   int
	sortedSpec  *model.FilterSpec
	sortedField string
	sortedDesc  bool
	sortedLimit int
	sortedCalls int
}

func (f *fakeStore) Find(ctx context.Context, spec *model.FilterSpec, limit int) ([]model.Apartment, error) {
	f.findCalls++
	f.findSpec = spec
	f.findLimit = limit
	return f.apartments, nil
}

func (f *fakeStore) FindSorted(ctx context.Context, spec *model.FilterSpec, field string, descending bool, limit int) ([]model.Apartment, error) {
	f.sortedCalls++
	f.sortedSpec = spec
	f.sortedField = field
	f.sortedDesc = descending
	f.sortedLimit = limit
	return f.apartments, nil
}

func (f *fakeStore) DistinctLocations(ctx context.Context) ([]string, error) {
	if f.locationsErr != nil {
		return nil, f.locationsErr
	}
	return f.locations, nil
}

type fakeIndex struct {
	neighbors []model.Neighbor
	requested int
	err       error
}

func (f *fakeIndex) NearestNeighbors(ctx context.Context, embedding []float32, k int) ([]model.Neighbor, error) {
	f.requested = k
	if f.err != nil {
		return nil, f.err
	}
	return f.neighbors, nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (f *fakeEmbedder) IsEnabled() bool { return f.err == nil }

func testApartments() []model.Apartment {
	return []model.Apartment{
		{Bedrooms: 2, Location: "Andheri West, Mumbai", Price: 30000, AreaSqft: 900, Amenities: model.StringArray{"Gym"}},
		{Bedrooms: 3, Location: "Andheri West, Mumbai", Price: 52000, AreaSqft: 1400, Amenities: model.StringArray{"Swimming Pool"}},
	}
}

func newTestService(store *fakeStore, index *fakeIndex, embedder Embedder) *ChatService {
	return NewChatService(store, index, embedder, 5, 100)
}

func TestChatServiceGreeting(t *testing.T) {
	store := &fakeStore{locations: []string{"Baner, Pune"}}
	svc := newTestService(store, &fakeIndex{}, &fakeEmbedder{})

	resp, err := svc.Answer(context.Background(), "hi, show cheapest 2 bhk in Pune")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != model.StatusGreeting {
		t.Errorf("expected greeting status, got %q", resp.Status)
	}
	if resp.Message != GreetingMessage {
		t.Errorf("unexpected greeting message: %q", resp.Message)
	}
	if len(resp.Results) != 0 {
		t.Errorf("greeting should carry no results, got %d", len(resp.Results))
	}
	if store.findCalls != 0 || store.sortedCalls != 0 {
		t.Error("greeting must short-circuit before any retrieval")
	}
}

func TestChatServiceSortedWithLocation(t *testing.T) {
	store := &fakeStore{
		locations:  []string{"Andheri West, Mumbai", "Baner, Pune"},
		apartments: testApartments(),
	}
	svc := newTestService(store, &fakeIndex{}, &fakeEmbedder{})

	resp, err := svc.Answer(context.Background(), "cheapest apartment located at mumbai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.sortedCalls != 1 {
		t.Fatalf("expected one sorted query, got %d", store.sortedCalls)
	}
	if store.sortedField != model.SortFieldPrice || store.sortedDesc {
		t.Errorf("expected price ascending sort, got field=%s desc=%v", store.sortedField, store.sortedDesc)
	}
	if store.sortedLimit != 5 {
		t.Errorf("expected sort limited to top-K 5, got %d", store.sortedLimit)
	}
	if store.sortedSpec.Location == nil || *store.sortedSpec.Location != "Andheri West, Mumbai" {
		t.Errorf("expected location constraint, got %v", store.sortedSpec.Location)
	}

	if resp.Status != model.StatusSuccess {
		t.Fatalf("expected success, got %q", resp.Status)
	}
	if !strings.Contains(resp.Results[0].Summary, "most affordable apartments in Andheri West, Mumbai") {
		t.Errorf("unexpected header: %q", resp.Results[0].Summary)
	}
	if len(resp.Results) != len(testApartments())+1 {
		t.Errorf("expected header plus %d records, got %d items", len(testApartments()), len(resp.Results))
	}
}

func TestChatServiceFilterSearch(t *testing.T) {
	store := &fakeStore{
		locations:  []string{"Baner, Pune"},
		apartments: testApartments(),
	}
	svc := newTestService(store, &fakeIndex{}, &fakeEmbedder{})

	resp, err := svc.Answer(context.Background(), "2 bhk flats under 50000 with pool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.findCalls != 1 {
		t.Fatalf("expected one filter query, got %d", store.findCalls)
	}
	if store.findSpec.Bedrooms == nil || *store.findSpec.Bedrooms != 2 {
		t.Errorf("expected bedrooms=2 constraint, got %v", store.findSpec.Bedrooms)
	}
	if store.findSpec.PriceMax == nil || *store.findSpec.PriceMax != 50000 {
		t.Errorf("expected price<=50000 constraint, got %v", store.findSpec.PriceMax)
	}
	if len(store.findSpec.Amenities) != 1 || store.findSpec.Amenities[0] != "Swimming Pool" {
		t.Errorf("expected Swimming Pool amenity constraint, got %v", store.findSpec.Amenities)
	}
	if store.findLimit != 100 {
		t.Errorf("expected filter results capped at 100, got %d", store.findLimit)
	}

	if resp.Status != model.StatusSuccess {
		t.Errorf("expected success, got %q", resp.Status)
	}
}

func TestChatServiceSemanticSearch(t *testing.T) {
	index := &fakeIndex{
		neighbors: []model.Neighbor{
			{Apartment: testApartments()[0], Distance: 0.1},
			{Apartment: testApartments()[0], Distance: 0.2}, // duplicate
			{Apartment: testApartments()[1], Distance: 0.3},
		},
	}
	store := &fakeStore{locations: []string{"Baner, Pune"}}
	svc := newTestService(store, index, &fakeEmbedder{})

	resp, err := svc.Answer(context.Background(), "cozy place for a couple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Over-fetch: 2x top-K neighbors requested
	if index.requested != 10 {
		t.Errorf("expected 10 neighbors requested, got %d", index.requested)
	}

	if resp.Status != model.StatusSuccess {
		t.Fatalf("expected success, got %q", resp.Status)
	}
	// Header + 2 deduplicated records
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 items, got %d", len(resp.Results))
	}
	for _, item := range resp.Results[1:] {
		if item.SimilarityScore == nil {
			t.Error("semantic record missing similarity score")
		}
	}
}

func TestChatServiceNoResults(t *testing.T) {
	store := &fakeStore{locations: []string{"Baner, Pune"}}
	svc := newTestService(store, &fakeIndex{}, &fakeEmbedder{})

	resp, err := svc.Answer(context.Background(), "5 bhk flats under 100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != model.StatusNoResults {
		t.Errorf("expected no_results, got %q", resp.Status)
	}
	if resp.Message != NoResultsMessage {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestChatServiceStoreFailurePropagates(t *testing.T) {
	store := &fakeStore{locationsErr: errors.New("connection refused")}
	svc := newTestService(store, &fakeIndex{}, &fakeEmbedder{})

	if _, err := svc.Answer(context.Background(), "2 bhk flats"); err == nil {
		t.Fatal("expected store failure to propagate")
	}
}

func TestChatServiceIndexFailurePropagates(t *testing.T) {
	store := &fakeStore{locations: []string{"Baner, Pune"}}
	index := &fakeIndex{err: errors.New("index down")}
	svc := newTestService(store, index, &fakeEmbedder{})

	if _, err := svc.Answer(context.Background(), "cozy place for a couple"); err == nil {
		t.Fatal("expected index failure to propagate")
	}
}
