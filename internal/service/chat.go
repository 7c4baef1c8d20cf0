package service

import (
	"context"
	"fmt"

	"aptchat/internal/model"
)

// ApartmentStore is the document store the retrieval strategies query.
// Implementations must be safe for concurrent reads.
type ApartmentStore interface {
	Find(ctx context.Context, spec *model.FilterSpec, limit int) ([]model.Apartment, error)
	FindSorted(ctx context.Context, spec *model.FilterSpec, field string, descending bool, limit int) ([]model.Apartment, error)
	DistinctLocations(ctx context.Context) ([]string, error)
}

// VectorIndex is the nearest-neighbor service for semantic search. Neighbors
// come back in ascending distance order.
type VectorIndex interface {
	NearestNeighbors(ctx context.Context, embedding []float32, k int) ([]model.Neighbor, error)
}

// ChatService answers natural-language apartment queries by classifying intent
// and dispatching to the matching retrieval strategy.
type ChatService struct {
	store            ApartmentStore
	index            VectorIndex
	embedder         Embedder
	topK             int
	filterMaxResults int
}

// NewChatService creates a new chat service
func NewChatService(store ApartmentStore, index VectorIndex, embedder Embedder, topK, filterMaxResults int) *ChatService {
	return &ChatService{
		store:            store,
		index:            index,
		embedder:         embedder,
		topK:             topK,
		filterMaxResults: filterMaxResults,
	}
}

// Answer runs the full pipeline for one query: resolve locations, classify,
// retrieve, format. Store or index failures propagate to the caller; an empty
// result set is not an error.
func (s *ChatService) Answer(ctx context.Context, query string) (*model.ChatResponse, error) {
	// The store may change between requests, so the location set is fetched fresh
	locations, err := s.store.DistinctLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load known locations: %w", err)
	}

	intent := ClassifyIntent(query, locations)

	// Greetings short-circuit before any retrieval
	if intent == model.IntentGreeting {
		return &model.ChatResponse{
			Status:  model.StatusGreeting,
			Message: GreetingMessage,
			Results: []model.ChatItem{},
		}, nil
	}

	results, err := s.retrieve(ctx, intent, query, locations)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &model.ChatResponse{
			Status:  model.StatusNoResults,
			Message: NoResultsMessage,
			Results: []model.ChatItem{},
		}, nil
	}

	location := ResolveLocation(query, locations)
	return &model.ChatResponse{
		Status:  model.StatusSuccess,
		Query:   query,
		Results: FormatResults(intent, results, location),
	}, nil
}

// retrieve dispatches the intent to its retrieval strategy
func (s *ChatService) retrieve(ctx context.Context, intent model.Intent, query string, locations []string) ([]model.RetrievalResult, error) {
	switch {
	case intent.IsSort():
		return s.sortedSearch(ctx, intent, query, locations)
	case intent == model.IntentFilterSearch:
		return s.filterSearch(ctx, query, locations)
	default:
		return s.semanticSearch(ctx, query)
	}
}

// sortedSearch lists apartments ordered by the intent's field, optionally
// scoped to the resolved location
func (s *ChatService) sortedSearch(ctx context.Context, intent model.Intent, query string, locations []string) ([]model.RetrievalResult, error) {
	spec := &model.FilterSpec{}
	if intent.LocationQualified() {
		if location := ResolveLocation(query, locations); location != "" {
			spec.Location = &location
		}
	}

	apartments, err := s.store.FindSorted(ctx, spec, intent.SortField(), intent.Descending(), s.topK)
	if err != nil {
		return nil, err
	}
	return plainResults(apartments), nil
}

// filterSearch queries the store with all extracted constraints. Results are
// capped rather than unbounded; an empty spec lists everything up to the cap.
func (s *ChatService) filterSearch(ctx context.Context, query string, locations []string) ([]model.RetrievalResult, error) {
	spec := ExtractFilters(query, locations)
	apartments, err := s.store.Find(ctx, spec, s.filterMaxResults)
	if err != nil {
		return nil, err
	}
	return plainResults(apartments), nil
}

// semanticSearch embeds the query, over-fetches neighbors and deduplicates
func (s *ChatService) semanticSearch(ctx context.Context, query string) ([]model.RetrievalResult, error) {
	embeddings, err := s.embedder.CreateEmbeddings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	neighbors, err := s.index.NearestNeighbors(ctx, embeddings[0], s.topK*overFetchFactor)
	if err != nil {
		return nil, err
	}

	return DeduplicateNeighbors(neighbors, s.topK), nil
}

func plainResults(apartments []model.Apartment) []model.RetrievalResult {
	results := make([]model.RetrievalResult, 0, len(apartments))
	for _, a := range apartments {
		results = append(results, model.RetrievalResult{Apartment: a})
	}
	return results
}
