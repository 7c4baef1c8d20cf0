package service

import (
	"context"
	"fmt"

	"aptchat/internal/model"

	"github.com/sirupsen/logrus"
)

// IndexerStore is the slice of the store the index builder needs
type IndexerStore interface {
	Find(ctx context.Context, spec *model.FilterSpec, limit int) ([]model.Apartment, error)
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingUpdate) (int, []string)
}

// Indexer populates the vector index from the full store contents. It runs at
// startup and on explicit rebuild requests, outside the live query path.
type Indexer struct {
	store    IndexerStore
	embedder Embedder
	log      *logrus.Logger
}

// NewIndexer creates a new index builder
func NewIndexer(store IndexerStore, embedder Embedder, log *logrus.Logger) *Indexer {
	return &Indexer{
		store:    store,
		embedder: embedder,
		log:      log,
	}
}

// BuildIndex embeds every apartment's text blob and writes the vectors back to
// the store. Returns the number of apartments indexed.
func (ix *Indexer) BuildIndex(ctx context.Context) (int, error) {
	if !ix.embedder.IsEnabled() {
		return 0, fmt.Errorf("embedding API is not enabled")
	}

	apartments, err := ix.store.Find(ctx, nil, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to load apartments: %w", err)
	}
	if len(apartments) == 0 {
		return 0, nil
	}

	texts := make([]string, len(apartments))
	for i := range apartments {
		texts[i] = apartments[i].EmbeddingText()
	}

	embeddings, err := ix.embedder.CreateEmbeddings(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed apartments: %w", err)
	}
	if len(embeddings) != len(apartments) {
		return 0, fmt.Errorf("embedding count mismatch: %d apartments, %d embeddings", len(apartments), len(embeddings))
	}

	items := make([]model.EmbeddingUpdate, len(apartments))
	for i, a := range apartments {
		items[i] = model.EmbeddingUpdate{
			ApartmentID: a.ID,
			Embedding:   embeddings[i],
		}
	}

	success, errs := ix.store.BatchUpdateEmbeddings(ctx, items)
	for _, e := range errs {
		ix.log.WithField("error", e).Warn("embedding update failed")
	}
	if success == 0 && len(errs) > 0 {
		return 0, fmt.Errorf("failed to store embeddings: %s", errs[0])
	}

	ix.log.WithFields(logrus.Fields{
		"indexed": success,
		"failed":  len(apartments) - success,
	}).Info("vector index built")

	return success, nil
}
