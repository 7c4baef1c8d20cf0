package service

import (
	"math"

	"aptchat/internal/model"
)

// overFetchFactor compensates for near-identical listings colliding in the
// index: twice as many neighbors are requested as results wanted.
const overFetchFactor = 2

// DeduplicateNeighbors turns raw nearest-neighbor hits into a deduplicated,
// capped result list. Neighbors are consumed in the index's distance order
// (nearest first); a hit whose (bedrooms, location, price, area_sqft) key was
// already emitted is skipped. Scores are distances rounded to 4 decimal places.
func DeduplicateNeighbors(neighbors []model.Neighbor, topK int) []model.RetrievalResult {
	seen := make(map[model.DedupKey]struct{}, topK)
	results := make([]model.RetrievalResult, 0, topK)

	for _, n := range neighbors {
		key := n.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		score := roundTo(n.Distance, 4)
		results = append(results, model.RetrievalResult{
			Apartment: n.Apartment,
			Score:     &score,
		})

		if len(results) >= topK {
			break
		}
	}

	return results
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
