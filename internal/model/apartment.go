package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
)

// Apartment represents a single apartment listing. Records are read-only once
// loaded from the store.
type Apartment struct {
	ID        int64           `json:"-" db:"id"`
	Bedrooms  int             `json:"bedrooms" db:"bedrooms"`
	Location  string          `json:"location" db:"location"`
	Price     float64         `json:"price" db:"price"`
	AreaSqft  float64         `json:"area_sqft" db:"area_sqft"`
	Amenities StringArray     `json:"amenities" db:"amenities"`
	Embedding pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt time.Time       `json:"-" db:"created_at"`
	UpdatedAt time.Time       `json:"-" db:"updated_at"`
}

// DedupKey identifies near-duplicate listings: two records are duplicates iff
// all four fields match.
type DedupKey struct {
	Bedrooms int
	Location string
	Price    float64
	AreaSqft float64
}

// Key returns the deduplication key for this apartment
func (a *Apartment) Key() DedupKey {
	return DedupKey{
		Bedrooms: a.Bedrooms,
		Location: a.Location,
		Price:    a.Price,
		AreaSqft: a.AreaSqft,
	}
}

// EmbeddingText renders the apartment as the natural-language sentence used to
// populate the vector index.
func (a *Apartment) EmbeddingText() string {
	return fmt.Sprintf(
		"This is a %d BHK apartment in %s. It spans %g sqft and is priced at ₹%g. Key amenities include: %s.",
		a.Bedrooms, a.Location, a.AreaSqft, a.Price, strings.Join(a.Amenities, ", "),
	)
}

// Neighbor is a nearest-neighbor hit from the vector index. Distance is the
// embedding distance, lower means closer.
type Neighbor struct {
	Apartment
	Distance float64 `db:"distance"`
}

// RetrievalResult is an apartment carried through retrieval. Score is set only
// on the semantic path (embedding distance, rounded to 4 decimal places).
type RetrievalResult struct {
	Apartment
	Score *float64
}

// EmbeddingUpdate pairs an apartment with a freshly computed embedding
type EmbeddingUpdate struct {
	ApartmentID int64
	Embedding   []float32
}

// StringArray represents a JSONB string array column
type StringArray []string

// Value implements driver.Valuer interface
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), s)
	}
	return json.Unmarshal(bytes, s)
}
