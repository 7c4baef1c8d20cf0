package model

// Chat envelope statuses
const (
	StatusSuccess   = "success"
	StatusNoResults = "no_results"
	StatusGreeting  = "greeting"
)

// Chat item types; record items carry an empty type
const (
	ItemTypeHeader    = "header"
	ItemTypeGreeting  = "greeting"
	ItemTypeNoResults = "no_results"
)

// ChatRequest represents an incoming chat query
type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}

// ChatItem is one entry of a response envelope: a header, greeting or
// no-results item (summary only), or a record item (summary plus details).
type ChatItem struct {
	Summary         string            `json:"summary"`
	Type            string            `json:"type,omitempty"`
	SimilarityScore *float64          `json:"similarity_score,omitempty"`
	Details         *ApartmentDetails `json:"details,omitempty"`
}

// ApartmentDetails mirrors the underlying apartment record unmodified
type ApartmentDetails struct {
	Bedrooms  int      `json:"bedrooms"`
	Location  string   `json:"location"`
	Price     float64  `json:"price"`
	AreaSqft  float64  `json:"area_sqft"`
	Amenities []string `json:"amenities"`
}

// ChatResponse is the top-level response envelope
type ChatResponse struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	Query   string     `json:"query,omitempty"`
	Results []ChatItem `json:"results"`
}
