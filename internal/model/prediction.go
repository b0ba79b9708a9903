package model

// PredictRequest is the JSON body of POST /api/v1/predict
type PredictRequest struct {
	ListingInput

	// Amenities holds free-form amenity labels ("A/C", "fridge") that are
	// merged into the boolean flags.
	Amenities       []string `json:"amenities,omitempty"`
	IncludeFeatures bool     `json:"include_features,omitempty"`
}

// PredictResponse is the result of a single price estimate
type PredictResponse struct {
	PredictionID      string              `json:"prediction_id"`
	LogPrice          float64             `json:"log_price"`
	Price             float64             `json:"price"`
	FormattedPrice    string              `json:"formatted_price"`
	FeatureCount      int                 `json:"feature_count"`
	Note              string              `json:"note"`
	ClampedFields     []string            `json:"clamped_fields,omitempty"`
	IgnoredAmenities  []string            `json:"ignored_amenities,omitempty"`
	NeighbourhoodUsed bool                `json:"neighbourhood_used"`
	Features          map[string]float64  `json:"features,omitempty"`
	Comparables       []ComparableListing `json:"comparables,omitempty"`
	Took              int64               `json:"took_ms"` // Response time in milliseconds
}

// SchemaResponse lists the ordered feature names the model expects
type SchemaResponse struct {
	Features []string `json:"features"`
	Count    int      `json:"count"`
}

// FieldBound is the declared range of one numeric form field
type FieldBound struct {
	Field   string  `json:"field"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// AmenityOption is one amenity checkbox
type AmenityOption struct {
	Column string `json:"column"`
	Label  string `json:"label"`
}

// OptionsResponse describes every form widget
type OptionsResponse struct {
	RoomTypes      []string        `json:"room_types"`
	Neighbourhoods []string        `json:"neighbourhoods"`
	Amenities      []AmenityOption `json:"amenities"`
	Bounds         []FieldBound    `json:"bounds"`
}

// ModelInfo describes the loaded price model
type ModelInfo struct {
	ArtifactPath string   `json:"artifact_path"`
	Trees        int      `json:"trees"`
	BaseScore    float64  `json:"base_score"`
	FeatureCount int      `json:"feature_count"`
	Features     []string `json:"features"`
	Description  string   `json:"description"`
}
