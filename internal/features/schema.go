// Package features turns a listing form submission into the exact feature
// row the price model was fit on.
package features

import (
	"errors"
	"fmt"
)

// Feature column names written by the builder
const (
	EstimatedRevenueLog   = "estimated_revenue_l365d_log"
	NumberOfReviewsLTMLog = "number_of_reviews_ltm_log"
	RoomTypeEntireHome    = "room_type_Entire home/apt"
	RoomTypePrivateRoom   = "room_type_Private room"
	MinimumNightsCapped   = "minimum_nights_avg_ntm_capped"
	Availability30        = "availability_30"
	AccommodatesLog       = "accommodates_log"
	RecencyLastReview     = "recency_last_review"
	BedroomsLog           = "bedrooms_log"
	BedsLog               = "beds_log"
	HostPrivateRooms      = "calculated_host_listings_count_private_rooms"
	HostEntireHomesLog    = "calculated_host_listings_count_entire_homes_log"
	ReviewsPerMonthLog    = "reviews_per_month_log"
	ReviewSpanDays        = "review_span_days"
	NumberOfReviews       = "number_of_reviews"
	InstantBookable       = "instant_bookable_f"
	NeighbourhoodPrefix   = "neighbourhood_"
)

// ErrInvalidSchema is returned when a schema has empty or repeated names
var ErrInvalidSchema = errors.New("invalid feature schema")

// Schema is an ordered list of unique feature names
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema validates names and returns a schema preserving their order
func NewSchema(names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no feature names", ErrInvalidSchema)
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: empty name at position %d", ErrInvalidSchema, i)
		}
		if prev, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q repeated at positions %d and %d", ErrInvalidSchema, name, prev, i)
		}
		index[name] = i
	}
	out := make([]string, len(names))
	copy(out, names)
	return &Schema{names: out, index: index}, nil
}

// MustSchema is NewSchema for static name lists
func MustSchema(names []string) *Schema {
	s, err := NewSchema(names)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns a copy of the ordered feature names
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of features
func (s *Schema) Len() int { return len(s.names) }

// Has reports whether name is part of the schema
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Index returns the position of name, or -1
func (s *Schema) Index(name string) int {
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// SameSet reports whether names holds exactly the schema's features, in any order.
// missing and extra list the differences when it does not.
func (s *Schema) SameSet(names []string) (missing, extra []string) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
		if !s.Has(n) {
			extra = append(extra, n)
		}
	}
	for _, n := range s.names {
		if !seen[n] {
			missing = append(missing, n)
		}
	}
	return missing, extra
}

// DefaultFeatureNames is the column list of the shipped price model, in the
// order it was fit on.
var DefaultFeatureNames = []string{
	"estimated_revenue_l365d_log", "number_of_reviews_ltm_log", "room_type_Entire home/apt",
	"minimum_nights_avg_ntm_capped", "availability_30", "accommodates_log", "recency_last_review",
	"bedrooms_log", "calculated_host_listings_count_private_rooms", "dishwasher",
	"neighbourhood_Midtown", "calculated_host_listings_count_entire_homes_log", "reviews_per_month_log",
	"review_span_days", "number_of_reviews", "neighbourhood_Murray Hill", "beds_log", "washer",
	"gym", "neighbourhood_Upper East Side", "neighbourhood_Hell's Kitchen", "neighbourhood_East Village",
	"instant_bookable_f", "room_type_Private room", "neighbourhood_Chelsea", "neighbourhood_West Village",
	"neighbourhood_Williamsburg", "neighbourhood_Upper West Side", "hair_dryer", "indoor_fireplace",
	"air_conditioning", "microwave", "pool", "neighbourhood_Greenwich Village",
	"neighbourhood_Long Island City", "neighbourhood_SoHo", "neighbourhood_Longwood",
	"neighbourhood_Crown Heights", "neighbourhood_Lower East Side", "neighbourhood_Jamaica",
	"neighbourhood_Fieldston", "neighbourhood_Tribeca", "hot_water", "refrigerator",
	"neighbourhood_Bushwick", "neighbourhood_East New York", "coffee_maker",
}

// DefaultSchema returns the schema of the shipped price model
func DefaultSchema() *Schema {
	return MustSchema(DefaultFeatureNames)
}
