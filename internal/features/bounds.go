package features

import (
	"math"

	"listingprice/internal/model"
)

// Bound is the declared range of one numeric field
type Bound struct {
	Field   string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
	value   func(in *model.ListingInput) *float64
}

// Bounds lists every numeric form field with its range, in form order
var Bounds = []Bound{
	{"accommodates", "Number of guests", 1, 20, 2, 1, func(in *model.ListingInput) *float64 { return &in.Accommodates }},
	{"bedrooms", "Number of bedrooms", 1, 10, 1, 1, func(in *model.ListingInput) *float64 { return &in.Bedrooms }},
	{"beds", "Number of beds", 1, 15, 1, 1, func(in *model.ListingInput) *float64 { return &in.Beds }},
	{"minimum_nights", "Minimum nights", 1, 365, 1, 1, func(in *model.ListingInput) *float64 { return &in.MinimumNights }},
	{"availability_30", "Availability in next 30 days", 0, 30, 15, 1, func(in *model.ListingInput) *float64 { return &in.Availability30 }},
	{"number_of_reviews", "Total number of reviews", 0, 1000, 10, 1, func(in *model.ListingInput) *float64 { return &in.NumberOfReviews }},
	{"reviews_per_month", "Reviews per month", 0, 20, 1, 0.01, func(in *model.ListingInput) *float64 { return &in.ReviewsPerMonth }},
	{"review_span_days", "Days since first review", 0, 5000, 365, 1, func(in *model.ListingInput) *float64 { return &in.ReviewSpanDays }},
	{"recency_last_review", "Days since last review", 0, 1000, 30, 1, func(in *model.ListingInput) *float64 { return &in.RecencyLastReview }},
	{"host_entire_homes", "Host's total entire homes", 0, 500, 1, 1, func(in *model.ListingInput) *float64 { return &in.HostEntireHomes }},
	{"host_private_rooms", "Host's total private rooms", 0, 500, 0, 1, func(in *model.ListingInput) *float64 { return &in.HostPrivateRooms }},
}

// Value reads the field b describes from in
func (b Bound) Value(in *model.ListingInput) float64 {
	return *b.value(in)
}

// Clamp pulls every numeric field of in into its declared range and returns
// the names of the fields it changed. NaN is replaced by the field default.
func Clamp(in *model.ListingInput) []string {
	var changed []string
	for _, b := range Bounds {
		p := b.value(in)
		orig := *p
		switch {
		case math.IsNaN(orig):
			*p = b.Default
		case orig < b.Min:
			*p = b.Min
		case orig > b.Max:
			*p = b.Max
		default:
			continue
		}
		changed = append(changed, b.Field)
	}
	return changed
}

// FieldBounds returns the bounds in their wire form
func FieldBounds() []model.FieldBound {
	out := make([]model.FieldBound, len(Bounds))
	for i, b := range Bounds {
		out[i] = model.FieldBound{
			Field:   b.Field,
			Label:   b.Label,
			Min:     b.Min,
			Max:     b.Max,
			Default: b.Default,
			Step:    b.Step,
		}
	}
	return out
}

// AmenityOptions returns the amenity checkboxes in their wire form
func AmenityOptions() []model.AmenityOption {
	out := make([]model.AmenityOption, len(Amenities))
	for i, a := range Amenities {
		out[i] = model.AmenityOption{Column: a.Column, Label: a.Label}
	}
	return out
}
