package features

import (
	"math"

	"listingprice/internal/model"
)

// RevenueStandIn is the trailing-365-day revenue every request is built
// with. The model was fit on the listing's real revenue, which the form does
// not collect, so estimates for listings earning far from 100 are biased.
const RevenueStandIn = 100.0

// Amenity is one checkbox and the feature column it drives
type Amenity struct {
	Column  string
	Label   string
	Checked func(in *model.ListingInput) bool
}

// Amenities lists the amenity checkboxes in form order
var Amenities = []Amenity{
	{"dishwasher", "Dishwasher", func(in *model.ListingInput) bool { return in.Dishwasher }},
	{"washer", "Washer", func(in *model.ListingInput) bool { return in.Washer }},
	{"gym", "Gym", func(in *model.ListingInput) bool { return in.Gym }},
	{"hair_dryer", "Hair Dryer", func(in *model.ListingInput) bool { return in.HairDryer }},
	{"indoor_fireplace", "Indoor Fireplace", func(in *model.ListingInput) bool { return in.IndoorFireplace }},
	{"air_conditioning", "Air Conditioning", func(in *model.ListingInput) bool { return in.AirConditioning }},
	{"microwave", "Microwave", func(in *model.ListingInput) bool { return in.Microwave }},
	{"pool", "Pool", func(in *model.ListingInput) bool { return in.Pool }},
	{"hot_water", "Hot Water", func(in *model.ListingInput) bool { return in.HotWater }},
	{"refrigerator", "Refrigerator", func(in *model.ListingInput) bool { return in.Refrigerator }},
	{"coffee_maker", "Coffee Maker", func(in *model.ListingInput) bool { return in.CoffeeMaker }},
}

// NeighbourhoodColumn returns the one-hot column for a neighbourhood name
func NeighbourhoodColumn(name string) string {
	return NeighbourhoodPrefix + name
}

// Build assembles the model row for in. Every schema column starts at 0 and
// only columns that exist in schema are written.
//
// accommodates, bedrooms and beds are log transformed and must be at least 1;
// a non-positive value yields -Inf or NaN rather than an error.
func Build(in model.ListingInput, schema *Schema) *Vector {
	v := NewVector(schema)

	v.Set(AccommodatesLog, math.Log(in.Accommodates))
	v.Set(BedroomsLog, math.Log(in.Bedrooms))
	v.Set(BedsLog, math.Log(in.Beds))

	v.Set(Availability30, in.Availability30)
	v.Set(MinimumNightsCapped, in.MinimumNights)
	v.Set(NumberOfReviews, in.NumberOfReviews)
	v.Set(ReviewsPerMonthLog, math.Log(in.ReviewsPerMonth+1))
	// The model's ltm column is fed from the total review count; the form
	// has no last-twelve-months figure.
	v.Set(NumberOfReviewsLTMLog, math.Log(in.NumberOfReviews+1))
	v.Set(ReviewSpanDays, in.ReviewSpanDays)
	v.Set(RecencyLastReview, in.RecencyLastReview)

	switch in.RoomType {
	case model.RoomTypeEntireHome:
		v.Set(RoomTypeEntireHome, 1)
	case model.RoomTypePrivateRoom:
		v.Set(RoomTypePrivateRoom, 1)
	}

	if in.Neighbourhood != "" && in.Neighbourhood != model.NeighbourhoodNone {
		// unknown neighbourhoods leave every neighbourhood column at 0
		v.Set(NeighbourhoodColumn(in.Neighbourhood), 1)
	}

	for _, a := range Amenities {
		v.Set(a.Column, indicator(a.Checked(&in)))
	}

	// 1 when the box is checked, despite the _f suffix.
	v.Set(InstantBookable, indicator(in.InstantBookable))
	v.Set(HostEntireHomesLog, math.Log(in.HostEntireHomes+1))
	v.Set(HostPrivateRooms, in.HostPrivateRooms)

	v.Set(EstimatedRevenueLog, math.Log(RevenueStandIn))

	return v
}

// NeighbourhoodUsed reports whether Build would set a neighbourhood column for in
func NeighbourhoodUsed(in model.ListingInput, schema *Schema) bool {
	if in.Neighbourhood == "" || in.Neighbourhood == model.NeighbourhoodNone {
		return false
	}
	return schema.Has(NeighbourhoodColumn(in.Neighbourhood))
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
