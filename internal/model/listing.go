package model

// Room types the price model was trained on
const (
	RoomTypeEntireHome  = "Entire home/apt"
	RoomTypePrivateRoom = "Private room"
)

// NeighbourhoodNone is the form's "nothing selected" option
const NeighbourhoodNone = "None"

// RoomTypes lists the selectable room types in display order
var RoomTypes = []string{RoomTypeEntireHome, RoomTypePrivateRoom}

// Neighbourhoods lists the selectable neighbourhoods in display order.
// The first entry means no neighbourhood column is set.
var Neighbourhoods = []string{
	NeighbourhoodNone, "Midtown", "Murray Hill", "Upper East Side", "Hell's Kitchen", "East Village",
	"Chelsea", "West Village", "Williamsburg", "Upper West Side", "Greenwich Village",
	"Long Island City", "SoHo", "Longwood", "Crown Heights", "Lower East Side",
	"Jamaica", "Fieldston", "Tribeca", "Bushwick", "East New York",
}

// ListingInput is everything the form collects about a listing.
// Counts are float64 so that the JSON API and the HTML form bind the same way;
// the form restricts them to whole numbers.
type ListingInput struct {
	RoomType      string `json:"room_type" form:"room_type" binding:"required,oneof='Entire home/apt' 'Private room'"`
	Neighbourhood string `json:"neighbourhood" form:"neighbourhood"`

	Accommodates float64 `json:"accommodates" form:"accommodates"`
	Bedrooms     float64 `json:"bedrooms" form:"bedrooms"`
	Beds         float64 `json:"beds" form:"beds"`

	MinimumNights  float64 `json:"minimum_nights" form:"minimum_nights"`
	Availability30 float64 `json:"availability_30" form:"availability_30"`

	NumberOfReviews   float64 `json:"number_of_reviews" form:"number_of_reviews"`
	ReviewsPerMonth   float64 `json:"reviews_per_month" form:"reviews_per_month"`
	ReviewSpanDays    float64 `json:"review_span_days" form:"review_span_days"`
	RecencyLastReview float64 `json:"recency_last_review" form:"recency_last_review"`

	HostEntireHomes  float64 `json:"host_entire_homes" form:"host_entire_homes"`
	HostPrivateRooms float64 `json:"host_private_rooms" form:"host_private_rooms"`

	Dishwasher      bool `json:"dishwasher" form:"dishwasher"`
	Washer          bool `json:"washer" form:"washer"`
	Gym             bool `json:"gym" form:"gym"`
	HairDryer       bool `json:"hair_dryer" form:"hair_dryer"`
	IndoorFireplace bool `json:"indoor_fireplace" form:"indoor_fireplace"`
	AirConditioning bool `json:"air_conditioning" form:"air_conditioning"`
	Microwave       bool `json:"microwave" form:"microwave"`
	Pool            bool `json:"pool" form:"pool"`
	HotWater        bool `json:"hot_water" form:"hot_water"`
	Refrigerator    bool `json:"refrigerator" form:"refrigerator"`
	CoffeeMaker     bool `json:"coffee_maker" form:"coffee_maker"`

	InstantBookable bool `json:"instant_bookable" form:"instant_bookable"`
}

// DefaultListingInput returns the values the form is pre-filled with
func DefaultListingInput() ListingInput {
	return ListingInput{
		RoomType:          RoomTypeEntireHome,
		Neighbourhood:     NeighbourhoodNone,
		Accommodates:      2,
		Bedrooms:          1,
		Beds:              1,
		MinimumNights:     1,
		Availability30:    15,
		NumberOfReviews:   10,
		ReviewsPerMonth:   1.0,
		ReviewSpanDays:    365,
		RecencyLastReview: 30,
		HostEntireHomes:   1,
		HostPrivateRooms:  0,
	}
}

// SetAmenity checks the amenity flag stored under the given feature column.
// It returns false when the column is not an amenity.
func (in *ListingInput) SetAmenity(column string) bool {
	switch column {
	case "dishwasher":
		in.Dishwasher = true
	case "washer":
		in.Washer = true
	case "gym":
		in.Gym = true
	case "hair_dryer":
		in.HairDryer = true
	case "indoor_fireplace":
		in.IndoorFireplace = true
	case "air_conditioning":
		in.AirConditioning = true
	case "microwave":
		in.Microwave = true
	case "pool":
		in.Pool = true
	case "hot_water":
		in.HotWater = true
	case "refrigerator":
		in.Refrigerator = true
	case "coffee_maker":
		in.CoffeeMaker = true
	default:
		return false
	}
	return true
}
