package service

import (
	"math"
	"sort"

	"listingprice/internal/model"
)

// Match reason constants
const (
	ReasonSameRoomType      = "Same room type"
	ReasonSameNeighbourhood = "Same neighbourhood"
	ReasonSimilarCapacity   = "Similar capacity"
	ReasonSameBedrooms      = "Same number of bedrooms"
	ReasonPriceClose        = "Price close to estimate"
	ReasonVeryClose         = "Very similar features"
	ReasonGeneralMatch      = "General match"
)

// Ranker scores comparable listings against the listing being priced
type Ranker struct {
	weightSimilarity float64
	weightPrice      float64
}

// NewRanker creates a new ranker with specified weights
func NewRanker(weightSimilarity, weightPrice float64) *Ranker {
	return &Ranker{
		weightSimilarity: weightSimilarity,
		weightPrice:      weightPrice,
	}
}

// RankComparables scores and sorts reference listings, best first
func (r *Ranker) RankComparables(
	listings []model.ReferenceListing,
	in model.ListingInput,
	estimate float64,
) []model.ComparableListing {
	results := make([]model.ComparableListing, 0, len(listings))

	for _, listing := range listings {
		similarity := r.calculateSimilarityScore(listing.Distance)
		priceScore := r.calculatePriceScore(listing.Price, estimate)

		results = append(results, model.ComparableListing{
			ReferenceListing: listing,
			Score:            (r.weightSimilarity * similarity) + (r.weightPrice * priceScore),
			MatchedReasons:   r.generateMatchedReasons(listing, in, similarity, priceScore),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// calculateSimilarityScore maps an L2 distance onto (0, 1]
func (r *Ranker) calculateSimilarityScore(distance float64) float64 {
	if distance < 0 || math.IsNaN(distance) {
		return 0
	}
	return 1.0 / (1.0 + distance)
}

// calculatePriceScore is 1 when the comparable charges exactly the estimate
// and falls off with the relative difference
func (r *Ranker) calculatePriceScore(price *float64, estimate float64) float64 {
	if price == nil || estimate <= 0 {
		return 0.5 // Neutral score if no price
	}
	diff := math.Abs(*price-estimate) / estimate
	score := 1.0 - diff
	if score < 0 {
		return 0
	}
	return score
}

func (r *Ranker) generateMatchedReasons(
	listing model.ReferenceListing,
	in model.ListingInput,
	similarity float64,
	priceScore float64,
) []string {
	reasons := []string{}

	if listing.RoomType == in.RoomType {
		reasons = append(reasons, ReasonSameRoomType)
	}
	if listing.Neighbourhood != nil && *listing.Neighbourhood == in.Neighbourhood {
		reasons = append(reasons, ReasonSameNeighbourhood)
	}
	if listing.Accommodates != nil && math.Abs(float64(*listing.Accommodates)-in.Accommodates) <= 1 {
		reasons = append(reasons, ReasonSimilarCapacity)
	}
	if listing.Bedrooms != nil && float64(*listing.Bedrooms) == in.Bedrooms {
		reasons = append(reasons, ReasonSameBedrooms)
	}
	if listing.Price != nil && priceScore >= 0.8 {
		reasons = append(reasons, ReasonPriceClose)
	}
	if similarity >= 0.8 {
		reasons = append(reasons, ReasonVeryClose)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonGeneralMatch)
	}
	return reasons
}
