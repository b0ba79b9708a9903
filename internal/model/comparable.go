package model

import (
	"github.com/pgvector/pgvector-go"
)

// ReferenceListing is a row of the read-only listing_reference table.
// Features holds the listing's feature vector in schema order.
type ReferenceListing struct {
	ID            int64           `json:"id" db:"id"`
	Name          *string         `json:"name,omitempty" db:"name"`
	Neighbourhood *string         `json:"neighbourhood,omitempty" db:"neighbourhood"`
	RoomType      string          `json:"room_type" db:"room_type"`
	Accommodates  *int            `json:"accommodates,omitempty" db:"accommodates"`
	Bedrooms      *int            `json:"bedrooms,omitempty" db:"bedrooms"`
	Price         *float64        `json:"price,omitempty" db:"price"`
	URL           *string         `json:"url,omitempty" db:"url"`
	Features      pgvector.Vector `json:"-" db:"features"`
	Distance      float64         `json:"distance" db:"distance"`
}

// ComparableListing is a reference listing ranked against an estimate
type ComparableListing struct {
	ReferenceListing
	Score          float64  `json:"score"`
	MatchedReasons []string `json:"matched_reasons"`
}
