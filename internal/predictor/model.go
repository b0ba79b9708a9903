// Package predictor loads the pre-trained nightly price model and evaluates
// it on feature rows.
package predictor

import (
	"errors"

	"listingprice/internal/features"
)

var (
	// ErrArtifact is returned when the model file cannot be read or decoded
	ErrArtifact = errors.New("invalid model artifact")
	// ErrSchemaMismatch is returned when a row's columns differ from the model's
	ErrSchemaMismatch = errors.New("feature schema mismatch")
	// ErrNonFinite is returned when the model produces NaN or an infinity
	ErrNonFinite = errors.New("model produced a non-finite value")
)

// Model is a regression model fit on log nightly price
type Model interface {
	// Predict returns the log-scale estimate for one row
	Predict(v *features.Vector) (float64, error)
	// FeatureNames returns the columns the model was fit on
	FeatureNames() []string
}
