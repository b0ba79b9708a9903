package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"listingprice/internal/features"
	"listingprice/internal/metrics"
	"listingprice/internal/model"
	"listingprice/internal/predictor"
	"listingprice/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPredictionFailed wraps every failure of the model call
var ErrPredictionFailed = errors.New("prediction failed")

// ComparableFinder looks up reference listings near a feature row
type ComparableFinder interface {
	FindNearest(ctx context.Context, features []float32, roomType string, limit int) ([]model.ReferenceListing, error)
}

// PredictionService turns listing input into a nightly price estimate
type PredictionService struct {
	model    predictor.Model
	schema   *features.Schema
	log      *zap.Logger
	currency string

	comparables     ComparableFinder
	ranker          *Ranker
	comparableLimit int
}

// Option configures a PredictionService
type Option func(*PredictionService)

// WithCurrency sets the symbol prefixed to formatted prices
func WithCurrency(symbol string) Option {
	return func(s *PredictionService) { s.currency = symbol }
}

// WithComparables enables the comparable listings lookup
func WithComparables(finder ComparableFinder, ranker *Ranker, limit int) Option {
	return func(s *PredictionService) {
		s.comparables = finder
		s.ranker = ranker
		s.comparableLimit = limit
	}
}

// NewPredictionService checks that m was fit on exactly the columns of schema
func NewPredictionService(m predictor.Model, schema *features.Schema, log *zap.Logger, opts ...Option) (*PredictionService, error) {
	if m == nil {
		return nil, errors.New("prediction service requires a model")
	}
	names := m.FeatureNames()
	missing, extra := schema.SameSet(names)
	if len(missing) > 0 || len(extra) > 0 || len(names) != schema.Len() {
		return nil, fmt.Errorf("%w: model features differ from schema (missing %v, extra %v)",
			predictor.ErrSchemaMismatch, missing, extra)
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &PredictionService{
		model:    m,
		schema:   schema,
		log:      log,
		currency: "$",
	}
	for _, o := range opts {
		o(s)
	}
	if s.comparables != nil && s.ranker == nil {
		s.ranker = NewRanker(0.7, 0.3)
	}
	return s, nil
}

// Predict estimates the nightly price for req. Out of range numbers are
// clamped, never rejected; any model failure is returned wrapped in
// ErrPredictionFailed.
func (s *PredictionService) Predict(ctx context.Context, req *model.PredictRequest) (*model.PredictResponse, error) {
	startTime := time.Now()

	in := req.ListingInput
	ignored := applyAmenityLabels(&in, req.Amenities)

	clamped := features.Clamp(&in)
	for _, field := range clamped {
		metrics.ClampedFieldsTotal.WithLabelValues(field).Inc()
	}

	vec := features.Build(in, s.schema)

	logPrice, err := s.evaluate(vec)
	metrics.PredictionDuration.Observe(time.Since(startTime).Seconds())
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		s.log.Warn("price prediction failed",
			zap.Error(err),
			zap.String("room_type", in.RoomType),
			zap.String("neighbourhood", in.Neighbourhood),
		)
		return nil, err
	}

	price := math.Exp(logPrice)
	if math.IsInf(price, 0) || math.IsNaN(price) {
		metrics.PredictionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w: exp(%g)", ErrPredictionFailed, predictor.ErrNonFinite, logPrice)
	}
	metrics.PredictionsTotal.WithLabelValues("success").Inc()
	metrics.PredictedPrice.Observe(price)

	resp := &model.PredictResponse{
		PredictionID:      uuid.NewString(),
		LogPrice:          logPrice,
		Price:             price,
		FormattedPrice:    FormatPrice(s.currency, price),
		FeatureCount:      s.schema.Len(),
		Note:              FeatureNote(s.schema.Len()),
		ClampedFields:     clamped,
		IgnoredAmenities:  ignored,
		NeighbourhoodUsed: features.NeighbourhoodUsed(in, s.schema),
	}
	if req.IncludeFeatures {
		resp.Features = vec.Map()
	}
	if s.comparables != nil {
		resp.Comparables = s.findComparables(ctx, vec, in, price)
	}
	resp.Took = time.Since(startTime).Milliseconds()

	s.log.Debug("price predicted",
		zap.String("prediction_id", resp.PredictionID),
		zap.Float64("price", price),
		zap.Strings("clamped", clamped),
		zap.Int64("took_ms", resp.Took),
	)

	return resp, nil
}

// evaluate calls the model; a panic comes back as ErrPredictionFailed
func (s *PredictionService) evaluate(vec *features.Vector) (logPrice float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("model panicked", zap.Any("panic", r))
			err = fmt.Errorf("%w: model panicked: %v", ErrPredictionFailed, r)
		}
	}()

	logPrice, err = s.model.Predict(vec)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}
	return logPrice, nil
}

func (s *PredictionService) findComparables(ctx context.Context, vec *features.Vector, in model.ListingInput, price float64) []model.ComparableListing {
	listings, err := s.comparables.FindNearest(ctx, vec.Float32s(), in.RoomType, s.comparableLimit)
	if err != nil {
		metrics.ComparableLookupsTotal.WithLabelValues("error").Inc()
		s.log.Warn("comparable lookup failed", zap.Error(err))
		return nil
	}
	metrics.ComparableLookupsTotal.WithLabelValues("success").Inc()
	return s.ranker.RankComparables(listings, in, price)
}

// applyAmenityLabels checks the amenity flag for every recognised label and
// returns the labels it could not place
func applyAmenityLabels(in *model.ListingInput, labels []string) []string {
	var ignored []string
	for _, label := range labels {
		column, ok := utils.NormalizeAmenity(label)
		if !ok || !in.SetAmenity(column) {
			ignored = append(ignored, label)
		}
	}
	return ignored
}

// Schema returns the ordered feature names
func (s *PredictionService) Schema() *model.SchemaResponse {
	return &model.SchemaResponse{Features: s.schema.Names(), Count: s.schema.Len()}
}

// Options describes the form widgets
func (s *PredictionService) Options() *model.OptionsResponse {
	return &model.OptionsResponse{
		RoomTypes:      model.RoomTypes,
		Neighbourhoods: model.Neighbourhoods,
		Amenities:      features.AmenityOptions(),
		Bounds:         features.FieldBounds(),
	}
}

// ModelInfo describes the loaded model
func (s *PredictionService) ModelInfo() *model.ModelInfo {
	info := &model.ModelInfo{
		FeatureCount: s.schema.Len(),
		Features:     s.model.FeatureNames(),
		Description: fmt.Sprintf("This model uses %d features to predict nightly prices. "+
			"Features include room type, location, amenities, host information, and review metrics.", s.schema.Len()),
	}
	if x, ok := s.model.(*predictor.XGBoost); ok {
		info.ArtifactPath = x.Source()
		info.Trees = x.Trees()
		info.BaseScore = x.BaseScore()
	}
	return info
}

// ComparablesEnabled reports whether estimates come with comparable listings
func (s *PredictionService) ComparablesEnabled() bool {
	return s.comparables != nil
}

// FormatPrice renders a price with two decimals, e.g. "$123.45"
func FormatPrice(currency string, price float64) string {
	return fmt.Sprintf("%s%.2f", currency, price)
}

// FeatureNote is the informational line shown under an estimate
func FeatureNote(count int) string {
	return fmt.Sprintf("Prediction based on %d features including location, amenities, and property details.", count)
}
