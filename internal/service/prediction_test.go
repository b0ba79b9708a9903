package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"listingprice/internal/features"
	"listingprice/internal/model"
	"listingprice/internal/predictor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubModel struct {
	names   []string
	predict func(v *features.Vector) (float64, error)
	last    *features.Vector
}

func (m *stubModel) Predict(v *features.Vector) (float64, error) {
	m.last = v
	return m.predict(v)
}

func (m *stubModel) FeatureNames() []string { return m.names }

func constantModel(logPrice float64) *stubModel {
	return &stubModel{
		names:   features.DefaultFeatureNames,
		predict: func(*features.Vector) (float64, error) { return logPrice, nil },
	}
}

type stubFinder struct {
	listings []model.ReferenceListing
	err      error
	calls    int
	roomType string
}

func (f *stubFinder) FindNearest(_ context.Context, _ []float32, roomType string, _ int) ([]model.ReferenceListing, error) {
	f.calls++
	f.roomType = roomType
	return f.listings, f.err
}

func newRequest() *model.PredictRequest {
	return &model.PredictRequest{ListingInput: model.DefaultListingInput()}
}

func TestNewPredictionService_RejectsMismatchedModel(t *testing.T) {
	tests := []struct {
		name  string
		names []string
	}{
		{name: "missing column", names: features.DefaultFeatureNames[1:]},
		{name: "extra column", names: append(append([]string{}, features.DefaultFeatureNames...), "square_feet")},
		{name: "duplicate column", names: append(append([]string{}, features.DefaultFeatureNames...), features.DefaultFeatureNames[0])},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &stubModel{names: tt.names}
			_, err := NewPredictionService(m, features.DefaultSchema(), zap.NewNop())
			assert.ErrorIs(t, err, predictor.ErrSchemaMismatch)
		})
	}

	_, err := NewPredictionService(nil, features.DefaultSchema(), nil)
	assert.Error(t, err)
}

func TestPredict_Defaults(t *testing.T) {
	svc, err := NewPredictionService(constantModel(math.Log(150)), features.DefaultSchema(), zap.NewNop())
	require.NoError(t, err)

	resp, err := svc.Predict(context.Background(), newRequest())
	require.NoError(t, err)

	assert.InDelta(t, 150.0, resp.Price, 1e-9)
	assert.Equal(t, "$150.00", resp.FormattedPrice)
	assert.Equal(t, len(features.DefaultFeatureNames), resp.FeatureCount)
	assert.Equal(t, FeatureNote(len(features.DefaultFeatureNames)), resp.Note)
	assert.NotEmpty(t, resp.PredictionID)
	assert.Empty(t, resp.ClampedFields)
	assert.False(t, resp.NeighbourhoodUsed)
	assert.Nil(t, resp.Features)
	assert.Nil(t, resp.Comparables)
}

func TestPredict_ModelSeesOrderedRow(t *testing.T) {
	m := constantModel(math.Log(80))
	svc, err := NewPredictionService(m, features.DefaultSchema(), zap.NewNop())
	require.NoError(t, err)

	req := newRequest()
	req.RoomType = model.RoomTypePrivateRoom
	req.Neighbourhood = "Chelsea"
	req.IncludeFeatures = true

	resp, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, m.last)

	assert.Equal(t, features.DefaultFeatureNames, m.last.Names())
	v, _ := m.last.Get("room_type_Private room")
	assert.Equal(t, 1.0, v)
	v, _ = m.last.Get(features.NeighbourhoodColumn("Chelsea"))
	assert.Equal(t, 1.0, v)
	assert.True(t, resp.NeighbourhoodUsed)
	assert.Len(t, resp.Features, len(features.DefaultFeatureNames))
}

func TestPredict_ClampsOutOfRangeInput(t *testing.T) {
	m := constantModel(math.Log(100))
	svc, err := NewPredictionService(m, features.DefaultSchema(), zap.NewNop())
	require.NoError(t, err)

	req := newRequest()
	req.Accommodates = 50
	req.Bedrooms = -3

	resp, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"accommodates", "bedrooms"}, resp.ClampedFields)
	v, _ := m.last.Get("accommodates_log")
	assert.InDelta(t, math.Log(20), v, 1e-12)
	v, _ = m.last.Get("bedrooms_log")
	assert.InDelta(t, 0.0, v, 1e-12)

	// the caller's request is left alone
	assert.Equal(t, 50.0, req.Accommodates)
}

func TestPredict_AmenityLabels(t *testing.T) {
	m := constantModel(math.Log(100))
	svc, err := NewPredictionService(m, features.DefaultSchema(), zap.NewNop())
	require.NoError(t, err)

	req := newRequest()
	req.Amenities = []string{"A/C", "Mini fridge", "Helipad", "Hot water kettle", "Shared laundry"}

	resp, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"Helipad", "Hot water kettle", "Shared laundry"}, resp.IgnoredAmenities)
	v, _ := m.last.Get("air_conditioning")
	assert.Equal(t, 1.0, v)
	v, _ = m.last.Get("refrigerator")
	assert.Equal(t, 1.0, v)
	v, _ = m.last.Get("pool")
	assert.Equal(t, 0.0, v)
	v, _ = m.last.Get("hot_water")
	assert.Equal(t, 0.0, v)
	v, _ = m.last.Get("washer")
	assert.Equal(t, 0.0, v)
}

func TestPredict_ModelFailures(t *testing.T) {
	tests := []struct {
		name    string
		predict func(*features.Vector) (float64, error)
		target  error
	}{
		{
			name:    "model error",
			predict: func(*features.Vector) (float64, error) { return 0, predictor.ErrNonFinite },
			target:  predictor.ErrNonFinite,
		},
		{
			name:    "model panic",
			predict: func(*features.Vector) (float64, error) { panic("index out of range") },
			target:  ErrPredictionFailed,
		},
		{
			name:    "price overflows",
			predict: func(*features.Vector) (float64, error) { return 1000, nil },
			target:  predictor.ErrNonFinite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &stubModel{names: features.DefaultFeatureNames, predict: tt.predict}
			svc, err := NewPredictionService(m, features.DefaultSchema(), zap.NewNop())
			require.NoError(t, err)

			resp, err := svc.Predict(context.Background(), newRequest())
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrPredictionFailed)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestPredict_Comparables(t *testing.T) {
	price := 100.0
	finder := &stubFinder{listings: []model.ReferenceListing{
		{ID: 1, RoomType: model.RoomTypeEntireHome, Distance: 3},
		{ID: 2, RoomType: model.RoomTypeEntireHome, Distance: 0.1, Price: &price},
	}}
	svc, err := NewPredictionService(constantModel(math.Log(100)), features.DefaultSchema(), zap.NewNop(),
		WithComparables(finder, NewRanker(0.7, 0.3), 5))
	require.NoError(t, err)
	assert.True(t, svc.ComparablesEnabled())

	resp, err := svc.Predict(context.Background(), newRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, finder.calls)
	assert.Equal(t, model.RoomTypeEntireHome, finder.roomType)
	require.Len(t, resp.Comparables, 2)
	assert.Equal(t, int64(2), resp.Comparables[0].ID)
}

func TestPredict_ComparableFailureIsNotFatal(t *testing.T) {
	finder := &stubFinder{err: errors.New("connection refused")}
	svc, err := NewPredictionService(constantModel(math.Log(100)), features.DefaultSchema(), zap.NewNop(),
		WithComparables(finder, nil, 5), WithCurrency("€"))
	require.NoError(t, err)

	resp, err := svc.Predict(context.Background(), newRequest())
	require.NoError(t, err)
	assert.Equal(t, "€100.00", resp.FormattedPrice)
	assert.Nil(t, resp.Comparables)
}

func TestPredict_Idempotent(t *testing.T) {
	svc, err := NewPredictionService(constantModel(4.321), features.DefaultSchema(), zap.NewNop())
	require.NoError(t, err)

	req := newRequest()
	req.Amenities = []string{"pool"}
	first, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Price, second.Price)
	assert.NotEqual(t, first.PredictionID, second.PredictionID)
}

func TestSchemaOptionsAndModelInfo(t *testing.T) {
	svc, err := NewPredictionService(constantModel(0), features.DefaultSchema(), zap.NewNop())
	require.NoError(t, err)

	schema := svc.Schema()
	assert.Equal(t, features.DefaultFeatureNames, schema.Features)
	assert.Equal(t, len(features.DefaultFeatureNames), schema.Count)

	opts := svc.Options()
	assert.Equal(t, model.RoomTypes, opts.RoomTypes)
	assert.Equal(t, model.NeighbourhoodNone, opts.Neighbourhoods[0])
	assert.Len(t, opts.Amenities, len(features.Amenities))
	assert.Len(t, opts.Bounds, len(features.Bounds))

	info := svc.ModelInfo()
	assert.Equal(t, len(features.DefaultFeatureNames), info.FeatureCount)
	assert.Contains(t, info.Description, "features to predict nightly prices")
	assert.Zero(t, info.Trees)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{price: 123.456, want: "$123.46"},
		{price: 0.5, want: "$0.50"},
		{price: 1500, want: "$1500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice("$", tt.price))
		})
	}
}
