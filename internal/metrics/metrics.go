package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_predictions_total",
			Help: "Total number of price predictions by outcome",
		},
		[]string{"outcome"},
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_prediction_duration_seconds",
			Help:    "Time spent building the feature row and evaluating the model",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	PredictedPrice = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_prediction_value",
			Help:    "Distribution of predicted nightly prices",
			Buckets: []float64{25, 50, 75, 100, 150, 200, 300, 500, 1000},
		},
	)

	ClampedFieldsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_input_clamped_total",
			Help: "Numeric inputs pulled into their declared range, by field",
		},
		[]string{"field"},
	)

	ComparableLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_comparable_lookups_total",
			Help: "Comparable listing lookups by outcome",
		},
		[]string{"outcome"},
	)
)
