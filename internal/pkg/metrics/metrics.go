package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts finished analysis requests by outcome.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geosight",
		Subsystem: "analysis",
		Name:      "requests_total",
		Help:      "Total analysis requests processed",
	}, []string{"status"})

	// AcquisitionDuration tracks how long the POI source takes to answer.
	AcquisitionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "geosight",
		Subsystem: "acquisition",
		Name:      "duration_seconds",
		Help:      "Duration of POI source queries",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25},
	})

	// FeaturesFetched counts raw records returned by the POI source.
	FeaturesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geosight",
		Subsystem: "acquisition",
		Name:      "features_fetched_total",
		Help:      "Total raw node/way records fetched",
	})
)
