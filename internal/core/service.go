package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"geosight/internal/domain/model"
	"geosight/internal/pkg/metrics"
)

// Geocoder resolves a place name to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (model.Coordinate, error)
}

// POISource executes a bounded Overpass query and returns raw records.
type POISource interface {
	Fetch(ctx context.Context, ql string) ([]model.RawElement, error)
}

// WeatherProvider returns pass-through current conditions for a place.
type WeatherProvider interface {
	Current(ctx context.Context, place string) (*model.WeatherConditions, error)
}

// ReportArchive persists finished reports.
type ReportArchive interface {
	SaveReport(ctx context.Context, report *model.AnalysisReport) error
}

// AnalysisService runs the acquisition and analysis pipeline for one
// request: geocode, bounded POI query, normalization, statistics,
// spatial patterns, report assembly. The pipeline is synchronous; the
// core does no retries, that policy belongs to the caller.
type AnalysisService struct {
	geocoder Geocoder
	source   POISource
	weather  WeatherProvider
	archive  ReportArchive

	stats   StatisticsEngine
	spatial SpatialPatternEngine

	now func() time.Time
}

// NewAnalysisService wires the pipeline. weather and archive may be nil,
// in which case those steps are skipped.
func NewAnalysisService(geocoder Geocoder, source POISource, weather WeatherProvider, archive ReportArchive) *AnalysisService {
	return &AnalysisService{
		geocoder: geocoder,
		source:   source,
		weather:  weather,
		archive:  archive,
		now:      time.Now,
	}
}

// Analyze produces an AnalysisReport for the named place. attribute
// names the numeric attribute to analyze, normally "population".
func (s *AnalysisService) Analyze(ctx context.Context, place string, radiusKm float64, attribute string) (*model.AnalysisReport, error) {
	if place == "" {
		return nil, fmt.Errorf("%w: place name is required", model.ErrInvalidParameter)
	}

	center, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", place, err)
	}

	query, err := BuildPOIQuery(center, radiusKm)
	if err != nil {
		return nil, err
	}

	start := s.now()
	elements, err := s.source.Fetch(ctx, query.QL)
	if err != nil {
		return nil, fmt.Errorf("fetch POIs around %q: %w", place, err)
	}
	metrics.AcquisitionDuration.Observe(time.Since(start).Seconds())
	metrics.FeaturesFetched.Add(float64(len(elements)))

	dataset, dropped, err := NormalizeFeatures(elements)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		slog.Debug("dropped records without resolvable geometry",
			"place", place, "dropped", dropped, "kept", dataset.Size())
	}

	statistics, err := s.stats.Analyze(dataset, attribute)
	if err != nil {
		return nil, err
	}

	pattern, err := s.spatial.Analyze(ctx, dataset)
	if err != nil {
		return nil, err
	}

	// Weather is best effort; the report is valid without it.
	var conditions *model.WeatherConditions
	if s.weather != nil {
		conditions, err = s.weather.Current(ctx, place)
		if err != nil {
			slog.Warn("weather lookup failed", "place", place, "error", err)
			conditions = nil
		}
	}

	report, err := BuildReport(ReportInput{
		Location:   place,
		Dataset:    dataset,
		Statistics: statistics,
		Spatial:    pattern,
		Weather:    conditions,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.SaveReport(ctx, report); err != nil {
			slog.Warn("report archive failed", "place", place, "error", err)
		}
	}

	return report, nil
}

// Locate exposes plain geocoding for callers that only need a coordinate.
func (s *AnalysisService) Locate(ctx context.Context, place string) (model.Coordinate, error) {
	if place == "" {
		return model.Coordinate{}, fmt.Errorf("%w: place name is required", model.ErrInvalidParameter)
	}
	return s.geocoder.Geocode(ctx, place)
}
