package core_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"geosight/internal/core"
	"geosight/internal/domain/model"
)

// --- Mock collaborators ---

type mockGeocoder struct {
	geocodeFn func(ctx context.Context, place string) (model.Coordinate, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, place string) (model.Coordinate, error) {
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, place)
	}
	return model.Coordinate{Lat: 40.7128, Lon: -74.0060}, nil
}

type mockPOISource struct {
	fetchFn func(ctx context.Context, ql string) ([]model.RawElement, error)
}

func (m *mockPOISource) Fetch(ctx context.Context, ql string) ([]model.RawElement, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, ql)
	}
	return nil, fmt.Errorf("%w: no data", model.ErrAcquisitionFailure)
}

type mockWeather struct {
	currentFn func(ctx context.Context, place string) (*model.WeatherConditions, error)
}

func (m *mockWeather) Current(ctx context.Context, place string) (*model.WeatherConditions, error) {
	if m.currentFn != nil {
		return m.currentFn(ctx, place)
	}
	return nil, errors.New("unavailable")
}

type mockArchive struct {
	saved []*model.AnalysisReport
	err   error
}

func (m *mockArchive) SaveReport(ctx context.Context, report *model.AnalysisReport) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, report)
	return nil
}

func threeNodesAndADrop() []model.RawElement {
	return []model.RawElement{
		rawNode(1, 40.711, -74.001, map[string]string{"amenity": "cafe", "population": "100"}),
		rawNode(2, 40.712, -74.002, map[string]string{"amenity": "bank", "population": "500"}),
		rawNode(3, 40.713, -74.003, map[string]string{"amenity": "school", "population": "900"}),
		{ID: 4, Type: "way", Tags: map[string]string{"building": "yes"}}, // unresolvable
	}
}

// --- Tests ---

func TestAnalyze_EndToEnd(t *testing.T) {
	source := &mockPOISource{
		fetchFn: func(ctx context.Context, ql string) ([]model.RawElement, error) {
			if !strings.Contains(ql, "around:1000") {
				t.Errorf("query does not carry the 1 km radius:\n%s", ql)
			}
			return threeNodesAndADrop(), nil
		},
	}

	svc := core.NewAnalysisService(&mockGeocoder{}, source, nil, nil)

	report, err := svc.Analyze(context.Background(), "New York", 1.0, "population")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.DatasetSize != 3 {
		t.Errorf("dataset size: got %d, want 3", report.DatasetSize)
	}
	if report.Statistics.Count != 3 {
		t.Errorf("count: got %d, want 3", report.Statistics.Count)
	}
	if report.Statistics.Mean != 500.0 {
		t.Errorf("mean: got %g, want 500", report.Statistics.Mean)
	}
	if report.Statistics.Median != 500.0 {
		t.Errorf("median: got %g, want 500", report.Statistics.Median)
	}
	if report.Location != "New York" {
		t.Errorf("location: got %q", report.Location)
	}
	if report.Spatial == nil {
		t.Fatal("spatial result missing")
	}
}

func TestAnalyze_InvalidRadius(t *testing.T) {
	svc := core.NewAnalysisService(&mockGeocoder{}, &mockPOISource{}, nil, nil)

	_, err := svc.Analyze(context.Background(), "New York", 0, "population")
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyze_EmptyPlace(t *testing.T) {
	svc := core.NewAnalysisService(&mockGeocoder{}, &mockPOISource{}, nil, nil)

	_, err := svc.Analyze(context.Background(), "", 1.0, "population")
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyze_GeocodeFailure(t *testing.T) {
	geocoder := &mockGeocoder{
		geocodeFn: func(ctx context.Context, place string) (model.Coordinate, error) {
			return model.Coordinate{}, fmt.Errorf("%w: place %q not found", model.ErrGeocodeFailure, place)
		},
	}
	svc := core.NewAnalysisService(geocoder, &mockPOISource{}, nil, nil)

	_, err := svc.Analyze(context.Background(), "Nowhereville", 1.0, "population")
	if !errors.Is(err, model.ErrGeocodeFailure) {
		t.Errorf("got %v, want ErrGeocodeFailure", err)
	}
}

func TestAnalyze_AcquisitionFailure(t *testing.T) {
	svc := core.NewAnalysisService(&mockGeocoder{}, &mockPOISource{}, nil, nil)

	_, err := svc.Analyze(context.Background(), "New York", 1.0, "population")
	if !errors.Is(err, model.ErrAcquisitionFailure) {
		t.Errorf("got %v, want ErrAcquisitionFailure", err)
	}
}

func TestAnalyze_WeatherIsBestEffort(t *testing.T) {
	source := &mockPOISource{
		fetchFn: func(ctx context.Context, ql string) ([]model.RawElement, error) {
			return threeNodesAndADrop(), nil
		},
	}
	svc := core.NewAnalysisService(&mockGeocoder{}, source, &mockWeather{}, nil)

	report, err := svc.Analyze(context.Background(), "New York", 1.0, "population")
	if err != nil {
		t.Fatalf("weather failure must not fail the analysis: %v", err)
	}
	if report.Weather != nil {
		t.Error("weather should be nil after a failed lookup")
	}
}

func TestAnalyze_WeatherPassThrough(t *testing.T) {
	source := &mockPOISource{
		fetchFn: func(ctx context.Context, ql string) ([]model.RawElement, error) {
			return threeNodesAndADrop(), nil
		},
	}
	weather := &mockWeather{
		currentFn: func(ctx context.Context, place string) (*model.WeatherConditions, error) {
			return &model.WeatherConditions{TemperatureC: "21", Description: "Sunny"}, nil
		},
	}
	svc := core.NewAnalysisService(&mockGeocoder{}, source, weather, nil)

	report, err := svc.Analyze(context.Background(), "New York", 1.0, "population")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Weather == nil || report.Weather.TemperatureC != "21" {
		t.Errorf("weather not passed through: %+v", report.Weather)
	}
}

func TestAnalyze_ArchivesReport(t *testing.T) {
	source := &mockPOISource{
		fetchFn: func(ctx context.Context, ql string) ([]model.RawElement, error) {
			return threeNodesAndADrop(), nil
		},
	}
	archive := &mockArchive{}
	svc := core.NewAnalysisService(&mockGeocoder{}, source, nil, archive)

	if _, err := svc.Analyze(context.Background(), "New York", 1.0, "population"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(archive.saved) != 1 {
		t.Fatalf("archived reports: got %d, want 1", len(archive.saved))
	}
}

func TestAnalyze_ArchiveFailureIsNonFatal(t *testing.T) {
	source := &mockPOISource{
		fetchFn: func(ctx context.Context, ql string) ([]model.RawElement, error) {
			return threeNodesAndADrop(), nil
		},
	}
	archive := &mockArchive{err: errors.New("db down")}
	svc := core.NewAnalysisService(&mockGeocoder{}, source, nil, archive)

	if _, err := svc.Analyze(context.Background(), "New York", 1.0, "population"); err != nil {
		t.Fatalf("archive failure must not fail the analysis: %v", err)
	}
}
