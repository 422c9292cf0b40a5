package core_test

import (
	"errors"
	"strings"
	"testing"

	"geosight/internal/core"
	"geosight/internal/domain/model"
)

func TestBuildPOIQuery_RadiusEncoding(t *testing.T) {
	center := model.Coordinate{Lat: 40.7128, Lon: -74.0060}

	q, err := core.BuildPOIQuery(center, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.RadiusMeters != 1000 {
		t.Errorf("RadiusMeters: got %g, want 1000", q.RadiusMeters)
	}
	if !strings.Contains(q.QL, "around:1000") {
		t.Errorf("QL does not encode the 1000 m radius:\n%s", q.QL)
	}
	if q.Limit != 50 {
		t.Errorf("Limit: got %d, want 50", q.Limit)
	}
}

func TestBuildPOIQuery_AmenityAllowList(t *testing.T) {
	q, err := core.BuildPOIQuery(model.Coordinate{Lat: 40.7128, Lon: -74.0060}, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"restaurant", "school", "hospital", "bank", "cafe"}
	if len(q.Amenities) != len(want) {
		t.Fatalf("allow-list size: got %d, want %d", len(q.Amenities), len(want))
	}
	for i, amenity := range want {
		if q.Amenities[i] != amenity {
			t.Errorf("allow-list[%d]: got %q, want %q", i, q.Amenities[i], amenity)
		}
	}
	if !strings.Contains(q.QL, `"amenity"~"^(restaurant|school|hospital|bank|cafe)$"`) {
		t.Errorf("QL missing amenity filter:\n%s", q.QL)
	}
	if !strings.Contains(q.QL, `"building"!~"^(shed|garage|roof)$"`) {
		t.Errorf("QL missing building deny filter:\n%s", q.QL)
	}
}

func TestBuildPOIQuery_InvalidRadius(t *testing.T) {
	center := model.Coordinate{Lat: 40.7128, Lon: -74.0060}

	for _, radius := range []float64{0, -1.5} {
		_, err := core.BuildPOIQuery(center, radius)
		if !errors.Is(err, model.ErrInvalidParameter) {
			t.Errorf("radius %g: got %v, want ErrInvalidParameter", radius, err)
		}
	}
}

func TestBuildPOIQuery_InvalidCenter(t *testing.T) {
	_, err := core.BuildPOIQuery(model.Coordinate{Lat: 91, Lon: 0}, 1.0)
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("latitude 91: got %v, want ErrInvalidParameter", err)
	}
	_, err = core.BuildPOIQuery(model.Coordinate{Lat: 0, Lon: -181}, 1.0)
	if !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("longitude -181: got %v, want ErrInvalidParameter", err)
	}
}
