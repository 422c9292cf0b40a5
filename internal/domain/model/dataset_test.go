package model_test

import (
	"testing"

	"geosight/internal/domain/model"
)

func testFeatures() []model.Feature {
	return []model.Feature{
		{ID: 1, Name: "a", Category: "cafe", Population: 100, Coordinate: model.Coordinate{Lat: 1, Lon: 1}},
		{ID: 2, Name: "b", Category: "bank", Population: 200, Coordinate: model.Coordinate{Lat: 2, Lon: 2}},
		{ID: 3, Name: "c", Category: "cafe", Population: 300, Coordinate: model.Coordinate{Lat: 3, Lon: 3}},
	}
}

func TestDataset_OwnsItsFeatures(t *testing.T) {
	input := testFeatures()
	ds := model.NewSpatialDataset(input)

	input[0].Name = "mutated"
	if ds.At(0).Name != "a" {
		t.Error("dataset shares backing storage with constructor input")
	}

	out := ds.Features()
	out[1].Name = "mutated"
	if ds.At(1).Name != "b" {
		t.Error("Features() exposes mutable backing storage")
	}
}

func TestDataset_FilterReturnsNewDataset(t *testing.T) {
	ds := model.NewSpatialDataset(testFeatures())

	cafes := ds.Filter(func(f model.Feature) bool { return f.Category == "cafe" })
	if cafes.Size() != 2 {
		t.Errorf("filtered size: got %d, want 2", cafes.Size())
	}
	if ds.Size() != 3 {
		t.Errorf("original mutated: size %d, want 3", ds.Size())
	}
}

func TestDataset_CategoryCounts(t *testing.T) {
	ds := model.NewSpatialDataset(testFeatures())

	counts := ds.CategoryCounts()
	if counts["cafe"] != 2 || counts["bank"] != 1 {
		t.Errorf("counts: got %v", counts)
	}
}
