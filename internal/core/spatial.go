package core

import (
	"context"
	"fmt"
	"math"
	"sort"

	"geosight/internal/domain/model"
)

// Nearest-neighbor index brackets. Near 1 means consistent with a
// uniform random scatter; the ±15% slack is a tunable constant, not a
// law.
const (
	clusteredBelow = 0.85
	dispersedAbove = 1.15
)

// Hotspot scan parameters: neighborhood radius as a fraction of the
// standard distance, its floor in km, the score cutoff in standard
// deviations, and how many ranked locations to keep.
const (
	hotspotRadiusFraction = 0.25
	hotspotRadiusFloorKm  = 0.1
	hotspotScoreCutoff    = 1.0
	hotspotLimit          = 5
)

// SpatialPatternEngine computes geometry-only metrics over a dataset.
// The dataset is read-only during analysis, so a caller may abandon a
// long-running computation via ctx without corrupting anything.
type SpatialPatternEngine struct{}

// Analyze computes the SpatialPatternResult for the dataset. With a
// single feature, standard distance and the nearest-neighbor index are
// undefined and reported as not applicable instead of NaN.
func (SpatialPatternEngine) Analyze(ctx context.Context, dataset *model.SpatialDataset) (*model.SpatialPatternResult, error) {
	n := dataset.Size()
	if n == 0 {
		return nil, fmt.Errorf("%w: spatial analysis needs a non-empty dataset", model.ErrInsufficientData)
	}

	center := centerOfMass(dataset)
	if n == 1 {
		return &model.SpatialPatternResult{
			CenterOfMass: center,
			Pattern:      model.PatternNotApplicable,
			Hotspots:     []model.Hotspot{},
		}, nil
	}

	stdDist := standardDistance(dataset, center)

	nnIndex, nnValid := nearestNeighborIndex(dataset)
	pattern := model.PatternNotApplicable
	if nnValid {
		switch {
		case nnIndex < clusteredBelow:
			pattern = model.PatternClustered
		case nnIndex > dispersedAbove:
			pattern = model.PatternDispersed
		default:
			pattern = model.PatternRandom
		}
	}

	moran, err := moransI(ctx, dataset)
	if err != nil {
		return nil, err
	}

	hotspots, err := scanHotspots(ctx, dataset, stdDist)
	if err != nil {
		return nil, err
	}

	return &model.SpatialPatternResult{
		CenterOfMass:          center,
		StandardDistanceKm:    stdDist,
		StandardDistanceValid: true,
		NearestNeighborIndex:  nnIndex,
		NearestNeighborValid:  nnValid,
		MoranI:                moran,
		Pattern:               pattern,
		Hotspots:              hotspots,
	}, nil
}

// centerOfMass is the arithmetic mean of the coordinates, a planar
// centroid approximation that is acceptable at city scale.
func centerOfMass(dataset *model.SpatialDataset) model.Coordinate {
	var lat, lon float64
	for i := 0; i < dataset.Size(); i++ {
		c := dataset.At(i).Coordinate
		lat += c.Lat
		lon += c.Lon
	}
	n := float64(dataset.Size())
	return model.Coordinate{Lat: lat / n, Lon: lon / n}
}

// standardDistance is the RMS distance of features from the center of
// mass, in km.
func standardDistance(dataset *model.SpatialDataset, center model.Coordinate) float64 {
	var sumSq float64
	for i := 0; i < dataset.Size(); i++ {
		c := dataset.At(i).Coordinate
		d := haversine(center.Lat, center.Lon, c.Lat, c.Lon)
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(dataset.Size()))
}

// nearestNeighborIndex is the observed mean nearest-neighbor distance
// divided by the expected mean distance 0.5/sqrt(n/A) under a uniform
// random distribution over the bounding extent of area A. A fully
// coincident sample yields 0 (maximally clustered); a degenerate extent
// with non-coincident points is reported as not valid.
func nearestNeighborIndex(dataset *model.SpatialDataset) (float64, bool) {
	n := dataset.Size()
	var sum float64
	for i := 0; i < n; i++ {
		ci := dataset.At(i).Coordinate
		minDist := math.MaxFloat64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			cj := dataset.At(j).Coordinate
			if d := haversine(ci.Lat, ci.Lon, cj.Lat, cj.Lon); d < minDist {
				minDist = d
			}
		}
		sum += minDist
	}
	observed := sum / float64(n)
	if observed == 0 {
		return 0, true
	}

	area := boundingArea(datasetBounds(dataset))
	if area <= 0 {
		return 0, false
	}
	expected := 0.5 / math.Sqrt(float64(n)/area)
	return observed / expected, true
}

// moransI is Moran's I over the population attribute with row-standardised
// inverse-distance weights. Coincident pairs get zero weight. Returns 0
// for a constant attribute, where the coefficient is undefined.
func moransI(ctx context.Context, dataset *model.SpatialDataset) (float64, error) {
	n := dataset.Size()
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = float64(dataset.At(i).Population)
	}
	mean := meanOf(values)

	var denom float64
	for _, v := range values {
		d := v - mean
		denom += d * d
	}
	if denom == 0 {
		return 0, nil
	}

	var numer float64
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ci := dataset.At(i).Coordinate

		weights := make([]float64, n)
		var rowSum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			cj := dataset.At(j).Coordinate
			d := haversine(ci.Lat, ci.Lon, cj.Lat, cj.Lon)
			if d == 0 {
				continue
			}
			weights[j] = 1 / d
			rowSum += weights[j]
		}
		if rowSum == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if weights[j] == 0 {
				continue
			}
			numer += (weights[j] / rowSum) * (values[i] - mean) * (values[j] - mean)
		}
	}

	// Row-standardised weights sum to n, so S0 cancels.
	return numer / denom, nil
}

// scanHotspots runs a local Getis-Ord-style scan: each feature's
// neighborhood attribute sum is scored against the distribution of all
// neighborhood sums, and locations more than hotspotScoreCutoff standard
// deviations above the mean are kept, ranked by score.
func scanHotspots(ctx context.Context, dataset *model.SpatialDataset, stdDist float64) ([]model.Hotspot, error) {
	n := dataset.Size()
	radius := hotspotRadiusFraction * stdDist
	if radius < hotspotRadiusFloorKm {
		radius = hotspotRadiusFloorKm
	}

	sums := make([]float64, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ci := dataset.At(i).Coordinate
		for j := 0; j < n; j++ {
			cj := dataset.At(j).Coordinate
			if haversine(ci.Lat, ci.Lon, cj.Lat, cj.Lon) <= radius {
				sums[i] += float64(dataset.At(j).Population)
			}
		}
	}

	mean := meanOf(sums)
	var variance float64
	for _, s := range sums {
		d := s - mean
		variance += d * d
	}
	variance /= float64(n)
	std := math.Sqrt(variance)

	hotspots := []model.Hotspot{}
	if std == 0 {
		return hotspots, nil
	}
	for i, s := range sums {
		score := (s - mean) / std
		if score > hotspotScoreCutoff {
			hotspots = append(hotspots, model.Hotspot{
				Location: dataset.At(i).Coordinate,
				Score:    score,
			})
		}
	}
	sort.Slice(hotspots, func(i, j int) bool { return hotspots[i].Score > hotspots[j].Score })
	if len(hotspots) > hotspotLimit {
		hotspots = hotspots[:hotspotLimit]
	}
	return hotspots, nil
}

func datasetBounds(dataset *model.SpatialDataset) model.Bounds {
	first := dataset.At(0).Coordinate
	b := model.Bounds{MinLat: first.Lat, MaxLat: first.Lat, MinLon: first.Lon, MaxLon: first.Lon}
	for i := 1; i < dataset.Size(); i++ {
		c := dataset.At(i).Coordinate
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
		b.MinLon = math.Min(b.MinLon, c.Lon)
		b.MaxLon = math.Max(b.MaxLon, c.Lon)
	}
	return b
}

// boundingArea approximates the bounding-box area in km², accounting for
// longitude convergence at the box's mid-latitude.
func boundingArea(bounds model.Bounds) float64 {
	latMid := (bounds.MinLat + bounds.MaxLat) / 2 * math.Pi / 180
	dLat := bounds.MaxLat - bounds.MinLat
	dLon := bounds.MaxLon - bounds.MinLon

	// Degrees-to-meters coefficients.
	kx := 111132.92 - 559.82*math.Cos(2*latMid)
	ky := 111412.84 * math.Cos(latMid)

	return math.Abs(dLat*kx*dLon*ky) / 1000000 // km²
}

// haversine returns the great-circle distance between two points in km.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
