package model

import "time"

// Coordinate is a WGS-84 point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// RawElement is one node or way as returned by the POI source, before
// normalization. Nodes carry Lat/Lon; ways carry their outline vertices.
type RawElement struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"`
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Tags     map[string]string `json:"tags"`
	Vertices []Coordinate      `json:"vertices,omitempty"`
}

// Feature is one normalized point of interest. Coordinate is always
// present and finite; records without resolvable geometry never become
// Features.
type Feature struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Population int        `json:"population"`
	Coordinate Coordinate `json:"coordinate"`
}

// OutlierMethodReport holds the result of one outlier-detection method.
// Indices refer to positions in the valid numeric sample.
type OutlierMethodReport struct {
	Indices    []int   `json:"indices"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OutlierReport keeps the two detection methods separate: they encode
// different distributional assumptions and must not be merged.
type OutlierReport struct {
	ZScore OutlierMethodReport `json:"z_score"`
	IQR    OutlierMethodReport `json:"iqr"`
}

// StatisticsResult is the immutable descriptive-statistics summary of
// one numeric attribute.
type StatisticsResult struct {
	Attribute string        `json:"attribute"`
	Count     int           `json:"count"`
	Mean      float64       `json:"mean"`
	Median    float64       `json:"median"`
	Mode      float64       `json:"mode"`
	StdDev    float64       `json:"std_dev"`
	Variance  float64       `json:"variance"`
	Min       float64       `json:"min"`
	Max       float64       `json:"max"`
	Skewness  float64       `json:"skewness"`
	Normality string        `json:"normality"`
	Outliers  OutlierReport `json:"outliers"`
}

// Distribution pattern labels.
const (
	PatternClustered     = "Clustered"
	PatternRandom        = "Random"
	PatternDispersed     = "Dispersed"
	PatternNotApplicable = "Not applicable"
)

// Hotspot is a location where the analysis attribute is elevated
// relative to its surroundings.
type Hotspot struct {
	Location Coordinate `json:"location"`
	Score    float64    `json:"score"`
}

// SpatialPatternResult is the immutable geometry summary of a dataset.
// StandardDistanceValid and NearestNeighborValid are false for
// single-feature datasets, where those metrics are undefined.
type SpatialPatternResult struct {
	CenterOfMass          Coordinate `json:"center_of_mass"`
	StandardDistanceKm    float64    `json:"standard_distance_km"`
	StandardDistanceValid bool       `json:"standard_distance_valid"`
	NearestNeighborIndex  float64    `json:"nearest_neighbor_index"`
	NearestNeighborValid  bool       `json:"nearest_neighbor_valid"`
	MoranI                float64    `json:"moran_i"`
	Pattern               string     `json:"pattern"`
	Hotspots              []Hotspot  `json:"hotspots"`
}

// WeatherConditions is pass-through data from the weather collaborator.
// Values are reported exactly as received, no computation.
type WeatherConditions struct {
	TemperatureC  string `json:"temperature_c"`
	FeelsLikeC    string `json:"feels_like_c"`
	Humidity      string `json:"humidity"`
	Description   string `json:"description"`
	WindSpeedKmph string `json:"wind_speed_kmph"`
	PrecipMM      string `json:"precip_mm"`
}

// AnalysisReport aggregates one analysis run. Built once, never mutated.
type AnalysisReport struct {
	Location    string                `json:"location"`
	DatasetSize int                   `json:"dataset_size"`
	GeneratedAt time.Time             `json:"generated_at"`
	Statistics  *StatisticsResult     `json:"statistics"`
	Spatial     *SpatialPatternResult `json:"spatial"`
	Categories  map[string]int        `json:"categories"`
	Weather     *WeatherConditions    `json:"weather,omitempty"`
}
