package core

import (
	"fmt"
	"strings"

	"geosight/internal/domain/model"
)

// Amenity types kept in point queries. Anything else is incidental
// tagging, not a "place".
var AmenityAllowList = []string{"restaurant", "school", "hospital", "bank", "cafe"}

// Building values excluded from way queries.
var BuildingDenyList = []string{"shed", "garage", "roof"}

// MaxQueryResults caps the response size; an unbounded query against a
// shared public Overpass instance risks timeouts and rate-limiting.
const MaxQueryResults = 50

const queryTimeoutSeconds = 25

// POIQuery is a bounded Overpass query around a center point.
type POIQuery struct {
	Center       model.Coordinate
	RadiusMeters float64
	Amenities    []string
	Denied       []string
	Limit        int
	QL           string
}

// BuildPOIQuery turns a center coordinate and a radius in kilometers
// into a bounded Overpass QL query. Pure construction, no side effects.
func BuildPOIQuery(center model.Coordinate, radiusKm float64) (*POIQuery, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %g km", model.ErrInvalidParameter, radiusKm)
	}
	if center.Lat < -90 || center.Lat > 90 {
		return nil, fmt.Errorf("%w: latitude %g out of range [-90, 90]", model.ErrInvalidParameter, center.Lat)
	}
	if center.Lon < -180 || center.Lon > 180 {
		return nil, fmt.Errorf("%w: longitude %g out of range [-180, 180]", model.ErrInvalidParameter, center.Lon)
	}

	radiusM := radiusKm * 1000
	amenities := strings.Join(AmenityAllowList, "|")
	denied := strings.Join(BuildingDenyList, "|")

	ql := fmt.Sprintf(`[out:json][timeout:%d];
(
  node["amenity"~"^(%s)$"](around:%.0f,%f,%f);
  way["building"]["building"!~"^(%s)$"](around:%.0f,%f,%f);
);
out center qt %d;`,
		queryTimeoutSeconds,
		amenities, radiusM, center.Lat, center.Lon,
		denied, radiusM, center.Lat, center.Lon,
		MaxQueryResults)

	return &POIQuery{
		Center:       center,
		RadiusMeters: radiusM,
		Amenities:    AmenityAllowList,
		Denied:       BuildingDenyList,
		Limit:        MaxQueryResults,
		QL:           ql,
	}, nil
}
