package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"geosight/internal/domain/model"
)

// NominatimClient resolves place names against a Nominatim instance.
// The user agent is required by the public instance's usage policy and
// is explicit configuration, not ambient state.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimClient(baseURL, userAgent string, timeout time.Duration) *NominatimClient {
	return &NominatimClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Geocode resolves a place name to its best-match coordinate.
func (c *NominatimClient) Geocode(ctx context.Context, place string) (model.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: build request: %v", model.ErrGeocodeFailure, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %v", model.ErrGeocodeFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Coordinate{}, fmt.Errorf("%w: geocoder returned %s", model.ErrGeocodeFailure, resp.Status)
	}

	var matches []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: decode response: %v", model.ErrGeocodeFailure, err)
	}
	if len(matches) == 0 {
		return model.Coordinate{}, fmt.Errorf("%w: place %q not found", model.ErrGeocodeFailure, place)
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: invalid latitude %q", model.ErrGeocodeFailure, matches[0].Lat)
	}
	lon, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: invalid longitude %q", model.ErrGeocodeFailure, matches[0].Lon)
	}

	return model.Coordinate{Lat: lat, Lon: lon}, nil
}
