package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/serjvanilla/go-overpass"

	"geosight/internal/domain/model"
)

// OverpassRepository executes bounded queries against an Overpass API
// endpoint. The HTTP client timeout makes every query fail fast instead
// of hanging; no retries are performed here.
type OverpassRepository struct {
	client  *overpass.Client
	timeout time.Duration
}

func NewOverpassRepository(endpoint string, timeout time.Duration) *OverpassRepository {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassRepository{
		client:  &client,
		timeout: timeout,
	}
}

// Fetch runs the query and returns the raw node/way records. An empty
// result set is an acquisition failure: the caller asked for data and
// got none.
func (r *OverpassRepository) Fetch(ctx context.Context, ql string) ([]model.RawElement, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrAcquisitionFailure, err)
	}

	result, err := r.client.Query(ql)
	if err != nil {
		return nil, fmt.Errorf("%w: overpass query failed: %v", model.ErrAcquisitionFailure, err)
	}

	elements := convertElements(&result)
	if len(elements) == 0 {
		return nil, fmt.Errorf("%w: empty response from POI source", model.ErrAcquisitionFailure)
	}
	return elements, nil
}

func convertElements(result *overpass.Result) []model.RawElement {
	elements := make([]model.RawElement, 0, len(result.Nodes)+len(result.Ways))

	for _, node := range result.Nodes {
		elements = append(elements, model.RawElement{
			ID:   node.ID,
			Type: string(overpass.ElementTypeNode),
			Lat:  node.Lat,
			Lon:  node.Lon,
			Tags: node.Tags,
		})
	}

	for _, way := range result.Ways {
		el := model.RawElement{
			ID:   way.ID,
			Type: string(overpass.ElementTypeWay),
			Tags: way.Tags,
		}
		for _, n := range way.Nodes {
			el.Vertices = append(el.Vertices, model.Coordinate{Lat: n.Lat, Lon: n.Lon})
		}
		elements = append(elements, el)
	}

	// Relations carry no point geometry we can use; they are ignored.
	return elements
}
