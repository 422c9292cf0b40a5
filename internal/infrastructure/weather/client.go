// Package weather fetches current conditions from a wttr.in-compatible
// endpoint. Pure pass-through: values are attached to reports exactly as
// received.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"geosight/internal/domain/model"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Current returns conditions for the place, untouched.
func (c *Client) Current(ctx context.Context, place string) (*model.WeatherConditions, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(place))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather service returned %s", resp.Status)
	}

	var payload struct {
		CurrentCondition []struct {
			TempC       string `json:"temp_C"`
			FeelsLikeC  string `json:"FeelsLikeC"`
			Humidity    string `json:"humidity"`
			WeatherDesc []struct {
				Value string `json:"value"`
			} `json:"weatherDesc"`
			WindSpeedKmph string `json:"windspeedKmph"`
			PrecipMM      string `json:"precipMM"`
		} `json:"current_condition"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(payload.CurrentCondition) == 0 {
		return nil, fmt.Errorf("weather response had no current conditions")
	}

	cond := payload.CurrentCondition[0]
	out := &model.WeatherConditions{
		TemperatureC:  cond.TempC,
		FeelsLikeC:    cond.FeelsLikeC,
		Humidity:      cond.Humidity,
		WindSpeedKmph: cond.WindSpeedKmph,
		PrecipMM:      cond.PrecipMM,
	}
	if len(cond.WeatherDesc) > 0 {
		out.Description = cond.WeatherDesc[0].Value
	}
	return out, nil
}
