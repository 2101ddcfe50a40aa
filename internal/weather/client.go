package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/config"
	"github.com/ayodelep/weathercat/pkg/httpclient"
)

// Coordinates is a geographic point resolved from a location name
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ClientInterface defines the weather data operations
type ClientInterface interface {
	Geocode(ctx context.Context, name string) (Coordinates, error)
	Current(ctx context.Context, coords Coordinates) (json.RawMessage, error)
	History(ctx context.Context, coords Coordinates) (json.RawMessage, error)
	Forecast(ctx context.Context, coords Coordinates) (json.RawMessage, error)
}

// Client talks to the OpenWeatherMap API family. Weather payloads are passed
// through untouched as raw JSON.
type Client struct {
	apiKey   string
	geo      *httpclient.Client
	api      *httpclient.Client
	history  *httpclient.Client
	forecast *httpclient.Client
}

// NewClient creates a weather client from configuration
func NewClient(cfg *config.WeatherConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Client{
		apiKey:   cfg.APIKey,
		geo:      httpclient.NewClient(cfg.GeoBaseURL, timeout).WithOptions(httpclient.WithDefaultRetry()),
		api:      httpclient.NewClient(cfg.APIBaseURL, timeout).WithOptions(httpclient.WithDefaultRetry()),
		history:  httpclient.NewClient(cfg.HistoryBaseURL, timeout).WithOptions(httpclient.WithDefaultRetry()),
		forecast: httpclient.NewClient(cfg.ForecastBaseURL, timeout).WithOptions(httpclient.WithDefaultRetry()),
	}
}

// Geocode resolves a location name to coordinates. An empty result set means
// the provider does not know the name.
func (c *Client) Geocode(ctx context.Context, name string) (Coordinates, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("appid", c.apiKey)

	body, err := c.geo.Get(ctx, "/geo/1.0/direct?"+params.Encode(), nil)
	if err != nil {
		return Coordinates{}, common.NewUpstreamError("geocoding request failed", err)
	}

	var results []Coordinates
	if err := json.Unmarshal(body, &results); err != nil {
		return Coordinates{}, common.NewUpstreamError("failed to decode geocoding response", err)
	}
	if len(results) == 0 {
		return Coordinates{}, common.NewNotFoundError("%s is not a valid location", name)
	}
	return results[0], nil
}

// Current fetches the current weather for the given coordinates
func (c *Client) Current(ctx context.Context, coords Coordinates) (json.RawMessage, error) {
	body, err := c.api.Get(ctx, "/data/2.5/weather?"+c.coordParams(coords), nil)
	if err != nil {
		return nil, common.NewUpstreamError("current weather request failed", err)
	}
	return body, nil
}

// History fetches hourly historical weather for the given coordinates
func (c *Client) History(ctx context.Context, coords Coordinates) (json.RawMessage, error) {
	body, err := c.history.Get(ctx, "/data/2.5/history/city?type=hour&"+c.coordParams(coords), nil)
	if err != nil {
		return nil, common.NewUpstreamError("weather history request failed", err)
	}
	return body, nil
}

// Forecast fetches the hourly forecast for the given coordinates
func (c *Client) Forecast(ctx context.Context, coords Coordinates) (json.RawMessage, error) {
	body, err := c.forecast.Get(ctx, "/data/2.5/forecast/hourly?"+c.coordParams(coords), nil)
	if err != nil {
		return nil, common.NewUpstreamError("weather forecast request failed", err)
	}
	return body, nil
}

func (c *Client) coordParams(coords Coordinates) string {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%g", coords.Lat))
	params.Set("lon", fmt.Sprintf("%g", coords.Lon))
	params.Set("appid", c.apiKey)
	return params.Encode()
}
