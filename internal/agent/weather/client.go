package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mangaluru-mitra/server/internal/agent/model"
	errx "github.com/mangaluru-mitra/server/internal/core/error"
	logx "github.com/mangaluru-mitra/server/pkg/logger"
)

// Service returns current conditions for a coordinate pair. Failure of any
// kind yields an error the caller absorbs; weather is never load-bearing.
type Service interface {
	Current(ctx context.Context, lat, lng float64) (*model.Weather, error)
}

// Client calls the OpenWeather current-weather endpoint.
type Client struct {
	cfg   model.WeatherConfig
	httpc *http.Client
}

func NewClient(cfg model.WeatherConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: timeout},
	}
}

type currentWeatherPayload struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

func (c *Client) Current(ctx context.Context, lat, lng float64) (*model.Weather, error) {
	if c.cfg.APIKey == "" {
		return nil, errx.New(errors.New("missing api key"), http.StatusServiceUnavailable, errx.WeatherErrorMessage)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("appid", c.cfg.APIKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, errx.New(err, http.StatusInternalServerError, errx.WeatherErrorMessage)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		logx.Warn().Err(err).Msg("weather request failed")
		return nil, errx.New(err, http.StatusBadGateway, errx.WeatherErrorMessage)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logx.Warn().Int("status", resp.StatusCode).Msg("weather service returned non-OK status")
		return nil, errx.New(fmt.Errorf("unexpected status %d", resp.StatusCode), http.StatusBadGateway, errx.WeatherErrorMessage)
	}

	var payload currentWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errx.New(err, http.StatusBadGateway, errx.WeatherErrorMessage)
	}

	w := &model.Weather{TemperatureC: int(math.Round(payload.Main.Temp))}
	if len(payload.Weather) > 0 {
		w.Description = payload.Weather[0].Description
	}
	return w, nil
}

var _ Service = (*Client)(nil)
