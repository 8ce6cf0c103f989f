package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://api.openweathermap.org/data/2.5"
	DefaultIconBaseURL = "http://openweathermap.org/img/wn"
)

var ErrNoConditions = errors.New("response has no weather conditions")

// Snapshot is the result of one successful current-weather query.
type Snapshot struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

type WeatherProvider interface {
	GetByCity(ctx context.Context, city string) (*Snapshot, error)
	GetByCoordinates(ctx context.Context, lat, lon float64) (*Snapshot, error)
	GetHTTPClient() *http.Client
}

type openWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenWeatherProvider(apiKey, baseURL string, timeout time.Duration) WeatherProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &openWeatherProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type CurrentWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (p *openWeatherProvider) GetByCity(ctx context.Context, city string) (*Snapshot, error) {
	params := url.Values{}
	params.Set("q", city)

	return p.current(ctx, params)
}

func (p *openWeatherProvider) GetByCoordinates(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	return p.current(ctx, params)
}

func (p *openWeatherProvider) current(ctx context.Context, params url.Values) (*Snapshot, error) {
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("openweathermap request could not be built: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweathermap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openweathermap returned status code: %d", resp.StatusCode)
	}

	var apiResp CurrentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("openweathermap returned malformed JSON: %w", err)
	}

	if len(apiResp.Weather) == 0 {
		return nil, fmt.Errorf("openweathermap: %w", ErrNoConditions)
	}

	return &Snapshot{
		Name:        apiResp.Name,
		Description: apiResp.Weather[0].Description,
		Icon:        apiResp.Weather[0].Icon,
		Temperature: apiResp.Main.Temp,
		Humidity:    apiResp.Main.Humidity,
		WindSpeed:   apiResp.Wind.Speed,
	}, nil
}

func (p *openWeatherProvider) GetHTTPClient() *http.Client {
	return p.client
}

// IconURL maps an icon code to its image URL. The code is not validated.
func IconURL(code string) string {
	return IconURLWithBase(DefaultIconBaseURL, code)
}

func IconURLWithBase(base, code string) string {
	return strings.TrimSuffix(base, "/") + "/" + code + ".png"
}
