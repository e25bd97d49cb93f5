package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/awaistahir/ecohome/internal/engine"
)

const openMeteoAPIBase = "https://api.open-meteo.com/v1/forecast"

// Client fetches current conditions from the Open-Meteo API to prefill a
// WeatherSample. The estimation core never talks to it directly; weather is
// always handed in as a value.
type Client struct {
	httpClient *http.Client
	latitude   float64
	longitude  float64
}

// NewClient creates an Open-Meteo client for a location
func NewClient(lat, lon float64) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		latitude:   lat,
		longitude:  lon,
	}
}

// currentResponse represents the API response
type currentResponse struct {
	Current struct {
		Time             string  `json:"time"`
		Temperature2m    float64 `json:"temperature_2m"`
		RelativeHumidity int     `json:"relative_humidity_2m"`
	} `json:"current"`
}

// Current fetches the present temperature and humidity at the client's location
func (c *Client) Current(ctx context.Context) (engine.WeatherSample, error) {
	params := url.Values{}
	params.Add("latitude", fmt.Sprintf("%.4f", c.latitude))
	params.Add("longitude", fmt.Sprintf("%.4f", c.longitude))
	params.Add("current", "temperature_2m,relative_humidity_2m")
	params.Add("timezone", "Asia/Karachi")

	fullURL := fmt.Sprintf("%s?%s", openMeteoAPIBase, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return engine.WeatherSample{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return engine.WeatherSample{}, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return engine.WeatherSample{}, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var meteoResp currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&meteoResp); err != nil {
		return engine.WeatherSample{}, fmt.Errorf("decoding response: %w", err)
	}

	return engine.WeatherSample{
		TemperatureC: meteoResp.Current.Temperature2m,
		HumidityPct:  float64(meteoResp.Current.RelativeHumidity),
	}, nil
}
