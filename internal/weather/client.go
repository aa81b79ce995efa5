package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"skycast/internal/domain"
)

const (
	currentWeatherPath = "/data/2.5/weather"
	maxBodyBytes       = 1 << 20
)

// Fetcher returns the current weather for a place name
type Fetcher interface {
	FetchWeather(ctx context.Context, location string) (domain.WeatherSnapshot, error)
}

// Client queries the OpenWeatherMap current weather endpoint. It holds no
// per-request state, so one Client serves every search.
type Client struct {
	apiKey     string
	baseURL    string
	iconHost   string
	httpClient *http.Client
	now        func() time.Time
}

// Ensure Client implements Fetcher
var _ Fetcher = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another provider root (tests use httptest)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithIconHost sets the host used for icon URLs
func WithIconHost(host string) Option {
	return func(c *Client) { c.iconHost = host }
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces the clock used to compute local time
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a provider client. The HTTP client keeps the platform default
// timeout; cancellation comes from the caller's context.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    "https://api.openweathermap.org",
		iconHost:   domain.DefaultIconHost,
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// currentWeatherResponse mirrors the fields we read. Pointers let us tell a
// missing field from a zero value.
type currentWeatherResponse struct {
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *float64 `json:"humidity"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Sys *struct {
		Country *string `json:"country"`
	} `json:"sys"`
	Timezone *int `json:"timezone"`
}

// FetchWeather issues one request for location and maps the result
func (c *Client) FetchWeather(ctx context.Context, location string) (domain.WeatherSnapshot, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return domain.WeatherSnapshot{}, newFetchError(KindNotFound, location, errors.New("empty location"))
	}

	reqID := uuid.NewString()
	log.Printf("weather: [%s] requesting current weather for %q", reqID, location)

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")
	endpoint := c.baseURL + currentWeatherPath + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.WeatherSnapshot{}, newFetchError(KindNetwork, location, c.redactErr(fmt.Errorf("failed to create request: %w", err)))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			log.Printf("weather: [%s] canceled", reqID)
			return domain.WeatherSnapshot{}, newFetchError(KindCanceled, location, ctx.Err())
		}
		log.Printf("weather: [%s] transport error: %v", reqID, c.redactErr(err))
		return domain.WeatherSnapshot{}, newFetchError(KindNetwork, location, c.redactErr(fmt.Errorf("failed to send request: %w", err)))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return domain.WeatherSnapshot{}, newFetchError(KindCanceled, location, ctx.Err())
		}
		return domain.WeatherSnapshot{}, newFetchError(KindNetwork, location, fmt.Errorf("failed to read response body: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		log.Printf("weather: [%s] location not found", reqID)
		return domain.WeatherSnapshot{}, newFetchError(KindNotFound, location, fmt.Errorf("API returned status %d", resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Printf("weather: [%s] API returned status %d", reqID, resp.StatusCode)
		return domain.WeatherSnapshot{}, newFetchError(KindNetwork, location, fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	if code := bodyCode(body); code == "404" {
		log.Printf("weather: [%s] location not found (body cod %s)", reqID, code)
		return domain.WeatherSnapshot{}, newFetchError(KindNotFound, location, errors.New("API returned cod 404"))
	}

	snapshot, err := c.mapResponse(location, body)
	if err != nil {
		log.Printf("weather: [%s] %v", reqID, err)
		return domain.WeatherSnapshot{}, newFetchError(KindParse, location, err)
	}

	log.Printf("weather: [%s] ok: %s, %d°C, theme %s", reqID, snapshot.CountryCode, snapshot.TemperatureC, snapshot.ThemeKey)
	return snapshot, nil
}

// bodyCode returns the payload's cod field, which the provider sends as
// either a number or a string. It is empty when absent or unreadable.
func bodyCode(body []byte) string {
	var envelope struct {
		Cod json.RawMessage `json:"cod"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Cod) == 0 {
		return ""
	}
	return strings.Trim(string(envelope.Cod), `"`)
}

// mapResponse decodes a provider payload into a snapshot
func (c *Client) mapResponse(location string, body []byte) (domain.WeatherSnapshot, error) {
	var payload currentWeatherResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("failed to parse API response: %w", err)
	}

	var missing []string
	if len(payload.Weather) == 0 {
		missing = append(missing, "weather[0]")
	} else {
		w := payload.Weather[0]
		if w.Main == nil {
			missing = append(missing, "weather[0].main")
		}
		if w.Description == nil {
			missing = append(missing, "weather[0].description")
		}
		if w.Icon == nil {
			missing = append(missing, "weather[0].icon")
		}
	}
	if payload.Main == nil {
		missing = append(missing, "main")
	} else {
		if payload.Main.Temp == nil {
			missing = append(missing, "main.temp")
		}
		if payload.Main.FeelsLike == nil {
			missing = append(missing, "main.feels_like")
		}
		if payload.Main.Humidity == nil {
			missing = append(missing, "main.humidity")
		}
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		missing = append(missing, "wind.speed")
	}
	if payload.Sys == nil || payload.Sys.Country == nil {
		missing = append(missing, "sys.country")
	}
	if payload.Timezone == nil {
		missing = append(missing, "timezone")
	}
	if len(missing) > 0 {
		return domain.WeatherSnapshot{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}

	w := payload.Weather[0]
	now := c.now()
	return domain.WeatherSnapshot{
		Location:     location,
		Description:  *w.Description,
		TemperatureC: int(math.Round(*payload.Main.Temp)),
		FeelsLikeC:   *payload.Main.FeelsLike,
		HumidityPct:  int(math.Round(*payload.Main.Humidity)),
		WindSpeed:    *payload.Wind.Speed,
		CountryCode:  *payload.Sys.Country,
		LocalTime:    domain.LocalTime(now, *payload.Timezone),
		IconCode:     *w.Icon,
		IconRef:      domain.IconURL(c.iconHost, *w.Icon),
		Condition:    *w.Main,
		ThemeKey:     domain.ThemeKeyFor(*w.Main),
		FetchedAt:    now,
	}, nil
}

// redactErr keeps the API key out of error text
func (c *Client) redactErr(err error) error {
	if err == nil || c.apiKey == "" {
		return err
	}
	msg := err.Error()
	redacted := strings.ReplaceAll(msg, url.QueryEscape(c.apiKey), "REDACTED")
	redacted = strings.ReplaceAll(redacted, c.apiKey, "REDACTED")
	if redacted == msg {
		return err
	}
	return &redactedError{msg: redacted, err: err}
}

// redactedError hides the original message but keeps the chain for errors.Is
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
