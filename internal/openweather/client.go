package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for looking up current conditions.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchCurrent(ctx context.Context, city string) (*CurrentResponse, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ErrMissingAPIKey is returned when a request is attempted without a credential.
var ErrMissingAPIKey = errors.New("api key not configured")

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the OpenWeatherMap current weather API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	units     string
	lang      string
	userAgent string
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	APIKey  string
	Units   string
	Lang    string
	Timeout time.Duration
}

const (
	DefaultBaseURL   = "https://api.openweathermap.org/data/2.5/weather"
	DefaultUnits     = "metric"
	DefaultLang      = "it"
	defaultUserAgent = "meteo/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		apiKey:    strings.TrimSpace(opts.APIKey),
		units:     firstNonEmpty(opts.Units, DefaultUnits),
		lang:      firstNonEmpty(opts.Lang, DefaultLang),
		userAgent: defaultUserAgent,
	}, nil
}

// FetchCurrent retrieves current conditions for city.
func (c *Client) FetchCurrent(ctx context.Context, city string) (*CurrentResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", c.units)
	values.Set("lang", c.lang)

	var payload CurrentResponse
	if err := c.get(ctx, values, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, values url.Values, dest any) error {
	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	serr := &StatusError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return serr
	}
	var payload apiError
	if err := json.Unmarshal(body, &payload); err == nil && strings.TrimSpace(payload.Message) != "" {
		serr.Message = strings.TrimSpace(payload.Message)
	}
	return serr
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
