package roadmapapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"roadmap/internal/domain"
)

const (
	pathSearchCities    = "/api/search_cities"
	pathGetVehicleSpecs = "/api/get_vehicle_specs"
	pathCalculateRoute  = "/api/calculate_route"
)

// Client talks to the route-planning backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code: %d", e.Endpoint, e.StatusCode)
}

// APIError carries the message of an explicit "error" field in an otherwise
// successful response. The message is meant for the user as-is.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error: %s", e.Endpoint, e.Message)
}

type searchResponse struct {
	Results []domain.Candidate `json:"results"`
	Error   string             `json:"error,omitempty"`
}

type specsResponse struct {
	Specs *domain.VehicleSpec `json:"specs"`
	Error string              `json:"error,omitempty"`
}

type routeResponse struct {
	domain.RouteResult
	Error string `json:"error,omitempty"`
}

func (c *Client) SearchCities(ctx context.Context, query string) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("query", query)

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, pathSearchCities+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &APIError{Endpoint: pathSearchCities, Message: resp.Error}
	}
	if resp.Results == nil {
		return []domain.Candidate{}, nil
	}
	return resp.Results, nil
}

func (c *Client) GetVehicleSpecs(ctx context.Context, q domain.VehicleQuery) (*domain.VehicleSpec, error) {
	var resp specsResponse
	if err := c.do(ctx, http.MethodPost, pathGetVehicleSpecs, q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &APIError{Endpoint: pathGetVehicleSpecs, Message: resp.Error}
	}
	if resp.Specs == nil {
		return nil, fmt.Errorf("%s: response has no specs", pathGetVehicleSpecs)
	}
	return resp.Specs, nil
}

func (c *Client) CalculateRoute(ctx context.Context, q domain.RouteQuery) (*domain.RouteResult, error) {
	var resp routeResponse
	if err := c.do(ctx, http.MethodPost, pathCalculateRoute, q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &APIError{Endpoint: pathCalculateRoute, Message: resp.Error}
	}
	result := resp.RouteResult
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}
