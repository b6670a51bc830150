// Package googlemaps provides a client for the Google Maps Directions API
// with waypoint optimization.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/resilience"
	"github.com/storeroute/storeroute/internal/routing"
)

const (
	// ProviderName identifies this directions provider.
	ProviderName = "googlemaps"

	// DefaultBaseURL is the Google Maps API base URL.
	DefaultBaseURL = "https://maps.googleapis.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second

	directionsPath = "/maps/api/directions/json"
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Directions API client.
type ClientConfig struct {
	// APIKey is the Google Maps API key (required, must not be a placeholder).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the public API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Maps Directions API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Directions API client. A missing or placeholder API
// key is a configuration error surfaced immediately, before any request.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" || strings.HasPrefix(cfg.APIKey, "YOUR_") {
		return nil, fmt.Errorf("googlemaps: a valid API key is required (got placeholder or empty value)")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Optimize requests a driving round trip with the destination list as
// unordered waypoints and optimize:true, so the service picks the visiting
// order. All failures come back as *routing.Error values.
func (c *Client) Optimize(ctx context.Context, req routing.OptimizationRequest) (*routing.OptimizationResult, error) {
	if req.Origin == "" {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_ORIGIN",
			Message:  "origin address is required",
			Err:      routing.ErrNoRouteFound,
		}
	}
	if len(req.Destinations) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "NO_WAYPOINTS",
			Message:  "at least one destination is required",
			Err:      routing.ErrNoRouteFound,
		}
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug().
		Str("origin", req.Origin).
		Int("waypoints", len(req.Destinations)).
		Str("traffic_model", trafficModelOrDefault(req.Options.TrafficModel)).
		Msg("requesting optimized directions")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach directions provider",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleHTTPError(resp.StatusCode)
	}

	var dirResp directionsResponse
	if err := json.Unmarshal(respBody, &dirResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if dirResp.Status != statusOK {
		return nil, c.handleStatusError(&dirResp)
	}
	if len(dirResp.Routes) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "EMPTY_RESULT",
			Message:  "no route found",
			Err:      routing.ErrNoRouteFound,
		}
	}

	result := toOptimizationResult(&dirResp.Routes[0])

	c.logger.Debug().
		Ints("waypoint_order", result.WaypointOrder).
		Int("legs", len(result.Legs)).
		Msg("received optimized directions")

	return result, nil
}

// buildRequest assembles the Directions API query. The origin doubles as the
// final destination (explicit round trip); avoid flags are included only when
// enabled, because omission signals "no preference" to the service.
func (c *Client) buildRequest(ctx context.Context, req routing.OptimizationRequest) (*http.Request, error) {
	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Origin)
	params.Set("waypoints", "optimize:true|"+strings.Join(req.Destinations, "|"))
	params.Set("mode", "driving")
	params.Set("traffic_model", trafficModelOrDefault(req.Options.TrafficModel))
	params.Set("departure_time", "now")

	var avoid []string
	if req.Options.AvoidTolls {
		avoid = append(avoid, "tolls")
	}
	if req.Options.AvoidHighways {
		avoid = append(avoid, "highways")
	}
	if len(avoid) > 0 {
		params.Set("avoid", strings.Join(avoid, "|"))
	}

	params.Set("key", c.apiKey)

	reqURL := c.baseURL + directionsPath + "?" + params.Encode()
	return http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
}

// handleHTTPError maps transport-level failures to domain errors.
func (c *Client) handleHTTPError(statusCode int) error {
	if statusCode == http.StatusTooManyRequests {
		return &routing.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      routing.ErrRateLimitExceeded,
		}
	}
	return &routing.Error{
		Provider: ProviderName,
		Code:     fmt.Sprintf("HTTP_%d", statusCode),
		Message:  fmt.Sprintf("directions provider returned status %d", statusCode),
		Err:      routing.ErrProviderUnavailable,
	}
}

// handleStatusError maps the API's status field to domain errors.
func (c *Client) handleStatusError(resp *directionsResponse) error {
	message := resp.ErrorMessage
	if message == "" {
		message = "directions request failed with status " + resp.Status
	}

	switch resp.Status {
	case statusZeroResults, statusNotFound:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  "no route found between the given addresses",
			Err:      routing.ErrNoRouteFound,
		}
	case statusOverQueryLimit, statusOverDailyLimit:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  message,
			Err:      routing.ErrRateLimitExceeded,
		}
	case statusRequestDenied:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  "API access denied - check API key configuration",
			Err:      routing.ErrRequestDenied,
		}
	case statusInvalidRequest:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  message,
			Err:      routing.ErrNoRouteFound,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  message,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

// toOptimizationResult extracts the waypoint permutation and the round-trip
// legs from the chosen route.
func toOptimizationResult(route *directionsRoute) *routing.OptimizationResult {
	legs := make([]routing.Leg, 0, len(route.Legs))
	for _, leg := range route.Legs {
		legs = append(legs, routing.Leg{
			DistanceMeters:  leg.Distance.Value,
			DurationSeconds: leg.Duration.Value,
		})
	}
	return &routing.OptimizationResult{
		WaypointOrder: route.WaypointOrder,
		Legs:          legs,
	}
}

func trafficModelOrDefault(model string) string {
	if model == "" {
		return "best_guess"
	}
	return model
}

// Ensure Client implements routing.Optimizer.
var _ routing.Optimizer = (*Client)(nil)
