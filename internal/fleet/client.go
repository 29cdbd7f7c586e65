package fleet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxBodyBytes bounds a single regional response. A 1000 nm query over a busy region
// is a few MB.
const maxBodyBytes = 32 << 20

// Client queries the ADS-B aggregator feed.
type Client struct {
	baseURL    string
	traceURL   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a feed client. rps <= 0 disables request pacing.
// Timeouts come from the caller's context, not from the http.Client.
func NewClient(baseURL, traceURL string, rps float64) *Client {
	limit, burst := rate.Inf, 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = int(rps)
		if burst < 1 {
			burst = 1
		}
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		traceURL: strings.TrimRight(traceURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 16,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RegionURL is the point query for r.
func (c *Client) RegionURL(r Region) string {
	return fmt.Sprintf("%s/%s/%s/%d", c.baseURL, formatCoord(r.Lat), formatCoord(r.Lon), r.RadiusNM)
}

// Wait blocks until the limiter grants one outbound request.
func (c *Client) Wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return resp.StatusCode, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, nil
}

// FetchRegion returns the raw aircraft reported within r. A response without an
// "ac" array is zero aircraft, not an error. It does not wait on the limiter; Gather
// does that before starting the region's timeout.
func (c *Client) FetchRegion(ctx context.Context, r Region) ([]RawAircraft, error) {
	url := c.RegionURL(r)
	start := time.Now()

	var body feedResponse
	status, err := c.getJSON(ctx, url, &body)
	if err != nil {
		return nil, fmt.Errorf("region %s: %w", r.Name, err)
	}

	LogResponse(url, status, time.Since(start), len(body.AC))
	return body.AC, nil
}

type traceResponse struct {
	Trace [][]json.RawMessage `json:"trace"`
}

// FetchTrace returns the flown positions of one aircraft. Entries are
// [time, lat, lon, ...]; entries with a missing or zero coordinate are dropped.
func (c *Client) FetchTrace(ctx context.Context, hex string) ([]TracePoint, error) {
	if c.traceURL == "" {
		return nil, fmt.Errorf("trace endpoint not configured")
	}
	url := fmt.Sprintf("%s/%s", c.traceURL, hex)
	LogRequest(http.MethodGet, url)

	if err := c.Wait(ctx); err != nil {
		return nil, fmt.Errorf("trace %s: %w", hex, err)
	}
	var body traceResponse
	if _, err := c.getJSON(ctx, url, &body); err != nil {
		return nil, fmt.Errorf("trace %s: %w", hex, err)
	}

	points := make([]TracePoint, 0, len(body.Trace))
	for _, entry := range body.Trace {
		if len(entry) < 3 {
			continue
		}
		var lat, lon Num
		_ = lat.UnmarshalJSON(entry[1])
		_ = lon.UnmarshalJSON(entry[2])
		if !lat.Valid || !lon.Valid || lat.Value == 0 || lon.Value == 0 {
			continue
		}
		points = append(points, TracePoint{Latitude: lat.Value, Longitude: lon.Value})
	}
	return points, nil
}
