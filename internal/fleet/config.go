package fleet

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultFeedBaseURL answers GET {base}/{lat}/{lon}/{radius_nm}.
	DefaultFeedBaseURL = "https://api.adsb.lol/v2/point"
	// DefaultTraceURL answers GET {trace}/{hex}.
	DefaultTraceURL = "https://api.adsb.lol/v2/trace"

	DefaultPollInterval      = 30 * time.Second
	DefaultRegionTimeout     = 8 * time.Second
	DefaultRequestsPerSecond = 10.0

	// SignalLostAfter is the report age, in seconds, past which an aircraft is flagged.
	SignalLostAfter = 60.0
)

var (
	ErrMissingFeedURL = errors.New("FEED_BASE_URL must not be empty")
	ErrBadInterval    = errors.New("POLL_INTERVAL and REGION_TIMEOUT must be positive")
)

// Config holds configuration for the live fleet poller.
type Config struct {
	FeedBaseURL string
	TraceURL    string

	PollInterval  time.Duration
	RegionTimeout time.Duration

	// RequestsPerSecond caps outbound feed requests. 0 disables the limit.
	RequestsPerSecond float64

	// Regions is DefaultRegions() unless RegionsFile is set.
	RegionsFile string
	Regions     []Region
}

// LoadFromEnv loads poller configuration from environment variables.
//
// Environment variables:
//   - FEED_BASE_URL: point query endpoint (default: https://api.adsb.lol/v2/point)
//   - FEED_TRACE_URL: trace endpoint (default: https://api.adsb.lol/v2/trace)
//   - POLL_INTERVAL: Go duration between polls (default: 30s)
//   - REGION_TIMEOUT: Go duration per regional request (default: 8s)
//   - FEED_RPS: max outbound requests per second (default: 10, 0 = unlimited)
//   - REGIONS_FILE: YAML region list (default: built-in regions)
func LoadFromEnv() Config {
	cfg := Config{
		FeedBaseURL:       envOr("FEED_BASE_URL", DefaultFeedBaseURL),
		TraceURL:          envOr("FEED_TRACE_URL", DefaultTraceURL),
		PollInterval:      envDuration("POLL_INTERVAL", DefaultPollInterval),
		RegionTimeout:     envDuration("REGION_TIMEOUT", DefaultRegionTimeout),
		RequestsPerSecond: DefaultRequestsPerSecond,
		RegionsFile:       strings.TrimSpace(os.Getenv("REGIONS_FILE")),
	}

	if v := strings.TrimSpace(os.Getenv("FEED_RPS")); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			log.Printf("[fleet] ignoring invalid FEED_RPS=%q", v)
		} else {
			cfg.RequestsPerSecond = rps
		}
	}
	return cfg
}

// Validate checks the configuration and resolves the region list.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FeedBaseURL) == "" {
		return ErrMissingFeedURL
	}
	if c.PollInterval <= 0 || c.RegionTimeout <= 0 {
		return ErrBadInterval
	}
	if c.RegionsFile != "" {
		regions, err := LoadRegions(c.RegionsFile)
		if err != nil {
			return err
		}
		c.Regions = regions
	}
	if len(c.Regions) == 0 {
		c.Regions = DefaultRegions()
	}
	return validateRegions(c.Regions)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return strings.TrimRight(v, "/")
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[fleet] ignoring invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
