package fleet

import (
	"fmt"
	"log"
	"time"
)

// Init validates cfg and builds the feed client and poller. The poller is not started.
func Init(cfg Config) (*Client, *Poller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid fleet config: %w", err)
	}

	client := NewClient(cfg.FeedBaseURL, cfg.TraceURL, cfg.RequestsPerSecond)
	poller := NewPoller(client, cfg.Regions, cfg.PollInterval, cfg.RegionTimeout)

	if cfg.RequestsPerSecond > 0 {
		if drain := time.Duration(float64(len(cfg.Regions)) / cfg.RequestsPerSecond * float64(time.Second)); drain > cfg.PollInterval {
			log.Printf("[fleet] WARNING: FEED_RPS=%g needs %s per poll for %d regions, longer than POLL_INTERVAL=%s; ticks will be skipped",
				cfg.RequestsPerSecond, drain, len(cfg.Regions), cfg.PollInterval)
		}
	}

	log.Printf("[fleet] polling %d regions every %s (region timeout %s) from %s",
		len(cfg.Regions), cfg.PollInterval, cfg.RegionTimeout, cfg.FeedBaseURL)
	return client, poller, nil
}
