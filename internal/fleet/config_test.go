package fleet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"FEED_BASE_URL", "FEED_TRACE_URL", "POLL_INTERVAL", "REGION_TIMEOUT", "FEED_RPS", "REGIONS_FILE"} {
		t.Setenv(k, "")
	}

	cfg := LoadFromEnv()
	if cfg.FeedBaseURL != DefaultFeedBaseURL || cfg.PollInterval != 30*time.Second || cfg.RegionTimeout != 8*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Regions) != 16 {
		t.Errorf("expected 16 default regions, got %d", len(cfg.Regions))
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("FEED_BASE_URL", "http://feed.local/point/")
	t.Setenv("POLL_INTERVAL", "5s")
	t.Setenv("REGION_TIMEOUT", "nope")
	t.Setenv("FEED_RPS", "0")

	cfg := LoadFromEnv()
	if cfg.FeedBaseURL != "http://feed.local/point" {
		t.Errorf("base url: %q", cfg.FeedBaseURL)
	}
	if cfg.PollInterval != 5*time.Second || cfg.RegionTimeout != DefaultRegionTimeout {
		t.Errorf("durations: %v %v", cfg.PollInterval, cfg.RegionTimeout)
	}
	if cfg.RequestsPerSecond != 0 {
		t.Errorf("rps: %v", cfg.RequestsPerSecond)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{PollInterval: time.Second, RegionTimeout: time.Second}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingFeedURL) {
		t.Errorf("expected ErrMissingFeedURL, got %v", err)
	}
	cfg = Config{FeedBaseURL: "http://x"}
	if err := cfg.Validate(); !errors.Is(err, ErrBadInterval) {
		t.Errorf("expected ErrBadInterval, got %v", err)
	}
}

func TestLoadRegions(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "regions.yaml")
	if err := os.WriteFile(good, []byte(`- name: Alps
  lat: 46.5
  lon: 10
  radius_nm: 250
`), 0o644); err != nil {
		t.Fatal(err)
	}

	regions, err := LoadRegions(good)
	if err != nil {
		t.Fatalf("LoadRegions: %v", err)
	}
	if len(regions) != 1 || regions[0] != (Region{"Alps", 46.5, 10, 250}) {
		t.Errorf("unexpected regions: %+v", regions)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegions(empty); !errors.Is(err, ErrNoRegions) {
		t.Errorf("expected ErrNoRegions, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- name: X\n  lat: 0\n  lon: 0\n  radius_nm: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegions(bad); err == nil {
		t.Error("expected radius error")
	}
}
