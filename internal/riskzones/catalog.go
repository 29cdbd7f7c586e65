package riskzones

import (
	"os"
	"sync"
	"time"
)

const (
	displayBaseRadiusKM = 100.0
	displayRadiusOffset = 0.5
)

// DisplayRadiusKM is the radius the map draws for a zone: 100 km × (0.5 + intensity).
func DisplayRadiusKM(z RiskZone) float64 {
	return displayBaseRadiusKM * (displayRadiusOffset + z.RiskIntensity)
}

// Catalog serves the emitted artifacts. Reload swaps them atomically; readers never see
// a partial load.
type Catalog struct {
	zonesPath     string
	analyticsPath string

	mu        sync.RWMutex
	zones     []RiskZone
	analytics *Analytics
	loadedAt  time.Time
}

func NewCatalog(zonesPath, analyticsPath string) *Catalog {
	return &Catalog{zonesPath: zonesPath, analyticsPath: analyticsPath}
}

// Reload re-reads the artifacts. On error the previous contents are kept. Analytics are
// derived from the zones when no analytics file exists.
func (c *Catalog) Reload() error {
	zones, err := ReadZones(c.zonesPath)
	if err != nil {
		return err
	}

	var a Analytics
	if c.hasAnalyticsFile() {
		if err := readJSON(c.analyticsPath, &a); err != nil {
			return err
		}
	} else {
		a = Analyze(zones)
	}

	c.mu.Lock()
	c.zones = zones
	c.analytics = &a
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// Zones returns a copy of the loaded zones.
func (c *Catalog) Zones() []RiskZone {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]RiskZone(nil), c.zones...)
}

// Zone finds a zone by exact name.
func (c *Catalog) Zone(name string) (RiskZone, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, z := range c.zones {
		if z.Name == name {
			return z, true
		}
	}
	return RiskZone{}, false
}

func (c *Catalog) Analytics() (Analytics, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.analytics == nil {
		return Analytics{}, false
	}
	return *c.analytics, true
}

func (c *Catalog) hasAnalyticsFile() bool {
	if c.analyticsPath == "" {
		return false
	}
	_, err := os.Stat(c.analyticsPath)
	return err == nil
}

func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
