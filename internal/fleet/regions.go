package fleet

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

var ErrNoRegions = errors.New("no regions configured")

// Region is a point query of the feed: everything within RadiusNM of (Lat, Lon).
type Region struct {
	Name     string  `yaml:"name" json:"name"`
	Lat      float64 `yaml:"lat" json:"lat"`
	Lon      float64 `yaml:"lon" json:"lon"`
	RadiusNM int     `yaml:"radius_nm" json:"radiusNm"`
}

const defaultRadiusNM = 1000

// DefaultRegions covers the major landmasses and air corridors.
func DefaultRegions() []Region {
	return []Region{
		{"US West", 38.0, -120.0, defaultRadiusNM},
		{"US Central", 40.0, -95.0, defaultRadiusNM},
		{"US East", 40.0, -75.0, defaultRadiusNM},
		{"SA North", 5.0, -70.0, defaultRadiusNM},
		{"SA South", -25.0, -60.0, defaultRadiusNM},
		{"Europe Central", 50.0, 10.0, defaultRadiusNM},
		{"North Africa / Med", 25.0, 15.0, defaultRadiusNM},
		{"West Africa", 5.0, 0.0, defaultRadiusNM},
		{"South Africa", -25.0, 25.0, defaultRadiusNM},
		{"East Africa", 0.0, 35.0, defaultRadiusNM},
		{"Middle East", 25.0, 55.0, defaultRadiusNM},
		{"India", 22.0, 79.0, defaultRadiusNM},
		{"SE Asia", 15.0, 100.0, defaultRadiusNM},
		{"East Asia", 35.0, 135.0, defaultRadiusNM},
		{"Australia", -25.0, 135.0, defaultRadiusNM},
		{"New Zealand", -40.0, 175.0, defaultRadiusNM},
	}
}

func validateRegions(regions []Region) error {
	if len(regions) == 0 {
		return ErrNoRegions
	}
	for i, r := range regions {
		if r.RadiusNM <= 0 {
			return fmt.Errorf("region %d (%s): radius_nm must be positive", i+1, r.Name)
		}
		if r.Lat < -90 || r.Lat > 90 || r.Lon < -180 || r.Lon > 180 {
			return fmt.Errorf("region %d (%s): coordinates out of range", i+1, r.Name)
		}
	}
	return nil
}

// LoadRegions reads a YAML list of regions.
func LoadRegions(path string) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading regions: %w", err)
	}
	var regions []Region
	if err := yaml.Unmarshal(data, &regions); err != nil {
		return nil, fmt.Errorf("parsing regions: %w", err)
	}
	if err := validateRegions(regions); err != nil {
		return nil, err
	}
	return regions, nil
}
