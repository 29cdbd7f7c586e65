package fleet

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// RegionFetcher fetches the raw aircraft of a single region.
type RegionFetcher interface {
	FetchRegion(ctx context.Context, r Region) ([]RawAircraft, error)
}

// Pacer gates outbound requests. Time spent in Wait is not charged to a region's timeout.
type Pacer interface {
	Wait(ctx context.Context) error
}

// GatherReport describes one fan-out.
type GatherReport struct {
	Regions int      `json:"regions"`
	Failed  []string `json:"failedRegions"`
	Raw     int      `json:"rawAircraft"`
}

// AllFailed reports whether no region answered.
func (r GatherReport) AllFailed() bool {
	return r.Regions > 0 && len(r.Failed) == r.Regions
}

// Gather queries every region concurrently, each under its own timeout, and concatenates
// the results in region order. A failed or timed-out region contributes nothing.
// If f is also a Pacer, each region waits for its turn on ctx before its timeout starts.
func Gather(ctx context.Context, f RegionFetcher, regions []Region, timeout time.Duration) ([]RawAircraft, GatherReport) {
	results := make([][]RawAircraft, len(regions))
	errs := make([]error, len(regions))
	pacer, _ := f.(Pacer)

	var g errgroup.Group
	for i, r := range regions {
		i, r := i, r
		g.Go(func() error {
			if pacer != nil {
				if err := pacer.Wait(ctx); err != nil {
					errs[i] = err
					return nil
				}
			}

			rctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			ac, err := f.FetchRegion(rctx, r)
			if err != nil {
				errs[i] = err
				return nil
			}
			results[i] = ac
			return nil
		})
	}
	_ = g.Wait()

	report := GatherReport{Regions: len(regions)}
	var all []RawAircraft
	for i, r := range regions {
		if errs[i] != nil {
			LogError("region "+r.Name, errs[i])
			report.Failed = append(report.Failed, r.Name)
			continue
		}
		all = append(all, results[i]...)
	}
	report.Raw = len(all)
	return all, report
}
