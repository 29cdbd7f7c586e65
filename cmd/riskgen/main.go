package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/SkyWatchOps/SW-Backend/internal/riskzones"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	var (
		csvPath     = flag.String("csv", "Airplane_Crashes_and_Fatalities_Since_1908.csv", "path to the historical crash CSV")
		outPath     = flag.String("out", "data/risk_zones.json", "risk zone output path")
		analytics   = flag.String("analytics", "", "optional advanced analytics output path")
		gazetteer   = flag.String("gazetteer", "", "optional gazetteer YAML (default: built-in table)")
		denominator = flag.Float64("intensity-denominator", riskzones.DefaultIntensityDenominator, "incident count at full risk intensity")
		top         = flag.Int("top", 0, "print the N most frequent raw crash locations")
		dbURL       = flag.String("db", "", "Postgres DSN to also store zones (default with -wipe: env DATABASE_URL)")
		namespace   = flag.String("namespace", os.Getenv("RISK_NAMESPACE"), "UUID namespace for zone ids (required with -db)")
		wipe        = flag.Bool("wipe", false, "DANGER: truncates risk tables before storing (required with -db)")
	)
	flag.Parse()

	cfg := riskzones.Config{
		CSVPath:       *csvPath,
		OutPath:       *outPath,
		AnalyticsPath: *analytics,
		GazetteerPath: *gazetteer,
		Denominator:   *denominator,
		TopN:          *top,
	}
	store, err := storeConfig(*dbURL, os.Getenv("DATABASE_URL"), *namespace, *wipe)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	cfg.Store = store

	res, err := riskzones.Run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if len(res.Top) > 0 {
		fmt.Printf("Top %d Crash Locations:\n", len(res.Top))
		for _, lc := range res.Top {
			fmt.Printf("%s: %d\n", lc.Location, lc.Count)
		}
	}
}

// storeConfig decides whether the run also writes to Postgres. -wipe opts in and picks up
// DATABASE_URL when -db is not given; -db without -wipe is rejected later by SaveZones.
func storeConfig(dbFlag, envDSN, namespace string, wipe bool) (*riskzones.StoreConfig, error) {
	dsn := dbFlag
	if dsn == "" && wipe {
		dsn = envDSN
	}
	if dsn == "" {
		if wipe {
			return nil, errors.New("-wipe given but neither -db nor DATABASE_URL is set")
		}
		return nil, nil
	}
	if namespace == "" {
		return nil, errors.New("-namespace (or RISK_NAMESPACE) is required when storing zones")
	}
	return &riskzones.StoreConfig{DatabaseURL: dsn, Namespace: namespace, Wipe: wipe}, nil
}
