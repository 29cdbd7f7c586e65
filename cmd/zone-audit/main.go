package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

var (
	dsn  = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL)")
	topN = flag.Int("top", 10, "number of zones to list")
)

type Counts struct {
	Zones     int64
	Causes    int64
	Incidents int64
	Counted   int64 // sum of zones.incident_count
}

type zoneLine struct {
	Name          string
	IncidentCount int
	Fatalities    int
	PrimaryCause  string
	Intensity     float64
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	c, err := countAll(ctx, db)
	if err != nil {
		fatalf("count: %v", err)
	}
	fmt.Printf("zones=%d zone_causes=%d zone_incidents=%d\n", c.Zones, c.Causes, c.Incidents)

	// every stored sample belongs to exactly one counted incident
	if c.Counted != c.Incidents {
		fatalf("sanity check failed: sum(incident_count)=%d zone_incidents=%d", c.Counted, c.Incidents)
	}

	zones, err := topZones(ctx, db, *topN)
	if err != nil {
		fatalf("list zones: %v", err)
	}
	for _, z := range zones {
		fmt.Printf("  %-28s incidents=%-4d fatalities=%-5d intensity=%.3f cause=%s\n",
			z.Name, z.IncidentCount, z.Fatalities, z.Intensity, z.PrimaryCause)
	}
	fmt.Println("Audit complete")
}

func countAll(ctx context.Context, db *sql.DB) (Counts, error) {
	var c Counts
	if err := db.QueryRowContext(ctx, `SELECT count(*), coalesce(sum(incident_count), 0) FROM risk.zones`).Scan(&c.Zones, &c.Counted); err != nil {
		return c, err
	}
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM risk.zone_causes`).Scan(&c.Causes); err != nil {
		return c, err
	}
	if err := db.QueryRowContext(ctx, `SELECT count(*) FROM risk.zone_incidents`).Scan(&c.Incidents); err != nil {
		return c, err
	}
	return c, nil
}

func topZones(ctx context.Context, db *sql.DB, n int) ([]zoneLine, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name, incident_count, total_fatalities, primary_cause, risk_intensity
		FROM risk.zones
		ORDER BY incident_count DESC, name
		LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []zoneLine
	for rows.Next() {
		var z zoneLine
		if err := rows.Scan(&z.Name, &z.IncidentCount, &z.Fatalities, &z.PrimaryCause, &z.Intensity); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
