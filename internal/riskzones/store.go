package riskzones

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SkyWatchOps/SW-Backend/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const incidentBatchSize = 500

var ErrWipeRequired = errors.New("refusing to save: set Wipe=true (this replaces all risk tables)")

// StoreConfig points the sink at a database. Namespace must stay stable across imports.
type StoreConfig struct {
	DatabaseURL string
	Namespace   string
	Wipe        bool
}

// SaveZones replaces the contents of the risk schema with zones in one transaction.
func SaveZones(cfg StoreConfig, zones []RiskZone, rules CauseRules) error {
	if !cfg.Wipe {
		return ErrWipeRequired
	}

	ns, err := uuid.Parse(cfg.Namespace)
	if err != nil {
		return fmt.Errorf("invalid namespace uuid: %w", err)
	}

	d, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(d); cerr != nil {
			log.Printf("[riskgen] closing database: %v", cerr)
		}
	}()
	if err := db.EnsureSchema(d, schemaName); err != nil {
		return fmt.Errorf("ensure schema %s: %w", schemaName, err)
	}
	if err := d.AutoMigrate(&ZoneRow{}, &ZoneCauseRow{}, &IncidentRow{}); err != nil {
		return fmt.Errorf("migrate risk tables: %w", err)
	}

	zr, cr, ir := toRows(ns, zones, rules)
	start := time.Now()

	err = d.Transaction(func(tx *gorm.DB) error {
		if err := wipeRisk(tx); err != nil {
			return fmt.Errorf("truncate risk tables: %w", err)
		}
		if len(zr) == 0 {
			return nil
		}
		if err := tx.Create(&zr).Error; err != nil {
			return fmt.Errorf("insert zones: %w", err)
		}
		if len(cr) > 0 {
			if err := tx.Create(&cr).Error; err != nil {
				return fmt.Errorf("insert zone_causes: %w", err)
			}
		}
		if len(ir) > 0 {
			if err := tx.CreateInBatches(&ir, incidentBatchSize).Error; err != nil {
				return fmt.Errorf("insert zone_incidents: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[riskgen] stored %d zones, %d causes, %d incidents in %dms",
		len(zr), len(cr), len(ir), time.Since(start).Milliseconds())
	return nil
}

func wipeRisk(tx *gorm.DB) error {
	return tx.Exec(`TRUNCATE TABLE risk.zone_incidents, risk.zone_causes, risk.zones`).Error
}
