package riskzones

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const schemaName = "risk"

type ZoneRow struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;column:id"`
	Name            string         `gorm:"uniqueIndex;column:name"`
	Latitude        float64        `gorm:"column:latitude"`
	Longitude       float64        `gorm:"column:longitude"`
	IncidentCount   int            `gorm:"column:incident_count"`
	TotalFatalities int            `gorm:"column:total_fatalities"`
	PrimaryCause    string         `gorm:"column:primary_cause"`
	RiskIntensity   float64        `gorm:"column:risk_intensity"`
	Description     string         `gorm:"column:description"`
	Causes          pq.StringArray `gorm:"type:text[];column:causes"`
}

func (ZoneRow) TableName() string { return "risk.zones" }

type ZoneCauseRow struct {
	ZoneID uuid.UUID `gorm:"type:uuid;primaryKey;column:zone_id"`
	Cause  string    `gorm:"primaryKey;column:cause"`
	Count  int       `gorm:"column:count"`
}

func (ZoneCauseRow) TableName() string { return "risk.zone_causes" }

type IncidentRow struct {
	ID         string    `gorm:"primaryKey;column:id"`
	ZoneID     uuid.UUID `gorm:"type:uuid;index;column:zone_id"`
	Seq        int       `gorm:"column:seq"`
	Date       string    `gorm:"column:date"`
	Operator   string    `gorm:"column:operator"`
	Fatalities int       `gorm:"column:fatalities"`
	Summary    string    `gorm:"column:summary"`
}

func (IncidentRow) TableName() string { return "risk.zone_incidents" }

func v5(ns uuid.UUID, name string) uuid.UUID {
	return uuid.NewSHA1(ns, []byte(name))
}

// ZoneID is stable for a given namespace and zone name, so re-imports keep ids.
func ZoneID(ns uuid.UUID, name string) uuid.UUID {
	return v5(ns, "zone:"+name)
}

func IncidentID(ns uuid.UUID, zoneID uuid.UUID, seq int) string {
	return v5(ns, fmt.Sprintf("incident:%s:%d", zoneID.String(), seq)).String()
}

// toRows flattens zones into table rows. Cause labels follow rule order.
func toRows(ns uuid.UUID, zones []RiskZone, rules CauseRules) ([]ZoneRow, []ZoneCauseRow, []IncidentRow) {
	var (
		zr []ZoneRow
		cr []ZoneCauseRow
		ir []IncidentRow
	)
	for _, z := range zones {
		id := ZoneID(ns, z.Name)

		var labels []string
		for _, rule := range rules {
			n := z.CauseCounts[rule.Cause]
			if n == 0 {
				continue
			}
			labels = append(labels, string(rule.Cause))
			cr = append(cr, ZoneCauseRow{ZoneID: id, Cause: string(rule.Cause), Count: n})
		}

		zr = append(zr, ZoneRow{
			ID:              id,
			Name:            z.Name,
			Latitude:        z.Latitude,
			Longitude:       z.Longitude,
			IncidentCount:   z.IncidentCount,
			TotalFatalities: z.TotalFatalities,
			PrimaryCause:    string(z.PrimaryCause),
			RiskIntensity:   z.RiskIntensity,
			Description:     z.Description,
			Causes:          pq.StringArray(labels),
		})

		for i, s := range z.IncidentSamples {
			ir = append(ir, IncidentRow{
				ID:         IncidentID(ns, id, i+1),
				ZoneID:     id,
				Seq:        i + 1,
				Date:       s.Date,
				Operator:   s.Operator,
				Fatalities: s.Fatalities,
				Summary:    s.Summary,
			})
		}
	}
	return zr, cr, ir
}
