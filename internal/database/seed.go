package database

import (
	"encoding/json"
	"time"
)

type seedMaterial struct {
	name       string
	unit       string
	category   string
	spec       string
	mappingKey string
}

var seedMaterials = []seedMaterial{
	{"Concrete C30/37", "m³", "Concrete", "Standard structural concrete", "concrete_c30"},
	{"Steel Rebar B500C", "kg", "Steel", "High-yield deformed bars", "rebar_b500c"},
	{"Structural Steel S355", "kg", "Steel", "Hot-rolled structural steel", "steel_s355"},
	{"Cement CEM I 42.5", "t", "Cement", "Portland cement", "cement_42_5"},
	{"Bitumen 50/70", "t", "Bitumen", "Road construction bitumen", "bitumen_50_70"},
	{"Aggregate 0-32mm", "t", "Aggregate", "Mixed aggregate", "aggregate_mixed"},
	{"Formwork Plywood", "m²", "Formwork", "18mm marine plywood", "formwork_plywood"},
	{"Labor - Skilled", "hour", "Labor", "Skilled construction worker", "labor_skilled"},
	{"Labor - General", "hour", "Labor", "General construction worker", "labor_general"},
	{"Excavator Rental", "day", "Equipment", "20-ton excavator", "excavator_20t"},
}

var seedBasePrices = map[string]float64{
	"concrete_c30":     85.0,
	"rebar_b500c":      0.75,
	"steel_s355":       1.20,
	"cement_42_5":      120.0,
	"bitumen_50_70":    450.0,
	"aggregate_mixed":  25.0,
	"formwork_plywood": 35.0,
	"labor_skilled":    25.0,
	"labor_general":    18.0,
	"excavator_20t":    350.0,
}

var seedSeasonalPatterns = map[string][12]float64{
	"concrete_c30":     {1.05, 1.03, 1.00, 0.98, 0.95, 0.93, 0.95, 0.97, 1.00, 1.02, 1.05, 1.08},
	"rebar_b500c":      {1.08, 1.05, 1.02, 0.98, 0.95, 0.92, 0.95, 0.98, 1.02, 1.05, 1.08, 1.10},
	"steel_s355":       {1.10, 1.07, 1.03, 0.98, 0.94, 0.90, 0.93, 0.97, 1.02, 1.06, 1.10, 1.12},
	"cement_42_5":      {1.03, 1.02, 1.00, 0.99, 0.97, 0.95, 0.97, 0.99, 1.01, 1.02, 1.03, 1.04},
	"bitumen_50_70":    {1.15, 1.10, 1.05, 0.95, 0.85, 0.80, 0.85, 0.95, 1.05, 1.10, 1.15, 1.20},
	"aggregate_mixed":  {1.02, 1.01, 1.00, 0.99, 0.98, 0.97, 0.98, 0.99, 1.00, 1.01, 1.02, 1.03},
	"formwork_plywood": {1.05, 1.03, 1.01, 0.99, 0.97, 0.95, 0.97, 0.99, 1.01, 1.03, 1.05, 1.07},
	"labor_skilled":    {1.00, 1.00, 1.02, 1.05, 1.08, 1.10, 1.08, 1.05, 1.02, 1.00, 1.00, 1.00},
	"labor_general":    {1.00, 1.00, 1.02, 1.05, 1.08, 1.10, 1.08, 1.05, 1.02, 1.00, 1.00, 1.00},
	"excavator_20t":    {1.10, 1.08, 1.05, 1.02, 0.98, 0.95, 0.98, 1.02, 1.05, 1.08, 1.10, 1.12},
}

type seedVendor struct {
	name        string
	region      string
	contacts    map[string]string
	reliability float64
}

var seedVendors = []seedVendor{
	{
		name:        "Hellenic Concrete Co.",
		region:      "Athens",
		contacts:    map[string]string{"email": "sales@hellenic-concrete.gr", "phone": "+30 210 123 4567"},
		reliability: 4.5,
	},
	{
		name:        "Steel Masters SA",
		region:      "Thessaloniki",
		contacts:    map[string]string{"email": "orders@steelmasters.gr", "phone": "+30 231 987 6543"},
		reliability: 4.2,
	},
	{
		name:        "Mediterranean Aggregates",
		region:      "Patras",
		contacts:    map[string]string{"email": "info@med-aggregates.gr", "phone": "+30 261 555 0123"},
		reliability: 4.0,
	},
	{
		name:        "Athens Construction Supply",
		region:      "Athens",
		contacts:    map[string]string{"email": "supply@athens-construction.gr", "phone": "+30 210 888 9999"},
		reliability: 4.3,
	},
	{
		name:        "Northern Equipment Rental",
		region:      "Thessaloniki",
		contacts:    map[string]string{"email": "rentals@northern-equip.gr", "phone": "+30 231 444 5555"},
		reliability: 4.1,
	},
}

type seedOffer struct {
	vendorKey    string
	materialKey  string
	unitPrice    float64
	stockQty     float64
	leadTimeDays int
	moq          float64
}

var seedOffers = []seedOffer{
	{"Hellenic Concrete Co.", "concrete_c30", 82.0, 1000, 3, 10},
	{"Hellenic Concrete Co.", "cement_42_5", 115.0, 500, 7, 5},
	{"Steel Masters SA", "rebar_b500c", 0.72, 50000, 14, 1000},
	{"Steel Masters SA", "steel_s355", 1.15, 25000, 21, 500},
	{"Mediterranean Aggregates", "aggregate_mixed", 23.0, 2000, 2, 20},
	{"Mediterranean Aggregates", "bitumen_50_70", 440.0, 100, 10, 2},
	{"Athens Construction Supply", "formwork_plywood", 33.0, 800, 5, 50},
	{"Athens Construction Supply", "labor_skilled", 24.0, 0, 1, 8},
	{"Northern Equipment Rental", "excavator_20t", 340.0, 5, 1, 1},
	{"Northern Equipment Rental", "labor_general", 17.0, 0, 1, 8},
}

// Seed fills an empty database with the demo pricing dataset: the material
// catalog, two years of monthly price observations per material, seasonality
// patterns, vendors and their offers. A database that already has materials
// is left untouched.
func (d *Database) Seed(region string) error {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM materials").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	materialIDs := make(map[string]int64, len(seedMaterials))
	for _, m := range seedMaterials {
		res, err := tx.Exec(
			"INSERT INTO materials (name, unit, category, spec, mapping_key) VALUES (?, ?, ?, ?, ?)",
			m.name, m.unit, m.category, m.spec, m.mappingKey,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		materialIDs[m.mappingKey] = id
	}

	// Monthly observations over the last 24 months with a mild seasonal
	// variation around the base price.
	baseDate := time.Now().UTC().AddDate(0, 0, -730)
	for key, id := range materialIDs {
		basePrice, ok := seedBasePrices[key]
		if !ok {
			basePrice = 100.0
		}
		for i := 0; i < 24; i++ {
			observedAt := baseDate.AddDate(0, 0, i*30)
			variation := 1.0 + float64(i%12-6)*0.025
			_, err := tx.Exec(
				"INSERT INTO price_observations (material_id, region, observed_at, unit_price) VALUES (?, ?, ?, ?)",
				id, region, observedAt.Format(time.RFC3339), basePrice*variation,
			)
			if err != nil {
				return err
			}
		}
	}

	for key, id := range materialIDs {
		factors, ok := seedSeasonalPatterns[key]
		if !ok {
			factors = [12]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
		}
		for month := 1; month <= 12; month++ {
			_, err := tx.Exec(
				"INSERT INTO seasonality_factors (material_id, month, factor) VALUES (?, ?, ?)",
				id, month, factors[month-1],
			)
			if err != nil {
				return err
			}
		}
	}

	vendorIDs := make(map[string]int64, len(seedVendors))
	for _, v := range seedVendors {
		contacts, err := json.Marshal(v.contacts)
		if err != nil {
			return err
		}
		res, err := tx.Exec(
			"INSERT INTO vendors (name, region, contacts, reliability_score) VALUES (?, ?, ?, ?)",
			v.name, v.region, string(contacts), v.reliability,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		vendorIDs[v.name] = id
	}

	for _, o := range seedOffers {
		_, err := tx.Exec(
			"INSERT INTO vendor_offers (vendor_id, material_id, unit_price, stock_qty, lead_time_days, moq, tier_rules) VALUES (?, ?, ?, ?, ?, ?, ?)",
			vendorIDs[o.vendorKey], materialIDs[o.materialKey], o.unitPrice, o.stockQty, o.leadTimeDays, o.moq, "{}",
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
