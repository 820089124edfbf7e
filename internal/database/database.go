package database

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"costpilot/server/internal/models"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// GetDB returns the underlying database connection
func (d *Database) GetDB() *sql.DB {
	return d.db
}

// MaterialByKey looks up a material by its stable mapping key. Returns
// (nil, nil) when no material carries the key.
func (d *Database) MaterialByKey(key string) (*models.Material, error) {
	query := `
        SELECT id, name, unit, category, spec, mapping_key
        FROM materials
        WHERE mapping_key = ?
    `
	var m models.Material
	var spec sql.NullString
	err := d.db.QueryRow(query, key).Scan(
		&m.ID,
		&m.Name,
		&m.Unit,
		&m.Category,
		&spec,
		&m.MappingKey,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if spec.Valid {
		m.Spec = spec.String
	}
	return &m, nil
}

// LatestPrice returns the most recent price observation for a material in a
// region, or (nil, nil) when the region has no observations for it.
func (d *Database) LatestPrice(materialID int64, region string) (*models.PriceObservation, error) {
	query := `
        SELECT id, material_id, region, observed_at, unit_price
        FROM price_observations
        WHERE material_id = ? AND region = ?
        ORDER BY observed_at DESC
        LIMIT 1
    `
	var p models.PriceObservation
	var observedAt string
	err := d.db.QueryRow(query, materialID, region).Scan(
		&p.ID,
		&p.MaterialID,
		&p.Region,
		&observedAt,
		&p.UnitPrice,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, observedAt); err == nil {
		p.ObservedAt = t
	}
	return &p, nil
}

// Seasonality returns the factor for a (material, month) pair, or (nil, nil)
// when no factor is recorded for that month.
func (d *Database) Seasonality(materialID int64, month int) (*models.SeasonalityFactor, error) {
	query := `
        SELECT id, material_id, month, factor
        FROM seasonality_factors
        WHERE material_id = ? AND month = ?
    `
	var s models.SeasonalityFactor
	err := d.db.QueryRow(query, materialID, month).Scan(
		&s.ID,
		&s.MaterialID,
		&s.Month,
		&s.Factor,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TopVendorOffers returns up to limit offers for a material, cheapest first.
// Price ties keep insertion order via the offer id.
func (d *Database) TopVendorOffers(materialID int64, limit int) ([]models.VendorOfferDetail, error) {
	query := `
        SELECT
            o.id,
            o.vendor_id,
            o.material_id,
            o.unit_price,
            o.stock_qty,
            o.lead_time_days,
            o.moq,
            COALESCE(o.tier_rules, '') as tier_rules,
            v.name,
            v.region,
            COALESCE(v.contacts, '{}') as contacts,
            v.reliability_score
        FROM vendor_offers o
        JOIN vendors v ON v.id = o.vendor_id
        WHERE o.material_id = ?
        ORDER BY o.unit_price ASC, o.id ASC
        LIMIT ?
    `
	rows, err := d.db.Query(query, materialID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []models.VendorOfferDetail
	for rows.Next() {
		var o models.VendorOfferDetail
		var contacts string
		err := rows.Scan(
			&o.ID,
			&o.VendorID,
			&o.MaterialID,
			&o.UnitPrice,
			&o.StockQty,
			&o.LeadTimeDays,
			&o.MOQ,
			&o.TierRules,
			&o.VendorName,
			&o.VendorRegion,
			&contacts,
			&o.ReliabilityScore,
		)
		if err != nil {
			return nil, err
		}
		o.VendorContacts = parseContacts(contacts)
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// ListMaterials returns the full material catalog.
func (d *Database) ListMaterials() ([]models.Material, error) {
	query := `
        SELECT id, name, unit, category, spec, mapping_key
        FROM materials
        ORDER BY id
    `
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var m models.Material
		var spec sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.Category, &spec, &m.MappingKey); err != nil {
			return nil, err
		}
		if spec.Valid {
			m.Spec = spec.String
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// ListVendors returns the vendor directory.
func (d *Database) ListVendors() ([]models.Vendor, error) {
	query := `
        SELECT id, name, region, COALESCE(contacts, '{}') as contacts, reliability_score
        FROM vendors
        ORDER BY id
    `
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		var contacts string
		if err := rows.Scan(&v.ID, &v.Name, &v.Region, &contacts, &v.ReliabilityScore); err != nil {
			return nil, err
		}
		v.Contacts = parseContacts(contacts)
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}

func parseContacts(raw string) map[string]string {
	contacts := map[string]string{}
	if raw == "" {
		return contacts
	}
	if err := json.Unmarshal([]byte(raw), &contacts); err != nil {
		return map[string]string{}
	}
	return contacts
}
