package database

func (d *Database) RunMigrations() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS materials (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			unit TEXT NOT NULL,
			category TEXT NOT NULL,
			spec TEXT,
			mapping_key TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS price_observations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			material_id INTEGER NOT NULL REFERENCES materials(id),
			region TEXT NOT NULL,
			observed_at TEXT NOT NULL,
			unit_price REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS seasonality_factors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			material_id INTEGER NOT NULL REFERENCES materials(id),
			month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
			factor REAL NOT NULL,
			UNIQUE (material_id, month)
		);`,
		`CREATE TABLE IF NOT EXISTS vendors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			region TEXT NOT NULL,
			contacts TEXT,
			reliability_score REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS vendor_offers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			vendor_id INTEGER NOT NULL REFERENCES vendors(id),
			material_id INTEGER NOT NULL REFERENCES materials(id),
			unit_price REAL NOT NULL,
			stock_qty REAL NOT NULL CHECK (stock_qty >= 0),
			lead_time_days INTEGER NOT NULL,
			moq REAL NOT NULL,
			tier_rules TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_price_observations_lookup
			ON price_observations(material_id, region, observed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_seasonality_lookup
			ON seasonality_factors(material_id, month);`,
		`CREATE INDEX IF NOT EXISTS idx_vendor_offers_material
			ON vendor_offers(material_id, unit_price);`,
	}

	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
