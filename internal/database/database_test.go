package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "pricing_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())
	require.NoError(t, db.Seed("Greece"))
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDatabase(t)

	require.NoError(t, db.Seed("Greece"))

	materials, err := db.ListMaterials()
	require.NoError(t, err)
	assert.Len(t, materials, 10)
}

func TestMaterialByKey(t *testing.T) {
	db := newTestDatabase(t)

	m, err := db.MaterialByKey("concrete_c30")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Concrete C30/37", m.Name)
	assert.Equal(t, "m³", m.Unit)
	assert.Equal(t, "Concrete", m.Category)
	assert.Equal(t, "concrete_c30", m.MappingKey)

	missing, err := db.MaterialByKey("unobtainium")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLatestPrice(t *testing.T) {
	db := newTestDatabase(t)

	m, err := db.MaterialByKey("concrete_c30")
	require.NoError(t, err)
	require.NotNil(t, m)

	p, err := db.LatestPrice(m.ID, "Greece")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, m.ID, p.MaterialID)
	assert.Equal(t, "Greece", p.Region)
	// 24 monthly observations; the newest carries the largest variation.
	assert.InDelta(t, 85.0*1.125, p.UnitPrice, 1e-9)
	assert.False(t, p.ObservedAt.IsZero())

	none, err := db.LatestPrice(m.ID, "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSeasonality(t *testing.T) {
	db := newTestDatabase(t)

	m, err := db.MaterialByKey("concrete_c30")
	require.NoError(t, err)
	require.NotNil(t, m)

	jan, err := db.Seasonality(m.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, jan)
	assert.Equal(t, 1.05, jan.Factor)

	jun, err := db.Seasonality(m.ID, 6)
	require.NoError(t, err)
	require.NotNil(t, jun)
	assert.Equal(t, 0.93, jun.Factor)

	none, err := db.Seasonality(m.ID, 13)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestTopVendorOffersRanking(t *testing.T) {
	db := newTestDatabase(t)

	res, err := db.GetDB().Exec(
		"INSERT INTO materials (name, unit, category, spec, mapping_key) VALUES (?, ?, ?, ?, ?)",
		"Gravel 16-32mm", "t", "Aggregate", "", "gravel_16_32",
	)
	require.NoError(t, err)
	materialID, err := res.LastInsertId()
	require.NoError(t, err)

	for _, price := range []float64{82, 85, 90, 70} {
		_, err := db.GetDB().Exec(
			"INSERT INTO vendor_offers (vendor_id, material_id, unit_price, stock_qty, lead_time_days, moq, tier_rules) VALUES (?, ?, ?, ?, ?, ?, ?)",
			1, materialID, price, 100, 5, 1, "{}",
		)
		require.NoError(t, err)
	}

	offers, err := db.TopVendorOffers(materialID, 3)
	require.NoError(t, err)
	require.Len(t, offers, 3)

	assert.Equal(t, 70.0, offers[0].UnitPrice)
	assert.Equal(t, 82.0, offers[1].UnitPrice)
	assert.Equal(t, 85.0, offers[2].UnitPrice)
	assert.Equal(t, "Hellenic Concrete Co.", offers[0].VendorName)
	assert.Equal(t, "Athens", offers[0].VendorRegion)
	assert.Equal(t, "sales@hellenic-concrete.gr", offers[0].VendorContacts["email"])
}

func TestTopVendorOffersTieBreaksOnOfferID(t *testing.T) {
	db := newTestDatabase(t)

	res, err := db.GetDB().Exec(
		"INSERT INTO materials (name, unit, category, spec, mapping_key) VALUES (?, ?, ?, ?, ?)",
		"Sand 0-4mm", "t", "Aggregate", "", "sand_0_4",
	)
	require.NoError(t, err)
	materialID, err := res.LastInsertId()
	require.NoError(t, err)

	for _, vendorID := range []int64{2, 1} {
		_, err := db.GetDB().Exec(
			"INSERT INTO vendor_offers (vendor_id, material_id, unit_price, stock_qty, lead_time_days, moq, tier_rules) VALUES (?, ?, ?, ?, ?, ?, ?)",
			vendorID, materialID, 40.0, 100, 5, 1, "{}",
		)
		require.NoError(t, err)
	}

	offers, err := db.TopVendorOffers(materialID, 3)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	// Equal prices keep insertion order.
	assert.Equal(t, "Steel Masters SA", offers[0].VendorName)
	assert.Equal(t, "Hellenic Concrete Co.", offers[1].VendorName)
}

func TestTopVendorOffersEmpty(t *testing.T) {
	db := newTestDatabase(t)

	offers, err := db.TopVendorOffers(99999, 3)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestListMaterials(t *testing.T) {
	db := newTestDatabase(t)

	materials, err := db.ListMaterials()
	require.NoError(t, err)
	require.Len(t, materials, 10)

	keys := make([]string, 0, len(materials))
	for _, m := range materials {
		keys = append(keys, m.MappingKey)
	}
	assert.Contains(t, keys, "concrete_c30")
	assert.Contains(t, keys, "excavator_20t")
}

func TestListVendors(t *testing.T) {
	db := newTestDatabase(t)

	vendors, err := db.ListVendors()
	require.NoError(t, err)
	require.Len(t, vendors, 5)

	assert.Equal(t, "Hellenic Concrete Co.", vendors[0].Name)
	assert.Equal(t, "Athens", vendors[0].Region)
	assert.Equal(t, 4.5, vendors[0].ReliabilityScore)
	assert.Equal(t, "sales@hellenic-concrete.gr", vendors[0].Contacts["email"])
}
