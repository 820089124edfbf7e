package models

import "time"

// Material is one entry in the material catalog. MappingKey is the stable
// string key templates use to reference it; unique and immutable once created.
type Material struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Category   string `json:"category"`
	Spec       string `json:"spec"`
	MappingKey string `json:"mapping_key"`
}

// PriceObservation is a single (material, region, time) price point. The
// engine always works off the most recent observation per region.
type PriceObservation struct {
	ID         int64     `json:"id"`
	MaterialID int64     `json:"material_id"`
	Region     string    `json:"region"`
	ObservedAt time.Time `json:"observed_at"`
	UnitPrice  float64   `json:"unit_price"`
}

// SeasonalityFactor is the multiplicative price adjustment for one calendar
// month (1-12), keyed by month independent of year.
type SeasonalityFactor struct {
	ID         int64   `json:"id"`
	MaterialID int64   `json:"material_id"`
	Month      int     `json:"month"`
	Factor     float64 `json:"factor"`
}

type Vendor struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Region           string            `json:"region"`
	Contacts         map[string]string `json:"contacts"`
	ReliabilityScore float64           `json:"reliability_score"`
}

// VendorOffer is one vendor's offer for a material. StockQty is never
// negative. TierRules is stored but not yet consumed by pricing.
type VendorOffer struct {
	ID           int64   `json:"id"`
	VendorID     int64   `json:"vendor_id"`
	MaterialID   int64   `json:"material_id"`
	UnitPrice    float64 `json:"unit_price"`
	StockQty     float64 `json:"stock_qty"`
	LeadTimeDays int     `json:"lead_time_days"`
	MOQ          float64 `json:"moq"`
	TierRules    string  `json:"tier_rules"`
}

// VendorOfferDetail is a VendorOffer joined with its vendor, as returned by
// the ranked offer query.
type VendorOfferDetail struct {
	VendorOffer
	VendorName       string            `json:"vendor_name"`
	VendorRegion     string            `json:"vendor_region"`
	VendorContacts   map[string]string `json:"vendor_contacts"`
	ReliabilityScore float64           `json:"reliability_score"`
}
