package models

import "time"

// EstimateRequest is the caller-supplied project description. The optional
// refinement fields are accepted and snapshotted but not consumed by the
// current template formulas.
type EstimateRequest struct {
	ProjectType    string  `json:"project_type" binding:"required"`
	Location       string  `json:"location" binding:"required"`
	Size           float64 `json:"size" binding:"required,gt=0"`
	SizeUnit       string  `json:"size_unit"`
	StartMonth     int     `json:"start_month" binding:"required,min=1,max=12"`
	DurationMonths int     `json:"duration_months" binding:"required,min=1"`

	StructuralClass  string   `json:"structural_class,omitempty"`
	StarRating       int      `json:"star_rating,omitempty"`
	StoreyCount      int      `json:"storey_count,omitempty"`
	FacadeType       string   `json:"facade_type,omitempty"`
	ConcreteClass    string   `json:"concrete_class,omitempty"`
	RebarGrade       string   `json:"rebar_grade,omitempty"`
	EarthworksVolume float64  `json:"earthworks_volume,omitempty"`
	PreferredVendors []string `json:"preferred_vendors,omitempty"`
}

// ConfidenceBand is the optimistic/expected/conservative price triple. It is
// a fixed ±15% heuristic spread, not a statistical percentile.
type ConfidenceBand struct {
	P25 float64 `json:"P25"`
	P50 float64 `json:"P50"`
	P75 float64 `json:"P75"`
}

type BoQLine struct {
	MaterialName   string         `json:"material_name"`
	Quantity       float64        `json:"quantity"`
	Unit           string         `json:"unit"`
	UnitPrice      float64        `json:"unit_price"`
	TotalPrice     float64        `json:"total_price"`
	SeasonalFactor float64        `json:"seasonal_factor"`
	ConfidenceBand ConfidenceBand `json:"confidence_band"`
}

type VendorRecommendation struct {
	VendorName   string  `json:"vendor_name"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	StockStatus  string  `json:"stock_status"`
	LeadTimeDays int     `json:"lead_time_days"`
	MOQ          float64 `json:"moq"`
	Contact      string  `json:"contact"`
}

// SeasonalPoint is one point of the per-material 12-month price curve used
// for charting. Price is base price times the month's factor, independent of
// the requested start month.
type SeasonalPoint struct {
	Month       int     `json:"month"`
	Material    string  `json:"material"`
	PriceFactor float64 `json:"price_factor"`
	Price       float64 `json:"price"`
}

type CostDriver struct {
	Material   string  `json:"material"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

// EstimateResult is the full computed output of one engine run.
// SkippedMaterials lists template mapping keys that were dropped because the
// dataset had no matching material or no price observation.
type EstimateResult struct {
	BoQItems              []BoQLine                         `json:"boq_items"`
	TotalCost             float64                           `json:"total_cost"`
	ConfidenceBands       ConfidenceBand                    `json:"confidence_bands"`
	VendorRecommendations map[string][]VendorRecommendation `json:"vendor_recommendations"`
	SeasonalChartData     []SeasonalPoint                   `json:"seasonal_chart_data"`
	Assumptions           []string                          `json:"assumptions"`
	CostDrivers           []CostDriver                      `json:"cost_drivers"`
	SkippedMaterials      []string                          `json:"skipped_materials"`
}

// Estimate is the persisted artifact: the request snapshot plus the computed
// result, immutable after creation.
type Estimate struct {
	ID        string          `json:"id"`
	Request   EstimateRequest `json:"request"`
	Result    EstimateResult  `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

// EstimateResponse is what the API returns for a created or fetched estimate.
type EstimateResponse struct {
	ID string `json:"id"`
	EstimateResult
	CreatedAt time.Time `json:"created_at"`
}
