// Package engine implements the cost estimation pipeline: template
// resolution, price derivation, vendor ranking and aggregation.
package engine

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"costpilot/server/config"
	"costpilot/server/internal/models"
	"costpilot/server/internal/templates"
)

// PricingSource is the read-only query surface the engine needs from the
// pricing dataset. Lookups that can legitimately come up empty return
// (nil, nil); an error always means the dataset itself failed.
type PricingSource interface {
	MaterialByKey(key string) (*models.Material, error)
	LatestPrice(materialID int64, region string) (*models.PriceObservation, error)
	Seasonality(materialID int64, month int) (*models.SeasonalityFactor, error)
	TopVendorOffers(materialID int64, limit int) ([]models.VendorOfferDetail, error)
}

const (
	topOffersPerMaterial = 3
	topCostDrivers       = 5
	costDriverShare      = 0.10
	bandSpread           = 0.15
)

// Estimator turns an estimate request into a full priced result. It is
// stateless apart from its read-only collaborators, so a single instance
// serves concurrent requests.
type Estimator struct {
	source    PricingSource
	registry  *templates.Registry
	locations *config.LocationFactors
	region    string
	logger    *logrus.Logger
}

func NewEstimator(source PricingSource, registry *templates.Registry, locations *config.LocationFactors, region string, logger *logrus.Logger) *Estimator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Estimator{
		source:    source,
		registry:  registry,
		locations: locations,
		region:    region,
		logger:    logger,
	}
}

// Generate computes the estimate for a request. An unknown project type is
// the only client-level failure; materials missing from the dataset or
// lacking price observations are skipped and reported in SkippedMaterials.
//
// Cost drivers are selected against the final total: a line qualifies when
// its cost exceeds 10% of the whole estimate.
func (e *Estimator) Generate(req models.EstimateRequest) (*models.EstimateResult, error) {
	lines, err := e.registry.Resolve(req.ProjectType)
	if err != nil {
		return nil, err
	}

	locationFactor := e.locations.FactorFor(req.Location)

	result := &models.EstimateResult{
		BoQItems:              []models.BoQLine{},
		VendorRecommendations: map[string][]models.VendorRecommendation{},
		SeasonalChartData:     []models.SeasonalPoint{},
		CostDrivers:           []models.CostDriver{},
		SkippedMaterials:      []string{},
	}

	// Raw line costs in template order, for driver selection after the
	// final total is known.
	type lineCost struct {
		material string
		cost     float64
	}
	var lineCosts []lineCost
	var totalCost float64

	for _, line := range lines {
		material, err := e.source.MaterialByKey(line.MappingKey)
		if err != nil {
			return nil, fmt.Errorf("material lookup for %q: %w", line.MappingKey, err)
		}
		if material == nil {
			e.logger.WithField("mapping_key", line.MappingKey).Warn("Template references unknown material, skipping line")
			result.SkippedMaterials = append(result.SkippedMaterials, line.MappingKey)
			continue
		}

		quantity := line.Quantity(req.Size)

		latest, err := e.source.LatestPrice(material.ID, e.region)
		if err != nil {
			return nil, fmt.Errorf("price lookup for %q: %w", line.MappingKey, err)
		}
		if latest == nil {
			e.logger.WithFields(logrus.Fields{
				"mapping_key": line.MappingKey,
				"region":      e.region,
			}).Warn("No price observation for material, skipping line")
			result.SkippedMaterials = append(result.SkippedMaterials, line.MappingKey)
			continue
		}
		basePrice := latest.UnitPrice

		seasonalFactor := 1.0
		if sf, err := e.source.Seasonality(material.ID, req.StartMonth); err != nil {
			return nil, fmt.Errorf("seasonality lookup for %q: %w", line.MappingKey, err)
		} else if sf != nil {
			seasonalFactor = sf.Factor
		}

		unitPrice := basePrice * seasonalFactor * locationFactor
		lineTotal := quantity * unitPrice
		totalCost += lineTotal
		lineCosts = append(lineCosts, lineCost{material: material.Name, cost: lineTotal})

		result.BoQItems = append(result.BoQItems, models.BoQLine{
			MaterialName:   material.Name,
			Quantity:       round2(quantity),
			Unit:           material.Unit,
			UnitPrice:      round2(unitPrice),
			TotalPrice:     round2(lineTotal),
			SeasonalFactor: round3(seasonalFactor),
			ConfidenceBand: bandFor(unitPrice),
		})

		recs, err := e.recommendVendors(material.ID, quantity)
		if err != nil {
			return nil, fmt.Errorf("vendor lookup for %q: %w", line.MappingKey, err)
		}
		result.VendorRecommendations[material.Name] = recs

		curve, err := e.seasonalCurve(material, basePrice)
		if err != nil {
			return nil, fmt.Errorf("seasonal curve for %q: %w", line.MappingKey, err)
		}
		result.SeasonalChartData = append(result.SeasonalChartData, curve...)
	}

	if totalCost > 0 {
		threshold := totalCost * costDriverShare
		for _, lc := range lineCosts {
			if lc.cost > threshold {
				result.CostDrivers = append(result.CostDrivers, models.CostDriver{
					Material:   lc.material,
					Cost:       lc.cost,
					Percentage: lc.cost / totalCost * 100,
				})
			}
		}
		// Stable sort keeps template order for equal costs.
		sort.SliceStable(result.CostDrivers, func(i, j int) bool {
			return result.CostDrivers[i].Cost > result.CostDrivers[j].Cost
		})
		if len(result.CostDrivers) > topCostDrivers {
			result.CostDrivers = result.CostDrivers[:topCostDrivers]
		}
	}

	result.TotalCost = round2(totalCost)
	result.ConfidenceBands = bandFor(totalCost)
	result.Assumptions = buildAssumptions(req)

	return result, nil
}

func (e *Estimator) recommendVendors(materialID int64, requiredQty float64) ([]models.VendorRecommendation, error) {
	offers, err := e.source.TopVendorOffers(materialID, topOffersPerMaterial)
	if err != nil {
		return nil, err
	}

	recs := make([]models.VendorRecommendation, 0, len(offers))
	for _, offer := range offers {
		recs = append(recs, models.VendorRecommendation{
			VendorName:   offer.VendorName,
			Location:     offer.VendorRegion,
			Price:        offer.UnitPrice,
			StockStatus:  stockStatus(offer.StockQty, requiredQty),
			LeadTimeDays: offer.LeadTimeDays,
			MOQ:          offer.MOQ,
			Contact:      contactEmail(offer.VendorContacts),
		})
	}
	return recs, nil
}

func (e *Estimator) seasonalCurve(material *models.Material, basePrice float64) ([]models.SeasonalPoint, error) {
	points := make([]models.SeasonalPoint, 0, 12)
	for month := 1; month <= 12; month++ {
		factor := 1.0
		sf, err := e.source.Seasonality(material.ID, month)
		if err != nil {
			return nil, err
		}
		if sf != nil {
			factor = sf.Factor
		}
		points = append(points, models.SeasonalPoint{
			Month:       month,
			Material:    material.Name,
			PriceFactor: factor,
			Price:       basePrice * factor,
		})
	}
	return points, nil
}

func stockStatus(stockQty, requiredQty float64) string {
	switch {
	case stockQty == 0:
		return "Out of Stock"
	case stockQty < requiredQty:
		return "Limited Stock"
	default:
		return "In Stock"
	}
}

func contactEmail(contacts map[string]string) string {
	if email, ok := contacts["email"]; ok && email != "" {
		return email
	}
	return "N/A"
}

func bandFor(price float64) models.ConfidenceBand {
	return models.ConfidenceBand{
		P25: price * (1 - bandSpread),
		P50: price,
		P75: price * (1 + bandSpread),
	}
}

func buildAssumptions(req models.EstimateRequest) []string {
	return []string{
		fmt.Sprintf("Project location: %s", req.Location),
		fmt.Sprintf("Start month: %d", req.StartMonth),
		fmt.Sprintf("Duration: %d months", req.DurationMonths),
		fmt.Sprintf("Size: %g %s", req.Size, req.SizeUnit),
		"Prices based on latest market data",
		"Seasonal adjustments applied",
		"Regional factors included",
		"VAT not included",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
