package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"costpilot/server/internal/boqimport"
	"costpilot/server/internal/database"
	"costpilot/server/internal/engine"
	"costpilot/server/internal/models"
	"costpilot/server/internal/reports"
	"costpilot/server/internal/store"
	"costpilot/server/internal/templates"
)

type Handler struct {
	db        *database.Database
	estimates *store.EstimateStore
	estimator *engine.Estimator
	logger    *logrus.Logger
}

func NewHandler(db *database.Database, estimates *store.EstimateStore, estimator *engine.Estimator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:        db,
		estimates: estimates,
		estimator: estimator,
		logger:    logger,
	}
}

// CreateEstimate runs the estimation engine for a request, persists the
// result and returns it together with the generated id.
func (h *Handler) CreateEstimate(c *gin.Context) {
	var req models.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse estimate request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	result, err := h.estimator.Generate(req)
	if err != nil {
		if errors.Is(err, templates.ErrUnknownProjectType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to generate estimate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate estimate"})
		return
	}

	estimate, err := h.estimates.SaveEstimate(req, *result)
	if err != nil {
		h.logger.WithError(err).Error("Failed to store estimate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store estimate"})
		return
	}

	c.JSON(http.StatusOK, models.EstimateResponse{
		ID:             estimate.ID,
		EstimateResult: estimate.Result,
		CreatedAt:      estimate.CreatedAt,
	})
}

// GetEstimate returns a previously stored estimate.
func (h *Handler) GetEstimate(c *gin.Context) {
	estimate, ok := h.loadEstimate(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.EstimateResponse{
		ID:             estimate.ID,
		EstimateResult: estimate.Result,
		CreatedAt:      estimate.CreatedAt,
	})
}

// GetCatalogItems returns the material catalog.
func (h *Handler) GetCatalogItems(c *gin.Context) {
	materials, err := h.db.ListMaterials()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get material catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get material catalog"})
		return
	}

	c.JSON(http.StatusOK, materials)
}

// GetVendors returns the vendor directory.
func (h *Handler) GetVendors(c *gin.Context) {
	vendors, err := h.db.ListVendors()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get vendors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vendors"})
		return
	}

	c.JSON(http.StatusOK, vendors)
}

// ExportPDF renders a stored estimate as a PDF attachment.
func (h *Handler) ExportPDF(c *gin.Context) {
	estimate, ok := h.loadEstimate(c)
	if !ok {
		return
	}

	pdf, err := reports.GeneratePDF(reports.BuildReportData(estimate))
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate PDF report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF report"})
		return
	}

	serveAttachment(c, pdf, "application/pdf", fmt.Sprintf("estimate_%s.pdf", estimate.ID))
}

// ExportCSV renders a stored estimate's BoQ as a CSV attachment.
func (h *Handler) ExportCSV(c *gin.Context) {
	estimate, ok := h.loadEstimate(c)
	if !ok {
		return
	}

	data, err := reports.GenerateCSV(reports.BuildReportData(estimate))
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate CSV report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate CSV report"})
		return
	}

	serveAttachment(c, data, "text/csv", fmt.Sprintf("estimate_%s.csv", estimate.ID))
}

// ExportExcel renders a stored estimate as an xlsx attachment.
func (h *Handler) ExportExcel(c *gin.Context) {
	estimate, ok := h.loadEstimate(c)
	if !ok {
		return
	}

	data, err := reports.GenerateExcel(reports.BuildReportData(estimate))
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate Excel report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate Excel report"})
		return
	}

	serveAttachment(c, data,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		fmt.Sprintf("estimate_%s.xlsx", estimate.ID))
}

// UploadBoQ validates an uploaded bill-of-quantities file (.csv or .xlsx)
// and returns the parsed rows with row-level errors.
func (h *Handler) UploadBoQ(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file upload"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	result, err := boqimport.ValidateFile(file, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// loadEstimate fetches the estimate named by the :id path parameter, writing
// the error response itself when the lookup fails.
func (h *Handler) loadEstimate(c *gin.Context) (*models.Estimate, bool) {
	id := c.Param("id")
	estimate, err := h.estimates.GetEstimate(id)
	if err != nil {
		if errors.Is(err, store.ErrEstimateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Estimate not found"})
			return nil, false
		}
		h.logger.WithError(err).Error("Failed to load estimate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load estimate"})
		return nil, false
	}
	return estimate, true
}

func serveAttachment(c *gin.Context, data []byte, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
