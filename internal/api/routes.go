package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.POST("/estimate/run", handler.CreateEstimate)
		api.GET("/estimate/:id", handler.GetEstimate)
		api.GET("/catalog/items", handler.GetCatalogItems)
		api.GET("/vendors", handler.GetVendors)
		api.GET("/export/:id/pdf", handler.ExportPDF)
		api.GET("/export/:id/csv", handler.ExportCSV)
		api.GET("/export/:id/xlsx", handler.ExportExcel)
		api.POST("/files/upload", handler.UploadBoQ)
	}
}
