// Package api wires the HTTP handlers into a gin router.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"solar-sizer/internal/api/handlers"
	"solar-sizer/internal/api/middleware"
	"solar-sizer/internal/data"
	"solar-sizer/internal/model"
	"solar-sizer/internal/planner"
	"solar-sizer/internal/sizing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the routes are built on.
type Deps struct {
	Engine     *sizing.Engine
	Appliances *data.ApplianceTable // may be nil
	Store      *planner.Store
	Defaults   model.SolarParameters
	Logger     *zap.Logger
	StaticDir  string // optional single-page UI
}

// NewRouter builds the API router.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger.Named("http")))
	router.Use(middleware.ErrorHandler(logger))

	planHandler := handlers.NewPlanHandler(d.Store, d.Engine, d.Appliances, d.Defaults, logger)
	sizingHandler := handlers.NewSizingHandler(d.Engine, d.Appliances, d.Defaults, logger)
	catalogHandler := handlers.NewCatalogHandler(d.Engine)
	applianceHandler := handlers.NewApplianceHandler(d.Appliances)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/catalogs", catalogHandler.ListCatalogs)
		api.GET("/appliances", applianceHandler.SearchAppliances)
		api.POST("/sizing", sizingHandler.Size)

		api.POST("/plans", planHandler.CreatePlan)
		api.GET("/plans/:id", planHandler.GetPlan)
		api.DELETE("/plans/:id", planHandler.DeletePlan)
		api.POST("/plans/:id/appliances", planHandler.AddAppliance)
		api.POST("/plans/:id/import", planHandler.ImportAppliances)
		api.PATCH("/plans/:id/appliances/:index", planHandler.UpdateAppliance)
		api.DELETE("/plans/:id/appliances", planHandler.RemoveAppliances)
		api.PUT("/plans/:id/parameters", planHandler.SetParameters)
		api.GET("/plans/:id/export", planHandler.ExportPlan)
	}

	if d.StaticDir != "" {
		serveStatic(router, d.StaticDir, logger)
	}
	return router
}

// serveStatic serves a built single-page UI, falling back to index.html for
// every non-API route.
func serveStatic(router *gin.Engine, dir string, logger *zap.Logger) {
	if _, err := os.Stat(dir); err != nil {
		logger.Info("static directory not found, skipping static file serving", zap.String("dir", dir))
		return
	}
	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	logger.Info("serving static files", zap.String("dir", dir))
}
