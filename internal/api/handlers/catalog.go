package handlers

import (
	"net/http"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/sizing"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the component catalogs and constants in use.
type CatalogHandler struct {
	engine *sizing.Engine
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(engine *sizing.Engine) *CatalogHandler {
	return &CatalogHandler{engine: engine}
}

// ListCatalogs handles GET /api/v1/catalogs
func (h *CatalogHandler) ListCatalogs(c *gin.Context) {
	set := h.engine.Catalogs()

	resp := models.CatalogsResponse{Constants: h.engine.Constants()}
	for _, cat := range set.Catalogs() {
		resp.Catalogs = append(resp.Catalogs, models.CatalogInfo{
			Name:  cat.Name,
			Unit:  cat.Unit,
			Sizes: cat.Sizes,
		})
	}
	for _, cb := range set.Cables.Cables() {
		resp.Cables = append(resp.Cables, cableInfo(cb))
	}
	c.JSON(http.StatusOK, resp)
}
