package handlers

import (
	"net/http"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/data"

	"github.com/gin-gonic/gin"
)

// ApplianceHandler serves the reference table of known appliances.
type ApplianceHandler struct {
	table *data.ApplianceTable
}

// NewApplianceHandler creates a new appliance handler. table may be nil.
func NewApplianceHandler(table *data.ApplianceTable) *ApplianceHandler {
	return &ApplianceHandler{table: table}
}

// SearchAppliances handles GET /api/v1/appliances?prefix=
func (h *ApplianceHandler) SearchAppliances(c *gin.Context) {
	var req models.SearchAppliancesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	appliances := []models.ApplianceInfo{}
	for _, s := range h.table.Search(req.Prefix) {
		appliances = append(appliances, models.ApplianceInfo{
			Name:              s.Name,
			RatedPowerWatts:   s.RatedPowerWatts,
			SurgePowerWatts:   s.SurgePowerWatts,
			EfficiencyPercent: s.EfficiencyPercent,
			PowerFactor:       s.PowerFactor,
		})
	}
	c.JSON(http.StatusOK, gin.H{"appliances": appliances})
}
