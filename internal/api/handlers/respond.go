package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/catalog"
	"solar-sizer/internal/config"
	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/planner"
	"solar-sizer/internal/sizing"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var verr *model.ValidationError
	var cerr *model.ConfigurationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: verr.Error(),
				Details: map[string]interface{}{"field": verr.Field},
			},
		})
	case errors.As(err, &cerr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "CONFIGURATION_ERROR",
				Message: cerr.Error(),
				Details: map[string]interface{}{"field": cerr.Field},
			},
		})
	case errors.Is(err, model.ErrEmptySelection):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "EMPTY_SELECTION",
				Message: "Please select appliances to remove",
			},
		})
	case errors.Is(err, planner.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "PLAN_NOT_FOUND",
				Message: err.Error(),
			},
		})
	case errors.Is(err, ledger.ErrNoEntries):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_ENTRIES",
				Message: err.Error(),
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: err.Error(),
			},
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

func toCandidate(in models.ApplianceInput) ledger.Candidate {
	c := ledger.Candidate{
		Name:       in.Name,
		RatedPower: formatFloat(in.RatedPower),
	}
	if in.UsageHours != nil {
		c.UsageHours = formatFloat(*in.UsageHours)
	}
	if in.Count != nil {
		c.Count = formatFloat(*in.Count)
	}
	return c
}

func mergeParameters(base model.SolarParameters, in models.ParametersInput) model.SolarParameters {
	return config.MergeParameters(base, model.SolarParameters{
		SystemVoltage:           in.SystemVoltage,
		DepthOfDischargePercent: in.DepthOfDischargePercent,
		PanelSizeWatts:          in.PanelSizeWatts,
	})
}

func buildEntries(entries []model.ApplianceEntry) []models.EntryRow {
	rows := make([]models.EntryRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, models.EntryRow{
			Index:             i,
			Name:              e.Name,
			RatedPowerWatts:   e.RatedPowerWatts,
			PowerFactor:       e.PowerFactor,
			EfficiencyPercent: e.EfficiencyPercent,
			SurgePowerWatts:   e.SurgePowerWatts,
			UsageHours:        e.UsageHours,
			Count:             e.Count,
			ConsumptionKWh:    e.ConsumptionKWh(),
		})
	}
	return rows
}

func buildTotals(t model.LedgerTotals) models.TotalsResponse {
	return models.TotalsResponse{
		TotalWattage:        t.TotalWattage,
		TotalUsageHours:     t.TotalUsageHours,
		AverageUsageHours:   t.AverageUsageHours(),
		ApplianceCount:      t.ApplianceCount,
		TotalConsumptionKWh: t.TotalConsumptionKWh,
	}
}

func buildSizing(r *sizing.Result) *models.SizingResponse {
	if r == nil {
		return nil
	}
	resp := &models.SizingResponse{
		Parameters:              r.Parameters,
		DailyConsumptionWh:      r.DailyConsumptionWh,
		BatteryAh:               r.BatteryAh,
		BatteryBankWh:           r.BatteryBankWh,
		PVCapacityRequiredWatts: r.PVCapacityRequiredWatts,
		PanelCount:              r.PanelCount,
		TotalPVCapacityWatts:    r.TotalPVCapacityWatts,
		PVCurrent:               r.PVCurrent,
		InverterACCurrent:       r.InverterACCurrent,
		InverterDCCurrent:       r.InverterDCCurrent,
		Cable:                   cableInfo(r.Cable.Cable),
		ACCable:                 cableInfo(r.ACCable.Cable),
		Overflows:               r.Overflows(),
	}
	for _, comp := range r.Components() {
		resp.Components = append(resp.Components, models.ComponentRow{
			Name:     comp.Name,
			Unit:     comp.Unit,
			Required: comp.Required,
			Selected: comp.Selected,
			Exceeded: comp.Exceeded,
		})
	}
	return resp
}

func cableInfo(cb catalog.Cable) models.CableInfo {
	return models.CableInfo{
		SizeMM2:      cb.SizeMM2,
		AmpacityA:    cb.AmpacityA,
		OhmsPerMeter: cb.OhmsPerMeter,
		AWG:          cb.AWG,
	}
}

func buildPlan(p *planner.Plan) models.PlanResponse {
	return models.PlanResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Parameters: p.Parameters(),
		Entries:    buildEntries(p.Entries()),
		Totals:     buildTotals(p.Totals()),
		Sizing:     buildSizing(p.Result()),
		Skipped:    p.Skipped(),
	}
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
