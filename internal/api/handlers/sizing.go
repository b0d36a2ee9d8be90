package handlers

import (
	"errors"
	"net/http"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/sizing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SizingHandler sizes a load schedule in one shot without keeping any state.
type SizingHandler struct {
	engine   *sizing.Engine
	ref      ledger.Reference
	defaults model.SolarParameters
	logger   *zap.Logger
}

// NewSizingHandler creates a new sizing handler
func NewSizingHandler(engine *sizing.Engine, ref ledger.Reference, defaults model.SolarParameters, logger *zap.Logger) *SizingHandler {
	return &SizingHandler{
		engine:   engine,
		ref:      ref,
		defaults: defaults,
		logger:   logger.Named("sizing"),
	}
}

// Size handles POST /api/v1/sizing
func (h *SizingHandler) Size(c *gin.Context) {
	var req models.SizingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	l := ledger.New(h.ref)
	for i, in := range req.Appliances {
		if _, _, err := l.AddEntry(toCandidate(in)); err != nil {
			h.logger.Debug("appliance rejected", zap.Int("index", i), zap.Error(err))
			respondError(c, err)
			return
		}
	}

	resp := models.SizingResultResponse{
		Entries: buildEntries(l.Entries()),
		Totals:  buildTotals(l.Totals()),
	}
	res, err := h.engine.Compute(l.Totals(), mergeParameters(h.defaults, req.Parameters))
	switch {
	case errors.Is(err, model.ErrComputationSkipped):
		resp.Skipped = true
	case err != nil:
		respondError(c, err)
		return
	default:
		resp.Sizing = buildSizing(res)
		if overflows := res.Overflows(); len(overflows) > 0 {
			h.logger.Info("requirement exceeds catalog", zap.Strings("components", overflows))
		}
	}
	c.JSON(http.StatusOK, resp)
}
