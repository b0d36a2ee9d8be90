package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"solar-sizer/internal/api/models"
	"solar-sizer/internal/ledger"
	"solar-sizer/internal/model"
	"solar-sizer/internal/planner"
	"solar-sizer/internal/sizing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanHandler handles the stateful plan endpoints.
type PlanHandler struct {
	store    *planner.Store
	engine   *sizing.Engine
	ref      ledger.Reference
	defaults model.SolarParameters
	logger   *zap.Logger
}

// NewPlanHandler creates a new plan handler. defaults seed the parameters of
// new plans; ref may be nil.
func NewPlanHandler(store *planner.Store, engine *sizing.Engine, ref ledger.Reference, defaults model.SolarParameters, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		store:    store,
		engine:   engine,
		ref:      ref,
		defaults: defaults,
		logger:   logger.Named("plans"),
	}
}

// CreatePlan handles POST /api/v1/plans
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req models.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	p, err := planner.NewPlan(req.Name, h.engine, h.ref, mergeParameters(h.defaults, req.Parameters))
	if err != nil {
		respondError(c, err)
		return
	}
	for _, in := range req.Appliances {
		if _, err := p.AddAppliance(toCandidate(in)); err != nil {
			respondError(c, err)
			return
		}
	}
	h.store.Put(p)

	h.logger.Info("plan created", zap.String("plan_id", p.ID.String()), zap.Int("appliances", len(req.Appliances)))
	c.JSON(http.StatusCreated, buildPlan(p))
}

// GetPlan handles GET /api/v1/plans/:id
func (h *PlanHandler) GetPlan(c *gin.Context) {
	h.withPlan(c, http.StatusOK, func(*planner.Plan) error { return nil })
}

// AddAppliance handles POST /api/v1/plans/:id/appliances
func (h *PlanHandler) AddAppliance(c *gin.Context) {
	var req models.ApplianceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, ok := planID(c)
	if !ok {
		return
	}

	var resp models.AddApplianceResponse
	err := h.store.Do(id, func(p *planner.Plan) error {
		kwh, err := p.AddAppliance(toCandidate(req))
		if err != nil {
			return err
		}
		resp = models.AddApplianceResponse{ConsumptionKWh: kwh, Plan: buildPlan(p)}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// maxImportBytes caps an uploaded load schedule.
const maxImportBytes = 1 << 20

// ImportAppliances handles POST /api/v1/plans/:id/import. The body is a saved
// load schedule CSV; rows that do not describe a valid entry are skipped.
func (h *PlanHandler) ImportAppliances(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	entries, skipped, err := ledger.Decode(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		badRequest(c, err)
		return
	}
	if len(entries) == 0 && skipped == 0 {
		respondError(c, &model.ValidationError{Field: "body", Message: "load schedule has no rows"})
		return
	}

	var resp models.ImportResponse
	err = h.store.Do(id, func(p *planner.Plan) error {
		rejected, err := p.ImportAppliances(entries)
		if err != nil {
			return err
		}
		resp = models.ImportResponse{
			Imported:    len(entries) - rejected,
			SkippedRows: skipped + rejected,
			Plan:        buildPlan(p),
		}
		return nil
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("load schedule imported",
		zap.String("plan_id", id.String()),
		zap.Int("imported", resp.Imported),
		zap.Int("skipped", resp.SkippedRows))
	c.JSON(http.StatusOK, resp)
}

// UpdateAppliance handles PATCH /api/v1/plans/:id/appliances/:index
func (h *PlanHandler) UpdateAppliance(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, &model.ValidationError{Field: "index", Message: "must be an integer"})
		return
	}
	var req models.UpdateApplianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.withPlan(c, http.StatusOK, func(p *planner.Plan) error {
		return p.UpdateAppliance(index, ledger.Field(req.Field), req.Value)
	})
}

// RemoveAppliances handles DELETE /api/v1/plans/:id/appliances
func (h *PlanHandler) RemoveAppliances(c *gin.Context) {
	var req models.RemoveAppliancesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	h.withPlan(c, http.StatusOK, func(p *planner.Plan) error {
		return p.RemoveAppliances(req.Indices)
	})
}

// SetParameters handles PUT /api/v1/plans/:id/parameters
func (h *PlanHandler) SetParameters(c *gin.Context) {
	var req models.ParametersInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.withPlan(c, http.StatusOK, func(p *planner.Plan) error {
		return p.SetParameters(mergeParameters(p.Parameters(), req))
	})
}

// ExportPlan handles GET /api/v1/plans/:id/export?what=ledger|sizing
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	what := c.DefaultQuery("what", "ledger")

	var buf bytes.Buffer
	var filename string
	err := h.store.Do(id, func(p *planner.Plan) error {
		switch what {
		case "ledger":
			entries := p.Entries()
			if len(entries) == 0 {
				return ledger.ErrNoEntries
			}
			filename = "load_Sched.csv"
			return ledger.Encode(&buf, entries)
		case "sizing":
			if p.Result() == nil {
				return model.ErrComputationSkipped
			}
			filename = "sizing.csv"
			return sizing.EncodeCSV(&buf, p.Result())
		default:
			return &model.ValidationError{Field: "what", Message: "must be ledger or sizing"}
		}
	})
	if errors.Is(err, model.ErrComputationSkipped) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOTHING_SIZED",
				Message: err.Error(),
			},
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DeletePlan handles DELETE /api/v1/plans/:id
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := planID(c)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("plan deleted", zap.String("plan_id", id.String()))
	c.Status(http.StatusNoContent)
}

// withPlan runs fn against the plan named in the path and replies with the
// plan's state afterwards.
func (h *PlanHandler) withPlan(c *gin.Context, status int, fn func(*planner.Plan) error) {
	id, ok := planID(c)
	if !ok {
		return
	}
	var resp models.PlanResponse
	err := h.store.Do(id, func(p *planner.Plan) error {
		if err := fn(p); err != nil {
			return err
		}
		resp = buildPlan(p)
		return nil
	})
	if err != nil {
		h.logger.Debug("plan request rejected", zap.String("plan_id", id.String()), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}

func planID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, planner.ErrNotFound)
		return uuid.UUID{}, false
	}
	return id, true
}
