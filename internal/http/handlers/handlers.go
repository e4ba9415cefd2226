package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/reliefroute/backend/internal/allocation"
	"github.com/reliefroute/backend/internal/corpus"
	"github.com/reliefroute/backend/internal/db"
	"github.com/reliefroute/backend/internal/engine"
	"github.com/reliefroute/backend/internal/interpret"
	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/routing"
	"github.com/reliefroute/backend/internal/scenario"
)

type Handler struct {
	Engine    *engine.Engine
	Ledger    *ledger.Ledger
	Reporter  *interpret.Reporter
	Inventory *allocation.Inventory
	Planner   *routing.Planner
	Corpus    *corpus.Corpus
	Store     *db.Store
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.Store.Ping(ctx); err != nil {
			writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Submit a disaster scenario
// @Description Runs the full evaluation pipeline and records a pending decision
// @Tags scenarios
// @Accept json
// @Produce json
// @Param scenario body scenario.Raw true "scenario"
// @Success 201 {object} models.Decision
// @Failure 400 {object} map[string]any
// @Router /api/scenarios [post]
func (h *Handler) SubmitScenario(c *gin.Context) {
	var raw scenario.Raw
	if err := c.ShouldBindJSON(&raw); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", err.Error())
		return
	}
	d, err := h.Engine.Evaluate(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, scenario.ErrValidation) {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Scenario failed validation", err.Error())
			return
		}
		h.Logger.Error().Err(err).Msg("scenario evaluation failed")
		writeError(c, http.StatusInternalServerError, "EVALUATION_ERROR", "Failed to evaluate scenario", err.Error())
		return
	}
	c.JSON(http.StatusCreated, d)
}

// @Summary List decisions
// @Tags decisions
// @Produce json
// @Success 200 {array} models.Decision
// @Router /api/decisions [get]
func (h *Handler) DecisionsList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"decisions": h.Ledger.List()})
}

func (h *Handler) DecisionDetails(c *gin.Context) {
	d, err := h.Ledger.Get(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Decision not found", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, d)
}

type actionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve abort modify"`
	Actor  string `json:"actor" validate:"required"`
	Note   string `json:"note"`
	// Only read when action is modify.
	Allocations []models.Allocation `json:"allocations,omitempty"`
	Routes      []models.Route      `json:"routes,omitempty"`
}

// @Summary Apply an operator action to a pending decision
// @Tags decisions
// @Accept json
// @Produce json
// @Param id path string true "decision id"
// @Param action body actionRequest true "action"
// @Success 200 {object} models.Decision
// @Failure 409 {object} map[string]any
// @Router /api/decisions/{id}/action [post]
func (h *Handler) DecisionAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid action request", err.Error())
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	var (
		d   models.Decision
		err error
	)
	switch req.Action {
	case "approve":
		d, err = h.Ledger.Approve(ctx, id, req.Actor, req.Note)
	case "abort":
		d, err = h.Ledger.Abort(ctx, id, req.Actor, req.Note)
	case "modify":
		mod := &ledger.Modification{Allocations: req.Allocations, Routes: req.Routes}
		d, err = h.Ledger.Modify(ctx, id, req.Actor, req.Note, mod)
	}
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDecisionNotFound):
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Decision not found", id)
		case errors.Is(err, ledger.ErrInvalidTransition):
			writeError(c, http.StatusConflict, "INVALID_TRANSITION", "Decision is not pending", err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "ACTION_ERROR", "Failed to apply action", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Interpretability(c *gin.Context) {
	rep, err := h.Reporter.Report(c.Param("id"))
	if err != nil {
		if errors.Is(err, ledger.ErrDecisionNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Decision not found", c.Param("id"))
			return
		}
		writeError(c, http.StatusInternalServerError, "REPORT_ERROR", "Failed to build report", err.Error())
		return
	}
	c.JSON(http.StatusOK, rep)
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
