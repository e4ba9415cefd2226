package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/reliefroute/backend/internal/engine"
	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/predict"
	"github.com/reliefroute/backend/internal/routing"
	"github.com/reliefroute/backend/internal/scenario"
)

func (h *Handler) InventorySnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"depots": h.Inventory.Snapshot()})
}

func (h *Handler) ActivityList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activity": h.Engine.Activity.List()})
}

// @Summary Calculate a route between two network nodes
// @Tags routes
// @Produce json
// @Param from query string true "origin node id"
// @Param to query string true "destination node id"
// @Param vehicle query string false "vehicle class, default truck"
// @Param blocked query string false "comma-separated blocked road names"
// @Success 200 {object} routing.Result
// @Failure 404 {object} map[string]any
// @Router /api/routes/calculate [get]
func (h *Handler) RouteCalculate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "from and to are required", nil)
		return
	}
	vehicle := models.VehicleClass(c.DefaultQuery("vehicle", string(models.VehicleTruck)))
	var blocked []string
	if raw := c.Query("blocked"); raw != "" {
		blocked = strings.Split(raw, ",")
	}

	res, err := h.Planner.Plan(routing.Request{From: from, To: to, Vehicle: vehicle, BlockedRoads: blocked})
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrUnknownNode):
			writeError(c, http.StatusBadRequest, "UNKNOWN_NODE", "Unknown network node", err.Error())
		case errors.Is(err, routing.ErrRouteUnavailable):
			writeError(c, http.StatusNotFound, "NO_ROUTE", "No feasible route", err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "ROUTE_ERROR", "Route calculation failed", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

// Presets are ready-to-submit scenario payloads for drills and demos.
func (h *Handler) ScenarioPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": scenarioPresets()})
}

func scenarioPresets() []scenario.Raw {
	return []scenario.Raw{
		{
			DisasterType:       "flood",
			Severity:           4,
			PopulationAffected: 250000,
			ZonesAffected:      []string{"North", "Central"},
			HospitalLoad:       82,
			BlockedRoads:       []string{"Anna Salai"},
			Attributes: map[string]any{
				"water_level_m":     2.4,
				"rainfall_mm_24h":   310,
				"inland_or_coastal": "coastal",
			},
			Notes: "Monsoon flooding across northern low-lying wards",
		},
		{
			DisasterType:       "cyclone",
			Severity:           5,
			PopulationAffected: 400000,
			ZonesAffected:      []string{"East", "South"},
			HospitalLoad:       88,
			BlockedRoads:       []string{"ECR", "OMR"},
			Attributes: map[string]any{
				"max_wind_speed_kmph":    165,
				"translation_speed_kmph": 18,
				"cyclone_direction":      "NE",
			},
			Notes: "Severe cyclonic storm approaching the coast",
		},
		{
			DisasterType:       "heatwave",
			Severity:           3,
			PopulationAffected: 120000,
			ZonesAffected:      []string{"West"},
			HospitalLoad:       64,
			Attributes: map[string]any{
				"max_temp_c":    43,
				"humidity_pct":  35,
				"duration_days": 6,
			},
			Notes: "Sustained heat with grid strain in western suburbs",
		},
	}
}

// @Summary Retrain the learned models from the historical corpus
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/models/train [post]
func (h *Handler) TrainModels(c *gin.Context) {
	set, err := h.Engine.TrainModels()
	if err != nil {
		if errors.Is(err, predict.ErrInsufficientHistory) {
			writeError(c, http.StatusConflict, "INSUFFICIENT_HISTORY", "Not enough historical scenarios to train", err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "TRAIN_ERROR", "Model training failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trained_at": set.TrainedAt,
		"samples":    set.Samples,
	})
}

func (h *Handler) Dispatch(c *gin.Context) {
	var req engine.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid dispatch request", err.Error())
		return
	}
	alloc, route, err := h.Engine.Dispatch(req)
	if err != nil {
		writeError(c, http.StatusBadRequest, "DISPATCH_ERROR", "Dispatch failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocation": alloc, "route": route})
}
