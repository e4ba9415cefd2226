package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/reliefroute/backend/internal/allocation"
	"github.com/reliefroute/backend/internal/corpus"
	"github.com/reliefroute/backend/internal/engine"
	"github.com/reliefroute/backend/internal/interpret"
	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/models"
	"github.com/reliefroute/backend/internal/predict"
	"github.com/reliefroute/backend/internal/roadnet"
	"github.com/reliefroute/backend/internal/routing"
	"github.com/reliefroute/backend/internal/scenario"
	"github.com/reliefroute/backend/internal/similarity"
)

func testRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	corp, err := corpus.Load("")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	inv := allocation.NewInventory(corp.Depots)
	store := &predict.ModelStore{}
	lgr := ledger.New(inv, nil)
	planner := &routing.Planner{Net: roadnet.Chennai()}

	eng := &engine.Engine{
		Normalizer: scenario.NewNormalizer(),
		Predictor: &predict.DemandPredictor{
			Models: store,
			Index:  similarity.NewLinearIndex(corp.Historical),
			K:      5,
			Logger: zerolog.Nop(),
		},
		Risk:       &predict.RiskClassifier{Models: store, Logger: zerolog.Nop()},
		Planner:    planner,
		Ledger:     lgr,
		Inventory:  inv,
		Corpus:     corp,
		Models:     store,
		Activity:   engine.NewActivityLog(50),
		Logger:     zerolog.Nop(),
		MinSamples: 5,
	}

	h := &Handler{
		Engine:    eng,
		Ledger:    lgr,
		Reporter:  &interpret.Reporter{Ledger: lgr},
		Inventory: inv,
		Planner:   planner,
		Corpus:    corp,
		Validator: validator.New(),
		Logger:    zerolog.Nop(),
	}

	r := gin.New()
	r.GET("/healthz", h.Healthz)
	api := r.Group("/api")
	api.POST("/scenarios", h.SubmitScenario)
	api.GET("/scenarios/presets", h.ScenarioPresets)
	api.GET("/decisions", h.DecisionsList)
	api.GET("/decisions/:id", h.DecisionDetails)
	api.POST("/decisions/:id/action", h.DecisionAction)
	api.GET("/decisions/:id/interpretability", h.Interpretability)
	api.GET("/inventory", h.InventorySnapshot)
	api.GET("/activity", h.ActivityList)
	api.GET("/routes/calculate", h.RouteCalculate)
	api.POST("/models/train", h.TrainModels)
	api.POST("/dispatch", h.Dispatch)
	return r, h
}

func floodPayload() string {
	return `{
		"disaster_type": "flood",
		"severity": 3,
		"population_affected": 17850,
		"zones_affected": ["East", "West"],
		"hospital_load": 71,
		"blocked_roads": ["OMR"],
		"attributes": {"water_level_m": 1.2, "rainfall_mm_24h": 180}
	}`
}

func TestHealthzWithoutStore(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSubmitScenarioCreated(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/scenarios", strings.NewReader(floodPayload()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var d models.Decision
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode decision: %v", err)
	}
	if d.ID == "" || d.Status != models.DecisionPending {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestSubmitScenarioInvalidJSON(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/scenarios", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSubmitScenarioValidationError(t *testing.T) {
	r, _ := testRouter(t)
	payload := `{"disaster_type": "flood", "severity": 9, "zones_affected": ["East"], "hospital_load": 50}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/scenarios", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("VALIDATION_ERROR")) {
		t.Fatalf("expected VALIDATION_ERROR code, got %s", w.Body.String())
	}
}

func TestDecisionLifecycleOverHTTP(t *testing.T) {
	r, _ := testRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/scenarios", strings.NewReader(floodPayload()))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d", w.Code)
	}
	var d models.Decision
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/decisions/"+d.ID, nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("details: expected 200, got %d", w.Code)
	}

	action := `{"action": "approve", "actor": "operator-1", "note": "confirmed"}`
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/api/decisions/%s/action", d.ID), strings.NewReader(action))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("approve: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// A second transition must conflict.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, fmt.Sprintf("/api/decisions/%s/action", d.ID), strings.NewReader(action))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("re-approve: expected 409, got %d", w.Code)
	}
}

func TestDecisionNotFound(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/decisions/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/decisions/nope/interpretability", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("interpretability: expected 404, got %d", w.Code)
	}
}

func TestScenarioPresets(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/scenarios/presets", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Presets []scenario.Raw `json:"presets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(body.Presets))
	}
}

func TestRouteCalculate(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/routes/calculate?from=Central_Depot&to=Zone_East", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/routes/calculate?from=Central_Depot&to=Zone_West&blocked=Inner_Ring", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unreachable zone, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/routes/calculate?from=Central_Depot", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing params, got %d", w.Code)
	}
}

func TestInventorySnapshotEndpoint(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/inventory", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Depots []models.Depot `json:"depots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Depots) != 3 {
		t.Fatalf("expected 3 depots, got %d", len(body.Depots))
	}
}

func TestTrainEndpoint(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/models/train", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDispatchEndpointValidation(t *testing.T) {
	r, _ := testRouter(t)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/dispatch", strings.NewReader(`{"depot": "central_depot"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete dispatch, got %d", w.Code)
	}
}
