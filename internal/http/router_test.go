package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/reliefroute/backend/internal/allocation"
	"github.com/reliefroute/backend/internal/config"
	"github.com/reliefroute/backend/internal/corpus"
	"github.com/reliefroute/backend/internal/engine"
	"github.com/reliefroute/backend/internal/ledger"
	"github.com/reliefroute/backend/internal/predict"
	"github.com/reliefroute/backend/internal/roadnet"
	"github.com/reliefroute/backend/internal/routing"
	"github.com/reliefroute/backend/internal/scenario"
	"github.com/reliefroute/backend/internal/similarity"
)

func testEngineAndConfig(t *testing.T) (*engine.Engine, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	corp, err := corpus.Load("")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	inv := allocation.NewInventory(corp.Depots)
	store := &predict.ModelStore{}
	eng := &engine.Engine{
		Normalizer: scenario.NewNormalizer(),
		Predictor: &predict.DemandPredictor{
			Models: store,
			Index:  similarity.NewLinearIndex(corp.Historical),
			K:      5,
			Logger: zerolog.Nop(),
		},
		Risk:       &predict.RiskClassifier{Models: store, Logger: zerolog.Nop()},
		Planner:    &routing.Planner{Net: roadnet.Chennai()},
		Ledger:     ledger.New(inv, nil),
		Inventory:  inv,
		Corpus:     corp,
		Models:     store,
		Activity:   engine.NewActivityLog(10),
		Logger:     zerolog.Nop(),
		MinSamples: 5,
	}
	cfg := config.Config{Port: "0", CORSAllowed: "*", AdminKey: "secret"}
	return eng, cfg
}

func TestAdminEndpointsRequireKey(t *testing.T) {
	eng, cfg := testEngineAndConfig(t)
	r := Router(cfg, eng, nil, zerolog.Nop())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/models/train", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/models/train", nil)
	req.Header.Set("X-Admin-Key", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin key, got %d", w.Code)
	}
}

func TestPublicEndpointsSkipAdminKey(t *testing.T) {
	eng, cfg := testEngineAndConfig(t)
	r := Router(cfg, eng, nil, zerolog.Nop())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/decisions", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequestIDPropagated(t *testing.T) {
	eng, cfg := testEngineAndConfig(t)
	r := Router(cfg, eng, nil, zerolog.Nop())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "upstream-42")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "upstream-42" {
		t.Fatalf("expected inbound request id echoed, got %q", got)
	}
}
