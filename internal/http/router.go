package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/reliefroute/backend/internal/config"
	"github.com/reliefroute/backend/internal/db"
	"github.com/reliefroute/backend/internal/engine"
	"github.com/reliefroute/backend/internal/http/handlers"
	"github.com/reliefroute/backend/internal/http/middleware"
	"github.com/reliefroute/backend/internal/interpret"

	_ "github.com/reliefroute/backend/docs"
)

func Router(cfg config.Config, eng *engine.Engine, store *db.Store, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Engine:    eng,
		Ledger:    eng.Ledger,
		Reporter:  &interpret.Reporter{Ledger: eng.Ledger},
		Inventory: eng.Inventory,
		Planner:   eng.Planner,
		Corpus:    eng.Corpus,
		Store:     store,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/scenarios", h.SubmitScenario)
		api.GET("/scenarios/presets", h.ScenarioPresets)
		api.GET("/decisions", h.DecisionsList)
		api.GET("/decisions/:id", h.DecisionDetails)
		api.POST("/decisions/:id/action", h.DecisionAction)
		api.GET("/decisions/:id/interpretability", h.Interpretability)
		api.GET("/inventory", h.InventorySnapshot)
		api.GET("/activity", h.ActivityList)
		api.GET("/routes/calculate", h.RouteCalculate)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/models/train", h.TrainModels)
		admin.POST("/dispatch", h.Dispatch)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
