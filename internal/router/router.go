package router

import (
	"time"

	"github.com/Valtaor/perso-monstock/internal/config"
	"github.com/Valtaor/perso-monstock/internal/handler"
	"github.com/Valtaor/perso-monstock/internal/middleware"
	"github.com/Valtaor/perso-monstock/internal/repository"
	"github.com/Valtaor/perso-monstock/internal/service"
	"github.com/Valtaor/perso-monstock/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(600, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	produitRepo := repository.NewProduitRepository(db)
	taxonomieRepo := repository.NewTaxonomieRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	magasin := upload.NewMagasin(cfg.UploadDir)
	produitSvc := service.NewProduitService(produitRepo, taxonomieRepo, magasin, rdb)
	taxonomieSvc := service.NewTaxonomieService(taxonomieRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	inventaireH := handler.NewInventaireHandler(produitSvc, taxonomieSvc, cfg.NonceSecret, cfg.Debug)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Product photos referenced by the dashboard table
	r.Static("/uploads", cfg.UploadDir)

	// The dashboard endpoint: one route, action-based dispatch, behind auth.
	api := r.Group("/api", middleware.Auth(cfg.JWTSecret))
	{
		api.GET("/inventaire", inventaireH.Dispatch)
		api.POST("/inventaire", inventaireH.Dispatch)
	}

	return r
}
