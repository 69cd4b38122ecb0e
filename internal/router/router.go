package router

import (
	"os"
	"time"

	"tillpos/internal/config"
	"tillpos/internal/handler"
	"tillpos/internal/integration"
	"tillpos/internal/middleware"
	"tillpos/internal/receipt"
	"tillpos/internal/repository"
	"tillpos/internal/revenue"
	"tillpos/internal/service"
	"tillpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Integration/Repository ← DB/Redis.
// db and rdb may be nil; the register then runs fully in-memory.
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
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Integrations ─────────────────────────────────────────────────────────
	inventory := integration.NewSimulatedInventory()
	catalog := integration.NewSimulatedCatalog()

	var accounting integration.Accounting = integration.NewMemoryAccounting()
	if db != nil {
		repo, err := repository.NewSaleRepository(db)
		if err != nil {
			log.Error().Err(err).Msg("sale ledger migration failed, using in-memory accounting")
		} else {
			accounting = repo
		}
	}

	// Worker dispatcher — injected into the register so Pay can enqueue
	// async receipt-email jobs. Nil without Redis.
	var dispatcher *worker.Dispatcher
	if rdb != nil {
		dispatcher = worker.NewDispatcher(rdb)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	printer := receipt.NewPrinter(os.Stdout)
	registerSvc := service.NewRegisterService(inventory, catalog, accounting, printer, dispatcher, cfg.PDFStoragePath)

	registerSvc.RegisterNotifier(revenue.NewLogNotifier(log.Logger))
	if cfg.RevenueLogPath != "" {
		registerSvc.RegisterNotifier(revenue.NewFileNotifier(cfg.RevenueLogPath))
	}
	if rdb != nil {
		registerSvc.RegisterNotifier(revenue.NewRedisNotifier(rdb, "revenue:events"))
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	salesH := handler.NewSalesHandler(registerSvc, inventory)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	// Price check — read-only, never touches the active sale
	r.GET("/v1/items/:id", salesH.GetItem)

	v1 := r.Group("/v1")
	{
		v1.POST("/sales", salesH.StartSale)
		v1.POST("/sales/items", salesH.EnterItem)
		v1.POST("/sales/end", salesH.EndSale)
		v1.POST("/sales/discount", salesH.RequestDiscount)
		v1.POST("/sales/payment", salesH.Pay)
	}

	return r
}
