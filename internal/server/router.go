package server

import (
	"net/http"

	"thenest/internal/config"
	"thenest/internal/middleware"
	"thenest/internal/modules/auth"
	"thenest/internal/modules/catalog"
	"thenest/internal/modules/consumption"
	"thenest/internal/modules/costs"
	"thenest/internal/modules/guest"
	"thenest/internal/modules/hardware"
	"thenest/internal/modules/seat"
	"thenest/internal/modules/session"
	"thenest/internal/modules/settings"
	"thenest/internal/modules/settlement"
	"thenest/internal/modules/tip"
	"thenest/internal/modules/upload"
	"thenest/internal/pkg/jwt"
	"thenest/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// App is the assembled HTTP surface plus the pieces main needs at shutdown.
type App struct {
	Engine *gin.Engine
	Hub    *seat.Hub
}

// New wires repositories, services and handlers onto a gin engine.
func New(cfg *config.Config, db *gorm.DB) *App {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	productRepo := repository.NewProductRepository(db)
	consumptionRepo := repository.NewConsumptionRepository(db)
	hardwareRepo := repository.NewHardwareRepository(db)
	tipRepo := repository.NewTipRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	gameRepo := repository.NewGameRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	costService := costs.NewService(sessionRepo, ledgerRepo, settingsRepo)
	checkOrigin := middleware.OriginChecker(cfg.CORSAllowedOrigins)
	hub := seat.NewHub(func(r *http.Request) bool { return checkOrigin(r.Header.Get("Origin")) })

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens))
	sessionHandler := session.NewHandler(session.NewService(sessionRepo, settingsRepo))
	guestHandler := guest.NewHandler(guest.NewService(sessionRepo, guestRepo))
	consumptionHandler := consumption.NewHandler(consumption.NewService(consumptionRepo, guestRepo, productRepo))
	hardwareHandler := hardware.NewHandler(hardware.NewService(hardwareRepo, guestRepo, sessionRepo, settingsRepo))
	tipHandler := tip.NewHandler(tip.NewService(tipRepo, sessionRepo, guestRepo))
	costHandler := costs.NewHandler(costService)
	settlementHandler := settlement.NewHandler(settlement.NewService(settlementRepo, sessionRepo, guestRepo, costService, cfg.Currency))
	seatHandler := seat.NewHandler(seat.NewService(seatRepo, sessionRepo, guestRepo, hub), hub)
	catalogHandler := catalog.NewHandler(catalog.NewService(productRepo, gameRepo, menuRepo, sessionRepo, guestRepo))
	settingsHandler := settings.NewHandler(settings.NewService(settingsRepo))
	uploadHandler := upload.NewHandler(upload.NewService(cfg.UploadsDir, cfg.UploadsURL))

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.MaxMultipartMemory = upload.MaxFileSize

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static(cfg.UploadsURL, cfg.UploadsDir)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api.Group("", limiter.Limit()))

		sessionHandler.RegisterRoutes(api)
		guestHandler.RegisterRoutes(api)
		consumptionHandler.RegisterRoutes(api)
		hardwareHandler.RegisterRoutes(api)
		tipHandler.RegisterRoutes(api)
		costHandler.RegisterRoutes(api)
		settlementHandler.RegisterRoutes(api)
		seatHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)

		guests := api.Group("", middleware.RequireUser(tokens, userRepo))
		{
			authHandler.RegisterGuestRoutes(guests)
			guestHandler.RegisterGuestRoutes(guests)
			consumptionHandler.RegisterGuestRoutes(guests)
			hardwareHandler.RegisterGuestRoutes(guests)
			tipHandler.RegisterGuestRoutes(guests)
			seatHandler.RegisterGuestRoutes(guests)
			catalogHandler.RegisterGuestRoutes(guests)
		}

		admin := api.Group("/admin", middleware.AdminAuth(cfg.AdminPassword, tokens, userRepo))
		{
			authHandler.RegisterAdminRoutes(admin)
			sessionHandler.RegisterAdminRoutes(admin)
			guestHandler.RegisterAdminRoutes(admin)
			hardwareHandler.RegisterAdminRoutes(admin)
			settlementHandler.RegisterAdminRoutes(admin)
			catalogHandler.RegisterAdminRoutes(admin)
			settingsHandler.RegisterAdminRoutes(admin)
			uploadHandler.RegisterAdminRoutes(admin)
		}
	}

	return &App{Engine: r, Hub: hub}
}
