package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/resqlink/emergency-directory/docs"
	"github.com/resqlink/emergency-directory/internal/api/handler"
	"github.com/resqlink/emergency-directory/internal/api/middleware"
	"github.com/resqlink/emergency-directory/internal/core/domain"
	"github.com/resqlink/emergency-directory/internal/core/service"
	"github.com/resqlink/emergency-directory/internal/infrastructure/config"
	mongostore "github.com/resqlink/emergency-directory/internal/infrastructure/db/mongo"
	redisstore "github.com/resqlink/emergency-directory/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: cfg.CORSOrigin != "*",
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	hospitalRepo := mongostore.NewHospitalRepository(db)
	bankRepo := mongostore.NewBloodBankRepository(db)
	historyRepo := mongostore.NewHistoryRepository(db)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, throttle, log)
	userService := service.NewUserService(userRepo, historyRepo, log)
	hospitalService := service.NewHospitalService(hospitalRepo, log)
	bankService := service.NewBloodBankService(bankRepo, log)
	historyService := service.NewHistoryService(historyRepo, log)

	cookie := handler.CookieOptions{
		Secure:   cfg.Cookie.Secure,
		SameSite: parseSameSite(cfg.Cookie.SameSite),
		TTL:      cfg.TokenTTL,
	}
	authHandler := handler.NewAuthHandler(authService, cookie)
	userHandler := handler.NewUserHandler(userService)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	bankHandler := handler.NewBloodBankHandler(bankService)
	historyHandler := handler.NewHistoryHandler(historyService)

	authRequired := middleware.Auth(tokens, userRepo, log)

	// --- Ops surface ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// --- Identity routes ---
	users := api.Group("/users", authRequired)
	users.GET("/check-auth", userHandler.CheckAuth)
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Hospital directory: reads public, writes gated ---
	hospitals := api.Group("/hospitals")
	hospitals.GET("", hospitalHandler.List)
	hospitals.GET("/profile", hospitalHandler.Profile, authRequired, middleware.RequireRole(domain.RoleHospital))
	hospitals.PUT("/profile", hospitalHandler.UpdateProfile, authRequired, middleware.RequireRole(domain.RoleHospital))
	hospitals.GET("/:id", hospitalHandler.Get)
	hospitals.POST("", hospitalHandler.Create, authRequired, middleware.RequireRole(domain.RoleHospital, domain.RoleAdmin))
	hospitals.PUT("/:id", hospitalHandler.Update, authRequired, middleware.RequireRole(domain.RoleHospital, domain.RoleAdmin))
	hospitals.PATCH("/:id/availability", hospitalHandler.SetAvailability, authRequired, middleware.RequireRole(domain.RoleHospital, domain.RoleAdmin))
	hospitals.DELETE("/:id", hospitalHandler.Delete, authRequired, middleware.RequireRole(domain.RoleAdmin))

	// --- Blood bank directory: reads public, writes gated ---
	banks := api.Group("/bloodbanks")
	banks.GET("", bankHandler.List)
	banks.GET("/profile", bankHandler.Profile, authRequired, middleware.RequireRole(domain.RoleBloodBank))
	banks.PUT("/profile", bankHandler.UpdateProfile, authRequired, middleware.RequireRole(domain.RoleBloodBank))
	banks.PUT("/inventory", bankHandler.UpdateStock, authRequired, middleware.RequireRole(domain.RoleBloodBank))
	banks.GET("/:id", bankHandler.Get)
	banks.POST("", bankHandler.Create, authRequired, middleware.RequireRole(domain.RoleBloodBank, domain.RoleAdmin))
	banks.DELETE("/:id", bankHandler.Delete, authRequired, middleware.RequireRole(domain.RoleAdmin))

	// --- Patient histories: patients own their record, responders read ---
	histories := api.Group("/patient-history", authRequired)
	histories.GET("/me", historyHandler.GetMine, middleware.RequireRole(domain.RolePatient))
	histories.PUT("/me", historyHandler.UpsertMine, middleware.RequireRole(domain.RolePatient))
	histories.GET("/:id", historyHandler.GetByPatient,
		middleware.RequireRole(domain.RoleHospital, domain.RoleAmbulance, domain.RoleAdmin))

	return e
}

func parseSameSite(s string) http.SameSite {
	switch s {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
