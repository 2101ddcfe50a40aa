package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/internal/accounts"
	"github.com/ayodelep/weathercat/internal/catalog"
	"github.com/ayodelep/weathercat/internal/favorites"
	"github.com/ayodelep/weathercat/internal/weather"
	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/config"
	"github.com/ayodelep/weathercat/pkg/database"
	"github.com/ayodelep/weathercat/pkg/health"
	"github.com/ayodelep/weathercat/pkg/logger"
	"github.com/ayodelep/weathercat/pkg/middleware"
	"github.com/ayodelep/weathercat/pkg/random"
)

func main() {
	cfg, err := config.Load("weathercat-api")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)

	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Catalog backed by PostgreSQL with random.org supplying random picks.
	catalogRepo := catalog.NewRepository(pool)
	rng := random.NewClient(&cfg.Random)
	catalogService := catalog.NewService(catalogRepo, rng)
	catalogHandler := catalog.NewHandler(catalogService)

	// The favorites list lives in memory. Plays are counted back into the
	// catalog table.
	manager := favorites.NewManager(catalogService.RecordView)
	favoritesHandler := favorites.NewHandler(manager, catalogService)

	weatherClient := weather.NewClient(&cfg.Weather)
	weatherHandler := weather.NewHandler(manager, weatherClient)

	accountsRepo := accounts.NewRepository(pool)
	accountsService := accounts.NewService(accountsRepo, cfg.JWT)
	accountsHandler := accounts.NewHandler(accountsService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.Recovery())
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", common.HealthCheck())
	router.GET("/db-check", common.DBCheck(
		health.DatabaseChecker(pool),
		health.TableChecker(pool, "locations"),
	))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/locations", catalogHandler.CreateLocation)
	router.GET("/locations", catalogHandler.ListLocations)
	router.DELETE("/locations", catalogHandler.ResetCatalog)
	router.GET("/locations/random", catalogHandler.RandomLocation)
	router.GET("/locations/:id", catalogHandler.GetLocation)
	router.DELETE("/locations/:id", catalogHandler.DeleteLocation)

	router.POST("/favorites", favoritesHandler.AddFavorite)
	router.DELETE("/favorites", favoritesHandler.RemoveFavorite)
	router.GET("/favorites", favoritesHandler.ListFavorites)
	router.POST("/favorites/clear", favoritesHandler.ClearFavorites)
	router.GET("/favorites/current", favoritesHandler.CurrentFavorite)
	router.POST("/favorites/play", favoritesHandler.PlayFavorite)
	router.POST("/favorites/move-to-beginning", favoritesHandler.MoveToBeginning)
	router.POST("/favorites/move-to-end", favoritesHandler.MoveToEnd)
	router.POST("/favorites/swap", favoritesHandler.SwapFavorites)
	router.POST("/favorites/go-to", favoritesHandler.GoToPosition)
	router.POST("/favorites/go-to-name", favoritesHandler.GoToName)

	// Weather lookups fan out to a third-party API, so they get a hard
	// per-request deadline on top of the client timeouts.
	weatherTimeout := weatherTimeoutMiddleware(time.Duration(cfg.Weather.TimeoutSeconds+5) * time.Second)
	router.GET("/favorites/weather", weatherTimeout, weatherHandler.AllWeather)
	router.GET("/favorites/:name/weather", weatherTimeout, weatherHandler.CurrentWeather)
	router.GET("/favorites/:name/history", weatherTimeout, weatherHandler.WeatherHistory)
	router.GET("/favorites/:name/forecast", weatherTimeout, weatherHandler.WeatherForecast)

	router.POST("/accounts", accountsHandler.CreateAccount)
	router.POST("/login", accountsHandler.Login)
	router.POST("/password", accountsHandler.UpdatePassword)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func weatherTimeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(d),
		timeout.WithResponse(func(c *gin.Context) {
			common.ErrorResponse(c, http.StatusGatewayTimeout, "upstream weather request timed out")
		}),
	)
}
