package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/logging"
	"github.com/plateful/backend/internal/provider/spoonacular"
	"github.com/plateful/backend/internal/router"
	"github.com/plateful/backend/internal/server"
	"github.com/plateful/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}

	// Image uploads are disabled when S3 is unreachable; everything
	// else keeps working.
	var imageService *service.ImageService
	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logger.Warn("s3 unavailable, image uploads disabled", zap.Error(err))
	} else {
		imageService = service.NewImageService(s3cfg)
	}

	var provider service.RecipeProvider
	if cfg.SpoonacularAPIKey != "" {
		provider = spoonacular.NewClient(cfg.SpoonacularBaseURL, cfg.SpoonacularAPIKey)
	} else {
		logger.Warn("no spoonacular api key configured, external recipes unavailable")
	}

	resolver := service.NewResolverService(db, provider, logger)
	authService := service.NewAuthService(db, redisClient, cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	recipeService := service.NewRecipeService(db)
	mealPlanService := service.NewMealPlanService(db, resolver, logger)
	preparationService := service.NewPreparationService(db, resolver, logger)
	favoritesService := service.NewFavoritesService(db, resolver, logger)

	handlers := router.Handlers{
		Auth:         api.NewAuthHandler(authService),
		Profile:      api.NewProfileHandler(service.NewProfileService(db)),
		Recipes:      api.NewRecipeHandler(recipeService, resolver, imageService),
		Family:       api.NewFamilyHandler(service.NewFamilyService(db)),
		MealPlans:    api.NewMealPlanHandler(mealPlanService),
		Preparations: api.NewPreparationHandler(preparationService),
		Favorites:    api.NewFavoritesHandler(favoritesService),
	}

	engine := router.SetupRouter(handlers, authService, cfg.AllowedOrigins)
	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
