package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fittrack/internal/ai"
	"fittrack/internal/api"
	"fittrack/internal/config"
	"fittrack/internal/repository/mongo"
	"fittrack/internal/service"
	"fittrack/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title FitTrack API
// @version 1.0
// @description API for personal fitness and nutrition tracking: profiles, AI-generated workout plans, meal plans and body measurements.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting FitTrack server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
		mongo.EnsureWorkoutPlanIndexes(ctx, appDB.Collection("workout_plans"))
		mongo.EnsureMealPlanIndexes(ctx, appDB.Collection("meal_plans"))
		mongo.EnsureFoodEntryIndexes(ctx, appDB.Collection("food_entries"))
		mongo.EnsureMeasurementIndexes(ctx, appDB.Collection("measurements"))
		mongo.EnsureUploadIndexes(ctx, appDB.Collection("uploads"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	workoutPlanRepo := mongo.NewMongoWorkoutPlanRepository(appDB)
	mealPlanRepo := mongo.NewMongoMealPlanRepository(appDB)
	foodEntryRepo := mongo.NewMongoFoodEntryRepository(appDB)
	measurementRepo := mongo.NewMongoMeasurementRepository(appDB)
	uploadRepo := mongo.NewMongoUploadRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	assistant := ai.NewClient(cfg.Assistant.BaseURL, cfg.Assistant.APIKey, cfg.Assistant.Model, cfg.Assistant.Timeout)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo)
	nutritionService := service.NewNutritionService(mealPlanRepo, workoutPlanRepo, profileRepo)
	trackingService := service.NewTrackingService(foodEntryRepo, measurementRepo, uploadRepo, fileStorage)
	workoutService := service.NewWorkoutService(workoutPlanRepo, profileRepo, assistant)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, nutritionService, trackingService, workoutService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
