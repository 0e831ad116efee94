package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"ironlog/workout-app/internal/api"
	"ironlog/workout-app/internal/config"
	"ironlog/workout-app/internal/repository/mongo"
	"ironlog/workout-app/internal/service"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Println("Starting Workout App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret (JWT_SECRET) must be set")
	}
	if cfg.Auth.ClientKey == "" {
		log.Fatal("FATAL: auth.client_key (AUTH_CLIENT_KEY) must be set")
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
			log.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Initialize Repositories ---
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	preferenceRepo := mongo.NewMongoPreferenceRepository(appDB)
	settingsRepo := mongo.NewMongoSettingsRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(cfg.Auth.ClientKey, cfg.JWT.Secret, cfg.JWT.Expiration)
	statsService := service.NewStatsService(workoutRepo, exerciseRepo, nil)
	recommendationService := service.NewRecommendationService(exerciseRepo, preferenceRepo, statsService, nil)
	planService := service.NewPlanService(planRepo, settingsRepo)
	sessionService := service.NewSessionService(
		workoutRepo, preferenceRepo, settingsRepo,
		recommendationService, cfg.Session.DefaultRest, nil, nil,
	)
	defer sessionService.Close()

	// --- Initialize Gin Engine ---
	router := gin.Default()

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(
		router, cfg.JWT.Secret,
		authService, sessionService, planService, statsService,
		exerciseRepo, workoutRepo,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
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
