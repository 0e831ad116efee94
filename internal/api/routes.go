package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ironlog/workout-app/internal/repository"
	"ironlog/workout-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	sessionService service.SessionService,
	planService service.PlanService,
	statsService service.StatsService,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
) {

	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseRepo)
	planHandler := NewPlanHandler(planService)
	workoutHandler := NewWorkoutHandler(workoutRepo)
	sessionHandler := NewSessionHandler(sessionService)
	statsHandler := NewStatsHandler(statsService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/token", authHandler.Token)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.POST("/lookup", exerciseHandler.Lookup)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.List)
			planGroup.GET("/last-workout", planHandler.LastWorkout)
			planGroup.GET("/:name", planHandler.Get)
			planGroup.POST("/:name/advance", planHandler.Advance)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.List)
			workoutGroup.GET("/:id", workoutHandler.Get)
		}

		sessionGroup := protected.Group("/session")
		{
			sessionGroup.POST("", sessionHandler.Start)
			sessionGroup.GET("", sessionHandler.Status)
			sessionGroup.DELETE("", sessionHandler.Finish)

			sessionGroup.POST("/exercises", sessionHandler.AddExercise)
			sessionGroup.DELETE("/exercises/:name", sessionHandler.RemoveExercise)
			sessionGroup.POST("/exercises/:name/sets", sessionHandler.AddSet)
			sessionGroup.PUT("/exercises/:name/sets/:number", sessionHandler.UpdateSet)
			sessionGroup.DELETE("/exercises/:name/sets/:number", sessionHandler.RemoveSet)

			sessionGroup.GET("/rest", sessionHandler.GetRestDuration)
			sessionGroup.PUT("/rest", sessionHandler.SetRestDuration)
			sessionGroup.POST("/rest/start", sessionHandler.StartRest)
			sessionGroup.POST("/rest/stop", sessionHandler.StopRest)

			sessionGroup.GET("/recommendations", sessionHandler.Recommendations)
			sessionGroup.GET("/recovery", sessionHandler.Recovery)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/daily", statsHandler.Daily)
			statsGroup.GET("/frequency", statsHandler.Frequency)
			statsGroup.GET("/muscles", statsHandler.Muscles)
		}
	}
}
