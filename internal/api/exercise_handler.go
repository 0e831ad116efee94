package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
)

type ExerciseHandler struct {
	exerciseRepo repository.ExerciseRepository
}

func NewExerciseHandler(exerciseRepo repository.ExerciseRepository) *ExerciseHandler {
	return &ExerciseHandler{exerciseRepo: exerciseRepo}
}

// === DTOs ===

type ExerciseResponse struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	PrimaryMuscle   string `json:"primaryMuscle"`
	SecondaryMuscle string `json:"secondaryMuscle,omitempty"`
	Equipment       string `json:"equipment,omitempty"`
	Type            string `json:"type"`
}

type ExerciseLookupRequest struct {
	Names []string `json:"names" binding:"required"`
}

func MapExerciseToResponse(e domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:              e.ID,
		Name:            e.Name,
		PrimaryMuscle:   e.PrimaryMuscle,
		SecondaryMuscle: e.SecondaryMuscle,
		Equipment:       e.Equipment,
		Type:            e.Type,
	}
}

func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	resp := make([]ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		resp = append(resp, MapExerciseToResponse(e))
	}
	return resp
}

// === Handlers ===

// List handles GET /exercises and GET /exercises?muscle=Chest
func (h *ExerciseHandler) List(c *gin.Context) {
	var (
		exercises []domain.Exercise
		err       error
	)
	if muscle := c.Query("muscle"); muscle != "" {
		exercises, err = h.exerciseRepo.GetByPrimaryMuscle(c.Request.Context(), muscle)
	} else {
		exercises, err = h.exerciseRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		// Catalog unavailable reads as an empty catalog, not a failure.
		log.WithError(err).Warn("exercise catalog fetch failed")
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// Lookup handles POST /exercises/lookup
func (h *ExerciseHandler) Lookup(c *gin.Context) {
	var req ExerciseLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	exercises, err := h.exerciseRepo.GetByNames(c.Request.Context(), req.Names)
	if err != nil {
		log.WithError(err).Warn("exercise lookup failed")
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}
