package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"
)

type WorkoutHandler struct {
	workoutRepo repository.WorkoutRepository
}

func NewWorkoutHandler(workoutRepo repository.WorkoutRepository) *WorkoutHandler {
	return &WorkoutHandler{workoutRepo: workoutRepo}
}

// === DTOs ===

type SetResponse struct {
	Number int     `json:"number"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type ExerciseRecordResponse struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Sets        []SetResponse `json:"sets"`
}

type WorkoutResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	StartTime  time.Time                `json:"startTime"`
	EndTime    time.Time                `json:"endTime"`
	DurationMs int64                    `json:"durationMs"`
	Sets       int                      `json:"sets"`
	Volume     float64                  `json:"volume"`
	Exercises  []ExerciseRecordResponse `json:"exercises"`
}

func MapSetToResponse(s domain.SetRecord) SetResponse {
	return SetResponse{Number: s.Number, Weight: s.Weight, Reps: s.Reps}
}

func MapExerciseRecordToResponse(e domain.ExerciseRecord) ExerciseRecordResponse {
	sets := make([]SetResponse, 0, len(e.Sets))
	for _, s := range e.Sets {
		sets = append(sets, MapSetToResponse(s))
	}
	return ExerciseRecordResponse{Name: e.Name, Description: e.Description, Sets: sets}
}

func MapWorkoutToResponse(w domain.WorkoutRecord) WorkoutResponse {
	exercises := make([]ExerciseRecordResponse, 0, len(w.Exercises))
	for _, e := range w.Exercises {
		exercises = append(exercises, MapExerciseRecordToResponse(e))
	}
	return WorkoutResponse{
		ID:         w.ID,
		Name:       w.Name,
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
		DurationMs: w.Duration().Milliseconds(),
		Sets:       w.Sets,
		Volume:     w.Volume,
		Exercises:  exercises,
	}
}

// === Handlers ===

// List handles GET /workouts
func (h *WorkoutHandler) List(c *gin.Context) {
	workouts, err := h.workoutRepo.GetAll(c.Request.Context())
	if err != nil {
		log.WithError(err).Warn("workout history fetch failed")
		c.JSON(http.StatusOK, []WorkoutResponse{})
		return
	}

	resp := make([]WorkoutResponse, 0, len(workouts))
	for _, w := range workouts {
		resp = append(resp, MapWorkoutToResponse(w))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /workouts/:id
func (h *WorkoutHandler) Get(c *gin.Context) {
	id := c.Param("id")

	workout, err := h.workoutRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch workout"})
		return
	}

	c.JSON(http.StatusOK, MapWorkoutToResponse(*workout))
}
