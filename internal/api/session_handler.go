package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ironlog/workout-app/internal/service"
	"ironlog/workout-app/internal/session"
)

type SessionHandler struct {
	sessionService service.SessionService
}

func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// === DTOs ===

type StartSessionRequest struct {
	Name      string   `json:"name" binding:"required"`
	Exercises []string `json:"exercises"`
}

type AddExerciseRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateSetRequest struct {
	Weight float64 `json:"weight" binding:"min=0"`
	Reps   int     `json:"reps" binding:"min=0"`
}

type RestDurationRequest struct {
	DurationMs int64 `json:"durationMs" binding:"required,min=1000"`
}

type RestDurationResponse struct {
	DurationMs int64 `json:"durationMs"`
}

type SessionStatusResponse struct {
	Name            string                   `json:"name"`
	ElapsedMs       int64                    `json:"elapsedMs"`
	Volume          float64                  `json:"volume"`
	Sets            int                      `json:"sets"`
	RestRunning     bool                     `json:"restRunning"`
	RestRemainingMs int64                    `json:"restRemainingMs"`
	RestDurationMs  int64                    `json:"restDurationMs"`
	Exercises       []ExerciseRecordResponse `json:"exercises"`
}

type RecoveryResponse struct {
	Name   string  `json:"name"`
	Volume float64 `json:"volume"`
	Sets   int     `json:"sets"`
}

func MapStatusToResponse(s service.SessionStatus) SessionStatusResponse {
	exercises := make([]ExerciseRecordResponse, 0, len(s.Exercises))
	for _, e := range s.Exercises {
		exercises = append(exercises, MapExerciseRecordToResponse(e))
	}
	return SessionStatusResponse{
		Name:            s.Name,
		ElapsedMs:       s.Elapsed.Milliseconds(),
		Volume:          s.Volume,
		Sets:            s.Sets,
		RestRunning:     s.RestRunning,
		RestRemainingMs: s.RestRemaining.Milliseconds(),
		RestDurationMs:  s.RestDuration.Milliseconds(),
		Exercises:       exercises,
	}
}

// === Handlers ===

// Start handles POST /session
func (h *SessionHandler) Start(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	status, err := h.sessionService.Start(c.Request.Context(), req.Name, req.Exercises)
	if err != nil {
		if errors.Is(err, service.ErrSessionInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "A workout session is already in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusCreated, MapStatusToResponse(*status))
}

// Status handles GET /session
func (h *SessionHandler) Status(c *gin.Context) {
	status, err := h.sessionService.Status(c.Request.Context())
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapStatusToResponse(*status))
}

// Finish handles DELETE /session
func (h *SessionHandler) Finish(c *gin.Context) {
	record, err := h.sessionService.Finish(c.Request.Context())
	if err != nil {
		h.sessionError(c, err)
		return
	}
	if record == nil {
		// Nothing worth keeping was logged; the session is discarded.
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(*record))
}

// AddExercise handles POST /session/exercises
func (h *SessionHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.sessionService.AddExercise(c.Request.Context(), req.Name); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

// RemoveExercise handles DELETE /session/exercises/:name
func (h *SessionHandler) RemoveExercise(c *gin.Context) {
	if err := h.sessionService.RemoveExercise(c.Request.Context(), c.Param("name")); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddSet handles POST /session/exercises/:name/sets
func (h *SessionHandler) AddSet(c *gin.Context) {
	set, err := h.sessionService.AddSet(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapSetToResponse(set))
}

// UpdateSet handles PUT /session/exercises/:name/sets/:number
func (h *SessionHandler) UpdateSet(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid set number"})
		return
	}

	var req UpdateSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.sessionService.UpdateSet(c.Request.Context(), c.Param("name"), number, req.Weight, req.Reps); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveSet handles DELETE /session/exercises/:name/sets/:number
func (h *SessionHandler) RemoveSet(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid set number"})
		return
	}

	if err := h.sessionService.RemoveSet(c.Request.Context(), c.Param("name"), number); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRestDuration handles GET /session/rest
func (h *SessionHandler) GetRestDuration(c *gin.Context) {
	d := h.sessionService.RestDuration(c.Request.Context())
	c.JSON(http.StatusOK, RestDurationResponse{DurationMs: d.Milliseconds()})
}

// SetRestDuration handles PUT /session/rest
func (h *SessionHandler) SetRestDuration(c *gin.Context) {
	var req RestDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	d := time.Duration(req.DurationMs) * time.Millisecond
	if err := h.sessionService.SetRestDuration(c.Request.Context(), d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rest duration"})
		return
	}
	c.JSON(http.StatusOK, RestDurationResponse{DurationMs: d.Milliseconds()})
}

// StartRest handles POST /session/rest/start
func (h *SessionHandler) StartRest(c *gin.Context) {
	if err := h.sessionService.StartRest(c.Request.Context()); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StopRest handles POST /session/rest/stop
func (h *SessionHandler) StopRest(c *gin.Context) {
	if err := h.sessionService.StopRest(c.Request.Context()); err != nil {
		h.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recommendations handles GET /session/recommendations
func (h *SessionHandler) Recommendations(c *gin.Context) {
	exercises, err := h.sessionService.Recommendations(c.Request.Context())
	if err != nil {
		h.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// Recovery handles GET /session/recovery
func (h *SessionHandler) Recovery(c *gin.Context) {
	snapshot := h.sessionService.RecoverySnapshot(c.Request.Context())
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No abandoned session"})
		return
	}
	c.JSON(http.StatusOK, RecoveryResponse{
		Name:   snapshot.Name,
		Volume: snapshot.Volume,
		Sets:   snapshot.Sets,
	})
}

// Maps session level errors onto HTTP statuses.
func (h *SessionHandler) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		c.JSON(http.StatusNotFound, gin.H{"error": "No workout session in progress"})
	case errors.Is(err, session.ErrExerciseExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Exercise already in session"})
	case errors.Is(err, session.ErrExerciseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not in session"})
	case errors.Is(err, session.ErrSetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Set not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session operation failed"})
	}
}
