package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ironlog/workout-app/internal/service"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// === DTOs ===

type PhaseResponse struct {
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

type PlanResponse struct {
	Name         string          `json:"name"`
	Phases       []PhaseResponse `json:"phases"`
	CurrentPhase int             `json:"currentPhase"`
}

type AdvanceRotationResponse struct {
	Name         string `json:"name"`
	CurrentPhase int    `json:"currentPhase"`
}

func MapPlanToResponse(p service.PlanStatus) PlanResponse {
	phases := make([]PhaseResponse, 0, len(p.Phases))
	for _, phase := range p.Phases {
		exercises := phase.Exercises
		if exercises == nil {
			exercises = []string{}
		}
		phases = append(phases, PhaseResponse{Name: phase.Name, Exercises: exercises})
	}
	return PlanResponse{
		Name:         p.Name,
		Phases:       phases,
		CurrentPhase: p.CurrentPhase,
	}
}

// === Handlers ===

// List handles GET /plans
func (h *PlanHandler) List(c *gin.Context) {
	plans := h.planService.Plans(c.Request.Context())

	resp := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, MapPlanToResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /plans/:name
func (h *PlanHandler) Get(c *gin.Context) {
	name := c.Param("name")

	plan, err := h.planService.Plan(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plan"})
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(*plan))
}

// LastWorkout handles GET /plans/last-workout
func (h *PlanHandler) LastWorkout(c *gin.Context) {
	name := h.planService.LastWorkout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"name": name})
}

// Advance handles POST /plans/:name/advance
func (h *PlanHandler) Advance(c *gin.Context) {
	name := c.Param("name")

	idx, err := h.planService.AdvanceRotation(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance rotation"})
		return
	}

	c.JSON(http.StatusOK, AdvanceRotationResponse{Name: name, CurrentPhase: idx})
}
