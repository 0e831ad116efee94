package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ironlog/workout-app/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// === DTOs ===

type FrequencyResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MuscleRecencyResponse struct {
	Muscle     string    `json:"muscle"`
	LastWorked time.Time `json:"lastWorked"`
}

// === Handlers ===

// Daily handles GET /stats/daily?metric=volume&period=month
func (h *StatsHandler) Daily(c *gin.Context) {
	metric, err := service.ParseMetric(c.DefaultQuery("metric", "volume"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	period, err := service.ParsePeriod(c.DefaultQuery("period", "week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.statsService.Chart(c.Request.Context(), metric, period))
}

// Frequency handles GET /stats/frequency
func (h *StatsHandler) Frequency(c *gin.Context) {
	counts := h.statsService.ExerciseFrequency(c.Request.Context())

	resp := make([]FrequencyResponse, 0, len(counts))
	for name, count := range counts {
		resp = append(resp, FrequencyResponse{Name: name, Count: count})
	}
	c.JSON(http.StatusOK, resp)
}

// Muscles handles GET /stats/muscles
func (h *StatsHandler) Muscles(c *gin.Context) {
	recency := h.statsService.MuscleLastWorked(c.Request.Context())

	resp := make([]MuscleRecencyResponse, 0, len(recency))
	for muscle, last := range recency {
		resp = append(resp, MuscleRecencyResponse{Muscle: muscle, LastWorked: last})
	}
	c.JSON(http.StatusOK, resp)
}
