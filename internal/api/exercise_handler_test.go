package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironlog/workout-app/internal/domain"
)

type stubExerciseRepo struct {
	exercises []domain.Exercise
	err       error
}

func (s *stubExerciseRepo) GetAll(ctx context.Context) ([]domain.Exercise, error) {
	return s.exercises, s.err
}

func (s *stubExerciseRepo) GetByPrimaryMuscle(ctx context.Context, muscle string) ([]domain.Exercise, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Exercise
	for _, e := range s.exercises {
		if e.PrimaryMuscle == muscle {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubExerciseRepo) GetByNames(ctx context.Context, names []string) ([]domain.Exercise, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}
	var out []domain.Exercise
	for _, e := range s.exercises {
		if _, ok := wanted[e.Name]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func exerciseRouter(repo *stubExerciseRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewExerciseHandler(repo)
	router := gin.New()
	router.GET("/exercises", handler.List)
	router.POST("/exercises/lookup", handler.Lookup)
	return router
}

func catalogStub() *stubExerciseRepo {
	return &stubExerciseRepo{
		exercises: []domain.Exercise{
			{ID: 1, Name: "Bench Press", PrimaryMuscle: "Chest", SecondaryMuscle: "Triceps", Type: "Compound"},
			{ID: 2, Name: "Squat", PrimaryMuscle: "Quadriceps", Type: "Compound"},
			{ID: 3, Name: "Lateral Raise", PrimaryMuscle: "Shoulders", Type: "Isolation"},
		},
	}
}

func TestExerciseList(t *testing.T) {
	router := exerciseRouter(catalogStub())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercises", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, "Bench Press", resp[0].Name)
	assert.Equal(t, "Chest", resp[0].PrimaryMuscle)
}

func TestExerciseListFilterByMuscle(t *testing.T) {
	router := exerciseRouter(catalogStub())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercises?muscle=Chest", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Bench Press", resp[0].Name)
}

func TestExerciseListStoreFailureIsEmptyList(t *testing.T) {
	router := exerciseRouter(&stubExerciseRepo{err: assert.AnError})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercises", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestExerciseLookup(t *testing.T) {
	router := exerciseRouter(catalogStub())
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"names":["Squat","Lateral Raise"]}`)
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/exercises/lookup", body))

	require.Equal(t, http.StatusOK, w.Code)
	var resp []ExerciseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestExerciseLookupBadBody(t *testing.T) {
	router := exerciseRouter(catalogStub())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/exercises/lookup", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
