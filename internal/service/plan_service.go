package service

import (
	"context"
	"errors"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/repository"

	log "github.com/sirupsen/logrus"
)

var ErrPlanNotFound = errors.New("workout plan not found")

// PlanStatus is a plan together with its persisted rotation position.
type PlanStatus struct {
	domain.WorkoutPlan
	// CurrentPhase indexes the phase the user is due next; always in
	// [0, len(Phases)) for non-empty plans.
	CurrentPhase int `json:"currentPhase"`
}

// PlanService serves workout plan templates and tracks each plan's
// rotation through its phases.
type PlanService interface {
	Plans(ctx context.Context) []PlanStatus
	Plan(ctx context.Context, name string) (*PlanStatus, error)
	// AdvanceRotation moves the plan to its next phase, wrapping around
	// at the end, and returns the new phase index.
	AdvanceRotation(ctx context.Context, name string) (int, error)
	LastWorkout(ctx context.Context) string
}

type planService struct {
	planRepo repository.PlanRepository
	settings repository.SettingsRepository
}

// NewPlanService creates a new plan service.
func NewPlanService(planRepo repository.PlanRepository, settings repository.SettingsRepository) PlanService {
	return &planService{
		planRepo: planRepo,
		settings: settings,
	}
}

func (s *planService) Plans(ctx context.Context) []PlanStatus {
	plans, err := s.planRepo.GetAll(ctx)
	if err != nil {
		log.Warnf("plans: failed to load workout plans: %s", err)
		return nil
	}

	statuses := make([]PlanStatus, 0, len(plans))
	for _, plan := range plans {
		statuses = append(statuses, PlanStatus{
			WorkoutPlan:  plan,
			CurrentPhase: s.rotation(ctx, plan),
		})
	}
	return statuses
}

func (s *planService) Plan(ctx context.Context, name string) (*PlanStatus, error) {
	plan, err := s.planRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &PlanStatus{
		WorkoutPlan:  *plan,
		CurrentPhase: s.rotation(ctx, *plan),
	}, nil
}

func (s *planService) AdvanceRotation(ctx context.Context, name string) (int, error) {
	plan, err := s.planRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrPlanNotFound
		}
		return 0, err
	}
	if len(plan.Phases) == 0 {
		// Nothing to rotate through.
		return 0, nil
	}

	next := (s.rotation(ctx, *plan) + 1) % len(plan.Phases)
	if err := s.settings.SetPlanRotation(ctx, name, next); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *planService) LastWorkout(ctx context.Context) string {
	name, err := s.settings.LastWorkout(ctx)
	if err != nil {
		log.Warnf("plans: failed to read last workout: %s", err)
		return ""
	}
	return name
}

// rotation reads the persisted phase index for a plan, clamping
// anything out of range (e.g. after a plan shrank) back to zero.
func (s *planService) rotation(ctx context.Context, plan domain.WorkoutPlan) int {
	index, err := s.settings.PlanRotation(ctx, plan.Name)
	if err != nil {
		log.Warnf("plans: failed to read rotation for %q: %s", plan.Name, err)
		return 0
	}
	if index < 0 || index >= len(plan.Phases) {
		return 0
	}
	return index
}
