package service

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/ai"
	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutPlanNotFound = errors.New("workout plan not found")
	ErrWorkoutNotScheduled = errors.New("no workout scheduled for this date")
	ErrExerciseNotInPlan   = errors.New("exercise not found in the day's workout")
)

// PlanGenerator is the single exchange with the external assistant:
// prompt in, raw reply out. *ai.Client satisfies it.
type PlanGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// WorkoutService owns the user's workout plan: AI generation, manual
// editing, lifted-weight progress and soft deletion.
type WorkoutService interface {
	GeneratePlan(ctx context.Context, userID primitive.ObjectID, req ai.PlanRequest) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, userID primitive.ObjectID, edit PlanEdit) (*domain.WorkoutPlan, error)
	RecordExerciseWeight(ctx context.Context, userID primitive.ObjectID, date, exerciseName string, weight float64) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, userID primitive.ObjectID) error
}

// PlanEdit is a manual plan edit. Nil maps leave the stored section
// unchanged.
type PlanEdit struct {
	WeeklyWorkoutSchedule map[string][]string            `json:"weeklyWorkoutSchedule,omitempty"`
	ExerciseDescriptions  map[string]string              `json:"exerciseDescriptions,omitempty"`
	DetailedWorkoutPlan   map[string]domain.DailyWorkout `json:"detailedWorkoutPlan,omitempty"`
}

type workoutService struct {
	workoutPlanRepo repository.WorkoutPlanRepository
	profileRepo     repository.ProfileRepository
	generator       PlanGenerator
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutPlanRepo repository.WorkoutPlanRepository,
	profileRepo repository.ProfileRepository,
	generator PlanGenerator,
) WorkoutService {
	return &workoutService{
		workoutPlanRepo: workoutPlanRepo,
		profileRepo:     profileRepo,
		generator:       generator,
	}
}

// GeneratePlan asks the assistant for a plan built from the user's
// profile and the request knobs, validates the reply, and stores it as
// the user's live plan (replacing any previous one, tombstoned or not).
func (s *workoutService) GeneratePlan(ctx context.Context, userID primitive.ObjectID, req ai.PlanRequest) (*domain.WorkoutPlan, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		profile = &domain.UserProfile{} // prompt falls back to "Not specified"
	}

	raw, err := s.generator.Complete(ctx, ai.BuildPlanPrompt(profile, req))
	if err != nil {
		return nil, err
	}

	generated, err := ai.ExtractPlan(raw)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := &domain.WorkoutPlan{
		UserID:                userID,
		WeeklyWorkoutSchedule: generated.WeeklyWorkoutSchedule,
		ExerciseDescriptions:  generated.ExerciseDescriptions,
		SafetyAdvice:          generated.SafetyAdvice,
		ProgressSuggestions:   generated.ProgressSuggestions,
		DetailedWorkoutPlan:   map[string]domain.DailyWorkout{},
		StartDate:             &now,
	}

	if err := s.workoutPlanRepo.Upsert(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan returns the user's live plan.
func (s *workoutService) GetPlan(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.workoutPlanRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// UpdatePlan applies a manual edit to the live plan.
func (s *workoutService) UpdatePlan(ctx context.Context, userID primitive.ObjectID, edit PlanEdit) (*domain.WorkoutPlan, error) {
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	if edit.WeeklyWorkoutSchedule != nil {
		plan.WeeklyWorkoutSchedule = edit.WeeklyWorkoutSchedule
	}
	if edit.ExerciseDescriptions != nil {
		plan.ExerciseDescriptions = edit.ExerciseDescriptions
	}
	if edit.DetailedWorkoutPlan != nil {
		plan.DetailedWorkoutPlan = edit.DetailedWorkoutPlan
	}

	if err := s.workoutPlanRepo.Upsert(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// RecordExerciseWeight stores the weight lifted for an exercise on a
// given date's session.
func (s *workoutService) RecordExerciseWeight(ctx context.Context, userID primitive.ObjectID, date, exerciseName string, weight float64) (*domain.WorkoutPlan, error) {
	plan, err := s.GetPlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	day, ok := plan.DetailedWorkoutPlan[date]
	if !ok {
		return nil, ErrWorkoutNotScheduled
	}

	found := false
	for i := range day.Exercises {
		if day.Exercises[i].Name == exerciseName {
			day.Exercises[i].Weight = &weight
			found = true
			break
		}
	}
	if !found {
		return nil, ErrExerciseNotInPlan
	}
	plan.DetailedWorkoutPlan[date] = day

	if err := s.workoutPlanRepo.Upsert(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan tombstones the live plan; the document stays behind for
// audit but reads treat it as absent from here on.
func (s *workoutService) DeletePlan(ctx context.Context, userID primitive.ObjectID) error {
	err := s.workoutPlanRepo.SoftDelete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutPlanNotFound
	}
	return err
}
