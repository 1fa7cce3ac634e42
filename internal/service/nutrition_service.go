package service

import (
	"context"
	"errors"

	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMealPlanNotFound = errors.New("no meal plan exists for this date")
	ErrMealNotFound     = errors.New("meal not found in plan")
	ErrMealValidation   = errors.New("meal validation failed")
)

// DailyPlan joins the meal plan and the scheduled workout for one
// calendar date. Either side may be nil.
type DailyPlan struct {
	MealPlan *domain.MealPlan     `json:"mealPlan"`
	Workout  *domain.DailyWorkout `json:"workout"`
}

// NutritionService owns per-date meal plans: the totals aggregator and
// the daily plan composer.
type NutritionService interface {
	GetDailyPlan(ctx context.Context, userID primitive.ObjectID, date string) (*DailyPlan, error)
	AddMeal(ctx context.Context, userID primitive.ObjectID, date string, meal domain.Meal) (*domain.MealPlan, error)
	EditMeal(ctx context.Context, userID primitive.ObjectID, date, mealID string, patch domain.MealPatch) (*domain.MealPlan, error)
	DeleteMeal(ctx context.Context, userID primitive.ObjectID, date, mealID string) (*domain.MealPlan, error)
	SetMealCompletion(ctx context.Context, userID primitive.ObjectID, date, mealID string, completed bool) (*domain.MealPlan, error)
}

type nutritionService struct {
	mealPlanRepo    repository.MealPlanRepository
	workoutPlanRepo repository.WorkoutPlanRepository
	profileRepo     repository.ProfileRepository
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(
	mealPlanRepo repository.MealPlanRepository,
	workoutPlanRepo repository.WorkoutPlanRepository,
	profileRepo repository.ProfileRepository,
) NutritionService {
	return &nutritionService{
		mealPlanRepo:    mealPlanRepo,
		workoutPlanRepo: workoutPlanRepo,
		profileRepo:     profileRepo,
	}
}

// GetDailyPlan fetches the workout and meal plan for a date
// independently and joins them on the date string. When a workout is
// scheduled but no meal plan exists yet, a plan is synthesized with
// workout-day targets, persisted, and returned; a second call then
// finds the stored plan and does not re-synthesize.
func (s *nutritionService) GetDailyPlan(ctx context.Context, userID primitive.ObjectID, date string) (*DailyPlan, error) {
	workout, err := s.workoutForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	mealPlan, err := s.mealPlanRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if mealPlan == nil && workout != nil {
		mealPlan, err = s.synthesizeMealPlan(ctx, userID, date)
		if err != nil {
			return nil, err
		}
	}

	return &DailyPlan{MealPlan: mealPlan, Workout: workout}, nil
}

// AddMeal appends a meal to the date's plan, creating the plan lazily
// on first use, and recomputes the totals over the full list.
func (s *nutritionService) AddMeal(ctx context.Context, userID primitive.ObjectID, date string, meal domain.Meal) (*domain.MealPlan, error) {
	if meal.Name == "" || meal.TimeOfDay == "" {
		return nil, ErrMealValidation
	}
	meal.ID = uuid.NewString()

	plan, err := s.mealPlanRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		plan = &domain.MealPlan{
			UserID: userID,
			Date:   date,
			Meals:  []domain.Meal{meal},
		}
		plan.RecomputeTotals()
		if _, err := s.mealPlanRepo.Create(ctx, plan); err != nil {
			return nil, err
		}
		return plan, nil
	}

	plan.Meals = append(plan.Meals, meal)
	plan.RecomputeTotals()
	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// EditMeal merges the patch into the identified meal and recomputes
// the totals.
func (s *nutritionService) EditMeal(ctx context.Context, userID primitive.ObjectID, date, mealID string, patch domain.MealPatch) (*domain.MealPlan, error) {
	plan, err := s.loadPlan(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	meal := plan.MealByID(mealID)
	if meal == nil {
		return nil, ErrMealNotFound
	}
	patch.Apply(meal)

	plan.RecomputeTotals()
	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeleteMeal removes the identified meal and recomputes the totals
// over the remaining list.
func (s *nutritionService) DeleteMeal(ctx context.Context, userID primitive.ObjectID, date, mealID string) (*domain.MealPlan, error) {
	plan, err := s.loadPlan(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	if !plan.RemoveMeal(mealID) {
		return nil, ErrMealNotFound
	}

	plan.RecomputeTotals()
	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// SetMealCompletion toggles a meal's completion flag. Totals are
// unaffected: completion is progress state, not intake.
func (s *nutritionService) SetMealCompletion(ctx context.Context, userID primitive.ObjectID, date, mealID string, completed bool) (*domain.MealPlan, error) {
	plan, err := s.loadPlan(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	meal := plan.MealByID(mealID)
	if meal == nil {
		return nil, ErrMealNotFound
	}
	meal.IsCompleted = completed

	if err := s.mealPlanRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// loadPlan fetches the plan for a date, mapping a missing document to
// ErrMealPlanNotFound. Mutations other than AddMeal never create.
func (s *nutritionService) loadPlan(ctx context.Context, userID primitive.ObjectID, date string) (*domain.MealPlan, error) {
	plan, err := s.mealPlanRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMealPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// workoutForDate resolves the scheduled session for the date; a
// missing or tombstoned workout plan reads as no workout.
func (s *nutritionService) workoutForDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyWorkout, error) {
	plan, err := s.workoutPlanRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan.WorkoutForDate(date), nil
}

// synthesizeMealPlan creates and persists an empty meal plan with
// workout-day targets derived from the profile's calorie baseline.
func (s *nutritionService) synthesizeMealPlan(ctx context.Context, userID primitive.ObjectID, date string) (*domain.MealPlan, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	plan := &domain.MealPlan{
		UserID: userID,
		Date:   date,
		Meals:  []domain.Meal{},
	}
	plan.SetTargets(domain.CalculateNutritionTargets(profile.CalorieBaseline(), true))
	plan.RecomputeTotals()

	if _, err := s.mealPlanRepo.Create(ctx, plan); err != nil {
		// A racing request may have created the plan first; fetch it.
		if errors.Is(err, repository.ErrDuplicate) {
			return s.mealPlanRepo.GetByUserAndDate(ctx, userID, date)
		}
		return nil, err
	}
	return plan, nil
}
