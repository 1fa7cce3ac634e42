package service

import (
	"context"
	"testing"

	"fittrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testDate = "2026-09-01"

func newNutritionFixture() (NutritionService, *fakeMealPlanRepo, *fakeWorkoutPlanRepo, *fakeProfileRepo, primitive.ObjectID) {
	mealPlans := newFakeMealPlanRepo()
	workoutPlans := newFakeWorkoutPlanRepo()
	profiles := newFakeProfileRepo()
	svc := NewNutritionService(mealPlans, workoutPlans, profiles)
	return svc, mealPlans, workoutPlans, profiles, primitive.NewObjectID()
}

func seedWorkout(t *testing.T, repo *fakeWorkoutPlanRepo, userID primitive.ObjectID, date string) {
	t.Helper()
	err := repo.Upsert(context.Background(), &domain.WorkoutPlan{
		UserID: userID,
		DetailedWorkoutPlan: map[string]domain.DailyWorkout{
			date: {Name: "Upper Body", Exercises: []domain.PlannedExercise{
				{Name: "Bench Press", Sets: 3, Reps: 8, Rest: 90},
			}},
		},
	})
	require.NoError(t, err)
}

func TestGetDailyPlan_JoinsMealPlanAndWorkout(t *testing.T) {
	svc, mealPlans, workoutPlans, _, userID := newNutritionFixture()
	seedWorkout(t, workoutPlans, userID, testDate)

	stored := &domain.MealPlan{UserID: userID, Date: testDate, Meals: []domain.Meal{
		{ID: "m1", Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300},
	}}
	stored.RecomputeTotals()
	_, err := mealPlans.Create(context.Background(), stored)
	require.NoError(t, err)

	plan, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)

	require.NotNil(t, plan.MealPlan)
	require.NotNil(t, plan.Workout)
	assert.Equal(t, "Upper Body", plan.Workout.Name)
	assert.Equal(t, 300, plan.MealPlan.TotalCalories)
}

func TestGetDailyPlan_NothingScheduled(t *testing.T) {
	svc, mealPlans, _, _, userID := newNutritionFixture()

	plan, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)

	assert.Nil(t, plan.MealPlan)
	assert.Nil(t, plan.Workout)
	assert.Zero(t, mealPlans.creates, "no plan should be persisted when no workout is scheduled")
}

func TestGetDailyPlan_SynthesizesPlanOnWorkoutDay(t *testing.T) {
	svc, mealPlans, workoutPlans, _, userID := newNutritionFixture()
	seedWorkout(t, workoutPlans, userID, testDate)

	plan, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)

	require.NotNil(t, plan.MealPlan)
	assert.Empty(t, plan.MealPlan.Meals)
	// Default 2000 kcal baseline with the workout-day bump.
	assert.Equal(t, 2400, plan.MealPlan.TargetCalories)
	assert.Equal(t, 180, plan.MealPlan.TargetProtein)
	assert.Equal(t, 270, plan.MealPlan.TargetCarbs)
	assert.Equal(t, 67, plan.MealPlan.TargetFat)
	assert.Zero(t, plan.MealPlan.TotalCalories)
	assert.Equal(t, 1, mealPlans.creates)
}

func TestGetDailyPlan_SynthesizesOnlyOnce(t *testing.T) {
	svc, mealPlans, workoutPlans, _, userID := newNutritionFixture()
	seedWorkout(t, workoutPlans, userID, testDate)

	_, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)
	again, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 1, mealPlans.creates, "second read must find the stored plan")
	assert.Equal(t, 2400, again.MealPlan.TargetCalories)
}

func TestGetDailyPlan_SynthesisUsesProfileBaseline(t *testing.T) {
	svc, _, workoutPlans, profiles, userID := newNutritionFixture()
	seedWorkout(t, workoutPlans, userID, testDate)
	require.NoError(t, profiles.Upsert(context.Background(), &domain.UserProfile{
		UserID:           userID,
		DailyCalorieGoal: 1800,
	}))

	plan, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)

	assert.Equal(t, 2160, plan.MealPlan.TargetCalories)
	assert.Equal(t, 162, plan.MealPlan.TargetProtein)
	assert.Equal(t, 243, plan.MealPlan.TargetCarbs)
	assert.Equal(t, 60, plan.MealPlan.TargetFat)
}

func TestGetDailyPlan_TombstonedWorkoutPlanReadsAsNoWorkout(t *testing.T) {
	svc, mealPlans, workoutPlans, _, userID := newNutritionFixture()
	seedWorkout(t, workoutPlans, userID, testDate)
	require.NoError(t, workoutPlans.SoftDelete(context.Background(), userID))

	plan, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)

	assert.Nil(t, plan.Workout)
	assert.Nil(t, plan.MealPlan)
	assert.Zero(t, mealPlans.creates)
}

func TestAddMeal_CreatesPlanOnFirstUse(t *testing.T) {
	svc, mealPlans, _, _, userID := newNutritionFixture()

	plan, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300, Protein: 10, Carbs: 55, Fat: 6,
	})
	require.NoError(t, err)

	require.Len(t, plan.Meals, 1)
	assert.NotEmpty(t, plan.Meals[0].ID)
	assert.Equal(t, 300, plan.TotalCalories)
	assert.Equal(t, 1, mealPlans.creates)
}

func TestAddMeal_AppendsAndRecomputesTotals(t *testing.T) {
	svc, _, _, _, userID := newNutritionFixture()

	_, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300, Protein: 10,
	})
	require.NoError(t, err)

	plan, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Chicken Salad", TimeOfDay: domain.MealLunch, Calories: 450, Protein: 40,
	})
	require.NoError(t, err)

	require.Len(t, plan.Meals, 2)
	assert.Equal(t, 750, plan.TotalCalories)
	assert.Equal(t, 50, plan.TotalProtein)
}

func TestAddMeal_RejectsInvalidMeal(t *testing.T) {
	svc, mealPlans, _, _, userID := newNutritionFixture()

	_, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{TimeOfDay: domain.MealLunch})
	assert.ErrorIs(t, err, ErrMealValidation)

	_, err = svc.AddMeal(context.Background(), userID, testDate, domain.Meal{Name: "Oatmeal"})
	assert.ErrorIs(t, err, ErrMealValidation)

	assert.Zero(t, mealPlans.creates)
}

func TestEditMeal_RecomputesTotals(t *testing.T) {
	svc, _, _, _, userID := newNutritionFixture()

	created, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300,
	})
	require.NoError(t, err)
	mealID := created.Meals[0].ID

	calories := 350
	plan, err := svc.EditMeal(context.Background(), userID, testDate, mealID, domain.MealPatch{Calories: &calories})
	require.NoError(t, err)

	assert.Equal(t, 350, plan.TotalCalories)
	assert.Equal(t, "Oatmeal", plan.Meals[0].Name)
}

func TestDeleteMeal_RecomputesTotalsOverRemainder(t *testing.T) {
	svc, _, _, _, userID := newNutritionFixture()

	first, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300,
	})
	require.NoError(t, err)
	_, err = svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Chicken Salad", TimeOfDay: domain.MealLunch, Calories: 450,
	})
	require.NoError(t, err)

	plan, err := svc.DeleteMeal(context.Background(), userID, testDate, first.Meals[0].ID)
	require.NoError(t, err)

	require.Len(t, plan.Meals, 1)
	assert.Equal(t, 450, plan.TotalCalories)
}

func TestDeleteMeal_NoPlanForDate(t *testing.T) {
	svc, mealPlans, _, _, userID := newNutritionFixture()

	_, err := svc.DeleteMeal(context.Background(), userID, testDate, "some-meal")
	assert.ErrorIs(t, err, ErrMealPlanNotFound)

	name := "Renamed"
	_, err = svc.EditMeal(context.Background(), userID, testDate, "some-meal", domain.MealPatch{Name: &name})
	assert.ErrorIs(t, err, ErrMealPlanNotFound)

	assert.Zero(t, mealPlans.creates, "a failed mutation must not create a plan")
}

func TestDeleteMeal_UnknownMealLeavesPlanUntouched(t *testing.T) {
	svc, mealPlans, _, _, userID := newNutritionFixture()

	_, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300,
	})
	require.NoError(t, err)
	updatesBefore := mealPlans.updates

	_, err = svc.DeleteMeal(context.Background(), userID, testDate, "missing")
	assert.ErrorIs(t, err, ErrMealNotFound)
	assert.Equal(t, updatesBefore, mealPlans.updates)

	stored, err := svc.GetDailyPlan(context.Background(), userID, testDate)
	require.NoError(t, err)
	assert.Len(t, stored.MealPlan.Meals, 1)
}

func TestSetMealCompletion_DoesNotAffectTotals(t *testing.T) {
	svc, _, _, _, userID := newNutritionFixture()

	created, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300,
	})
	require.NoError(t, err)
	mealID := created.Meals[0].ID

	plan, err := svc.SetMealCompletion(context.Background(), userID, testDate, mealID, true)
	require.NoError(t, err)

	assert.True(t, plan.Meals[0].IsCompleted)
	assert.Equal(t, 300, plan.TotalCalories)

	plan, err = svc.SetMealCompletion(context.Background(), userID, testDate, mealID, false)
	require.NoError(t, err)
	assert.False(t, plan.Meals[0].IsCompleted)
	assert.Equal(t, 300, plan.TotalCalories)
}

func TestMealPlansAreIsolatedPerUser(t *testing.T) {
	svc, _, _, _, userID := newNutritionFixture()
	otherUser := primitive.NewObjectID()

	_, err := svc.AddMeal(context.Background(), userID, testDate, domain.Meal{
		Name: "Oatmeal", TimeOfDay: domain.MealBreakfast, Calories: 300,
	})
	require.NoError(t, err)

	plan, err := svc.GetDailyPlan(context.Background(), otherUser, testDate)
	require.NoError(t, err)
	assert.Nil(t, plan.MealPlan)
}
