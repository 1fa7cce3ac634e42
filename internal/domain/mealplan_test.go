package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNutritionTargets_RestDay(t *testing.T) {
	targets := CalculateNutritionTargets(2000, false)

	assert.Equal(t, 2000, targets.Calories)
	assert.Equal(t, 150, targets.Protein)
	assert.Equal(t, 225, targets.Carbs)
	assert.Equal(t, 56, targets.Fat) // round(2000*0.25/9)
}

func TestCalculateNutritionTargets_WorkoutDay(t *testing.T) {
	targets := CalculateNutritionTargets(2000, true)

	assert.Equal(t, 2400, targets.Calories)
	assert.Equal(t, 180, targets.Protein)
	assert.Equal(t, 270, targets.Carbs)
	assert.Equal(t, 67, targets.Fat)
}

func TestCalculateNutritionTargets_ZeroBaselineFallsBack(t *testing.T) {
	assert.Equal(t, CalculateNutritionTargets(DefaultCalorieBaseline, false), CalculateNutritionTargets(0, false))
	assert.Equal(t, CalculateNutritionTargets(DefaultCalorieBaseline, true), CalculateNutritionTargets(-100, true))
}

func TestCalculateNutritionTargets_OddBaselineRounds(t *testing.T) {
	targets := CalculateNutritionTargets(1853, true)

	// 1853 * 1.2 = 2223.6, rounded up before the split.
	assert.Equal(t, 2224, targets.Calories)
	assert.Equal(t, 167, targets.Protein) // round(2224*0.30/4)
	assert.Equal(t, 250, targets.Carbs)   // round(2224*0.45/4)
	assert.Equal(t, 62, targets.Fat)      // round(2224*0.25/9)
}

func TestRecomputeTotals_SumsAllMeals(t *testing.T) {
	plan := &MealPlan{
		Meals: []Meal{
			{ID: "a", Name: "Oatmeal", Calories: 300, Protein: 10, Carbs: 55, Fat: 6},
			{ID: "b", Name: "Chicken Salad", Calories: 450, Protein: 40, Carbs: 20, Fat: 22},
			{ID: "c", Name: "Yogurt", Calories: 120, Protein: 12, Carbs: 15, Fat: 2},
		},
	}

	plan.RecomputeTotals()

	assert.Equal(t, 870, plan.TotalCalories)
	assert.Equal(t, 62, plan.TotalProtein)
	assert.Equal(t, 90, plan.TotalCarbs)
	assert.Equal(t, 30, plan.TotalFat)
}

func TestRecomputeTotals_EmptyPlanIsZero(t *testing.T) {
	plan := &MealPlan{
		Meals:         []Meal{},
		TotalCalories: 999, // stale totals must be overwritten
		TotalProtein:  99,
	}

	plan.RecomputeTotals()

	assert.Zero(t, plan.TotalCalories)
	assert.Zero(t, plan.TotalProtein)
	assert.Zero(t, plan.TotalCarbs)
	assert.Zero(t, plan.TotalFat)
}

func TestMealPatch_AppliesOnlySetFields(t *testing.T) {
	meal := Meal{ID: "a", Name: "Oatmeal", TimeOfDay: MealBreakfast, Calories: 300, Protein: 10}

	calories := 350
	patch := MealPatch{Calories: &calories}
	patch.Apply(&meal)

	assert.Equal(t, 350, meal.Calories)
	assert.Equal(t, "Oatmeal", meal.Name)
	assert.Equal(t, MealBreakfast, meal.TimeOfDay)
	assert.Equal(t, 10, meal.Protein)
}

func TestRemoveMeal(t *testing.T) {
	plan := &MealPlan{Meals: []Meal{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	assert.True(t, plan.RemoveMeal("b"))
	assert.Len(t, plan.Meals, 2)
	assert.Nil(t, plan.MealByID("b"))

	assert.False(t, plan.RemoveMeal("missing"))
	assert.Len(t, plan.Meals, 2)
}
