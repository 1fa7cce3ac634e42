package domain

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealTimeOfDay tags a meal with its slot in the day.
type MealTimeOfDay string

const (
	MealBreakfast MealTimeOfDay = "breakfast"
	MealLunch     MealTimeOfDay = "lunch"
	MealDinner    MealTimeOfDay = "dinner"
	MealSnack     MealTimeOfDay = "snack"
)

// Meal is a single item inside a day's MealPlan. IDs are UUID strings
// generated when the meal is added, so meals can be addressed inside
// the embedded list without a separate collection.
type Meal struct {
	ID          string        `bson:"id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	TimeOfDay   MealTimeOfDay `bson:"timeOfDay" json:"timeOfDay"`
	Calories    int           `bson:"calories" json:"calories"`
	Protein     int           `bson:"protein" json:"protein"`
	Carbs       int           `bson:"carbs" json:"carbs"`
	Fat         int           `bson:"fat" json:"fat"`
	ServingSize string        `bson:"servingSize,omitempty" json:"servingSize,omitempty"`
	IsCompleted bool          `bson:"isCompleted" json:"isCompleted"`
}

// MealPatch carries the fields of a meal edit. Nil fields are left
// unchanged on the stored meal.
type MealPatch struct {
	Name        *string        `json:"name,omitempty"`
	TimeOfDay   *MealTimeOfDay `json:"timeOfDay,omitempty"`
	Calories    *int           `json:"calories,omitempty"`
	Protein     *int           `json:"protein,omitempty"`
	Carbs       *int           `json:"carbs,omitempty"`
	Fat         *int           `json:"fat,omitempty"`
	ServingSize *string        `json:"servingSize,omitempty"`
}

// Apply merges the patch into the meal.
func (p MealPatch) Apply(m *Meal) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.TimeOfDay != nil {
		m.TimeOfDay = *p.TimeOfDay
	}
	if p.Calories != nil {
		m.Calories = *p.Calories
	}
	if p.Protein != nil {
		m.Protein = *p.Protein
	}
	if p.Carbs != nil {
		m.Carbs = *p.Carbs
	}
	if p.Fat != nil {
		m.Fat = *p.Fat
	}
	if p.ServingSize != nil {
		m.ServingSize = *p.ServingSize
	}
}

// MealPlan aggregates all meals for one user on one calendar date
// (the "2006-01-02" string is the lookup key, not the ObjectID).
// The four totals are derived from the meal list and recomputed on
// every mutation; they are never patched incrementally.
type MealPlan struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Date   string             `bson:"date" json:"date"`

	Meals []Meal `bson:"meals" json:"meals"`

	TotalCalories int `bson:"totalCalories" json:"totalCalories"`
	TotalProtein  int `bson:"totalProtein" json:"totalProtein"`
	TotalCarbs    int `bson:"totalCarbs" json:"totalCarbs"`
	TotalFat      int `bson:"totalFat" json:"totalFat"`

	TargetCalories int `bson:"targetCalories,omitempty" json:"targetCalories,omitempty"`
	TargetProtein  int `bson:"targetProtein,omitempty" json:"targetProtein,omitempty"`
	TargetCarbs    int `bson:"targetCarbs,omitempty" json:"targetCarbs,omitempty"`
	TargetFat      int `bson:"targetFat,omitempty" json:"targetFat,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RecomputeTotals re-derives the four totals by summing over the meal
// list. Must be called after every insert, edit or delete.
func (p *MealPlan) RecomputeTotals() {
	p.TotalCalories, p.TotalProtein, p.TotalCarbs, p.TotalFat = 0, 0, 0, 0
	for _, m := range p.Meals {
		p.TotalCalories += m.Calories
		p.TotalProtein += m.Protein
		p.TotalCarbs += m.Carbs
		p.TotalFat += m.Fat
	}
}

// MealByID returns a pointer to the meal with the given id, or nil.
func (p *MealPlan) MealByID(id string) *Meal {
	for i := range p.Meals {
		if p.Meals[i].ID == id {
			return &p.Meals[i]
		}
	}
	return nil
}

// RemoveMeal deletes the meal with the given id from the list and
// reports whether it was present.
func (p *MealPlan) RemoveMeal(id string) bool {
	for i := range p.Meals {
		if p.Meals[i].ID == id {
			p.Meals = append(p.Meals[:i], p.Meals[i+1:]...)
			return true
		}
	}
	return false
}

// SetTargets copies the target values onto the plan.
func (p *MealPlan) SetTargets(t NutritionTargets) {
	p.TargetCalories = t.Calories
	p.TargetProtein = t.Protein
	p.TargetCarbs = t.Carbs
	p.TargetFat = t.Fat
}

// NutritionTargets is a daily calorie/macro goal, distinct from the
// totals (what was actually logged).
type NutritionTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Macro split policy: 30% of calories from protein, 45% from carbs,
// 25% from fat, at 4 kcal/g for protein and carbs and 9 kcal/g for
// fat. Workout days get a 20% calorie bump.
const (
	workoutDayFactor = 1.2

	proteinCalorieShare = 0.30
	carbsCalorieShare   = 0.45
	fatCalorieShare     = 0.25

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// CalculateNutritionTargets maps a daily calorie baseline and a
// workout-day flag to calorie and macro targets. Baselines of zero or
// below fall back to the default. Pure function.
func CalculateNutritionTargets(baseline int, workoutDay bool) NutritionTargets {
	if baseline <= 0 {
		baseline = DefaultCalorieBaseline
	}
	calories := float64(baseline)
	if workoutDay {
		calories = math.Round(calories * workoutDayFactor)
	}
	return NutritionTargets{
		Calories: int(calories),
		Protein:  int(math.Round(calories * proteinCalorieShare / kcalPerGramProtein)),
		Carbs:    int(math.Round(calories * carbsCalorieShare / kcalPerGramCarbs)),
		Fat:      int(math.Round(calories * fatCalorieShare / kcalPerGramFat)),
	}
}
