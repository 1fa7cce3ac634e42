package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCalorieBaseline is used whenever a profile has no daily
// calorie goal set. Older profile documents predate the field, so the
// default is applied on read rather than migrated in place.
const DefaultCalorieBaseline = 2000

// User represents an account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserProfile holds the demographic, fitness and health intake data a
// user fills in during setup. One profile document per user.
type UserProfile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Name   string  `bson:"name,omitempty" json:"name,omitempty"`
	Age    int     `bson:"age,omitempty" json:"age,omitempty"`
	Gender string  `bson:"gender,omitempty" json:"gender,omitempty"`
	Height float64 `bson:"height,omitempty" json:"height,omitempty"` // cm
	Weight float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg

	FitnessGoal     string   `bson:"fitnessGoal,omitempty" json:"fitnessGoal,omitempty"`   // e.g. "Weight Loss", "Muscle Gain"
	FitnessLevel    string   `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"` // "Beginner", "Intermediate", "Advanced"
	WorkoutsPerWeek int      `bson:"workoutsPerWeek,omitempty" json:"workoutsPerWeek,omitempty"`
	Equipment       []string `bson:"equipment,omitempty" json:"equipment,omitempty"`

	DietaryPreferences  DietaryPreferences `bson:"dietaryPreferences,omitempty" json:"dietaryPreferences,omitempty"`
	MedicalConditions   []string           `bson:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`
	HealthConditions    []string           `bson:"healthConditions,omitempty" json:"healthConditions,omitempty"`
	CurrentMedications  []string           `bson:"currentMedications,omitempty" json:"currentMedications,omitempty"`
	Injuries            string             `bson:"injuries,omitempty" json:"injuries,omitempty"`
	ExercisePreferences []string           `bson:"exercisePreferences,omitempty" json:"exercisePreferences,omitempty"`
	ExerciseDislikes    string             `bson:"exerciseDislikes,omitempty" json:"exerciseDislikes,omitempty"`
	ShortTermGoal       string             `bson:"shortTermGoal,omitempty" json:"shortTermGoal,omitempty"`
	LongTermGoal        string             `bson:"longTermGoal,omitempty" json:"longTermGoal,omitempty"`

	// DailyCalorieGoal of zero means "not set"; use CalorieBaseline()
	// instead of reading the field directly.
	DailyCalorieGoal int          `bson:"dailyCalorieGoal,omitempty" json:"dailyCalorieGoal,omitempty"`
	HealthGoals      *HealthGoals `bson:"healthGoals,omitempty" json:"healthGoals,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DietaryPreferences is the fixed set of dietary flags from the setup
// wizard.
type DietaryPreferences struct {
	Vegetarian  bool `bson:"vegetarian" json:"vegetarian"`
	Vegan       bool `bson:"vegan" json:"vegan"`
	GlutenFree  bool `bson:"glutenFree" json:"glutenFree"`
	LactoseFree bool `bson:"lactoseFree" json:"lactoseFree"`
}

// HealthGoals separates the fixed goal flags from user-defined custom
// goals. Custom goals are keyed by their free-text label.
type HealthGoals struct {
	MedicationReduction  bool `bson:"medicationReduction" json:"medicationReduction"`
	WeightManagement     bool `bson:"weightManagement" json:"weightManagement"`
	SleepImprovement     bool `bson:"sleepImprovement" json:"sleepImprovement"`
	StressReduction      bool `bson:"stressReduction" json:"stressReduction"`
	BloodPressureControl bool `bson:"bloodPressureControl" json:"bloodPressureControl"`
	BloodSugarControl    bool `bson:"bloodSugarControl" json:"bloodSugarControl"`

	CustomGoals map[string]bool `bson:"customGoals,omitempty" json:"customGoals,omitempty"`
}

// ProfilePatch carries the fields of a profile update. Nil fields are
// left unchanged on the stored profile, mirroring the merge write of
// the original document store.
type ProfilePatch struct {
	Name   *string
	Age    *int
	Gender *string
	Height *float64
	Weight *float64

	FitnessGoal     *string
	FitnessLevel    *string
	WorkoutsPerWeek *int
	Equipment       []string

	DietaryPreferences  *DietaryPreferences
	MedicalConditions   []string
	HealthConditions    []string
	CurrentMedications  []string
	Injuries            *string
	ExercisePreferences []string
	ExerciseDislikes    *string
	ShortTermGoal       *string
	LongTermGoal        *string

	DailyCalorieGoal *int
	HealthGoals      *HealthGoals
}

// Apply merges the patch into the profile.
func (p ProfilePatch) Apply(profile *UserProfile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Age != nil {
		profile.Age = *p.Age
	}
	if p.Gender != nil {
		profile.Gender = *p.Gender
	}
	if p.Height != nil {
		profile.Height = *p.Height
	}
	if p.Weight != nil {
		profile.Weight = *p.Weight
	}
	if p.FitnessGoal != nil {
		profile.FitnessGoal = *p.FitnessGoal
	}
	if p.FitnessLevel != nil {
		profile.FitnessLevel = *p.FitnessLevel
	}
	if p.WorkoutsPerWeek != nil {
		profile.WorkoutsPerWeek = *p.WorkoutsPerWeek
	}
	if p.Equipment != nil {
		profile.Equipment = p.Equipment
	}
	if p.DietaryPreferences != nil {
		profile.DietaryPreferences = *p.DietaryPreferences
	}
	if p.MedicalConditions != nil {
		profile.MedicalConditions = p.MedicalConditions
	}
	if p.HealthConditions != nil {
		profile.HealthConditions = p.HealthConditions
	}
	if p.CurrentMedications != nil {
		profile.CurrentMedications = p.CurrentMedications
	}
	if p.Injuries != nil {
		profile.Injuries = *p.Injuries
	}
	if p.ExercisePreferences != nil {
		profile.ExercisePreferences = p.ExercisePreferences
	}
	if p.ExerciseDislikes != nil {
		profile.ExerciseDislikes = *p.ExerciseDislikes
	}
	if p.ShortTermGoal != nil {
		profile.ShortTermGoal = *p.ShortTermGoal
	}
	if p.LongTermGoal != nil {
		profile.LongTermGoal = *p.LongTermGoal
	}
	if p.DailyCalorieGoal != nil {
		profile.DailyCalorieGoal = *p.DailyCalorieGoal
	}
	if p.HealthGoals != nil {
		profile.HealthGoals = p.HealthGoals
	}
}

// CalorieBaseline returns the profile's daily calorie goal, falling
// back to the default when unset. A nil profile also yields the
// default so callers need not special-case a missing document.
func (p *UserProfile) CalorieBaseline() int {
	if p == nil || p.DailyCalorieGoal <= 0 {
		return DefaultCalorieBaseline
	}
	return p.DailyCalorieGoal
}
