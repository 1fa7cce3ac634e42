package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannedExercise is one exercise slot in a day's workout.
type PlannedExercise struct {
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Sets        int      `bson:"sets" json:"sets"`
	Reps        int      `bson:"reps" json:"reps"`
	Rest        int      `bson:"rest" json:"rest"` // seconds
	Weight      *float64 `bson:"weight,omitempty" json:"weight,omitempty"` // kg, recorded by progress tracking
}

// DailyWorkout is the detailed plan for one calendar date.
type DailyWorkout struct {
	Name      string            `bson:"name,omitempty" json:"name,omitempty"` // e.g. "Upper Body"
	Exercises []PlannedExercise `bson:"exercises" json:"exercises"`
}

// WorkoutPlan is a user's generated (or hand-edited) exercise
// schedule. One live plan per user; deleting a plan tombstones it via
// DeletedAt rather than removing the document, so reads must filter
// tombstoned plans out.
type WorkoutPlan struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	// WeeklyWorkoutSchedule maps day names ("Monday"...) to exercise
	// names, as returned by the plan generator.
	WeeklyWorkoutSchedule map[string][]string `bson:"weeklyWorkoutSchedule" json:"weeklyWorkoutSchedule"`
	ExerciseDescriptions  map[string]string   `bson:"exerciseDescriptions" json:"exerciseDescriptions"`
	SafetyAdvice          []string            `bson:"safetyAdvice" json:"safetyAdvice"`
	ProgressSuggestions   []string            `bson:"progressTrackingSuggestions" json:"progressTrackingSuggestions"`

	// DetailedWorkoutPlan maps calendar date strings ("2006-01-02")
	// to the concrete session for that date. This is the side the
	// daily plan composer joins against.
	DetailedWorkoutPlan map[string]DailyWorkout `bson:"detailedWorkoutPlan,omitempty" json:"detailedWorkoutPlan,omitempty"`

	StartDate *time.Time `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsDeleted reports whether the plan has been tombstoned.
func (p *WorkoutPlan) IsDeleted() bool {
	return p != nil && p.DeletedAt != nil
}

// WorkoutForDate returns the detailed session scheduled for the given
// date string, or nil when the plan has none (or is tombstoned).
func (p *WorkoutPlan) WorkoutForDate(date string) *DailyWorkout {
	if p == nil || p.IsDeleted() {
		return nil
	}
	if w, ok := p.DetailedWorkoutPlan[date]; ok {
		return &w
	}
	return nil
}
