package service

import (
	"context"
	"errors"
	"testing"

	"fittrack/internal/ai"
	"fittrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const validAssistantReply = "Here you go:\n```json\n" + `{
  "weeklyWorkoutSchedule": {"Monday": ["Squats"], "Wednesday": ["Push-ups"]},
  "exerciseDescriptions": {"Squats": "Bodyweight squats", "Push-ups": "Standard push-ups"},
  "safetyAdvice": ["Warm up first"],
  "progressTrackingSuggestions": ["Add reps weekly"]
}` + "\n```"

func newWorkoutFixture(gen *fakeGenerator) (WorkoutService, *fakeWorkoutPlanRepo, *fakeProfileRepo, primitive.ObjectID) {
	workoutPlans := newFakeWorkoutPlanRepo()
	profiles := newFakeProfileRepo()
	svc := NewWorkoutService(workoutPlans, profiles, gen)
	return svc, workoutPlans, profiles, primitive.NewObjectID()
}

func TestGeneratePlan_StoresAssistantPlan(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, workoutPlans, profiles, userID := newWorkoutFixture(gen)
	require.NoError(t, profiles.Upsert(context.Background(), &domain.UserProfile{
		UserID:       userID,
		FitnessLevel: "Beginner",
	}))

	plan, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{Duration: 30})
	require.NoError(t, err)

	assert.Equal(t, []string{"Squats"}, plan.WeeklyWorkoutSchedule["Monday"])
	assert.Equal(t, "Bodyweight squats", plan.ExerciseDescriptions["Squats"])
	assert.NotNil(t, plan.StartDate)
	assert.Contains(t, gen.lastPrompt, "Beginner")
	assert.Contains(t, gen.lastPrompt, "30 minutes")

	stored, err := workoutPlans.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, stored.ID)
}

func TestGeneratePlan_WorksWithoutProfile(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, _, _, userID := newWorkoutFixture(gen)

	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "Not specified")
}

func TestGeneratePlan_MalformedReplyPersistsNothing(t *testing.T) {
	gen := &fakeGenerator{reply: "Sorry, I can't help with that."}
	svc, workoutPlans, _, userID := newWorkoutFixture(gen)

	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	assert.ErrorIs(t, err, ai.ErrMalformedResponse)

	_, err = workoutPlans.GetByUserID(context.Background(), userID)
	assert.Error(t, err, "no plan should be stored after a malformed reply")
}

func TestGeneratePlan_GeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("assistant unreachable")
	gen := &fakeGenerator{err: boom}
	svc, _, _, userID := newWorkoutFixture(gen)

	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestGeneratePlan_ReplacesDeletedPlan(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, _, _, userID := newWorkoutFixture(gen)

	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePlan(context.Background(), userID))

	_, err = svc.GetPlan(context.Background(), userID)
	assert.ErrorIs(t, err, ErrWorkoutPlanNotFound)

	// Regenerating clears the tombstone.
	_, err = svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)

	plan, err := svc.GetPlan(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, plan.DeletedAt)
}

func TestGetPlan_NotFound(t *testing.T) {
	svc, _, _, userID := newWorkoutFixture(&fakeGenerator{})

	_, err := svc.GetPlan(context.Background(), userID)
	assert.ErrorIs(t, err, ErrWorkoutPlanNotFound)
}

func TestUpdatePlan_EditsDetailedPlanOnly(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, _, _, userID := newWorkoutFixture(gen)
	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)

	detailed := map[string]domain.DailyWorkout{
		"2026-09-01": {Name: "Leg Day", Exercises: []domain.PlannedExercise{
			{Name: "Squats", Sets: 3, Reps: 10, Rest: 60},
		}},
	}
	plan, err := svc.UpdatePlan(context.Background(), userID, PlanEdit{DetailedWorkoutPlan: detailed})
	require.NoError(t, err)

	assert.Equal(t, "Leg Day", plan.DetailedWorkoutPlan["2026-09-01"].Name)
	// Untouched sections survive the edit.
	assert.Equal(t, []string{"Squats"}, plan.WeeklyWorkoutSchedule["Monday"])
}

func TestRecordExerciseWeight(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, _, _, userID := newWorkoutFixture(gen)
	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)
	_, err = svc.UpdatePlan(context.Background(), userID, PlanEdit{
		DetailedWorkoutPlan: map[string]domain.DailyWorkout{
			"2026-09-01": {Exercises: []domain.PlannedExercise{
				{Name: "Squats", Sets: 3, Reps: 10},
				{Name: "Lunges", Sets: 3, Reps: 12},
			}},
		},
	})
	require.NoError(t, err)

	plan, err := svc.RecordExerciseWeight(context.Background(), userID, "2026-09-01", "Squats", 60)
	require.NoError(t, err)

	exercises := plan.DetailedWorkoutPlan["2026-09-01"].Exercises
	require.NotNil(t, exercises[0].Weight)
	assert.Equal(t, 60.0, *exercises[0].Weight)
	assert.Nil(t, exercises[1].Weight)
}

func TestRecordExerciseWeight_Errors(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, _, _, userID := newWorkoutFixture(gen)

	_, err := svc.RecordExerciseWeight(context.Background(), userID, "2026-09-01", "Squats", 60)
	assert.ErrorIs(t, err, ErrWorkoutPlanNotFound)

	_, err = svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)

	_, err = svc.RecordExerciseWeight(context.Background(), userID, "2026-09-01", "Squats", 60)
	assert.ErrorIs(t, err, ErrWorkoutNotScheduled)

	_, err = svc.UpdatePlan(context.Background(), userID, PlanEdit{
		DetailedWorkoutPlan: map[string]domain.DailyWorkout{
			"2026-09-01": {Exercises: []domain.PlannedExercise{{Name: "Lunges"}}},
		},
	})
	require.NoError(t, err)

	_, err = svc.RecordExerciseWeight(context.Background(), userID, "2026-09-01", "Squats", 60)
	assert.ErrorIs(t, err, ErrExerciseNotInPlan)
}

func TestDeletePlan_AlreadyDeleted(t *testing.T) {
	gen := &fakeGenerator{reply: validAssistantReply}
	svc, _, _, userID := newWorkoutFixture(gen)
	_, err := svc.GeneratePlan(context.Background(), userID, ai.PlanRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(context.Background(), userID))
	assert.ErrorIs(t, svc.DeletePlan(context.Background(), userID), ErrWorkoutPlanNotFound)
}
