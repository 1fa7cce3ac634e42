package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutPlanCollectionName = "workout_plans"

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository.
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new workout plan repository
// backed by MongoDB.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Upsert writes the user's live plan, replacing any previous one.
// A regenerated plan clears an earlier tombstone.
func (r *mongoWorkoutPlanRepository) Upsert(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.UserID == primitive.NilObjectID {
		return errors.New("workout plan user ID is required")
	}

	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	filter := bson.M{"userId": plan.UserID}
	update := bson.M{
		"$set": bson.M{
			"weeklyWorkoutSchedule":       plan.WeeklyWorkoutSchedule,
			"exerciseDescriptions":        plan.ExerciseDescriptions,
			"safetyAdvice":                plan.SafetyAdvice,
			"progressTrackingSuggestions": plan.ProgressSuggestions,
			"detailedWorkoutPlan":         plan.DetailedWorkoutPlan,
			"startDate":                   plan.StartDate,
			"deletedAt":                   plan.DeletedAt,
			"updatedAt":                   plan.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"userId":    plan.UserID,
			"createdAt": plan.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByUserID retrieves the user's plan. Tombstoned plans are treated
// as absent.
func (r *mongoWorkoutPlanRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	var plan domain.WorkoutPlan
	filter := bson.M{"userId": userID, "deletedAt": nil}

	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// SoftDelete tombstones the user's live plan.
func (r *mongoWorkoutPlanRepository) SoftDelete(ctx context.Context, userID primitive.ObjectID) error {
	now := time.Now().UTC()
	filter := bson.M{"userId": userID, "deletedAt": nil}
	update := bson.M{"$set": bson.M{"deletedAt": now, "updatedAt": now}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes for the
// workout_plans collection.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
