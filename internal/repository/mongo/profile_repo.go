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

const profileCollectionName = "profiles"

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository backed by MongoDB.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// GetByUserID retrieves the profile document for a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the profile document, creating it on first save. The
// service layer merges fields before calling this, so the write here
// is a whole-document replace keyed on userId.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile user ID is required")
	}

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	filter := bson.M{"userId": profile.UserID}
	// _id is immutable; let mongo assign it on insert.
	update := bson.M{
		"$set": bson.M{
			"name":                profile.Name,
			"age":                 profile.Age,
			"gender":              profile.Gender,
			"height":              profile.Height,
			"weight":              profile.Weight,
			"fitnessGoal":         profile.FitnessGoal,
			"fitnessLevel":        profile.FitnessLevel,
			"workoutsPerWeek":     profile.WorkoutsPerWeek,
			"equipment":           profile.Equipment,
			"dietaryPreferences":  profile.DietaryPreferences,
			"medicalConditions":   profile.MedicalConditions,
			"healthConditions":    profile.HealthConditions,
			"currentMedications":  profile.CurrentMedications,
			"injuries":            profile.Injuries,
			"exercisePreferences": profile.ExercisePreferences,
			"exerciseDislikes":    profile.ExerciseDislikes,
			"shortTermGoal":       profile.ShortTermGoal,
			"longTermGoal":        profile.LongTermGoal,
			"dailyCalorieGoal":    profile.DailyCalorieGoal,
			"healthGoals":         profile.HealthGoals,
			"updatedAt":           profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"userId":    profile.UserID,
			"createdAt": profile.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
