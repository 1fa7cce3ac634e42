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

const mealPlanCollectionName = "meal_plans"

// mongoMealPlanRepository implements repository.MealPlanRepository.
type mongoMealPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoMealPlanRepository creates a new meal plan repository backed
// by MongoDB.
func NewMongoMealPlanRepository(db *mongo.Database) repository.MealPlanRepository {
	return &mongoMealPlanRepository{
		collection: db.Collection(mealPlanCollectionName),
	}
}

// Create inserts a new meal plan for a (user, date) pair.
func (r *mongoMealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID || plan.Date == "" {
		return primitive.NilObjectID, errors.New("meal plan user ID and date are required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if plan.Meals == nil {
		plan.Meals = []domain.Meal{}
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByUserAndDate retrieves the plan for a calendar date.
func (r *mongoMealPlanRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.MealPlan, error) {
	var plan domain.MealPlan
	filter := bson.M{"userId": userID, "date": date}

	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Update replaces the plan's meal list, totals and targets. The caller
// recomputes totals before calling; this is a last-write-wins replace
// of the whole document body.
func (r *mongoMealPlanRepository) Update(ctx context.Context, plan *domain.MealPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("meal plan ID is required for update")
	}

	plan.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": plan.ID}
	update := bson.M{
		"$set": bson.M{
			"meals":          plan.Meals,
			"totalCalories":  plan.TotalCalories,
			"totalProtein":   plan.TotalProtein,
			"totalCarbs":     plan.TotalCarbs,
			"totalFat":       plan.TotalFat,
			"targetCalories": plan.TargetCalories,
			"targetProtein":  plan.TargetProtein,
			"targetCarbs":    plan.TargetCarbs,
			"targetFat":      plan.TargetFat,
			"updatedAt":      plan.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMealPlanIndexes creates necessary indexes for the meal_plans
// collection.
func EnsureMealPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
