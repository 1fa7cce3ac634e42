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

const foodEntryCollectionName = "food_entries"

// mongoFoodEntryRepository implements repository.FoodEntryRepository.
type mongoFoodEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodEntryRepository creates a new food entry repository
// backed by MongoDB.
func NewMongoFoodEntryRepository(db *mongo.Database) repository.FoodEntryRepository {
	return &mongoFoodEntryRepository{
		collection: db.Collection(foodEntryCollectionName),
	}
}

// Create inserts a new food entry.
func (r *mongoFoodEntryRepository) Create(ctx context.Context, entry *domain.FoodEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.Name == "" {
		return primitive.NilObjectID, errors.New("food entry user ID and name are required")
	}

	entry.ID = primitive.NewObjectID()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a food entry by its ID.
func (r *mongoFoodEntryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodEntry, error) {
	var entry domain.FoodEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Update modifies an existing food entry. The owner cannot change.
func (r *mongoFoodEntryRepository) Update(ctx context.Context, entry *domain.FoodEntry) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("food entry ID is required for update")
	}

	filter := bson.M{"_id": entry.ID, "userId": entry.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":        entry.Name,
			"calories":    entry.Calories,
			"protein":     entry.Protein,
			"carbs":       entry.Carbs,
			"fat":         entry.Fat,
			"servingSize": entry.ServingSize,
			"date":        entry.Date,
			"mealType":    entry.MealType,
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

// Delete hard-deletes a food entry, scoped to its owner.
func (r *mongoFoodEntryRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByUser returns all entries for a user, most recent first.
func (r *mongoFoodEntryRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodEntry, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListByUserAndDate returns a day's entries, most recent first.
func (r *mongoFoodEntryRepository) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.FoodEntry, error) {
	return r.list(ctx, bson.M{"userId": userID, "date": date})
}

func (r *mongoFoodEntryRepository) list(ctx context.Context, filter bson.M) ([]domain.FoodEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.FoodEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []domain.FoodEntry{}
	}
	return entries, nil
}

// EnsureFoodEntryIndexes creates necessary indexes for the
// food_entries collection.
func EnsureFoodEntryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
