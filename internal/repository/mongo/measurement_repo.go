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

const measurementCollectionName = "measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository.
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new measurement repository
// backed by MongoDB.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create inserts a new body measurement.
func (r *mongoMeasurementRepository) Create(ctx context.Context, m *domain.Measurement) (primitive.ObjectID, error) {
	if m.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("measurement user ID is required")
	}

	m.ID = primitive.NewObjectID()
	if m.TakenAt.IsZero() {
		m.TakenAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// ListByUser returns a user's measurements, oldest first, so trend
// views can consume them in order.
func (r *mongoMeasurementRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Measurement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "takenAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var measurements []domain.Measurement
	if err = cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	if measurements == nil {
		measurements = []domain.Measurement{}
	}
	return measurements, nil
}

// EnsureMeasurementIndexes creates necessary indexes for the
// measurements collection.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "takenAt", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
