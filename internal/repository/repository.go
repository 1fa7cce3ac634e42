package repository

import (
	"context"

	"fittrack/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with account data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores one UserProfile document per user.
// Upsert replaces the whole document; the service layer performs the
// read-merge-write so writes keep merge semantics.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

// WorkoutPlanRepository stores the single live workout plan per user.
// GetByUserID must not return tombstoned plans.
type WorkoutPlanRepository interface {
	Upsert(ctx context.Context, plan *domain.WorkoutPlan) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error)
	SoftDelete(ctx context.Context, userID primitive.ObjectID) error
}

// MealPlanRepository keys plans by (user, calendar date string).
type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.MealPlan, error)
	Update(ctx context.Context, plan *domain.MealPlan) error
}

// FoodEntryRepository stores the food log. ListByUser returns entries
// most-recent-first; that ordering is what the deduplicator's
// first-seen-wins contract relies on.
type FoodEntryRepository interface {
	Create(ctx context.Context, entry *domain.FoodEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodEntry, error)
	Update(ctx context.Context, entry *domain.FoodEntry) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodEntry, error)
	ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.FoodEntry, error)
}

// MeasurementRepository stores body measurements, listed oldest first.
type MeasurementRepository interface {
	Create(ctx context.Context, m *domain.Measurement) (primitive.ObjectID, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Measurement, error)
}

// UploadRepository stores label image metadata.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Upload, error)
}
