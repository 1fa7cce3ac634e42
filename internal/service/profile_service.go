package service

import (
	"context"
	"errors"

	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileService owns the user profile and health goals documents.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch domain.ProfilePatch) (*domain.UserProfile, error)
	UpdateHealthGoals(ctx context.Context, userID primitive.ObjectID, goals domain.HealthGoals) (*domain.UserProfile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// GetProfile retrieves the profile for a user.
func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile merges the patch over the stored profile, creating the
// document on first write. Omitted fields keep their stored values
// (shallow merge, the way the document store's merge write behaved).
func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch domain.ProfilePatch) (*domain.UserProfile, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		profile = &domain.UserProfile{UserID: userID}
	}

	patch.Apply(profile)

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateHealthGoals replaces only the health goals section of the
// profile. The profile must exist first.
func (s *profileService) UpdateHealthGoals(ctx context.Context, userID primitive.ObjectID, goals domain.HealthGoals) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile.HealthGoals = &goals
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
