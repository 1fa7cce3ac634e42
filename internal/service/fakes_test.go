package service

// In-memory fakes for the repository and storage interfaces, so the
// service layer can be tested without MongoDB or S3.

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- meal plans ---

type fakeMealPlanRepo struct {
	plans   map[string]domain.MealPlan // keyed userHex|date
	creates int
	updates int
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{plans: map[string]domain.MealPlan{}}
}

func mealPlanKey(userID primitive.ObjectID, date string) string {
	return userID.Hex() + "|" + date
}

func (r *fakeMealPlanRepo) Create(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	key := mealPlanKey(plan.UserID, plan.Date)
	if _, ok := r.plans[key]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	r.plans[key] = *plan
	r.creates++
	return plan.ID, nil
}

func (r *fakeMealPlanRepo) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.MealPlan, error) {
	plan, ok := r.plans[mealPlanKey(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := plan
	return &cp, nil
}

func (r *fakeMealPlanRepo) Update(ctx context.Context, plan *domain.MealPlan) error {
	key := mealPlanKey(plan.UserID, plan.Date)
	if _, ok := r.plans[key]; !ok {
		return repository.ErrNotFound
	}
	plan.UpdatedAt = time.Now().UTC()
	r.plans[key] = *plan
	r.updates++
	return nil
}

// --- workout plans ---

type fakeWorkoutPlanRepo struct {
	plans map[string]domain.WorkoutPlan // keyed userHex
}

func newFakeWorkoutPlanRepo() *fakeWorkoutPlanRepo {
	return &fakeWorkoutPlanRepo{plans: map[string]domain.WorkoutPlan{}}
}

func (r *fakeWorkoutPlanRepo) Upsert(ctx context.Context, plan *domain.WorkoutPlan) error {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	plan.UpdatedAt = time.Now().UTC()
	r.plans[plan.UserID.Hex()] = *plan
	return nil
}

func (r *fakeWorkoutPlanRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, ok := r.plans[userID.Hex()]
	if !ok || plan.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := plan
	return &cp, nil
}

func (r *fakeWorkoutPlanRepo) SoftDelete(ctx context.Context, userID primitive.ObjectID) error {
	plan, ok := r.plans[userID.Hex()]
	if !ok || plan.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	plan.DeletedAt = &now
	r.plans[userID.Hex()] = plan
	return nil
}

// --- users ---

type fakeUserRepo struct {
	users map[string]domain.User // keyed email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, ok := r.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	r.users[user.Email] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := user
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- profiles ---

type fakeProfileRepo struct {
	profiles map[string]domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]domain.UserProfile{}}
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.UserProfile, error) {
	profile, ok := r.profiles[userID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := profile
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	r.profiles[profile.UserID.Hex()] = *profile
	return nil
}

// --- food entries ---

type fakeFoodEntryRepo struct {
	entries []domain.FoodEntry // most recent first, like the real repo
}

func (r *fakeFoodEntryRepo) Create(ctx context.Context, entry *domain.FoodEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	r.entries = append([]domain.FoodEntry{*entry}, r.entries...)
	return entry.ID, nil
}

func (r *fakeFoodEntryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FoodEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeFoodEntryRepo) Update(ctx context.Context, entry *domain.FoodEntry) error {
	for i, e := range r.entries {
		if e.ID == entry.ID && e.UserID == entry.UserID {
			r.entries[i] = *entry
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeFoodEntryRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	for i, e := range r.entries {
		if e.ID == id && e.UserID == userID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeFoodEntryRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodEntry, error) {
	out := []domain.FoodEntry{}
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeFoodEntryRepo) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.FoodEntry, error) {
	out := []domain.FoodEntry{}
	for _, e := range r.entries {
		if e.UserID == userID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- measurements ---

type fakeMeasurementRepo struct {
	measurements []domain.Measurement // oldest first
}

func (r *fakeMeasurementRepo) Create(ctx context.Context, m *domain.Measurement) (primitive.ObjectID, error) {
	m.ID = primitive.NewObjectID()
	r.measurements = append(r.measurements, *m)
	return m.ID, nil
}

func (r *fakeMeasurementRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Measurement, error) {
	out := []domain.Measurement{}
	for _, m := range r.measurements {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

// --- uploads ---

type fakeUploadRepo struct {
	uploads    map[string]domain.Upload
	failCreate bool
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: map[string]domain.Upload{}}
}

func (r *fakeUploadRepo) Create(ctx context.Context, upload *domain.Upload) (primitive.ObjectID, error) {
	if r.failCreate {
		return primitive.NilObjectID, errors.New("upload metadata write failed")
	}
	upload.ID = primitive.NewObjectID()
	r.uploads[upload.ID.Hex()] = *upload
	return upload.ID, nil
}

func (r *fakeUploadRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Upload, error) {
	upload, ok := r.uploads[id.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := upload
	return &cp, nil
}

// --- object storage ---

type fakeFileStorage struct {
	objects map[string][]byte
	deleted []string
	failPut bool
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: map[string][]byte{}}
}

func (s *fakeFileStorage) PutObject(ctx context.Context, objectKey, contentType string, body []byte) error {
	if s.failPut {
		return errors.New("object store unavailable")
	}
	s.objects[objectKey] = body
	return nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if _, ok := s.objects[objectKey]; !ok {
		return "", errors.New("no such object")
	}
	return "https://files.test/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}

// --- plan generator ---

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
	calls      int
}

func (g *fakeGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}
