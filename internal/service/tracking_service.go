package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
	"fittrack/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrFoodEntryNotFound = errors.New("food entry not found")
	ErrEntryValidation   = errors.New("food entry validation failed")
	ErrUploadNotFound    = errors.New("upload not found")
)

// ScannedLabel carries the nutrition fields parsed from a label image
// by the external OCR collaborator, plus the image itself for storage.
type ScannedLabel struct {
	Name        string
	Calories    int
	Protein     int
	Carbs       int
	Fat         int
	ServingSize string
	Date        string
	MealType    domain.MealTimeOfDay

	ImageName        string
	ImageContentType string
	Image            []byte
}

// TrackingService owns the food log, the saved-foods view derived from
// it, label-scan intake and body measurements.
type TrackingService interface {
	AddFoodEntry(ctx context.Context, userID primitive.ObjectID, entry domain.FoodEntry) (*domain.FoodEntry, error)
	UpdateFoodEntry(ctx context.Context, userID, entryID primitive.ObjectID, entry domain.FoodEntry) (*domain.FoodEntry, error)
	DeleteFoodEntry(ctx context.Context, userID, entryID primitive.ObjectID) error
	ListFoodEntries(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.FoodEntry, error)
	SavedFoods(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodEntry, error)
	LogScannedLabel(ctx context.Context, userID primitive.ObjectID, scan ScannedLabel) (*domain.FoodEntry, *domain.Upload, error)
	UploadImageURL(ctx context.Context, userID, uploadID primitive.ObjectID) (string, error)
	AddMeasurement(ctx context.Context, userID primitive.ObjectID, m domain.Measurement) (*domain.Measurement, error)
	ListMeasurements(ctx context.Context, userID primitive.ObjectID) ([]domain.Measurement, error)
}

type trackingService struct {
	foodEntryRepo   repository.FoodEntryRepository
	measurementRepo repository.MeasurementRepository
	uploadRepo      repository.UploadRepository
	fileStorage     storage.FileStorage
}

// NewTrackingService creates a new instance of trackingService.
func NewTrackingService(
	foodEntryRepo repository.FoodEntryRepository,
	measurementRepo repository.MeasurementRepository,
	uploadRepo repository.UploadRepository,
	fileStorage storage.FileStorage,
) TrackingService {
	return &trackingService{
		foodEntryRepo:   foodEntryRepo,
		measurementRepo: measurementRepo,
		uploadRepo:      uploadRepo,
		fileStorage:     fileStorage,
	}
}

// AddFoodEntry logs a food item.
func (s *trackingService) AddFoodEntry(ctx context.Context, userID primitive.ObjectID, entry domain.FoodEntry) (*domain.FoodEntry, error) {
	if entry.Name == "" {
		return nil, ErrEntryValidation
	}
	entry.UserID = userID
	entry.Timestamp = time.Now().UTC()

	id, err := s.foodEntryRepo.Create(ctx, &entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return &entry, nil
}

// UpdateFoodEntry edits an existing entry, enforcing ownership.
func (s *trackingService) UpdateFoodEntry(ctx context.Context, userID, entryID primitive.ObjectID, entry domain.FoodEntry) (*domain.FoodEntry, error) {
	if entry.Name == "" {
		return nil, ErrEntryValidation
	}

	existing, err := s.foodEntryRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodEntryNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrFoodEntryNotFound
	}

	existing.Name = entry.Name
	existing.Calories = entry.Calories
	existing.Protein = entry.Protein
	existing.Carbs = entry.Carbs
	existing.Fat = entry.Fat
	existing.ServingSize = entry.ServingSize
	existing.Date = entry.Date
	existing.MealType = entry.MealType

	if err := s.foodEntryRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFoodEntryNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteFoodEntry hard-deletes an entry.
func (s *trackingService) DeleteFoodEntry(ctx context.Context, userID, entryID primitive.ObjectID) error {
	err := s.foodEntryRepo.Delete(ctx, entryID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrFoodEntryNotFound
	}
	return err
}

// ListFoodEntries returns the log most-recent-first, optionally
// narrowed to one calendar date.
func (s *trackingService) ListFoodEntries(ctx context.Context, userID primitive.ObjectID, date string) ([]domain.FoodEntry, error) {
	if date != "" {
		return s.foodEntryRepo.ListByUserAndDate(ctx, userID, date)
	}
	return s.foodEntryRepo.ListByUser(ctx, userID)
}

// SavedFoods derives the unique-by-name quick-select list from the
// full log. The repo returns entries most recent first, so keeping
// the first occurrence keeps the latest version of each food.
func (s *trackingService) SavedFoods(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodEntry, error) {
	entries, err := s.foodEntryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.DedupeFoodEntries(entries), nil
}

// LogScannedLabel stores the label image in object storage, records
// its metadata, and folds the parsed nutrition fields into a food
// entry through the normal creation path.
func (s *trackingService) LogScannedLabel(ctx context.Context, userID primitive.ObjectID, scan ScannedLabel) (*domain.FoodEntry, *domain.Upload, error) {
	name := scan.Name
	if name == "" {
		name = "Scanned Food Item"
	}
	servingSize := scan.ServingSize
	if servingSize == "" {
		servingSize = "1 serving"
	}

	entry, err := s.AddFoodEntry(ctx, userID, domain.FoodEntry{
		Name:        name,
		Calories:    scan.Calories,
		Protein:     scan.Protein,
		Carbs:       scan.Carbs,
		Fat:         scan.Fat,
		ServingSize: servingSize,
		Date:        scan.Date,
		MealType:    scan.MealType,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(scan.Image) == 0 {
		return entry, nil, nil
	}

	objectKey := fmt.Sprintf("labels/%s/%s", userID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, scan.ImageContentType, scan.Image); err != nil {
		// A failed scan must not leave a half-logged entry behind.
		_ = s.foodEntryRepo.Delete(ctx, entry.ID, userID)
		return nil, nil, err
	}

	upload := &domain.Upload{
		UserID:      userID,
		FoodEntryID: &entry.ID,
		S3ObjectKey: objectKey,
		FileName:    scan.ImageName,
		ContentType: scan.ImageContentType,
		Size:        int64(len(scan.Image)),
	}
	uploadID, err := s.uploadRepo.Create(ctx, upload)
	if err != nil {
		// Don't leave an orphaned object or entry behind.
		_ = s.fileStorage.DeleteObject(ctx, objectKey)
		_ = s.foodEntryRepo.Delete(ctx, entry.ID, userID)
		return nil, nil, err
	}
	upload.ID = uploadID

	return entry, upload, nil
}

// UploadImageURL returns a short-lived presigned download URL for a
// stored label image, enforcing ownership.
func (s *trackingService) UploadImageURL(ctx context.Context, userID, uploadID primitive.ObjectID) (string, error) {
	upload, err := s.uploadRepo.GetByID(ctx, uploadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUploadNotFound
		}
		return "", err
	}
	if upload.UserID != userID {
		return "", ErrUploadNotFound
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, upload.S3ObjectKey, storage.DefaultPresignedURLExpiry)
}

// AddMeasurement logs a body measurement.
func (s *trackingService) AddMeasurement(ctx context.Context, userID primitive.ObjectID, m domain.Measurement) (*domain.Measurement, error) {
	m.UserID = userID
	m.TakenAt = time.Now().UTC()

	id, err := s.measurementRepo.Create(ctx, &m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return &m, nil
}

// ListMeasurements returns a user's measurements oldest first.
func (s *trackingService) ListMeasurements(ctx context.Context, userID primitive.ObjectID) ([]domain.Measurement, error) {
	return s.measurementRepo.ListByUser(ctx, userID)
}
