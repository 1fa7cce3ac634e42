package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxLabelImageSize caps scanned label uploads at 10 MiB.
const maxLabelImageSize = 10 << 20

// TrackingHandler holds the tracking service dependency.
type TrackingHandler struct {
	trackingService service.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackingService service.TrackingService) *TrackingHandler {
	return &TrackingHandler{trackingService: trackingService}
}

// --- Request/Response Structs ---

type FoodEntryRequest struct {
	Name        string               `json:"name" binding:"required"`
	Calories    int                  `json:"calories" binding:"omitempty,gte=0"`
	Protein     int                  `json:"protein" binding:"omitempty,gte=0"`
	Carbs       int                  `json:"carbs" binding:"omitempty,gte=0"`
	Fat         int                  `json:"fat" binding:"omitempty,gte=0"`
	ServingSize string               `json:"servingSize"`
	Date        string               `json:"date" binding:"omitempty,datetime=2006-01-02"`
	MealType    domain.MealTimeOfDay `json:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
}

// ScanLabelForm is the multipart form for label-scan intake. The
// nutrition fields arrive already parsed by the OCR collaborator; the
// image file itself is read separately via FormFile.
type ScanLabelForm struct {
	Name        string               `form:"name"`
	Calories    int                  `form:"calories" binding:"omitempty,gte=0"`
	Protein     int                  `form:"protein" binding:"omitempty,gte=0"`
	Carbs       int                  `form:"carbs" binding:"omitempty,gte=0"`
	Fat         int                  `form:"fat" binding:"omitempty,gte=0"`
	ServingSize string               `form:"servingSize"`
	Date        string               `form:"date" binding:"omitempty,datetime=2006-01-02"`
	MealType    domain.MealTimeOfDay `form:"mealType" binding:"omitempty,oneof=breakfast lunch dinner snack"`
}

type ScanLabelResponse struct {
	Entry  *domain.FoodEntry `json:"entry"`
	Upload *domain.Upload    `json:"upload,omitempty"`
}

type MeasurementRequest struct {
	Weight *float64 `json:"weight" binding:"omitempty,gt=0"`
	Chest  *float64 `json:"chest" binding:"omitempty,gt=0"`
	Waist  *float64 `json:"waist" binding:"omitempty,gt=0"`
	Hips   *float64 `json:"hips" binding:"omitempty,gt=0"`
}

// --- Handler Methods ---

// AddFoodEntry logs a food item.
func (h *TrackingHandler) AddFoodEntry(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req FoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.trackingService.AddFoodEntry(c.Request.Context(), userID, foodEntryFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrEntryValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log food entry")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateFoodEntry edits an existing entry.
func (h *TrackingHandler) UpdateFoodEntry(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	entryID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req FoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.trackingService.UpdateFoodEntry(c.Request.Context(), userID, entryID, foodEntryFromRequest(req))
	if err != nil {
		h.entryError(c, err, "Failed to update food entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteFoodEntry removes an entry from the log.
func (h *TrackingHandler) DeleteFoodEntry(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	entryID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.trackingService.DeleteFoodEntry(c.Request.Context(), userID, entryID); err != nil {
		h.entryError(c, err, "Failed to delete food entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListFoodEntries returns the log most-recent-first, optionally
// filtered by the ?date= query parameter.
func (h *TrackingHandler) ListFoodEntries(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	entries, err := h.trackingService.ListFoodEntries(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list food entries")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// SavedFoods returns the unique-by-name quick-select list derived from
// the log.
func (h *TrackingHandler) SavedFoods(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	foods, err := h.trackingService.SavedFoods(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list saved foods")
		return
	}

	c.JSON(http.StatusOK, foods)
}

// ScanLabel logs a food entry from a scanned nutrition label and, when
// an image is attached, stores it in object storage.
func (h *TrackingHandler) ScanLabel(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var form ScanLabelForm
	if err := c.ShouldBind(&form); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	scan := service.ScannedLabel{
		Name:        form.Name,
		Calories:    form.Calories,
		Protein:     form.Protein,
		Carbs:       form.Carbs,
		Fat:         form.Fat,
		ServingSize: form.ServingSize,
		Date:        form.Date,
		MealType:    form.MealType,
	}

	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxLabelImageSize {
			abortWithError(c, http.StatusRequestEntityTooLarge, "Image exceeds the 10MB limit")
			return
		}
		src, err := file.Open()
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Failed to read image")
			return
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Failed to read image")
			return
		}
		scan.Image = data
		scan.ImageName = file.Filename
		scan.ImageContentType = file.Header.Get("Content-Type")
	}

	entry, upload, err := h.trackingService.LogScannedLabel(c.Request.Context(), userID, scan)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log scanned label")
		return
	}

	c.JSON(http.StatusCreated, ScanLabelResponse{Entry: entry, Upload: upload})
}

// UploadImageURL returns a presigned download URL for a stored label
// image.
func (h *TrackingHandler) UploadImageURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	uploadID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	url, err := h.trackingService.UploadImageURL(c.Request.Context(), userID, uploadID)
	if err != nil {
		if errors.Is(err, service.ErrUploadNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// AddMeasurement logs a body measurement.
func (h *TrackingHandler) AddMeasurement(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.Weight == nil && req.Chest == nil && req.Waist == nil && req.Hips == nil {
		abortWithError(c, http.StatusBadRequest, "At least one measurement field is required")
		return
	}

	m, err := h.trackingService.AddMeasurement(c.Request.Context(), userID, domain.Measurement{
		Weight: req.Weight,
		Chest:  req.Chest,
		Waist:  req.Waist,
		Hips:   req.Hips,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save measurement")
		return
	}

	c.JSON(http.StatusCreated, m)
}

// ListMeasurements returns all measurements oldest first, ready for
// charting.
func (h *TrackingHandler) ListMeasurements(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	measurements, err := h.trackingService.ListMeasurements(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list measurements")
		return
	}

	c.JSON(http.StatusOK, measurements)
}

// entryError maps tracking service errors to HTTP status codes.
func (h *TrackingHandler) entryError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrFoodEntryNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEntryValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

func foodEntryFromRequest(req FoodEntryRequest) domain.FoodEntry {
	return domain.FoodEntry{
		Name:        req.Name,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		ServingSize: req.ServingSize,
		Date:        req.Date,
		MealType:    req.MealType,
	}
}

// objectIDParam parses a hex ObjectID path parameter, writing the 400
// itself on failure.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s format", name))
		return primitive.NilObjectID, false
	}
	return id, true
}
