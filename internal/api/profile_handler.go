package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

// UpdateProfileRequest maps to a merge write: absent fields keep their
// stored values, which is why every field is a pointer.
type UpdateProfileRequest struct {
	Name   *string  `json:"name"`
	Age    *int     `json:"age" binding:"omitempty,gte=0,lte=120"`
	Gender *string  `json:"gender"`
	Height *float64 `json:"height" binding:"omitempty,gte=0"`
	Weight *float64 `json:"weight" binding:"omitempty,gte=0"`

	FitnessGoal     *string  `json:"fitnessGoal"`
	FitnessLevel    *string  `json:"fitnessLevel" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	WorkoutsPerWeek *int     `json:"workoutsPerWeek" binding:"omitempty,gte=0,lte=7"`
	Equipment       []string `json:"equipment"`

	DietaryPreferences  *domain.DietaryPreferences `json:"dietaryPreferences"`
	MedicalConditions   []string                   `json:"medicalConditions"`
	HealthConditions    []string                   `json:"healthConditions"`
	CurrentMedications  []string                   `json:"currentMedications"`
	Injuries            *string                    `json:"injuries"`
	ExercisePreferences []string                   `json:"exercisePreferences"`
	ExerciseDislikes    *string                    `json:"exerciseDislikes"`
	ShortTermGoal       *string                    `json:"shortTermGoal"`
	LongTermGoal        *string                    `json:"longTermGoal"`

	DailyCalorieGoal *int                `json:"dailyCalorieGoal" binding:"omitempty,gte=0"`
	HealthGoals      *domain.HealthGoals `json:"healthGoals"`
}

// --- Handler Methods ---

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile creates or replaces the authenticated user's profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, domain.ProfilePatch{
		Name:                req.Name,
		Age:                 req.Age,
		Gender:              req.Gender,
		Height:              req.Height,
		Weight:              req.Weight,
		FitnessGoal:         req.FitnessGoal,
		FitnessLevel:        req.FitnessLevel,
		WorkoutsPerWeek:     req.WorkoutsPerWeek,
		Equipment:           req.Equipment,
		DietaryPreferences:  req.DietaryPreferences,
		MedicalConditions:   req.MedicalConditions,
		HealthConditions:    req.HealthConditions,
		CurrentMedications:  req.CurrentMedications,
		Injuries:            req.Injuries,
		ExercisePreferences: req.ExercisePreferences,
		ExerciseDislikes:    req.ExerciseDislikes,
		ShortTermGoal:       req.ShortTermGoal,
		LongTermGoal:        req.LongTermGoal,
		DailyCalorieGoal:    req.DailyCalorieGoal,
		HealthGoals:         req.HealthGoals,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateHealthGoals replaces the health goals section of the profile.
// The profile must exist first (404 otherwise).
func (h *ProfileHandler) UpdateHealthGoals(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var goals domain.HealthGoals
	if err := c.ShouldBindJSON(&goals); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateHealthGoals(c.Request.Context(), userID, goals)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save health goals")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}
