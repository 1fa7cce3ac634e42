package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/internal/ai"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	Duration             int    `json:"duration" binding:"omitempty,gt=0"`
	IncludeWarmup        bool   `json:"includeWarmup"`
	IncludeCooldown      bool   `json:"includeCooldown"`
	FocusArea            string `json:"focusArea"`
	RecentChanges        string `json:"recentChanges"`
	SpecificRequirements string `json:"specificRequirements"`
}

type RecordWeightRequest struct {
	Date         string   `json:"date" binding:"required,datetime=2006-01-02"`
	ExerciseName string   `json:"exerciseName" binding:"required"`
	Weight       *float64 `json:"weight" binding:"required,gt=0"`
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a workout plan from the user's profile
// @Description Asks the AI assistant for a weekly plan tailored to the profile. Replaces any existing plan, including a previously deleted one.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param options body GeneratePlanRequest true "Generation options"
// @Success 200 {object} domain.WorkoutPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 502 {object} gin.H "Assistant returned an unusable reply"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workout-plans/generate [post]
func (h *WorkoutHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.workoutService.GeneratePlan(c.Request.Context(), userID, ai.PlanRequest{
		Duration:             req.Duration,
		IncludeWarmup:        req.IncludeWarmup,
		IncludeCooldown:      req.IncludeCooldown,
		FocusArea:            req.FocusArea,
		RecentChanges:        req.RecentChanges,
		SpecificRequirements: req.SpecificRequirements,
	})
	if err != nil {
		if errors.Is(err, ai.ErrMalformedResponse) {
			abortWithError(c, http.StatusBadGateway, "Assistant returned an unusable plan, please try again")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate workout plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetPlan returns the user's live workout plan.
func (h *WorkoutHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	plan, err := h.workoutService.GetPlan(c.Request.Context(), userID)
	if err != nil {
		h.planError(c, err, "Failed to retrieve workout plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// UpdatePlan applies a manual edit to the live plan.
func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var edit service.PlanEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.workoutService.UpdatePlan(c.Request.Context(), userID, edit)
	if err != nil {
		h.planError(c, err, "Failed to update workout plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// RecordWeight stores the weight lifted for one exercise in one day's
// session.
func (h *WorkoutHandler) RecordWeight(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	var req RecordWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.workoutService.RecordExerciseWeight(c.Request.Context(), userID, req.Date, req.ExerciseName, *req.Weight)
	if err != nil {
		h.planError(c, err, "Failed to record weight")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan soft-deletes the live plan.
func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}

	if err := h.workoutService.DeletePlan(c.Request.Context(), userID); err != nil {
		h.planError(c, err, "Failed to delete workout plan")
		return
	}

	c.Status(http.StatusNoContent)
}

// planError maps workout service errors to HTTP status codes.
func (h *WorkoutHandler) planError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrWorkoutPlanNotFound),
		errors.Is(err, service.ErrWorkoutNotScheduled),
		errors.Is(err, service.ErrExerciseNotInPlan):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
