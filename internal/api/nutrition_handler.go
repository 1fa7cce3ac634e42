package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

// NutritionHandler holds the nutrition service dependency.
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// --- Request/Response Structs ---

type AddMealRequest struct {
	Name        string               `json:"name" binding:"required"`
	TimeOfDay   domain.MealTimeOfDay `json:"timeOfDay" binding:"required,oneof=breakfast lunch dinner snack"`
	Calories    int                  `json:"calories" binding:"omitempty,gte=0"`
	Protein     int                  `json:"protein" binding:"omitempty,gte=0"`
	Carbs       int                  `json:"carbs" binding:"omitempty,gte=0"`
	Fat         int                  `json:"fat" binding:"omitempty,gte=0"`
	ServingSize string               `json:"servingSize"`
}

type SetCompletionRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// --- Handler Methods ---

// GetDailyPlan godoc
// @Summary Get the combined meal plan and workout for a date
// @Description Returns the meal plan and scheduled workout joined on the date. When a workout exists but no meal plan does, an empty plan with workout-day targets is created and returned.
// @Tags Nutrition
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} service.DailyPlan
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /daily-plan/{date} [get]
func (h *NutritionHandler) GetDailyPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	plan, err := h.nutritionService.GetDailyPlan(c.Request.Context(), userID, date)
	if err != nil {
		// Only infrastructure failures reach here; keep the response
		// generic but keep the cause in the server log.
		log.Printf("ERROR: Failed to retrieve daily plan for user %s, date %s: %v", userID.Hex(), date, err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve daily plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// AddMeal appends a meal to the date's plan, creating the plan on
// first use.
func (h *NutritionHandler) AddMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.nutritionService.AddMeal(c.Request.Context(), userID, date, domain.Meal{
		Name:        req.Name,
		TimeOfDay:   req.TimeOfDay,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		ServingSize: req.ServingSize,
	})
	if err != nil {
		if errors.Is(err, service.ErrMealValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to add meal")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// EditMeal applies a partial update to a meal in the date's plan.
func (h *NutritionHandler) EditMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var patch domain.MealPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.nutritionService.EditMeal(c.Request.Context(), userID, date, c.Param("mealId"), patch)
	if err != nil {
		h.mealError(c, err, "Failed to edit meal")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeleteMeal removes a meal from the date's plan.
func (h *NutritionHandler) DeleteMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	plan, err := h.nutritionService.DeleteMeal(c.Request.Context(), userID, date, c.Param("mealId"))
	if err != nil {
		h.mealError(c, err, "Failed to delete meal")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// SetMealCompletion marks a meal as eaten (or not). Totals are not
// affected.
func (h *NutritionHandler) SetMealCompletion(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user from token")
		return
	}
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var req SetCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.nutritionService.SetMealCompletion(c.Request.Context(), userID, date, c.Param("mealId"), *req.IsCompleted)
	if err != nil {
		h.mealError(c, err, "Failed to update meal")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// mealError maps the nutrition service's meal mutation errors to HTTP
// status codes.
func (h *NutritionHandler) mealError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMealPlanNotFound), errors.Is(err, service.ErrMealNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMealValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("ERROR: %s: %v", fallback, err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// dateParam validates the :date path segment ("2006-01-02"). On
// failure it writes the 400 itself and returns ok=false.
func dateParam(c *gin.Context) (string, bool) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		abortWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return "", false
	}
	return date, true
}
