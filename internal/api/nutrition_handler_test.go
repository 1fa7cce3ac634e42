package api

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"fittrack/internal/domain"
	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// failingNutritionService returns the same error from every operation,
// standing in for an unreachable store.
type failingNutritionService struct {
	err error
}

func (s *failingNutritionService) GetDailyPlan(ctx context.Context, userID primitive.ObjectID, date string) (*service.DailyPlan, error) {
	return nil, s.err
}

func (s *failingNutritionService) AddMeal(ctx context.Context, userID primitive.ObjectID, date string, meal domain.Meal) (*domain.MealPlan, error) {
	return nil, s.err
}

func (s *failingNutritionService) EditMeal(ctx context.Context, userID primitive.ObjectID, date, mealID string, patch domain.MealPatch) (*domain.MealPlan, error) {
	return nil, s.err
}

func (s *failingNutritionService) DeleteMeal(ctx context.Context, userID primitive.ObjectID, date, mealID string) (*domain.MealPlan, error) {
	return nil, s.err
}

func (s *failingNutritionService) SetMealCompletion(ctx context.Context, userID primitive.ObjectID, date, mealID string, completed bool) (*domain.MealPlan, error) {
	return nil, s.err
}

func dailyPlanRouter(svc service.NutritionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewNutritionHandler(svc)
	router := gin.New()
	router.GET("/daily-plan/:date", func(c *gin.Context) {
		c.Set(ContextUserIDKey, primitive.NewObjectID().Hex())
		handler.GetDailyPlan(c)
	})
	return router
}

func TestGetDailyPlan_StoreFailureIsLoggedNotLeaked(t *testing.T) {
	router := dailyPlanRouter(&failingNutritionService{err: errors.New("mongo: connection refused")})

	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(log.Writer())

	req := httptest.NewRequest(http.MethodGet, "/daily-plan/2026-09-01", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to retrieve daily plan")
	assert.NotContains(t, rec.Body.String(), "connection refused", "internal detail must not leak to the client")
	assert.Contains(t, logBuf.String(), "connection refused", "the cause must land in the server log")
}

func TestGetDailyPlan_RejectsBadDate(t *testing.T) {
	router := dailyPlanRouter(&failingNutritionService{err: errors.New("should not be called")})

	req := httptest.NewRequest(http.MethodGet, "/daily-plan/tomorrow", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}
