package api

import (
	"net/http"

	"fittrack/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	nutritionService service.NutritionService,
	trackingService service.TrackingService,
	workoutService service.WorkoutService,
) {

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	nutritionHandler := NewNutritionHandler(nutritionService)
	trackingHandler := NewTrackingHandler(trackingService)
	workoutHandler := NewWorkoutHandler(workoutService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Profile ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.PUT("/health-goals", profileHandler.UpdateHealthGoals)
		}

		// --- Daily plan & meal plans ---
		// GET /api/v1/daily-plan/{date} joins the meal plan and the
		// scheduled workout for the date.
		protected.GET("/daily-plan/:date", nutritionHandler.GetDailyPlan)

		mealPlanGroup := protected.Group("/meal-plans/:date/meals")
		{
			mealPlanGroup.POST("", nutritionHandler.AddMeal)
			mealPlanGroup.PUT("/:mealId", nutritionHandler.EditMeal)
			mealPlanGroup.DELETE("/:mealId", nutritionHandler.DeleteMeal)
			mealPlanGroup.PATCH("/:mealId/completion", nutritionHandler.SetMealCompletion)
		}

		// --- Food log ---
		foodGroup := protected.Group("/food-entries")
		{
			foodGroup.POST("", trackingHandler.AddFoodEntry)
			foodGroup.GET("", trackingHandler.ListFoodEntries)
			foodGroup.GET("/saved", trackingHandler.SavedFoods)
			foodGroup.POST("/scan", trackingHandler.ScanLabel)
			foodGroup.PUT("/:id", trackingHandler.UpdateFoodEntry)
			foodGroup.DELETE("/:id", trackingHandler.DeleteFoodEntry)
		}

		protected.GET("/uploads/:id/url", trackingHandler.UploadImageURL)

		// --- Measurements ---
		measurementGroup := protected.Group("/measurements")
		{
			measurementGroup.POST("", trackingHandler.AddMeasurement)
			measurementGroup.GET("", trackingHandler.ListMeasurements)
		}

		// --- Workout plan ---
		workoutGroup := protected.Group("/workout-plans")
		{
			workoutGroup.POST("/generate", workoutHandler.GeneratePlan)
			workoutGroup.GET("/current", workoutHandler.GetPlan)
			workoutGroup.PUT("/current", workoutHandler.UpdatePlan)
			workoutGroup.POST("/current/weights", workoutHandler.RecordWeight)
			workoutGroup.DELETE("/current", workoutHandler.DeletePlan)
		}
	}
}
