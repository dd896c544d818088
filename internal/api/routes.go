package api

import (
	"alcyxob/exercise-lookup/internal/service"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with recovery, request IDs and request logging.
func NewRouter(logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestIDMiddleware(), RequestLogger(logger))
	return router
}

func SetupRoutes(
	router *gin.Engine,
	apiKey string,
	lookupService service.ExerciseLookupService,
	selectionService service.SelectionService,
) {
	exerciseHandler := NewExerciseHandler(lookupService)
	selectionHandler := NewSelectionHandler(selectionService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(APIKeyMiddleware(apiKey))
	{
		// --- Exercise Lookup ---
		exerciseGroup := apiV1.Group("/exercises")
		{
			// GET /api/v1/exercises/search?q=squat
			exerciseGroup.GET("/search", exerciseHandler.SearchExercises)
			exerciseGroup.GET("/status", exerciseHandler.GetStatus)
			exerciseGroup.DELETE("/cache", exerciseHandler.ClearCache)
		}

		// --- Selection Lists ---
		selectionGroup := apiV1.Group("/selections")
		{
			selectionGroup.POST("", selectionHandler.CreateList)
			selectionGroup.GET("/:listId", selectionHandler.GetList)
			selectionGroup.DELETE("/:listId", selectionHandler.DeleteList)

			// POST /api/v1/selections/{listId}/exercises
			selectionGroup.POST("/:listId/exercises", selectionHandler.AddExercise)
			// DELETE /api/v1/selections/{listId}/exercises/{exerciseId}
			selectionGroup.DELETE("/:listId/exercises/:exerciseId", selectionHandler.RemoveExercise)
			// DELETE /api/v1/selections/{listId}/exercises clears the whole list
			selectionGroup.DELETE("/:listId/exercises", selectionHandler.ClearList)
		}
	}
}
