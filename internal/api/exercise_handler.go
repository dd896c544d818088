package api

import (
	"alcyxob/exercise-lookup/internal/domain"
	"alcyxob/exercise-lookup/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the lookup service dependency.
type ExerciseHandler struct {
	lookupService service.ExerciseLookupService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(lookupService service.ExerciseLookupService) *ExerciseHandler {
	return &ExerciseHandler{lookupService: lookupService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for returning a catalog record.
type ExerciseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Target      string `json:"target"`
	BodyPart    string `json:"bodyPart"`
	Equipment   string `json:"equipment"`
	GifURL      string `json:"gifUrl"`
	DisplayText string `json:"displayText"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:          ex.ID,
		Name:        ex.Name,
		Target:      ex.Target,
		BodyPart:    ex.BodyPart,
		Equipment:   ex.Equipment,
		GifURL:      ex.MediaURL,
		DisplayText: ex.DisplayText(),
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise; never returns nil.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(ex)
	}
	return responses
}

// --- Handler Methods ---

// SearchExercises godoc
// @Summary Search the exercise catalog
// @Description Returns up to 8 exercises whose name, target or body part contains q.
// @Tags Exercises
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {array} ExerciseResponse "Matching exercises (possibly empty)"
// @Router /exercises/search [get]
func (h *ExerciseHandler) SearchExercises(c *gin.Context) {
	query := c.Query("q")
	exercises := h.lookupService.Search(c.Request.Context(), query)
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetStatus godoc
// @Summary Catalog cache status
// @Tags Exercises
// @Produce json
// @Success 200 {object} service.LookupStatus
// @Router /exercises/status [get]
func (h *ExerciseHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.lookupService.Status())
}

// ClearCache godoc
// @Summary Drop the cached catalog snapshot
// @Tags Exercises
// @Success 204 "Cache cleared"
// @Router /exercises/cache [delete]
func (h *ExerciseHandler) ClearCache(c *gin.Context) {
	h.lookupService.ClearCache()
	c.Status(http.StatusNoContent)
}
