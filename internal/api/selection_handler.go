package api

import (
	"alcyxob/exercise-lookup/internal/domain"
	"alcyxob/exercise-lookup/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SelectionHandler serves the selection list endpoints.
type SelectionHandler struct {
	selectionService service.SelectionService
}

func NewSelectionHandler(selectionService service.SelectionService) *SelectionHandler {
	return &SelectionHandler{selectionService: selectionService}
}

// AddExerciseRequest is the exercise as the client received it from search.
type AddExerciseRequest struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name"`
	Target    string `json:"target"`
	BodyPart  string `json:"bodyPart"`
	Equipment string `json:"equipment"`
	GifURL    string `json:"gifUrl"`
}

// SelectionListResponse is the DTO for a selection list.
type SelectionListResponse struct {
	ID        string             `json:"id"`
	Count     int                `json:"count"`
	Exercises []ExerciseResponse `json:"exercises"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func MapSelectionListToResponse(list *domain.SelectionList) SelectionListResponse {
	if list == nil {
		return SelectionListResponse{Exercises: []ExerciseResponse{}}
	}
	return SelectionListResponse{
		ID:        list.ID,
		Count:     list.Count(),
		Exercises: MapExercisesToResponse(list.Exercises),
		CreatedAt: list.CreatedAt,
		UpdatedAt: list.UpdatedAt,
	}
}

// CreateList godoc
// @Summary Create an empty selection list
// @Tags Selections
// @Produce json
// @Success 201 {object} SelectionListResponse
// @Router /selections [post]
func (h *SelectionHandler) CreateList(c *gin.Context) {
	list, err := h.selectionService.CreateList(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create selection list.")
		return
	}
	c.JSON(http.StatusCreated, MapSelectionListToResponse(list))
}

// GetList godoc
// @Summary Get a selection list
// @Tags Selections
// @Produce json
// @Param listId path string true "Selection list ID"
// @Success 200 {object} SelectionListResponse
// @Failure 400 {object} gin.H "Invalid list ID"
// @Failure 404 {object} gin.H "List not found"
// @Router /selections/{listId} [get]
func (h *SelectionHandler) GetList(c *gin.Context) {
	list, err := h.selectionService.GetList(c.Request.Context(), c.Param("listId"))
	if err != nil {
		respondSelectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSelectionListToResponse(list))
}

// AddExercise godoc
// @Summary Add an exercise to a selection list
// @Description Adding an exercise whose ID is already in the list is a no-op and returns 200.
// @Tags Selections
// @Accept json
// @Produce json
// @Param listId path string true "Selection list ID"
// @Param exercise body AddExerciseRequest true "Exercise"
// @Success 201 {object} SelectionListResponse "Exercise added"
// @Success 200 {object} SelectionListResponse "Exercise was already in the list"
// @Failure 400 {object} gin.H "Validation error"
// @Failure 404 {object} gin.H "List not found"
// @Router /selections/{listId}/exercises [post]
func (h *SelectionHandler) AddExercise(c *gin.Context) {
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise := domain.Exercise{
		ID:        req.ID,
		Name:      req.Name,
		Target:    req.Target,
		BodyPart:  req.BodyPart,
		Equipment: req.Equipment,
		MediaURL:  req.GifURL,
	}
	list, added, err := h.selectionService.AddExercise(c.Request.Context(), c.Param("listId"), exercise)
	if err != nil {
		respondSelectionError(c, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, MapSelectionListToResponse(list))
}

// RemoveExercise godoc
// @Summary Remove one exercise from a selection list
// @Tags Selections
// @Produce json
// @Param listId path string true "Selection list ID"
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} SelectionListResponse
// @Failure 404 {object} gin.H "List or exercise not found"
// @Router /selections/{listId}/exercises/{exerciseId} [delete]
func (h *SelectionHandler) RemoveExercise(c *gin.Context) {
	list, err := h.selectionService.RemoveExercise(c.Request.Context(), c.Param("listId"), c.Param("exerciseId"))
	if err != nil {
		respondSelectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSelectionListToResponse(list))
}

// ClearList godoc
// @Summary Remove every exercise from a selection list
// @Tags Selections
// @Produce json
// @Param listId path string true "Selection list ID"
// @Success 200 {object} SelectionListResponse
// @Router /selections/{listId}/exercises [delete]
func (h *SelectionHandler) ClearList(c *gin.Context) {
	list, err := h.selectionService.ClearList(c.Request.Context(), c.Param("listId"))
	if err != nil {
		respondSelectionError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapSelectionListToResponse(list))
}

// DeleteList godoc
// @Summary Delete a selection list
// @Tags Selections
// @Param listId path string true "Selection list ID"
// @Success 204 "Deleted"
// @Router /selections/{listId} [delete]
func (h *SelectionHandler) DeleteList(c *gin.Context) {
	if err := h.selectionService.DeleteList(c.Request.Context(), c.Param("listId")); err != nil {
		respondSelectionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondSelectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSelectionNotFound), errors.Is(err, service.ErrExerciseNotInList):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to update selection list.")
	}
}
