package service

import (
	"alcyxob/exercise-lookup/internal/domain"
	"alcyxob/exercise-lookup/internal/repository"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrSelectionNotFound = errors.New("selection list not found")
	ErrExerciseNotInList = errors.New("exercise not in selection list")
)

// SelectionService manages the lists users build from search results.
// It does not check exercises against the catalog.
type SelectionService interface {
	CreateList(ctx context.Context) (*domain.SelectionList, error)
	GetList(ctx context.Context, listID string) (*domain.SelectionList, error)
	AddExercise(ctx context.Context, listID string, exercise domain.Exercise) (*domain.SelectionList, bool, error)
	RemoveExercise(ctx context.Context, listID, exerciseID string) (*domain.SelectionList, error)
	ClearList(ctx context.Context, listID string) (*domain.SelectionList, error)
	DeleteList(ctx context.Context, listID string) error
}

type selectionService struct {
	repo   repository.SelectionRepository
	logger *slog.Logger
}

// NewSelectionService creates a new instance of selectionService.
func NewSelectionService(repo repository.SelectionRepository, logger *slog.Logger) SelectionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &selectionService{
		repo:   repo,
		logger: logger.With("component", "selection"),
	}
}

func (s *selectionService) CreateList(ctx context.Context) (*domain.SelectionList, error) {
	list := &domain.SelectionList{
		ID:        uuid.NewString(),
		Exercises: []domain.Exercise{},
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("create selection list: %w", err)
	}
	s.logger.Info("selection list created", "list_id", list.ID)
	return list, nil
}

func (s *selectionService) GetList(ctx context.Context, listID string) (*domain.SelectionList, error) {
	id, err := parseListID(listID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return list, nil
}

// AddExercise reports added=false when the list already holds an exercise with that ID.
func (s *selectionService) AddExercise(ctx context.Context, listID string, exercise domain.Exercise) (*domain.SelectionList, bool, error) {
	id, err := parseListID(listID)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(exercise.ID) == "" {
		return nil, false, fmt.Errorf("%w: exercise id is required", ErrValidationFailed)
	}

	list, added, err := s.repo.AddExercise(ctx, id, exercise)
	if err != nil {
		return nil, false, mapRepoError(err)
	}
	if added {
		s.logger.Debug("exercise added", "list_id", id, "exercise_id", exercise.ID)
	}
	return list, added, nil
}

func (s *selectionService) RemoveExercise(ctx context.Context, listID, exerciseID string) (*domain.SelectionList, error) {
	id, err := parseListID(listID)
	if err != nil {
		return nil, err
	}

	list, removed, err := s.repo.RemoveExercise(ctx, id, exerciseID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !removed {
		return nil, ErrExerciseNotInList
	}
	s.logger.Debug("exercise removed", "list_id", id, "exercise_id", exerciseID)
	return list, nil
}

func (s *selectionService) ClearList(ctx context.Context, listID string) (*domain.SelectionList, error) {
	id, err := parseListID(listID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ClearExercises(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	s.logger.Info("selection list cleared", "list_id", id)
	return list, nil
}

func (s *selectionService) DeleteList(ctx context.Context, listID string) error {
	id, err := parseListID(listID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	s.logger.Info("selection list deleted", "list_id", id)
	return nil
}

// parseListID normalizes a list ID; list IDs are always UUIDs.
func parseListID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: invalid list id", ErrValidationFailed)
	}
	return id.String(), nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSelectionNotFound
	}
	return err
}
