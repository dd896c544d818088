package repository

import (
	"alcyxob/exercise-lookup/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrAlreadyExists = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SelectionRepository stores users' selection lists.
// Every mutating method is atomic with respect to the list it touches.
type SelectionRepository interface {
	Create(ctx context.Context, list *domain.SelectionList) error
	GetByID(ctx context.Context, id string) (*domain.SelectionList, error)
	// AddExercise appends the exercise unless one with the same ID is present.
	// It reports whether the list changed.
	AddExercise(ctx context.Context, id string, exercise domain.Exercise) (*domain.SelectionList, bool, error)
	RemoveExercise(ctx context.Context, id string, exerciseID string) (*domain.SelectionList, bool, error)
	ClearExercises(ctx context.Context, id string) (*domain.SelectionList, error)
	Delete(ctx context.Context, id string) error
}
