package memory

import (
	"alcyxob/exercise-lookup/internal/domain"
	"alcyxob/exercise-lookup/internal/repository"
	"context"
	"sync"
	"time"
)

// selectionRepository keeps selection lists in process memory. Lists do not
// survive a restart.
type selectionRepository struct {
	mu    sync.RWMutex
	lists map[string]*domain.SelectionList
	now   func() time.Time
}

// NewSelectionRepository creates an empty in-memory repository.
func NewSelectionRepository() repository.SelectionRepository {
	return &selectionRepository{
		lists: make(map[string]*domain.SelectionList),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (r *selectionRepository) Create(ctx context.Context, list *domain.SelectionList) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.lists[list.ID]; exists {
		return repository.ErrAlreadyExists
	}
	now := r.now()
	list.CreatedAt = now
	list.UpdatedAt = now
	if list.Exercises == nil {
		list.Exercises = []domain.Exercise{}
	}
	r.lists[list.ID] = clone(list)
	return nil
}

func (r *selectionRepository) GetByID(ctx context.Context, id string) (*domain.SelectionList, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(list), nil
}

func (r *selectionRepository) AddExercise(ctx context.Context, id string, exercise domain.Exercise) (*domain.SelectionList, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, false, repository.ErrNotFound
	}
	if list.Contains(exercise.ID) {
		return clone(list), false, nil
	}
	list.Exercises = append(list.Exercises, exercise)
	list.UpdatedAt = r.now()
	return clone(list), true, nil
}

func (r *selectionRepository) RemoveExercise(ctx context.Context, id string, exerciseID string) (*domain.SelectionList, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, false, repository.ErrNotFound
	}

	kept := make([]domain.Exercise, 0, len(list.Exercises))
	for _, ex := range list.Exercises {
		if ex.ID != exerciseID {
			kept = append(kept, ex)
		}
	}
	if len(kept) == len(list.Exercises) {
		return clone(list), false, nil
	}
	list.Exercises = kept
	list.UpdatedAt = r.now()
	return clone(list), true, nil
}

func (r *selectionRepository) ClearExercises(ctx context.Context, id string) (*domain.SelectionList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	list.Exercises = []domain.Exercise{}
	list.UpdatedAt = r.now()
	return clone(list), nil
}

func (r *selectionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.lists, id)
	return nil
}

// clone copies the list so callers never share the stored slice.
func clone(list *domain.SelectionList) *domain.SelectionList {
	out := *list
	out.Exercises = make([]domain.Exercise, len(list.Exercises))
	copy(out.Exercises, list.Exercises)
	return &out
}
