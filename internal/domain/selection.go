package domain

import "time"

// SelectionList is a user's working list of exercises picked from search results.
// Exercises are unique by ID and keep the order in which they were added.
type SelectionList struct {
	ID        string     `json:"id"`
	Exercises []Exercise `json:"exercises"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Contains reports whether an exercise with the given ID is already in the list.
func (l *SelectionList) Contains(exerciseID string) bool {
	for _, ex := range l.Exercises {
		if ex.ID == exerciseID {
			return true
		}
	}
	return false
}

// Count returns the number of exercises in the list.
func (l *SelectionList) Count() int {
	return len(l.Exercises)
}
