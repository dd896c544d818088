package catalog

import "alcyxob/exercise-lookup/internal/domain"

var fixtureExercises = [...]domain.Exercise{
	{
		ID:        "1",
		Name:      "Push Up",
		Target:    "chest",
		BodyPart:  "upper body",
		Equipment: "body weight",
		MediaURL:  "https://media.giphy.com/media/l2JhpjWPccQhsAMfu/giphy.gif",
	},
	{
		ID:        "2",
		Name:      "Squat",
		Target:    "glutes",
		BodyPart:  "lower body",
		Equipment: "body weight",
		MediaURL:  "https://media.giphy.com/media/l0HlN5Y28D9MzzcRy/giphy.gif",
	},
	{
		ID:        "3",
		Name:      "Plank",
		Target:    "abs",
		BodyPart:  "waist",
		Equipment: "body weight",
		MediaURL:  "https://media.giphy.com/media/l0MYC0LajbaPoEADu/giphy.gif",
	},
	{
		ID:        "4",
		Name:      "Jumping Jacks",
		Target:    "cardiovascular",
		BodyPart:  "cardio",
		Equipment: "body weight",
		MediaURL:  "https://media.giphy.com/media/l0HlBO7eyXzSZkJri/giphy.gif",
	},
	{
		ID:        "5",
		Name:      "Mountain Climbers",
		Target:    "abs",
		BodyPart:  "cardio",
		Equipment: "body weight",
		MediaURL:  "https://media.giphy.com/media/l0MYGb1LuZ3n7dRnO/giphy.gif",
	},
}

// Fixtures returns the built-in sample catalog served when no live data is
// available. The slice is a fresh copy on every call.
func Fixtures() []domain.Exercise {
	out := make([]domain.Exercise, len(fixtureExercises))
	copy(out, fixtureExercises[:])
	return out
}
