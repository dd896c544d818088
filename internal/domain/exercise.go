// internal/domain/exercise.go
package domain

// Exercise is a single record from the remote exercise catalog.
// Values are treated as immutable once decoded; copy before changing anything.
type Exercise struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Target    string `json:"target"`    // Primary muscle, e.g. "glutes"
	BodyPart  string `json:"bodyPart"`  // Coarse region, e.g. "lower body"
	Equipment string `json:"equipment"` // e.g. "body weight", "barbell"
	MediaURL  string `json:"gifUrl"`    // Demonstration asset, not validated
}

// DisplayText is the short label clients show in suggestion lists.
func (e Exercise) DisplayText() string {
	if e.Target == "" {
		return e.Name
	}
	return e.Name + " - " + e.Target
}
