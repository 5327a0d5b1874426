package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Resume is a stored resume: the structured profile it was generated
// from, the generation options, and the final (possibly user-edited)
// text. Score fields stay empty until the resume has been scored.
type Resume struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Name is the candidate name, denormalized for listings and
	// download filenames.
	Name string

	// Template is the document template chosen at generation time.
	Template string

	ProfileJSON string
	OptionsJSON string
	FinalText   string

	Score        *int
	ScoreReasons string // JSON array stored as text
	ScoreMode    string
}
