package hunt

import (
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
)

// ErrInvalidClue indicates a clue missing its question or answer fingerprint.
var ErrInvalidClue = apperrors.New(apperrors.CodeClueInvalid,
	"clue question and answer hash are required")

// Location is a geofence attached to a clue. Coordinates are stored as
// degrees multiplied by 1,000,000; Radius is in meters.
type Location struct {
	Latitude  int64
	Longitude int64
	Radius    uint32
}

// Clue is one question/answer unit within a hunt. Its identity is the
// (HuntID, ClueID) pair; ClueID is scoped per hunt.
type Clue struct {
	HuntID uint64
	ClueID uint32
	Question string
	// AnswerHash is an opaque fingerprint of the expected answer. It is
	// compared for equality and never reversed.
	AnswerHash string
	// Points is the score weight awarded on completion.
	Points     uint32
	IsRequired bool
	Hint       string
	// HasLocation discriminates presence of the geofence; the zero Location
	// is a valid coordinate and cannot stand in for "absent".
	HasLocation bool
	Location    Location
}

// CreateClueInput describes a clue to be added to a hunt.
type CreateClueInput struct {
	Question    string
	AnswerHash  string
	Points      uint32
	IsRequired  bool
	Hint        string
	HasLocation bool
	Location    Location
}

// NewClue validates input and builds a clue for the given hunt. The caller
// assigns ClueID from the hunt's clue count.
func NewClue(huntID uint64, clueID uint32, input CreateClueInput) (Clue, error) {
	if input.Question == "" || input.AnswerHash == "" {
		return Clue{}, ErrInvalidClue
	}

	return Clue{
		HuntID:      huntID,
		ClueID:      clueID,
		Question:    input.Question,
		AnswerHash:  input.AnswerHash,
		Points:      input.Points,
		IsRequired:  input.IsRequired,
		Hint:        input.Hint,
		HasLocation: input.HasLocation,
		Location:    input.Location,
	}, nil
}
