package hunt

import (
	"fmt"
	"strconv"
	"time"

	apperrors "github.com/hunty/huntcore/internal/platform/errors"
)

// Status describes the lifecycle of a hunt.
type Status int

const (
	// StatusUnspecified represents an invalid hunt status value.
	StatusUnspecified Status = iota
	// StatusDraft indicates the hunt is being assembled and is not playable.
	StatusDraft
	// StatusActive indicates the hunt is open to players.
	StatusActive
	// StatusCompleted indicates the hunt has finished. Terminal.
	StatusCompleted
	// StatusCancelled indicates the hunt was cancelled by its creator. Terminal.
	StatusCancelled
)

const (
	// MaxTitleLength is the inclusive upper bound on hunt titles, in bytes.
	MaxTitleLength = 200
	// MaxDescriptionLength is the inclusive upper bound on hunt descriptions, in bytes.
	MaxDescriptionLength = 2000
)

var (
	// ErrInvalidTitle indicates an empty or over-length hunt title.
	ErrInvalidTitle = apperrors.WithMetadata(apperrors.CodeHuntInvalidTitle,
		"hunt title must be 1-200 bytes", map[string]string{"MaxLength": strconv.Itoa(MaxTitleLength)})
	// ErrInvalidDescription indicates an over-length hunt description.
	ErrInvalidDescription = apperrors.WithMetadata(apperrors.CodeHuntInvalidDescription,
		"hunt description must be at most 2000 bytes", map[string]string{"MaxLength": strconv.Itoa(MaxDescriptionLength)})
)

// Hunt represents a creator-owned scavenger hunt campaign.
type Hunt struct {
	// ID is assigned once from the hunt counter and never reused.
	ID          uint64
	Creator     string
	Title       string
	Description string
	Status      Status
	// CreatedAt is the timestamp when the hunt was created.
	CreatedAt time.Time
	// ActivatedAt is zero until the hunt is first activated.
	ActivatedAt time.Time
	// EndTime bounds the active window; zero means unbounded.
	EndTime time.Time
	Reward  RewardConfig
	// TotalClues counts clues added to the hunt; it never decreases.
	TotalClues uint32
	// RequiredClues counts the clues a player must complete to finish.
	RequiredClues uint32
}

// CreateHuntInput describes the metadata needed to create a hunt.
type CreateHuntInput struct {
	Creator     string
	Title       string
	Description string
	// EndTime of zero means the hunt has no end time.
	EndTime time.Time
}

// NewHunt validates input and builds a draft hunt with a zeroed reward
// config. The hunt ID is assigned by storage, not here.
func NewHunt(input CreateHuntInput, now func() time.Time) (Hunt, error) {
	if now == nil {
		now = time.Now
	}

	if err := ValidateTitle(input.Title); err != nil {
		return Hunt{}, err
	}
	if err := ValidateDescription(input.Description); err != nil {
		return Hunt{}, err
	}

	return Hunt{
		Creator:     input.Creator,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusDraft,
		CreatedAt:   now().UTC(),
		EndTime:     input.EndTime,
		Reward:      RewardConfig{},
	}, nil
}

// ValidateTitle checks the title length bounds. Exactly-at-bound values are
// valid; only strictly-over is rejected.
func ValidateTitle(title string) error {
	if len(title) == 0 || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

// ValidateDescription checks the description length bound.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}
	return nil
}

// IsActive reports whether the hunt accepts player actions at the given time.
func (h Hunt) IsActive(now time.Time) bool {
	return h.Status == StatusActive && (h.EndTime.IsZero() || now.Before(h.EndTime))
}

// HasRewardsAvailable reports whether any winner slots remain unclaimed.
func (h Hunt) HasRewardsAvailable() bool {
	return h.Reward.ClaimedCount < h.Reward.MaxWinners
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsStatusTransitionAllowed reports whether a status transition is permitted.
func IsStatusTransitionAllowed(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusActive || to == StatusCancelled
	case StatusActive:
		return to == StatusDraft || to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// StatusLabel returns a stable label for a hunt status.
func StatusLabel(s Status) string {
	switch s {
	case StatusDraft:
		return "DRAFT"
	case StatusActive:
		return "ACTIVE"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "UNSPECIFIED"
	}
}

// InvalidStatusError builds the state-conflict error for an operation that is
// not legal in the hunt's current status.
func InvalidStatusError(current Status) error {
	label := StatusLabel(current)
	return apperrors.WithMetadata(
		apperrors.CodeHuntInvalidStatus,
		fmt.Sprintf("operation not allowed for hunt status %s", label),
		map[string]string{"Status": label},
	)
}
