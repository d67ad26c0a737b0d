// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Hunt errors
	CodeHuntNotFound           Code = "HUNT_NOT_FOUND"
	CodeHuntNotActive          Code = "HUNT_NOT_ACTIVE"
	CodeHuntInvalidStatus      Code = "INVALID_HUNT_STATUS"
	CodeHuntNoCluesAdded       Code = "NO_CLUES_ADDED"
	CodeHuntInvalidTitle       Code = "INVALID_TITLE"
	CodeHuntInvalidDescription Code = "INVALID_DESCRIPTION"

	// Clue errors
	CodeClueNotFound         Code = "CLUE_NOT_FOUND"
	CodeClueInvalid          Code = "INVALID_CLUE"
	CodeClueAlreadyCompleted Code = "CLUE_ALREADY_COMPLETED"
	CodeClueInvalidAnswer    Code = "INVALID_ANSWER"

	// Player errors
	CodePlayerNotRegistered     Code = "PLAYER_NOT_REGISTERED"
	CodePlayerAlreadyRegistered Code = "DUPLICATE_REGISTRATION"

	// Reward errors
	CodeRewardPoolInsufficient Code = "INSUFFICIENT_REWARD_POOL"
	CodeRewardAlreadyClaimed   Code = "REWARD_ALREADY_CLAIMED"
	CodeRewardInvalidConfig    Code = "INVALID_REWARD_CONFIG"

	// Authorization errors
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// Class groups codes into the failure taxonomy callers branch on.
type Class int

const (
	// ClassUnknown covers errors without a recognized code.
	ClassUnknown Class = iota
	// ClassNotFound covers absent hunts, clues, and progress records.
	ClassNotFound
	// ClassUnauthorized covers caller/creator mismatches.
	ClassUnauthorized
	// ClassConflict covers operations illegal for the current status.
	ClassConflict
	// ClassValidation covers out-of-bounds or malformed input.
	ClassValidation
	// ClassResource covers exhausted reward pools.
	ClassResource
)

// Class maps a code to its failure class.
func (c Code) Class() Class {
	switch c {
	case CodeHuntNotFound, CodeClueNotFound, CodePlayerNotRegistered:
		return ClassNotFound
	case CodeUnauthorized:
		return ClassUnauthorized
	case CodeHuntInvalidStatus, CodeHuntNotActive, CodeHuntNoCluesAdded,
		CodeClueAlreadyCompleted, CodePlayerAlreadyRegistered,
		CodeRewardAlreadyClaimed:
		return ClassConflict
	case CodeHuntInvalidTitle, CodeHuntInvalidDescription, CodeClueInvalid,
		CodeClueInvalidAnswer, CodeRewardInvalidConfig:
		return ClassValidation
	case CodeRewardPoolInsufficient:
		return ClassResource
	default:
		return ClassUnknown
	}
}
