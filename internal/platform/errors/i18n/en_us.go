package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeHuntNotFound            = "HUNT_NOT_FOUND"
	CodeHuntNotActive           = "HUNT_NOT_ACTIVE"
	CodeHuntInvalidStatus       = "INVALID_HUNT_STATUS"
	CodeHuntNoCluesAdded        = "NO_CLUES_ADDED"
	CodeHuntInvalidTitle        = "INVALID_TITLE"
	CodeHuntInvalidDescription  = "INVALID_DESCRIPTION"
	CodeClueNotFound            = "CLUE_NOT_FOUND"
	CodeClueInvalid             = "INVALID_CLUE"
	CodeClueAlreadyCompleted    = "CLUE_ALREADY_COMPLETED"
	CodeClueInvalidAnswer       = "INVALID_ANSWER"
	CodePlayerNotRegistered     = "PLAYER_NOT_REGISTERED"
	CodePlayerAlreadyRegistered = "DUPLICATE_REGISTRATION"
	CodeRewardPoolInsufficient  = "INSUFFICIENT_REWARD_POOL"
	CodeRewardAlreadyClaimed    = "REWARD_ALREADY_CLAIMED"
	CodeRewardInvalidConfig     = "INVALID_REWARD_CONFIG"
	CodeUnauthorized            = "UNAUTHORIZED"
)

var enUS = map[Code]string{
	CodeHuntNotFound:            "Hunt {{.HuntID}} was not found.",
	CodeHuntNotActive:           "Hunt {{.HuntID}} is not currently active.",
	CodeHuntInvalidStatus:       "This operation is not allowed while the hunt is {{.Status}}.",
	CodeHuntNoCluesAdded:        "A hunt needs at least one clue before it can be activated.",
	CodeHuntInvalidTitle:        "The hunt title must be between 1 and {{.MaxLength}} characters.",
	CodeHuntInvalidDescription:  "The hunt description must be at most {{.MaxLength}} characters.",
	CodeClueNotFound:            "Clue {{.ClueID}} was not found in hunt {{.HuntID}}.",
	CodeClueInvalid:             "The clue is missing a question or an answer fingerprint.",
	CodeClueAlreadyCompleted:    "You already completed this clue.",
	CodeClueInvalidAnswer:       "That answer is not correct.",
	CodePlayerNotRegistered:     "You are not registered for hunt {{.HuntID}}.",
	CodePlayerAlreadyRegistered: "You are already registered for hunt {{.HuntID}}.",
	CodeRewardPoolInsufficient:  "All {{.MaxWinners}} reward slots have been claimed.",
	CodeRewardAlreadyClaimed:    "You already claimed your reward for this hunt.",
	CodeRewardInvalidConfig:     "The reward configuration is invalid.",
	CodeUnauthorized:            "Only the hunt creator can perform this operation.",
}
