package scoring

import "errors"

// Validation errors. They reject a session before anything is persisted.
var (
	ErrInvalidMode         = errors.New("invalid game mode")
	ErrInvalidBonusRule    = errors.New("invalid bonus rule")
	ErrInvalidBonusMarker  = errors.New("invalid bonus marker")
	ErrPlayerCountMismatch = errors.New("player count does not match game mode")
	ErrEmptyPlayerName     = errors.New("player name is required")
	ErrDuplicatePlayer     = errors.New("the same user is selected more than once")
	ErrNoScores            = errors.New("at least one score must be entered")
	ErrZeroSumViolation    = errors.New("round scores must sum to zero")
	ErrMemoTooLong         = errors.New("memo is too long")
	ErrInvalidPeriod       = errors.New("invalid statistics period")
)
