package models

import "errors"

var (
	ErrInvalidOdds        = errors.New("invalid odds")
	ErrInvalidLine        = errors.New("invalid line")
	ErrInvalidMarketType  = errors.New("invalid market type")
	ErrInvalidBetType     = errors.New("invalid bet type")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrInvalidStake       = errors.New("invalid stake amount")
	ErrStakeTooSmall      = errors.New("stake below minimum")
	ErrStakeTooLarge      = errors.New("stake exceeds maximum")
	ErrConflictingLegs    = errors.New("duplicate selection within bet")
	ErrTooFewLegs         = errors.New("not enough legs for bet type")
	ErrTooManyLegs        = errors.New("too many legs for bet type")
	ErrInvalidTeaserLeg   = errors.New("teaser legs must be spread or total markets")
	ErrInvalidPushRule    = errors.New("invalid teaser push rule")
	ErrUnsupportedTeaser  = errors.New("teaser tier not offered")
	ErrGameAlreadyStarted = errors.New("game has already started")

	ErrInsufficientFunds  = errors.New("insufficient available funds")
	ErrNegativeBalance    = errors.New("balance cannot be negative")
	ErrInvalidDelta       = errors.New("invalid balance delta")
	ErrLedgerInconsistent = errors.New("ledger entry does not match balance mutation")

	ErrGameNotFinished = errors.New("game is not finished")
	ErrScoresMissing   = errors.New("final scores are not available")
	ErrAlreadySettled  = errors.New("bet is already settled")

	ErrConfigMissing       = errors.New("no active odds configuration")
	ErrConfigAlreadyActive = errors.New("an active odds configuration already exists")
	ErrInvalidMargin       = errors.New("invalid margin value")
	ErrInvalidRounding     = errors.New("invalid rounding method")

	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidGameID    = errors.New("invalid game ID")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrRecordNotFound   = errors.New("record not found")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
)
