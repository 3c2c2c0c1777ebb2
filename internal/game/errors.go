package game

import "errors"

// Errors reported to the player. All are recoverable except
// ErrWordListLoadFailed.
var (
	ErrInvalidLength       = errors.New("not enough letters")
	ErrNotInWordList       = errors.New("not in word list")
	ErrGameAlreadyOver     = errors.New("game finished")
	ErrNoUsesLeft          = errors.New("no power-ups left")
	ErrNoEligiblePosition  = errors.New("no position available for hint")
	ErrNoEligibleLetter    = errors.New("no letter available to eliminate")
	ErrInsufficientLetters = errors.New("need at least two letters in current guess to swap")
	ErrInvalidSwap         = errors.New("select two different letters to swap")
	ErrLetterEliminated    = errors.New("letter has been eliminated")
	ErrInvalidLetter       = errors.New("invalid letter")

	ErrPersistenceWriteFailed = errors.New("could not save game state")
	ErrWordListLoadFailed     = errors.New("failed to load word lists")
)

// ErrGameNotInProgress is what power-ups report once the game has ended.
var ErrGameNotInProgress = ErrGameAlreadyOver
