package game

import (
	"errors"
	"fmt"

	"mines-casino/internal/ledger"
	"mines-casino/internal/store"
)

var (
	ErrInvalidConfiguration   = errors.New("invalid_configuration")
	ErrAccountNotFound        = errors.New("account_not_found")
	ErrSessionNotFound        = errors.New("session_not_found")
	ErrInsufficientFunds      = ledger.ErrInsufficientFunds
	ErrNoFreeCreditsAvailable = ledger.ErrNoFreeCredits
	ErrSessionNotActive       = errors.New("session_not_active")
	ErrCellAlreadyRevealed    = errors.New("cell_already_revealed")
	ErrStorageUnavailable     = errors.New("storage_unavailable")
)

var known = []error{
	ErrInvalidConfiguration,
	ErrAccountNotFound,
	ErrSessionNotFound,
	ErrInsufficientFunds,
	ErrNoFreeCreditsAvailable,
	ErrSessionNotActive,
	ErrCellAlreadyRevealed,
	ErrStorageUnavailable,
}

// translate maps store errors onto the engine taxonomy. notFound is the
// sentinel a missing record turns into. Anything unrecognised becomes
// ErrStorageUnavailable.
func translate(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
