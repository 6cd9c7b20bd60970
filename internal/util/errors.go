// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
//
// Validation errors are expected, user-facing outcomes: the service layer maps
// each one to a specific clarifying reply and never surfaces them as HTTP
// faults. Collaborator errors are caught at the boundary and degrade the
// feature that depends on them.
var (
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientForFee = errors.New("insufficient funds to cover the fee")
	ErrNoBonusAvailable   = errors.New("no loyalty bonus available")
)

// IsError reports whether err matches target in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
