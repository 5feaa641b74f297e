// internal/services/errors.go
package services

import "errors"

// Ledger error taxonomy. Every failure path of the registry, lot and
// transfer services resolves to exactly one of these sentinels; handlers
// map them to HTTP statuses with errors.Is. No failure mutates state.
var (
	ErrNotAdministrator      = errors.New("caller is not the administrator")
	ErrNotApproved           = errors.New("participant is not approved")
	ErrNotFound              = errors.New("record not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidAmount         = errors.New("amount must be greater than zero")
	ErrInvalidRecipient      = errors.New("recipient must be a registered address different from sender")
	ErrRecipientUnregistered = errors.New("recipient has no role record")
	ErrTerminalRole          = errors.New("consumer role cannot initiate transfers")
	ErrIllegalRoleTransition = errors.New("sender and recipient roles are not adjacent in the supply chain")
	ErrInsufficientBalance   = errors.New("insufficient lot balance")
	ErrInvalidState          = errors.New("transfer is not pending")
	ErrNotRecipient          = errors.New("caller is not the transfer recipient")
	ErrNotAuthorized         = errors.New("caller is not authorized")
)
