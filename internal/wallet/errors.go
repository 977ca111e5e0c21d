package wallet

import "errors"

var (
	// ErrNotFound indicates no wallet exists for the given user.
	ErrNotFound = errors.New("wallet not found")

	// ErrAlreadyExists indicates a wallet for the user is already present.
	ErrAlreadyExists = errors.New("wallet already exists")

	// ErrWalletLocked indicates a balance mutation was attempted while the
	// wallet status is locked.
	ErrWalletLocked = errors.New("wallet is locked")

	// ErrInvalidArgument indicates the requested amount or delta would
	// violate an invariant, e.g. a debit past zero.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict indicates a concurrent update raced the read-compute-write
	// sequence. The service retries a bounded number of times before
	// surfacing it.
	ErrConflict = errors.New("concurrent update conflict")
)
