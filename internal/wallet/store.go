package wallet

import "context"

// Store persists wallets keyed by user identifier. All mutation goes
// through its atomic contract: InsertIfAbsent is an atomic test-and-set,
// Update is a compare-and-swap on the wallet version.
type Store interface {
	// Find returns the wallet for userID or ErrNotFound.
	Find(ctx context.Context, userID string) (Wallet, error)

	// InsertIfAbsent creates the wallet unless one already exists for the
	// same user, in which case it returns ErrAlreadyExists and leaves the
	// existing record untouched.
	InsertIfAbsent(ctx context.Context, w Wallet) error

	// Update writes w only if the stored version still equals
	// expectedVersion, returning the stored wallet with its bumped version.
	// A version mismatch (or a wallet deleted underneath) returns
	// ErrConflict.
	Update(ctx context.Context, w Wallet, expectedVersion int64) (Wallet, error)
}
