package wallet

import "time"

// Status governs whether a wallet may be mutated.
type Status string

const (
	// StatusOpen allows balance adjustments.
	StatusOpen Status = "open"
	// StatusLocked rejects every balance adjustment until reopened.
	StatusLocked Status = "locked"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusLocked
}

// Wallet is the balance+status record for one user. Balance is an integer
// amount in the smallest currency unit and never goes negative. Version is
// the optimistic-concurrency token bumped by the store on every write and
// never exposed on the wire.
type Wallet struct {
	UserID    string
	Balance   int64
	Status    Status
	UpdatedAt time.Time
	Version   int64
}
