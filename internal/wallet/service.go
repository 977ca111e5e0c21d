package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// maxUpdateAttempts bounds the optimistic read-compute-write retry loop.
const maxUpdateAttempts = 3

// ReferenceBuilder renders an opaque payment reference for a wallet. It is
// a pure formatting collaborator: no wallet state is touched.
type ReferenceBuilder interface {
	PaymentReference(userID string, amount int64, note string) string
}

// Service enforces the wallet invariants: one wallet per user, balance
// never negative, mutation only while open, updated_at strictly
// increasing. Mutations on the same user are serialized through a keyed
// mutex; the store's compare-and-swap still guards against writers in
// other processes.
type Service struct {
	store     Store
	refs      ReferenceBuilder
	now       func() time.Time
	userLocks sync.Map // userID -> *sync.Mutex
}

// NewService builds a wallet service instance.
func NewService(store Store, refs ReferenceBuilder) *Service {
	return &Service{store: store, refs: refs, now: time.Now}
}

// Get returns the current wallet snapshot for userID.
func (s *Service) Get(ctx context.Context, userID string) (Wallet, error) {
	w, err := s.store.Find(ctx, userID)
	if err != nil {
		return Wallet{}, fmt.Errorf("get wallet for user %q: %w", userID, err)
	}
	return w, nil
}

// Create provisions a wallet with zero balance and open status. It fails
// with ErrAlreadyExists when the user already has one; the check-then-insert
// is atomic in the store.
func (s *Service) Create(ctx context.Context, userID string) (Wallet, error) {
	if userID == "" {
		return Wallet{}, fmt.Errorf("create wallet: empty user id: %w", ErrInvalidArgument)
	}

	w := Wallet{
		UserID:    userID,
		Balance:   0,
		Status:    StatusOpen,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.InsertIfAbsent(ctx, w); err != nil {
		return Wallet{}, fmt.Errorf("create wallet for user %q: %w", userID, err)
	}
	w.Version = 1
	return w, nil
}

// AdjustBalance applies a signed delta to the wallet balance. It fails
// with ErrWalletLocked while the wallet is locked and ErrInvalidArgument
// when the delta would take the balance below zero. Lost updates are
// prevented by the store CAS; a raced write is retried from a fresh read.
func (s *Service) AdjustBalance(ctx context.Context, userID string, delta int64) (Wallet, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		w, err := s.store.Find(ctx, userID)
		if err != nil {
			return Wallet{}, fmt.Errorf("adjust balance for user %q: %w", userID, err)
		}
		if w.Status == StatusLocked {
			return Wallet{}, fmt.Errorf("adjust balance for user %q: %w", userID, ErrWalletLocked)
		}

		newBalance := w.Balance + delta
		if newBalance < 0 {
			return Wallet{}, fmt.Errorf("adjust balance for user %q: balance %d cannot absorb delta %d: %w",
				userID, w.Balance, delta, ErrInvalidArgument)
		}

		updated := w
		updated.Balance = newBalance
		updated.UpdatedAt = s.nextTimestamp(w.UpdatedAt)

		stored, err := s.store.Update(ctx, updated, w.Version)
		if err == nil {
			return stored, nil
		}
		if !isConflict(err) {
			return Wallet{}, fmt.Errorf("adjust balance for user %q: %w", userID, err)
		}
		lastErr = err
	}
	return Wallet{}, fmt.Errorf("adjust balance for user %q: retries exhausted: %w", userID, lastErr)
}

// SetStatus flips the wallet status and reports a human-readable message.
// Setting the current status again is a no-op, not an error, and does not
// move updated_at.
func (s *Service) SetStatus(ctx context.Context, userID string, status Status) (Wallet, string, error) {
	if !status.Valid() {
		return Wallet{}, "", fmt.Errorf("set status for user %q: unknown status %q: %w", userID, status, ErrInvalidArgument)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		w, err := s.store.Find(ctx, userID)
		if err != nil {
			return Wallet{}, "", fmt.Errorf("set status for user %q: %w", userID, err)
		}
		if w.Status == status {
			return w, statusMessage(status), nil
		}

		updated := w
		updated.Status = status
		updated.UpdatedAt = s.nextTimestamp(w.UpdatedAt)

		stored, err := s.store.Update(ctx, updated, w.Version)
		if err == nil {
			return stored, statusMessage(status), nil
		}
		if !isConflict(err) {
			return Wallet{}, "", fmt.Errorf("set status for user %q: %w", userID, err)
		}
		lastErr = err
	}
	return Wallet{}, "", fmt.Errorf("set status for user %q: retries exhausted: %w", userID, lastErr)
}

// IssuePaymentReference derives an opaque payment reference for the wallet.
// No wallet state is read-modified-written, so the operation needs none of
// the CAS machinery.
func (s *Service) IssuePaymentReference(ctx context.Context, userID string, amount int64, note string) (string, error) {
	if _, err := s.store.Find(ctx, userID); err != nil {
		return "", fmt.Errorf("issue payment reference for user %q: %w", userID, err)
	}
	if amount < 0 {
		return "", fmt.Errorf("issue payment reference for user %q: negative amount %d: %w", userID, amount, ErrInvalidArgument)
	}
	return s.refs.PaymentReference(userID, amount, note), nil
}

// lockUser serializes read-compute-write sequences for a single user.
// Different users proceed independently.
func (s *Service) lockUser(userID string) func() {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// nextTimestamp returns the mutation timestamp, clamped so updated_at
// strictly increases even when the wall clock has not advanced past the
// stored value.
func (s *Service) nextTimestamp(prev time.Time) time.Time {
	now := s.now().UTC()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

func statusMessage(status Status) string {
	if status == StatusLocked {
		return "wallet locked"
	}
	return "wallet unlocked"
}

func isConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
