package wallet

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreInsertIfAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := Wallet{UserID: "user-1", Status: StatusOpen, UpdatedAt: time.Now().UTC()}
	if err := store.InsertIfAbsent(ctx, w); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := store.InsertIfAbsent(ctx, w); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMemoryStoreFindMissing(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Find(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreUpdateBumpsVersion(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := Wallet{UserID: "user-1", Status: StatusOpen, UpdatedAt: time.Now().UTC()}
	if err := store.InsertIfAbsent(ctx, w); err != nil {
		t.Fatalf("insert: %v", err)
	}

	stored, err := store.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.Version != 1 {
		t.Fatalf("expected version 1 after insert, got %d", stored.Version)
	}

	stored.Balance = 700
	updated, err := store.Update(ctx, stored, stored.Version)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2 after update, got %d", updated.Version)
	}
	if updated.Balance != 700 {
		t.Fatalf("expected balance 700, got %d", updated.Balance)
	}
}

func TestMemoryStoreUpdateStaleVersion(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	w := Wallet{UserID: "user-1", Status: StatusOpen, UpdatedAt: time.Now().UTC()}
	if err := store.InsertIfAbsent(ctx, w); err != nil {
		t.Fatalf("insert: %v", err)
	}

	stored, err := store.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	// first writer wins
	if _, err := store.Update(ctx, stored, stored.Version); err != nil {
		t.Fatalf("first update: %v", err)
	}

	// second writer holds a stale snapshot
	if _, err := store.Update(ctx, stored, stored.Version); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMemoryStoreUpdateMissingWallet(t *testing.T) {
	store := NewMemoryStore()

	w := Wallet{UserID: "ghost", Status: StatusOpen}
	if _, err := store.Update(context.Background(), w, 1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}
