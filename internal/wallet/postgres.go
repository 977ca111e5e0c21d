package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists wallets in PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE wallets (
//	    user_id    TEXT PRIMARY KEY,
//	    balance    BIGINT NOT NULL CHECK (balance >= 0),
//	    status     TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL,
//	    version    BIGINT NOT NULL
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Find fetches the wallet for userID.
func (s *PostgresStore) Find(ctx context.Context, userID string) (Wallet, error) {
	row := s.db.QueryRow(ctx, `SELECT user_id, balance, status, updated_at, version
        FROM wallets WHERE user_id = $1`, userID)

	var w Wallet
	var updatedAt time.Time
	if err := row.Scan(&w.UserID, &w.Balance, &w.Status, &updatedAt, &w.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.UpdatedAt = updatedAt.UTC()
	return w, nil
}

// InsertIfAbsent creates the wallet row unless one already exists.
func (s *PostgresStore) InsertIfAbsent(ctx context.Context, w Wallet) error {
	tag, err := s.db.Exec(ctx, `INSERT INTO wallets (user_id, balance, status, updated_at, version)
        VALUES ($1, $2, $3, $4, 1)
        ON CONFLICT (user_id) DO NOTHING`, w.UserID, w.Balance, w.Status, w.UpdatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// Update applies the wallet snapshot with a compare-and-swap on version.
// The single conditional statement keeps the write all-or-nothing: a
// cancelled context either committed the row or left it untouched.
func (s *PostgresStore) Update(ctx context.Context, w Wallet, expectedVersion int64) (Wallet, error) {
	row := s.db.QueryRow(ctx, `UPDATE wallets
        SET balance = $2, status = $3, updated_at = $4, version = version + 1
        WHERE user_id = $1 AND version = $5
        RETURNING version`, w.UserID, w.Balance, w.Status, w.UpdatedAt.UTC(), expectedVersion)

	if err := row.Scan(&w.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrConflict
		}
		return Wallet{}, err
	}
	return w, nil
}
