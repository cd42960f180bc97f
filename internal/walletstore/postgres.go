// Package walletstore implements PostgreSQL-backed persistence for the
// off-chain wallet notes a client needs to reopen its own commitments:
// the mint, the account key, the cleartext amount, and the blinding
// factor. None of this is ledger state; the host never sees it.
package walletstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mayacrypto/spl-c-tokens-prototype/internal/curve"
	"github.com/mayacrypto/spl-c-tokens-prototype/pkg/types"
)

// Common errors.
var (
	ErrNotFound     = errors.New("walletstore: note not found")
	ErrDuplicate    = errors.New("walletstore: note already exists")
	ErrDBConnection = errors.New("walletstore: database connection error")
)

// Store persists wallet notes using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Config holds database configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
}

// DefaultConfig returns default database configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "ctokens",
		Password: "",
		Database: "ctokens_wallet",
		SSLMode:  "disable",
		MaxConns: 10,
	}
}

// New creates a Store backed by a PostgreSQL connection pool.
func New(ctx context.Context, cfg *Config) (*Store, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.MaxConns,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBConnection, err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Note is everything a wallet needs to reopen one of its own commitments:
// which account it lives in, under which mint, and the (amount, blind)
// opening. Amount and Opening never leave the client; they are persisted
// here only so a wallet can recover its own balance after restart.
type Note struct {
	Account types.Pubkey
	Mint    types.Pubkey
	Amount  uint64
	Opening curve.Scalar
}

// PutNote inserts or replaces the note for an account.
func (s *Store) PutNote(ctx context.Context, n Note) error {
	query := `
		INSERT INTO wallet_notes (account, mint, amount, opening)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account) DO UPDATE SET mint = $2, amount = $3, opening = $4
	`
	opening := n.Opening.Encode()
	_, err := s.pool.Exec(ctx, query, n.Account[:], n.Mint[:], n.Amount, opening[:])
	if err != nil {
		return fmt.Errorf("walletstore: put note: %w", err)
	}
	return nil
}

// GetNote retrieves the note stored for an account.
func (s *Store) GetNote(ctx context.Context, account types.Pubkey) (Note, error) {
	query := `SELECT mint, amount, opening FROM wallet_notes WHERE account = $1`

	var mintBytes, openingBytes []byte
	var amount uint64

	err := s.pool.QueryRow(ctx, query, account[:]).Scan(&mintBytes, &amount, &openingBytes)
	if err == pgx.ErrNoRows {
		return Note{}, ErrNotFound
	}
	if err != nil {
		return Note{}, fmt.Errorf("walletstore: get note: %w", err)
	}

	mint, err := types.PubkeyFromBytes(mintBytes)
	if err != nil {
		return Note{}, err
	}
	opening, err := curve.DecodeScalar(openingBytes)
	if err != nil {
		return Note{}, err
	}

	return Note{Account: account, Mint: mint, Amount: amount, Opening: opening}, nil
}

// DeleteNote removes the note for an account, e.g. once its CloseAccount
// instruction has landed on the ledger.
func (s *Store) DeleteNote(ctx context.Context, account types.Pubkey) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM wallet_notes WHERE account = $1`, account[:])
	if err != nil {
		return fmt.Errorf("walletstore: delete note: %w", err)
	}
	return nil
}

// ListByMint returns every note the wallet holds for a given mint.
func (s *Store) ListByMint(ctx context.Context, mint types.Pubkey) ([]Note, error) {
	query := `SELECT account, amount, opening FROM wallet_notes WHERE mint = $1`

	rows, err := s.pool.Query(ctx, query, mint[:])
	if err != nil {
		return nil, fmt.Errorf("walletstore: list by mint: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var accountBytes, openingBytes []byte
		var amount uint64
		if err := rows.Scan(&accountBytes, &amount, &openingBytes); err != nil {
			return nil, err
		}

		account, err := types.PubkeyFromBytes(accountBytes)
		if err != nil {
			return nil, err
		}
		opening, err := curve.DecodeScalar(openingBytes)
		if err != nil {
			return nil, err
		}

		notes = append(notes, Note{Account: account, Mint: mint, Amount: amount, Opening: opening})
	}

	return notes, nil
}
