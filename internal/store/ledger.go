package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/choreboard/internal/model"
)

var balanceColumns = map[model.Currency]string{
	model.CurrencyMinutes: "wallet_minutes",
	model.CurrencyCoins:   "wallet_coins",
}

// LedgerStore keeps the per-user reward balances stored on the user row.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func balanceColumn(c model.Currency) (string, error) {
	col, ok := balanceColumns[c]
	if !ok {
		return "", fmt.Errorf("unknown currency %q", c)
	}
	return col, nil
}

// Adjust adds delta to the user's balance and returns the new balance.
// There is no floor: balances may go negative. It returns nil when the user
// does not exist.
func (s *LedgerStore) Adjust(ctx context.Context, userID string, c model.Currency, delta int) (*model.Balance, error) {
	col, err := balanceColumn(c)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE users SET `+col+` = `+col+` + ? WHERE id = ?`, delta, userID)
	if err != nil {
		return nil, fmt.Errorf("adjust balance: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	var amount int
	if err := tx.QueryRowContext(ctx, `SELECT `+col+` FROM users WHERE id = ?`, userID).Scan(&amount); err != nil {
		return nil, fmt.Errorf("read balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &model.Balance{UserID: userID, Currency: c, Amount: amount}, nil
}

// Get returns the user's balance, or nil when the user does not exist.
func (s *LedgerStore) Get(ctx context.Context, userID string, c model.Currency) (*model.Balance, error) {
	col, err := balanceColumn(c)
	if err != nil {
		return nil, err
	}

	var amount sql.NullInt64
	err = s.db.QueryRowContext(ctx, `SELECT `+col+` FROM users WHERE id = ?`, userID).Scan(&amount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}

	return &model.Balance{UserID: userID, Currency: c, Amount: int(amount.Int64)}, nil
}
