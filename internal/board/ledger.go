package board

import (
	"context"
	"fmt"

	"github.com/dukerupert/choreboard/internal/metrics"
	"github.com/dukerupert/choreboard/internal/model"
)

func checkWallet(userID string, c model.Currency) error {
	if userID == model.PoolID {
		return invalid("user", "the shared pool has no wallet")
	}
	if !c.Valid() {
		return invalid("currency", fmt.Sprintf("unknown currency %q", c))
	}
	return nil
}

// AdjustBalance adds delta to the user's balance in currency. Balances may
// go negative.
func (s *Service) AdjustBalance(ctx context.Context, userID string, c model.Currency, delta int) (*model.Balance, error) {
	if err := checkWallet(userID, c); err != nil {
		return nil, err
	}

	b, err := s.ledger.Adjust(ctx, userID, c, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust balance: %w", err)
	}
	if b == nil {
		return nil, notFound("user", userID)
	}

	metrics.LedgerAdjustments.WithLabelValues(string(c), metrics.Direction(delta)).Inc()
	s.logger.Info("balance adjusted", "user_id", userID, "currency", c, "delta", delta, "balance", b.Amount)
	return b, nil
}

func (s *Service) GetBalance(ctx context.Context, userID string, c model.Currency) (*model.Balance, error) {
	if err := checkWallet(userID, c); err != nil {
		return nil, err
	}

	b, err := s.ledger.Get(ctx, userID, c)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	if b == nil {
		return nil, notFound("user", userID)
	}
	return b, nil
}
