package board

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/choreboard/internal/model"
)

func TestAdjustBalanceAllowsNegative(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	u := mustUser(t, svc, "Alice")

	if _, err := svc.AdjustBalance(ctx, u.ID, model.CurrencyMinutes, 10); err != nil {
		t.Fatalf("credit: %v", err)
	}
	b, err := svc.AdjustBalance(ctx, u.ID, model.CurrencyMinutes, -50)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if b.Amount != -40 {
		t.Errorf("balance = %d, want -40", b.Amount)
	}

	coins, err := svc.GetBalance(ctx, u.ID, model.CurrencyCoins)
	if err != nil {
		t.Fatalf("get coins: %v", err)
	}
	if coins.Amount != 0 {
		t.Errorf("coins = %d, want 0", coins.Amount)
	}
}

func TestAdjustBalanceErrors(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	u := mustUser(t, svc, "Alice")

	tests := []struct {
		name     string
		userID   string
		currency model.Currency
		want     error
	}{
		{"unknown user", "ghost", model.CurrencyCoins, ErrNotFound},
		{"pool", model.PoolID, model.CurrencyCoins, ErrValidation},
		{"unknown currency", u.ID, "gems", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AdjustBalance(ctx, tt.userID, tt.currency, 5); !errors.Is(err, tt.want) {
				t.Errorf("adjust err = %v, want %v", err, tt.want)
			}
			if _, err := svc.GetBalance(ctx, tt.userID, tt.currency); !errors.Is(err, tt.want) {
				t.Errorf("get err = %v, want %v", err, tt.want)
			}
		})
	}

	got, err := svc.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.WalletMinutes != 0 || got.WalletCoins != 0 {
		t.Errorf("wallets = %d/%d, want untouched", got.WalletMinutes, got.WalletCoins)
	}
}
