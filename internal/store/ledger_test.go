package store

import (
	"context"
	"testing"

	"github.com/dukerupert/choreboard/internal/model"
)

func TestLedgerAdjust(t *testing.T) {
	db := setupTestDB(t)
	us := NewUserStore(db)
	ls := NewLedgerStore(db)
	ctx := context.Background()

	mustCreateUser(t, us, "a", "Alice")

	b, err := ls.Adjust(ctx, "a", model.CurrencyMinutes, 10)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if b.Amount != 10 {
		t.Errorf("balance = %d, want 10", b.Amount)
	}

	b, err = ls.Adjust(ctx, "a", model.CurrencyMinutes, -50)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if b.Amount != -40 {
		t.Errorf("balance = %d, want -40", b.Amount)
	}

	coins, err := ls.Get(ctx, "a", model.CurrencyCoins)
	if err != nil {
		t.Fatalf("get coins: %v", err)
	}
	if coins.Amount != 0 {
		t.Errorf("coins = %d, want 0 (currencies are independent)", coins.Amount)
	}

	u, _ := us.GetByID(ctx, "a")
	if u.WalletMinutes != -40 {
		t.Errorf("user wallet_minutes = %d, want -40", u.WalletMinutes)
	}
}

func TestLedgerUnknownUser(t *testing.T) {
	ls := NewLedgerStore(setupTestDB(t))
	ctx := context.Background()

	b, err := ls.Adjust(ctx, "ghost", model.CurrencyCoins, 5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if b != nil {
		t.Errorf("expected nil balance for unknown user, got %+v", b)
	}

	b, err = ls.Get(ctx, "ghost", model.CurrencyCoins)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b != nil {
		t.Errorf("expected nil balance for unknown user, got %+v", b)
	}
}

func TestLedgerUnknownCurrency(t *testing.T) {
	db := setupTestDB(t)
	mustCreateUser(t, NewUserStore(db), "a", "Alice")

	if _, err := NewLedgerStore(db).Adjust(context.Background(), "a", model.Currency("gold"), 1); err == nil {
		t.Error("expected error for unknown currency")
	}
}
