package model

import "slices"

// Currency names one of the independent reward balances kept per user.
type Currency string

const (
	CurrencyMinutes Currency = "minutes"
	CurrencyCoins   Currency = "coins"
)

// Currencies lists every ledger currency.
var Currencies = []Currency{CurrencyMinutes, CurrencyCoins}

func (c Currency) Valid() bool {
	return slices.Contains(Currencies, c)
}

// Balance is a single ledger reading.
type Balance struct {
	UserID   string   `json:"user_id"`
	Currency Currency `json:"currency"`
	Amount   int      `json:"amount"`
}
