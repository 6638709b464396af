package model

import "time"

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Avatar        string    `json:"avatar"`
	Color         string    `json:"color"`
	WalletMinutes int       `json:"wallet_minutes"`
	WalletCoins   int       `json:"wallet_coins"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
