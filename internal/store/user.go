package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/choreboard/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(&u.ID, &u.Name, &u.Avatar, &u.Color, &u.WalletMinutes, &u.WalletCoins, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, name, avatar, color, wallet_minutes, wallet_coins, created_at, updated_at`

func insertUser(ctx context.Context, q dbtx, u model.User) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO users (id, name, avatar, color, wallet_minutes, wallet_coins) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Avatar, u.Color, u.WalletMinutes, u.WalletCoins,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Create inserts u. The caller assigns the ID.
func (s *UserStore) Create(ctx context.Context, u model.User) (*model.User, error) {
	if err := insertUser(ctx, s.db, u); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, u.ID)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List returns users in creation order.
func (s *UserStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+userCols+` FROM users ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *UserStore) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return count > 0, nil
}

// Update overwrites the profile fields. It returns nil when the user does
// not exist.
func (s *UserStore) Update(ctx context.Context, id, name, avatar, color string) (*model.User, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET name = ?, avatar = ?, color = ? WHERE id = ?`,
		name, avatar, color, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the user together with the chore instances assigned to them
// and clears claims they made on other instances. It reports whether the
// user existed.
func (s *UserStore) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chore_instances WHERE user_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete user chores: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE chore_instances SET completed_by = NULL WHERE completed_by = ?`, id); err != nil {
		return false, fmt.Errorf("clear user claims: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	return true, tx.Commit()
}
