package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/choreboard/internal/model"
)

// SnapshotStore swaps the whole board in or out at once.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// ReplaceAll deletes every user and chore instance and inserts the given
// records, in order, in a single transaction.
func (s *SnapshotStore) ReplaceAll(ctx context.Context, users []model.User, chores []model.ChoreInstance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chore_instances`); err != nil {
		return fmt.Errorf("clear chores: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}

	for _, u := range users {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
	}
	for _, c := range chores {
		if err := upsertChore(ctx, tx, c); err != nil {
			return err
		}
	}

	return tx.Commit()
}
