package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/recurrence"
)

// ChoreStore persists chore instances. Reads return rows in insertion order.
type ChoreStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewChoreStore(db *sql.DB, logger *slog.Logger) *ChoreStore {
	return &ChoreStore{db: db, logger: logger.With("component", "chore_store")}
}

func (s *ChoreStore) scanChore(scanner interface{ Scan(...any) error }) (*model.ChoreInstance, error) {
	var c model.ChoreInstance
	var userID, frequency, lastCompleted, completedBy sql.NullString

	err := scanner.Scan(
		&c.ID, &c.GroupID, &userID, &c.Title, &c.Icon,
		&frequency, &c.Reward, &lastCompleted, &completedBy,
	)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		c.Assignee = model.UserAssignee(userID.String)
	} else {
		c.Assignee = model.SharedPool()
	}

	f, ok := recurrence.FromStored(frequency.String)
	if !ok {
		s.logger.Warn("unreadable chore frequency, treating as daily", "chore_id", c.ID, "frequency", frequency.String)
	}
	c.Frequency = f

	c.LastCompletedDate = stringPtr(lastCompleted)
	c.CompletedBy = stringPtr(completedBy)
	return &c, nil
}

const choreCols = `id, group_id, user_id, title, icon, frequency, reward, last_completed_date, completed_by`

func assigneeColumn(a model.Assignee) sql.NullString {
	if a.Pool {
		return sql.NullString{}
	}
	return sql.NullString{String: a.UserID, Valid: true}
}

func upsertChore(ctx context.Context, q dbtx, c model.ChoreInstance) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO chore_instances (`+choreCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			group_id = excluded.group_id,
			user_id = excluded.user_id,
			title = excluded.title,
			icon = excluded.icon,
			frequency = excluded.frequency,
			reward = excluded.reward,
			last_completed_date = excluded.last_completed_date,
			completed_by = excluded.completed_by`,
		c.ID, c.GroupID, assigneeColumn(c.Assignee), c.Title, c.Icon,
		c.Frequency.String(), c.Reward, nullString(c.LastCompletedDate), nullString(c.CompletedBy),
	)
	if err != nil {
		return fmt.Errorf("upsert chore %s: %w", c.ID, err)
	}
	return nil
}

func (s *ChoreStore) collectChores(rows *sql.Rows) ([]model.ChoreInstance, error) {
	defer rows.Close()

	var chores []model.ChoreInstance
	for rows.Next() {
		c, err := s.scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chore: %w", err)
		}
		chores = append(chores, *c)
	}
	return chores, rows.Err()
}

// Upsert inserts c, or replaces the stored instance with the same ID in place.
func (s *ChoreStore) Upsert(ctx context.Context, c model.ChoreInstance) error {
	return upsertChore(ctx, s.db, c)
}

func (s *ChoreStore) GetByID(ctx context.Context, id string) (*model.ChoreInstance, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+choreCols+` FROM chore_instances WHERE id = ?`, id)
	c, err := s.scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}
	return c, nil
}

func (s *ChoreStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chore_instances WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chore: %w", err)
	}
	return nil
}

func (s *ChoreStore) ListAll(ctx context.Context) ([]model.ChoreInstance, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+choreCols+` FROM chore_instances ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list chores: %w", err)
	}
	return s.collectChores(rows)
}

func (s *ChoreStore) ListByGroup(ctx context.Context, groupID string) ([]model.ChoreInstance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+choreCols+` FROM chore_instances WHERE group_id = ? ORDER BY seq ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chores by group: %w", err)
	}
	return s.collectChores(rows)
}

// ListForAssignee returns the assignee's instances that are scheduled on date.
func (s *ChoreStore) ListForAssignee(ctx context.Context, a model.Assignee, date time.Time) ([]model.ChoreInstance, error) {
	var rows *sql.Rows
	var err error
	if a.Pool {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+choreCols+` FROM chore_instances WHERE user_id IS NULL ORDER BY seq ASC`,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+choreCols+` FROM chore_instances WHERE user_id = ? ORDER BY seq ASC`,
			a.UserID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("list chores by assignee: %w", err)
	}

	all, err := s.collectChores(rows)
	if err != nil {
		return nil, err
	}

	var active []model.ChoreInstance
	for _, c := range all {
		if c.Frequency.IsActiveOn(date) {
			active = append(active, c)
		}
	}
	return active, nil
}

// TitleInUse reports whether a group other than excludeGroupID already uses
// title.
func (s *ChoreStore) TitleInUse(ctx context.Context, title, excludeGroupID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chore_instances WHERE title = ? AND group_id != ?`,
		title, excludeGroupID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check title in use: %w", err)
	}
	return count > 0, nil
}

// ReplaceGroup makes instances the complete set of rows for groupID in one
// transaction. Rows of the group that are not in instances are deleted;
// kept rows retain their position.
func (s *ChoreStore) ReplaceGroup(ctx context.Context, groupID string, instances []model.ChoreInstance) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	keep := make(map[string]bool, len(instances))
	for _, c := range instances {
		if c.GroupID != groupID {
			return fmt.Errorf("chore %s belongs to group %s, not %s", c.ID, c.GroupID, groupID)
		}
		keep[c.ID] = true
	}

	rows, err := tx.QueryContext(ctx, `SELECT id FROM chore_instances WHERE group_id = ?`, groupID)
	if err != nil {
		return fmt.Errorf("list group ids: %w", err)
	}
	var drop []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scan id: %w", err)
		}
		if !keep[id] {
			drop = append(drop, id)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterate group ids: %w", err)
	}
	rows.Close()

	for _, id := range drop {
		if _, err := tx.ExecContext(ctx, `DELETE FROM chore_instances WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete chore %s: %w", id, err)
		}
	}
	for _, c := range instances {
		if err := upsertChore(ctx, tx, c); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteGroup removes every instance of the group and returns how many rows
// went away.
func (s *ChoreStore) DeleteGroup(ctx context.Context, groupID string) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chore_instances WHERE group_id = ?`, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete group: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// UpdateCompletion loads the instance, lets fn change its completion fields
// and writes them back in one transaction. It returns nil when the instance
// does not exist.
func (s *ChoreStore) UpdateCompletion(ctx context.Context, id string, fn func(*model.ChoreInstance)) (*model.ChoreInstance, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+choreCols+` FROM chore_instances WHERE id = ?`, id)
	c, err := s.scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chore: %w", err)
	}

	fn(c)

	_, err = tx.ExecContext(ctx,
		`UPDATE chore_instances SET last_completed_date = ?, completed_by = ? WHERE id = ?`,
		nullString(c.LastCompletedDate), nullString(c.CompletedBy), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update completion: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

// ResetAll clears completion on every instance regardless of date.
func (s *ChoreStore) ResetAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE chore_instances SET last_completed_date = NULL, completed_by = NULL
		WHERE last_completed_date IS NOT NULL OR completed_by IS NOT NULL`,
	)
	if err != nil {
		return 0, fmt.Errorf("reset completions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
