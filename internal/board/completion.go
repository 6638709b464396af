package board

import (
	"context"
	"fmt"

	"github.com/dukerupert/choreboard/internal/metrics"
	"github.com/dukerupert/choreboard/internal/model"
)

// IsCompleteOn reports whether c counts as done on date (YYYY-MM-DD).
func IsCompleteOn(c model.ChoreInstance, date string) bool {
	return c.CompletedOn(date)
}

// applyToggle flips c's completion for today. The claimer is recorded only
// when it is someone other than the instance's own user.
func applyToggle(c *model.ChoreInstance, today, completingUserID string) {
	if c.CompletedOn(today) {
		c.LastCompletedDate = nil
		c.CompletedBy = nil
		return
	}

	c.LastCompletedDate = &today
	c.CompletedBy = nil
	if completingUserID != "" && (c.Assignee.Pool || completingUserID != c.Assignee.UserID) {
		by := completingUserID
		c.CompletedBy = &by
	}
}

// ToggleCompletion flips the instance between complete and incomplete for
// today. completingUserID may be empty.
func (s *Service) ToggleCompletion(ctx context.Context, instanceID, completingUserID string) (*model.ChoreInstance, error) {
	if completingUserID == model.PoolID {
		return nil, invalid("completed_by", "the shared pool cannot complete chores")
	}
	if completingUserID != "" {
		ok, err := s.users.Exists(ctx, completingUserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, notFound("user", completingUserID)
		}
	}

	today := s.Today()
	c, err := s.chores.UpdateCompletion(ctx, instanceID, func(c *model.ChoreInstance) {
		applyToggle(c, today, completingUserID)
	})
	if err != nil {
		return nil, fmt.Errorf("toggle chore: %w", err)
	}
	if c == nil {
		return nil, notFound("chore", instanceID)
	}

	state := "incomplete"
	if c.CompletedOn(today) {
		state = "complete"
	}
	metrics.ChoreToggles.WithLabelValues(state).Inc()
	s.logger.Debug("chore toggled", "chore_id", c.ID, "state", state, "date", today)

	return c, nil
}

// ResetAllCompletions clears completion on every instance and returns how
// many were touched.
func (s *Service) ResetAllCompletions(ctx context.Context) (int64, error) {
	n, err := s.chores.ResetAll(ctx)
	if err != nil {
		return 0, err
	}
	metrics.CompletionResets.Inc()
	s.logger.Info("completions reset", "chores", n)
	return n, nil
}

// ListCompletedOn returns the instances that count as done on date.
func (s *Service) ListCompletedOn(ctx context.Context, date string) ([]model.ChoreInstance, error) {
	all, err := s.chores.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	done := make([]model.ChoreInstance, 0, len(all))
	for _, c := range all {
		if c.CompletedOn(date) {
			done = append(done, c)
		}
	}
	return done, nil
}
