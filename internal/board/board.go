package board

import (
	"context"
	"time"

	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/model"
)

// ChoreStatus is an instance as seen on a given date.
type ChoreStatus struct {
	model.ChoreInstance
	Completed bool `json:"completed"`
}

// Column is one assignee's list on the board.
type Column struct {
	Assignee  model.Assignee `json:"assignee"`
	User      *model.User    `json:"user,omitempty"`
	Chores    []ChoreStatus  `json:"chores"`
	Completed int            `json:"completed"`
	Total     int            `json:"total"`
}

// BoardView is every user's column followed by the shared pool.
type BoardView struct {
	Date    string   `json:"date"`
	Columns []Column `json:"columns"`
}

// ListChoresForAssignee returns the assignee's instances scheduled on date.
func (s *Service) ListChoresForAssignee(ctx context.Context, a model.Assignee, date time.Time) ([]model.ChoreInstance, error) {
	if a.IsUser() {
		ok, err := s.users.Exists(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, notFound("user", a.UserID)
		}
	}

	chores, err := s.chores.ListForAssignee(ctx, a, date)
	if err != nil {
		return nil, err
	}
	if chores == nil {
		chores = []model.ChoreInstance{}
	}
	return chores, nil
}

// Board builds the board for date: per user and for the pool, the chores
// due that day and how many of them are done.
func (s *Service) Board(ctx context.Context, date time.Time) (*BoardView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	day := clock.DateString(date)
	view := &BoardView{Date: day, Columns: make([]Column, 0, len(users)+1)}

	for i := range users {
		col, err := s.column(ctx, model.UserAssignee(users[i].ID), date)
		if err != nil {
			return nil, err
		}
		col.User = &users[i]
		view.Columns = append(view.Columns, col)
	}

	pool, err := s.column(ctx, model.SharedPool(), date)
	if err != nil {
		return nil, err
	}
	view.Columns = append(view.Columns, pool)

	return view, nil
}

func (s *Service) column(ctx context.Context, a model.Assignee, date time.Time) (Column, error) {
	chores, err := s.chores.ListForAssignee(ctx, a, date)
	if err != nil {
		return Column{}, err
	}

	day := clock.DateString(date)
	col := Column{Assignee: a, Chores: make([]ChoreStatus, 0, len(chores)), Total: len(chores)}
	for _, c := range chores {
		done := c.CompletedOn(day)
		if done {
			col.Completed++
		}
		col.Chores = append(col.Chores, ChoreStatus{ChoreInstance: c, Completed: done})
	}
	return col, nil
}

func (s *Service) GetChore(ctx context.Context, id string) (*model.ChoreInstance, error) {
	c, err := s.chores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("chore", id)
	}
	return c, nil
}
