// Package board is the chore board core: users, chore groups and their
// per-assignee instances, daily completion and the reward ledger.
package board

import (
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/store"
)

// Service exposes the board operations. All of them are synchronous and
// every multi-row change is committed atomically by the store.
type Service struct {
	users     *store.UserStore
	chores    *store.ChoreStore
	ledger    *store.LedgerStore
	snapshots *store.SnapshotStore
	clock     clock.Clock
	logger    *slog.Logger
	newID     func() string
}

func NewService(db *sql.DB, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		users:     store.NewUserStore(db),
		chores:    store.NewChoreStore(db, logger),
		ledger:    store.NewLedgerStore(db),
		snapshots: store.NewSnapshotStore(db),
		clock:     clk,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Today is the service clock's current local date (YYYY-MM-DD).
func (s *Service) Today() string {
	return clock.Today(s.clock)
}

// Clock returns the clock the service resolves "today" with.
func (s *Service) Clock() clock.Clock {
	return s.clock
}
