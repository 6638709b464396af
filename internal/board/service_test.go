package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/database"
	"github.com/dukerupert/choreboard/internal/model"
)

// monday is 2024-01-01, a Monday.
var monday = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *clock.Fixed) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clk := clock.NewFixed(monday)
	svc := NewService(db, clk, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var n int
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc, clk
}

func mustUser(t *testing.T, svc *Service, name string) *model.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), name)
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}

func mustGroup(t *testing.T, svc *Service, def GroupDefinition) *model.ChoreGroup {
	t.Helper()
	g, err := svc.DefineOrUpdateGroup(context.Background(), def)
	if err != nil {
		t.Fatalf("define group %q: %v", def.Title, err)
	}
	return g
}

// instanceFor returns the group's instance assigned to a.
func instanceFor(t *testing.T, svc *Service, groupID string, a model.Assignee) *model.ChoreInstance {
	t.Helper()
	all, err := svc.chores.ListByGroup(context.Background(), groupID)
	if err != nil {
		t.Fatalf("list group: %v", err)
	}
	for i := range all {
		if all[i].Assignee == a {
			return &all[i]
		}
	}
	return nil
}
