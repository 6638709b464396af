package board

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/recurrence"
)

const legacySnapshot = `{
  "users": [
    {"id": "kid-1", "name": "Alice", "avatar": "🐶", "color": "bg-red-100", "redeemedMinutes": 30},
    {"id": "kid-2", "name": "Bob", "avatar": "🐱", "color": "bg-blue-100", "coins": 4}
  ],
  "chores": [
    {"id": "c1", "userId": "kid-1", "title": "Dishes", "icon": "🍽️", "frequency": {"type": "weekly", "days": [1, 3]}, "lastCompletedAt": "2024-01-01"},
    {"id": "c2", "userId": "kid-2", "title": "Dishes", "icon": "🍽️", "frequency": {"type": "weekly", "days": [1, 3]}},
    {"id": "c3", "userId": "extra-chores", "title": "Windows", "icon": "🪟", "completedBy": "kid-2", "lastCompletedAt": "2024-01-01T18:00:00.000Z"},
    {"id": "c4", "userId": "kid-9", "title": "Orphan", "icon": "❓"},
    {"id": "c5", "userId": "kid-1", "title": "Dishes", "icon": "🍽️", "lastCompletedAt": "2023-12-31"},
    {"id": "c6", "userId": "kid-1", "title": "   ", "icon": "🧹"}
  ]
}`

func TestImportLegacySnapshot(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	var snap Snapshot
	if err := json.Unmarshal([]byte(legacySnapshot), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}

	res, err := svc.Import(ctx, snap)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := &ImportResult{Users: 2, Chores: 3, Groups: 2, SkippedChores: 3}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}

	alice, err := svc.GetUser(ctx, "kid-1")
	if err != nil {
		t.Fatalf("get alice: %v", err)
	}
	if alice.Avatar != "🐶" || alice.Color != "bg-red-100" || alice.WalletMinutes != 30 || alice.WalletCoins != 0 {
		t.Errorf("alice = %+v", alice)
	}
	bob, err := svc.GetBalance(ctx, "kid-2", model.CurrencyCoins)
	if err != nil {
		t.Fatalf("get bob coins: %v", err)
	}
	if bob.Amount != 4 {
		t.Errorf("bob coins = %d, want 4", bob.Amount)
	}

	groups, err := svc.ListGroups(ctx)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	dishes := groups[0]
	if dishes.Title != "Dishes" {
		t.Errorf("dishes title = %q", dishes.Title)
	}
	if diff := cmp.Diff([]model.Assignee{model.UserAssignee("kid-1"), model.UserAssignee("kid-2")}, dishes.Assignees); diff != "" {
		t.Errorf("dishes assignees (-want +got):\n%s", diff)
	}
	if !dishes.Frequency.Equal(recurrence.OnDays(1, 3)) {
		t.Errorf("dishes frequency = %v, want Mon/Wed", dishes.Frequency)
	}
	if dishes.Reward != 0 {
		t.Errorf("dishes reward = %d, want 0", dishes.Reward)
	}

	windows := groups[1]
	if windows.Frequency.Kind != recurrence.Daily {
		t.Errorf("windows frequency = %v, want daily", windows.Frequency)
	}
	if diff := cmp.Diff([]model.Assignee{model.SharedPool()}, windows.Assignees); diff != "" {
		t.Errorf("windows assignees (-want +got):\n%s", diff)
	}

	for _, id := range []string{"c4", "c5", "c6"} {
		c, err := svc.chores.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if c != nil {
			t.Errorf("%s imported, want dropped", id)
		}
	}

	c1, err := svc.chores.GetByID(ctx, "c1")
	if err != nil || c1 == nil {
		t.Fatalf("get c1: %v, %v", c1, err)
	}
	if !c1.CompletedOn("2024-01-01") {
		t.Errorf("c1 last completed = %v, want 2024-01-01", c1.LastCompletedDate)
	}

	c3, err := svc.chores.GetByID(ctx, "c3")
	if err != nil || c3 == nil {
		t.Fatalf("get c3: %v, %v", c3, err)
	}
	if !c3.CompletedOn("2024-01-01") {
		t.Errorf("c3 last completed = %v, want 2024-01-01", c3.LastCompletedDate)
	}
	if c3.CompletedBy == nil || *c3.CompletedBy != "kid-2" {
		t.Errorf("c3 completed_by = %v, want kid-2", c3.CompletedBy)
	}
}

func TestImportReplacesBoard(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	mustUser(t, svc, "Old")

	if _, err := svc.Import(ctx, Snapshot{Users: []UserRecord{{ID: "u1", Name: "New"}}}); err != nil {
		t.Fatalf("import: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].ID != "u1" {
		t.Errorf("users = %+v, want only u1", users)
	}
}

func TestImportRejectsBadUsers(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	keep := mustUser(t, svc, "Keep")

	bad := []Snapshot{
		{Users: []UserRecord{{ID: ""}}},
		{Users: []UserRecord{{ID: model.PoolID}}},
		{Users: []UserRecord{{ID: "a"}, {ID: "a"}}},
	}
	for _, snap := range bad {
		if _, err := svc.Import(ctx, snap); !errors.Is(err, ErrValidation) {
			t.Errorf("import %+v err = %v, want ErrValidation", snap.Users, err)
		}
	}

	if _, err := svc.GetUser(ctx, keep.ID); err != nil {
		t.Errorf("existing user lost after rejected import: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := mustUser(t, svc, "Alice")
	if _, err := svc.AdjustBalance(ctx, a.ID, model.CurrencyCoins, 3); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	weekly := recurrence.OnDays(0, 6)
	g := mustGroup(t, svc, GroupDefinition{
		Title:     "Lawn",
		Frequency: &weekly,
		Reward:    20,
		Assignees: []model.Assignee{model.UserAssignee(a.ID), model.SharedPool()},
	})
	pool := instanceFor(t, svc, g.ID, model.SharedPool())
	if _, err := svc.ToggleCompletion(ctx, pool.ID, a.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	first, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	other, _ := setupService(t)
	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := other.Import(ctx, decoded); err != nil {
		t.Fatalf("import: %v", err)
	}

	second, err := other.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}
