package board

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/recurrence"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func TestReconcile(t *testing.T) {
	done := "2024-01-01"
	by := "u-c"
	related := []model.ChoreInstance{
		{ID: "c-a", GroupID: "g", Assignee: model.UserAssignee("u-a"), Title: "Old", Icon: "🧽", Frequency: recurrence.EveryDay()},
		{ID: "c-b", GroupID: "g", Assignee: model.SharedPool(), Title: "Old", Icon: "🧽", Frequency: recurrence.EveryDay(), LastCompletedDate: &done, CompletedBy: &by},
	}
	shape := Shape{Title: "New", Icon: "🧺", Frequency: recurrence.OnDays(1), Reward: 10}

	got := Reconcile("g", related, shape, []model.Assignee{model.SharedPool(), model.UserAssignee("u-d")}, seqIDs())

	want := []model.ChoreInstance{
		{ID: "c-b", GroupID: "g", Assignee: model.SharedPool(), Title: "New", Icon: "🧺", Frequency: recurrence.OnDays(1), Reward: 10, LastCompletedDate: &done, CompletedBy: &by},
		{ID: "new-1", GroupID: "g", Assignee: model.UserAssignee("u-d"), Title: "New", Icon: "🧺", Frequency: recurrence.OnDays(1), Reward: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconcile mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileEmptyRelated(t *testing.T) {
	got := Reconcile("g", nil, Shape{Title: "T"}, []model.Assignee{model.UserAssignee("u-a")}, seqIDs())
	if len(got) != 1 || got[0].ID != "new-1" || got[0].LastCompletedDate != nil {
		t.Errorf("got %+v, want one fresh instance", got)
	}
}

func TestGroupInstances(t *testing.T) {
	instances := []model.ChoreInstance{
		{ID: "1", GroupID: "g1", Assignee: model.UserAssignee("a"), Title: "Dishes", Reward: 5},
		{ID: "2", GroupID: "g2", Assignee: model.SharedPool(), Title: "Trash"},
		{ID: "3", GroupID: "g1", Assignee: model.UserAssignee("b"), Title: "Dishes", Reward: 5},
	}

	got := groupInstances(instances)
	want := []model.ChoreGroup{
		{ID: "g1", Title: "Dishes", Schedule: "Every day", Reward: 5, Assignees: []model.Assignee{model.UserAssignee("a"), model.UserAssignee("b")}},
		{ID: "g2", Title: "Trash", Schedule: "Every day", Assignees: []model.Assignee{model.SharedPool()}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groupInstances mismatch (-want +got):\n%s", diff)
	}
}
