package board

import (
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/recurrence"
)

// Shape is the part of a chore shared by every instance of its group.
type Shape struct {
	Title     string
	Icon      string
	Frequency recurrence.Frequency
	Reward    int
}

// Reconcile computes the instances a group should have after assigning it to
// assignees. An assignee that already has an instance keeps its ID and
// completion state and gets the new shape; new assignees get fresh
// instances; instances of assignees no longer listed are left out.
// The result follows the order of assignees, which must be duplicate-free.
func Reconcile(groupID string, related []model.ChoreInstance, shape Shape, assignees []model.Assignee, newID func() string) []model.ChoreInstance {
	existing := make(map[model.Assignee]model.ChoreInstance, len(related))
	for _, c := range related {
		if _, seen := existing[c.Assignee]; !seen {
			existing[c.Assignee] = c
		}
	}

	out := make([]model.ChoreInstance, 0, len(assignees))
	for _, a := range assignees {
		c, ok := existing[a]
		if !ok {
			c = model.ChoreInstance{ID: newID(), Assignee: a}
		}
		c.GroupID = groupID
		c.Title = shape.Title
		c.Icon = shape.Icon
		c.Frequency = shape.Frequency
		c.Reward = shape.Reward
		out = append(out, c)
	}
	return out
}

// dedupeAssignees drops repeated assignees, keeping first occurrences.
func dedupeAssignees(in []model.Assignee) []model.Assignee {
	seen := make(map[model.Assignee]bool, len(in))
	out := make([]model.Assignee, 0, len(in))
	for _, a := range in {
		if seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// groupInstances folds instances into groups in first-seen order. The first
// instance of a group supplies its shape.
func groupInstances(instances []model.ChoreInstance) []model.ChoreGroup {
	var groups []model.ChoreGroup
	index := make(map[string]int)
	for _, c := range instances {
		i, ok := index[c.GroupID]
		if !ok {
			index[c.GroupID] = len(groups)
			groups = append(groups, model.ChoreGroup{
				ID:        c.GroupID,
				Title:     c.Title,
				Icon:      c.Icon,
				Frequency: c.Frequency,
				Schedule:  c.Frequency.Describe(),
				Reward:    c.Reward,
			})
			i = len(groups) - 1
		}
		groups[i].Assignees = append(groups[i].Assignees, c.Assignee)
	}
	return groups
}
