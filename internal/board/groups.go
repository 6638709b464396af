package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukerupert/choreboard/internal/metrics"
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/recurrence"
)

// GroupDefinition is the desired state of a chore group. An empty GroupID
// creates a new group. A nil Frequency means every day.
type GroupDefinition struct {
	GroupID   string                `json:"group_id"`
	Title     string                `json:"title"`
	Icon      string                `json:"icon"`
	Frequency *recurrence.Frequency `json:"frequency"`
	Reward    int                   `json:"reward"`
	Assignees []model.Assignee      `json:"assignees"`
}

// DefineOrUpdateGroup reconciles the group's instances with def and returns
// the resulting group. Retained assignees keep their instance ID and
// completion state.
func (s *Service) DefineOrUpdateGroup(ctx context.Context, def GroupDefinition) (*model.ChoreGroup, error) {
	title := strings.TrimSpace(def.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	if def.Reward < 0 {
		return nil, invalid("reward", "must not be negative")
	}
	freq := recurrence.EveryDay()
	if def.Frequency != nil {
		freq = *def.Frequency
	}
	if err := freq.Validate(); err != nil {
		return nil, invalid("frequency", err.Error())
	}
	assignees := dedupeAssignees(def.Assignees)
	if len(assignees) == 0 {
		return nil, invalid("assignees", "at least one is required")
	}
	for _, a := range assignees {
		if !a.IsUser() {
			continue
		}
		if a.UserID == "" {
			return nil, invalid("assignees", "user id must not be blank")
		}
		ok, err := s.users.Exists(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, notFound("user", a.UserID)
		}
	}

	var related []model.ChoreInstance
	groupID := def.GroupID
	if groupID != "" {
		var err error
		related, err = s.chores.ListByGroup(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if len(related) == 0 {
			return nil, notFound("group", groupID)
		}
	} else {
		groupID = s.newID()
	}

	inUse, err := s.chores.TitleInUse(ctx, title, groupID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, invalid("title", fmt.Sprintf("%q is used by another chore", title))
	}

	icon := strings.TrimSpace(def.Icon)
	if icon == "" {
		if len(related) > 0 {
			icon = related[0].Icon
		} else {
			icon = pick(IconPalette)
		}
	}

	shape := Shape{Title: title, Icon: icon, Frequency: freq, Reward: def.Reward}
	instances := Reconcile(groupID, related, shape, assignees, s.newID)
	if err := s.chores.ReplaceGroup(ctx, groupID, instances); err != nil {
		return nil, fmt.Errorf("save group: %w", err)
	}

	kind := "update"
	if def.GroupID == "" {
		kind = "create"
	}
	metrics.GroupReconciles.WithLabelValues(kind).Inc()
	s.logger.Info("chore group saved", "group_id", groupID, "kind", kind, "assignees", len(instances))

	saved, err := s.chores.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	groups := groupInstances(saved)
	if len(groups) == 0 {
		return nil, notFound("group", groupID)
	}
	return &groups[0], nil
}

// DeleteGroup removes every instance of the group.
func (s *Service) DeleteGroup(ctx context.Context, groupID string) error {
	n, err := s.chores.DeleteGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("group", groupID)
	}
	s.logger.Info("chore group deleted", "group_id", groupID, "instances", n)
	return nil
}

// ListGroups derives the chore groups from the stored instances.
func (s *Service) ListGroups(ctx context.Context) ([]model.ChoreGroup, error) {
	all, err := s.chores.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := groupInstances(all)
	if groups == nil {
		groups = []model.ChoreGroup{}
	}
	return groups, nil
}
