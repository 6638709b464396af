package model

import (
	"encoding/json"

	"github.com/dukerupert/choreboard/internal/recurrence"
)

// PoolID is the wire form of the shared "extra chores" pool.
const PoolID = "extra-chores"

// Assignee is who a chore instance belongs to: a real user or the shared
// pool. The pool has no wallet.
type Assignee struct {
	UserID string
	Pool   bool
}

func UserAssignee(id string) Assignee { return Assignee{UserID: id} }

func SharedPool() Assignee { return Assignee{Pool: true} }

// ParseAssignee maps PoolID to the pool and anything else to a user.
func ParseAssignee(s string) Assignee {
	if s == PoolID {
		return SharedPool()
	}
	return UserAssignee(s)
}

func (a Assignee) IsUser() bool { return !a.Pool }

func (a Assignee) String() string {
	if a.Pool {
		return PoolID
	}
	return a.UserID
}

func (a Assignee) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Assignee) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAssignee(s)
	return nil
}

// ChoreInstance is one assignee's copy of a chore group, carrying its own
// completion state.
type ChoreInstance struct {
	ID                string               `json:"id"`
	GroupID           string               `json:"group_id"`
	Assignee          Assignee             `json:"assignee"`
	Title             string               `json:"title"`
	Icon              string               `json:"icon"`
	Frequency         recurrence.Frequency `json:"frequency"`
	Reward            int                  `json:"reward"`
	LastCompletedDate *string              `json:"last_completed_date"`
	CompletedBy       *string              `json:"completed_by"`
}

// CompletedOn reports whether the instance was completed on date (YYYY-MM-DD).
func (c ChoreInstance) CompletedOn(date string) bool {
	return c.LastCompletedDate != nil && *c.LastCompletedDate == date
}

// ChoreGroup is the logical chore derived from its instances.
type ChoreGroup struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Icon      string               `json:"icon"`
	Frequency recurrence.Frequency `json:"frequency"`
	Schedule  string               `json:"schedule"`
	Reward    int                  `json:"reward"`
	Assignees []Assignee           `json:"assignees"`
}
