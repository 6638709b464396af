package board

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/choreboard/internal/clock"
	"github.com/dukerupert/choreboard/internal/model"
	"github.com/dukerupert/choreboard/internal/recurrence"
)

// Snapshot is the persisted layout: users and chore instances as flat
// records, each in insertion order.
type Snapshot struct {
	Users  []UserRecord  `json:"users"`
	Chores []ChoreRecord `json:"chores"`
}

type UserRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AvatarGlyph   string `json:"avatarGlyph"`
	ColorTag      string `json:"colorTag"`
	WalletMinutes int    `json:"walletMinutes"`
	WalletCoins   int    `json:"walletCoins"`
}

// UnmarshalJSON also accepts the older names avatar, color, redeemedMinutes
// and coins.
func (r *UserRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		AvatarGlyph     string `json:"avatarGlyph"`
		Avatar          string `json:"avatar"`
		ColorTag        string `json:"colorTag"`
		Color           string `json:"color"`
		WalletMinutes   *int   `json:"walletMinutes"`
		RedeemedMinutes *int   `json:"redeemedMinutes"`
		WalletCoins     *int   `json:"walletCoins"`
		Coins           *int   `json:"coins"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UserRecord{
		ID:            raw.ID,
		Name:          raw.Name,
		AvatarGlyph:   firstNonEmpty(raw.AvatarGlyph, raw.Avatar),
		ColorTag:      firstNonEmpty(raw.ColorTag, raw.Color),
		WalletMinutes: firstInt(raw.WalletMinutes, raw.RedeemedMinutes),
		WalletCoins:   firstInt(raw.WalletCoins, raw.Coins),
	}
	return nil
}

type ChoreRecord struct {
	ID                string                `json:"id"`
	GroupID           string                `json:"groupId"`
	UserID            string                `json:"userId"`
	Title             string                `json:"title"`
	Icon              string                `json:"icon"`
	Frequency         *recurrence.Frequency `json:"frequency"`
	Reward            int                   `json:"reward"`
	LastCompletedDate *string               `json:"lastCompletedDate"`
	CompletedByUserID *string               `json:"completedByUserId"`
}

// UnmarshalJSON also accepts lastCompletedAt and completedBy.
func (r *ChoreRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                string                `json:"id"`
		GroupID           string                `json:"groupId"`
		UserID            string                `json:"userId"`
		Title             string                `json:"title"`
		Icon              string                `json:"icon"`
		Frequency         *recurrence.Frequency `json:"frequency"`
		Reward            int                   `json:"reward"`
		LastCompletedDate *string               `json:"lastCompletedDate"`
		LastCompletedAt   *string               `json:"lastCompletedAt"`
		CompletedByUserID *string               `json:"completedByUserId"`
		CompletedBy       *string               `json:"completedBy"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	last := raw.LastCompletedDate
	if last == nil {
		last = raw.LastCompletedAt
	}
	by := raw.CompletedByUserID
	if by == nil {
		by = raw.CompletedBy
	}

	*r = ChoreRecord{
		ID:                raw.ID,
		GroupID:           raw.GroupID,
		UserID:            raw.UserID,
		Title:             raw.Title,
		Icon:              raw.Icon,
		Frequency:         raw.Frequency,
		Reward:            raw.Reward,
		LastCompletedDate: last,
		CompletedByUserID: by,
	}
	return nil
}

// ImportResult counts what an import kept and dropped.
type ImportResult struct {
	Users         int `json:"users"`
	Chores        int `json:"chores"`
	Groups        int `json:"groups"`
	SkippedChores int `json:"skipped_chores"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// Export returns the whole board as a Snapshot.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	chores, err := s.chores.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Users:  make([]UserRecord, 0, len(users)),
		Chores: make([]ChoreRecord, 0, len(chores)),
	}
	for _, u := range users {
		snap.Users = append(snap.Users, UserRecord{
			ID:            u.ID,
			Name:          u.Name,
			AvatarGlyph:   u.Avatar,
			ColorTag:      u.Color,
			WalletMinutes: u.WalletMinutes,
			WalletCoins:   u.WalletCoins,
		})
	}
	for _, c := range chores {
		freq := c.Frequency
		snap.Chores = append(snap.Chores, ChoreRecord{
			ID:                c.ID,
			GroupID:           c.GroupID,
			UserID:            c.Assignee.String(),
			Title:             c.Title,
			Icon:              c.Icon,
			Frequency:         &freq,
			Reward:            c.Reward,
			LastCompletedDate: c.LastCompletedDate,
			CompletedByUserID: c.CompletedBy,
		})
	}
	return snap, nil
}

// Import replaces the whole board with snap. Missing fields get defaults and
// records without a group ID are grouped by title. Chores of unknown users,
// chores without a title and repeat assignees within a group are dropped. Instances of one group take the shape of the group's
// first record.
func (s *Service) Import(ctx context.Context, snap Snapshot) (*ImportResult, error) {
	users := make([]model.User, 0, len(snap.Users))
	known := make(map[string]bool, len(snap.Users))
	for i, r := range snap.Users {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, invalid(fmt.Sprintf("users[%d].id", i), "is required")
		}
		if id == model.PoolID {
			return nil, invalid(fmt.Sprintf("users[%d].id", i), "is reserved for the shared pool")
		}
		if known[id] {
			return nil, invalid(fmt.Sprintf("users[%d].id", i), fmt.Sprintf("duplicate id %q", id))
		}
		known[id] = true
		users = append(users, model.User{
			ID:            id,
			Name:          r.Name,
			Avatar:        r.AvatarGlyph,
			Color:         r.ColorTag,
			WalletMinutes: r.WalletMinutes,
			WalletCoins:   r.WalletCoins,
		})
	}

	result := &ImportResult{Users: len(users)}
	shapes := make(map[string]Shape)
	titleOwner := make(map[string]string)
	seenChore := make(map[string]bool, len(snap.Chores))
	assigned := make(map[string]bool, len(snap.Chores))
	chores := make([]model.ChoreInstance, 0, len(snap.Chores))

	for i, r := range snap.Chores {
		assignee := model.ParseAssignee(r.UserID)
		if assignee.IsUser() && !known[assignee.UserID] {
			s.logger.Warn("dropping chore of unknown user", "chore_id", r.ID, "user_id", r.UserID)
			result.SkippedChores++
			continue
		}

		title := strings.TrimSpace(r.Title)
		if title == "" {
			s.logger.Warn("dropping chore without title", "chore_id", r.ID, "user_id", r.UserID)
			result.SkippedChores++
			continue
		}

		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = s.newID()
		}
		if seenChore[id] {
			return nil, invalid(fmt.Sprintf("chores[%d].id", i), fmt.Sprintf("duplicate id %q", id))
		}
		seenChore[id] = true

		groupID := r.GroupID
		if groupID == "" {
			var ok bool
			if groupID, ok = titleOwner[title]; !ok {
				groupID = s.newID()
			}
		}

		slot := groupID + "\x00" + assignee.String()
		if assigned[slot] {
			s.logger.Warn("dropping duplicate assignee in group", "chore_id", id, "group_id", groupID, "assignee", assignee.String())
			result.SkippedChores++
			continue
		}
		assigned[slot] = true

		shape, ok := shapes[groupID]
		if !ok {
			if other, taken := titleOwner[title]; taken && other != groupID {
				return nil, invalid(fmt.Sprintf("chores[%d].title", i), fmt.Sprintf("%q is used by another group", title))
			}
			titleOwner[title] = groupID
			freq := recurrence.EveryDay()
			if r.Frequency != nil && r.Frequency.Validate() == nil {
				freq = *r.Frequency
			}
			shape = Shape{Title: title, Icon: r.Icon, Frequency: freq, Reward: max(r.Reward, 0)}
			shapes[groupID] = shape
			result.Groups++
		}

		c := model.ChoreInstance{
			ID:                id,
			GroupID:           groupID,
			Assignee:          assignee,
			Title:             shape.Title,
			Icon:              shape.Icon,
			Frequency:         shape.Frequency,
			Reward:            shape.Reward,
			LastCompletedDate: normalizeDate(r.LastCompletedDate),
		}
		if r.CompletedByUserID != nil && known[*r.CompletedByUserID] && *r.CompletedByUserID != assignee.UserID {
			by := *r.CompletedByUserID
			c.CompletedBy = &by
		}
		chores = append(chores, c)
	}
	result.Chores = len(chores)

	if err := s.snapshots.ReplaceAll(ctx, users, chores); err != nil {
		return nil, fmt.Errorf("import snapshot: %w", err)
	}

	s.logger.Info("snapshot imported",
		"users", result.Users,
		"chores", result.Chores,
		"groups", result.Groups,
		"skipped", result.SkippedChores,
	)
	return result, nil
}

// normalizeDate keeps the calendar date of a stored completion value.
// Timestamps are cut to their date; anything unreadable is dropped.
func normalizeDate(s *string) *string {
	if s == nil || len(*s) < len(clock.DateLayout) {
		return nil
	}
	d := (*s)[:len(clock.DateLayout)]
	if _, err := time.Parse(clock.DateLayout, d); err != nil {
		return nil
	}
	return &d
}
