package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukerupert/choreboard/internal/model"
)

// UserPatch carries the profile fields to change; nil fields are kept.
type UserPatch struct {
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
	Color  *string `json:"color"`
}

// CreateUser adds a user with a random avatar and colour and empty wallets.
func (s *Service) CreateUser(ctx context.Context, name string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	u, err := s.users.Create(ctx, model.User{
		ID:     s.newID(),
		Name:   name,
		Avatar: pick(AvatarPalette),
		Color:  pick(ColorPalette),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", u.ID)
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user", id)
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// UpdateUser applies patch to the user's profile. Wallets are changed only
// through AdjustBalance.
func (s *Service) UpdateUser(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name", "must not be blank")
	}

	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	name, avatar, color := u.Name, u.Avatar, u.Color
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
	}
	if patch.Avatar != nil {
		avatar = strings.TrimSpace(*patch.Avatar)
	}
	if patch.Color != nil {
		color = strings.TrimSpace(*patch.Color)
	}

	updated, err := s.users.Update(ctx, id, name, avatar, color)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if updated == nil {
		return nil, notFound("user", id)
	}
	return updated, nil
}

// DeleteUser removes the user and every chore instance assigned to them.
// Shared pool chores are kept.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !ok {
		return notFound("user", id)
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
