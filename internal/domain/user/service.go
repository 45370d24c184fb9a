package user

import (
	"context"
	"fmt"

	"circles-core/internal/domain/shared"
)

// Service holds user rules that need a repository to evaluate
type Service struct {
	repo Repository
}

// NewService creates a user domain service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Exists reports whether another user already uses u's name
func (s *Service) Exists(ctx context.Context, u *User) (bool, error) {
	found, err := s.repo.FindByName(ctx, u.Name())
	if err != nil {
		if shared.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up user name: %w", err)
	}
	return !found.ID().Equals(u.ID()), nil
}
