package circle

import (
	"context"
	"fmt"

	"circles-core/internal/domain/shared"
)

// Service holds circle rules that need a repository to evaluate
type Service struct {
	repo Repository
}

// NewService creates a circle domain service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Exists reports whether another circle already uses c's name
func (s *Service) Exists(ctx context.Context, c *Circle) (bool, error) {
	found, err := s.repo.FindByName(ctx, c.Name())
	if err != nil {
		if shared.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up circle name: %w", err)
	}
	return !found.ID().Equals(c.ID()), nil
}
