package service

import (
	"context"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/store"
)

// RepositoryService lists the note collections users can write into.
type RepositoryService struct {
	Store store.Store
}

func (s *RepositoryService) ListAll(ctx context.Context) ([]domain.Repository, error) {
	return s.Store.Repositories().ListRepositories(ctx)
}

func (s *RepositoryService) ListByUser(ctx context.Context, userID int64) ([]domain.Repository, error) {
	return s.Store.Repositories().ListRepositoriesByUser(ctx, userID)
}

func (s *RepositoryService) GetByID(ctx context.Context, id int64) (domain.Repository, error) {
	return s.Store.Repositories().GetRepositoryByID(ctx, id)
}
