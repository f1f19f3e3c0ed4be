package catalog

import (
	"context"

	"maqha/internal/domain"
	catalogrepo "maqha/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	return s.repo.GetByID(ctx, id)
}
