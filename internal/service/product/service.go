package product

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/domain"
	catalogrepo "storefront/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("empty slug: %w", domain.ErrNotFound)
	}
	return s.repo.GetBySlug(ctx, slug)
}

// ListOthers feeds the "you may also like" strip of a product page.
func (s *Service) ListOthers(ctx context.Context, slug string) ([]domain.Product, error) {
	return s.repo.ListOthers(ctx, slug)
}

// Detail is a product page: the product with its sizes and the other products.
type Detail struct {
	Product *domain.Product  `json:"product"`
	Others  []domain.Product `json:"others"`
}

func (s *Service) Detail(ctx context.Context, slug string) (Detail, error) {
	p, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return Detail{}, err
	}
	others, err := s.ListOthers(ctx, p.Slug)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Product: p, Others: others}, nil
}
