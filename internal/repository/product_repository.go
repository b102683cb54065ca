package repository

import (
	"context"

	"shop-service/internal/domain"
)

type ProductFilter struct {
	CategoryID uint64
	BrandID    uint64
	Page       int
	Limit      int
}

type ProductRepository interface {
	Save(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uint64) (int64, error)
}
