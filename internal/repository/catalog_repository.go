package repository

import (
	"context"

	"shop-service/internal/domain"
)

type CategoryRepository interface {
	Save(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id uint64) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uint64) (int64, error)
}

type BrandRepository interface {
	Save(ctx context.Context, b *domain.Brand) error
	FindByID(ctx context.Context, id uint64) (*domain.Brand, error)
	FindAll(ctx context.Context) ([]domain.Brand, error)
	Update(ctx context.Context, b *domain.Brand) error
	Delete(ctx context.Context, id uint64) (int64, error)
}
