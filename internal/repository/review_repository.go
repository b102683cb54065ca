package repository

import (
	"context"

	"shop-service/internal/domain"
)

type ReviewRepository interface {
	Save(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id uint64) (*domain.Review, error)
	FindByProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
	FindByProductAndUser(ctx context.Context, productID, userID uint64) (*domain.Review, error)
	Update(ctx context.Context, r *domain.Review) error
	Delete(ctx context.Context, id uint64) (int64, error)
	// RefreshProductRating recomputes the ratings average and count on
	// the reviewed product.
	RefreshProductRating(ctx context.Context, productID uint64) error
}
