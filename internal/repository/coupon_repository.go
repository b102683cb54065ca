package repository

import (
	"context"

	"shop-service/internal/domain"
)

type CouponRepository interface {
	Save(ctx context.Context, c *domain.Coupon) error
	FindByID(ctx context.Context, id uint64) (*domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
	FindAll(ctx context.Context) ([]domain.Coupon, error)
	// AllCodes feeds the in-memory prefilter at startup.
	AllCodes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, c *domain.Coupon) error
	Delete(ctx context.Context, id uint64) (int64, error)
}
