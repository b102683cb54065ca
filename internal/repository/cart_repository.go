package repository

import (
	"context"

	"shop-service/internal/domain"
)

type CartRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Cart, error)
	FindByUserID(ctx context.Context, userID uint64) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	// Save persists the cart together with its line items and totals.
	Save(ctx context.Context, cart *domain.Cart) error
	// RemoveItem deletes one line item and reports how many rows went.
	// Whole-cart deletion only ever happens inside a checkout commit.
	RemoveItem(ctx context.Context, cartID, productID uint64) (int64, error)
}
