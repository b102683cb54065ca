package repository

import (
	"context"
	"errors"

	"shop-service/internal/domain"
)

// ErrCartConverted is returned by CommitCheckout when the source cart
// vanished between snapshot and commit, i.e. a concurrent checkout
// already claimed it. The whole transaction is rolled back.
var ErrCartConverted = errors.New("cart already converted")

type OrderRepository interface {
	// CommitCheckout persists the order, adjusts product inventory for
	// every line item and deletes the source cart, all in a single
	// transaction. Deleting the cart doubles as the claim: zero rows
	// affected aborts the transaction with ErrCartConverted.
	CommitCheckout(ctx context.Context, cartID uint64, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
}
