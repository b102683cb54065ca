package services

import (
	"context"
	"testing"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestCartService() (*CartService, *mocks.MockCartRepository, *mocks.MockProductRepository, *mocks.MockCouponRepository) {
	cartRepo := new(mocks.MockCartRepository)
	productRepo := new(mocks.MockProductRepository)
	couponRepo := new(mocks.MockCouponRepository)
	svc := NewCartService(cartRepo, productRepo, NewCouponService(couponRepo))
	return svc, cartRepo, productRepo, couponRepo
}

func TestCartService_AddProduct(t *testing.T) {
	t.Run("first add creates the cart with a price snapshot", func(t *testing.T) {
		svc, cartRepo, productRepo, _ := newTestCartService()

		productRepo.On("FindByID", mock.Anything, TestProductID).
			Return(CreateTestProduct(TestProductID, 99.5, 10), nil)
		cartRepo.On("FindByUserID", mock.Anything, TestUserID).Return(nil, nil)
		cartRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

		cart, err := svc.AddProduct(context.Background(), TestUserID, TestProductID, 2)

		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, int64(2), cart.Items[0].Quantity)
		assert.Equal(t, 99.5, cart.Items[0].Price)
		assert.Equal(t, 199.0, cart.TotalPrice)
		assert.Nil(t, cart.TotalPriceAfterDiscount)
		cartRepo.AssertExpectations(t)
	})

	t.Run("adding the same product merges quantities", func(t *testing.T) {
		svc, cartRepo, productRepo, _ := newTestCartService()

		productRepo.On("FindByID", mock.Anything, TestProductID).
			Return(CreateTestProduct(TestProductID, 100, 10), nil)
		cartRepo.On("FindByUserID", mock.Anything, TestUserID).
			Return(CreateTestCart(TestCartID, TestUserID, 200, FloatPtr(150)), nil)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

		cart, err := svc.AddProduct(context.Background(), TestUserID, TestProductID, 1)

		assert.NoError(t, err)
		assert.Len(t, cart.Items, 1)
		assert.Equal(t, int64(3), cart.Items[0].Quantity)
		assert.Equal(t, 300.0, cart.TotalPrice)
		// Mutation drops the stale discount; the coupon must be reapplied.
		assert.Nil(t, cart.TotalPriceAfterDiscount)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, cartRepo, productRepo, _ := newTestCartService()

		productRepo.On("FindByID", mock.Anything, uint64(999)).Return(nil, nil)

		cart, err := svc.AddProduct(context.Background(), TestUserID, 999, 1)

		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Nil(t, cart)
		cartRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc, cartRepo, _, _ := newTestCartService()

	cartRepo.On("FindByUserID", mock.Anything, TestUserID).
		Return(CreateTestCart(TestCartID, TestUserID, 200, nil), nil)
	cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateQuantity(context.Background(), TestUserID, TestProductID, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)
	assert.Equal(t, 500.0, cart.TotalPrice)
}

func TestCartService_RemoveItem(t *testing.T) {
	t.Run("removes and recomputes", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestCartService()

		cart := CreateTestCart(TestCartID, TestUserID, 200, nil)
		cart.Items = append(cart.Items, domain.CartItem{ID: 2, CartID: TestCartID, ProductID: 42, Quantity: 1, Price: 50})
		cart.RecomputeTotal()

		cartRepo.On("FindByUserID", mock.Anything, TestUserID).Return(cart, nil)
		cartRepo.On("RemoveItem", mock.Anything, TestCartID, uint64(42)).Return(int64(1), nil)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

		got, err := svc.RemoveItem(context.Background(), TestUserID, 42)

		assert.NoError(t, err)
		assert.Len(t, got.Items, 1)
		assert.Equal(t, 200.0, got.TotalPrice)
	})

	t.Run("item not in cart", func(t *testing.T) {
		svc, cartRepo, _, _ := newTestCartService()

		cartRepo.On("FindByUserID", mock.Anything, TestUserID).
			Return(CreateTestCart(TestCartID, TestUserID, 200, nil), nil)
		cartRepo.On("RemoveItem", mock.Anything, TestCartID, uint64(42)).Return(int64(0), nil)

		got, err := svc.RemoveItem(context.Background(), TestUserID, 42)

		assert.ErrorIs(t, err, ErrCartItemNotFound)
		assert.Nil(t, got)
	})
}

func TestCartService_ApplyCoupon(t *testing.T) {
	validCoupon := &domain.Coupon{
		ID:        1,
		Code:      "SAVE25",
		Discount:  25,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	t.Run("snapshots the discounted total", func(t *testing.T) {
		svc, cartRepo, _, couponRepo := newTestCartService()

		couponRepo.On("FindByCode", mock.Anything, "SAVE25").Return(validCoupon, nil)
		cartRepo.On("FindByUserID", mock.Anything, TestUserID).
			Return(CreateTestCart(TestCartID, TestUserID, 200, nil), nil)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

		cart, err := svc.ApplyCoupon(context.Background(), TestUserID, "SAVE25")

		assert.NoError(t, err)
		assert.NotNil(t, cart.TotalPriceAfterDiscount)
		assert.Equal(t, 150.0, *cart.TotalPriceAfterDiscount)
		assert.Equal(t, "SAVE25", cart.CouponCode)
	})

	t.Run("expired coupon", func(t *testing.T) {
		svc, cartRepo, _, couponRepo := newTestCartService()

		couponRepo.On("FindByCode", mock.Anything, "OLD").Return(&domain.Coupon{
			ID: 2, Code: "OLD", Discount: 50, ExpiresAt: time.Now().Add(-time.Hour),
		}, nil)

		cart, err := svc.ApplyCoupon(context.Background(), TestUserID, "OLD")

		assert.ErrorIs(t, err, ErrCouponExpired)
		assert.Nil(t, cart)
		cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		svc, _, _, couponRepo := newTestCartService()

		couponRepo.On("FindByCode", mock.Anything, "NOPE").Return(nil, nil)

		cart, err := svc.ApplyCoupon(context.Background(), TestUserID, "NOPE")

		assert.ErrorIs(t, err, ErrCouponNotFound)
		assert.Nil(t, cart)
	})
}
