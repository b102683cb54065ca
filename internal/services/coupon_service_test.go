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

func TestCouponService_Prefilter(t *testing.T) {
	t.Run("unknown code is rejected without a database hit", func(t *testing.T) {
		couponRepo := new(mocks.MockCouponRepository)
		svc := NewCouponService(couponRepo)

		couponRepo.On("AllCodes", mock.Anything).Return([]string{"SAVE25", "SAVE50"}, nil)
		assert.NoError(t, svc.LoadPrefilter(context.Background()))

		_, err := svc.Lookup(context.Background(), "definitely-not-a-code")

		assert.ErrorIs(t, err, ErrCouponNotFound)
		couponRepo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	})

	t.Run("known code falls through to the database", func(t *testing.T) {
		couponRepo := new(mocks.MockCouponRepository)
		svc := NewCouponService(couponRepo)

		couponRepo.On("AllCodes", mock.Anything).Return([]string{"SAVE25"}, nil)
		assert.NoError(t, svc.LoadPrefilter(context.Background()))

		stored := &domain.Coupon{ID: 1, Code: "SAVE25", Discount: 25, ExpiresAt: time.Now().Add(time.Hour)}
		couponRepo.On("FindByCode", mock.Anything, "SAVE25").Return(stored, nil)

		c, err := svc.Lookup(context.Background(), "SAVE25")

		assert.NoError(t, err)
		assert.Equal(t, stored, c)
	})

	t.Run("newly created coupon passes the prefilter", func(t *testing.T) {
		couponRepo := new(mocks.MockCouponRepository)
		svc := NewCouponService(couponRepo)

		couponRepo.On("AllCodes", mock.Anything).Return([]string{}, nil)
		assert.NoError(t, svc.LoadPrefilter(context.Background()))

		couponRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Coupon")).Return(nil)
		created, err := svc.CreateCoupon(context.Background(), "FRESH10", 10, time.Now().Add(time.Hour))
		assert.NoError(t, err)

		couponRepo.On("FindByCode", mock.Anything, "FRESH10").Return(created, nil)
		c, err := svc.Lookup(context.Background(), "FRESH10")
		assert.NoError(t, err)
		assert.Equal(t, "FRESH10", c.Code)
	})

	t.Run("lookup works without a loaded prefilter", func(t *testing.T) {
		couponRepo := new(mocks.MockCouponRepository)
		svc := NewCouponService(couponRepo)

		couponRepo.On("FindByCode", mock.Anything, "SAVE25").Return(nil, nil)

		_, err := svc.Lookup(context.Background(), "SAVE25")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestCouponService_CreateCoupon_GeneratesCode(t *testing.T) {
	couponRepo := new(mocks.MockCouponRepository)
	svc := NewCouponService(couponRepo)

	couponRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Coupon")).Return(nil)

	c, err := svc.CreateCoupon(context.Background(), "", 15, time.Now().Add(time.Hour))

	assert.NoError(t, err)
	assert.Len(t, c.Code, 10)
	assert.Equal(t, 15.0, c.Discount)
}
