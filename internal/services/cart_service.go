package services

import (
	"context"
	"errors"
	"math"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("item not in cart")
	ErrCouponExpired    = errors.New("coupon expired")
)

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	coupons  *CouponService
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, coupons *CouponService) *CartService {
	return &CartService{carts: carts, products: products, coupons: coupons}
}

// AddProduct puts a product into the user's cart, creating the cart on
// first use. The unit price is snapshotted from the product at add
// time. Any applied discount is dropped; the coupon must be reapplied
// after the cart changes.
func (s *CartService) AddProduct(ctx context.Context, userID, productID uint64, quantity int64) (*domain.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if quantity < 1 {
		quantity = 1
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &domain.Cart{
			UserID: userID,
			Items: []domain.CartItem{{
				ProductID: productID,
				Quantity:  quantity,
				Price:     product.EffectivePrice(),
			}},
		}
		cart.RecomputeTotal()
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.EffectivePrice(),
		})
	}

	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint64) (*domain.Cart, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID uint64, quantity int64) (*domain.Cart, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint64) (*domain.Cart, error) {
	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	n, err := s.carts.RemoveItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrCartItemNotFound
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept

	cart.RecomputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ApplyCoupon snapshots the coupon's percent discount into the cart as
// a discounted total. Later coupon edits do not touch priced carts.
func (s *CartService) ApplyCoupon(ctx context.Context, userID uint64, code string) (*domain.Cart, error) {
	coupon, err := s.coupons.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon.Expired(time.Now()) {
		return nil, ErrCouponExpired
	}

	cart, err := s.carts.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	discounted := round2(cart.TotalPrice * (1 - coupon.Discount/100))
	cart.TotalPriceAfterDiscount = &discounted
	cart.CouponCode = coupon.Code

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
