package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/google/uuid"
)

var ErrCouponNotFound = errors.New("coupon not found")

const prefilterFalsePositiveRate = 0.01

type CouponService struct {
	coupons repository.CouponRepository

	// prefilter screens out codes that were never issued without a
	// database round trip. It only ever answers "definitely unknown";
	// the database stays authoritative for hits.
	mu        sync.RWMutex
	prefilter *bloom.BloomFilter
}

func NewCouponService(coupons repository.CouponRepository) *CouponService {
	return &CouponService{coupons: coupons}
}

// LoadPrefilter seeds the bloom filter from the stored coupon codes.
// Safe to call again to rebuild.
func (s *CouponService) LoadPrefilter(ctx context.Context) error {
	codes, err := s.coupons.AllCodes(ctx)
	if err != nil {
		return err
	}

	capacity := uint(len(codes))
	if capacity < 1024 {
		capacity = 1024
	}
	filter := bloom.NewWithEstimates(capacity, prefilterFalsePositiveRate)
	for _, code := range codes {
		filter.AddString(code)
	}

	s.mu.Lock()
	s.prefilter = filter
	s.mu.Unlock()

	log.Printf("coupon prefilter loaded with %d codes", len(codes))
	return nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, code string, discount float64, expiresAt time.Time) (*domain.Coupon, error) {
	if code == "" {
		code = generateCouponCode()
	}
	c := &domain.Coupon{Code: code, Discount: discount, ExpiresAt: expiresAt}
	if err := s.coupons.Save(ctx, c); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.prefilter != nil {
		s.prefilter.AddString(c.Code)
	}
	s.mu.Unlock()

	return c, nil
}

// Lookup resolves a coupon by code, consulting the prefilter first.
func (s *CouponService) Lookup(ctx context.Context, code string) (*domain.Coupon, error) {
	s.mu.RLock()
	filter := s.prefilter
	s.mu.RUnlock()

	if filter != nil && !filter.TestString(code) {
		return nil, ErrCouponNotFound
	}

	c, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	return c, nil
}

func (s *CouponService) GetCoupon(ctx context.Context, id uint64) (*domain.Coupon, error) {
	c, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	return c, nil
}

func (s *CouponService) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return s.coupons.FindAll(ctx)
}

func (s *CouponService) UpdateCoupon(ctx context.Context, id uint64, discount float64, expiresAt time.Time) (*domain.Coupon, error) {
	c, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCouponNotFound
	}
	if discount > 0 {
		c.Discount = discount
	}
	if !expiresAt.IsZero() {
		c.ExpiresAt = expiresAt
	}
	if err := s.coupons.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id uint64) error {
	n, err := s.coupons.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func generateCouponCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
