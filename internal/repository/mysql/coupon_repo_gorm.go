package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type couponRepo struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &couponRepo{db: db}
}

func (r *couponRepo) Save(ctx context.Context, c *domain.Coupon) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *couponRepo) FindByID(ctx context.Context, id uint64) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *couponRepo) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *couponRepo) FindAll(ctx context.Context) ([]domain.Coupon, error) {
	var out []domain.Coupon
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *couponRepo) AllCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).Model(&domain.Coupon{}).Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *couponRepo) Update(ctx context.Context, c *domain.Coupon) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *couponRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Coupon{}, id)
	return res.RowsAffected, res.Error
}
