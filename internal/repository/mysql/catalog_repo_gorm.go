package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Save(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uint64) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	return res.RowsAffected, res.Error
}

type brandRepo struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) repository.BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Save(ctx context.Context, b *domain.Brand) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *brandRepo) FindByID(ctx context.Context, id uint64) (*domain.Brand, error) {
	var b domain.Brand
	err := r.db.WithContext(ctx).First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) FindAll(ctx context.Context) ([]domain.Brand, error) {
	var out []domain.Brand
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *brandRepo) Update(ctx context.Context, b *domain.Brand) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *brandRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Brand{}, id)
	return res.RowsAffected, res.Error
}
