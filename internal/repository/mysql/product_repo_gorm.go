package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAll(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.BrandID != 0 {
		q = q.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var out []domain.Product
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	return res.RowsAffected, res.Error
}
