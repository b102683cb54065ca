package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Save(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

func (r *reviewRepo) FindByID(ctx context.Context, id uint64) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.WithContext(ctx).First(&rev, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepo) FindByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reviewRepo) FindByProductAndUser(ctx context.Context, productID, userID uint64) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rev, nil
}

func (r *reviewRepo) Update(ctx context.Context, rev *domain.Review) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

func (r *reviewRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	return res.RowsAffected, res.Error
}

func (r *reviewRepo) RefreshProductRating(ctx context.Context, productID uint64) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE products SET
			ratings_average = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ?),
			ratings_count   = (SELECT COUNT(*) FROM reviews WHERE product_id = ?)
		 WHERE id = ?`,
		productID, productID, productID,
	).Error
}
