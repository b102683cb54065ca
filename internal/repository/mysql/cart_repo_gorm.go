package mysql

import (
	"context"
	"errors"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindByID(ctx context.Context, id uint64) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.WithContext(ctx).Preload("Items").First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) FindByUserID(ctx context.Context, userID uint64) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) Create(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

func (r *cartRepo) RemoveItem(ctx context.Context, cartID, productID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{})
	return res.RowsAffected, res.Error
}
