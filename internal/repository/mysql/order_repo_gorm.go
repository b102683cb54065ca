package mysql

import (
	"context"
	"errors"
	"log"

	"shop-service/internal/domain"
	"shop-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// CommitCheckout runs the whole checkout commit in one transaction:
// order insert, inventory adjustment, cart deletion. The cart delete is
// the exactly-once claim; losing it rolls everything back.
func (r *orderRepo) CommitCheckout(ctx context.Context, cartID uint64, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			log.Printf("CommitCheckout: order insert: %v", err)
			return err
		}

		for _, item := range order.Items {
			res := tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				Updates(map[string]any{
					"quantity": gorm.Expr("quantity - ?", item.Quantity),
					"sold":     gorm.Expr("sold + ?", item.Quantity),
				})
			if res.Error != nil {
				log.Printf("CommitCheckout: inventory adjust product %d: %v", item.ProductID, res.Error)
				return res.Error
			}
		}

		res := tx.Where("id = ?", cartID).Delete(&domain.Cart{})
		if res.Error != nil {
			log.Printf("CommitCheckout: cart delete: %v", res.Error)
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrCartConverted
		}
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUserID(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
