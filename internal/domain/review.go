package domain

import "time"

// A user may leave at most one review per product.
type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64    `json:"productId" gorm:"not null;uniqueIndex:idx_review_product_user"`
	UserID    uint64    `json:"userId" gorm:"not null;uniqueIndex:idx_review_product_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
