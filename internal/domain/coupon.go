package domain

import "time"

// Coupon discounts are snapshotted into the cart at apply time; later
// coupon edits never affect an already-priced cart or order.
type Coupon struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Discount  float64   `json:"discount" gorm:"not null"`
	ExpiresAt time.Time `json:"expires" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
