package domain

import "time"

// Cart is the mutable pre-order collection of line items for a user.
// It is deleted the moment it is converted into an order.
type Cart struct {
	ID                      uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID                  uint64     `json:"userId" gorm:"not null;uniqueIndex"`
	Items                   []CartItem `json:"cartItem" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalPrice              float64    `json:"totalPrice"`
	TotalPriceAfterDiscount *float64   `json:"totalPriceAfterDiscount,omitempty"`
	CouponCode              string     `json:"couponCode,omitempty"`
	CreatedAt               time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt               time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

type CartItem struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID    uint64  `json:"cartId" gorm:"not null;index"`
	ProductID uint64  `json:"productId" gorm:"not null"`
	Quantity  int64   `json:"quantity" gorm:"not null;default:1"`
	Price     float64 `json:"price" gorm:"not null"`
}

// ResolvedTotal returns the price an order materialized from this cart
// must carry. A discounted total that is absent or zero falls back to
// the base total.
func (c *Cart) ResolvedTotal() float64 {
	if c.TotalPriceAfterDiscount != nil && *c.TotalPriceAfterDiscount > 0 {
		return *c.TotalPriceAfterDiscount
	}
	return c.TotalPrice
}

// RecomputeTotal rebuilds the base total from the line items and drops
// any stale discounted total.
func (c *Cart) RecomputeTotal() {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	c.TotalPrice = total
	c.TotalPriceAfterDiscount = nil
	c.CouponCode = ""
}
