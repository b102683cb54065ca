package domain

import "time"

// Product owns the quantity-on-hand and sold counters. Only checkout
// commits and product management mutate them.
type Product struct {
	ID                 uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Title              string    `json:"title" gorm:"not null"`
	Slug               string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description        string    `json:"description"`
	Price              float64   `json:"price" gorm:"not null"`
	PriceAfterDiscount *float64  `json:"priceAfterDiscount,omitempty"`
	Quantity           int64     `json:"quantity" gorm:"not null;default:0"`
	Sold               int64     `json:"sold" gorm:"not null;default:0"`
	CategoryID         uint64    `json:"categoryId" gorm:"index"`
	BrandID            *uint64   `json:"brandId,omitempty" gorm:"index"`
	RatingsAverage     float64   `json:"ratingsAverage" gorm:"default:0"`
	RatingsCount       int64     `json:"ratingsCount" gorm:"default:0"`
	CreatedAt          time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// EffectivePrice is the unit price snapshotted into carts.
func (p *Product) EffectivePrice() float64 {
	if p.PriceAfterDiscount != nil && *p.PriceAfterDiscount > 0 {
		return *p.PriceAfterDiscount
	}
	return p.Price
}
